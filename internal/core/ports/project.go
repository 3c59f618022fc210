package ports

import (
	"context"
	"time"

	"trackr/internal/core/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) error
	GetByID(ctx context.Context, id string) (domain.Project, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Project, error)
	KeyExists(ctx context.Context, key, excludeID string) (bool, error)
	Update(ctx context.Context, project domain.Project) error
	AppendRevision(ctx context.Context, revision domain.Revision) error
	ListRevisions(ctx context.Context, projectID string) ([]domain.Revision, error)
	SoftDelete(ctx context.Context, id string, at time.Time) (int64, error)
}

type AttachmentRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Attachment, error)
	SoftDeleteByProject(ctx context.Context, projectID string, at time.Time) (int64, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, input domain.CreateProjectInput) (domain.ProjectDetail, error)
	GetProjectByID(ctx context.Context, projectID string) (domain.ProjectDetail, error)
	GetAllParticipatingProjects(ctx context.Context, userID string) ([]domain.ParticipatingProject, error)
	UpdateProjectByID(ctx context.Context, projectID, updaterID string, input domain.UpdateProjectInput) (domain.Project, error)
	DeleteProjectByID(ctx context.Context, projectID, actorID string) (domain.DeleteProjectResult, error)
}
