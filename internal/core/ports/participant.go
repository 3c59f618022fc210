package ports

import (
	"context"
	"time"

	"trackr/internal/core/domain"
)

type ParticipantRepository interface {
	CreateMany(ctx context.Context, participants []domain.Participant) error
	// Find returns the row for the pair whatever its status.
	Find(ctx context.Context, projectID, userID string) (domain.Participant, error)
	FindActive(ctx context.Context, projectID, userID string) (domain.Participant, error)
	ListActiveByProject(ctx context.Context, projectID string) ([]domain.Participant, error)
	ListActiveByUser(ctx context.Context, userID string) ([]domain.Participant, error)
	ListLeaders(ctx context.Context, projectIDs []string) ([]domain.Participant, error)
	Update(ctx context.Context, participant domain.Participant) error
	SoftDeleteByProject(ctx context.Context, projectID string, at time.Time) (int64, error)
}

type ParticipantService interface {
	ListParticipants(ctx context.Context, projectID string) ([]domain.ParticipantDetail, error)
	AddParticipant(ctx context.Context, projectID, actorID, userID string, role domain.Role) (domain.Participant, error)
	UpdateParticipantRole(ctx context.Context, projectID, actorID, userID string, role domain.Role) (domain.Participant, error)
	RemoveParticipant(ctx context.Context, projectID, actorID, userID string) error
	VerifyUserProjectAccess(ctx context.Context, projectID, userID string) (domain.Project, error)
	CheckProjectPermissions(ctx context.Context, projectID, userID string, allowed ...domain.Role) error
}
