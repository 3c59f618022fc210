package ports

import (
	"context"
	"time"

	"trackr/internal/core/domain"
)

// TaskRepository reads never return soft-deleted tasks unless stated otherwise.
type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) error
	GetByID(ctx context.Context, id string) (domain.Task, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	ListChildren(ctx context.Context, parentID string) ([]domain.Task, error)
	CountChildren(ctx context.Context, parentID string) (int, error)
	Update(ctx context.Context, task domain.Task) error
	UpdateProgress(ctx context.Context, id string, progress int, at time.Time) error
	SetChildStats(ctx context.Context, id string, childCount int) error
	SoftDelete(ctx context.Context, id string, at time.Time) (int64, error)
	SoftDeleteByProject(ctx context.Context, projectID string, at time.Time) (int64, error)
}

type TaskService interface {
	CreateRootTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	CreateSubTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	GetTaskByID(ctx context.Context, projectID, taskID string) (domain.TaskDetail, error)
	GetTasksByProject(ctx context.Context, projectID string) ([]domain.TaskDetail, error)
	GetSubTasks(ctx context.Context, projectID, taskID string) ([]domain.Task, error)
	UpdateTaskByID(ctx context.Context, projectID, taskID, updaterID string, input domain.UpdateTaskInput) (domain.TaskDetail, error)
	DeleteTaskByID(ctx context.Context, projectID, taskID, actorID string) (domain.DeleteTaskResult, error)
}
