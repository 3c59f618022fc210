package ports

import (
	"context"
	"time"

	"trackr/internal/core/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, entry domain.ActivityLog) error
	ListByProject(ctx context.Context, projectID string) ([]domain.ActivityLog, error)
	SoftDeleteByProject(ctx context.Context, projectID string, at time.Time) (int64, error)
}

type ActivityService interface {
	LogActivity(ctx context.Context, input domain.LogActivityInput) error
	GetProjectActivities(ctx context.Context, projectID string) ([]domain.ActivityLog, error)
}
