package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
)

type ActivityService struct {
	activities ports.ActivityRepository
}

func NewActivityService(activities ports.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

func (s *ActivityService) LogActivity(ctx context.Context, input domain.LogActivityInput) error {
	if input.ProjectID == "" || input.Entity == "" || input.Action == "" {
		return fmt.Errorf("%w: project id, entity and action are required", domain.ErrValidation)
	}
	changes := input.Changes
	if changes == nil {
		changes = domain.Changes{}
	}
	return s.activities.Create(ctx, domain.ActivityLog{
		ID:         uuid.NewString(),
		ProjectID:  input.ProjectID,
		Entity:     input.Entity,
		EntityID:   input.EntityID,
		Action:     input.Action,
		ModifiedBy: input.ModifiedBy,
		Changes:    changes,
		Detail:     input.Detail,
		CreatedAt:  time.Now().UTC(),
	})
}

func (s *ActivityService) GetProjectActivities(ctx context.Context, projectID string) ([]domain.ActivityLog, error) {
	return s.activities.ListByProject(ctx, projectID)
}

// record appends an entry for a mutation that is already committed. Failures are
// logged and counted, never returned.
func (s *ActivityService) record(ctx context.Context, input domain.LogActivityInput) {
	if err := s.LogActivity(ctx, input); err != nil {
		activityLogFailures.Inc()
		zap.L().Warn("failed to append activity log",
			zap.String("project_id", input.ProjectID),
			zap.String("entity", string(input.Entity)),
			zap.String("entity_id", input.EntityID),
			zap.String("action", string(input.Action)),
			zap.Error(err),
		)
	}
}

var _ ports.ActivityService = (*ActivityService)(nil)
