package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
)

// Repositories bundles the storage collaborators shared by the services.
type Repositories struct {
	Tasks        ports.TaskRepository
	Projects     ports.ProjectRepository
	Participants ports.ParticipantRepository
	Attachments  ports.AttachmentRepository
	Activities   ports.ActivityRepository
	Users        ports.UserRepository
	Tx           ports.Transactor
}

// actorSnapshot falls back to an id-only snapshot when the identity lookup fails,
// so a missing profile never blocks the mutation being recorded.
func actorSnapshot(ctx context.Context, users ports.UserRepository, userID string) domain.UserSummary {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			zap.L().Warn("failed to load actor identity", zap.String("user_id", userID), zap.Error(err))
		}
		return domain.UserSummary{ID: userID}
	}
	return user
}

func usersByID(ctx context.Context, users ports.UserRepository, ids []string) (map[string]domain.UserSummary, error) {
	unique := uniqueIDs(ids)
	byID := make(map[string]domain.UserSummary, len(unique))
	if len(unique) == 0 {
		return byID, nil
	}
	found, err := users.ListByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	for _, user := range found {
		byID[user.ID] = user
	}
	return byID, nil
}

func lookupUser(users map[string]domain.UserSummary, id *string) *domain.UserSummary {
	if id == nil {
		return nil
	}
	user, ok := users[*id]
	if !ok {
		return nil
	}
	return &user
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
