package ports

import (
	"context"

	"trackr/internal/core/domain"
)

// UserRepository is the identity lookup used to denormalize actor snapshots.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (domain.UserSummary, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.UserSummary, error)
}

// PrincipalResolver turns a bearer credential into the authenticated caller.
type PrincipalResolver interface {
	Resolve(token string) (domain.Principal, error)
}
