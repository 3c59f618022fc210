package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
)

const getUserQuery = `SELECT id, username, email, avatar_url FROM users WHERE id = ?;`

const listUsersByIDsQuery = `SELECT id, username, email, avatar_url FROM users WHERE id IN (?);`

type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID        string         `db:"id"`
	Username  string         `db:"username"`
	Email     string         `db:"email"`
	AvatarURL sql.NullString `db:"avatar_url"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.UserSummary, error) {
	var row userRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, getUserQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserSummary{}, domain.ErrUserNotFound
		}
		return domain.UserSummary{}, err
	}
	return mapUserRow(row), nil
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.UserSummary, error) {
	if len(ids) == 0 {
		return []domain.UserSummary{}, nil
	}
	var rows []userRow
	if err := selectIn(ctx, executor(ctx, r.db), &rows, listUsersByIDsQuery, ids); err != nil {
		return nil, err
	}
	users := make([]domain.UserSummary, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRow(row))
	}
	return users, nil
}

func mapUserRow(row userRow) domain.UserSummary {
	return domain.UserSummary{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		AvatarURL: row.AvatarURL.String,
	}
}
