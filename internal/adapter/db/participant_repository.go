package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
)

const participantColumns = `id, project_id, user_id, role, status, joined_at, deleted, deleted_at`

const insertParticipantQuery = `
INSERT INTO participants (` + participantColumns + `)
VALUES (:id, :project_id, :user_id, :role, :status, :joined_at, :deleted, :deleted_at)
`

const findParticipantQuery = `
SELECT ` + participantColumns + `
FROM participants
WHERE project_id = ? AND user_id = ?;
`

const findActiveParticipantQuery = `
SELECT ` + participantColumns + `
FROM participants
WHERE project_id = ? AND user_id = ? AND status = 'active' AND deleted = 0;
`

const listActiveByProjectQuery = `
SELECT ` + participantColumns + `
FROM participants
WHERE project_id = ? AND status = 'active' AND deleted = 0
ORDER BY joined_at DESC, id DESC;
`

const listActiveByUserQuery = `
SELECT ` + participantColumns + `
FROM participants
WHERE user_id = ? AND status = 'active' AND deleted = 0
ORDER BY joined_at DESC, id DESC;
`

const listLeadersQuery = `
SELECT ` + participantColumns + `
FROM participants
WHERE project_id IN (?) AND role = 'leader' AND status = 'active' AND deleted = 0
ORDER BY joined_at ASC, id ASC;
`

const updateParticipantQuery = `
UPDATE participants SET
  role = :role,
  status = :status,
  joined_at = :joined_at,
  deleted = :deleted,
  deleted_at = :deleted_at
WHERE id = :id;
`

const softDeleteParticipantsByProjectQuery = `
UPDATE participants SET deleted = 1, deleted_at = ?
WHERE project_id = ? AND deleted = 0;
`

type ParticipantRepository struct {
	db *sqlx.DB
}

type participantRow struct {
	ID        string       `db:"id"`
	ProjectID string       `db:"project_id"`
	UserID    string       `db:"user_id"`
	Role      string       `db:"role"`
	Status    string       `db:"status"`
	JoinedAt  time.Time    `db:"joined_at"`
	Deleted   bool         `db:"deleted"`
	DeletedAt sql.NullTime `db:"deleted_at"`
}

var _ ports.ParticipantRepository = (*ParticipantRepository)(nil)

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) CreateMany(ctx context.Context, participants []domain.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	rows := make([]participantRow, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, mapDomainParticipantToRow(p))
	}
	_, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), insertParticipantQuery, rows)
	if isDuplicateEntry(err) {
		return domain.ErrParticipantExists
	}
	return err
}

func (r *ParticipantRepository) Find(ctx context.Context, projectID, userID string) (domain.Participant, error) {
	return r.get(ctx, findParticipantQuery, projectID, userID)
}

func (r *ParticipantRepository) FindActive(ctx context.Context, projectID, userID string) (domain.Participant, error) {
	return r.get(ctx, findActiveParticipantQuery, projectID, userID)
}

func (r *ParticipantRepository) get(ctx context.Context, query string, args ...any) (domain.Participant, error) {
	var row participantRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Participant{}, domain.ErrParticipantNotFound
		}
		return domain.Participant{}, err
	}
	return mapParticipantRowToDomain(row), nil
}

func (r *ParticipantRepository) ListActiveByProject(ctx context.Context, projectID string) ([]domain.Participant, error) {
	return r.list(ctx, listActiveByProjectQuery, projectID)
}

func (r *ParticipantRepository) ListActiveByUser(ctx context.Context, userID string) ([]domain.Participant, error) {
	return r.list(ctx, listActiveByUserQuery, userID)
}

func (r *ParticipantRepository) ListLeaders(ctx context.Context, projectIDs []string) ([]domain.Participant, error) {
	if len(projectIDs) == 0 {
		return []domain.Participant{}, nil
	}
	var rows []participantRow
	if err := selectIn(ctx, executor(ctx, r.db), &rows, listLeadersQuery, projectIDs); err != nil {
		return nil, err
	}
	return mapParticipantRows(rows), nil
}

func (r *ParticipantRepository) list(ctx context.Context, query string, args ...any) ([]domain.Participant, error) {
	var rows []participantRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query, args...); err != nil {
		return nil, err
	}
	return mapParticipantRows(rows), nil
}

func (r *ParticipantRepository) Update(ctx context.Context, participant domain.Participant) error {
	res, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), updateParticipantQuery, mapDomainParticipantToRow(participant))
	if err != nil {
		return err
	}
	return requireMatched(res, domain.ErrParticipantNotFound)
}

func (r *ParticipantRepository) SoftDeleteByProject(ctx context.Context, projectID string, at time.Time) (int64, error) {
	res, err := executor(ctx, r.db).ExecContext(ctx, softDeleteParticipantsByProjectQuery, at, projectID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func mapParticipantRows(rows []participantRow) []domain.Participant {
	participants := make([]domain.Participant, 0, len(rows))
	for _, row := range rows {
		participants = append(participants, mapParticipantRowToDomain(row))
	}
	return participants
}

func mapParticipantRowToDomain(row participantRow) domain.Participant {
	return domain.Participant{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		UserID:    row.UserID,
		Role:      domain.Role(row.Role),
		Status:    domain.ParticipantStatus(row.Status),
		JoinedAt:  row.JoinedAt,
		Deleted:   row.Deleted,
		DeletedAt: timePtr(row.DeletedAt),
	}
}

func mapDomainParticipantToRow(p domain.Participant) participantRow {
	return participantRow{
		ID:        p.ID,
		ProjectID: p.ProjectID,
		UserID:    p.UserID,
		Role:      string(p.Role),
		Status:    string(p.Status),
		JoinedAt:  p.JoinedAt,
		Deleted:   p.Deleted,
		DeletedAt: nullTime(p.DeletedAt),
	}
}
