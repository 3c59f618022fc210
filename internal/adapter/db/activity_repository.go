package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
)

const insertActivityQuery = `
INSERT INTO activity_logs (
  id, project_id, entity, entity_id, action, modified_by_id, modified_by_username,
  modified_by_email, modified_by_avatar_url, changes, detail, deleted, created_at
) VALUES (
  :id, :project_id, :entity, :entity_id, :action, :modified_by_id, :modified_by_username,
  :modified_by_email, :modified_by_avatar_url, :changes, :detail, 0, :created_at
);
`

const listActivitiesByProjectQuery = `
SELECT
  id, project_id, entity, entity_id, action, modified_by_id, modified_by_username,
  modified_by_email, modified_by_avatar_url, changes, detail, created_at
FROM activity_logs
WHERE project_id = ? AND deleted = 0
ORDER BY created_at DESC, seq DESC;
`

const softDeleteActivitiesByProjectQuery = `
UPDATE activity_logs SET deleted = 1, deleted_at = ?
WHERE project_id = ? AND deleted = 0;
`

type ActivityRepository struct {
	db *sqlx.DB
}

type activityRow struct {
	ID               string         `db:"id"`
	ProjectID        string         `db:"project_id"`
	Entity           string         `db:"entity"`
	EntityID         string         `db:"entity_id"`
	Action           string         `db:"action"`
	ModifiedByID     string         `db:"modified_by_id"`
	ModifiedByName   string         `db:"modified_by_username"`
	ModifiedByEmail  string         `db:"modified_by_email"`
	ModifiedByAvatar string         `db:"modified_by_avatar_url"`
	Changes          changesColumn  `db:"changes"`
	Detail           sql.NullString `db:"detail"`
	CreatedAt        time.Time      `db:"created_at"`
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, entry domain.ActivityLog) error {
	row := activityRow{
		ID:               entry.ID,
		ProjectID:        entry.ProjectID,
		Entity:           string(entry.Entity),
		EntityID:         entry.EntityID,
		Action:           string(entry.Action),
		ModifiedByID:     entry.ModifiedBy.ID,
		ModifiedByName:   entry.ModifiedBy.Username,
		ModifiedByEmail:  entry.ModifiedBy.Email,
		ModifiedByAvatar: entry.ModifiedBy.AvatarURL,
		Changes:          toChangesColumn(entry.Changes),
		Detail:           sql.NullString{String: entry.Detail, Valid: entry.Detail != ""},
		CreatedAt:        entry.CreatedAt,
	}
	_, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), insertActivityQuery, row)
	return err
}

func (r *ActivityRepository) ListByProject(ctx context.Context, projectID string) ([]domain.ActivityLog, error) {
	var rows []activityRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, listActivitiesByProjectQuery, projectID); err != nil {
		return nil, err
	}
	entries := make([]domain.ActivityLog, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.ActivityLog{
			ID:        row.ID,
			ProjectID: row.ProjectID,
			Entity:    domain.ActivityEntity(row.Entity),
			EntityID:  row.EntityID,
			Action:    domain.ActivityAction(row.Action),
			ModifiedBy: domain.UserSummary{
				ID:        row.ModifiedByID,
				Username:  row.ModifiedByName,
				Email:     row.ModifiedByEmail,
				AvatarURL: row.ModifiedByAvatar,
			},
			Changes:   row.Changes.toDomain(),
			Detail:    row.Detail.String,
			CreatedAt: row.CreatedAt,
		})
	}
	return entries, nil
}

func (r *ActivityRepository) SoftDeleteByProject(ctx context.Context, projectID string, at time.Time) (int64, error) {
	res, err := executor(ctx, r.db).ExecContext(ctx, softDeleteActivitiesByProjectQuery, at, projectID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
