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

const projectColumns = `
  id, title, description, project_key, creator_id, has_been_modified,
  deleted, deleted_at, created_at, updated_at`

const insertProjectQuery = `
INSERT INTO projects (` + projectColumns + `)
VALUES (
  :id, :title, :description, :project_key, :creator_id, :has_been_modified,
  :deleted, :deleted_at, :created_at, :updated_at
);
`

const getProjectQuery = `SELECT` + projectColumns + ` FROM projects WHERE id = ? AND deleted = 0;`

const listProjectsByIDsQuery = `
SELECT` + projectColumns + `
FROM projects
WHERE id IN (?) AND deleted = 0;
`

const projectKeyExistsQuery = `
SELECT EXISTS(
  SELECT 1 FROM projects WHERE project_key = ? AND id <> ? AND deleted = 0
);
`

const updateProjectQuery = `
UPDATE projects SET
  title = :title,
  description = :description,
  project_key = :project_key,
  has_been_modified = :has_been_modified,
  updated_at = :updated_at
WHERE id = :id AND deleted = 0;
`

const softDeleteProjectQuery = `UPDATE projects SET deleted = 1, deleted_at = ? WHERE id = ? AND deleted = 0;`

const insertRevisionQuery = `
INSERT INTO project_revisions (
  id, project_id, modified_at, modified_by_id, modified_by_username,
  modified_by_email, modified_by_avatar_url, changes, description
) VALUES (
  :id, :project_id, :modified_at, :modified_by_id, :modified_by_username,
  :modified_by_email, :modified_by_avatar_url, :changes, :description
);
`

const listRevisionsQuery = `
SELECT
  id, project_id, modified_at, modified_by_id, modified_by_username,
  modified_by_email, modified_by_avatar_url, changes, description
FROM project_revisions
WHERE project_id = ?
ORDER BY modified_at ASC, seq ASC;
`

type ProjectRepository struct {
	db *sqlx.DB
}

type projectRow struct {
	ID              string       `db:"id"`
	Title           string       `db:"title"`
	Description     string       `db:"description"`
	Key             string       `db:"project_key"`
	CreatorID       string       `db:"creator_id"`
	HasBeenModified bool         `db:"has_been_modified"`
	Deleted         bool         `db:"deleted"`
	DeletedAt       sql.NullTime `db:"deleted_at"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
}

type revisionRow struct {
	ID               string        `db:"id"`
	ProjectID        string        `db:"project_id"`
	ModifiedAt       time.Time     `db:"modified_at"`
	ModifiedByID     string        `db:"modified_by_id"`
	ModifiedByName   string        `db:"modified_by_username"`
	ModifiedByEmail  string        `db:"modified_by_email"`
	ModifiedByAvatar string        `db:"modified_by_avatar_url"`
	Changes          changesColumn `db:"changes"`
	Description      string        `db:"description"`
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) error {
	_, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), insertProjectQuery, mapDomainProjectToRow(project))
	if isDuplicateEntry(err) {
		return domain.ErrProjectKeyTaken
	}
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (domain.Project, error) {
	var row projectRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, getProjectQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, domain.ErrProjectNotFound
		}
		return domain.Project{}, err
	}
	return mapProjectRowToDomain(row), nil
}

func (r *ProjectRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Project, error) {
	if len(ids) == 0 {
		return []domain.Project{}, nil
	}
	var rows []projectRow
	if err := selectIn(ctx, executor(ctx, r.db), &rows, listProjectsByIDsQuery, ids); err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, mapProjectRowToDomain(row))
	}
	return projects, nil
}

func (r *ProjectRepository) KeyExists(ctx context.Context, key, excludeID string) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, projectKeyExistsQuery, key, excludeID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) error {
	res, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), updateProjectQuery, mapDomainProjectToRow(project))
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrProjectKeyTaken
		}
		return err
	}
	return requireMatched(res, domain.ErrProjectNotFound)
}

func (r *ProjectRepository) AppendRevision(ctx context.Context, revision domain.Revision) error {
	row := revisionRow{
		ID:               revision.ID,
		ProjectID:        revision.ProjectID,
		ModifiedAt:       revision.ModifiedAt,
		ModifiedByID:     revision.ModifiedBy.ID,
		ModifiedByName:   revision.ModifiedBy.Username,
		ModifiedByEmail:  revision.ModifiedBy.Email,
		ModifiedByAvatar: revision.ModifiedBy.AvatarURL,
		Changes:          toChangesColumn(revision.Changes),
		Description:      revision.Description,
	}
	_, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), insertRevisionQuery, row)
	return err
}

func (r *ProjectRepository) ListRevisions(ctx context.Context, projectID string) ([]domain.Revision, error) {
	var rows []revisionRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, listRevisionsQuery, projectID); err != nil {
		return nil, err
	}
	revisions := make([]domain.Revision, 0, len(rows))
	for _, row := range rows {
		revisions = append(revisions, domain.Revision{
			ID:         row.ID,
			ProjectID:  row.ProjectID,
			ModifiedAt: row.ModifiedAt,
			ModifiedBy: domain.UserSummary{
				ID:        row.ModifiedByID,
				Username:  row.ModifiedByName,
				Email:     row.ModifiedByEmail,
				AvatarURL: row.ModifiedByAvatar,
			},
			Changes:     row.Changes.toDomain(),
			Description: row.Description,
		})
	}
	return revisions, nil
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, id string, at time.Time) (int64, error) {
	res, err := executor(ctx, r.db).ExecContext(ctx, softDeleteProjectQuery, at, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func mapProjectRowToDomain(row projectRow) domain.Project {
	return domain.Project{
		ID:              row.ID,
		Title:           row.Title,
		Description:     row.Description,
		Key:             row.Key,
		CreatorID:       row.CreatorID,
		HasBeenModified: row.HasBeenModified,
		Deleted:         row.Deleted,
		DeletedAt:       timePtr(row.DeletedAt),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func mapDomainProjectToRow(project domain.Project) projectRow {
	return projectRow{
		ID:              project.ID,
		Title:           project.Title,
		Description:     project.Description,
		Key:             project.Key,
		CreatorID:       project.CreatorID,
		HasBeenModified: project.HasBeenModified,
		Deleted:         project.Deleted,
		DeletedAt:       nullTime(project.DeletedAt),
		CreatedAt:       project.CreatedAt,
		UpdatedAt:       project.UpdatedAt,
	}
}
