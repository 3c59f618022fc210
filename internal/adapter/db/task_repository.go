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

const taskColumns = `
  id, project_id, parent_task_id, title, description, creator_id, assignee_id,
  type, ancestors, level, has_children, child_count, status, priority, progress,
  due_date, deleted, deleted_at, created_at, updated_at`

const insertTaskQuery = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (
  :id, :project_id, :parent_task_id, :title, :description, :creator_id, :assignee_id,
  :type, :ancestors, :level, :has_children, :child_count, :status, :priority, :progress,
  :due_date, :deleted, :deleted_at, :created_at, :updated_at
);
`

const getTaskQuery = `SELECT` + taskColumns + ` FROM tasks WHERE id = ? AND deleted = 0;`

const listTasksByIDsQuery = `SELECT` + taskColumns + ` FROM tasks WHERE id IN (?);`

const listTasksByProjectQuery = `
SELECT` + taskColumns + `
FROM tasks
WHERE project_id = ? AND deleted = 0
ORDER BY created_at DESC, id DESC;
`

const listChildrenQuery = `
SELECT` + taskColumns + `
FROM tasks
WHERE parent_task_id = ? AND deleted = 0
ORDER BY created_at DESC, id DESC;
`

const countChildrenQuery = `SELECT COUNT(*) FROM tasks WHERE parent_task_id = ? AND deleted = 0;`

const updateTaskQuery = `
UPDATE tasks SET
  title = :title,
  description = :description,
  type = :type,
  assignee_id = :assignee_id,
  status = :status,
  priority = :priority,
  progress = :progress,
  due_date = :due_date,
  updated_at = :updated_at
WHERE id = :id AND deleted = 0;
`

const updateProgressQuery = `UPDATE tasks SET progress = ?, updated_at = ? WHERE id = ?;`

const setChildStatsQuery = `UPDATE tasks SET child_count = ?, has_children = ? WHERE id = ?;`

const softDeleteTaskQuery = `UPDATE tasks SET deleted = 1, deleted_at = ? WHERE id = ? AND deleted = 0;`

const softDeleteTasksByProjectQuery = `UPDATE tasks SET deleted = 1, deleted_at = ? WHERE project_id = ? AND deleted = 0;`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID           string         `db:"id"`
	ProjectID    string         `db:"project_id"`
	ParentTaskID sql.NullString `db:"parent_task_id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	CreatorID    string         `db:"creator_id"`
	AssigneeID   sql.NullString `db:"assignee_id"`
	Type         string         `db:"type"`
	Ancestors    stringList     `db:"ancestors"`
	Level        int            `db:"level"`
	HasChildren  bool           `db:"has_children"`
	ChildCount   int            `db:"child_count"`
	Status       string         `db:"status"`
	Priority     string         `db:"priority"`
	Progress     int            `db:"progress"`
	DueDate      sql.NullTime   `db:"due_date"`
	Deleted      bool           `db:"deleted"`
	DeletedAt    sql.NullTime   `db:"deleted_at"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) error {
	_, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), insertTaskQuery, mapDomainTaskToTaskRow(task))
	return err
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (domain.Task, error) {
	var row taskRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, getTaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

// ListByIDs includes soft-deleted rows, since ancestor summaries must still
// resolve after an ancestor was deleted.
func (r *TaskRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Task, error) {
	if len(ids) == 0 {
		return []domain.Task{}, nil
	}
	var rows []taskRow
	if err := selectIn(ctx, executor(ctx, r.db), &rows, listTasksByIDsQuery, ids); err != nil {
		return nil, err
	}
	return mapTaskRows(rows), nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	var rows []taskRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, listTasksByProjectQuery, projectID); err != nil {
		return nil, err
	}
	return mapTaskRows(rows), nil
}

func (r *TaskRepository) ListChildren(ctx context.Context, parentID string) ([]domain.Task, error) {
	var rows []taskRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, listChildrenQuery, parentID); err != nil {
		return nil, err
	}
	return mapTaskRows(rows), nil
}

func (r *TaskRepository) CountChildren(ctx context.Context, parentID string) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &count, countChildrenQuery, parentID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	res, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), updateTaskQuery, mapDomainTaskToTaskRow(task))
	if err != nil {
		return err
	}
	return requireMatched(res, domain.ErrTaskNotFound)
}

func (r *TaskRepository) UpdateProgress(ctx context.Context, id string, progress int, at time.Time) error {
	_, err := executor(ctx, r.db).ExecContext(ctx, updateProgressQuery, progress, at, id)
	return err
}

func (r *TaskRepository) SetChildStats(ctx context.Context, id string, childCount int) error {
	_, err := executor(ctx, r.db).ExecContext(ctx, setChildStatsQuery, childCount, childCount > 0, id)
	return err
}

func (r *TaskRepository) SoftDelete(ctx context.Context, id string, at time.Time) (int64, error) {
	res, err := executor(ctx, r.db).ExecContext(ctx, softDeleteTaskQuery, at, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *TaskRepository) SoftDeleteByProject(ctx context.Context, projectID string, at time.Time) (int64, error) {
	res, err := executor(ctx, r.db).ExecContext(ctx, softDeleteTasksByProjectQuery, at, projectID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// requireMatched maps a zero-row update to notFound. The DSN sets
// clientFoundRows so unchanged rows still count as matched.
func requireMatched(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func mapTaskRows(rows []taskRow) []domain.Task {
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	ancestors := []string(row.Ancestors)
	if ancestors == nil {
		ancestors = []string{}
	}
	return domain.Task{
		ID:           row.ID,
		ProjectID:    row.ProjectID,
		ParentTaskID: stringPtr(row.ParentTaskID),
		Title:        row.Title,
		Description:  row.Description,
		CreatorID:    row.CreatorID,
		AssigneeID:   stringPtr(row.AssigneeID),
		Type:         domain.TaskType(row.Type),
		Ancestors:    ancestors,
		Level:        row.Level,
		HasChildren:  row.HasChildren,
		ChildCount:   row.ChildCount,
		Status:       domain.TaskStatus(row.Status),
		Priority:     domain.TaskPriority(row.Priority),
		Progress:     row.Progress,
		DueDate:      timePtr(row.DueDate),
		Deleted:      row.Deleted,
		DeletedAt:    timePtr(row.DeletedAt),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapDomainTaskToTaskRow(task domain.Task) taskRow {
	return taskRow{
		ID:           task.ID,
		ProjectID:    task.ProjectID,
		ParentTaskID: nullString(task.ParentTaskID),
		Title:        task.Title,
		Description:  task.Description,
		CreatorID:    task.CreatorID,
		AssigneeID:   nullString(task.AssigneeID),
		Type:         string(task.Type),
		Ancestors:    stringList(task.Ancestors),
		Level:        task.Level,
		HasChildren:  task.HasChildren,
		ChildCount:   task.ChildCount,
		Status:       string(task.Status),
		Priority:     string(task.Priority),
		Progress:     task.Progress,
		DueDate:      nullTime(task.DueDate),
		Deleted:      task.Deleted,
		DeletedAt:    nullTime(task.DeletedAt),
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}
