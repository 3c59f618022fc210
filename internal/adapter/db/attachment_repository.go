package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
)

const listAttachmentsByProjectQuery = `
SELECT a.id, a.attachment_type, a.file_url, a.created_at
FROM project_attachments pa
JOIN attachments a ON a.id = pa.attachment_id
WHERE pa.project_id = ? AND a.deleted = 0
ORDER BY a.created_at DESC, a.id DESC;
`

const softDeleteAttachmentsByProjectQuery = `
UPDATE attachments a
JOIN project_attachments pa ON pa.attachment_id = a.id
SET a.deleted = 1, a.deleted_at = ?
WHERE pa.project_id = ? AND a.deleted = 0;
`

type AttachmentRepository struct {
	db *sqlx.DB
}

type attachmentRow struct {
	ID             string    `db:"id"`
	AttachmentType string    `db:"attachment_type"`
	FileURL        string    `db:"file_url"`
	CreatedAt      time.Time `db:"created_at"`
}

var _ ports.AttachmentRepository = (*AttachmentRepository)(nil)

func NewAttachmentRepository(db *sqlx.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Attachment, error) {
	var rows []attachmentRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, listAttachmentsByProjectQuery, projectID); err != nil {
		return nil, err
	}
	attachments := make([]domain.Attachment, 0, len(rows))
	for _, row := range rows {
		attachments = append(attachments, domain.Attachment{
			ID:             row.ID,
			AttachmentType: row.AttachmentType,
			FileURL:        row.FileURL,
			CreatedAt:      row.CreatedAt,
		})
	}
	return attachments, nil
}

func (r *AttachmentRepository) SoftDeleteByProject(ctx context.Context, projectID string, at time.Time) (int64, error) {
	res, err := executor(ctx, r.db).ExecContext(ctx, softDeleteAttachmentsByProjectQuery, at, projectID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
