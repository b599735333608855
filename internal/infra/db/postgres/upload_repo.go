package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/bryanwahyu/didim-interview/internal/domain/uploads"
)

type UploadRepository struct{ db *sql.DB }

func NewUploadRepository(db *sql.DB) *UploadRepository { return &UploadRepository{db: db} }

const schema = `
CREATE TABLE IF NOT EXISTS upload_records (
 id BIGSERIAL PRIMARY KEY,
 s3_key VARCHAR(512) NOT NULL UNIQUE,
 bucket VARCHAR(255) NOT NULL,
 original_file_name VARCHAR(255) NOT NULL,
 file_size BIGINT NOT NULL,
 content_type VARCHAR(255) NOT NULL,
 upload_status VARCHAR(16) NOT NULL,
 created_at TIMESTAMPTZ NOT NULL
);`

func (r *UploadRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Save insert record baru, ID dari RETURNING
func (r *UploadRepository) Save(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	const q = `
INSERT INTO upload_records
(s3_key, bucket, original_file_name, file_size, content_type, upload_status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id;`

	out := *rec
	if strings.TrimSpace(out.OriginalFileName) == "" {
		out.OriginalFileName = "-"
	}
	if out.Status == "" {
		out.Status = domain.StatusCompleted
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}

	if err := r.db.QueryRowContext(ctx, q,
		out.S3Key, out.Bucket, out.OriginalFileName, out.FileSize, out.ContentType, string(out.Status), out.CreatedAt,
	).Scan(&out.ID); err != nil {
		return nil, fmt.Errorf("insert upload record: %w", err)
	}
	return &out, nil
}

const selectColumns = `
SELECT id, s3_key, bucket, original_file_name, file_size, content_type, upload_status, created_at
FROM upload_records`

func (r *UploadRepository) FindByBucketAndKey(ctx context.Context, bucket, s3Key string) (*domain.Record, error) {
	return scanOne(r.db.QueryRowContext(ctx, selectColumns+` WHERE bucket=$1 AND s3_key=$2 LIMIT 1;`, bucket, s3Key))
}

func scanOne(row *sql.Row) (*domain.Record, error) {
	var rec domain.Record
	var status string
	err := row.Scan(&rec.ID, &rec.S3Key, &rec.Bucket, &rec.OriginalFileName,
		&rec.FileSize, &rec.ContentType, &status, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Status = domain.Status(status)
	return &rec, nil
}
