package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/bryanwahyu/didim-interview/internal/domain/uploads"
)

type UploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS upload_records (
 id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
 s3_key VARCHAR(512) NOT NULL,
 bucket VARCHAR(255) NOT NULL,
 original_file_name VARCHAR(255) NOT NULL,
 file_size BIGINT NOT NULL,
 content_type VARCHAR(255) NOT NULL,
 upload_status VARCHAR(16) NOT NULL,
 created_at DATETIME(3) NOT NULL,
 UNIQUE KEY uq_upload_records_s3_key (s3_key)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

// EnsureSchema bikin tabel kalau belum ada
func (r *UploadRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Save insert record baru, ID diisi dari auto increment
func (r *UploadRepository) Save(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	const q = `
INSERT INTO upload_records
(s3_key, bucket, original_file_name, file_size, content_type, upload_status, created_at)
VALUES (?,?,?,?,?,?,?);`

	out := *rec
	out.OriginalFileName = stringOrDash(rec.OriginalFileName)
	out.Status = statusOrCompleted(rec.Status)
	out.CreatedAt = nowIfZero(rec.CreatedAt)

	res, err := r.db.ExecContext(ctx, q,
		out.S3Key, out.Bucket, out.OriginalFileName, out.FileSize, out.ContentType, string(out.Status), out.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert upload record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out.ID = id
	return &out, nil
}

const selectColumns = `
SELECT id, s3_key, bucket, original_file_name, file_size, content_type, upload_status, created_at
FROM upload_records`

// FindByBucketAndKey → nil, nil kalau tidak ada
func (r *UploadRepository) FindByBucketAndKey(ctx context.Context, bucket, s3Key string) (*domain.Record, error) {
	return r.one(r.db.QueryRowContext(ctx, selectColumns+` WHERE bucket=? AND s3_key=? LIMIT 1;`, bucket, s3Key))
}

func (r *UploadRepository) one(row *sql.Row) (*domain.Record, error) {
	var rec domain.Record
	var status string
	if err := row.Scan(
		&rec.ID, &rec.S3Key, &rec.Bucket, &rec.OriginalFileName,
		&rec.FileSize, &rec.ContentType, &status, &rec.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	rec.Status = domain.Status(status)
	return &rec, nil
}
