package uploads

import (
	"context"
	"io"
	"time"
)

// Repository port (persistence of upload records)
type Repository interface {
	Save(ctx context.Context, r *Record) (*Record, error)
	FindByBucketAndKey(ctx context.Context, bucket, s3Key string) (*Record, error)
}

// ObjectStore port (object storage for recordings)
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error)
	ObjectURL(key string) string
	Bucket() string
}
