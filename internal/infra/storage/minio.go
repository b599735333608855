package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// Store is one bucket on S3 or MinIO. Stores created with WithBucket share the client.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
	endpoint   string
	secure     bool
	log        zerolog.Logger
}

// New buat koneksi S3/MinIO. Belum ada request ke server.
func New(endpoint, region, bucket, accessKey, secretKey string, useSSL bool, log zerolog.Logger) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Store{client: cli, bucketName: bucket, region: region, endpoint: endpoint, secure: useSSL, log: log}, nil
}

// WithBucket returns a store for another bucket on the same connection.
func (s *Store) WithBucket(bucket string) *Store {
	cp := *s
	cp.bucketName = bucket
	return &cp
}

func (s *Store) Bucket() string { return s.bucketName }

// EnsureBucket buat bucket kalau belum ada (dipakai untuk MinIO lokal)
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region})
	}
	return nil
}

// Check is the health probe: the bucket must be reachable and exist.
func (s *Store) Check(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s not found", s.bucketName)
	}
	return nil
}

// Put streams body into the bucket and returns the object URL.
func (s *Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	s.log.Info().Str("bucket", s.bucketName).Str("s3Key", key).Float64("sizeMB", float64(size)/1024/1024).Msg("uploading object")
	info, err := s.client.PutObject(ctx, s.bucketName, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	s.log.Info().Str("s3Key", key).Str("etag", info.ETag).Msg("object uploaded")
	return s.ObjectURL(key), nil
}

// Exists → false kalau NoSuchKey, error lain diteruskan
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return false, nil
	}
	return false, err
}

// PresignPut signs a PUT for exactly this key.
func (s *Store) PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucketName, key, expiry)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Read loads a whole object. Used for transcription output documents.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

// ObjectURL: virtual-host style di AWS, path style untuk endpoint lain (MinIO)
func (s *Store) ObjectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if isAWS(s.endpoint) {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucketName, escaped)
	}
	scheme := "http"
	if s.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucketName, escaped)
}

func isAWS(endpoint string) bool {
	return strings.HasSuffix(endpoint, "amazonaws.com")
}
