package uploads

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bryanwahyu/didim-interview/internal/application"
	domain "github.com/bryanwahyu/didim-interview/internal/domain/uploads"
)

const defaultExtension = "webm"

// Service implements use-cases untuk upload rekaman interview
type Service struct {
	Repo          domain.Repository
	Store         domain.ObjectStore
	Clock         application.Clock
	PresignExpiry time.Duration
	Log           zerolog.Logger
}

type PresignResult struct {
	PresignedURL string `json:"presignedUrl"`
	S3Key        string `json:"s3Key"`
	Bucket       string `json:"bucket"`
	ExpiresIn    int    `json:"expiresIn"`
}

// DirectUploadCommand carries one multipart file.
type DirectUploadCommand struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type DirectUploadResult struct {
	S3URL       string  `json:"s3Url"`
	S3Key       string  `json:"s3Key"`
	Bucket      string  `json:"bucket"`
	FileSize    int64   `json:"fileSize"`
	UploadTime  float64 `json:"uploadTime"`
	UploadSpeed float64 `json:"uploadSpeed"`
}

type StatusResult struct {
	Exists bool           `json:"exists"`
	Record *domain.Record `json:"record"`
	S3Key  string         `json:"s3Key"`
}

// GenerateKey → videos/interview-<millis>-<8 char uuid>.<ext>
func (s *Service) GenerateKey(fileName string) string {
	now := application.OrSystem(s.Clock).Now()
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("videos/interview-%d-%s.%s", now.UnixMilli(), id, extension(fileName))
}

// extension is the text after the last dot, webm when absent or empty
func extension(fileName string) string {
	i := strings.LastIndex(fileName, ".")
	if i < 0 || i == len(fileName)-1 {
		return defaultExtension
	}
	return fileName[i+1:]
}

func (s *Service) expiry() time.Duration {
	if s.PresignExpiry <= 0 {
		return time.Hour
	}
	return s.PresignExpiry
}

// PresignedURL generate key lalu presign PUT untuk key yang sama
func (s *Service) PresignedURL(ctx context.Context, fileName, fileType string) (PresignResult, error) {
	if strings.TrimSpace(fileName) == "" || strings.TrimSpace(fileType) == "" {
		return PresignResult{}, domain.ErrInvalidRequest
	}

	key := s.GenerateKey(fileName)
	url, err := s.Store.PresignPut(ctx, key, s.expiry())
	if err != nil {
		return PresignResult{}, fmt.Errorf("presign %s: %w", key, err)
	}
	s.Log.Info().Str("s3Key", key).Str("contentType", fileType).Int("urlLength", len(url)).Msg("presigned url generated")

	return PresignResult{
		PresignedURL: url,
		S3Key:        key,
		Bucket:       s.Store.Bucket(),
		ExpiresIn:    int(s.expiry().Seconds()),
	}, nil
}

// DirectUpload stream file ke storage → simpan record → hitung kecepatan upload
func (s *Service) DirectUpload(ctx context.Context, cmd DirectUploadCommand) (DirectUploadResult, error) {
	if cmd.Body == nil || cmd.Size <= 0 {
		return DirectUploadResult{}, domain.ErrEmptyFile
	}

	clock := application.OrSystem(s.Clock)
	name := cmd.FileName
	if name == "" {
		name = "video"
	}
	contentType := cmd.ContentType
	if contentType == "" {
		contentType = "video/webm"
	}

	start := clock.Now()
	key := s.GenerateKey(name)
	url, err := s.Store.Put(ctx, key, cmd.Body, cmd.Size, contentType)
	if err != nil {
		return DirectUploadResult{}, fmt.Errorf("upload %s: %w", key, err)
	}
	elapsed := clock.Now().Sub(start).Seconds()

	original := cmd.FileName
	if original == "" {
		original = "unknown"
	}
	if _, err := s.Repo.Save(ctx, &domain.Record{
		S3Key:            key,
		Bucket:           s.Store.Bucket(),
		OriginalFileName: original,
		FileSize:         cmd.Size,
		ContentType:      contentType,
		Status:           domain.StatusCompleted,
		CreatedAt:        clock.Now(),
	}); err != nil {
		return DirectUploadResult{}, fmt.Errorf("save upload record: %w", err)
	}

	res := DirectUploadResult{
		S3URL:       url,
		S3Key:       key,
		Bucket:      s.Store.Bucket(),
		FileSize:    cmd.Size,
		UploadTime:  elapsed,
		UploadSpeed: Mbps(cmd.Size, elapsed),
	}
	s.Log.Info().Str("s3Key", key).Int64("size", cmd.Size).Float64("seconds", elapsed).Msg("file uploaded")
	return res, nil
}

// Mbps converts bytes over seconds to megabits per second; 0 when no time elapsed.
func Mbps(size int64, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(size) / 1024.0 / 1024.0 * 8 / seconds
}

// Status cek objek di storage dan record di database
func (s *Service) Status(ctx context.Context, key string) (StatusResult, error) {
	if strings.TrimSpace(key) == "" {
		return StatusResult{}, domain.ErrInvalidRequest
	}
	exists, err := s.Store.Exists(ctx, key)
	if err != nil {
		return StatusResult{}, fmt.Errorf("stat %s: %w", key, err)
	}
	rec, err := s.Repo.FindByBucketAndKey(ctx, s.Store.Bucket(), key)
	if err != nil {
		return StatusResult{}, fmt.Errorf("find record %s: %w", key, err)
	}
	return StatusResult{Exists: exists, Record: rec, S3Key: key}, nil
}
