package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bryanwahyu/didim-interview/internal/application"
	domain "github.com/bryanwahyu/didim-interview/internal/domain/analysis"
)

const inProgressMessage = "분석 진행 중입니다"

// URLResolver builds the object URL the transcriber reads media from.
type URLResolver interface {
	ObjectURL(key string) string
	Bucket() string
}

// Service starts the three AWS analysis jobs for one recording
type Service struct {
	Transcriber domain.Transcriber
	Video       domain.VideoAnalyzer
	Media       URLResolver
	Clock       application.Clock
	Log         zerolog.Logger
}

type StartCommand struct {
	S3Key  string
	Bucket string
}

type StatusResult struct {
	JobType string `json:"jobType"`
	JobID   string `json:"jobId"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// StartAnalysis jalanin STT, face detection, segment detection berurutan.
// Gagal di satu job tidak menghentikan job lain.
func (s *Service) StartAnalysis(ctx context.Context, cmd StartCommand) (domain.Dispatch, error) {
	key := strings.TrimSpace(cmd.S3Key)
	if key == "" {
		return domain.Dispatch{}, domain.ErrMissingKey
	}
	bucket := cmd.Bucket
	if bucket == "" {
		bucket = s.Media.Bucket()
	}
	media := domain.Media{Bucket: bucket, Key: key, URI: s.Media.ObjectURL(key)}
	s.Log.Info().Str("s3Key", key).Str("bucket", bucket).Msg("starting analysis jobs")

	jobName := fmt.Sprintf("interview-stt-%d", application.OrSystem(s.Clock).Now().UnixMilli())
	return domain.Dispatch{
		STT: s.run(domain.JobTranscription, func() (string, error) {
			return s.Transcriber.StartTranscription(ctx, jobName, media)
		}),
		FaceDetection: s.run(domain.JobFaceDetection, func() (string, error) {
			return s.Video.StartFaceDetection(ctx, media)
		}),
		SegmentDetection: s.run(domain.JobSegmentDetection, func() (string, error) {
			return s.Video.StartSegmentDetection(ctx, media)
		}),
	}, nil
}

func (s *Service) run(kind domain.JobType, start func() (string, error)) domain.Job {
	id, err := start()
	if err != nil {
		s.Log.Error().Err(err).Str("jobType", string(kind)).Msg("analysis job failed to start")
		return domain.Failed(err)
	}
	s.Log.Info().Str("jobType", string(kind)).Str("jobId", id).Msg("analysis job started")
	return domain.Started(id)
}

// Status belum query AWS, selalu IN_PROGRESS
func (s *Service) Status(_ context.Context, jobType, jobID string) StatusResult {
	return StatusResult{
		JobType: jobType,
		JobID:   jobID,
		Status:  domain.StatusInProgress,
		Message: inProgressMessage,
	}
}
