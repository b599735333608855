package evaluation

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bryanwahyu/didim-interview/internal/application"
	appai "github.com/bryanwahyu/didim-interview/internal/application/ai"
	"github.com/bryanwahyu/didim-interview/internal/domain/analysis"
	domain "github.com/bryanwahyu/didim-interview/internal/domain/evaluation"
)

const (
	DemoInterviewID   = "demo-interview-001"
	DemoCandidateName = "김승무원"
)

var (
	//go:embed demo/transcription.json
	demoTranscription []byte
	//go:embed demo/faces.json
	demoFaces []byte
)

// Service resolves analysis documents and scores them with the engine.
type Service struct {
	Engine  *domain.Engine
	Results analysis.ResultSource // nil kalau AWS belum dikonfigurasi
	Coach   *appai.Service
	Clock   application.Clock
	Log     zerolog.Logger
}

type EvaluateCommand struct {
	InterviewID       string
	CandidateName     string
	TranscribeJobID   string
	RekognitionJobID  string
	TranscribeResult  []byte
	RekognitionResult []byte
}

// Evaluate: dokumen inline → fetch by job id → demo
func (s *Service) Evaluate(ctx context.Context, cmd EvaluateCommand) (*domain.Result, error) {
	transcription, err := s.resolve(ctx, cmd.TranscribeResult, cmd.TranscribeJobID, demoTranscription, s.transcription)
	if err != nil {
		return nil, fmt.Errorf("load transcription %s: %w", cmd.TranscribeJobID, err)
	}
	faces, err := s.resolve(ctx, cmd.RekognitionResult, cmd.RekognitionJobID, demoFaces, s.faces)
	if err != nil {
		return nil, fmt.Errorf("load face detection %s: %w", cmd.RekognitionJobID, err)
	}

	s.Log.Info().Str("interviewId", cmd.InterviewID).Str("candidate", cmd.CandidateName).Msg("evaluation started")
	res := s.engine().Evaluate(domain.Input{
		InterviewID:   cmd.InterviewID,
		CandidateName: cmd.CandidateName,
		Transcription: transcription,
		VideoAnalysis: faces,
		EvaluatedAt:   application.OrSystem(s.Clock).Now(),
	})
	res.AIFeedback = s.Coach.Feedback(ctx, res)

	s.Log.Info().
		Str("interviewId", res.InterviewID).
		Float64("overallScore", res.OverallScore).
		Str("grade", res.OverallGrade).
		Msg("evaluation finished")
	return res, nil
}

// Demo evaluates the built-in sample documents.
func (s *Service) Demo(ctx context.Context) (*domain.Result, error) {
	return s.Evaluate(ctx, EvaluateCommand{InterviewID: DemoInterviewID, CandidateName: DemoCandidateName})
}

func (s *Service) engine() *domain.Engine {
	if s.Engine == nil {
		return domain.DefaultEngine()
	}
	return s.Engine
}

type fetchFunc func(ctx context.Context, id string) ([]byte, error)

func (s *Service) resolve(ctx context.Context, inline []byte, jobID string, demo []byte, fetch fetchFunc) ([]byte, error) {
	if len(inline) > 0 && string(inline) != "null" {
		return inline, nil
	}
	if id := strings.TrimSpace(jobID); id != "" && s.Results != nil {
		return fetch(ctx, id)
	}
	return demo, nil
}

func (s *Service) transcription(ctx context.Context, id string) ([]byte, error) {
	return s.Results.TranscriptionDocument(ctx, id)
}

func (s *Service) faces(ctx context.Context, id string) ([]byte, error) {
	return s.Results.FaceDetectionDocument(ctx, id)
}
