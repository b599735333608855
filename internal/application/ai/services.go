package ai

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bryanwahyu/didim-interview/internal/domain/ai"
	"github.com/bryanwahyu/didim-interview/internal/domain/evaluation"
)

const defaultTimeout = 20 * time.Second

// Service wraps an optional Coach. A missing or failing coach yields empty feedback.
type Service struct {
	coach   ai.Coach
	timeout time.Duration
	log     zerolog.Logger
}

func NewService(coach ai.Coach, log zerolog.Logger) *Service {
	return &Service{coach: coach, timeout: defaultTimeout, log: log}
}

// Enabled reports whether a coach is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.coach != nil
}

// Feedback minta catatan coaching; error cuma di-log, tidak pernah dikembalikan
func (s *Service) Feedback(ctx context.Context, res *evaluation.Result) string {
	if !s.Enabled() || res == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.coach.Narrate(ctx, res)
	if err != nil {
		ev := s.log.Warn().Err(err).Str("interviewId", res.InterviewID)
		if errors.Is(err, ai.ErrQuotaExceeded) {
			ev = ev.Bool("quotaExceeded", true)
		}
		ev.Msg("ai feedback skipped")
		return ""
	}
	return text
}
