package ai_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	appai "github.com/bryanwahyu/didim-interview/internal/application/ai"
	"github.com/bryanwahyu/didim-interview/internal/domain/ai"
	"github.com/bryanwahyu/didim-interview/internal/domain/evaluation"
)

type stubCoach struct {
	text string
	err  error
}

func (s stubCoach) Narrate(context.Context, *evaluation.Result) (string, error) {
	return s.text, s.err
}

func TestFeedback(t *testing.T) {
	res := &evaluation.Result{InterviewID: "i-1"}

	var nilSvc *appai.Service
	assert.False(t, nilSvc.Enabled())
	assert.Equal(t, "", nilSvc.Feedback(context.Background(), res))

	assert.Equal(t, "", appai.NewService(nil, zerolog.Nop()).Feedback(context.Background(), res))

	ok := appai.NewService(stubCoach{text: "좋습니다"}, zerolog.Nop())
	assert.True(t, ok.Enabled())
	assert.Equal(t, "좋습니다", ok.Feedback(context.Background(), res))

	quota := appai.NewService(stubCoach{err: fmt.Errorf("openai: %w", ai.ErrQuotaExceeded)}, zerolog.Nop())
	assert.Equal(t, "", quota.Feedback(context.Background(), res))
}
