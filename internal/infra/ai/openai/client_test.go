package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/didim-interview/internal/domain/ai"
	"github.com/bryanwahyu/didim-interview/internal/domain/evaluation"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := openai.DefaultConfig("sk-test")
	cfg.BaseURL = srv.URL + "/v1"
	return NewClientWithConfig(cfg, "")
}

func sampleResult() *evaluation.Result {
	return evaluation.DefaultEngine().Evaluate(evaluation.Input{CandidateName: "김승무원"})
}

func TestNarrate(t *testing.T) {
	var got openai.ChatCompletionRequest
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  말하기 속도를 조금 높여 보세요.  "}}]}`))
	})

	text, err := c.Narrate(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, "말하기 속도를 조금 높여 보세요.", text)
	assert.Equal(t, defaultModel, got.Model)
	assert.Equal(t, maxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[1].Content, "Candidate: 김승무원")
	assert.Contains(t, got.Messages[1].Content, "(estimated)")
}

func TestNarrateQuota(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`))
	})

	_, err := c.Narrate(context.Background(), sampleResult())
	assert.ErrorIs(t, err, ai.ErrQuotaExceeded)
}

func TestNarrateEmptyChoices(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	})

	_, err := c.Narrate(context.Background(), sampleResult())
	assert.ErrorIs(t, err, errEmptyCompletion)
}

func TestIsReasoningModel(t *testing.T) {
	assert.True(t, isReasoningModel("o3-mini"))
	assert.True(t, isReasoningModel("gpt-5"))
	assert.False(t, isReasoningModel("gpt-4o-mini"))
}

var _ ai.Coach = (*Client)(nil)
