package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, endpoint string, secure bool) *Store {
	t.Helper()
	s, err := New(endpoint, "ap-northeast-2", "recordings", "AKID", "SECRET", secure, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestObjectURL(t *testing.T) {
	aws := newTestStore(t, "s3.amazonaws.com", true)
	assert.Equal(t, "https://recordings.s3.amazonaws.com/videos/interview-1-abcd1234.webm", aws.ObjectURL("videos/interview-1-abcd1234.webm"))

	local := newTestStore(t, "localhost:9000", false)
	assert.Equal(t, "http://localhost:9000/recordings/videos/a.webm", local.ObjectURL("videos/a.webm"))

	analysis := local.WithBucket("analysis")
	assert.Equal(t, "analysis", analysis.Bucket())
	assert.Equal(t, "recordings", local.Bucket())
	assert.Equal(t, "http://localhost:9000/analysis/x.json", analysis.ObjectURL("x.json"))
}

func TestPresignPut(t *testing.T) {
	s := newTestStore(t, "localhost:9000", false)
	u, err := s.PresignPut(context.Background(), "videos/a.webm", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, u, "/recordings/videos/a.webm")
	assert.Contains(t, u, "X-Amz-Expires=3600")
}

func TestExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/present.webm") {
			w.Header().Set("Content-Length", "4")
			w.Header().Set("Content-Type", "video/webm")
			w.Header().Set("ETag", `"abc"`)
			w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := newTestStore(t, strings.TrimPrefix(srv.URL, "http://"), false)

	ok, err := s.Exists(context.Background(), "videos/present.webm")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(context.Background(), "videos/missing.webm")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRead(t *testing.T) {
	const doc = `{"results":{"transcripts":[{"transcript":"안녕하세요"}]}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("ETag", `"abc"`)
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	s := newTestStore(t, strings.TrimPrefix(srv.URL, "http://"), false).WithBucket("analysis")
	got, err := s.Read(context.Background(), "interview-stt-1.json")
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(got))
}
