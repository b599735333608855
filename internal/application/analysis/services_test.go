package analysis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/didim-interview/internal/application"
	"github.com/bryanwahyu/didim-interview/internal/application/analysis"
	domain "github.com/bryanwahyu/didim-interview/internal/domain/analysis"
)

type fakeTranscriber struct {
	jobName string
	media   domain.Media
	err     error
}

func (f *fakeTranscriber) StartTranscription(_ context.Context, jobName string, media domain.Media) (string, error) {
	f.jobName, f.media = jobName, media
	if f.err != nil {
		return "", f.err
	}
	return jobName, nil
}

type fakeVideo struct {
	faceErr, segErr error
	calls           []string
}

func (f *fakeVideo) StartFaceDetection(_ context.Context, m domain.Media) (string, error) {
	f.calls = append(f.calls, "face:"+m.Bucket+"/"+m.Key)
	if f.faceErr != nil {
		return "", f.faceErr
	}
	return "face-job-1", nil
}

func (f *fakeVideo) StartSegmentDetection(_ context.Context, m domain.Media) (string, error) {
	f.calls = append(f.calls, "segment:"+m.Bucket+"/"+m.Key)
	if f.segErr != nil {
		return "", f.segErr
	}
	return "segment-job-1", nil
}

type resolver struct{}

func (resolver) ObjectURL(key string) string { return "https://recordings.s3.amazonaws.com/" + key }
func (resolver) Bucket() string              { return "recordings" }

func newService(tr *fakeTranscriber, v *fakeVideo) *analysis.Service {
	return &analysis.Service{
		Transcriber: tr,
		Video:       v,
		Media:       resolver{},
		Clock:       application.FixedClock{T: time.UnixMilli(1700000000999)},
		Log:         zerolog.Nop(),
	}
}

func TestStartAnalysisAllJobs(t *testing.T) {
	tr, v := &fakeTranscriber{}, &fakeVideo{}
	res, err := newService(tr, v).StartAnalysis(context.Background(), analysis.StartCommand{S3Key: "videos/a.webm"})
	require.NoError(t, err)

	assert.Equal(t, domain.Job{JobID: "interview-stt-1700000000999", Status: "IN_PROGRESS"}, res.STT)
	assert.Equal(t, domain.Job{JobID: "face-job-1", Status: "IN_PROGRESS"}, res.FaceDetection)
	assert.Equal(t, domain.Job{JobID: "segment-job-1", Status: "IN_PROGRESS"}, res.SegmentDetection)

	assert.Equal(t, "https://recordings.s3.amazonaws.com/videos/a.webm", tr.media.URI)
	assert.Equal(t, []string{"face:recordings/videos/a.webm", "segment:recordings/videos/a.webm"}, v.calls)
}

func TestStartAnalysisPartialFailure(t *testing.T) {
	tr, v := &fakeTranscriber{err: errors.New("AccessDenied")}, &fakeVideo{segErr: errors.New("throttled")}
	res, err := newService(tr, v).StartAnalysis(context.Background(), analysis.StartCommand{S3Key: "videos/a.webm", Bucket: "other"})
	require.NoError(t, err)

	assert.Equal(t, "FAILED", res.STT.Status)
	assert.Empty(t, res.STT.JobID)
	assert.Equal(t, "AccessDenied", res.STT.Error)
	assert.Equal(t, "IN_PROGRESS", res.FaceDetection.Status)
	assert.Equal(t, "FAILED", res.SegmentDetection.Status)
	assert.Equal(t, "throttled", res.SegmentDetection.Error)
	assert.Equal(t, "other", tr.media.Bucket)
	assert.Len(t, v.calls, 2)
}

func TestStartAnalysisRequiresKey(t *testing.T) {
	_, err := newService(&fakeTranscriber{}, &fakeVideo{}).StartAnalysis(context.Background(), analysis.StartCommand{S3Key: "  "})
	assert.ErrorIs(t, err, domain.ErrMissingKey)
}

func TestStatusPlaceholder(t *testing.T) {
	res := newService(&fakeTranscriber{}, &fakeVideo{}).Status(context.Background(), "stt", "job-1")
	assert.Equal(t, analysis.StatusResult{JobType: "stt", JobID: "job-1", Status: "IN_PROGRESS", Message: "분석 진행 중입니다"}, res)
}
