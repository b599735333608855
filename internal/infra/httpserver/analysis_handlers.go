package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/bryanwahyu/didim-interview/internal/application/analysis"
	"github.com/bryanwahyu/didim-interview/internal/domain/analysis"
	"github.com/bryanwahyu/didim-interview/internal/middleware"
)

// POST /api/analysis/start
// Body: {"s3Key": "videos/...", "bucket": "optional"}
func (r *Router) handleStartAnalysis(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		S3Key  string `json:"s3Key"`
		Bucket string `json:"bucket"`
	}
	if err := decodeJSON(w, req, &body); err != nil {
		return err
	}
	if err := middleware.ValidateS3Key(body.S3Key); err != nil {
		return err
	}

	res, err := r.analysis.StartAnalysis(req.Context(), appanalysis.StartCommand{S3Key: body.S3Key, Bucket: body.Bucket})
	if err != nil {
		return err
	}
	middleware.RecordAnalysis(failedJobs(res))
	return writeJSON(w, http.StatusOK, struct {
		envelope
		analysis.Dispatch
	}{ok(), res})
}

func failedJobs(d analysis.Dispatch) int {
	n := 0
	for _, j := range []analysis.Job{d.STT, d.FaceDetection, d.SegmentDetection} {
		if j.Status == analysis.StatusFailed {
			n++
		}
	}
	return n
}

// GET /api/analysis/status/{jobType}/{jobId}
func (r *Router) handleAnalysisStatus(w http.ResponseWriter, req *http.Request) error {
	jobType, jobID := chi.URLParam(req, "jobType"), chi.URLParam(req, "jobId")
	if err := middleware.ValidateJobType(jobType); err != nil {
		return err
	}
	if err := middleware.ValidateJobID(jobID); err != nil {
		return err
	}

	res := r.analysis.Status(req.Context(), jobType, jobID)
	return writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		appanalysis.StatusResult
	}{true, res})
}
