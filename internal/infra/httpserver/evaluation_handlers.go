package httpserver

import (
	"encoding/json"
	"net/http"

	appevaluation "github.com/bryanwahyu/didim-interview/internal/application/evaluation"
	"github.com/bryanwahyu/didim-interview/internal/middleware"
)

// POST /api/evaluation/analyze
// Dokumen inline dipakai duluan, lalu job id, terakhir data demo
func (r *Router) handleEvaluate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		InterviewID       string          `json:"interviewId"`
		CandidateName     string          `json:"candidateName"`
		TranscribeJobID   string          `json:"transcribeJobId"`
		RekognitionJobID  string          `json:"rekognitionJobId"`
		TranscribeResult  json.RawMessage `json:"transcribeResult"`
		RekognitionResult json.RawMessage `json:"rekognitionResult"`
	}
	if err := decodeJSON(w, req, &body); err != nil {
		return err
	}
	for _, id := range []string{body.TranscribeJobID, body.RekognitionJobID} {
		if id == "" {
			continue
		}
		if err := middleware.ValidateJobID(id); err != nil {
			return err
		}
	}

	res, err := r.evaluation.Evaluate(req.Context(), appevaluation.EvaluateCommand{
		InterviewID:       middleware.SanitizeString(body.InterviewID),
		CandidateName:     middleware.SanitizeString(body.CandidateName),
		TranscribeJobID:   body.TranscribeJobID,
		RekognitionJobID:  body.RekognitionJobID,
		TranscribeResult:  body.TranscribeResult,
		RekognitionResult: body.RekognitionResult,
	})
	if err != nil {
		middleware.IncrementEvaluationsFailed()
		return err
	}
	middleware.IncrementEvaluations()
	return writeJSON(w, http.StatusOK, res)
}

// GET /api/evaluation/demo
func (r *Router) handleDemo(w http.ResponseWriter, req *http.Request) error {
	res, err := r.evaluation.Demo(req.Context())
	if err != nil {
		middleware.IncrementEvaluationsFailed()
		return err
	}
	middleware.IncrementEvaluations()
	return writeJSON(w, http.StatusOK, res)
}
