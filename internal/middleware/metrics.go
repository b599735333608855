package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics stores application metrics
type Metrics struct {
	RequestsTotal      uint64
	RequestsInProgress uint64
	RequestsSuccess    uint64
	RequestsFailed     uint64
	PresignedURLs      uint64
	UploadsTotal       uint64
	UploadBytes        uint64
	AnalysesStarted    uint64
	AnalysisJobsFailed uint64
	EvaluationsTotal   uint64
	EvaluationsFailed  uint64
	StartTime          time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

func IncrementRequests() { atomic.AddUint64(&globalMetrics.RequestsTotal, 1) }
func IncrementInProgress() { atomic.AddUint64(&globalMetrics.RequestsInProgress, 1) }
func DecrementInProgress() { atomic.AddUint64(&globalMetrics.RequestsInProgress, ^uint64(0)) }
func IncrementSuccess() { atomic.AddUint64(&globalMetrics.RequestsSuccess, 1) }
func IncrementFailed() { atomic.AddUint64(&globalMetrics.RequestsFailed, 1) }
func IncrementPresigned() { atomic.AddUint64(&globalMetrics.PresignedURLs, 1) }
func IncrementEvaluations() { atomic.AddUint64(&globalMetrics.EvaluationsTotal, 1) }

// IncrementEvaluationsFailed counts evaluations that returned an error
func IncrementEvaluationsFailed() { atomic.AddUint64(&globalMetrics.EvaluationsFailed, 1) }

// RecordUpload counts one stored recording and its size
func RecordUpload(size int64) {
	atomic.AddUint64(&globalMetrics.UploadsTotal, 1)
	if size > 0 {
		atomic.AddUint64(&globalMetrics.UploadBytes, uint64(size))
	}
}

// RecordAnalysis counts one start request and how many of its jobs failed to start
func RecordAnalysis(failedJobs int) {
	atomic.AddUint64(&globalMetrics.AnalysesStarted, 1)
	if failedJobs > 0 {
		atomic.AddUint64(&globalMetrics.AnalysisJobsFailed, uint64(failedJobs))
	}
}

// GetMetrics returns current metrics
func GetMetrics() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]interface{}{
		"requests_total":       atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_in_progress": atomic.LoadUint64(&globalMetrics.RequestsInProgress),
		"requests_success":     atomic.LoadUint64(&globalMetrics.RequestsSuccess),
		"requests_failed":      atomic.LoadUint64(&globalMetrics.RequestsFailed),
		"presigned_urls":       atomic.LoadUint64(&globalMetrics.PresignedURLs),
		"uploads_total":        atomic.LoadUint64(&globalMetrics.UploadsTotal),
		"upload_bytes":         atomic.LoadUint64(&globalMetrics.UploadBytes),
		"analyses_started":     atomic.LoadUint64(&globalMetrics.AnalysesStarted),
		"analysis_jobs_failed": atomic.LoadUint64(&globalMetrics.AnalysisJobsFailed),
		"evaluations_total":    atomic.LoadUint64(&globalMetrics.EvaluationsTotal),
		"evaluations_failed":   atomic.LoadUint64(&globalMetrics.EvaluationsFailed),
		"uptime_seconds":       time.Since(globalMetrics.StartTime).Seconds(),
		"memory": map[string]interface{}{
			"alloc_bytes":       m.Alloc,
			"total_alloc_bytes": m.TotalAlloc,
			"sys_bytes":         m.Sys,
			"num_gc":            m.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		IncrementRequests()
		IncrementInProgress()
		defer DecrementInProgress()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			IncrementSuccess()
		} else {
			IncrementFailed()
		}
	})
}

// MetricsHandler returns metrics as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(GetMetrics())
}
