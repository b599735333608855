package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

const healthMessage = "Didim Interview Analysis API Server is running"

// HealthChecker defines interface for health checking
type HealthChecker interface {
	Check(ctx context.Context) error
}

// DatabaseHealthChecker checks database health
type DatabaseHealthChecker struct {
	DB *sql.DB
}

func (d *DatabaseHealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.DB.PingContext(ctx)
}

// Environment is the static part of the health report
type Environment struct {
	AWSRegion     string  `json:"aws_region"`
	AWSConfigured bool    `json:"aws_configured"`
	Buckets       Buckets `json:"buckets"`
}

type Buckets struct {
	Video    string `json:"video"`
	Analysis string `json:"analysis"`
	Profile  string `json:"profile"`
}

// HealthStatus represents the health status
type HealthStatus struct {
	Status      string                 `json:"status"`
	Message     string                 `json:"message"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment Environment            `json:"environment"`
	Checks      map[string]CheckStatus `json:"checks"`
}

// CheckStatus represents individual check status
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler reports OK, or DEGRADED with 503 when any checker fails
func HealthHandler(env Environment, checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := HealthStatus{
			Status:      "OK",
			Message:     healthMessage,
			Timestamp:   time.Now(),
			Environment: env,
			Checks:      make(map[string]CheckStatus),
		}

		for name, checker := range checkers {
			if err := checker.Check(ctx); err != nil {
				health.Status = "DEGRADED"
				health.Checks[name] = CheckStatus{Status: "DOWN", Message: err.Error()}
			} else {
				health.Checks[name] = CheckStatus{Status: "UP"}
			}
		}

		statusCode := http.StatusOK
		if health.Status != "OK" {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(health)
	}
}
