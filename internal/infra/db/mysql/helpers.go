package mysql

import (
	"strings"
	"time"

	domain "github.com/bryanwahyu/didim-interview/internal/domain/uploads"
)

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// statusOrCompleted default status sama seperti record lama
func statusOrCompleted(s domain.Status) domain.Status {
	if s == "" {
		return domain.StatusCompleted
	}
	return s
}

func nowIfZero(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
