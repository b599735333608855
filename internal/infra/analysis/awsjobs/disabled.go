package awsjobs

import (
	"context"
	"errors"

	"github.com/bryanwahyu/didim-interview/internal/domain/analysis"
)

// ErrNotConfigured is reported per job when the server runs without AWS credentials.
var ErrNotConfigured = errors.New("aws credentials not configured")

// Disabled stands in for Transcribe and Rekognition when credentials are missing.
type Disabled struct{}

func (Disabled) StartTranscription(context.Context, string, analysis.Media) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) StartFaceDetection(context.Context, analysis.Media) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) StartSegmentDetection(context.Context, analysis.Media) (string, error) {
	return "", ErrNotConfigured
}
