package awsjobs

import (
	"context"
	"fmt"
)

// DocumentReader reads whole objects from the analysis bucket.
type DocumentReader interface {
	Read(ctx context.Context, key string) ([]byte, error)
}

// FaceFetcher loads Rekognition face detection output by job id.
type FaceFetcher interface {
	FaceDetectionDocument(ctx context.Context, jobID string) ([]byte, error)
}

// ResultSource reads Transcribe output (<jobName>.json in the analysis bucket)
// and Rekognition face detection output.
type ResultSource struct {
	Documents DocumentReader
	Faces     FaceFetcher
}

func (r ResultSource) TranscriptionDocument(ctx context.Context, jobName string) ([]byte, error) {
	data, err := r.Documents.Read(ctx, jobName+".json")
	if err != nil {
		return nil, fmt.Errorf("read transcription output: %w", err)
	}
	return data, nil
}

func (r ResultSource) FaceDetectionDocument(ctx context.Context, jobID string) ([]byte, error) {
	data, err := r.Faces.FaceDetectionDocument(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get face detection: %w", err)
	}
	return data, nil
}
