package analysis

import "context"

// Transcriber starts speech-to-text jobs.
type Transcriber interface {
	StartTranscription(ctx context.Context, jobName string, media Media) (string, error)
}

// VideoAnalyzer starts face and segment detection jobs on a stored video.
type VideoAnalyzer interface {
	StartFaceDetection(ctx context.Context, media Media) (string, error)
	StartSegmentDetection(ctx context.Context, media Media) (string, error)
}

// ResultSource loads finished job output as raw JSON documents.
type ResultSource interface {
	TranscriptionDocument(ctx context.Context, jobName string) ([]byte, error)
	FaceDetectionDocument(ctx context.Context, jobID string) ([]byte, error)
}
