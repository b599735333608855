package awsjobs

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/rekognition"
	"github.com/aws/aws-sdk-go/service/rekognition/rekognitioniface"
	"github.com/rs/zerolog"

	"github.com/bryanwahyu/didim-interview/internal/domain/analysis"
)

var errNoJobID = errors.New("rekognition returned no job id")

// VideoAnalyzer starts Rekognition video jobs and reads face detection output.
type VideoAnalyzer struct {
	api rekognitioniface.RekognitionAPI
	log zerolog.Logger
}

func NewVideoAnalyzer(api rekognitioniface.RekognitionAPI, log zerolog.Logger) *VideoAnalyzer {
	return &VideoAnalyzer{api: api, log: log}
}

func video(m analysis.Media) *rekognition.Video {
	return &rekognition.Video{S3Object: &rekognition.S3Object{
		Bucket: aws.String(m.Bucket),
		Name:   aws.String(m.Key),
	}}
}

func (v *VideoAnalyzer) StartFaceDetection(ctx context.Context, media analysis.Media) (string, error) {
	out, err := v.api.StartFaceDetectionWithContext(ctx, &rekognition.StartFaceDetectionInput{
		Video:          video(media),
		FaceAttributes: aws.String(rekognition.FaceAttributesAll),
	})
	if err != nil {
		return "", err
	}
	return jobID(out.JobId)
}

func (v *VideoAnalyzer) StartSegmentDetection(ctx context.Context, media analysis.Media) (string, error) {
	out, err := v.api.StartSegmentDetectionWithContext(ctx, &rekognition.StartSegmentDetectionInput{
		Video:        video(media),
		SegmentTypes: aws.StringSlice([]string{rekognition.SegmentTypeTechnicalCue, rekognition.SegmentTypeShot}),
	})
	if err != nil {
		return "", err
	}
	return jobID(out.JobId)
}

func jobID(id *string) (string, error) {
	if aws.StringValue(id) == "" {
		return "", errNoJobID
	}
	return *id, nil
}

// faceDocument mirrors the GetFaceDetection response shape with every page merged.
type faceDocument struct {
	JobStatus     string                       `json:"JobStatus"`
	StatusMessage string                       `json:"StatusMessage,omitempty"`
	Faces         []*rekognition.FaceDetection `json:"Faces"`
}

// FaceDetectionDocument collects all result pages and returns them as one JSON document.
func (v *VideoAnalyzer) FaceDetectionDocument(ctx context.Context, id string) ([]byte, error) {
	doc := faceDocument{Faces: []*rekognition.FaceDetection{}}
	err := v.api.GetFaceDetectionPagesWithContext(ctx, &rekognition.GetFaceDetectionInput{JobId: aws.String(id)},
		func(page *rekognition.GetFaceDetectionOutput, _ bool) bool {
			doc.JobStatus = aws.StringValue(page.JobStatus)
			doc.StatusMessage = aws.StringValue(page.StatusMessage)
			doc.Faces = append(doc.Faces, page.Faces...)
			return true
		})
	if err != nil {
		return nil, err
	}
	v.log.Debug().Str("jobId", id).Str("jobStatus", doc.JobStatus).Int("faces", len(doc.Faces)).Msg("face detection fetched")
	return json.Marshal(doc)
}
