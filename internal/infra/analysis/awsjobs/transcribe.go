package awsjobs

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/transcribeservice"
	"github.com/aws/aws-sdk-go/service/transcribeservice/transcribeserviceiface"
	"github.com/rs/zerolog"

	"github.com/bryanwahyu/didim-interview/internal/domain/analysis"
)

const (
	mediaFormat  = transcribeservice.MediaFormatWebm
	languageCode = transcribeservice.LanguageCodeKoKr
)

// Transcriber starts Amazon Transcribe jobs that write their output to outputBucket.
type Transcriber struct {
	api          transcribeserviceiface.TranscribeServiceAPI
	outputBucket string
	log          zerolog.Logger
}

func NewTranscriber(api transcribeserviceiface.TranscribeServiceAPI, outputBucket string, log zerolog.Logger) *Transcriber {
	return &Transcriber{api: api, outputBucket: outputBucket, log: log}
}

// StartTranscription returns jobName as the job id; Transcribe identifies jobs by name.
func (t *Transcriber) StartTranscription(ctx context.Context, jobName string, media analysis.Media) (string, error) {
	_, err := t.api.StartTranscriptionJobWithContext(ctx, &transcribeservice.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
		Media:                &transcribeservice.Media{MediaFileUri: aws.String(media.URI)},
		MediaFormat:          aws.String(mediaFormat),
		LanguageCode:         aws.String(languageCode),
		OutputBucketName:     aws.String(t.outputBucket),
	})
	if err != nil {
		return "", err
	}
	t.log.Debug().Str("jobName", jobName).Str("mediaUri", media.URI).Msg("transcription job submitted")
	return jobName, nil
}
