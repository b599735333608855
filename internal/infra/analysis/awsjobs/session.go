package awsjobs

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/rekognition"
	"github.com/aws/aws-sdk-go/service/transcribeservice"
	"github.com/rs/zerolog"
)

// Clients bundles the AWS session used for transcription and video analysis
type Clients struct {
	Transcribe  *Transcriber
	Rekognition *VideoAnalyzer
}

// NewClients builds both service clients from static credentials.
func NewClients(region, accessKey, secretKey, outputBucket string, log zerolog.Logger) (*Clients, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return &Clients{
		Transcribe:  NewTranscriber(transcribeservice.New(sess), outputBucket, log),
		Rekognition: NewVideoAnalyzer(rekognition.New(sess), log),
	}, nil
}
