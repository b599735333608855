package uploads

import "time"

// Status of an upload record
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Record is one uploaded interview recording. Created once, never mutated.
type Record struct {
	ID               int64     `json:"id"`
	S3Key            string    `json:"s3Key"`
	Bucket           string    `json:"bucket"`
	OriginalFileName string    `json:"originalFileName"`
	FileSize         int64     `json:"fileSize"`
	ContentType      string    `json:"contentType"`
	Status           Status    `json:"uploadStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}
