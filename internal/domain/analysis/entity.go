package analysis

// JobType identifies one of the three jobs started per recording
type JobType string

const (
	JobTranscription    JobType = "stt"
	JobFaceDetection    JobType = "face-detection"
	JobSegmentDetection JobType = "segment-detection"
)

const (
	StatusInProgress = "IN_PROGRESS"
	StatusFailed     = "FAILED"
)

// Job is the dispatch outcome of one analysis job. Completion is not tracked.
type Job struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Failed builds a job that never started.
func Failed(err error) Job {
	return Job{Status: StatusFailed, Error: err.Error()}
}

// Started builds a job accepted by the provider.
func Started(id string) Job {
	return Job{JobID: id, Status: StatusInProgress}
}

// Dispatch groups the three jobs started for one recording
type Dispatch struct {
	STT              Job `json:"stt"`
	FaceDetection    Job `json:"faceDetection"`
	SegmentDetection Job `json:"segmentDetection"`
}

// Media points at a recording in object storage.
type Media struct {
	Bucket string
	Key    string
	URI    string
}
