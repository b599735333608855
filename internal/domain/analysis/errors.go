package analysis

import "errors"

// ErrMissingKey is returned when analysis is requested without a storage key.
var ErrMissingKey = errors.New("s3Key is required")
