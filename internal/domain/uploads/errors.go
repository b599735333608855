package uploads

import "errors"

var (
	// ErrEmptyFile is returned when a direct upload carries no data.
	ErrEmptyFile = errors.New("파일이 제공되지 않았습니다")
	// ErrInvalidRequest covers malformed presign/upload parameters.
	ErrInvalidRequest = errors.New("invalid upload request")
)
