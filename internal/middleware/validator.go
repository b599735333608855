package middleware

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationError is a rejected request parameter; handlers answer 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

var (
	jobIDPattern   = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,200}$`)
	jobTypePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// ValidateFileName: wajib, 1-255 karakter
func ValidateFileName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("fileName", "파일명은 필수입니다")
	}
	if n := utf8.RuneCountInString(name); n > 255 {
		return invalid("fileName", "파일명은 1-255자여야 합니다")
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return invalid("fileName", "invalid characters in file name")
	}
	return nil
}

// ValidateFileType requires a non-blank MIME type
func ValidateFileType(fileType string) error {
	fileType = strings.TrimSpace(fileType)
	if fileType == "" {
		return invalid("fileType", "파일 타입은 필수입니다")
	}
	if len(fileType) > 255 || strings.ContainsAny(fileType, "\r\n\x00") {
		return invalid("fileType", "invalid file type")
	}
	return nil
}

// ValidateS3Key blocks empty keys, traversal and absolute paths
func ValidateS3Key(key string) error {
	if strings.TrimSpace(key) == "" {
		return invalid("s3Key", "S3 키는 필수입니다")
	}
	if len(key) > 1024 {
		return invalid("s3Key", "key too long")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return invalid("s3Key", "path traversal detected")
	}
	if strings.ContainsAny(key, "\r\n\x00") {
		return invalid("s3Key", "invalid characters in key")
	}
	return nil
}

// ValidateJobID validates provider job ids and transcription job names
func ValidateJobID(id string) error {
	if !jobIDPattern.MatchString(id) {
		return invalid("jobId", "invalid job id format")
	}
	return nil
}

// ValidateJobType checks format only; the status endpoint echoes any job type
func ValidateJobType(jobType string) error {
	if !jobTypePattern.MatchString(jobType) {
		return invalid("jobType", "invalid job type format")
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
