package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	appuploads "github.com/bryanwahyu/didim-interview/internal/application/uploads"
	"github.com/bryanwahyu/didim-interview/internal/domain/uploads"
	"github.com/bryanwahyu/didim-interview/internal/middleware"
)

// multipart parts above this size spill to temp files
const multipartMemory = 32 << 20

// POST /api/upload/presigned-url
// Body: {"fileName": "...", "fileType": "video/webm"}
func (r *Router) handlePresignedURL(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := decodeJSON(w, req, &body); err != nil {
		return err
	}
	body.FileName = middleware.SanitizeString(body.FileName)
	if err := middleware.ValidateFileName(body.FileName); err != nil {
		return err
	}
	if err := middleware.ValidateFileType(body.FileType); err != nil {
		return err
	}

	res, err := r.uploads.PresignedURL(req.Context(), body.FileName, body.FileType)
	if err != nil {
		return err
	}
	middleware.IncrementPresigned()
	return writeJSON(w, http.StatusOK, struct {
		envelope
		appuploads.PresignResult
	}{ok(), res})
}

// POST /api/upload/direct (multipart field "video")
func (r *Router) handleDirectUpload(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload)
	if err := req.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return err
		}
		return uploads.ErrEmptyFile
	}
	defer req.MultipartForm.RemoveAll()

	file, header, err := req.FormFile("video")
	if err != nil {
		return uploads.ErrEmptyFile
	}
	defer file.Close()

	res, err := r.uploads.DirectUpload(req.Context(), appuploads.DirectUploadCommand{
		FileName:    middleware.SanitizeString(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		return err
	}
	middleware.RecordUpload(res.FileSize)
	return writeJSON(w, http.StatusOK, struct {
		envelope
		appuploads.DirectUploadResult
	}{ok(), res})
}

// GET /api/upload/status/{s3Key...}; key boleh mengandung "/"
func (r *Router) handleUploadStatus(w http.ResponseWriter, req *http.Request) error {
	key, err := url.PathUnescape(chi.URLParam(req, "*"))
	if err != nil {
		return &middleware.ValidationError{Field: "s3Key", Message: fmt.Sprintf("bad escape: %v", err)}
	}
	if err := middleware.ValidateS3Key(key); err != nil {
		return err
	}

	res, err := r.uploads.Status(req.Context(), key)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		appuploads.StatusResult
	}{true, res})
}
