package backend

import (
	"fmt"
	"io"
	"net/http"
)

// Endpoint paths on the transcription service
const (
	ListPath       = "/transcriptions"
	TranscribePath = "/transcribe"
	SearchPath     = "/search"
	HealthPath     = "/health"

	// FilesField is the multipart field repeated once per uploaded file
	FilesField = "files"
	// SearchParam is the query parameter carrying the filename filter
	SearchParam = "audio_filename"
)

// Operation names used in errors, logs and metrics
const (
	OpList   = "list"
	OpUpload = "upload"
	OpSearch = "search"
	OpHealth = "health"
)

// ProgressFunc wraps the encoded upload body, e.g. to drive a progress bar
type ProgressFunc func(body io.Reader, size int64) io.Reader

// RequestError describes a failed call to the transcription service
type RequestError struct {
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		if e.Detail != "" {
			return fmt.Sprintf("%s: backend returned %d %s: %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
		}
		return fmt.Sprintf("%s: backend returned %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RequestError) Unwrap() error {
	return e.Err
}

// errorBody is the FastAPI error shape, {"detail": "..."}
type errorBody struct {
	Detail interface{} `json:"detail"`
}

type healthBody struct {
	Status string `json:"status"`
}
