package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"transcribe-ui/internal/app/model"
)

// UploadedPart is one file part received by the fake service
type UploadedPart struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RecordedRequest is a request the fake service has seen
type RecordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Parts       []UploadedPart
}

// FakeBackend is an in-memory stand-in for the transcription service.
// Uploaded files become records whose text is derived from the file name.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	records  []model.Transcription
	requests []RecordedRequest
	failures map[string]int
	clock    time.Time
}

// NewFakeBackend starts a fake service seeded with records; it is closed on test cleanup
func NewFakeBackend(t *testing.T, seed ...model.Transcription) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{
		records:  append([]model.Transcription{}, seed...),
		failures: make(map[string]int),
		clock:    time.Date(2025, 1, 1, 8, 58, 30, 543544000, time.UTC),
	}
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.serveHTTP))
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL returns the base URL of the fake service
func (fb *FakeBackend) URL() string {
	return fb.Server.URL
}

// FailNext makes the next call to path answer with status
func (fb *FakeBackend) FailNext(path string, status int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failures[path] = status
}

// Records returns a copy of the stored records
func (fb *FakeBackend) Records() []model.Transcription {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]model.Transcription{}, fb.records...)
}

// Requests returns every request seen so far
func (fb *FakeBackend) Requests() []RecordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]RecordedRequest{}, fb.requests...)
}

// CountRequests returns how many requests hit path
func (fb *FakeBackend) CountRequests(path string) int {
	n := 0
	for _, r := range fb.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (fb *FakeBackend) serveHTTP(w http.ResponseWriter, r *http.Request) {
	rec := RecordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		RawQuery:    r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
	}

	if r.URL.Path == "/transcribe" && r.Method == http.MethodPost {
		parts, err := readParts(r)
		if err != nil {
			fb.record(rec)
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
			return
		}
		rec.Parts = parts
	}
	fb.record(rec)

	if status, ok := fb.takeFailure(r.URL.Path); ok {
		writeJSON(w, status, map[string]string{"detail": "injected failure"})
		return
	}

	switch {
	case r.URL.Path == "/health" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case r.URL.Path == "/transcriptions" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, fb.Records())
	case r.URL.Path == "/search" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, fb.search(r.URL.Query().Get("audio_filename")))
	case r.URL.Path == "/transcribe" && r.Method == http.MethodPost:
		fb.transcribe(w, rec.Parts)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (fb *FakeBackend) transcribe(w http.ResponseWriter, parts []UploadedPart) {
	if len(parts) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "files: field required"})
		return
	}
	for _, p := range parts {
		if !strings.HasPrefix(p.ContentType, "audio/") {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid file type. Audio files are required."})
			return
		}
	}

	fb.mu.Lock()
	results := make([]map[string]string, 0, len(parts))
	for _, p := range parts {
		fb.clock = fb.clock.Add(time.Second)
		text := strings.TrimSuffix(p.Filename, ".mp3") + " transcription"
		fb.records = append(fb.records, model.Transcription{
			AudioFilename:   p.Filename,
			TranscribedText: text,
			CreatedAt:       fb.clock.Format("2006-01-02 15:04:05.000000"),
		})
		results = append(results, map[string]string{"audio_filename": p.Filename, "transcribed_text": text})
	}
	fb.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"transcriptions": results})
}

func (fb *FakeBackend) search(term string) []model.Transcription {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := []model.Transcription{}
	for _, rec := range fb.records {
		if term == "" || strings.Contains(strings.ToLower(rec.AudioFilename), strings.ToLower(term)) {
			out = append(out, rec)
		}
	}
	return out
}

func (fb *FakeBackend) record(rec RecordedRequest) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.requests = append(fb.requests, rec)
}

func (fb *FakeBackend) takeFailure(path string) (int, bool) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	status, ok := fb.failures[path]
	if ok {
		delete(fb.failures, path)
	}
	return status, ok
}

func readParts(r *http.Request) ([]UploadedPart, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	var parts []UploadedPart
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return parts, nil
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() != "files" {
			continue
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return nil, err
		}
		parts = append(parts, UploadedPart{
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
