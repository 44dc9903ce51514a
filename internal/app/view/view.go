// Package view holds the client-side state of the transcription UI and the
// operations that mutate it in response to user actions.
package view

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"transcribe-ui/internal/app/api/backend"
	apperrors "transcribe-ui/internal/app/errors"
	"transcribe-ui/internal/app/model"
)

// Messages shown in place of an empty table
const (
	NoMatchMessage  = "No Matched Filename"
	NoStoredMessage = "No Transcription Stored"
)

// Backend is the part of the transcription service the view needs
type Backend interface {
	List(ctx context.Context) ([]model.Transcription, error)
	Search(ctx context.Context, term string) ([]model.Transcription, error)
	Upload(ctx context.Context, files []backend.File) error
}

// State is a point-in-time copy of a View
type State struct {
	SelectedFiles  []string              `json:"selected_files"`
	Transcriptions []model.Transcription `json:"transcriptions"`
	SearchTerm     string                `json:"search_term"`
	IsLoading      bool                  `json:"is_loading"`
	IsSearched     bool                  `json:"is_searched"`
}

// UploadEnabled reports whether the upload control is active
func (s State) UploadEnabled() bool {
	return !s.IsLoading && len(s.SelectedFiles) > 0
}

// EmptyMessage is what replaces the table when there is nothing to list
func (s State) EmptyMessage() string {
	if s.IsSearched {
		return NoMatchMessage
	}
	return NoStoredMessage
}

// View is one instance of the client UI. Network calls run without the lock
// held, so a later response simply overwrites an earlier one.
type View struct {
	backend Backend
	logger  *zap.Logger

	mu             sync.Mutex
	selectedFiles  []backend.File
	transcriptions []model.Transcription
	searchTerm     string
	isLoading      bool
	isSearched     bool
}

// New creates an empty view; call Load to perform the initial fetch
func New(b Backend, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &View{
		backend:        b,
		logger:         logger,
		transcriptions: []model.Transcription{},
	}
}

// Load fetches the full list. On success it replaces the list and clears the
// search; on failure the state is left untouched.
func (v *View) Load(ctx context.Context) error {
	records, err := v.backend.List(ctx)
	if err != nil {
		v.logger.Error("Error fetching transcriptions", zap.Error(err))
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.transcriptions = records
	v.searchTerm = ""
	v.isSearched = false
	return nil
}

// ResetSearch goes back to the unfiltered list
func (v *View) ResetSearch(ctx context.Context) error {
	return v.Load(ctx)
}

// SelectFiles replaces the staged files. Nothing is validated.
func (v *View) SelectFiles(files []backend.File) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selectedFiles = append([]backend.File(nil), files...)
}

// SetSearchTerm records the filter text as typed
func (v *View) SetSearchTerm(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.searchTerm = term
}

// Search asks the service for records matching the current term. An empty
// term is a valid query.
func (v *View) Search(ctx context.Context) error {
	v.mu.Lock()
	term := v.searchTerm
	v.mu.Unlock()

	records, err := v.backend.Search(ctx, term)
	if err != nil {
		v.logger.Error("Error searching transcriptions", zap.String("term", term), zap.Error(err))
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.transcriptions = records
	v.isSearched = true
	return nil
}

// BeginUpload starts sending the staged files and returns once the loading
// flag is set. The returned channel is closed when the upload, and the list
// refresh that follows a successful one, have finished. Failures are logged.
func (v *View) BeginUpload(ctx context.Context) (<-chan struct{}, error) {
	files, err := v.startUpload()
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = v.runUpload(ctx, files)
	}()
	return done, nil
}

// Upload runs an upload to completion. The view only logs a failed upload;
// the error is also returned for callers without a view to show stale data in.
// A failed refresh after a successful upload is returned wrapping ErrRefreshFailed.
func (v *View) Upload(ctx context.Context) error {
	files, err := v.startUpload()
	if err != nil {
		return err
	}
	return v.runUpload(ctx, files)
}

// startUpload is the disabled-control check: at most one upload, and only with files
func (v *View) startUpload() ([]backend.File, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.isLoading {
		return nil, apperrors.Wrap(apperrors.ErrUploadDisabled, "an upload is already in flight")
	}
	if len(v.selectedFiles) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrUploadDisabled, "no files selected")
	}
	v.isLoading = true
	return append([]backend.File(nil), v.selectedFiles...), nil
}

func (v *View) runUpload(ctx context.Context, files []backend.File) error {
	if err := v.uploadFiles(ctx, files); err != nil {
		v.logger.Error("Error uploading files",
			zap.Strings("files", fileNames(files)),
			zap.Error(err),
		)
		return err
	}
	if err := v.Load(ctx); err != nil {
		return apperrors.Wrap(apperrors.ErrRefreshFailed, err.Error())
	}
	return nil
}

func (v *View) uploadFiles(ctx context.Context, files []backend.File) error {
	defer func() {
		v.mu.Lock()
		v.isLoading = false
		v.mu.Unlock()
	}()
	return v.backend.Upload(ctx, files)
}

// Snapshot returns a copy of the state that is safe to render
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return State{
		SelectedFiles:  fileNames(v.selectedFiles),
		Transcriptions: append([]model.Transcription{}, v.transcriptions...),
		SearchTerm:     v.searchTerm,
		IsLoading:      v.isLoading,
		IsSearched:     v.isSearched,
	}
}

// UploadEnabled reports whether the upload control is active right now
func (v *View) UploadEnabled() bool {
	return v.Snapshot().UploadEnabled()
}

func fileNames(files []backend.File) []string {
	return lo.Map(files, func(f backend.File, _ int) string {
		return f.Name
	})
}
