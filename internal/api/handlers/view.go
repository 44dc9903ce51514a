package handlers

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"transcribe-ui/internal/api/errors"
	"transcribe-ui/internal/api/middleware"
	"transcribe-ui/internal/app/api/backend"
	"transcribe-ui/internal/app/session"
	"transcribe-ui/internal/app/view"
)

// SessionCookie names the cookie that ties a browser to its view
const SessionCookie = "transcribe_ui_session"

// ViewHandler serves the transcription page and its form actions
type ViewHandler struct {
	sessions *session.Store
	logger   *zap.Logger
	// uploads outlive the request that starts them
	baseCtx      context.Context
	secureCookie bool
	// staged files live in memory until the session expires
	maxUploadBytes int64
}

// NewViewHandler creates the page handler. Uploads run on baseCtx. A file
// selection larger than maxUploadBytes is refused; zero means no limit.
func NewViewHandler(baseCtx context.Context, sessions *session.Store, secureCookie bool, maxUploadBytes int64, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{
		sessions:       sessions,
		logger:         logger,
		baseCtx:        baseCtx,
		secureCookie:   secureCookie,
		maxUploadBytes: maxUploadBytes,
	}
}

// ViewResponse is the JSON form of a view
type ViewResponse struct {
	view.State
	UploadEnabled bool   `json:"upload_enabled"`
	EmptyMessage  string `json:"empty_message"`
}

// Page renders the view as HTML
func (h *ViewHandler) Page(c *gin.Context) {
	v := h.viewFor(c)

	var buf bytes.Buffer
	if err := view.RenderHTML(&buf, v.Snapshot()); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// State returns the view as JSON. It never starts a session, so a caller
// without one gets an empty, unloaded view.
func (h *ViewHandler) State(c *gin.Context) {
	id, _ := c.Cookie(SessionCookie)
	v, ok := h.sessions.Lookup(id)
	if !ok {
		v = view.New(nil, h.logger)
	}
	s := v.Snapshot()
	c.JSON(http.StatusOK, ViewResponse{
		State:         s,
		UploadEnabled: s.UploadEnabled(),
		EmptyMessage:  s.EmptyMessage(),
	})
}

// SelectFiles stages the files chosen in the browser
func (h *ViewHandler) SelectFiles(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	form, err := c.MultipartForm()
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		middleware.HandleError(c, errors.NewTooLargeError(tooLarge.Limit))
		return
	}
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("expected a multipart form"))
		return
	}
	headers, ok := form.File[backend.FilesField]
	if !ok {
		middleware.HandleError(c, errors.NewValidationError("Validation failed", map[string]string{
			backend.FilesField: "is required",
		}))
		return
	}

	files := make([]backend.File, 0, len(headers))
	for _, fh := range headers {
		// browsers send one empty part when nothing is chosen
		if fh.Filename == "" {
			continue
		}
		f, err := readUploadedFile(fh)
		if err != nil {
			middleware.HandleError(c, errors.NewBadRequestError("failed to read "+fh.Filename))
			return
		}
		files = append(files, f)
	}

	h.viewFor(c).SelectFiles(files)
	c.Redirect(http.StatusSeeOther, "/")
}

// Upload starts an upload and sends the browser back to the page, which
// shows the overlay until it finishes
func (h *ViewHandler) Upload(c *gin.Context) {
	if _, err := h.viewFor(c).BeginUpload(h.baseCtx); err != nil {
		h.logger.Warn("upload ignored", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Search filters the list by the submitted term
func (h *ViewHandler) Search(c *gin.Context) {
	v := h.viewFor(c)
	v.SetSearchTerm(c.PostForm("search_term"))
	_ = v.Search(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}

// Reset goes back to the unfiltered list
func (h *ViewHandler) Reset(c *gin.Context) {
	_ = h.viewFor(c).ResetSearch(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *ViewHandler) viewFor(c *gin.Context) *view.View {
	id, _ := c.Cookie(SessionCookie)
	v, sessionID, created := h.sessions.Get(c.Request.Context(), id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sessionID, 0, "/", "", h.secureCookie, true)
	}
	return v
}

func readUploadedFile(fh *multipart.FileHeader) (backend.File, error) {
	src, err := fh.Open()
	if err != nil {
		return backend.File{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return backend.File{}, err
	}
	return backend.FileFromBytes(fh.Filename, fh.Header.Get("Content-Type"), data), nil
}
