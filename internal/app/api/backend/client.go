package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "transcribe-ui/internal/app/errors"
	"transcribe-ui/internal/app/model"
)

// ClientConfig represents configuration for the transcription service client
type ClientConfig struct {
	BaseURL       string            // Base URL of the service (e.g., "http://localhost:8000")
	CustomHeaders map[string]string // Extra headers sent with every request
	HTTPClient    *http.Client      // Optional; no timeout is applied by default
	Metrics       *Metrics          // Optional
	Logger        *zap.Logger       // Optional
}

// Client talks to the transcription service over its REST endpoints
type Client struct {
	config  ClientConfig
	client  *http.Client
	metrics *Metrics
	logger  *zap.Logger
}

// NewClient creates a new transcription service client
func NewClient(config ClientConfig) *Client {
	config.BaseURL = strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if config.CustomHeaders == nil {
		config.CustomHeaders = make(map[string]string)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config:  config,
		client:  httpClient,
		metrics: config.Metrics,
		logger:  logger,
	}
}

// BaseURL returns the normalized service origin
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// List fetches every stored transcription
func (c *Client) List(ctx context.Context) (result []model.Transcription, err error) {
	defer c.track(OpList, time.Now(), &err)
	return c.getRecords(ctx, OpList, c.config.BaseURL+ListPath)
}

// Search fetches the transcriptions whose filename matches term; an empty term is sent as is
func (c *Client) Search(ctx context.Context, term string) (result []model.Transcription, err error) {
	defer c.track(OpSearch, time.Now(), &err)
	query := url.Values{}
	query.Set(SearchParam, term)
	return c.getRecords(ctx, OpSearch, c.config.BaseURL+SearchPath+"?"+query.Encode())
}

// Upload sends all files in a single multipart request
func (c *Client) Upload(ctx context.Context, files []File) error {
	return c.UploadWithProgress(ctx, files, nil)
}

// UploadWithProgress is Upload with a hook around the encoded body
func (c *Client) UploadWithProgress(ctx context.Context, files []File, progress ProgressFunc) (err error) {
	defer c.track(OpUpload, time.Now(), &err)

	if len(files) == 0 {
		return &RequestError{Op: OpUpload, Err: apperrors.RequiredField("at least one file")}
	}

	body, contentType, err := createMultipartForm(files)
	if err != nil {
		return &RequestError{Op: OpUpload, Err: err}
	}

	size := int64(body.Len())
	var reader io.Reader = body
	if progress != nil {
		reader = progress(body, size)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+TranscribePath, reader)
	if err != nil {
		return &RequestError{Op: OpUpload, Err: err}
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{Op: OpUpload, Err: apperrors.Wrap(err, apperrors.ErrRequestFailed.Error())}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(OpUpload, resp)
	}
	// The service echoes its results; the client refetches the list instead
	_, _ = io.Copy(io.Discard, resp.Body)

	c.metrics.addUploaded(len(files))
	return nil
}

// HealthCheck asks the service for its status
func (c *Client) HealthCheck(ctx context.Context) (err error) {
	defer c.track(OpHealth, time.Now(), &err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+HealthPath, nil)
	if err != nil {
		return &RequestError{Op: OpHealth, Err: err}
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{Op: OpHealth, Err: apperrors.Wrap(err, apperrors.ErrRequestFailed.Error())}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(OpHealth, resp)
	}

	var health healthBody
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return &RequestError{Op: OpHealth, Err: fmt.Errorf("%w: %v", apperrors.ErrResponseInvalid, err)}
	}
	if health.Status != "ok" {
		return &RequestError{Op: OpHealth, Err: apperrors.Newf("service reported status %q", health.Status)}
	}
	return nil
}

func (c *Client) getRecords(ctx context.Context, op, target string) ([]model.Transcription, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Err: apperrors.Wrap(err, apperrors.ErrRequestFailed.Error())}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(op, resp)
	}

	var records []model.Transcription
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &RequestError{Op: op, Err: fmt.Errorf("%w: %v", apperrors.ErrResponseInvalid, err)}
	}
	if records == nil {
		records = []model.Transcription{}
	}
	return records, nil
}

func (c *Client) setHeaders(req *http.Request) {
	for key, value := range c.config.CustomHeaders {
		req.Header.Set(key, value)
	}
}

func (c *Client) track(op string, start time.Time, errp *error) {
	c.metrics.observe(op, start, *errp)
	c.logger.Debug("backend request",
		zap.String("op", op),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(*errp),
	)
}

// createMultipartForm creates the multipart body, one "files" part per file
func createMultipartForm(files []File) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, f := range files {
		if err := writeFilePart(writer, f); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

func writeFilePart(writer *multipart.Writer, f File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", f.Name, err)
	}
	defer rc.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("failed to read file %s: %w", f.Name, err)
	}
	head = head[:n]

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(FilesField), escapeQuotes(f.Name)))
	h.Set("Content-Type", resolveContentType(f, head))

	part, err := writer.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(head); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func statusError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return &RequestError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Detail:     extractDetail(data),
		Err:        apperrors.ErrRequestFailed,
	}
}

func extractDetail(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != nil {
		if s, ok := body.Detail.(string); ok {
			return s
		}
		if encoded, err := json.Marshal(body.Detail); err == nil {
			return string(encoded)
		}
	}
	return strings.TrimSpace(string(data))
}
