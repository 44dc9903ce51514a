package progress

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcribe-ui/internal/app/api/backend"
)

type fakeUploader struct {
	body []byte
	err  error
}

func (f *fakeUploader) UploadWithProgress(_ context.Context, _ []backend.File, progress backend.ProgressFunc) error {
	payload := "multipart payload"
	r := progress(strings.NewReader(payload), int64(len(payload)))
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.body = data
	return f.err
}

func TestDisabledManagerPassesBodyThrough(t *testing.T) {
	m := NewManager(Config{Enabled: false})
	u := &fakeUploader{}

	require.NoError(t, m.Upload(context.Background(), u, nil, "Uploading"))
	assert.Equal(t, "multipart payload", string(u.body))
	m.Wait()
}

func TestEnabledManagerCountsBytes(t *testing.T) {
	var out bytes.Buffer
	m := NewManager(Config{Enabled: true, Writer: &out})
	u := &fakeUploader{}

	require.NoError(t, m.Upload(context.Background(), u, nil, "Uploading"))
	m.Wait()
	assert.Equal(t, "multipart payload", string(u.body))
}

func TestUploadFailureIsReturned(t *testing.T) {
	var out bytes.Buffer
	m := NewManager(Config{Enabled: true, Writer: &out})
	u := &fakeUploader{err: errors.New("boom")}

	err := m.Upload(context.Background(), u, nil, "Uploading")
	m.Wait()
	assert.EqualError(t, err, "boom")
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.True(t, ShouldShowProgress(true))
}
