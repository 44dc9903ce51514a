package view

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"transcribe-ui/internal/app/api/backend"
	apperrors "transcribe-ui/internal/app/errors"
	"transcribe-ui/internal/app/model"
	"transcribe-ui/internal/app/testutil"
)

func newTestView(t *testing.T) (*View, *testutil.MockBackend, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	mb := testutil.NewMockBackend(t)
	return New(mb, zap.New(core)), mb, logs
}

func mp3(name string) backend.File {
	return backend.FileFromBytes(name, "audio/mp3", []byte("audio"))
}

func TestInitialState(t *testing.T) {
	v, _, _ := newTestView(t)
	s := v.Snapshot()

	assert.Empty(t, s.SelectedFiles)
	assert.NotNil(t, s.Transcriptions)
	assert.Empty(t, s.Transcriptions)
	assert.Empty(t, s.SearchTerm)
	assert.False(t, s.IsLoading)
	assert.False(t, s.IsSearched)
	assert.False(t, v.UploadEnabled())
	assert.Equal(t, NoStoredMessage, s.EmptyMessage())
}

func TestLoad(t *testing.T) {
	v, mb, _ := newTestView(t)
	mb.On("List", mock.Anything).Return(testutil.Transcriptions(), nil).Once()

	v.SetSearchTerm("stale")
	require.NoError(t, v.Load(context.Background()))

	s := v.Snapshot()
	assert.Equal(t, testutil.Transcriptions(), s.Transcriptions)
	assert.Empty(t, s.SearchTerm)
	assert.False(t, s.IsSearched)
}

func TestLoadFailureKeepsState(t *testing.T) {
	v, mb, logs := newTestView(t)
	mb.On("List", mock.Anything).Return(testutil.Transcriptions(), nil).Once()
	require.NoError(t, v.Load(context.Background()))

	mb.On("Search", mock.Anything, "search").Return([]model.Transcription{testutil.SearchFixture()}, nil).Once()
	v.SetSearchTerm("search")
	require.NoError(t, v.Search(context.Background()))

	mb.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	assert.Error(t, v.ResetSearch(context.Background()))

	s := v.Snapshot()
	assert.Equal(t, []model.Transcription{testutil.SearchFixture()}, s.Transcriptions)
	assert.Equal(t, "search", s.SearchTerm)
	assert.True(t, s.IsSearched)

	entries := logs.FilterMessage("Error fetching transcriptions").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestSearch(t *testing.T) {
	v, mb, _ := newTestView(t)
	found := []model.Transcription{testutil.SearchFixture()}
	mb.On("Search", mock.Anything, "search").Return(found, nil).Once()

	v.SetSearchTerm("search")
	require.NoError(t, v.Search(context.Background()))

	s := v.Snapshot()
	assert.Equal(t, found, s.Transcriptions)
	assert.True(t, s.IsSearched)
	assert.Equal(t, "search", s.SearchTerm)
}

func TestSearchEmptyTermAndEmptyResult(t *testing.T) {
	v, mb, _ := newTestView(t)
	mb.On("Search", mock.Anything, "").Return([]model.Transcription{}, nil).Once()

	require.NoError(t, v.Search(context.Background()))

	s := v.Snapshot()
	assert.Empty(t, s.Transcriptions)
	assert.True(t, s.IsSearched)
	assert.Equal(t, NoMatchMessage, s.EmptyMessage())
}

func TestSearchFailureKeepsList(t *testing.T) {
	v, mb, logs := newTestView(t)
	mb.On("List", mock.Anything).Return(testutil.Transcriptions(), nil).Once()
	require.NoError(t, v.Load(context.Background()))

	mb.On("Search", mock.Anything, "x").Return(nil, errors.New("boom")).Once()
	v.SetSearchTerm("x")
	assert.Error(t, v.Search(context.Background()))

	s := v.Snapshot()
	assert.Equal(t, testutil.Transcriptions(), s.Transcriptions)
	assert.False(t, s.IsSearched)
	assert.Equal(t, 1, logs.FilterMessage("Error searching transcriptions").Len())
}

func TestResetSearch(t *testing.T) {
	v, mb, _ := newTestView(t)
	mb.On("Search", mock.Anything, "search").Return([]model.Transcription{}, nil).Once()
	mb.On("List", mock.Anything).Return(testutil.Transcriptions(), nil).Once()

	v.SetSearchTerm("search")
	require.NoError(t, v.Search(context.Background()))
	require.True(t, v.Snapshot().IsSearched)

	require.NoError(t, v.ResetSearch(context.Background()))
	s := v.Snapshot()
	assert.Empty(t, s.SearchTerm)
	assert.False(t, s.IsSearched)
	assert.Equal(t, testutil.Transcriptions(), s.Transcriptions)
	mb.AssertNumberOfCalls(t, "List", 1)
}

func TestUploadDisabledWithoutFiles(t *testing.T) {
	v, _, _ := newTestView(t)

	assert.False(t, v.UploadEnabled())
	_, err := v.BeginUpload(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrUploadDisabled))
	assert.True(t, errors.Is(v.Upload(context.Background()), apperrors.ErrUploadDisabled))
	assert.False(t, v.Snapshot().IsLoading)
}

func TestUploadRefreshesList(t *testing.T) {
	v, mb, _ := newTestView(t)
	files := []backend.File{mp3("test.mp3")}
	refreshed := []model.Transcription{testutil.TestTranscriptions[0]}

	mb.On("Upload", mock.Anything, mock.MatchedBy(func(fs []backend.File) bool {
		return len(fs) == 1 && fs[0].Name == "test.mp3"
	})).Return(nil).Once()
	mb.On("List", mock.Anything).Return(refreshed, nil).Once()

	v.SelectFiles(files)
	assert.True(t, v.UploadEnabled())
	require.NoError(t, v.Upload(context.Background()))

	s := v.Snapshot()
	assert.Equal(t, refreshed, s.Transcriptions)
	assert.False(t, s.IsLoading)
	assert.Equal(t, []string{"test.mp3"}, s.SelectedFiles, "selection survives the upload")
	assert.True(t, v.UploadEnabled())
}

func TestUploadRefreshFailureIsReported(t *testing.T) {
	v, mb, logs := newTestView(t)
	mb.On("Upload", mock.Anything, mock.Anything).Return(nil).Once()
	mb.On("List", mock.Anything).Return(nil, errors.New("list down")).Once()

	v.SelectFiles([]backend.File{mp3("test.mp3")})
	err := v.Upload(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRefreshFailed))
	assert.Contains(t, err.Error(), "list down")

	assert.False(t, v.Snapshot().IsLoading)
	assert.Equal(t, 1, logs.FilterMessage("Error fetching transcriptions").Len())
	assert.Zero(t, logs.FilterMessage("Error uploading files").Len())
}

func TestUploadFailureIsLoggedAndClearsLoading(t *testing.T) {
	v, mb, logs := newTestView(t)
	mb.On("Upload", mock.Anything, mock.Anything).Return(errors.New("backend down")).Once()

	v.SelectFiles([]backend.File{mp3("a.mp3"), mp3("b.mp3")})
	assert.Error(t, v.Upload(context.Background()))

	s := v.Snapshot()
	assert.False(t, s.IsLoading)
	assert.Equal(t, []string{"a.mp3", "b.mp3"}, s.SelectedFiles)
	mb.AssertNotCalled(t, "List", mock.Anything)

	entries := logs.FilterMessage("Error uploading files").All()
	require.Len(t, entries, 1)
	assert.Equal(t, []interface{}{"a.mp3", "b.mp3"}, entries[0].ContextMap()["files"])
}

func TestBeginUploadIsExclusive(t *testing.T) {
	v, mb, _ := newTestView(t)
	release := make(chan struct{})
	started := make(chan struct{})

	mb.On("Upload", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil).Once()
	mb.On("List", mock.Anything).Return(testutil.Transcriptions(), nil).Once()

	v.SelectFiles([]backend.File{mp3("test.mp3")})
	done, err := v.BeginUpload(context.Background())
	require.NoError(t, err)
	<-started

	s := v.Snapshot()
	assert.True(t, s.IsLoading)
	assert.False(t, s.UploadEnabled())

	_, err = v.BeginUpload(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrUploadDisabled))

	// other controls stay usable while the upload is in flight
	v.SetSearchTerm("typing")
	assert.Equal(t, "typing", v.Snapshot().SearchTerm)

	close(release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("upload did not finish")
	}

	s = v.Snapshot()
	assert.False(t, s.IsLoading)
	assert.Equal(t, testutil.Transcriptions(), s.Transcriptions)
	assert.Empty(t, s.SearchTerm, "refresh clears the term like the initial load")
}

func TestOverlappingSearchesLastResponseWins(t *testing.T) {
	v, mb, _ := newTestView(t)
	slowRelease := make(chan struct{})
	slowStarted := make(chan struct{})

	slow := []model.Transcription{testutil.TestTranscriptions[0]}
	fast := []model.Transcription{testutil.TestTranscriptions[1]}

	mb.On("Search", mock.Anything, "slow").Run(func(mock.Arguments) {
		close(slowStarted)
		<-slowRelease
	}).Return(slow, nil).Once()
	mb.On("Search", mock.Anything, "fast").Return(fast, nil).Once()

	var wg sync.WaitGroup
	v.SetSearchTerm("slow")
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = v.Search(context.Background())
	}()
	<-slowStarted

	v.SetSearchTerm("fast")
	require.NoError(t, v.Search(context.Background()))
	assert.Equal(t, fast, v.Snapshot().Transcriptions)

	close(slowRelease)
	wg.Wait()
	assert.Equal(t, slow, v.Snapshot().Transcriptions, "the response that resolves last is shown")
}

func TestSnapshotIsACopy(t *testing.T) {
	v, mb, _ := newTestView(t)
	mb.On("List", mock.Anything).Return(testutil.Transcriptions(), nil).Once()
	require.NoError(t, v.Load(context.Background()))

	s := v.Snapshot()
	s.Transcriptions[0].AudioFilename = "changed.mp3"
	assert.Equal(t, "test.mp3", v.Snapshot().Transcriptions[0].AudioFilename)
}
