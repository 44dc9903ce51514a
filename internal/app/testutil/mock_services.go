package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"transcribe-ui/internal/app/api/backend"
	"transcribe-ui/internal/app/model"
)

// MockBackend is a testify mock of the transcription service client
type MockBackend struct {
	mock.Mock
}

func NewMockBackend(t *testing.T) *MockBackend {
	m := &MockBackend{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBackend) List(ctx context.Context) ([]model.Transcription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transcription), args.Error(1)
}

func (m *MockBackend) Search(ctx context.Context, term string) ([]model.Transcription, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transcription), args.Error(1)
}

func (m *MockBackend) Upload(ctx context.Context, files []backend.File) error {
	args := m.Called(ctx, files)
	return args.Error(0)
}
