package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"tubescribe/internal/api/v1/dto"
)

// MockServices contains all mock services for testing
type MockServices struct {
	TranscribeService *MockTranscribeService
	DocumentService   *MockDocumentService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		TranscribeService: NewMockTranscribeService(t),
		DocumentService:   NewMockDocumentService(t),
	}
}

// MockTranscribeService is a mock implementation of TranscribeService
type MockTranscribeService struct {
	mock.Mock
}

func NewMockTranscribeService(t *testing.T) *MockTranscribeService {
	m := &MockTranscribeService{}
	m.Test(t)
	return m
}

func (m *MockTranscribeService) Transcribe(ctx context.Context, req *dto.TranscribeRequest) (*dto.TranscribeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscribeResponse), args.Error(1)
}

// MockDocumentService is a mock implementation of DocumentService
type MockDocumentService struct {
	mock.Mock
}

func NewMockDocumentService(t *testing.T) *MockDocumentService {
	m := &MockDocumentService{}
	m.Test(t)
	return m
}

func (m *MockDocumentService) List(ctx context.Context) ([]dto.DocumentResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.DocumentResponse), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, docID string) (*dto.DocumentResponse, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DocumentResponse), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, docID string, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	args := m.Called(ctx, docID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DocumentResponse), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, docID string) error {
	args := m.Called(ctx, docID)
	return args.Error(0)
}
