package services

import (
	"context"

	"tubescribe/internal/api/v1/dto"
)

// TranscribeService runs the transcription pipeline for a request
type TranscribeService interface {
	Transcribe(ctx context.Context, req *dto.TranscribeRequest) (*dto.TranscribeResponse, error)
}

// DocumentService exposes CRUD over transcript documents
type DocumentService interface {
	List(ctx context.Context) ([]dto.DocumentResponse, error)
	Get(ctx context.Context, docID string) (*dto.DocumentResponse, error)
	Update(ctx context.Context, docID string, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, docID string) error
}
