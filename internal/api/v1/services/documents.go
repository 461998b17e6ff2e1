package services

import (
	"context"

	"github.com/samber/lo"
	"tubescribe/internal/api/v1/dto"
	"tubescribe/internal/app/document"
	"tubescribe/internal/app/model"
)

// DocumentServiceImpl implements DocumentService over the blob-backed
// document store
type DocumentServiceImpl struct {
	store *document.Store
}

// NewDocumentService creates a new document service
func NewDocumentService(store *document.Store) DocumentService {
	return &DocumentServiceImpl{store: store}
}

// List returns all persisted documents with their docids
func (s *DocumentServiceImpl) List(ctx context.Context) ([]dto.DocumentResponse, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(doc model.TranscriptDocument, _ int) dto.DocumentResponse {
		return dto.ToDocumentResponse(doc)
	}), nil
}

// Get returns a single document by docid
func (s *DocumentServiceImpl) Get(ctx context.Context, docID string) (*dto.DocumentResponse, error) {
	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToDocumentResponse(doc)
	return &resp, nil
}

// Update applies the provided fields and returns the updated document
func (s *DocumentServiceImpl) Update(ctx context.Context, docID string, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := s.store.Update(ctx, docID, document.UpdateFields{
		Name:         req.Name,
		Transcripted: req.Transcripted,
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToDocumentResponse(doc)
	return &resp, nil
}

// Delete removes a document by docid
func (s *DocumentServiceImpl) Delete(ctx context.Context, docID string) error {
	return s.store.Delete(ctx, docID)
}
