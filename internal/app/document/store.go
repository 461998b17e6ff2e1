package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	apperrors "tubescribe/internal/app/errors"
	"tubescribe/internal/app/model"
	"tubescribe/internal/app/storage"
)

// UpdateFields carries the mutable document fields for an update.
// Nil means "leave unchanged"; an empty string is applied as-is only
// when the pointer is set, so absent request fields never wipe values.
type UpdateFields struct {
	Name         *string
	Transcripted *string
}

// Store exposes CRUD over transcript documents in the document bucket.
// Updates are read-modify-write without a version check; concurrent
// updates to the same docid are last-writer-wins.
type Store struct {
	objects storage.ObjectStore
	bucket  string
}

// NewStore creates a document store over the given bucket
func NewStore(objects storage.ObjectStore, bucket string) *Store {
	return &Store{objects: objects, bucket: bucket}
}

// List returns every document under the fixed prefix. A key that fails
// to read or parse aborts the whole listing; partial results are never
// returned. Order is storage listing order and not a contract.
func (s *Store) List(ctx context.Context) ([]model.TranscriptDocument, error) {
	keys, err := s.objects.List(ctx, s.bucket, storage.DocumentKeyPrefix)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to list documents")
	}

	docs := make([]model.TranscriptDocument, 0, len(keys))
	for _, key := range keys {
		doc, err := s.read(ctx, key)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Get returns the document with the given docid
func (s *Store) Get(ctx context.Context, docID string) (model.TranscriptDocument, error) {
	return s.read(ctx, storage.DocumentKeyFor(docID))
}

// Update applies the set fields to the document and writes it back
// under the same key. DocID and upload date never change.
func (s *Store) Update(ctx context.Context, docID string, fields UpdateFields) (model.TranscriptDocument, error) {
	doc, err := s.Get(ctx, docID)
	if err != nil {
		return model.TranscriptDocument{}, err
	}

	if fields.Name != nil && *fields.Name != "" {
		doc.Name = *fields.Name
	}
	if fields.Transcripted != nil && *fields.Transcripted != "" {
		doc.Transcripted = *fields.Transcripted
	}

	stored := doc
	stored.DocID = ""
	payload, err := json.Marshal(stored)
	if err != nil {
		return model.TranscriptDocument{}, apperrors.Wrap(err, apperrors.KindStorage, "failed to encode document")
	}

	key := storage.DocumentKeyFor(docID)
	if err := s.objects.Put(ctx, s.bucket, key, bytes.NewReader(payload), int64(len(payload)), storage.DocumentContentType); err != nil {
		return model.TranscriptDocument{}, apperrors.Wrap(err, apperrors.KindStorage, "failed to write document")
	}
	return doc, nil
}

// Delete removes the document. Deleting an unknown docid is a
// not-found error, not a silent success.
func (s *Store) Delete(ctx context.Context, docID string) error {
	key := storage.DocumentKeyFor(docID)
	exists, err := s.objects.Exists(ctx, s.bucket, key)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, "failed to check document existence")
	}
	if !exists {
		return apperrors.Newf(apperrors.KindNotFound, "document %s not found", docID)
	}
	if err := s.objects.Remove(ctx, s.bucket, key); err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, "failed to delete document")
	}
	return nil
}

func (s *Store) read(ctx context.Context, key string) (model.TranscriptDocument, error) {
	docID, err := storage.DocIDFromKey(key)
	if err != nil {
		return model.TranscriptDocument{}, apperrors.Wrap(err, apperrors.KindStorage, "unexpected key in document bucket")
	}

	data, err := s.objects.Get(ctx, s.bucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return model.TranscriptDocument{}, apperrors.Newf(apperrors.KindNotFound, "document %s not found", docID)
		}
		return model.TranscriptDocument{}, apperrors.Wrap(err, apperrors.KindStorage, "failed to read document")
	}

	var doc model.TranscriptDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.TranscriptDocument{}, apperrors.Wrapf(err, apperrors.KindStorage, "failed to parse document %s", docID)
	}
	doc.DocID = docID
	return doc, nil
}
