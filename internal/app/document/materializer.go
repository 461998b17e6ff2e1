package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	apperrors "tubescribe/internal/app/errors"
	"tubescribe/internal/app/model"
	"tubescribe/internal/app/storage"
)

// rawResult mirrors the payload shape the external service writes to
// the working bucket on completion
type rawResult struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

// Materializer turns a completed job's raw result into a persisted
// transcript document
type Materializer struct {
	objects        storage.ObjectStore
	workingBucket  string
	documentBucket string
	now            func() time.Time
}

// NewMaterializer creates a materializer writing to the document bucket
func NewMaterializer(objects storage.ObjectStore, workingBucket, documentBucket string) *Materializer {
	return &Materializer{
		objects:        objects,
		workingBucket:  workingBucket,
		documentBucket: documentBucket,
		now:            time.Now,
	}
}

// Materialize reads the raw result payload, extracts the primary
// transcript and writes the finished document in a single put. A
// malformed or absent payload never reaches the document bucket.
func (m *Materializer) Materialize(ctx context.Context, job *model.Job, resultKey string) (*model.TranscriptDocument, error) {
	raw, err := m.objects.Get(ctx, m.workingBucket, resultKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, apperrors.Wrapf(err, apperrors.KindMaterialization, "result payload missing at %s", resultKey)
		}
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to read result payload")
	}

	var result rawResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindMaterialization, "malformed result payload")
	}
	if len(result.Results.Transcripts) == 0 || result.Results.Transcripts[0].Transcript == "" {
		return nil, apperrors.New(apperrors.KindMaterialization, "result payload contains no transcript")
	}

	doc := model.TranscriptDocument{
		Name:         job.DisplayName,
		UploadDate:   m.now().UTC().Format(time.RFC3339),
		Transcripted: result.Results.Transcripts[0].Transcript,
		Status:       model.DocumentStatusDone,
	}

	// Marshal before the put so a serialization failure cannot leave
	// a partial document behind
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindMaterialization, "failed to encode document")
	}

	key := storage.NewDocumentKey()
	if err := m.objects.Put(ctx, m.documentBucket, key, bytes.NewReader(payload), int64(len(payload)), storage.DocumentContentType); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to write document")
	}

	docID, err := storage.DocIDFromKey(key)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "generated an unparseable document key")
	}
	doc.DocID = docID
	return &doc, nil
}
