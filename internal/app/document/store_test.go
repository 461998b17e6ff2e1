package document

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "tubescribe/internal/app/errors"
	"tubescribe/internal/app/model"
	"tubescribe/internal/app/storage"
)

const testBucket = "documents"

func seedDocument(t *testing.T, objects storage.ObjectStore, docID, name, transcript string) {
	t.Helper()
	payload := `{"name":"` + name + `","upload_date":"2024-01-02T03:04:05Z","transcripted":"` + transcript + `","status":"Done"}`
	key := storage.DocumentKeyFor(docID)
	err := objects.Put(context.Background(), testBucket, key, strings.NewReader(payload), -1, storage.DocumentContentType)
	require.NoError(t, err)
}

func TestStore_GetAttachesDocID(t *testing.T) {
	objects := storage.NewMemoryStore()
	store := NewStore(objects, testBucket)
	seedDocument(t, objects, "abc", "Demo", "hello world")

	doc, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", doc.DocID)
	assert.Equal(t, "Demo", doc.Name)
	assert.Equal(t, "hello world", doc.Transcripted)
	assert.Equal(t, model.DocumentStatusDone, doc.Status)
}

func TestStore_GetMissingIsNotFound(t *testing.T) {
	store := NewStore(storage.NewMemoryStore(), testBucket)

	_, err := store.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStore_ListMatchesGet(t *testing.T) {
	objects := storage.NewMemoryStore()
	store := NewStore(objects, testBucket)
	seedDocument(t, objects, "one", "First", "alpha")
	seedDocument(t, objects, "two", "Second", "beta")

	docs, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	ids := map[string]bool{}
	for _, listed := range docs {
		assert.False(t, ids[listed.DocID], "docid %s listed twice", listed.DocID)
		ids[listed.DocID] = true

		got, err := store.Get(context.Background(), listed.DocID)
		require.NoError(t, err)
		assert.Equal(t, listed, got)
	}
}

func TestStore_ListAbortsOnUnparseableDocument(t *testing.T) {
	objects := storage.NewMemoryStore()
	store := NewStore(objects, testBucket)
	seedDocument(t, objects, "good", "Demo", "text")
	require.NoError(t, objects.Put(context.Background(), testBucket,
		storage.DocumentKeyFor("bad"), bytes.NewReader([]byte("not json")), -1, storage.DocumentContentType))

	_, err := store.List(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindStorage))
}

func TestStore_ListEmpty(t *testing.T) {
	store := NewStore(storage.NewMemoryStore(), testBucket)

	docs, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_UpdateChangesOnlyGivenFields(t *testing.T) {
	objects := storage.NewMemoryStore()
	store := NewStore(objects, testBucket)
	seedDocument(t, objects, "abc", "Demo", "original")

	transcript := "corrected text"
	updated, err := store.Update(context.Background(), "abc", UpdateFields{Transcripted: &transcript})
	require.NoError(t, err)
	assert.Equal(t, "corrected text", updated.Transcripted)
	assert.Equal(t, "Demo", updated.Name)
	assert.Equal(t, "2024-01-02T03:04:05Z", updated.UploadDate)

	// the write is persisted
	got, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestStore_UpdateEmptyIsNoOp(t *testing.T) {
	objects := storage.NewMemoryStore()
	store := NewStore(objects, testBucket)
	seedDocument(t, objects, "abc", "Demo", "original")

	before, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)

	after, err := store.Update(context.Background(), "abc", UpdateFields{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_UpdateEmptyStringsDoNotWipe(t *testing.T) {
	objects := storage.NewMemoryStore()
	store := NewStore(objects, testBucket)
	seedDocument(t, objects, "abc", "Demo", "original")

	empty := ""
	after, err := store.Update(context.Background(), "abc", UpdateFields{Name: &empty, Transcripted: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Demo", after.Name)
	assert.Equal(t, "original", after.Transcripted)
}

func TestStore_UpdateMissingIsNotFound(t *testing.T) {
	store := NewStore(storage.NewMemoryStore(), testBucket)

	name := "X"
	_, err := store.Update(context.Background(), "nope", UpdateFields{Name: &name})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStore_DeleteThenGet(t *testing.T) {
	objects := storage.NewMemoryStore()
	store := NewStore(objects, testBucket)
	seedDocument(t, objects, "abc", "Demo", "text")

	require.NoError(t, store.Delete(context.Background(), "abc"))

	_, err := store.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStore_DeleteMissingIsNotFound(t *testing.T) {
	store := NewStore(storage.NewMemoryStore(), testBucket)

	err := store.Delete(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
