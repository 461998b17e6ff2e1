package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Put(ctx, "bucket", "key", strings.NewReader("payload"), -1, "text/plain")
	require.NoError(t, err)

	data, err := store.Get(ctx, "bucket", "key")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "bucket", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestMemoryStore_ListByPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "b", "transcription_1.json", strings.NewReader("{}"), -1, "application/json"))
	require.NoError(t, store.Put(ctx, "b", "transcription_2.json", strings.NewReader("{}"), -1, "application/json"))
	require.NoError(t, store.Put(ctx, "b", "audio_1.mp3", strings.NewReader("x"), -1, "audio/mpeg"))

	keys, err := store.List(ctx, "b", "transcription_")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"transcription_1.json", "transcription_2.json"}, keys)
}

func TestMemoryStore_RemoveAndExists(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "b", "k", strings.NewReader("x"), -1, ""))

	exists, err := store.Exists(ctx, "b", "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Remove(ctx, "b", "k"))

	exists, err = store.Exists(ctx, "b", "k")
	require.NoError(t, err)
	assert.False(t, exists)

	// removing a missing key is not an error
	assert.NoError(t, store.Remove(ctx, "b", "k"))
}
