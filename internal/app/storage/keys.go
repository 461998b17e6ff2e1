package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Object naming for the two buckets. Every written key embeds a fresh
// UUID so concurrent writers never collide.
const (
	AudioKeyPrefix   = "audio_"
	AudioKeyExt      = ".mp3"
	AudioContentType = "audio/mpeg"

	DocumentKeyPrefix   = "transcription_"
	DocumentKeyExt      = ".json"
	DocumentContentType = "application/json"
)

// NewAudioKey generates a unique key for a raw audio object
func NewAudioKey() string {
	return AudioKeyPrefix + uuid.New().String() + AudioKeyExt
}

// NewDocumentKey generates a unique key for a transcript document
func NewDocumentKey() string {
	return DocumentKeyPrefix + uuid.New().String() + DocumentKeyExt
}

// DocumentKeyFor computes the storage key backing the given docid
func DocumentKeyFor(docID string) string {
	return DocumentKeyPrefix + docID + DocumentKeyExt
}

// DocIDFromKey derives the document id from a storage key. The id is
// the portion between the fixed prefix and the .json extension.
func DocIDFromKey(key string) (string, error) {
	if !strings.HasPrefix(key, DocumentKeyPrefix) || !strings.HasSuffix(key, DocumentKeyExt) {
		return "", fmt.Errorf("not a document key: %s", key)
	}
	id := strings.TrimSuffix(strings.TrimPrefix(key, DocumentKeyPrefix), DocumentKeyExt)
	if id == "" {
		return "", fmt.Errorf("empty document id in key: %s", key)
	}
	return id, nil
}
