package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAudioKey(t *testing.T) {
	key := NewAudioKey()
	assert.True(t, strings.HasPrefix(key, AudioKeyPrefix))
	assert.True(t, strings.HasSuffix(key, AudioKeyExt))
	assert.NotEqual(t, key, NewAudioKey())
}

func TestDocIDFromKey_RoundTrip(t *testing.T) {
	key := NewDocumentKey()
	id, err := DocIDFromKey(key)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, key, DocumentKeyFor(id))
}

func TestDocIDFromKey_Invalid(t *testing.T) {
	tests := []string{
		"audio_abc.mp3",
		"transcription_abc.txt",
		"abc.json",
		"transcription_.json",
	}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := DocIDFromKey(key)
			assert.Error(t, err)
		})
	}
}
