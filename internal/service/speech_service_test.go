package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"excelinterview/internal/config"
)

func TestTranscribe_DegradedPaths(t *testing.T) {
	svc := NewSpeechService(&config.AIConfig{TimeoutMS: 1000})

	// No API key configured.
	assert.Equal(t, TranscriptFailed, svc.Transcribe(context.Background(), []byte{1, 2, 3}, "audio/webm"))

	// Empty payload, even with a key.
	svc = NewSpeechService(&config.AIConfig{APIKey: "k", TimeoutMS: 1000})
	assert.Equal(t, TranscriptFailed, svc.Transcribe(context.Background(), nil, "audio/webm"))
}

func TestEncodingFor(t *testing.T) {
	assert.Equal(t, "WEBM_OPUS", encodingFor("audio/webm;codecs=opus"))
	assert.Equal(t, "WEBM_OPUS", encodingFor("audio/ogg"))
	assert.Equal(t, "FLAC", encodingFor("audio/flac"))
	assert.Equal(t, "LINEAR16", encodingFor("audio/wav"))
	assert.Equal(t, "LINEAR16", encodingFor(""))
}

func TestSynthesize_DisabledPaths(t *testing.T) {
	svc := NewNarrationService(&config.AIConfig{TimeoutMS: 1000}, nil, t.TempDir())

	// No TTS endpoint configured.
	assert.Equal(t, "", svc.Synthesize(context.Background(), "s1", "Hello there"))

	// Empty text never synthesizes.
	svc = NewNarrationService(&config.AIConfig{TTSURL: "http://localhost:1", TimeoutMS: 1000}, nil, t.TempDir())
	assert.Equal(t, "", svc.Synthesize(context.Background(), "s1", ""))
}
