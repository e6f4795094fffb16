package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"excelinterview/internal/config"
)

// Transcriber turns answer audio into text. It never fails: anything
// that goes wrong degrades to a human-readable placeholder, so the
// interview flow continues with whatever text we have.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) string
}

// Placeholders substituted for a failed transcription. They are real
// answer text from the engine's point of view and get evaluated as such.
const (
	TranscriptUnintelligible = "I'm sorry, I couldn't understand that."
	TranscriptFailed         = "There was an issue processing your audio."
)

// SpeechService transcribes audio via the speech recognition REST API,
// keyed with the same API key as the evaluator.
type SpeechService struct {
	config *config.AIConfig
	client *http.Client
}

// NewSpeechService creates a new speech service
func NewSpeechService(cfg *config.AIConfig) *SpeechService {
	return &SpeechService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

func (s *SpeechService) Transcribe(ctx context.Context, audio []byte, mimeType string) string {
	if !s.config.IsEnabled() || len(audio) == 0 {
		return TranscriptFailed
	}

	reqBody := map[string]interface{}{
		"config": map[string]interface{}{
			"languageCode": "en-US",
			"encoding":     encodingFor(mimeType),
		},
		"audio": map[string]string{
			"content": base64.StdEncoding.EncodeToString(audio),
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return TranscriptFailed
	}

	url := fmt.Sprintf("%s?key=%s", s.config.SpeechURL, s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return TranscriptFailed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return TranscriptFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return TranscriptFailed
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TranscriptFailed
	}

	var speechResp struct {
		Results []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &speechResp); err != nil {
		return TranscriptFailed
	}

	// Empty results means the recognizer heard nothing it understood.
	if len(speechResp.Results) == 0 || len(speechResp.Results[0].Alternatives) == 0 {
		return TranscriptUnintelligible
	}

	text := strings.TrimSpace(speechResp.Results[0].Alternatives[0].Transcript)
	if text == "" {
		return TranscriptUnintelligible
	}
	return text
}

func encodingFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "webm"), strings.Contains(mimeType, "ogg"):
		return "WEBM_OPUS"
	case strings.Contains(mimeType, "flac"):
		return "FLAC"
	default:
		return "LINEAR16"
	}
}
