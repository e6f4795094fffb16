package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"excelinterview/internal/cache"
	"excelinterview/internal/config"
)

// Narrator renders served text to speech. It never fails: any error
// yields an empty URL and the caller serves text only.
type Narrator interface {
	Synthesize(ctx context.Context, sessionID, text string) string
}

// NarrationService synthesizes mp3 narration under the static TTS
// directory. Synthesized audio is cached in Redis by text digest so
// repeated prompts reuse the same file.
type NarrationService struct {
	config *config.AIConfig
	client *http.Client
	cache  cache.NarrationCache
	ttsDir string
}

// NewNarrationService creates a new narration service
func NewNarrationService(cfg *config.AIConfig, narrCache cache.NarrationCache, ttsDir string) *NarrationService {
	return &NarrationService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		cache:  narrCache,
		ttsDir: ttsDir,
	}
}

func (s *NarrationService) Synthesize(ctx context.Context, sessionID, text string) string {
	if s.config.TTSURL == "" || text == "" {
		return ""
	}

	digest := textDigest(text)
	if s.cache != nil {
		if cached, err := s.cache.GetURL(ctx, digest); err == nil && cached != "" {
			return cached
		}
	}

	audio, err := s.fetchAudio(ctx, text)
	if err != nil {
		log.Printf("[narration] synthesis failed: %v", err)
		return ""
	}

	filename := fmt.Sprintf("tts_%s_%s.mp3", sessionID, uuid.NewString()[:6])
	if err := os.WriteFile(filepath.Join(s.ttsDir, filename), audio, 0o644); err != nil {
		log.Printf("[narration] write failed: %v", err)
		return ""
	}

	audioURL := "/static/tts/" + filename
	if s.cache != nil {
		if err := s.cache.SetURL(ctx, digest, audioURL); err != nil {
			log.Printf("[narration] cache set failed: %v", err)
		}
	}
	return audioURL
}

func (s *NarrationService) fetchAudio(ctx context.Context, text string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", text)
	q.Set("tl", "en")
	q.Set("client", "tw-ob")

	req, err := http.NewRequestWithContext(ctx, "GET", s.config.TTSURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts endpoint returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func textDigest(text string) string {
	sum := sha1.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
