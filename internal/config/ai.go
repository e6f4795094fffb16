package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Eval is for per-answer evaluation (needs to be fast)
	Eval string `json:"eval"`

	// Analysis is for the end-of-interview multi-axis analysis (deeper,
	// not latency sensitive)
	Analysis string `json:"analysis"`
}

// AIConfig holds configuration for the external AI collaborators:
// Gemini evaluation/analysis, speech-to-text and text-to-speech.
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`

	// SpeechURL is the speech recognition REST endpoint, keyed with the
	// same API key. TTSURL is the unauthenticated narration endpoint.
	SpeechURL string `json:"speechUrl"`
	TTSURL    string `json:"ttsUrl"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			Eval:     getEnvOrDefault("GEMINI_MODEL_EVAL", "gemini-2.0-flash"),
			Analysis: getEnvOrDefault("GEMINI_MODEL_ANALYSIS", "gemini-2.0-flash"),
		},
		TimeoutMS: 10000, // 10 second default timeout
		SpeechURL: getEnvOrDefault("SPEECH_API_URL", "https://speech.googleapis.com/v1/speech:recognize"),
		TTSURL:    getEnvOrDefault("TTS_API_URL", "https://translate.google.com/translate_tts"),
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
