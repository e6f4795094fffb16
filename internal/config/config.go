package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process-level configuration. Everything comes from the
// environment, optionally preloaded from a .env file.
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string
	StaticDir string

	// MaxQuestions is the number of main answers that completes a
	// session. MaxFollowUps caps how many follow-up answers a session
	// may accumulate.
	MaxQuestions int
	MaxFollowUps int
}

func Load() *Config {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	return &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "excelinterview"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:     getEnv("PORT", "8000"),
		StaticDir:    getEnv("STATIC_DIR", "static"),
		MaxQuestions: getEnvInt("MAX_QUESTIONS", 10),
		MaxFollowUps: getEnvInt("MAX_FOLLOWUPS", 1),
	}
}

// TTSDir is where synthesized narration audio is written.
func (c *Config) TTSDir() string {
	return filepath.Join(c.StaticDir, "tts")
}

// ReportsDir is where report artifacts (PDF + JSON) are written.
func (c *Config) ReportsDir() string {
	return filepath.Join(c.StaticDir, "reports")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
