package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/raphaelgruber/aisite-go/internal/chat"
)

// Config holds all configuration values.
type Config struct {
	// HTTP server
	ServerPort string

	// Lead API
	APIURL      string
	LeadTimeout time.Duration

	// Chat demo
	DefaultGroup     string
	ScenarioFile     string
	RevealBase       time.Duration
	RevealJitter     float64
	WindowCap        int
	GestureThreshold float64
	JumpThreshold    float64

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables, after loading a .env
// file from the working directory when one exists. Variables already set in
// the environment win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServerPort: getEnv("AISITE_SERVER_PORT", "4002"),

		APIURL:      getEnv("AISITE_API_URL", "http://localhost:3001"),
		LeadTimeout: getDuration("AISITE_LEAD_TIMEOUT", 15*time.Second),

		DefaultGroup:     getEnv("AISITE_DEFAULT_GROUP", "customers"),
		ScenarioFile:     getEnv("AISITE_SCENARIO_FILE", ""),
		RevealBase:       getDuration("AISITE_REVEAL_BASE_DELAY", 2*time.Second),
		RevealJitter:     getFloat("AISITE_REVEAL_JITTER", 0.18),
		WindowCap:        getInt("AISITE_WINDOW_CAP", 28),
		GestureThreshold: getFloat("AISITE_GESTURE_THRESHOLD", 2),
		JumpThreshold:    getFloat("AISITE_JUMP_THRESHOLD", 6),

		LogFile:  getEnv("AISITE_LOG_FILE", "/tmp/aisite.log"),
		LogLevel: parseLogLevel(getEnv("AISITE_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil && f >= 0 {
		return f
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ChatConfig returns the demo tuning for a chat view.
func (c Config) ChatConfig(logger *slog.Logger) chat.Config {
	return chat.Config{
		BaseDelay:        c.RevealBase,
		Jitter:           c.RevealJitter,
		WindowCap:        c.WindowCap,
		GestureThreshold: c.GestureThreshold,
		JumpThreshold:    c.JumpThreshold,
		Logger:           logger,
	}
}
