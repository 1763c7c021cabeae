package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration.
type Config struct {
	Port string

	// AWS credentials for the Polly synthesis provider.
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string

	// TTSProvider selects the synthesis backend ("polly" or "stub").
	TTSProvider string

	// AudioStrategy selects the concatenation strategy ("wav" or "mp3").
	AudioStrategy string

	// MP3BitrateKbps sizes silence padding for the mp3 strategy.
	MP3BitrateKbps int
}

// Load parses environment variables into Config and validates required values.
func Load() (Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		TTSProvider:        getEnv("TTS_PROVIDER", "polly"),
		AudioStrategy:      getEnv("AUDIO_STRATEGY", "mp3"),
		MP3BitrateKbps:     getEnvInt("MP3_BITRATE_KBPS", 48),
	}

	switch cfg.TTSProvider {
	case "polly":
		if cfg.AWSAccessKeyID == "" || cfg.AWSSecretAccessKey == "" {
			return Config{}, errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required")
		}
	case "stub":
	default:
		return Config{}, fmt.Errorf("unknown TTS_PROVIDER %q", cfg.TTSProvider)
	}

	if cfg.AudioStrategy != "wav" && cfg.AudioStrategy != "mp3" {
		return Config{}, fmt.Errorf("unknown AUDIO_STRATEGY %q", cfg.AudioStrategy)
	}

	if cfg.MP3BitrateKbps <= 0 {
		return Config{}, errors.New("MP3_BITRATE_KBPS must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
