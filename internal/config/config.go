package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	DatabasePath     string
	CascadePath      string // Haar cascade for face detection
	EncoderModelPath string // 128-d face encoder network
	TrackerModelPath string // binary face-tracker confidence network
	EmotionModelPath string // 7-class emotion network
	MatchThreshold   float64
	RecentLogLimit   int
	LogDirectory     string
	StaticDirectory  string
}

func Load() *Config {
	// Optional .env file; real environment variables win.
	_ = godotenv.Load()

	return &Config{
		Port:             getEnvAsInt("PORT", 5000),
		DatabasePath:     getEnv("DB_PATH", filepath.Join(".", "data", "faceserver.db")),
		CascadePath:      getEnv("CASCADE_PATH", filepath.Join(".", "models", "haarcascade_frontalface_default.xml")),
		EncoderModelPath: getEnv("ENCODER_MODEL_PATH", filepath.Join(".", "models", "face_encoder.onnx")),
		TrackerModelPath: getEnv("TRACKER_MODEL_PATH", filepath.Join(".", "models", "facetracker.onnx")),
		EmotionModelPath: getEnv("EMOTION_MODEL_PATH", filepath.Join(".", "models", "emotiondetector.onnx")),
		MatchThreshold:   getEnvAsFloat("MATCH_THRESHOLD", 0.52),
		RecentLogLimit:   getEnvAsInt("RECENT_LOG_LIMIT", 10),
		LogDirectory:     getEnv("LOG_DIR", filepath.Join(".", "logs")),
		StaticDirectory:  getEnv("STATIC_DIR", filepath.Join(".", "static")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
