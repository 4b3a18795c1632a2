package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds settings for both the board and the analysis service.
type Config struct {
	AnalyzeURL     string        // analysis endpoint used by the board
	Discover       bool          // look the endpoint up over mDNS when AnalyzeURL is empty
	DiscoverWait   time.Duration // how long to browse
	AnalyzeTimeout time.Duration // zero means no client-side limit
	Width          int           // initial window size
	Height         int
	Addr           string // analysis service listen address
	Advertise      bool   // announce the analysis service over mDNS
	Verbose        bool
}

// Load reads the configuration from CALMBOARD_* environment variables.
func Load() *Config {
	return &Config{
		AnalyzeURL:     getEnv("CALMBOARD_ANALYZE_URL", ""),
		Discover:       getEnvAsBool("CALMBOARD_DISCOVER", true),
		DiscoverWait:   getEnvAsDuration("CALMBOARD_DISCOVER_WAIT", 2*time.Second),
		AnalyzeTimeout: getEnvAsDuration("CALMBOARD_TIMEOUT", 0),
		Width:          getEnvAsInt("CALMBOARD_WIDTH", 1024),
		Height:         getEnvAsInt("CALMBOARD_HEIGHT", 768),
		Addr:           getEnv("CALMBOARD_ADDR", ":5001"),
		Advertise:      getEnvAsBool("CALMBOARD_ADVERTISE", true),
		Verbose:        getEnvAsBool("CALMBOARD_VERBOSE", false),
	}
}

// DefaultAnalyzeURL is used when nothing is configured or discovered.
const DefaultAnalyzeURL = "http://127.0.0.1:5001/analyze"

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}
