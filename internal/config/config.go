// Package config loads service settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultWeatherAPIURL is the historical weather archive endpoint.
const DefaultWeatherAPIURL = "https://archive-api.open-meteo.com/v1/archive"

// Config holds service settings.
type Config struct {
	Port   string
	Origin string

	WeatherAPIURL       string
	WeatherTimeout      time.Duration
	WeatherRetries      int
	WeatherRetryBackoff time.Duration

	// SampleStride keeps every n-th hourly sample, 24 gives one sample per day.
	SampleStride int
	Workers      int

	GeometryPath string
	LogLevel     string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	// .env is optional
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", "8080"),
		Origin:              getEnv("ORIGIN", "*"),
		WeatherAPIURL:       getEnv("WEATHER_API_URL", DefaultWeatherAPIURL),
		WeatherTimeout:      getEnvAsDuration("WEATHER_TIMEOUT", 10*time.Second),
		WeatherRetries:      getEnvAsInt("WEATHER_RETRIES", 2),
		WeatherRetryBackoff: getEnvAsDuration("WEATHER_RETRY_BACKOFF", 500*time.Millisecond),
		SampleStride:        getEnvAsInt("SAMPLE_STRIDE", 24),
		Workers:             getEnvAsInt("WORKERS", 4),
		GeometryPath:        getEnv("GEOMETRY_PATH", "assets/wind_turbine_model.glb"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil || intValue < 0 {
		return defaultValue
	}
	return intValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
