package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Autosave configuration
	AutosaveDelay time.Duration
	DraftTTL      time.Duration

	// Content generation configuration
	OpenAIAPIKey      string
	OpenAIModel       string
	GenerationTimeout time.Duration

	// Media pipeline configuration
	MediaAPIBaseURL string
	MediaAPIKey     string
	MediaTimeout    time.Duration
	MediaMockMode   bool

	// Automation provisioning configuration
	AutomationAPIBaseURL string
	AutomationAPIKey     string
	AutomationTimeout    time.Duration

	// Session configuration
	SessionIdleTTL       time.Duration
	SessionSweepInterval time.Duration

	// Rate limiting
	GenerationRateLimit  int
	GenerationRateWindow time.Duration

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// Autosave
		AutosaveDelay: getEnvAsDuration("AUTOSAVE_DELAY", "5s"),
		DraftTTL:      getEnvAsDuration("DRAFT_TTL", "168h"),

		// Content generation
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GenerationTimeout: getEnvAsDuration("GENERATION_TIMEOUT", "30s"),

		// Media pipeline
		MediaAPIBaseURL: getEnv("MEDIA_API_BASE_URL", "http://localhost:9800"),
		MediaAPIKey:     getEnv("MEDIA_API_KEY", ""),
		MediaTimeout:    getEnvAsDuration("MEDIA_TIMEOUT", "60s"),
		MediaMockMode:   getEnvAsBool("MEDIA_MOCK_MODE", false),

		// Automation provisioning
		AutomationAPIBaseURL: getEnv("AUTOMATION_API_BASE_URL", "http://localhost:9810"),
		AutomationAPIKey:     getEnv("AUTOMATION_API_KEY", ""),
		AutomationTimeout:    getEnvAsDuration("AUTOMATION_TIMEOUT", "15s"),

		// Sessions
		SessionIdleTTL:       getEnvAsDuration("SESSION_IDLE_TTL", "2h"),
		SessionSweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", "10m"),

		// Rate limiting
		GenerationRateLimit:  getEnvAsInt("GENERATION_RATE_LIMIT", 20),
		GenerationRateWindow: getEnvAsDuration("GENERATION_RATE_WINDOW", "1m"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
