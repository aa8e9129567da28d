package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	SQLite   SQLiteConfig
	Gemini   GeminiConfig
	Maps     MapsConfig
	Overpass OverpassConfig
	Auth     AuthConfig
	OTEL     OTELConfig
	Debug    DebugConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SQLiteConfig holds embedded user database configuration
type SQLiteConfig struct {
	Path string
}

// GeminiConfig holds the AI text-generation backend configuration. An empty
// APIKey means mock triage responses only.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// MapsConfig holds the primary geosearch provider configuration. An empty
// APIKey routes all searches through the keyless fallback provider and all
// distances through haversine.
type MapsConfig struct {
	APIKey  string
	Timeout time.Duration

	// Fallback region used when the client supplies no geolocation.
	DefaultLatitude  float64
	DefaultLongitude float64
}

// OverpassConfig holds the keyless fallback geosearch provider configuration
type OverpassConfig struct {
	URL     string
	RadiusM int
	Timeout time.Duration
}

// AuthConfig holds JWT configuration
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// DebugConfig gates the raw AI debug endpoint
type DebugConfig struct {
	AllowAIDebug bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("APP_ENV", "development"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "127.0.0.1"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "users.db"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 20*time.Second),
		},
		Maps: MapsConfig{
			APIKey:           getEnv("GOOGLE_MAPS_API_KEY", ""),
			Timeout:          getEnvAsDuration("MAPS_TIMEOUT", 20*time.Second),
			DefaultLatitude:  getEnvAsFloat("DEFAULT_LATITUDE", 12.8407),
			DefaultLongitude: getEnvAsFloat("DEFAULT_LONGITUDE", 80.1534),
		},
		Overpass: OverpassConfig{
			URL:     getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
			RadiusM: getEnvAsInt("OVERPASS_RADIUS_M", 15000),
			Timeout: getEnvAsDuration("OVERPASS_TIMEOUT", 20*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-only-secret-change-me"),
			TokenTTL:  getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "smart-health-assistant"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Debug: DebugConfig{
			AllowAIDebug: getEnv("DEBUG_ALLOW", "") == "1",
		},
	}, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ListenAddr returns the host:port the HTTP server binds to
func (c *ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
