package config

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the toll corridor service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port of the public API server.
// - MonitoringPort: The port for the health and metrics server.
// - StoreType: The toll station store to use (postgres, memory).
// - SeedPath: Optional JSON file with toll stations loaded at startup.
// - DefaultRadiusKm: Search radius used when a request has none.
// - RequestTimeout: Deadline applied to every API request.
// - CORSOrigins: Origins allowed to call the API from a browser.
// - GoogleAPIKey: Google Maps key, enables the directions endpoint when set.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env                 string         // Env is the current environment: local, development, production.
	Port                int            // Port is the public API server port.
	MonitoringPort      int            // MonitoringPort serves /healthz and /metrics.
	StoreType           string         // StoreType selects the toll station store.
	SeedPath            string         // SeedPath is a JSON seed file, empty to skip seeding.
	DefaultRadiusKm     float64        // DefaultRadiusKm is the fallback search radius.
	RequestTimeout      time.Duration  // RequestTimeout bounds every API request.
	CORSOrigins         []string       // CORSOrigins lists the allowed browser origins.
	GoogleAPIKey        string         // GoogleAPIKey for the Directions API.
	DirectionsRateLimit int            // DirectionsRateLimit is requests per second to Google.
	Database            PostgresConfig // Database holds the postgres database configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad reads the configuration from the environment, optionally seeded from a .env file.
// It panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	port, err := strconv.Atoi(v.GetString("TOLLWAY_PORT"))
	if err != nil {
		panic("failed to parse port for api server from configuration")
	}

	monitoringPort, err := strconv.Atoi(v.GetString("TOLLWAY_MONITORING_PORT"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	radius, err := strconv.ParseFloat(v.GetString("TOLLWAY_DEFAULT_RADIUS_KM"), 64)
	if err != nil || !(radius > 0) || math.IsInf(radius, 0) {
		panic("failed to parse default radius from configuration, must be a positive number")
	}

	timeout, err := time.ParseDuration(v.GetString("TOLLWAY_REQUEST_TIMEOUT"))
	if err != nil {
		panic("failed to parse request timeout from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("TOLLWAY_DIRECTIONS_RATE_LIMIT"))
	if err != nil {
		panic("failed to parse directions rate limit from configuration, must be an integer types")
	}

	return &Config{
		Env:                 v.GetString("TOLLWAY_ENV"),
		Port:                port,
		MonitoringPort:      monitoringPort,
		StoreType:           v.GetString("TOLLWAY_STORE"),
		SeedPath:            v.GetString("TOLLWAY_SEED_PATH"),
		DefaultRadiusKm:     radius,
		RequestTimeout:      timeout,
		CORSOrigins:         splitList(v.GetString("TOLLWAY_CORS_ORIGINS")),
		GoogleAPIKey:        v.GetString("TOLLWAY_GOOGLE_API_KEY"),
		DirectionsRateLimit: rateLimit,
		Database: PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TOLLWAY_ENV", "production")
	v.SetDefault("TOLLWAY_PORT", "8080")
	v.SetDefault("TOLLWAY_MONITORING_PORT", "9090")
	v.SetDefault("TOLLWAY_STORE", "postgres")
	v.SetDefault("TOLLWAY_SEED_PATH", "")
	v.SetDefault("TOLLWAY_DEFAULT_RADIUS_KM", "5")
	v.SetDefault("TOLLWAY_REQUEST_TIMEOUT", "10s")
	v.SetDefault("TOLLWAY_CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("TOLLWAY_GOOGLE_API_KEY", "")
	v.SetDefault("TOLLWAY_DIRECTIONS_RATE_LIMIT", "10")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USERNAME", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "")
}

// splitList splits a comma separated value, dropping blanks.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}

	return list
}
