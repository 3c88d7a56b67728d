package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"placementcms/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Roster   RosterConfig
	Stats    StatsConfig
	Log      LogConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// RosterConfig holds roster ingestion settings
type RosterConfig struct {
	AcceptPolicy    string
	DuplicatePolicy string
	AliasesFile     string
	CommitOnUpload  bool
	// MaxRows rejects larger sheets outright; 0 means no limit
	MaxRows         int
}

// StatsConfig holds dashboard settings
type StatsConfig struct {
	EligibilityThreshold float64
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	config.Server = *loadServerConfig()
	config.Roster = *loadRosterConfig()
	config.Stats = *loadStatsConfig()
	config.Log = *loadLogConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// LoadRoster reads only the settings needed to validate files offline; no
// database is required
func LoadRoster() (*RosterConfig, error) {
	roster := loadRosterConfig()
	if err := validateRosterConfig(roster); err != nil {
		return nil, errors.Wrap(err, "roster configuration validation failed")
	}
	return roster, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		URL:          url,
		MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
		MaxUploadBytes:  int64(getEnvIntOrDefault("MAX_UPLOAD_BYTES", 10<<20)),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		AllowedOrigins:  getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

func loadRosterConfig() *RosterConfig {
	return &RosterConfig{
		AcceptPolicy:    getEnvOrDefault("ROSTER_ACCEPT_POLICY", "all_or_nothing"),
		DuplicatePolicy: getEnvOrDefault("ROSTER_DUPLICATE_POLICY", "last_column_wins"),
		AliasesFile:     getEnvOrDefault("ROSTER_ALIASES_FILE", ""),
		CommitOnUpload:  getEnvBoolOrDefault("ROSTER_COMMIT_ON_UPLOAD", false),
		MaxRows:         getEnvIntOrDefault("ROSTER_MAX_ROWS", 100000),
	}
}

func loadStatsConfig() *StatsConfig {
	return &StatsConfig{
		EligibilityThreshold: getEnvFloatOrDefault("ELIGIBILITY_THRESHOLD", 70),
	}
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("database URL is required")
	}
	if config.Server.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	if config.Stats.EligibilityThreshold < 0 || config.Stats.EligibilityThreshold > 100 {
		return errors.ConfigInvalid("ELIGIBILITY_THRESHOLD must be between 0 and 100")
	}
	return validateRosterConfig(&config.Roster)
}

func validateRosterConfig(roster *RosterConfig) error {
	switch strings.ToLower(roster.AcceptPolicy) {
	case "all_or_nothing", "partial":
	default:
		return errors.ConfigInvalid("ROSTER_ACCEPT_POLICY must be all_or_nothing or partial")
	}
	switch strings.ToLower(roster.DuplicatePolicy) {
	case "last_column_wins", "first_column_wins", "reject":
	default:
		return errors.ConfigInvalid("ROSTER_DUPLICATE_POLICY must be last_column_wins, first_column_wins or reject")
	}
	if roster.MaxRows < 0 {
		return errors.ConfigInvalid("ROSTER_MAX_ROWS must not be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
