package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the complete application configuration shared by the
// collector and radar commands.
type Config struct {
	Database  DatabaseConfig  `json:"database"`
	Account   AccountConfig   `json:"account"`
	Collector CollectorConfig `json:"collector"`
	Radar     RadarConfig     `json:"radar"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	// Driver is the database driver (only postgres is supported)
	Driver string `json:"driver"`

	// Host is the database server hostname
	Host string `json:"host"`

	// Port is the database server port
	Port int `json:"port"`

	// Database is the database name
	Database string `json:"database"`

	// Username for database authentication
	Username string `json:"username"`

	// Password for database authentication (should be loaded from environment)
	Password string `json:"password"`

	// SSLMode for PostgreSQL connections (disable, require, verify-ca, verify-full)
	SSLMode string `json:"ssl_mode"`

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int `json:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int `json:"max_idle_conns"`
}

// AccountConfig contains optional FlightRadar24 account credentials.
// Anonymous access works for most endpoints; a logged-in session raises the
// feed limits and unlocks history downloads.
type AccountConfig struct {
	// Email for the FlightRadar24 account (should be loaded from environment)
	Email string `json:"email"`

	// Password for the FlightRadar24 account (should be loaded from environment)
	Password string `json:"password"`
}

// CollectionRegion represents a geographic region for flight data collection.
// The collector will fetch flights from all enabled regions.
type CollectionRegion struct {
	// Name is a friendly identifier for this region
	Name string `json:"name"`

	// Latitude in decimal degrees (-90 to +90)
	Latitude float64 `json:"latitude"`

	// Longitude in decimal degrees (-180 to +180)
	Longitude float64 `json:"longitude"`

	// RadiusM is the collection radius in meters
	RadiusM float64 `json:"radius_m"`

	// Enabled determines if this region should be actively collected
	Enabled bool `json:"enabled"`
}

// CollectorConfig contains the polling service configuration.
type CollectorConfig struct {
	// Regions defines the geographic regions to collect flights from
	Regions []CollectionRegion `json:"regions"`

	// UpdateIntervalSeconds is how often to refresh flight data
	UpdateIntervalSeconds int `json:"update_interval_seconds"`

	// RequestsPerMinute limits the feed query rate across all regions
	RequestsPerMinute int `json:"requests_per_minute"`

	// FeedOptions overrides live feed tracker options by their wire names
	// (e.g. "limit", "maxage", "vehicles")
	FeedOptions map[string]string `json:"feed_options,omitempty"`
}

// RadarConfig contains the terminal viewer configuration.
type RadarConfig struct {
	// Latitude of the radar center in decimal degrees
	Latitude float64 `json:"latitude"`

	// Longitude of the radar center in decimal degrees
	Longitude float64 `json:"longitude"`

	// RadiusM is the viewing radius in meters
	RadiusM float64 `json:"radius_m"`

	// RefreshSeconds is how often the screen refetches the feed
	RefreshSeconds int `json:"refresh_seconds"`
}

// Load reads configuration from a JSON file.
// If the file doesn't exist, returns a default configuration.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.applyEnvironmentOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	return &cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       "postgres",
			Host:         "localhost",
			Port:         5432,
			Database:     "fr24",
			Username:     "fr24",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Collector: CollectorConfig{
			Regions: []CollectionRegion{
				// Example region - customize based on your area of interest
			},
			UpdateIntervalSeconds: 15,
			RequestsPerMinute:     30,
		},
		Radar: RadarConfig{
			RadiusM:        200000,
			RefreshSeconds: 5,
		},
	}
}

// EnabledRegions returns the regions the collector should actively poll.
func (cfg *CollectorConfig) EnabledRegions() []CollectionRegion {
	regions := make([]CollectionRegion, 0, len(cfg.Regions))
	for _, region := range cfg.Regions {
		if region.Enabled {
			regions = append(regions, region)
		}
	}
	return regions
}

// applyEnvironmentOverrides applies environment variable overrides to the
// config. This allows credentials to be kept out of config files.
func (c *Config) applyEnvironmentOverrides() {
	if password := os.Getenv("FR24_DB_PASSWORD"); password != "" {
		c.Database.Password = password
	}
	if email := os.Getenv("FR24_EMAIL"); email != "" {
		c.Account.Email = email
	}
	if password := os.Getenv("FR24_PASSWORD"); password != "" {
		c.Account.Password = password
	}
}
