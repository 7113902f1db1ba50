package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefaultConfig verifies that DefaultConfig returns valid defaults.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Database defaults
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Expected default postgres port 5432, got %d", cfg.Database.Port)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Expected max open conns 25, got %d", cfg.Database.MaxOpenConns)
	}

	// Collector defaults
	if cfg.Collector.UpdateIntervalSeconds != 15 {
		t.Errorf("Expected update interval 15s, got %d", cfg.Collector.UpdateIntervalSeconds)
	}
	if cfg.Collector.RequestsPerMinute != 30 {
		t.Errorf("Expected 30 requests/minute, got %d", cfg.Collector.RequestsPerMinute)
	}

	// Radar defaults
	if cfg.Radar.RadiusM != 200000 {
		t.Errorf("Expected radar radius 200000m, got %f", cfg.Radar.RadiusM)
	}
	if cfg.Radar.RefreshSeconds != 5 {
		t.Errorf("Expected refresh 5s, got %d", cfg.Radar.RefreshSeconds)
	}

	// Account stays empty unless configured
	if cfg.Account.Email != "" || cfg.Account.Password != "" {
		t.Error("Expected empty account credentials by default")
	}
}

// TestLoadNonExistentFile tests that Load returns default config when file doesn't exist.
func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	if err != nil {
		t.Fatalf("Expected no error for non-existent file, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected default config, got nil")
	}
	if cfg.Database.Driver != "postgres" {
		t.Error("Did not get default config for non-existent file")
	}
}

// TestLoadValidConfig tests loading a valid configuration file.
func TestLoadValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.json")

	testConfig := &Config{
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "db.example.com",
			Port:     5433,
			Database: "testdb",
			Username: "testuser",
		},
		Collector: CollectorConfig{
			Regions: []CollectionRegion{
				{Name: "Berlin", Latitude: 52.52, Longitude: 13.4, RadiusM: 150000, Enabled: true},
			},
			UpdateIntervalSeconds: 30,
			RequestsPerMinute:     10,
			FeedOptions:           map[string]string{"limit": "3000"},
		},
		Radar: RadarConfig{
			Latitude:       53.42,
			Longitude:      -6.27,
			RadiusM:        100000,
			RefreshSeconds: 10,
		},
	}

	data, err := json.MarshalIndent(testConfig, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Database.Host != "db.example.com" {
		t.Errorf("Expected db.example.com, got %s", cfg.Database.Host)
	}
	if len(cfg.Collector.Regions) != 1 || cfg.Collector.Regions[0].Name != "Berlin" {
		t.Errorf("Expected Berlin region, got %+v", cfg.Collector.Regions)
	}
	if cfg.Collector.FeedOptions["limit"] != "3000" {
		t.Errorf("Expected feed option limit 3000, got %q", cfg.Collector.FeedOptions["limit"])
	}
	if cfg.Radar.Latitude != 53.42 {
		t.Errorf("Expected radar latitude 53.42, got %f", cfg.Radar.Latitude)
	}
}

// TestLoadInvalidJSON tests error handling for malformed JSON.
func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.json")

	if err := os.WriteFile(configPath, []byte("{ invalid json }"), 0644); err != nil {
		t.Fatalf("Failed to write invalid config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Expected error for invalid JSON, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("Expected parse error, got: %v", err)
	}
}

// TestSaveConfig tests saving configuration to file.
func TestSaveConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "dir", "config.json")

	cfg := DefaultConfig()
	cfg.Database.Database = "fr24_test"
	cfg.Radar.RefreshSeconds = 2

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.Database.Database != "fr24_test" {
		t.Errorf("Expected database fr24_test, got %s", loaded.Database.Database)
	}
	if loaded.Radar.RefreshSeconds != 2 {
		t.Errorf("Expected refresh 2s, got %d", loaded.Radar.RefreshSeconds)
	}
}

// TestEnvironmentOverrides tests environment variable overrides.
func TestEnvironmentOverrides(t *testing.T) {
	os.Setenv("FR24_DB_PASSWORD", "env-password")
	os.Setenv("FR24_EMAIL", "env-user@example.com")
	os.Setenv("FR24_PASSWORD", "env-account-password")
	defer func() {
		os.Unsetenv("FR24_DB_PASSWORD")
		os.Unsetenv("FR24_EMAIL")
		os.Unsetenv("FR24_PASSWORD")
	}()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	testCfg := DefaultConfig()
	testCfg.Database.Password = "original-password"

	data, _ := json.Marshal(testCfg)
	os.WriteFile(configPath, data, 0644)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Database.Password != "env-password" {
		t.Errorf("Expected env-password from env, got %s", cfg.Database.Password)
	}
	if cfg.Account.Email != "env-user@example.com" {
		t.Errorf("Expected account email from env, got %s", cfg.Account.Email)
	}
	if cfg.Account.Password != "env-account-password" {
		t.Errorf("Expected account password from env, got %s", cfg.Account.Password)
	}
}

// TestEnabledRegions tests filtering of collection regions.
func TestEnabledRegions(t *testing.T) {
	cfg := CollectorConfig{
		Regions: []CollectionRegion{
			{Name: "Region 1", Latitude: 35.5, Longitude: -80.5, RadiusM: 100000, Enabled: true},
			{Name: "Region 2", Latitude: 36.0, Longitude: -81.0, RadiusM: 150000, Enabled: false},
			{Name: "Region 3", Latitude: 37.0, Longitude: -82.0, RadiusM: 50000, Enabled: true},
		},
	}

	regions := cfg.EnabledRegions()
	if len(regions) != 2 {
		t.Fatalf("Expected 2 enabled regions, got %d", len(regions))
	}
	if regions[0].Name != "Region 1" || regions[1].Name != "Region 3" {
		t.Errorf("Unexpected regions: %+v", regions)
	}
}
