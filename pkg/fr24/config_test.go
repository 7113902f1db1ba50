package fr24

import (
	"errors"
	"testing"
)

// TestTrackerConfig tests the feed configuration and its validation.
func TestTrackerConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		config := DefaultTrackerConfig()

		if config.FAA != "1" {
			t.Errorf("Expected FAA default 1, got %q", config.FAA)
		}
		if config.MaxAge != "14400" {
			t.Errorf("Expected MaxAge default 14400, got %q", config.MaxAge)
		}
		if config.Limit != "5000" {
			t.Errorf("Expected Limit default 5000, got %q", config.Limit)
		}
	})

	t.Run("Set valid option", func(t *testing.T) {
		config := DefaultTrackerConfig()

		if err := config.Set("limit", "3000"); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if config.Limit != "3000" {
			t.Errorf("Expected limit 3000, got %q", config.Limit)
		}

		params := config.queryParams(nil)
		if params["limit"] != "3000" {
			t.Errorf("Expected queryParams to carry new limit, got %q", params["limit"])
		}
	})

	t.Run("Set rejects non-decimal value", func(t *testing.T) {
		config := DefaultTrackerConfig()
		err := config.Set("limit", "abc")

		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("Expected ValidationError, got: %v", err)
		}
		if config.Limit != "5000" {
			t.Errorf("Expected limit unchanged after failed Set, got %q", config.Limit)
		}
	})

	t.Run("Set rejects empty value", func(t *testing.T) {
		config := DefaultTrackerConfig()
		if err := config.Set("gliders", ""); err == nil {
			t.Error("Expected error for empty value")
		}
	})

	t.Run("Set rejects unknown option", func(t *testing.T) {
		config := DefaultTrackerConfig()
		err := config.Set("turbo", "1")

		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("Expected ValidationError, got: %v", err)
		}
	})

	t.Run("Overrides win over config values", func(t *testing.T) {
		config := DefaultTrackerConfig()
		params := config.queryParams(map[string]string{"limit": "100", "bounds": "1,2,3,4"})

		if params["limit"] != "100" {
			t.Errorf("Expected override limit 100, got %q", params["limit"])
		}
		if params["bounds"] != "1,2,3,4" {
			t.Errorf("Expected bounds override preserved, got %q", params["bounds"])
		}
		if params["maxage"] != "14400" {
			t.Errorf("Expected config maxage preserved, got %q", params["maxage"])
		}
	})
}
