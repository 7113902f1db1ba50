package fr24

import "fmt"

// TrackerConfig holds the settings of the real-time flight tracker, merged
// into every live feed query. All values travel as decimal-numeric text.
type TrackerConfig struct {
	// FAA includes FAA radar data ("1" on, "0" off)
	FAA string

	// Satellite includes satellite sourced positions
	Satellite string

	// MLAT includes multilateration positions
	MLAT string

	// FLARM includes FLARM sourced positions (gliders, light aircraft)
	FLARM string

	// ADSB includes ADS-B sourced positions
	ADSB string

	// Ground includes aircraft on the ground
	Ground string

	// Air includes airborne aircraft
	Air string

	// Vehicles includes ground vehicles
	Vehicles string

	// Estimated includes estimated positions
	Estimated string

	// MaxAge is the maximum position age in seconds
	MaxAge string

	// Gliders includes gliders
	Gliders string

	// Stats includes the feed statistics block
	Stats string

	// Limit caps the number of returned flights
	Limit string
}

// DefaultTrackerConfig returns the documented defaults: every source toggle
// on, positions up to four hours old, at most 5000 results.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		FAA:       "1",
		Satellite: "1",
		MLAT:      "1",
		FLARM:     "1",
		ADSB:      "1",
		Ground:    "1",
		Air:       "1",
		Vehicles:  "1",
		Estimated: "1",
		MaxAge:    "14400",
		Gliders:   "1",
		Stats:     "1",
		Limit:     "5000",
	}
}

// Set assigns a tracker option by its wire name. Unknown keys and values that
// are not decimal-numeric text are rejected with a ValidationError.
func (c *TrackerConfig) Set(key, value string) error {
	field, ok := c.fieldByName(key)
	if !ok {
		return &ValidationError{Message: fmt.Sprintf("unknown option: %q", key)}
	}

	if !isDecimal(value) {
		return &ValidationError{Message: fmt.Sprintf("value for %q must be a decimal, got %q", key, value)}
	}

	*field = value
	return nil
}

// queryParams flattens the config into live feed query parameters and applies
// the caller-supplied overrides on top, so overrides win on key collision.
func (c TrackerConfig) queryParams(overrides map[string]string) map[string]string {
	params := map[string]string{
		"faa":       c.FAA,
		"satellite": c.Satellite,
		"mlat":      c.MLAT,
		"flarm":     c.FLARM,
		"adsb":      c.ADSB,
		"gnd":       c.Ground,
		"air":       c.Air,
		"vehicles":  c.Vehicles,
		"estimated": c.Estimated,
		"maxage":    c.MaxAge,
		"gliders":   c.Gliders,
		"stats":     c.Stats,
		"limit":     c.Limit,
	}
	for key, value := range overrides {
		params[key] = value
	}
	return params
}

func (c *TrackerConfig) fieldByName(key string) (*string, bool) {
	fields := map[string]*string{
		"faa":       &c.FAA,
		"satellite": &c.Satellite,
		"mlat":      &c.MLAT,
		"flarm":     &c.FLARM,
		"adsb":      &c.ADSB,
		"gnd":       &c.Ground,
		"air":       &c.Air,
		"vehicles":  &c.Vehicles,
		"estimated": &c.Estimated,
		"maxage":    &c.MaxAge,
		"gliders":   &c.Gliders,
		"stats":     &c.Stats,
		"limit":     &c.Limit,
	}
	field, ok := fields[key]
	return field, ok
}

func isDecimal(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
