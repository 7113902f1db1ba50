package fr24

import (
	"encoding/json"
	"testing"
)

func sampleFeedEntry() []any {
	return []any{
		"4CA1FA",        // icao 24-bit
		float64(52.31),  // latitude
		float64(13.52),  // longitude
		float64(120),    // heading
		float64(36000),  // altitude
		float64(447),    // ground speed
		"7232",          // squawk
		"T-MLAT1",       // radar
		"B738",          // aircraft code
		"EI-DCL",        // registration
		float64(1.72e9), // time
		"BER",           // origin
		"DUB",           // destination
		"FR1234",        // number
		float64(0),      // on ground
		float64(-64),    // vertical speed
		"RYR4PM",        // callsign
		float64(0),      // reserved
		"RYR",           // airline icao
	}
}

// TestFlightFromFeed tests positional decoding of live feed entries.
func TestFlightFromFeed(t *testing.T) {
	t.Run("Decodes all fields", func(t *testing.T) {
		flight, err := flightFromFeed("2f9d8c1a", sampleFeedEntry())
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if flight.ID != "2f9d8c1a" {
			t.Errorf("Expected flight ID 2f9d8c1a, got %q", flight.ID)
		}
		if flight.ICAO24Bit != "4CA1FA" {
			t.Errorf("Expected ICAO 4CA1FA, got %q", flight.ICAO24Bit)
		}
		if flight.Latitude != 52.31 || flight.Longitude != 13.52 {
			t.Errorf("Unexpected position: %f, %f", flight.Latitude, flight.Longitude)
		}
		if flight.Altitude != 36000 {
			t.Errorf("Expected altitude 36000, got %d", flight.Altitude)
		}
		if flight.VerticalSpeed != -64 {
			t.Errorf("Expected vertical speed -64, got %d", flight.VerticalSpeed)
		}
		if flight.Time != 1720000000 {
			t.Errorf("Expected time 1720000000, got %d", flight.Time)
		}
		if flight.OnGround {
			t.Error("Expected airborne flight")
		}
		if flight.Callsign != "RYR4PM" {
			t.Errorf("Expected callsign RYR4PM, got %q", flight.Callsign)
		}
		if flight.AirlineICAO != "RYR" {
			t.Errorf("Expected airline ICAO RYR, got %q", flight.AirlineICAO)
		}
	})

	t.Run("Preserves legitimate zero values", func(t *testing.T) {
		entry := sampleFeedEntry()
		entry[3] = float64(0) // heading north
		entry[4] = float64(0) // on the runway
		entry[5] = float64(0) // standing still
		entry[14] = float64(1)

		flight, err := flightFromFeed("abc123", entry)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if flight.Heading != 0 || flight.Altitude != 0 || flight.GroundSpeed != 0 {
			t.Errorf("Expected zero values preserved, got h=%d a=%d s=%d",
				flight.Heading, flight.Altitude, flight.GroundSpeed)
		}
		if !flight.OnGround {
			t.Error("Expected flight on ground")
		}
	})

	t.Run("Derives airline IATA from flight number", func(t *testing.T) {
		flight, err := flightFromFeed("abc123", sampleFeedEntry())
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if flight.AirlineIATA != "FR" {
			t.Errorf("Expected airline IATA FR, got %q", flight.AirlineIATA)
		}
	})

	t.Run("No airline IATA without a flight number", func(t *testing.T) {
		entry := sampleFeedEntry()
		entry[13] = SentinelText

		flight, err := flightFromFeed("abc123", entry)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if flight.Number != "" {
			t.Errorf("Expected empty number, got %q", flight.Number)
		}
		if flight.AirlineIATA != "" {
			t.Errorf("Expected empty airline IATA, got %q", flight.AirlineIATA)
		}
	})

	t.Run("Sentinel text decodes to empty string", func(t *testing.T) {
		entry := sampleFeedEntry()
		entry[6] = SentinelText

		flight, err := flightFromFeed("abc123", entry)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if flight.Squawk != "" {
			t.Errorf("Expected empty squawk, got %q", flight.Squawk)
		}
		if DisplayText(flight.Squawk) != SentinelText {
			t.Errorf("Expected sentinel on display, got %q", DisplayText(flight.Squawk))
		}
	})

	t.Run("Rejects short entries", func(t *testing.T) {
		_, err := flightFromFeed("abc123", sampleFeedEntry()[:10])
		if err == nil {
			t.Error("Expected error for short feed entry")
		}
	})
}

// TestFlightMatches tests criteria evaluation against decoded flights.
func TestFlightMatches(t *testing.T) {
	flight, err := flightFromFeed("abc123", sampleFeedEntry())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	cases := []struct {
		name     string
		criteria map[string]any
		want     bool
	}{
		{"Empty criteria", map[string]any{}, true},
		{"Equality match", map[string]any{"airline_icao": "RYR"}, true},
		{"Equality mismatch", map[string]any{"airline_icao": "DLH"}, false},
		{"Boolean field", map[string]any{"on_ground": false}, true},
		{"Min bound holds", map[string]any{"min_altitude": 30000}, true},
		{"Min bound fails", map[string]any{"min_altitude": 40000}, false},
		{"Max bound holds", map[string]any{"max_ground_speed": 500}, true},
		{"Max bound fails", map[string]any{"max_ground_speed": 100}, false},
		{"Combined criteria", map[string]any{"registration": "EI-DCL", "min_altitude": 1000, "max_altitude": 40000}, true},
		{"Unknown key ignored", map[string]any{"wingspan": 35}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := flight.Matches(tc.criteria); got != tc.want {
				t.Errorf("Matches(%v) = %v, want %v", tc.criteria, got, tc.want)
			}
		})
	}
}

// TestFlightSetDetails tests attaching a detail payload to a flight.
func TestFlightSetDetails(t *testing.T) {
	var payload map[string]any
	raw := `{
		"aircraft": {
			"age": 12,
			"countryId": 110,
			"model": {"text": "Boeing 737-8AS"},
			"images": {"thumbnails": []}
		},
		"airline": {"name": "Ryanair", "short": "Ryanair"},
		"airport": {
			"origin": {
				"name": "Berlin Brandenburg Airport",
				"code": {"icao": "EDDB"},
				"position": {"latitude": 52.3667, "longitude": 13.5033, "country": {"name": "Germany", "code": "DE"}},
				"info": {"terminal": "1", "gate": "A21"},
				"timezone": {"name": "Europe/Berlin", "offset": 7200, "offsetHours": "2:00"}
			},
			"destination": {
				"name": "Dublin Airport",
				"code": {"icao": "EIDW"}
			}
		},
		"status": {"icon": "green", "text": "Estimated dep 10:30"},
		"time": {"scheduled": {"departure": 1720000000}},
		"trail": [
			{"lat": 52.3, "lng": 13.5, "alt": 1200, "spd": 180, "hd": 270, "ts": 1720000100},
			{"lat": 52.31, "lng": 13.49, "alt": 900, "spd": 165, "hd": 270, "ts": 1720000050}
		]
	}`
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("Failed to build fixture: %v", err)
	}

	flight := &Flight{ID: "2f9d8c1a"}
	flight.SetDetails(payload)

	details := flight.Details
	if details == nil {
		t.Fatal("Expected details attached")
	}
	if details.AircraftModel != "Boeing 737-8AS" {
		t.Errorf("Unexpected aircraft model: %q", details.AircraftModel)
	}
	if details.AircraftAge == nil || *details.AircraftAge != 12 {
		t.Errorf("Unexpected aircraft age: %v", details.AircraftAge)
	}
	if details.AirlineName != "Ryanair" {
		t.Errorf("Unexpected airline: %q", details.AirlineName)
	}
	if details.Origin.ICAO != "EDDB" || details.Origin.Gate != "A21" {
		t.Errorf("Unexpected origin: %+v", details.Origin)
	}
	if details.Origin.Timezone.OffsetHours != "2:00" {
		t.Errorf("Unexpected origin timezone: %+v", details.Origin.Timezone)
	}
	if details.Destination.Name != "Dublin Airport" {
		t.Errorf("Unexpected destination: %+v", details.Destination)
	}
	if details.StatusText != "Estimated dep 10:30" {
		t.Errorf("Unexpected status: %q", details.StatusText)
	}
	if len(details.Trail) != 2 || details.Trail[0].Altitude != 1200 {
		t.Errorf("Unexpected trail: %+v", details.Trail)
	}

	empty := &Flight{ID: "abc123"}
	empty.SetDetails(map[string]any{})
	if empty.Details == nil {
		t.Fatal("Expected details attached even for empty payload")
	}
	if empty.Details.AircraftModel != "" || empty.Details.Trail != nil {
		t.Errorf("Expected empty details, got %+v", empty.Details)
	}
}

// TestFlightFormatting tests the display helpers.
func TestFlightFormatting(t *testing.T) {
	flight := &Flight{Altitude: 36000, GroundSpeed: 447, Heading: 120, VerticalSpeed: -64}

	if flight.FormattedAltitude() != "36000 ft" {
		t.Errorf("Unexpected altitude text: %q", flight.FormattedAltitude())
	}
	if flight.FlightLevel() != "360 FL" {
		t.Errorf("Unexpected flight level: %q", flight.FlightLevel())
	}
	if flight.FormattedGroundSpeed() != "447 kts" {
		t.Errorf("Unexpected ground speed text: %q", flight.FormattedGroundSpeed())
	}
	if flight.FormattedHeading() != "120°" {
		t.Errorf("Unexpected heading text: %q", flight.FormattedHeading())
	}
	if flight.FormattedVerticalSpeed() != "-64 fpm" {
		t.Errorf("Unexpected vertical speed text: %q", flight.FormattedVerticalSpeed())
	}

	low := &Flight{Altitude: 2500, GroundSpeed: 1}
	if low.FlightLevel() != "2500 ft" {
		t.Errorf("Expected plain altitude below 10000 ft, got %q", low.FlightLevel())
	}
	if low.FormattedGroundSpeed() != "1 kt" {
		t.Errorf("Expected singular unit, got %q", low.FormattedGroundSpeed())
	}
}
