package fr24

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JeanExtreme002/FlightRadarAPI/pkg/geo"
)

// feedFieldCount is the number of positional slots a live feed entry must
// carry. The last consumed slot is the airline ICAO at index 18.
const feedFieldCount = 19

// Flight is a single aircraft state decoded from the live feed.
//
// String fields hold the empty string when the source slot was absent or held
// the sentinel text; numeric fields keep their value as transmitted, so a
// legitimate zero (altitude, speed, heading) survives decoding. Use
// DisplayText and the Formatted* methods to render sentinel values.
type Flight struct {
	geo.Position

	// ID is the opaque feed identifier of this flight.
	ID string

	// ICAO24Bit is the 24-bit ICAO transponder address.
	ICAO24Bit string

	// Heading is the ground track in degrees (0-359).
	Heading int

	// Altitude in feet.
	Altitude int

	// GroundSpeed in knots.
	GroundSpeed int

	// VerticalSpeed in feet per minute.
	VerticalSpeed int

	// Squawk is the transponder code.
	Squawk string

	// AircraftCode is the aircraft type code (e.g. "B738").
	AircraftCode string

	// Registration is the airframe registration.
	Registration string

	// Time is the unix timestamp of the position report.
	Time int64

	// OriginAirportIATA and DestinationAirportIATA are route endpoints.
	OriginAirportIATA      string
	DestinationAirportIATA string

	// Number is the commercial flight number.
	Number string

	// AirlineIATA is derived from the first two characters of Number; it is
	// not transmitted by the feed.
	AirlineIATA string

	// AirlineICAO is the operating airline's ICAO code.
	AirlineICAO string

	// OnGround reports whether the aircraft is on the ground.
	OnGround bool

	// Callsign is the ATC callsign.
	Callsign string

	// Details holds the extended detail block after a second fetch, nil
	// until SetDetails is called.
	Details *FlightDetails
}

// flightFromFeed decodes one positional live feed entry. The field order is
// fixed by the service; entries shorter than feedFieldCount are rejected.
func flightFromFeed(id string, raw []any) (*Flight, error) {
	if len(raw) < feedFieldCount {
		return nil, fmt.Errorf("flight %s: feed entry has %d fields, need %d", id, len(raw), feedFieldCount)
	}

	flight := &Flight{
		Position: geo.Position{
			Latitude:  feedFloat(raw, 1),
			Longitude: feedFloat(raw, 2),
		},
		ID:                     id,
		ICAO24Bit:              feedString(raw, 0),
		Heading:                feedInt(raw, 3),
		Altitude:               feedInt(raw, 4),
		GroundSpeed:            feedInt(raw, 5),
		Squawk:                 feedString(raw, 6),
		AircraftCode:           feedString(raw, 8),
		Registration:           feedString(raw, 9),
		Time:                   feedInt64(raw, 10),
		OriginAirportIATA:      feedString(raw, 11),
		DestinationAirportIATA: feedString(raw, 12),
		Number:                 feedString(raw, 13),
		OnGround:               feedBool(raw, 14),
		VerticalSpeed:          feedInt(raw, 15),
		Callsign:               feedString(raw, 16),
		AirlineICAO:            feedString(raw, 18),
	}

	if len(flight.Number) >= 2 {
		flight.AirlineIATA = flight.Number[:2]
	}

	return flight, nil
}

// Matches evaluates a set of criteria against the flight. Keys name decoded
// fields by their wire-style names ("altitude", "airline_icao", "on_ground",
// ...). A "min_" or "max_" prefix asserts a lower or upper bound on a numeric
// field instead of equality. Unknown keys are ignored; every recognized
// criterion must hold.
func (f *Flight) Matches(criteria map[string]any) bool {
	for key, expected := range criteria {
		switch {
		case strings.HasPrefix(key, "min_"):
			value, ok := f.numericField(strings.TrimPrefix(key, "min_"))
			bound, boundOK := asFloat(expected)
			if ok && boundOK && value < bound {
				return false
			}
		case strings.HasPrefix(key, "max_"):
			value, ok := f.numericField(strings.TrimPrefix(key, "max_"))
			bound, boundOK := asFloat(expected)
			if ok && boundOK && value > bound {
				return false
			}
		default:
			value, ok := f.fieldValue(key)
			if ok && !equalValues(value, expected) {
				return false
			}
		}
	}
	return true
}

// FormattedAltitude returns the altitude with its unit of measure.
func (f *Flight) FormattedAltitude() string {
	return fmt.Sprintf("%d ft", f.Altitude)
}

// FlightLevel returns the flight level above 10000 ft, the plain altitude
// otherwise.
func (f *Flight) FlightLevel() string {
	if f.Altitude >= 10000 {
		return strconv.Itoa(f.Altitude)[:3] + " FL"
	}
	return f.FormattedAltitude()
}

// FormattedGroundSpeed returns the ground speed with its unit of measure.
func (f *Flight) FormattedGroundSpeed() string {
	unit := "kt"
	if f.GroundSpeed > 1 {
		unit = "kts"
	}
	return fmt.Sprintf("%d %s", f.GroundSpeed, unit)
}

// FormattedHeading returns the heading in degrees.
func (f *Flight) FormattedHeading() string {
	return fmt.Sprintf("%d°", f.Heading)
}

// FormattedVerticalSpeed returns the vertical speed with its unit of measure.
func (f *Flight) FormattedVerticalSpeed() string {
	return fmt.Sprintf("%d fpm", f.VerticalSpeed)
}

func (f *Flight) String() string {
	return fmt.Sprintf("<(%s) %s - Altitude: %d - Ground Speed: %d - Heading: %d>",
		DisplayText(f.AircraftCode), DisplayText(f.Registration), f.Altitude, f.GroundSpeed, f.Heading)
}

// numericField maps a wire-style field name to its numeric value.
func (f *Flight) numericField(name string) (float64, bool) {
	switch name {
	case "latitude":
		return f.Latitude, true
	case "longitude":
		return f.Longitude, true
	case "heading":
		return float64(f.Heading), true
	case "altitude":
		return float64(f.Altitude), true
	case "ground_speed":
		return float64(f.GroundSpeed), true
	case "vertical_speed":
		return float64(f.VerticalSpeed), true
	case "time":
		return float64(f.Time), true
	}
	return 0, false
}

// fieldValue maps a wire-style field name to its decoded value.
func (f *Flight) fieldValue(name string) (any, bool) {
	if value, ok := f.numericField(name); ok {
		return value, true
	}

	switch name {
	case "id":
		return f.ID, true
	case "icao_24bit":
		return f.ICAO24Bit, true
	case "squawk":
		return f.Squawk, true
	case "aircraft_code":
		return f.AircraftCode, true
	case "registration":
		return f.Registration, true
	case "origin_airport_iata":
		return f.OriginAirportIATA, true
	case "destination_airport_iata":
		return f.DestinationAirportIATA, true
	case "number":
		return f.Number, true
	case "airline_iata":
		return f.AirlineIATA, true
	case "airline_icao":
		return f.AirlineICAO, true
	case "callsign":
		return f.Callsign, true
	case "on_ground":
		return f.OnGround, true
	}
	return nil, false
}

func feedString(raw []any, index int) string {
	value, ok := raw[index].(string)
	if !ok || value == SentinelText {
		return ""
	}
	return value
}

func feedFloat(raw []any, index int) float64 {
	value, _ := raw[index].(float64)
	return value
}

func feedInt(raw []any, index int) int {
	return int(feedFloat(raw, index))
}

func feedInt64(raw []any, index int) int64 {
	return int64(feedFloat(raw, index))
}

func feedBool(raw []any, index int) bool {
	return feedFloat(raw, index) != 0
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	return 0, false
}

func equalValues(got, want any) bool {
	if gotNum, ok := asFloat(got); ok {
		wantNum, ok := asFloat(want)
		return ok && gotNum == wantNum
	}

	switch g := got.(type) {
	case string:
		w, ok := want.(string)
		return ok && g == w
	case bool:
		w, ok := want.(bool)
		return ok && g == w
	}
	return false
}
