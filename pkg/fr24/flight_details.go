package fr24

// FlightDetails is the extended information block returned by the per-flight
// detail endpoint. Every nested object in the payload is optional: a missing
// branch leaves the corresponding fields at their empty values.
type FlightDetails struct {
	// AircraftAge is the airframe age in years.
	AircraftAge *int

	// AircraftCountryID is the registration country identifier.
	AircraftCountryID *int

	// AircraftModel is the aircraft model text (e.g. "Boeing 737-8AS").
	AircraftModel string

	// AircraftImages holds the image groups as supplied by the service.
	AircraftImages map[string]any

	// AircraftHistory lists previous flights of the same airframe.
	AircraftHistory []map[string]any

	// AirlineName and AirlineShortName identify the operating airline.
	AirlineName      string
	AirlineShortName string

	// Origin and Destination carry the flattened airport sub-trees.
	Origin      DetailAirport
	Destination DetailAirport

	// StatusIcon and StatusText describe the flight status.
	StatusIcon string
	StatusText string

	// TimeDetails holds the scheduled/real/estimated time block unmodified.
	TimeDetails map[string]any

	// Trail is the historical position trail, most recent first.
	Trail []TrailPoint
}

// DetailAirport is the per-flight view of an origin or destination airport.
type DetailAirport struct {
	// ICAO code of the airport.
	ICAO string

	// Name of the airport.
	Name string

	// Altitude of the airport in feet.
	Altitude *float64

	// Latitude and Longitude of the airport.
	Latitude  *float64
	Longitude *float64

	// CountryCode and CountryName locate the airport.
	CountryCode string
	CountryName string

	// Baggage, Gate and Terminal are the airport-side handling details.
	Baggage  string
	Gate     string
	Terminal string

	// Visible reports whether the airport is shown on the map.
	Visible *bool

	// Website of the airport.
	Website string

	// Timezone of the airport.
	Timezone TimezoneInfo
}

// TimezoneInfo describes a local timezone as the service reports it.
type TimezoneInfo struct {
	// Name is the IANA name (e.g. "Europe/Dublin").
	Name string

	// Abbr and AbbrName are the abbreviation and its expansion.
	Abbr     string
	AbbrName string

	// Offset is the UTC offset in seconds.
	Offset *int

	// OffsetHours is the "H:00" style label. Empty when the raw offset was
	// absent or not integral.
	OffsetHours string
}

// TrailPoint is one historical position sample of a flight.
type TrailPoint struct {
	// Latitude and Longitude in decimal degrees.
	Latitude  float64
	Longitude float64

	// Altitude in feet.
	Altitude int

	// Speed in knots.
	Speed int

	// Heading in degrees.
	Heading int

	// Timestamp is the unix time of the sample.
	Timestamp int64
}

// SetDetails attaches a detail payload to the flight. Absent nested objects
// degrade to empty values; the method never fails on partial data.
func (f *Flight) SetDetails(payload map[string]any) {
	details := &FlightDetails{}

	aircraft := mapAt(payload, "aircraft")
	airline := mapAt(payload, "airline")
	airport := mapAt(payload, "airport")
	history := mapAt(payload, "flightHistory")
	status := mapAt(payload, "status")

	details.AircraftAge = intPtr(aircraft, "age")
	details.AircraftCountryID = intPtr(aircraft, "countryId")
	details.AircraftModel = stringAt(mapAt(aircraft, "model"), "text")
	details.AircraftImages = mapAt(aircraft, "images")
	details.AircraftHistory = sliceAt(history, "aircraft")

	details.AirlineName = stringAt(airline, "name")
	details.AirlineShortName = stringAt(airline, "short")

	details.Origin = detailAirportFrom(mapAt(airport, "origin"))
	details.Destination = detailAirportFrom(mapAt(airport, "destination"))

	details.StatusIcon = stringAt(status, "icon")
	details.StatusText = stringAt(status, "text")

	details.TimeDetails = mapAt(payload, "time")
	details.Trail = trailFrom(payload)

	f.Details = details
}

// detailAirportFrom flattens one origin/destination airport sub-tree.
func detailAirportFrom(airport map[string]any) DetailAirport {
	code := mapAt(airport, "code")
	info := mapAt(airport, "info")
	position := mapAt(airport, "position")
	country := mapAt(position, "country")
	timezone := mapAt(airport, "timezone")

	return DetailAirport{
		ICAO:        stringAt(code, "icao"),
		Name:        stringAt(airport, "name"),
		Altitude:    floatPtr(position, "altitude"),
		Latitude:    floatPtr(position, "latitude"),
		Longitude:   floatPtr(position, "longitude"),
		CountryCode: stringAt(country, "code"),
		CountryName: stringAt(country, "name"),
		Baggage:     stringAt(info, "baggage"),
		Gate:        stringAt(info, "gate"),
		Terminal:    stringAt(info, "terminal"),
		Visible:     boolPtr(airport, "visible"),
		Website:     stringAt(airport, "website"),
		Timezone:    timezoneFrom(timezone),
	}
}

// timezoneFrom decodes a timezone block. The "H:00" label comes straight from
// the payload here; the airport detail path derives it from the offset
// instead (see Airport.SetDetails).
func timezoneFrom(timezone map[string]any) TimezoneInfo {
	return TimezoneInfo{
		Name:        stringAt(timezone, "name"),
		Abbr:        stringAt(timezone, "abbr"),
		AbbrName:    stringAt(timezone, "abbrName"),
		Offset:      intPtr(timezone, "offset"),
		OffsetHours: stringAt(timezone, "offsetHours"),
	}
}

func trailFrom(payload map[string]any) []TrailPoint {
	entries := sliceAt(payload, "trail")
	if entries == nil {
		return nil
	}

	trail := make([]TrailPoint, 0, len(entries))
	for _, entry := range entries {
		lat, _ := floatAt(entry, "lat")
		lng, _ := floatAt(entry, "lng")
		alt, _ := intAt(entry, "alt")
		spd, _ := intAt(entry, "spd")
		hd, _ := intAt(entry, "hd")
		ts, _ := floatAt(entry, "ts")

		trail = append(trail, TrailPoint{
			Latitude:  lat,
			Longitude: lng,
			Altitude:  alt,
			Speed:     spd,
			Heading:   hd,
			Timestamp: int64(ts),
		})
	}
	return trail
}
