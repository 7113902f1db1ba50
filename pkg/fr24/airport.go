package fr24

import (
	"fmt"

	"github.com/JeanExtreme002/FlightRadarAPI/pkg/geo"
)

// Airport is an airport record. There are two construction paths: the bulk
// listing supplies a flat key set (airportFromBasic), the per-airport lookups
// supply nested payloads (airportFromInfo, SetDetails). Both populate the
// same attribute surface and the detail path supersedes every field it
// carries.
type Airport struct {
	geo.Position

	// Altitude of the airport in feet.
	Altitude float64

	// Name of the airport.
	Name string

	// ICAO and IATA codes.
	ICAO string
	IATA string

	// Country name, ISO code and numeric id.
	Country     string
	CountryCode string
	CountryID   *int

	// City the airport belongs to.
	City string

	// Timezone of the airport.
	Timezone TimezoneInfo

	// Visible reports whether the airport is shown on the map.
	Visible *bool

	// Website of the airport.
	Website string

	// The fields below are only populated by the detail lookup.

	// Elevation in feet.
	Elevation *float64

	// ReviewsURL, Reviews, Evaluation, AverageRating and TotalRating carry
	// the flight diary block.
	ReviewsURL    string
	Reviews       *int
	Evaluation    *int
	AverageRating *float64
	TotalRating   *int

	// Weather is the current weather block, unmodified.
	Weather map[string]any

	// Runways lists the airport runways.
	Runways []map[string]any

	// AircraftOnGround and AircraftVisibleOnGround count parked aircraft.
	AircraftOnGround        *int
	AircraftVisibleOnGround *int

	// Arrivals and Departures hold the schedule blocks, unmodified.
	Arrivals   map[string]any
	Departures map[string]any

	// Wikipedia is the Wikipedia article URL.
	Wikipedia string

	// Images holds the airport image groups.
	Images map[string]any
}

func (a *Airport) String() string {
	return fmt.Sprintf("<(%s) %s - Altitude: %g - Latitude: %g - Longitude: %g>",
		DisplayText(a.ICAO), DisplayText(a.Name), a.Altitude, a.Latitude, a.Longitude)
}

// airportFromBasic builds an airport from one row of the bulk listing. The
// row is flat; no nested traversal happens here.
func airportFromBasic(row map[string]any) *Airport {
	lat, _ := floatAt(row, "lat")
	lon, _ := floatAt(row, "lon")
	alt, _ := floatAt(row, "alt")

	return &Airport{
		Position: geo.Position{Latitude: lat, Longitude: lon},
		Altitude: alt,
		Name:     stringAt(row, "name"),
		ICAO:     stringAt(row, "icao"),
		IATA:     stringAt(row, "iata"),
		Country:  stringAt(row, "country"),
	}
}

// airportFromInfo builds an airport from the nested "details" object of the
// traffic-stats lookup.
func airportFromInfo(info map[string]any) *Airport {
	position := mapAt(info, "position")
	country := mapAt(position, "country")
	region := mapAt(position, "region")
	code := mapAt(info, "code")

	lat, _ := floatAt(position, "latitude")
	lon, _ := floatAt(position, "longitude")
	alt, _ := floatAt(position, "altitude")

	return &Airport{
		Position:    geo.Position{Latitude: lat, Longitude: lon},
		Altitude:    alt,
		Name:        stringAt(info, "name"),
		ICAO:        stringAt(code, "icao"),
		IATA:        stringAt(code, "iata"),
		Country:     stringAt(country, "name"),
		CountryCode: stringAt(country, "code"),
		City:        stringAt(region, "city"),
		Timezone:    timezoneFrom(mapAt(info, "timezone")),
		Visible:     boolPtr(info, "visible"),
		Website:     stringAt(info, "website"),
	}
}

// SetDetails applies a detail lookup payload to the airport. The payload is
// traversed through airport → pluginData → details/runways/schedule/
// flightdiary/aircraftCount/weather; every missing level degrades to empty.
func (a *Airport) SetDetails(payload map[string]any) {
	plugin := mapAt(mapAt(payload, "airport"), "pluginData")

	details := mapAt(plugin, "details")
	position := mapAt(details, "position")
	country := mapAt(position, "country")
	region := mapAt(position, "region")
	code := mapAt(details, "code")
	timezone := mapAt(details, "timezone")
	urls := mapAt(details, "url")

	flightDiary := mapAt(plugin, "flightdiary")
	ratings := mapAt(flightDiary, "ratings")
	schedule := mapAt(plugin, "schedule")
	aircraftOnGround := mapAt(mapAt(plugin, "aircraftCount"), "onGround")

	// Identity and location. Only supersede what the payload carries.
	if name := stringAt(details, "name"); name != "" {
		a.Name = name
	}
	if icao := stringAt(code, "icao"); icao != "" {
		a.ICAO = icao
	}
	if iata := stringAt(code, "iata"); iata != "" {
		a.IATA = iata
	}
	if lat, ok := floatAt(position, "latitude"); ok {
		a.Latitude = lat
	}
	if lon, ok := floatAt(position, "longitude"); ok {
		a.Longitude = lon
	}
	if alt, ok := floatAt(position, "altitude"); ok {
		a.Altitude = alt
	}
	if name := stringAt(country, "name"); name != "" {
		a.Country = name
	}

	a.Elevation = floatPtr(position, "elevation")
	a.CountryCode = stringAt(country, "code")
	a.CountryID = intPtr(country, "id")
	a.City = stringAt(region, "city")

	// Timezone. The hour label is derived, not transmitted: it exists only
	// when the raw offset is integral.
	a.Timezone = TimezoneInfo{
		Name:     stringAt(timezone, "name"),
		Abbr:     stringAt(timezone, "abbr"),
		AbbrName: stringAt(timezone, "abbrName"),
		Offset:   intPtr(timezone, "offset"),
	}
	if a.Timezone.Offset != nil {
		a.Timezone.OffsetHours = fmt.Sprintf("%d:00", *a.Timezone.Offset/60/60)
	}

	// Flight diary (reviews).
	a.ReviewsURL = stringAt(flightDiary, "url")
	if a.ReviewsURL != "" {
		a.ReviewsURL = "https://www.flightradar24.com" + a.ReviewsURL
	}
	a.Reviews = intPtr(flightDiary, "reviews")
	a.Evaluation = intPtr(flightDiary, "evaluation")
	a.AverageRating = floatPtr(ratings, "avg")
	a.TotalRating = intPtr(ratings, "total")

	// Weather, runways and aircraft counts.
	a.Weather = mapAt(plugin, "weather")
	a.Runways = sliceAt(plugin, "runways")
	a.AircraftOnGround = intPtr(aircraftOnGround, "total")
	a.AircraftVisibleOnGround = intPtr(aircraftOnGround, "visible")

	// Schedule.
	a.Arrivals = mapAt(schedule, "arrivals")
	a.Departures = mapAt(schedule, "departures")

	// Links and other information.
	a.Website = stringAt(urls, "homepage")
	a.Wikipedia = stringAt(urls, "wikipedia")
	a.Visible = boolPtr(details, "visible")
	a.Images = mapAt(details, "airportImages")
}
