package fr24

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/JeanExtreme002/FlightRadarAPI/pkg/geo"
)

// FlightFilter narrows a live feed query. Every field is optional.
type FlightFilter struct {
	// Airline is the airline ICAO code (e.g. "DAL").
	Airline string

	// Bounds is a rectangle in "tl_y,br_y,tl_x,br_x" form; geo.Bounds.String
	// produces it.
	Bounds string

	// Registration filters by airframe registration.
	Registration string

	// AircraftType filters by aircraft model code (e.g. "B738").
	AircraftType string

	// WithDetails fetches the detail block for every returned flight. This
	// performs one extra sequential round-trip per flight.
	WithDetails bool
}

// GetFlights queries the live feed and decodes every flight in the response.
// Metadata entries (stats, counts, version) are filtered out by the leading
// character of their key: only keys starting with a decimal digit are flights.
func (c *Client) GetFlights(filter *FlightFilter) ([]*Flight, error) {
	if filter == nil {
		filter = &FlightFilter{}
	}

	overrides := make(map[string]string)
	if current := c.currentSession(); current != nil {
		overrides["enc"] = current.token()
	}
	if filter.Airline != "" {
		overrides["airline"] = filter.Airline
	}
	if filter.Bounds != "" {
		overrides["bounds"] = strings.ReplaceAll(filter.Bounds, ",", "%2C")
	}
	if filter.Registration != "" {
		overrides["reg"] = filter.Registration
	}
	if filter.AircraftType != "" {
		overrides["type"] = filter.AircraftType
	}

	response, err := c.sendRequest(requestOptions{
		url:     c.endpoints.realTimeFeed,
		params:  c.TrackerConfig().queryParams(overrides),
		headers: jsonHeaders(),
	})
	if err != nil {
		return nil, err
	}

	content, err := response.JSON()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(content))
	for id := range content {
		if id != "" && id[0] >= '0' && id[0] <= '9' {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	flights := make([]*Flight, 0, len(ids))
	for _, id := range ids {
		entry, ok := content[id].([]any)
		if !ok {
			continue
		}

		flight, err := flightFromFeed(id, entry)
		if err != nil {
			return nil, err
		}
		flights = append(flights, flight)

		if filter.WithDetails {
			details, err := c.GetFlightDetails(flight)
			if err != nil {
				return nil, err
			}
			flight.SetDetails(details)
		}
	}

	return flights, nil
}

// GetFlightDetails fetches the raw detail payload for a flight. Attach it
// with Flight.SetDetails.
func (c *Client) GetFlightDetails(flight *Flight) (map[string]any, error) {
	response, err := c.sendRequest(requestOptions{
		url:     c.endpoints.flightData,
		params:  map[string]string{"flight": flight.ID},
		headers: jsonHeaders(),
	})
	if err != nil {
		return nil, err
	}
	return response.JSON()
}

// GetAirports returns every airport from the bulk listing.
func (c *Client) GetAirports() ([]*Airport, error) {
	response, err := c.sendRequest(requestOptions{
		url:     c.endpoints.airportsData,
		headers: jsonHeaders(),
	})
	if err != nil {
		return nil, err
	}

	content, err := response.JSON()
	if err != nil {
		return nil, err
	}

	rows := sliceAt(content, "rows")
	airports := make([]*Airport, 0, len(rows))
	for _, row := range rows {
		airports = append(airports, airportFromBasic(row))
	}
	return airports, nil
}

// GetAirport returns basic information about one airport by its IATA or ICAO
// code.
func (c *Client) GetAirport(code string) (*Airport, error) {
	if err := validateAirportCode(code); err != nil {
		return nil, err
	}

	response, err := c.sendRequest(requestOptions{
		url:     c.endpoints.airportData,
		params:  map[string]string{"airport": code},
		headers: jsonHeaders(),
	})
	if err != nil {
		return nil, err
	}

	content, err := response.JSON()
	if err != nil {
		return nil, &NotFoundError{Resource: "airport", Code: code}
	}

	info, ok := content["details"].(map[string]any)
	if !ok || len(info) == 0 {
		return nil, &NotFoundError{Resource: "airport", Code: code}
	}

	return airportFromInfo(info), nil
}

// GetAirportDetailed returns one airport with the full detail surface
// (weather, runways, schedule, reviews) populated.
func (c *Client) GetAirportDetailed(code string) (*Airport, error) {
	payload, err := c.AirportDetails(code, 100, 1)
	if err != nil {
		return nil, err
	}

	airport := &Airport{}
	airport.SetDetails(payload)
	return airport, nil
}

// AirportDetails fetches the raw airport detail payload. flightLimit caps the
// related flights per schedule page, page selects the result page. A
// structured 400 from the upstream surfaces as a ValidationError when the
// limit was rejected and as a NotFoundError otherwise.
func (c *Client) AirportDetails(code string, flightLimit, page int) (map[string]any, error) {
	if err := validateAirportCode(code); err != nil {
		return nil, err
	}

	params := map[string]string{
		"format": "json",
		"code":   code,
		"limit":  strconv.Itoa(flightLimit),
		"page":   strconv.Itoa(page),
	}
	if current := c.currentSession(); current != nil {
		params["token"] = current.token()
	}

	response, err := c.sendRequest(requestOptions{
		url:          c.endpoints.apiAirport,
		params:       params,
		headers:      jsonHeaders(),
		acceptStatus: []int{400},
	})
	if err != nil {
		return nil, err
	}

	content, err := response.JSON()
	if err != nil {
		return nil, err
	}

	if response.StatusCode == 400 {
		parameters := mapAt(mapAt(mapAt(content, "errors"), "errors"), "parameters")
		if limit := mapAt(parameters, "limit"); len(limit) > 0 {
			return nil, &ValidationError{Message: stringAt(limit, "notBetween")}
		}
		return nil, &NotFoundError{Resource: "airport", Code: code}
	}

	result := mapAt(mapAt(content, "result"), "response")

	// The upstream answers 200 with a hollow pluginData block for unknown
	// codes.
	plugin := mapAt(mapAt(result, "airport"), "pluginData")
	_, hasDetails := plugin["details"]
	if !hasDetails && len(sliceAt(plugin, "runways")) == 0 && len(plugin) <= 3 {
		return nil, &NotFoundError{Resource: "airport", Code: code}
	}

	return result, nil
}

// GetAirlines returns the bulk airline listing as raw rows.
func (c *Client) GetAirlines() ([]map[string]any, error) {
	response, err := c.sendRequest(requestOptions{
		url:     c.endpoints.airlinesData,
		headers: jsonHeaders(),
	})
	if err != nil {
		return nil, err
	}

	content, err := response.JSON()
	if err != nil {
		return nil, err
	}
	return sliceAt(content, "rows"), nil
}

// AirlineLogo downloads an airline logo. It returns the image bytes and the
// file extension, or nil bytes when the service has no logo for the airline;
// a 4xx on the image endpoints means "no logo", not a hard failure.
func (c *Client) AirlineLogo(iata, icao string) ([]byte, string, error) {
	iata = strings.ToUpper(iata)
	icao = strings.ToUpper(icao)

	first := fmt.Sprintf(c.endpoints.airlineLogo, iata, icao)
	payload, ext, err := c.fetchImage(first, imageHeaders())
	if err != nil || payload != nil {
		return payload, ext, err
	}

	second := fmt.Sprintf(c.endpoints.operatorLogo, icao)
	return c.fetchImage(second, imageHeaders())
}

// CountryFlag downloads the flag image for a country name.
func (c *Client) CountryFlag(country string) ([]byte, string, error) {
	slug := strings.ReplaceAll(strings.ToLower(country), " ", "-")

	headers := imageHeaders()
	// The flag endpoint rejects cross-origin requests.
	delete(headers, "origin")

	return c.fetchImage(fmt.Sprintf(c.endpoints.countryFlag, slug), headers)
}

// Zone is a named region of the globe with optional nested subzones.
type Zone struct {
	TopLeftY     float64         `json:"tl_y"`
	BottomRightY float64         `json:"br_y"`
	TopLeftX     float64         `json:"tl_x"`
	BottomRightX float64         `json:"br_x"`
	Subzones     map[string]Zone `json:"subzones,omitempty"`
}

// Bounds converts the zone rectangle into a live feed bounds value.
func (z Zone) Bounds() geo.Bounds {
	return geo.Bounds{
		TopLeftY:     z.TopLeftY,
		BottomRightY: z.BottomRightY,
		TopLeftX:     z.TopLeftX,
		BottomRightX: z.BottomRightX,
	}
}

// GetZones returns the major zones of the globe. The payload's "version" key
// is metadata and is stripped before returning.
func (c *Client) GetZones() (map[string]Zone, error) {
	response, err := c.sendRequest(requestOptions{
		url:     c.endpoints.zonesData,
		headers: jsonHeaders(),
	})
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(response.Bytes(), &raw); err != nil {
		return nil, fmt.Errorf("decode zones: %w", err)
	}
	delete(raw, "version")

	zones := make(map[string]Zone, len(raw))
	for name, entry := range raw {
		var zone Zone
		if err := json.Unmarshal(entry, &zone); err != nil {
			return nil, fmt.Errorf("decode zone %q: %w", name, err)
		}
		zones[name] = zone
	}
	return zones, nil
}

// Search runs a free-text search. Results come back grouped by the category
// buckets the service reports in its stats block (live, schedule, airport,
// operator, ...).
func (c *Client) Search(query string, limit int) (map[string][]map[string]any, error) {
	response, err := c.sendRequest(requestOptions{
		url: c.endpoints.search,
		params: map[string]string{
			// The request layer does not escape parameters itself.
			"query": url.QueryEscape(query),
			"limit": strconv.Itoa(limit),
		},
		headers: jsonHeaders(),
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Results []map[string]any `json:"results"`
		Stats   struct {
			Count json.RawMessage `json:"count"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(response.Bytes(), &payload); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}

	grouped := make(map[string][]map[string]any)
	if len(payload.Stats.Count) == 0 {
		return grouped, nil
	}

	// The result blocks arrive in the same order as the stats buckets, so
	// the count object has to be walked in its original key order.
	decoder := json.NewDecoder(bytes.NewReader(payload.Stats.Count))
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("decode search stats: %w", err)
	}

	index := 0
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("decode search stats: %w", err)
		}
		name, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("decode search stats: unexpected token %v", token)
		}
		var count int
		if err := decoder.Decode(&count); err != nil {
			return nil, fmt.Errorf("decode search stats: %w", err)
		}

		bucket := []map[string]any{}
		for i := 0; i < count && index < len(payload.Results); i++ {
			bucket = append(bucket, payload.Results[index])
			index++
		}
		grouped[name] = bucket
	}
	return grouped, nil
}

// MostTracked returns the currently most tracked flights.
func (c *Client) MostTracked() (map[string]any, error) {
	return c.getJSON(c.endpoints.mostTracked)
}

// VolcanicEruptions returns boundaries of volcanic eruptions and ash clouds
// impacting aviation.
func (c *Client) VolcanicEruptions() (map[string]any, error) {
	return c.getJSON(c.endpoints.volcanicData)
}

// AirportDisruptions returns the current airport disruption list.
func (c *Client) AirportDisruptions() (map[string]any, error) {
	return c.getJSON(c.endpoints.disruptions)
}

// Bookmarks returns the account's bookmarks. Requires a login session.
func (c *Client) Bookmarks() (map[string]any, error) {
	current := c.currentSession()
	if current == nil {
		return nil, &LoginError{Message: "you must log in to your account"}
	}

	headers := jsonHeaders()
	if token, ok := current.userData["accessToken"].(string); ok {
		headers["accesstoken"] = token
	}

	response, err := c.sendRequest(requestOptions{
		url:     c.endpoints.bookmarks,
		headers: headers,
		cookies: current.cookies,
	})
	if err != nil {
		return nil, err
	}
	return response.JSON()
}

// HistoryData downloads the historical track of a flight as a CSV or KML
// export. Requires a login session; fileType must be "csv" or "kml".
func (c *Client) HistoryData(flight *Flight, fileType string, timestamp int64) (string, error) {
	current := c.currentSession()
	if current == nil {
		return "", &LoginError{Message: "you must log in to your account"}
	}

	fileType = strings.ToLower(fileType)
	if fileType != "csv" && fileType != "kml" {
		return "", &ValidationError{Message: fmt.Sprintf("file type %q is not supported, only CSV and KML are", fileType)}
	}

	response, err := c.sendRequest(requestOptions{
		url: c.endpoints.historical,
		params: map[string]string{
			"flight":     flight.ID,
			"file":       fileType,
			"trailLimit": "0",
			"history":    strconv.FormatInt(timestamp, 10),
		},
		headers: jsonHeaders(),
		cookies: current.cookies,
	})
	if err != nil {
		return "", err
	}
	return string(response.Bytes()), nil
}

// fetchImage downloads a binary asset, mapping any 4xx to a nil result.
func (c *Client) fetchImage(url string, headers map[string]string) ([]byte, string, error) {
	response, err := c.sendRequest(requestOptions{
		url:          url,
		headers:      headers,
		acceptStatus: []int{400, 401, 403, 404, 410},
	})
	if err != nil {
		return nil, "", err
	}

	if response.StatusCode >= 400 && response.StatusCode < 500 {
		return nil, "", nil
	}

	extension := url[strings.LastIndex(url, ".")+1:]
	return response.Bytes(), extension, nil
}

// getJSON performs a plain GET against an endpoint returning a JSON object.
func (c *Client) getJSON(url string) (map[string]any, error) {
	response, err := c.sendRequest(requestOptions{
		url:     url,
		headers: jsonHeaders(),
	})
	if err != nil {
		return nil, err
	}
	return response.JSON()
}

func validateAirportCode(code string) error {
	if len(code) < 3 || len(code) > 4 {
		return &ValidationError{Message: fmt.Sprintf("the code %q is invalid, it must be the IATA or ICAO of the airport", code)}
	}
	return nil
}
