// Package fr24 provides a client for the FlightRadar24 data services.
//
// The client issues plain HTTP requests against the public endpoints, decodes
// the service's heterogeneous response shapes (JSON objects, compact
// positional arrays, binary images) and exposes typed views over that data:
// flights, airports and the live feed tracker configuration.
//
// The package performs no caching, retrying or rate limiting; pacing policy
// belongs to the caller (see cmd/fr24-collector for an example).
package fr24

// endpoints holds the remote service URLs. Every Client carries its own copy
// so tests can point individual endpoints at a local server.
type endpoints struct {
	userLogin    string
	userLogout   string
	search       string // query, limit
	realTimeFeed string
	flightData   string // flight id
	historical   string // flight id, file type, timestamp
	apiAirport   string
	airportData  string // airport code
	airportsData string
	airlinesData string
	zonesData    string
	volcanicData string
	mostTracked  string
	disruptions  string
	bookmarks    string
	countryFlag  string // country slug
	airlineLogo  string // iata, icao
	operatorLogo string // icao
}

func defaultEndpoints() endpoints {
	const (
		apiBase       = "https://api.flightradar24.com/common/v1"
		cdnBase       = "https://cdn.flightradar24.com"
		base          = "https://www.flightradar24.com"
		dataLiveBase  = "https://data-live.flightradar24.com"
		dataCloudBase = "https://data-cloud.flightradar24.com"
	)

	return endpoints{
		userLogin:    base + "/user/login",
		userLogout:   base + "/user/logout",
		search:       base + "/v1/search/web/find",
		realTimeFeed: dataCloudBase + "/zones/fcgi/feed.js",
		flightData:   dataLiveBase + "/clickhandler/",
		historical:   base + "/download/",
		apiAirport:   apiBase + "/airport.json",
		airportData:  base + "/airports/traffic-stats/",
		airportsData: base + "/_json/airports.php",
		airlinesData: base + "/_json/airlines.php",
		zonesData:    base + "/js/zones.js.php",
		volcanicData: base + "/weather/volcanic",
		mostTracked:  base + "/flights/most-tracked",
		disruptions:  base + "/webapi/v1/airport-disruptions",
		bookmarks:    base + "/webapi/v1/bookmarks",
		countryFlag:  base + "/static/images/data/flags-small/%s.svg",
		airlineLogo:  cdnBase + "/assets/airlines/logotypes/%s_%s.png",
		operatorLogo: base + "/static/images/data/operators/%s_logo0.png",
	}
}

// baseHeaders mimics an ordinary browser session. The service rejects
// requests without a plausible user agent and advertises brotli/gzip
// encoded payloads that the request layer must undo itself.
var baseHeaders = map[string]string{
	"accept-encoding": "gzip, br",
	"accept-language": "en-US,en;q=0.9",
	"cache-control":   "max-age=0",
	"origin":          "https://www.flightradar24.com",
	"referer":         "https://www.flightradar24.com/",
	"sec-fetch-dest":  "empty",
	"sec-fetch-mode":  "cors",
	"sec-fetch-site":  "same-site",
	"user-agent": "Mozilla/5.0 (Windows NT 6.1) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/87.0.4280.88 Safari/537.36",
}

func jsonHeaders() map[string]string {
	headers := copyHeaders(baseHeaders)
	headers["accept"] = "application/json"
	return headers
}

func imageHeaders() map[string]string {
	headers := copyHeaders(baseHeaders)
	headers["accept"] = "image/gif, image/jpg, image/jpeg, image/png"
	return headers
}

func copyHeaders(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
