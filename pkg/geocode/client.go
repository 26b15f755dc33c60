package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// UpstreamError wraps any failure talking to the geocoding provider:
// network errors, non-2xx statuses and malformed payloads. Calls are
// never retried; the caller decides what to do with the failure.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

// Address is the normalized address shape for forward searches.
type Address struct {
	Road     string `json:"road,omitempty"`
	Suburb   string `json:"suburb,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Location is the uniform record produced from provider responses,
// whatever kind of lookup produced them.
type Location struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Address     Address  `json:"address"`
	Importance  float64  `json:"importance"`
	BoundingBox []string `json:"boundingBox"`
}

// ReverseLocation carries the provider's address object through unshaped,
// unlike forward searches.
type ReverseLocation struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	Address     json.RawMessage `json:"address"`
	BoundingBox []string        `json:"boundingBox"`
}

type nominatimAddress struct {
	Road     string `json:"road"`
	Suburb   string `json:"suburb"`
	City     string `json:"city"`
	Town     string `json:"town"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

type nominatimPlace struct {
	PlaceID     int64            `json:"place_id"`
	DisplayName string           `json:"display_name"`
	Type        string           `json:"type"`
	Class       string           `json:"class"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
	Importance  float64          `json:"importance"`
	BoundingBox []string         `json:"boundingbox"`
}

type reversePlace struct {
	PlaceID     int64           `json:"place_id"`
	DisplayName string          `json:"display_name"`
	Type        string          `json:"type"`
	Class       string          `json:"class"`
	Lat         string          `json:"lat"`
	Lon         string          `json:"lon"`
	Address     json.RawMessage `json:"address"`
	BoundingBox []string        `json:"boundingbox"`
}

// Client issues lookups against a Nominatim-compatible provider, serving
// repeats from the injected cache. Results are scoped to a fixed country.
type Client struct {
	baseURL     string
	countryCode string
	userAgent   string
	httpClient  *http.Client
	cache       *Cache
}

func NewClient(baseURL, countryCode, userAgent string, cache *Cache) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		countryCode: countryCode,
		userAgent:   userAgent,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		cache:       cache,
	}
}

// Search looks up real-estate locations for a city, optionally narrowed by
// a category appended to the query text. The whole result list is cached
// under "{city}-{category}" ("all" when no category was given).
func (c *Client) Search(city, category string) ([]Location, error) {
	cacheKey := city + "-all"
	if category != "" {
		cacheKey = city + "-" + category
	}
	if cached, ok := c.cache.Get(cacheKey); ok {
		if locations, ok := cached.([]Location); ok {
			return locations, nil
		}
	}

	query := city
	if category != "" {
		query += " " + category
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "50")
	params.Set("countrycodes", c.countryCode)

	var places []nominatimPlace
	if err := c.get("/search", params, &places); err != nil {
		return nil, err
	}

	locations := formatLocations(places)
	c.cache.Put(cacheKey, locations)
	return locations, nil
}

// Reverse resolves a coordinate pair to a single location. lat and lon are
// passed through as received so the cache key matches the caller's input
// exactly.
func (c *Client) Reverse(lat, lon string) (*ReverseLocation, error) {
	cacheKey := lat + "-" + lon
	if cached, ok := c.cache.Get(cacheKey); ok {
		if location, ok := cached.(*ReverseLocation); ok {
			return location, nil
		}
	}

	params := url.Values{}
	params.Set("lat", lat)
	params.Set("lon", lon)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("zoom", "18")

	var place reversePlace
	if err := c.get("/reverse", params, &place); err != nil {
		return nil, err
	}

	location := &ReverseLocation{
		ID:          place.PlaceID,
		Name:        place.DisplayName,
		Type:        place.Type,
		Category:    place.Class,
		Latitude:    parseCoord(place.Lat),
		Longitude:   parseCoord(place.Lon),
		Address:     place.Address,
		BoundingBox: place.BoundingBox,
	}
	c.cache.Put(cacheKey, location)
	return location, nil
}

// Nearby searches around a coordinate pair. The bounding box is always
// ±0.01 degrees around the point; radius participates in the cache key
// only, never in the box size.
func (c *Client) Nearby(lat, lon, radius string) ([]Location, error) {
	cacheKey := "nearby-" + lat + "-" + lon + "-" + radius
	if cached, ok := c.cache.Get(cacheKey); ok {
		if locations, ok := cached.([]Location); ok {
			return locations, nil
		}
	}

	latF, errLat := strconv.ParseFloat(lat, 64)
	lonF, errLon := strconv.ParseFloat(lon, 64)
	if errLat != nil || errLon != nil {
		return nil, fmt.Errorf("invalid coordinates: %s,%s", lat, lon)
	}

	viewbox := strings.Join([]string{
		formatCoord(lonF - 0.01),
		formatCoord(latF + 0.01),
		formatCoord(lonF + 0.01),
		formatCoord(latF - 0.01),
	}, ",")

	params := url.Values{}
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "50")
	params.Set("viewbox", viewbox)
	params.Set("bounded", "1")

	var places []nominatimPlace
	if err := c.get("/search", params, &places); err != nil {
		return nil, err
	}

	locations := formatLocations(places)
	c.cache.Put(cacheKey, locations)
	return locations, nil
}

func (c *Client) get(path string, params url.Values, dest interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return &UpstreamError{Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Err: fmt.Errorf("geocoding provider returned status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &UpstreamError{Err: err}
	}
	return nil
}

func formatLocations(places []nominatimPlace) []Location {
	locations := make([]Location, 0, len(places))
	for _, place := range places {
		city := place.Address.City
		if city == "" {
			city = place.Address.Town
		}
		locations = append(locations, Location{
			ID:        place.PlaceID,
			Name:      place.DisplayName,
			Type:      place.Type,
			Category:  place.Class,
			Latitude:  parseCoord(place.Lat),
			Longitude: parseCoord(place.Lon),
			Address: Address{
				Road:     place.Address.Road,
				Suburb:   place.Address.Suburb,
				City:     city,
				State:    place.Address.State,
				Postcode: place.Address.Postcode,
				Country:  place.Address.Country,
			},
			Importance:  place.Importance,
			BoundingBox: place.BoundingBox,
		})
	}
	return locations
}

func parseCoord(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
