package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultBaseURL is the GSI (国土地理院) address search endpoint.
const defaultBaseURL = "https://msearch.gsi.go.jp"

// Geocoder resolves a free-text address or place name to a coordinate.
// The boolean reports whether the query resolved; a service miss and a
// transport failure are indistinguishable to callers.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Coordinate, bool, error)
}

// Client calls the GSI address search API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Geocode resolves query to a coordinate. An empty or whitespace-only query is
// a caller error. Zero matches and transport failures both return found=false;
// a single request is issued per call, with no retry and no caching.
func (c *Client) Geocode(ctx context.Context, query string) (Coordinate, bool, error) {
	if strings.TrimSpace(query) == "" {
		return Coordinate{}, false, fmt.Errorf("geocode: empty query")
	}

	params := url.Values{}
	params.Add("q", query)
	endpoint := c.BaseURL + "/address-search/AddressSearch?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinate{}, false, nil
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Coordinate{}, false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinate{}, false, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Coordinate{}, false, nil
	}

	var results []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return Coordinate{}, false, nil
	}

	if len(results) == 0 || len(results[0].Geometry.Coordinates) < 2 {
		return Coordinate{}, false, nil
	}

	// The API returns [longitude, latitude].
	coords := results[0].Geometry.Coordinates
	return Coordinate{Lat: coords[1], Lon: coords[0]}, true, nil
}
