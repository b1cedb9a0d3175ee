// Package routing talks to the mapping provider for live traffic-aware
// driving durations and address geocoding.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofetch/gofetch/pkg/util"
)

const defaultRoutesEndpoint = "https://routes.googleapis.com/directions/v2:computeRoutes"
const defaultGeocodeEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

type Client struct {
	RoutesEndpoint  string
	GeocodeEndpoint string

	apiKey     string
	httpClient *http.Client
}

func NewClient() (*Client, error) {
	env := util.GetEnvironmentVariables()

	if env["GOFETCH_GOOGLE_MAPS_API_KEY"] == "" {
		return nil, fmt.Errorf("\"GOFETCH_GOOGLE_MAPS_API_KEY\" not set in environment")
	}

	return &Client{
		RoutesEndpoint:  defaultRoutesEndpoint,
		GeocodeEndpoint: defaultGeocodeEndpoint,

		apiKey: env["GOFETCH_GOOGLE_MAPS_API_KEY"],
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type computeRoutesRequest struct {
	Origin             routeWaypoint `json:"origin"`
	Destination        routeWaypoint `json:"destination"`
	TravelMode         string        `json:"travelMode"`
	RoutingPreference  string        `json:"routingPreference"`
	ComputeAlternative bool          `json:"computeAlternativeRoutes"`
	LanguageCode       string        `json:"languageCode"`
	Units              string        `json:"units"`
}

type routeWaypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type computeRoutesResponse struct {
	Routes []struct {
		Duration string `json:"duration"`
	} `json:"routes"`
}

// TravelMinutes returns the live driving duration between two points,
// rounded up to whole minutes.
func (c *Client) TravelMinutes(ctx context.Context, origin gfdf.Coordinates, destination gfdf.Coordinates) (int, error) {
	request := computeRoutesRequest{
		TravelMode:        "DRIVE",
		RoutingPreference: "TRAFFIC_AWARE",
		LanguageCode:      "en-UK",
		Units:             "METRIC",
	}
	request.Origin.Location.LatLng = latLng(origin)
	request.Destination.Location.LatLng = latLng(destination)

	body, err := json.Marshal(request)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.RoutesEndpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", "routes.duration")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("route request failed with status %d", resp.StatusCode)
	}

	var response computeRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return 0, err
	}

	if len(response.Routes) == 0 {
		return 0, fmt.Errorf("no route between origin and destination")
	}

	return parseDurationMinutes(response.Routes[0].Duration)
}

// The provider reports durations as decimal seconds with an "s" suffix
func parseDurationMinutes(duration string) (int, error) {
	seconds, err := strconv.Atoi(strings.TrimSuffix(duration, "s"))
	if err != nil {
		return 0, fmt.Errorf("invalid route duration %q: %w", duration, err)
	}

	return (seconds + 59) / 60, nil
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free text address to coordinates, used when the user
// types an origin instead of sharing device location.
func (c *Client) Geocode(ctx context.Context, address string) (gfdf.Coordinates, error) {
	requestURL := fmt.Sprintf("%s?address=%s&key=%s", c.GeocodeEndpoint, url.QueryEscape(address), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return gfdf.Coordinates{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gfdf.Coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return gfdf.Coordinates{}, fmt.Errorf("geocode request failed with status %d", resp.StatusCode)
	}

	var response geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return gfdf.Coordinates{}, err
	}

	if len(response.Results) == 0 {
		return gfdf.Coordinates{}, fmt.Errorf("no location found for %q", address)
	}

	location := response.Results[0].Geometry.Location
	return gfdf.Coordinates{
		Latitude:  location.Lat,
		Longitude: location.Lng,
	}, nil
}
