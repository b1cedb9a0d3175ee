// Package railclient talks to the live rail data provider for arrival boards
// and per-service details. The provider reports wall clock "HH:MM" strings
// and an "On time" marker; both are decoded here so nothing downstream ever
// handles them.
package railclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofetch/gofetch/pkg/util"
)

const defaultEndpoint = "https://www.thetrainline.com/live/api"

const onTimeMarker = "On time"

type Client struct {
	Endpoint string

	httpClient *http.Client
}

func NewClient() *Client {
	endpoint := defaultEndpoint

	env := util.GetEnvironmentVariables()
	if env["GOFETCH_RAIL_LIVE_ENDPOINT"] != "" {
		endpoint = env["GOFETCH_RAIL_LIVE_ENDPOINT"]
	}

	return &Client{
		Endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// BoardService is one row of a station arrivals board, used by the
// add-pickup flow to choose a service to track.
type BoardService struct {
	ServiceID string `json:"serviceId"`

	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	ScheduledAt string `json:"scheduledAt"`
	EstimatedAt string `json:"estimatedAt"`

	Platform string `json:"platform"`
	Operator string `json:"operator"`
}

type liveBoardResponse struct {
	Data struct {
		Trains []struct {
			ServiceID   string `json:"serviceId"`
			ScheduledAt string `json:"scheduledAt"`
			EstimatedAt string `json:"estimatedAt"`
			Platform    string `json:"platform"`
			Operator    string `json:"operatorName"`

			Origin      liveLocation `json:"origin"`
			Destination liveLocation `json:"destination"`
		} `json:"trains"`
	} `json:"data"`
}

type liveDetailsResponse struct {
	Data struct {
		CallingPoints []struct {
			Station     string `json:"station"`
			ScheduledAt string `json:"scheduledAt"`
			EstimatedAt string `json:"estimatedAt"`
		} `json:"callingPoints"`
	} `json:"data"`
}

type liveLocation struct {
	Name string `json:"name"`
}

// Arrivals returns the live arrivals board for a station CRS code.
func (c *Client) Arrivals(ctx context.Context, stationCode string) ([]BoardService, error) {
	url := fmt.Sprintf("%s/trains;action=arrivals;destinationCode=;originCode=%s?returnMeta=true", c.Endpoint, stationCode)

	var response liveBoardResponse
	if err := c.get(ctx, url, &response); err != nil {
		return nil, err
	}

	var services []BoardService
	for _, train := range response.Data.Trains {
		services = append(services, BoardService{
			ServiceID:   train.ServiceID,
			Origin:      train.Origin.Name,
			Destination: train.Destination.Name,
			ScheduledAt: train.ScheduledAt,
			EstimatedAt: train.EstimatedAt,
			Platform:    train.Platform,
			Operator:    train.Operator,
		})
	}

	return services, nil
}

// ServiceDetails returns the decoded arrival of a tracked service at the
// pickup station. The provider keys calling points by display name rather
// than CRS code, hence the stationName parameter.
func (c *Client) ServiceDetails(ctx context.Context, stationCode string, stationName string, serviceID string) (gfdf.Arrival, error) {
	url := fmt.Sprintf("%s/trains;action=details;isDepartures=false;selectedStationCode=%s;serviceId=%s?returnMeta=true", c.Endpoint, stationCode, serviceID)

	var response liveDetailsResponse
	if err := c.get(ctx, url, &response); err != nil {
		return gfdf.Arrival{}, err
	}

	for _, point := range response.Data.CallingPoints {
		if !strings.EqualFold(point.Station, stationName) {
			continue
		}

		return decodeArrival(point.ScheduledAt, point.EstimatedAt, time.Now())
	}

	return gfdf.Arrival{}, fmt.Errorf("service %s has no calling point at %s", serviceID, stationName)
}

func decodeArrival(scheduledAt string, estimatedAt string, now time.Time) (gfdf.Arrival, error) {
	scheduled, err := util.ParseRailTime(scheduledAt, now)
	if err != nil {
		return gfdf.Arrival{}, err
	}

	if estimatedAt == "" || strings.EqualFold(estimatedAt, onTimeMarker) {
		return gfdf.Arrival{
			Scheduled: scheduled,
			Expected:  scheduled,
			OnTime:    true,
		}, nil
	}

	expected, err := util.ParseRailTime(estimatedAt, now)
	if err != nil {
		return gfdf.Arrival{}, err
	}

	return gfdf.Arrival{
		Scheduled: scheduled,
		Expected:  expected,
	}, nil
}

func (c *Client) get(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	// The provider is Cloudflare fronted and rejects requests without
	// browser-ish headers
	req.Header["user-agent"] = []string{"Mozilla/5.0 (compatible; GoFetch/1.0;)"}
	req.Header["accept"] = []string{"application/json"}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("live rail request failed with status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
