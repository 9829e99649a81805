package samsara

import (
	"context"
	"fmt"
	"net/http"

	"github.com/txsvc/apikit/config"
	"github.com/txsvc/apikit/settings"
	"github.com/txsvc/stdlib/v2"

	"github.com/wanship-fleet/fleetops/internal"
)

const (
	SamsaraHttpEndpoint = "SAMSARA_HTTP_ENDPOINT"
	SamsaraApiToken     = "SAMSARA_API_TOKEN"

	SamsaraApiAgent = "fleetops/samsara"

	DefaultEndpoint = "https://api.samsara.com"
)

type (
	// Client is the vehicle-telemetry API client. All calls authenticate
	// with a bearer token.
	Client struct {
		rc internal.RestClient
	}
)

func NewClient(ctx context.Context, opts ...internal.ClientOption) (*Client, error) {

	httpClient := internal.NewLoggingTransport(http.DefaultTransport)
	ds := &settings.DialSettings{
		Endpoint:  stdlib.GetString(SamsaraHttpEndpoint, DefaultEndpoint),
		UserAgent: SamsaraApiAgent,
		Credentials: &settings.Credentials{
			Token: stdlib.GetString(SamsaraApiToken, ""),
		},
	}

	// apply options
	if len(opts) > 0 {
		for _, opt := range opts {
			opt.Apply(ds)
		}
	}

	// do some basic validation
	if ds.Credentials == nil || ds.Credentials.Token == "" {
		return nil, fmt.Errorf("missing SAMSARA_API_TOKEN")
	}

	return &Client{
		rc: internal.RestClient{
			HttpClient: httpClient,
			Settings:   ds,
			Trace:      stdlib.GetString(config.ForceTraceENV, ""),
		},
	}, nil
}

func (c *Client) GetVehicles() (int, []internal.RawRecord) {
	var resp ListResponse

	status, _ := c.rc.GET("/fleet/vehicles", &resp)
	if status != http.StatusOK {
		return status, nil
	}

	return status, resp.Data
}

// GetVehicleLocation fetches one vehicle's location. Unlike the list
// endpoints, the response is the bare record, not a data envelope.
func (c *Client) GetVehicleLocation(vehicleID string) (int, internal.RawRecord) {
	var resp internal.RawRecord

	status, _ := c.rc.GET(fmt.Sprintf("/fleet/vehicles/%s/location", vehicleID), &resp)
	if status != http.StatusOK {
		return status, nil
	}

	return status, resp
}

// GetVehicleStats fetches one vehicle's live stats, see GetVehicleLocation
// for the wire shape
func (c *Client) GetVehicleStats(vehicleID string) (int, internal.RawRecord) {
	var resp internal.RawRecord

	status, _ := c.rc.GET(fmt.Sprintf("/fleet/vehicles/%s/stats", vehicleID), &resp)
	if status != http.StatusOK {
		return status, nil
	}

	return status, resp
}

func (c *Client) GetDrivers() (int, []internal.RawRecord) {
	var resp ListResponse

	status, _ := c.rc.GET("/fleet/drivers", &resp)
	if status != http.StatusOK {
		return status, nil
	}

	return status, resp.Data
}

func (c *Client) GetAssignments() (int, []internal.RawRecord) {
	var resp ListResponse

	status, _ := c.rc.GET("/fleet/driver-vehicle-assignments", &resp)
	if status != http.StatusOK {
		return status, nil
	}

	return status, resp.Data
}
