package fleetrock

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/txsvc/apikit/config"
	"github.com/txsvc/apikit/settings"
	"github.com/txsvc/stdlib/v2"

	"github.com/wanship-fleet/fleetops/internal"
)

const (
	FleetrockHttpEndpoint = "FLEETROCK_HTTP_ENDPOINT"

	FleetrockUsername = "FLEETROCK_USERNAME"
	FleetrockApiKey   = "FLEETROCK_API_KEY"

	FleetrockApiAgent = "fleetops/fleetrock"

	DefaultEndpoint = "https://loves.fleetrock.com/API"
	DefaultUsername = "wanship.shop"
)

type (
	// Client is the repair-shop API client. A login call exchanges the
	// account key for a session token, subsequent calls authenticate with
	// basic auth using the token as the user name and an empty password.
	Client struct {
		rc       internal.RestClient
		username string
	}
)

func NewClient(ctx context.Context, opts ...internal.ClientOption) (*Client, error) {

	httpClient := internal.NewLoggingTransport(http.DefaultTransport)
	ds := &settings.DialSettings{
		Endpoint:  stdlib.GetString(FleetrockHttpEndpoint, DefaultEndpoint),
		UserAgent: FleetrockApiAgent,
		Credentials: &settings.Credentials{
			UserID: stdlib.GetString(FleetrockUsername, DefaultUsername),
			Token:  stdlib.GetString(FleetrockApiKey, ""),
		},
	}

	// apply options
	if len(opts) > 0 {
		for _, opt := range opts {
			opt.Apply(ds)
		}
	}

	// do some basic validation
	if ds.Credentials == nil || ds.Credentials.UserID == "" {
		return nil, fmt.Errorf("missing FLEETROCK_USERNAME")
	}
	if ds.Credentials.Token == "" {
		return nil, fmt.Errorf("missing FLEETROCK_API_KEY")
	}

	cl := &Client{
		rc: internal.RestClient{
			HttpClient: httpClient,
			Settings:   ds,
			Trace:      stdlib.GetString(config.ForceTraceENV, ""),
		},
		username: ds.Credentials.UserID,
	}

	if err := cl.login(ds.Credentials.UserID, ds.Credentials.Token); err != nil {
		return nil, err
	}

	return cl, nil
}

// login exchanges the account key for a session token and installs it as
// the basic-auth user for all following calls
func (c *Client) login(username, apiKey string) error {
	var resp TokenResponse

	// the login call itself is unauthenticated
	c.rc.Settings.Credentials = &settings.Credentials{}

	uri := fmt.Sprintf("/GetToken?username=%s&key=%s", url.QueryEscape(username), url.QueryEscape(apiKey))
	status, err := c.rc.GET(uri, &resp)
	if err != nil {
		return err
	}
	if status != http.StatusOK || resp.Token == "" {
		return internal.ErrMissingCredentials
	}

	c.rc.Settings.Credentials = &settings.Credentials{
		UserID: resp.Token,
	}
	return nil
}

// GetRepairOrders lists the repair orders, optionally filtered by status
// on the provider side. An empty status lists everything.
func (c *Client) GetRepairOrders(status string) (int, []internal.RawRecord) {
	var resp ListResponse

	uri := fmt.Sprintf("/GetRO?username=%s", url.QueryEscape(c.username))
	if status != "" {
		uri = fmt.Sprintf("%s&status=%s", uri, url.QueryEscape(status))
	}

	code, _ := c.rc.GET(uri, &resp)
	if code != http.StatusOK {
		return code, nil
	}

	return code, resp.RepairOrders
}

// CreateRepairOrder submits a new repair order. The identity rides in the
// session token, the bare path takes no parameters. The caller refreshes
// the dashboard afterwards, there is no local insert.
func (c *Client) CreateRepairOrder(ro internal.RawRecord) int {
	status, _ := c.rc.POST("/CreateRO", ro, nil)
	return status
}

// UpdateRepairOrder submits field updates for an existing repair order,
// identified by its RO number in the request body.
func (c *Client) UpdateRepairOrder(roNumber string, updates internal.RawRecord) int {
	body := internal.RawRecord{
		"ro_number": roNumber,
	}
	for k, v := range updates {
		if k != "ro_number" {
			body[k] = v
		}
	}

	status, _ := c.rc.PUT("/UpdateRO", body, nil)
	return status
}
