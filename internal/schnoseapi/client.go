package schnoseapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pfrederiksen/kzmaps/internal/apiclient"
	"github.com/pfrederiksen/kzmaps/internal/kz"
	"github.com/pfrederiksen/kzmaps/internal/timestamp"
)

const DefaultBaseURL = "https://schnose.xyz/api/"

// APIError is returned when the SchnoseAPI answers with a non-2xx status
type APIError = apiclient.APIError

// Client is a client for the SchnoseAPI
type Client struct {
	api *apiclient.Client
}

// NewClient creates a SchnoseAPI client. Empty arguments select the defaults.
func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{api: apiclient.New("SchnoseAPI", baseURL, userAgent, httpClient)}
}

// Course is a single course (stage) of a map
type Course struct {
	ID    int     `json:"id"`
	Stage int     `json:"stage"`
	Tier  kz.Tier `json:"tier"`
}

// Mapper is a map author
type Mapper struct {
	Name    string `json:"name"`
	SteamID string `json:"steam_id"`
}

// Map is a map as listed by the SchnoseAPI
type Map struct {
	ID         uint16              `json:"id"`
	Name       string              `json:"name"`
	Global     bool                `json:"global"`
	Filesize   uint64              `json:"filesize"`
	Courses    []Course            `json:"courses"`
	Mappers    []Mapper            `json:"mappers"`
	ApprovedBy *string             `json:"approved_by"`
	CreatedOn  timestamp.Timestamp `json:"created_on"`
	UpdatedOn  timestamp.Timestamp `json:"updated_on"`
}

type mapsParams struct {
	Global *bool `url:"global,omitempty"`
}

type envelope struct {
	Result []Map `json:"result"`
	Took   int   `json:"took"`
}

// Maps fetches the map listing. With globalOnly only validated maps are returned.
func (c *Client) Maps(ctx context.Context, globalOnly bool) ([]Map, error) {
	var params mapsParams
	if globalOnly {
		global := true
		params.Global = &global
	}

	var body envelope
	if err := c.api.Get(ctx, "maps", params, &body); err != nil {
		return nil, fmt.Errorf("fetching maps: %w", err)
	}
	return body.Result, nil
}
