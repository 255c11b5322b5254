package globalapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pfrederiksen/kzmaps/internal/apiclient"
	"github.com/pfrederiksen/kzmaps/internal/kz"
	"github.com/pfrederiksen/kzmaps/internal/timestamp"
)

const (
	DefaultBaseURL = "https://kztimerglobal.com/api/v2.0/"

	// mapsLimit is large enough to return every map in one page
	mapsLimit = 9999
)

// APIError is returned when the GlobalAPI answers with a non-2xx status
type APIError = apiclient.APIError

// Client is a client for the GlobalAPI
type Client struct {
	api *apiclient.Client
}

// NewClient creates a GlobalAPI client. An empty baseURL selects DefaultBaseURL;
// userAgent and httpClient default as in apiclient.New.
func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{api: apiclient.New("GlobalAPI", baseURL, userAgent, httpClient)}
}

// RecordFilter marks that a leaderboard exists for a map/mode/stage/tickrate
type RecordFilter struct {
	ID           int                 `json:"id"`
	MapID        uint16              `json:"map_id"`
	Stage        int                 `json:"stage"`
	ModeID       int                 `json:"mode_id"`
	Tickrate     int                 `json:"tickrate"`
	HasTeleports bool                `json:"has_teleports"`
	CreatedOn    timestamp.Timestamp `json:"created_on"`
	UpdatedByID  string              `json:"updated_by_id"`
}

// Mode returns the filter's mode. ok is false for mode ids this package does
// not know about.
func (f RecordFilter) Mode() (mode kz.Mode, ok bool) {
	mode, err := kz.ModeFromID(f.ModeID)
	return mode, err == nil
}

// RecordFilterParams are the query parameters of GET /record_filters
type RecordFilterParams struct {
	IDs          []int `url:"ids,omitempty"`
	MapIDs       []int `url:"map_ids,omitempty"`
	Stages       *int  `url:"stages,omitempty"`
	ModeIDs      []int `url:"mode_ids,omitempty"`
	Tickrates    *int  `url:"tickrates,omitempty"`
	HasTeleports *bool `url:"has_teleports,omitempty"`
	Offset       int   `url:"offset,omitempty"`
	Limit        int   `url:"limit,omitempty"`
}

// Map is a map as listed by the GlobalAPI
type Map struct {
	ID                  uint16              `json:"id"`
	Name                string              `json:"name"`
	Filesize            uint64              `json:"filesize"`
	Validated           bool                `json:"validated"`
	Difficulty          kz.Tier             `json:"difficulty"`
	CreatedOn           timestamp.Timestamp `json:"created_on"`
	UpdatedOn           timestamp.Timestamp `json:"updated_on"`
	ApprovedBySteamID64 string              `json:"approved_by_steamid64"`
	WorkshopURL         string              `json:"workshop_url"`
	DownloadURL         *string             `json:"download_url"`
}

type mapsParams struct {
	IsValidated *bool `url:"is_validated,omitempty"`
	Limit       int   `url:"limit,omitempty"`
}

// RecordFilters fetches record filters matching params
func (c *Client) RecordFilters(ctx context.Context, params RecordFilterParams) ([]RecordFilter, error) {
	var filters []RecordFilter
	if err := c.api.Get(ctx, "record_filters", params, &filters); err != nil {
		return nil, fmt.Errorf("fetching record filters: %w", err)
	}
	return filters, nil
}

// Maps fetches the map listing. With validatedOnly only global maps are returned.
func (c *Client) Maps(ctx context.Context, validatedOnly bool) ([]Map, error) {
	params := mapsParams{Limit: mapsLimit}
	if validatedOnly {
		validated := true
		params.IsValidated = &validated
	}

	var maps []Map
	if err := c.api.Get(ctx, "maps", params, &maps); err != nil {
		return nil, fmt.Errorf("fetching maps: %w", err)
	}
	return maps, nil
}
