package workshop

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	UserAgent = "kzmaps/1.0 (github.com/pfrederiksen/kzmaps)"
	Timeout   = 30 * time.Second
)

// Details is what the scraper extracts from a workshop item page
type Details struct {
	FileID      string `json:"file_id" yaml:"file_id"`
	Title       string `json:"title" yaml:"title"`
	PreviewURL  string `json:"preview_url,omitempty" yaml:"preview_url,omitempty"`
	FileSize    string `json:"file_size,omitempty" yaml:"file_size,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Link        string `json:"link" yaml:"link"`
}

// Client fetches workshop item pages
type Client struct {
	client    *http.Client
	userAgent string
}

// New creates a workshop Client. A nil httpClient selects one with Timeout.
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: Timeout}
	}
	return &Client{
		client:    httpClient,
		userAgent: UserAgent,
	}
}

// FileID extracts the published file id from a workshop link
func FileID(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parsing workshop link: %w", err)
	}
	id := u.Query().Get("id")
	if id == "" {
		return "", fmt.Errorf("workshop link %q has no id parameter", link)
	}
	return id, nil
}

// Details fetches the workshop page at link and parses it
func (c *Client) Details(ctx context.Context, link string) (*Details, error) {
	fileID, err := FileID(link)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	details, err := parseDetails(resp.Body)
	if err != nil {
		return nil, err
	}
	details.FileID = fileID
	details.Link = link

	return details, nil
}

// parseDetails extracts item details from a workshop page
func parseDetails(r io.Reader) (*Details, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find(".workshopItemTitle").First().Text())
	if title == "" {
		return nil, fmt.Errorf("page has no workshop item title")
	}

	details := &Details{
		Title:       title,
		Description: strings.TrimSpace(doc.Find(".workshopItemDescription").First().Text()),
	}

	// Items with a single screenshot use #previewImage, others #previewImageMain
	for _, selector := range []string{"#previewImageMain", "#previewImage"} {
		if src, ok := doc.Find(selector).First().Attr("src"); ok && src != "" {
			details.PreviewURL = src
			break
		}
	}

	// The first stat on the right-hand side is the file size ("34.067 MB")
	details.FileSize = strings.TrimSpace(doc.Find(".detailsStatsContainerRight .detailsStatRight").First().Text())

	return details, nil
}
