package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client fetches and parses catalog documents. Every Fetch re-reads the
// source; nothing is cached between calls, so bulk operations always see
// the current catalog at the cost of one round trip per package.
type Client struct {
	// URL is an https:// location or a local file path.
	URL        string
	HTTPClient *http.Client
}

// NewClient returns a client bound to the given catalog location.
func NewClient(url string) *Client {
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch retrieves the catalog document and parses it.
func (c *Client) Fetch(ctx context.Context) (*Catalog, error) {
	data, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func (c *Client) read(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		data, err := os.ReadFile(c.URL)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating catalog request: %w", err)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching catalog from %s: status %d", c.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading catalog response: %w", err)
	}
	return data, nil
}
