package flora

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is an HTTP client for the bouquet order service.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// ClientOption is a functional option for configuring the client.
type ClientOption func(*Client)

// WithToken sets the API token sent with every request.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.apiToken = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new order-service client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetCatalog fetches the bouquet styles, flower varieties and foliage
// items. The three lists arrive in one response; a partial catalog is
// never usable, so any decode failure is an error for the whole fetch.
func (c *Client) GetCatalog(ctx context.Context) (*Catalog, error) {
	var catalog Catalog
	if err := c.doGet(ctx, "/api/catalog", nil, &catalog); err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	if catalog.IsEmpty() {
		return nil, fmt.Errorf("fetching catalog: empty response")
	}
	return &catalog, nil
}

// doGet performs an HTTP GET request against the order service.
func (c *Client) doGet(ctx context.Context, endpoint string, query url.Values, result interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	if c.apiToken != "" {
		query.Set("token", c.apiToken)
	}

	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
