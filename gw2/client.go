// Package gw2 reads trading post prices and item metadata from the public
// Guild Wars 2 API.
package gw2

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://api.guildwars2.com"

// Client queries the API. It implements tradingpost.QuoteSource.
type Client struct {
	base   string
	lang   string
	client *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(c *http.Client) Option { return func(cl *Client) { cl.client = c } }

// WithLang sets the language of the item names, like "en" or "fr".
func WithLang(lang string) Option { return func(cl *Client) { cl.lang = lang } }

// WithTimeout sets the timeout of each request.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.client = &http.Client{Timeout: d, Transport: cl.client.Transport} }
}

// New returns a Client for the API at base, DefaultBaseURL if empty.
func New(base string, opts ...Option) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{base: strings.TrimSuffix(base, "/"), client: new(http.Client)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// endpoint returns the address of path with the query parameters, plus the
// language when one is set and withLang is true.
func (c *Client) endpoint(path string, query url.Values, withLang bool) string {
	if query == nil {
		query = url.Values{}
	}
	if withLang && c.lang != "" {
		query.Set("lang", c.lang)
	}
	addr := c.base + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}
	return addr
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the
// provided data structure.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	log.Printf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
