package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
)

const userAgent = "toybrowser/1.0 (compatible; Go)"

// DefaultTimeout bounds a whole request, body included.
const DefaultTimeout = 30 * time.Second

var (
	// ErrBadStatus is returned for any response outside the 2xx range.
	ErrBadStatus = errors.New("unexpected HTTP status")
	// ErrUnsupportedEncoding is returned for chunked or content-encoded
	// responses.
	ErrUnsupportedEncoding = errors.New("unsupported response encoding")
)

// Response is a fetched document. Header keys are lower-cased; repeated
// headers are joined with ", ".
type Response struct {
	Status int
	Header map[string]string
	Body   string
}

// Client fetches documents over HTTP and HTTPS.
type Client struct {
	http *http.Client
}

// NewClient returns a client whose requests time out after timeout.
// Transparent compression is disabled so that encoded bodies are seen
// and rejected rather than silently decoded.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{
		Timeout:   timeout,
		Transport: &http.Transport{DisableCompression: true, Proxy: http.ProxyFromEnvironment},
	}}
}

var defaultClient = NewClient(DefaultTimeout)

// Fetch retrieves rawURL with the default client.
func Fetch(ctx context.Context, rawURL string) (*Response, error) {
	return defaultClient.Fetch(ctx, rawURL)
}

// Fetch retrieves the content at rawURL.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d fetching %s", ErrBadStatus, resp.StatusCode, rawURL)
	}
	if slices.Contains(resp.TransferEncoding, "chunked") {
		return nil, fmt.Errorf("%w: chunked transfer from %s", ErrUnsupportedEncoding, rawURL)
	}
	if enc := resp.Header.Get("Content-Encoding"); enc != "" {
		return nil, fmt.Errorf("%w: content encoding %q from %s", ErrUnsupportedEncoding, enc, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	header := make(map[string]string, len(resp.Header))
	for name, values := range resp.Header {
		header[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return &Response{Status: resp.StatusCode, Header: header, Body: string(body)}, nil
}

// CloseIdleConnections releases pooled connections held by the client.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// ResolveURL resolves a possibly-relative URI against a base URL.
// If ref is already absolute, it is returned as-is.
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL returns true if the string looks like an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
