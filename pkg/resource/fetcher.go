package resource

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	stdnet "toybrowser/std/net"
)

const dataHTMLPrefix = "data:text/html,"

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (body string, contentType string, err error)
	FetchCSS(ctx context.Context, uri string) (string, error)
}

// DefaultFetcher fetches http, https, file and data:text/html URIs. Bare
// paths are read from the local filesystem. Relative URIs are resolved
// against a base URL when one is set.
type DefaultFetcher struct {
	baseURL string
	client  *stdnet.Client
	logger  *zap.Logger
}

type Option func(*DefaultFetcher)

func WithClient(client *stdnet.Client) Option {
	return func(f *DefaultFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(f *DefaultFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a DefaultFetcher with the given base URL.
// Relative URIs passed to Fetch will be resolved against this base.
func NewFetcher(baseURL string, opts ...Option) *DefaultFetcher {
	f := &DefaultFetcher{
		baseURL: baseURL,
		client:  stdnet.NewClient(stdnet.DefaultTimeout),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Resolve returns uri made absolute against the fetcher's base URL.
func (f *DefaultFetcher) Resolve(uri string) string {
	if f.baseURL == "" || hasScheme(uri) {
		return uri
	}
	return stdnet.ResolveURL(f.baseURL, uri)
}

// Fetch retrieves the resource at the given URI.
func (f *DefaultFetcher) Fetch(ctx context.Context, uri string) (string, string, error) {
	resolved := f.Resolve(uri)

	var (
		body, contentType string
		err               error
	)
	switch {
	case strings.HasPrefix(resolved, dataHTMLPrefix):
		body, contentType = resolved[len(dataHTMLPrefix):], "text/html"
	case stdnet.IsNetworkURL(resolved):
		body, contentType, err = f.fetchNetwork(ctx, resolved)
	case strings.HasPrefix(resolved, "file://"):
		body, contentType, err = fetchFile(resolved)
	case !hasScheme(resolved):
		body, contentType, err = readFile(resolved)
	default:
		err = fmt.Errorf("unsupported URI scheme: %s", resolved)
	}
	if err != nil {
		return "", "", err
	}

	f.logger.Debug("fetched resource",
		zap.String("uri", resolved),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(body)))
	return body, contentType, nil
}

func (f *DefaultFetcher) fetchNetwork(ctx context.Context, uri string) (string, string, error) {
	resp, err := f.client.Fetch(ctx, uri)
	if err != nil {
		return "", "", err
	}
	return resp.Body, resp.Header["content-type"], nil
}

func fetchFile(uri string) (string, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parsing %s: %w", uri, err)
	}
	return readFile(u.Path)
}

func readFile(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), mime.TypeByExtension(filepath.Ext(path)), nil
}

// FetchCSS fetches a stylesheet URI and returns its text content.
// Returns an error if the content type does not look like CSS or text.
func (f *DefaultFetcher) FetchCSS(ctx context.Context, uri string) (string, error) {
	body, contentType, err := f.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}
	// Accept text/css, text/plain, or any text/* content type
	ct := strings.ToLower(contentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, "css") {
		return "", fmt.Errorf("unexpected content type for CSS: %s", contentType)
	}
	return body, nil
}

func hasScheme(uri string) bool {
	if strings.HasPrefix(uri, "data:") {
		return true
	}
	scheme, _, ok := strings.Cut(uri, "://")
	return ok && scheme != "" && !strings.ContainsAny(scheme, "/\\")
}
