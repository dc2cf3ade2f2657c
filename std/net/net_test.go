package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func serve(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	client := NewClient(5 * time.Second)
	t.Cleanup(func() {
		client.CloseIdleConnections()
		srv.Close()
	})
	return srv, client
}

func TestFetch_OK(t *testing.T) {
	srv, client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "toybrowser")
		w.Header().Set("Content-Type", "text/html")
		w.Header().Add("X-Multi", "a")
		w.Header().Add("X-Multi", "b")
		_, _ = w.Write([]byte("<p>hello</p>"))
	})

	resp, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "<p>hello</p>", resp.Body)
	assert.Equal(t, "text/html", resp.Header["content-type"])
	assert.Equal(t, "a, b", resp.Header["x-multi"])
}

func TestFetch_BadStatus(t *testing.T) {
	srv, client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_RejectsChunked(t *testing.T) {
	srv, client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("part one"))
		w.(http.Flusher).Flush()
		_, _ = w.Write([]byte("part two"))
	})

	_, err := client.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestFetch_RejectsContentEncoding(t *testing.T) {
	srv, client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write([]byte("not really gzip"))
	})

	_, err := client.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestFetch_CanceledContext(t *testing.T) {
	srv, client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("late"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_InvalidURL(t *testing.T) {
	client := NewClient(0)
	_, err := client.Fetch(context.Background(), "http://[::1")
	assert.Error(t, err)
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"http://example.org/a/b.html", "style.css", "http://example.org/a/style.css"},
		{"http://example.org/a/b.html", "/root.css", "http://example.org/root.css"},
		{"http://example.org/a/", "https://cdn.test/x.css", "https://cdn.test/x.css"},
		{"file:///tmp/pages/index.html", "main.css", "file:///tmp/pages/main.css"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveURL(tt.base, tt.ref), tt.ref)
	}
}

func TestIsNetworkURL(t *testing.T) {
	assert.True(t, IsNetworkURL("http://a"))
	assert.True(t, IsNetworkURL("https://a"))
	assert.False(t, IsNetworkURL("file:///a"))
	assert.False(t, IsNetworkURL("data:text/html,hi"))
}
