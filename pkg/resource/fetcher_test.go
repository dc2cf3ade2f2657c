package resource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFetch_DataURL(t *testing.T) {
	body, ct, err := NewFetcher("").Fetch(context.Background(), "data:text/html,<p>hi</p>")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", body)
	assert.Equal(t, "text/html", ct)
}

func TestFetch_LocalFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "index.html", "<p>file</p>")

	f := NewFetcher("")
	body, ct, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "<p>file</p>", body)
	assert.Contains(t, ct, "text/html")

	body, _, err = f.Fetch(context.Background(), "file://"+filepath.ToSlash(path))
	require.NoError(t, err)
	assert.Equal(t, "<p>file</p>", body)

	_, _, err = f.Fetch(context.Background(), filepath.Join(dir, "missing.html"))
	assert.Error(t, err)
}

func TestFetch_RelativeToBase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.css", "p { color: red; }")
	base := "file://" + filepath.ToSlash(filepath.Join(dir, "index.html"))

	f := NewFetcher(base)
	assert.Equal(t, "file://"+filepath.ToSlash(filepath.Join(dir, "main.css")), f.Resolve("main.css"))

	css, err := f.FetchCSS(context.Background(), "main.css")
	require.NoError(t, err)
	assert.Equal(t, "p { color: red; }", css)
}

func TestFetch_Network(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/style.css":
			w.Header().Set("Content-Type", "text/css")
			_, _ = w.Write([]byte("b { color: blue; }"))
		case "/logo.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
		default:
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<p>remote</p>"))
		}
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	f := NewFetcher(srv.URL+"/pages/index.html", WithLogger(zap.New(core)))

	body, ct, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<p>remote</p>", body)
	assert.Equal(t, "text/html", ct)

	css, err := f.FetchCSS(context.Background(), "/style.css")
	require.NoError(t, err)
	assert.Equal(t, "b { color: blue; }", css)

	_, err = f.FetchCSS(context.Background(), "/logo.png")
	assert.ErrorContains(t, err, "unexpected content type")

	assert.Equal(t, 3, logs.FilterMessage("fetched resource").Len())
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	_, _, err := NewFetcher("").Fetch(context.Background(), "ftp://example.org/file")
	assert.ErrorContains(t, err, "unsupported URI scheme")
}

func TestHasScheme(t *testing.T) {
	assert.True(t, hasScheme("http://a"))
	assert.True(t, hasScheme("data:text/html,x"))
	assert.False(t, hasScheme("pages/index.html"))
	assert.False(t, hasScheme("/abs/path"))
	assert.False(t, hasScheme("a/b://c"))
}
