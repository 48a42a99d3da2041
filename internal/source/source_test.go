package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	doc, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", doc.Title)
	assert.Equal(t, "just text", doc.Body)
	assert.Equal(t, path, doc.Location)
}

func TestLoad_HTMLFileTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	html := "<html><head><title>Release notes</title></head><body><p>hi</p></body></html>"
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))

	doc, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Release notes", doc.Title)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "tpopup")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><head><title>Served</title></head><body><p>remote</p></body></html>"))
	}))
	defer srv.Close()

	doc, err := NewLoader().Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Served", doc.Title)
	assert.Contains(t, doc.Body, "remote")
	assert.Equal(t, srv.URL, doc.Location)
}

func TestLoad_URLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/image":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte{0x89, 'P', 'N', 'G'})
		}
	}))
	defer srv.Close()

	_, err := NewLoader().Load(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "404")

	_, err = NewLoader().Load(context.Background(), srv.URL+"/image")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com"))
	assert.True(t, IsURL("http://localhost:8080/x"))
	assert.False(t, IsURL("page.html"))
	assert.False(t, IsURL("/tmp/https.txt"))
}
