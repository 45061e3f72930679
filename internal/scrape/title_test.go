package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetchTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Example Domain</title></head><body>hi</body></html>`))
	}))
	defer srv.Close()

	f := NewTitleFetcher(2 * time.Second)
	assert.Equal(t, "Example Domain", f.FetchTitle(context.Background(), srv.URL))
}

func TestFetchTitleTrimsWhitespace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><head><title>\n  Spaced Out \n</title></head></html>"))
	}))
	defer srv.Close()

	f := NewTitleFetcher(2 * time.Second)
	assert.Equal(t, "Spaced Out", f.FetchTitle(context.Background(), srv.URL))
}

func TestFetchTitleMissingTitleTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>no title here</body></html>`))
	}))
	defer srv.Close()

	f := NewTitleFetcher(2 * time.Second)
	assert.Equal(t, "", f.FetchTitle(context.Background(), srv.URL))
}

func TestFetchTitleNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewTitleFetcher(2 * time.Second)
	assert.Equal(t, "", f.FetchTitle(context.Background(), srv.URL))
}

func TestFetchTitleUnreachableHost(t *testing.T) {
	// A closed server guarantees a connection error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := NewTitleFetcher(500 * time.Millisecond)
	assert.Equal(t, "", f.FetchTitle(context.Background(), url))
}
