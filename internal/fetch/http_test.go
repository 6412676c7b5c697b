package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newPageServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/prompt/101.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><div class="box-bun"><h2>補足</h2></div></body></html>`))
	})
	mux.HandleFunc("/prompt/500.html", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>maintenance</html>"))
	})
	mux.HandleFunc("/prompt/streamed.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>streamed</title></head><body>`))
		w.(http.Flusher).Flush()
		select {
		case <-time.After(1500 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		w.Write([]byte(`<div class="box-bun"><h2>補足</h2><p>tail</p></div></body></html>`))
	})
	mux.HandleFunc("/prompt/empty404.html", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/prompt/slow.html", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})
	return httptest.NewServer(mux)
}

func TestHTTPFetcher(t *testing.T) {
	server := newPageServer()
	defer server.Close()

	fetcher := NewHTTPFetcher(HTTPOptions{Timeout: 500 * time.Millisecond})
	ctx := context.Background()

	html, err := fetcher.Fetch(ctx, server.URL+"/prompt/101.html")
	require.NoError(t, err)
	require.Contains(t, html, "補足")

	_, err = fetcher.Fetch(ctx, server.URL+"/prompt/100.html")
	require.ErrorIs(t, err, ErrNotFound)
	require.True(t, Absent(err))

	// only 404 means absent, other statuses still hand back the body
	html, err = fetcher.Fetch(ctx, server.URL+"/prompt/500.html")
	require.NoError(t, err)
	require.Equal(t, "<html>maintenance</html>", html)

	_, err = fetcher.Fetch(ctx, server.URL+"/prompt/slow.html")
	require.Error(t, err)
	require.False(t, Absent(err))
}

func TestHTTPFetcherUnreachable(t *testing.T) {
	fetcher := NewHTTPFetcher(HTTPOptions{Timeout: time.Second})
	_, err := fetcher.Fetch(context.Background(), "http://invalid-url-that-should-fail")
	require.Error(t, err)
	require.False(t, Absent(err))
}
