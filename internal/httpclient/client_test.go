package httpclient_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trapdoorsec/rinzler/internal/httpclient"
)

func TestGet_ReturnsStatusHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("X-Frame-Options", "DENY")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "<html><body>ok</body></html>")
	}))
	defer server.Close()

	client := httpclient.New(httpclient.Options{Timeout: 5 * time.Second})
	resp, err := client.Get(context.Background(), server.URL)
	require.Nil(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.ContentType, "text/html")
	assert.Equal(t, "DENY", resp.Headers["X-Frame-Options"])
	assert.Contains(t, resp.Body, "ok")
	assert.Equal(t, int64(len(resp.Body)), resp.ContentLength)
	assert.Greater(t, resp.Duration, time.Duration(0))
}

func TestGet_NonSuccessStatusIsData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := httpclient.New(httpclient.Options{Timeout: 5 * time.Second})
	resp, err := client.Get(context.Background(), server.URL)

	require.Nil(t, err, "5xx must not surface as a transport error")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHead_SkipsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := httpclient.New(httpclient.Options{Timeout: 5 * time.Second})
	resp, err := client.Head(context.Background(), server.URL)
	require.Nil(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, resp.Body)
}

func TestGet_SendsUserAgent(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := httpclient.New(httpclient.Options{Timeout: 5 * time.Second, UserAgent: "Rinzler/test"})
	_, err := client.Get(context.Background(), server.URL)
	require.Nil(t, err)

	assert.Equal(t, "Rinzler/test", seen)
}

func TestGet_RedirectsAreBounded(t *testing.T) {
	hops := 0
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hops++
		http.Redirect(w, r, server.URL+fmt.Sprintf("/hop%d", hops), http.StatusFound)
	}))
	defer server.Close()

	client := httpclient.New(httpclient.Options{Timeout: 5 * time.Second, RedirectLimit: 3})
	resp, err := client.Get(context.Background(), server.URL)
	require.Nil(t, err)

	// The chain stops at the limit and the last 302 comes back as data.
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.LessOrEqual(t, hops, 4)
}

func TestGet_TransportErrorOnUnreachableHost(t *testing.T) {
	// Reserve a port, then close it so nothing is listening.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := server.URL
	server.Close()

	client := httpclient.New(httpclient.Options{Timeout: 2 * time.Second})
	_, err := client.Get(context.Background(), target)

	require.NotNil(t, err)
	var transportErr *httpclient.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestGet_TimeoutClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := httpclient.New(httpclient.Options{Timeout: 50 * time.Millisecond})
	_, err := client.Get(context.Background(), server.URL)

	require.NotNil(t, err)
	var transportErr *httpclient.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, httpclient.ErrCauseTimeout, transportErr.Cause)
}
