package nws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientGetSendsIdentifyingHeaders(t *testing.T) {
	var gotUA, gotAccept, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, UserAgent: "(test, test@example.com)"})
	status, body, err := client.Get(context.Background(), client.PointURL(39.7456, -97.0892))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"ok":true}`, string(body))
	require.Equal(t, "(test, test@example.com)", gotUA)
	require.Equal(t, "application/ld+json", gotAccept)
	require.Equal(t, "/points/39.7456,-97.0892", gotPath)
}

func TestClientGetReturnsErrorStatusesAsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"title":"Unexpected Problem"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	status, body, err := client.Get(context.Background(), srv.URL+"/gridpoints/TOP/31,80/forecast")
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, status)
	require.Contains(t, string(body), "Unexpected Problem")
}

func TestClientBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Breaker: BreakerConfig{ConsecutiveFailures: 2}})
	for i := 0; i < 2; i++ {
		_, _, err := client.Get(context.Background(), srv.URL+"/points/1,1")
		require.NoError(t, err)
	}
	_, _, err := client.Get(context.Background(), srv.URL+"/points/1,1")
	require.Error(t, err)
	require.Equal(t, 2, calls)
}

func TestFormatDegrees(t *testing.T) {
	require.Equal(t, "0", formatDegrees(0))
	require.Equal(t, "-122.5", formatDegrees(-122.5))
	require.Equal(t, "37.7749", formatDegrees(37.7749))
}
