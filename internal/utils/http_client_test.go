package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Settings(t *testing.T) {
	client := NewHTTPClient("http://records.local", 5*time.Second)

	assert.Equal(t, "http://records.local", client.BaseURL)
	assert.Equal(t, 5*time.Second, client.GetClient().Timeout)
	assert.Equal(t, "application/json", client.Header.Get("Accept"))
}

func TestNewHTTPClient_ZeroTimeoutLeavesDefault(t *testing.T) {
	client := NewHTTPClient("http://records.local", 0)
	assert.Zero(t, client.GetClient().Timeout)
}

func TestNewHTTPClient_Independent(t *testing.T) {
	a := NewHTTPClient("http://a", 0)
	b := NewHTTPClient("http://b", 0)
	assert.NotSame(t, a.Client, b.Client)
}

func TestNewHTTPClient_SendsHeadersToBaseURL(t *testing.T) {
	var gotPath, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(srv.URL, time.Second).R().Get("/api/version")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
	assert.Equal(t, "/api/version", gotPath)
	assert.Equal(t, UserAgent, gotAgent)
}
