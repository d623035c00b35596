package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingJSON = `{
  "data": [
    {
      "id": "openai/gpt-4o",
      "name": "OpenAI: GPT-4o",
      "description": "GPT-4o",
      "architecture": {"input_modalities": ["text", "image"], "output_modalities": ["text"]},
      "supported_parameters": ["tools", "response_format"]
    },
    {
      "id": "deepseek/deepseek-r1",
      "name": "DeepSeek: R1",
      "architecture": {"input_modalities": ["text"], "output_modalities": ["text"]},
      "supported_parameters": ["reasoning", "include_reasoning"]
    }
  ]
}`

func listingServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testFetcher(url, cache string) *fetcher {
	return newFetcher(&Config{
		SourceURL:   url,
		CachePath:   cache,
		HTTPTimeout: 5 * time.Second,
	}, zerolog.Nop())
}

func TestFetchRefreshesCache(t *testing.T) {
	srv := listingServer(t, http.StatusOK, listingJSON)
	cache := filepath.Join(t.TempDir(), "data", "models.json")

	models, err := testFetcher(srv.URL, cache).fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "openai/gpt-4o", models[0].ID)
	assert.Equal(t, []string{"text", "image"}, models[0].Architecture.InputModalities)
	assert.Equal(t, []string{"reasoning", "include_reasoning"}, models[1].SupportedParameters)

	cached, err := os.ReadFile(cache)
	require.NoError(t, err)
	assert.JSONEq(t, listingJSON, string(cached))
}

func TestFetchFallsBackToCache(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "models.json")
	require.NoError(t, os.WriteFile(cache, []byte(listingJSON), 0o644))

	srv := listingServer(t, http.StatusOK, "{}")
	url := srv.URL
	srv.Close()

	models, err := testFetcher(url, cache).fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, models, 2)
}

func TestFetchNoCache(t *testing.T) {
	srv := listingServer(t, http.StatusOK, "{}")
	url := srv.URL
	srv.Close()

	_, err := testFetcher(url, filepath.Join(t.TempDir(), "missing.json")).fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read local cache")

	_, err = testFetcher(url, "").fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cache is configured")
}

func TestFetchErrorStatus(t *testing.T) {
	srv := listingServer(t, http.StatusServiceUnavailable, `{"error":"down"}`)
	cache := filepath.Join(t.TempDir(), "models.json")

	_, err := testFetcher(srv.URL, cache).fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
	assert.NoFileExists(t, cache)
}
