package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// upstreamModel is one entry of an OpenRouter-style /models listing.
type upstreamModel struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	Architecture        upstreamArchitecture `json:"architecture"`
	SupportedParameters []string             `json:"supported_parameters"`
}

type upstreamArchitecture struct {
	InputModalities  []string `json:"input_modalities"`
	OutputModalities []string `json:"output_modalities"`
}

type upstreamResponse struct {
	Data []upstreamModel `json:"data"`
}

type fetcher struct {
	client    *resty.Client
	url       string
	cachePath string
	logger    zerolog.Logger
}

func newFetcher(cfg *Config, logger zerolog.Logger) *fetcher {
	client := resty.New().
		SetTimeout(cfg.HTTPTimeout).
		SetHeader("Accept", "application/json")
	return &fetcher{
		client:    client,
		url:       cfg.SourceURL,
		cachePath: cfg.CachePath,
		logger:    logger,
	}
}

// fetch returns the upstream listing. A network failure falls back to the
// cache; a successful response refreshes it.
func (f *fetcher) fetch(ctx context.Context) ([]upstreamModel, error) {
	var listing upstreamResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&listing).
		ForceContentType("application/json").
		Get(f.url)
	if err != nil {
		f.logger.Warn().Err(err).Str("cache", f.cachePath).Msg("network error, using local cache")
		return f.readCache()
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status())
	}

	if f.cachePath != "" {
		if err := f.writeCache(resp.Body()); err != nil {
			f.logger.Warn().Err(err).Msg("failed to save raw JSON")
		}
	}
	return listing.Data, nil
}

func (f *fetcher) readCache() ([]upstreamModel, error) {
	if f.cachePath == "" {
		return nil, fmt.Errorf("fetch %s failed and no cache is configured", f.url)
	}
	body, err := os.ReadFile(f.cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from network and failed to read local cache: %w", err)
	}
	var listing upstreamResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("decode cache %s: %w", f.cachePath, err)
	}
	return listing.Data, nil
}

func (f *fetcher) writeCache(body []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.cachePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.cachePath, body, 0o644)
}
