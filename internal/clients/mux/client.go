package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/onmx/studio-backend/internal/pkg/envutil"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

// Client talks to the video transcoder's REST API. Uploads are direct:
// we ask for a signed upload URL, the browser PUTs the file, and the
// transcoder reports progress through webhooks (with GetAsset as the
// poll fallback).
type Client interface {
	CreateDirectUpload(ctx context.Context, passthrough string) (*DirectUpload, error)
	GetAsset(ctx context.Context, assetID string) (*Asset, error)
}

type Config struct {
	TokenID     string
	TokenSecret string
	BaseURL     string
	Timeout     time.Duration
}

func ConfigFromEnv(log *logger.Logger) Config {
	return Config{
		TokenID:     strings.TrimSpace(os.Getenv("MUX_TOKEN_ID")),
		TokenSecret: strings.TrimSpace(os.Getenv("MUX_TOKEN_SECRET")),
		BaseURL:     envutil.GetEnv("MUX_BASE_URL", "https://api.mux.com", log),
		Timeout:     time.Duration(envutil.GetEnvAsInt("MUX_TIMEOUT_SECONDS", 30, log)) * time.Second,
	}
}

type DirectUpload struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	AssetID   string `json:"asset_id,omitempty"`
	Status    string `json:"status"`
	Timeout   int    `json:"timeout,omitempty"`
	TestMode  bool   `json:"test,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Asset struct {
	ID          string       `json:"id"`
	Status      string       `json:"status"` // preparing|ready|errored
	PlaybackIDs []PlaybackID `json:"playback_ids,omitempty"`
	Duration    float64      `json:"duration,omitempty"`
	AspectRatio string       `json:"aspect_ratio,omitempty"`
	Passthrough string       `json:"passthrough,omitempty"`
	Errors      *AssetErrors `json:"errors,omitempty"`
}

type PlaybackID struct {
	ID     string `json:"id"`
	Policy string `json:"policy"`
}

type AssetErrors struct {
	Type     string   `json:"type,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

type client struct {
	log  *logger.Logger
	cfg  Config
	http *http.Client
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv(log))
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.TokenID == "" || cfg.TokenSecret == "" {
		return nil, fmt.Errorf("missing MUX_TOKEN_ID / MUX_TOKEN_SECRET")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &client{
		log:  log.With("service", "MuxClient"),
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *client) CreateDirectUpload(ctx context.Context, passthrough string) (*DirectUpload, error) {
	body := map[string]interface{}{
		"cors_origin": "*",
		"new_asset_settings": map[string]interface{}{
			"playback_policy": []string{"public"},
			"passthrough":     passthrough,
		},
	}
	var env struct {
		Data DirectUpload `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/video/v1/uploads", body, &env); err != nil {
		return nil, fmt.Errorf("create direct upload: %w", err)
	}
	return &env.Data, nil
}

func (c *client) GetAsset(ctx context.Context, assetID string) (*Asset, error) {
	if assetID == "" {
		return nil, fmt.Errorf("asset id required")
	}
	var env struct {
		Data Asset `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/video/v1/assets/"+assetID, nil, &env); err != nil {
		return nil, fmt.Errorf("get asset %s: %w", assetID, err)
	}
	return &env.Data, nil
}

func (c *client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.cfg.TokenID, c.cfg.TokenSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("transcoder api %s %s: status %d: %s", method, path, res.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
