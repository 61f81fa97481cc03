// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package pinecone implements the vector index against the Pinecone HTTP API.
//
// The control plane (api.pinecone.io) resolves the index name to a data
// plane host once; all query traffic then goes straight to that host.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/voyant/core"
	"github.com/poiesic/voyant/index"
)

// ErrMissingAPIKey indicates a configuration without an API key.
var ErrMissingAPIKey = errors.New("missing pinecone api key")

// ErrMissingIndexName indicates a configuration naming no index.
var ErrMissingIndexName = errors.New("missing pinecone index name")

const (
	defaultAPIVersion = "2025-10"
	defaultBaseURL    = "https://api.pinecone.io"
	defaultTimeout    = 30 * time.Second
)

// Config holds the Pinecone connection settings.
type Config struct {
	// APIKey authenticates all requests.
	APIKey string

	// IndexName is the index to query.
	IndexName string

	// IndexHost is the data plane host. When empty it is resolved from
	// the control plane on first use.
	IndexHost string

	// APIVersion is the X-Pinecone-Api-Version header value.
	APIVersion string

	// BaseURL is the control plane endpoint.
	BaseURL string

	// Timeout bounds each HTTP round trip.
	Timeout time.Duration
}

// Client queries a single Pinecone index over HTTP.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger

	mu   sync.Mutex
	host string
}

var _ index.Index = (*Client)(nil)

// New creates a Pinecone-backed index client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(cfg.IndexName) == "" && strings.TrimSpace(cfg.IndexHost) == "" {
		return nil, ErrMissingIndexName
	}
	if strings.TrimSpace(cfg.APIVersion) == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: slog.Default().With("client", "pinecone"),
	}, nil
}

type indexDescription struct {
	Name      string `json:"name"`
	Host      string `json:"host"`
	Dimension int    `json:"dimension"`
	Metric    string `json:"metric"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryMatch struct {
	ID       string         `json:"id"`
	Score    float32        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type queryResponse struct {
	Matches []queryMatch `json:"matches"`
}

// Query returns up to topK matches for the vector, best first.
func (c *Client) Query(ctx context.Context, vector []float32, topK int) ([]core.VectorMatch, error) {
	if len(vector) == 0 {
		return nil, core.ErrEmptyVector
	}
	if topK <= 0 {
		return nil, core.ErrInvalidTopK
	}

	host, err := c.resolveHost(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := doJSON[queryResponse](c, ctx, http.MethodPost, dataPlaneURL(host, "/query"), queryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]core.VectorMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, core.VectorMatch{
			ID:       m.ID,
			Score:    m.Score,
			Metadata: metadataFromMap(m.Metadata),
		})
	}
	c.logger.Debug("vector query complete", "topK", topK, "matches", len(matches))
	return matches, nil
}

// resolveHost returns the data plane host, describing the index once if the
// configuration did not pin one.
func (c *Client) resolveHost(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.host != "" {
		return c.host, nil
	}
	if h := strings.TrimSpace(c.cfg.IndexHost); h != "" {
		c.host = h
		return c.host, nil
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/indexes/" + c.cfg.IndexName
	desc, err := doJSON[indexDescription](c, ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(desc.Host) == "" {
		return "", fmt.Errorf("describe index %s returned empty host", c.cfg.IndexName)
	}

	c.logger.Info("resolved index host", "index", c.cfg.IndexName, "host", desc.Host, "dimension", desc.Dimension)
	c.host = desc.Host
	return c.host, nil
}

// dataPlaneURL accepts either a bare host or a full URL with scheme.
func dataPlaneURL(host, path string) string {
	if strings.Contains(host, "://") {
		return strings.TrimRight(host, "/") + path
	}
	return "https://" + host + path
}

func metadataFromMap(m map[string]any) core.MatchMetadata {
	md := core.MatchMetadata{
		Name:        stringField(m, "name"),
		Type:        stringField(m, "type"),
		City:        stringField(m, "city"),
		Description: stringField(m, "description"),
	}
	if raw, ok := m["tags"].([]any); ok {
		for _, t := range raw {
			if s, ok := t.(string); ok {
				md.Tags = append(md.Tags, s)
			}
		}
	}
	return md
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func doJSON[T any](c *Client, ctx context.Context, method, url string, body any) (*T, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Api-Key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Pinecone-Api-Version", c.cfg.APIVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pinecone http %d: %s", resp.StatusCode, string(raw))
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("pinecone decode: %w", err)
	}
	return &out, nil
}
