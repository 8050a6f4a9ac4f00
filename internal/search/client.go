// Package search queries the public university directory.
package search

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeanpaul/unifind/internal/apperr"
	"github.com/jeanpaul/unifind/internal/model"
	"github.com/jeanpaul/unifind/internal/schema"
)

const DefaultBaseURL = "http://universities.hipolabs.com"

// responseSchema is the shape every search response must have.
var responseSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"name", "country", "alpha_two_code", "domains", "web_pages"},
		"properties": map[string]any{
			"name":           map[string]any{"type": "string"},
			"country":        map[string]any{"type": "string"},
			"alpha_two_code": map[string]any{"type": "string"},
			"state-province": map[string]any{"type": []string{"string", "null"}},
			"domains":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"web_pages":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	},
}

// Client issues one GET per search. It never retries and sets no timeout of
// its own; callers cancel through the context.
type Client struct {
	baseURL   string
	http      *http.Client
	validator *schema.Validator
	logger    *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		validator: schema.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckCriteria fails with a validation error when both criteria are blank.
func CheckCriteria(country, name string) error {
	if strings.TrimSpace(country) == "" && strings.TrimSpace(name) == "" {
		return apperr.Validation("search", "enter at least a country or a university name to search")
	}
	return nil
}

// SearchURL builds the request URL from the non-empty trimmed criteria. It
// fails when both are empty.
func (c *Client) SearchURL(country, name string) (string, error) {
	if err := CheckCriteria(country, name); err != nil {
		return "", err
	}
	country = strings.TrimSpace(country)
	name = strings.TrimSpace(name)

	q := url.Values{}
	if country != "" {
		q.Set("country", country)
	}
	if name != "" {
		q.Set("name", name)
	}
	return c.baseURL + "/search?" + q.Encode(), nil
}

// Search returns the universities matching country and/or name. An empty
// result is not an error.
func (c *Client) Search(ctx context.Context, country, name string) ([]model.University, error) {
	u, err := c.SearchURL(country, name)
	if err != nil {
		return nil, err
	}

	reqID := uuid.NewString()
	log := c.logger.With("request_id", reqID)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperr.Network("search", err, "could not build request: %s", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log.Debug("search request", "url", u)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("search request failed", "error", err)
		return nil, apperr.Network("search", err, "%s", apperr.Friendly(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("search returned non-success status", "status", resp.StatusCode)
		return nil, apperr.Network("search", nil, "%s", statusMessage(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Network("search", err, "failed to read response: %s", apperr.Friendly(err))
	}

	if err := c.validator.Validate(responseSchema, body); err != nil {
		log.Warn("search response rejected", "error", err)
		return nil, apperr.Decode("search", err, "unexpected response from the university directory")
	}

	var out []model.University
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperr.Decode("search", err, "unexpected response from the university directory")
	}
	if out == nil {
		out = []model.University{}
	}

	log.Info("search completed", "results", len(out), "latency", time.Since(start).Round(time.Millisecond))
	return out, nil
}
