package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/dshills/chemlab-mcp/internal/reaction"
	"github.com/dshills/chemlab-mcp/pkg/types"
)

// Environment variables read by NewFromEnv
const (
	EnvRemoteURL      = "CHEMLAB_REMOTE_URL"
	EnvRemoteTimeout  = "CHEMLAB_REMOTE_TIMEOUT"
	EnvRemoteAttempts = "CHEMLAB_REMOTE_ATTEMPTS"
)

// FindPath is the lookup endpoint path, relative to the base URL
const FindPath = "/api/reactions/find"

// Client defaults
const (
	DefaultTimeout   = 10 * time.Second
	DefaultCacheSize = 256
	maxResponseBytes = 1 << 20
)

// Common errors
var (
	ErrRemoteDisabled    = errors.New("remote lookup not configured")
	ErrInvalidBaseURL    = errors.New("invalid remote base URL")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrMalformedResponse = errors.New("malformed lookup response")
)

// FindRequest is the lookup request body
type FindRequest struct {
	Reactants []string `json:"reactants"`
}

// Config holds client configuration
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Retry     RetryConfig
	CacheSize int // 0 disables caching
}

// Client looks reactions up on a remote service
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	retry      RetryConfig
	cache      *lru.Cache[string, types.MatchResult]
	group      singleflight.Group
}

// NewClient creates a lookup client for cfg.BaseURL
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryConfig()
	}

	c := &Client{
		endpoint:   base.String() + FindPath,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		retry:      retry,
	}
	if cfg.CacheSize > 0 {
		c.cache, err = lru.New[string, types.MatchResult](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create cache: %w", err)
		}
	}
	return c, nil
}

// NewFromEnv creates a client from CHEMLAB_REMOTE_URL and friends.
// It returns ErrRemoteDisabled when no URL is set.
func NewFromEnv() (*Client, error) {
	baseURL := os.Getenv(EnvRemoteURL)
	if baseURL == "" {
		return nil, ErrRemoteDisabled
	}

	cfg := Config{
		BaseURL:   baseURL,
		Retry:     DefaultRetryConfig(),
		CacheSize: DefaultCacheSize,
	}
	if v := os.Getenv(EnvRemoteTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvRemoteTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv(EnvRemoteAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", EnvRemoteAttempts, v)
		}
		cfg.Retry.MaxAttempts = n
	}
	return NewClient(cfg)
}

// Endpoint returns the full lookup URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FindReaction asks the remote service for a reaction. Every failure is
// logged and reported as NoMatch.
func (c *Client) FindReaction(ctx context.Context, symbols []string) types.MatchResult {
	result, err := c.Lookup(ctx, symbols)
	if err != nil {
		log.Printf("remote: lookup %v failed: %v", symbols, err)
		return types.NoMatch
	}
	return result
}

// Lookup is FindReaction without error absorption. Concurrent lookups of
// the same reactant set share one request. The shared request is detached
// from any single caller: a caller whose ctx ends gets ctx.Err() while the
// request carries on for the others, bounded by lookupBudget.
func (c *Client) Lookup(ctx context.Context, symbols []string) (types.MatchResult, error) {
	key := reaction.Key(symbols)
	if key == "" {
		return types.NoMatch, nil
	}

	if c.cache != nil {
		if res, ok := c.cache.Get(key); ok {
			return res, nil
		}
	}

	symbols = slices.Clone(symbols)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.lookupBudget())
		defer cancel()

		res, err := retryWithBackoff(callCtx, c.retry, func() (types.MatchResult, error) {
			return c.callAPI(callCtx, symbols)
		})
		if err != nil {
			return types.NoMatch, err
		}
		if c.cache != nil {
			c.cache.Add(key, res)
		}
		return res, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return types.NoMatch, r.Err
		}
		return r.Val.(types.MatchResult), nil
	case <-ctx.Done():
		return types.NoMatch, ctx.Err()
	}
}

// lookupBudget bounds a shared lookup: every attempt at the HTTP timeout
// plus the longest possible wait between attempts.
func (c *Client) lookupBudget() time.Duration {
	attempts := max(c.retry.MaxAttempts, 1)
	return time.Duration(attempts)*c.timeout + time.Duration(attempts-1)*c.retry.MaxDelay
}

func (c *Client) callAPI(ctx context.Context, symbols []string) (types.MatchResult, error) {
	body, err := json.Marshal(FindRequest{Reactants: symbols})
	if err != nil {
		return types.NoMatch, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return types.NoMatch, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.NoMatch, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return types.NoMatch, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return types.NoMatch, fmt.Errorf("read response: %w", err)
	}
	return decodeResult(data)
}

// decodeResult accepts a reaction object, null, an empty body or {}
func decodeResult(data []byte) (types.MatchResult, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return types.NoMatch, nil
	}

	var r types.Reaction
	if err := json.Unmarshal(data, &r); err != nil {
		return types.NoMatch, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if r.Name == "" && r.Equation == "" && len(r.Reactants) == 0 {
		return types.NoMatch, nil
	}
	if r.Energy != "" && !r.Energy.Valid() {
		return types.NoMatch, fmt.Errorf("%w: energy %q", ErrMalformedResponse, r.Energy)
	}
	if r.Type != "" && !r.Type.Valid() {
		return types.NoMatch, fmt.Errorf("%w: type %q", ErrMalformedResponse, r.Type)
	}
	return types.Matched(&r), nil
}
