package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/chemlab-mcp/internal/reaction"
	"github.com/dshills/chemlab-mcp/pkg/types"
)

func newTestClient(t *testing.T, url string, cacheSize int) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: url, Timeout: 2 * time.Second, CacheSize: cacheSize})
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://lab.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "http://lab.example.com/api/reactions/find", c.Endpoint())
	assert.Equal(t, DefaultMaxAttempts, c.retry.MaxAttempts)
	assert.Nil(t, c.cache)

	for _, bad := range []string{"", "not a url", "/relative"} {
		_, err := NewClient(Config{BaseURL: bad})
		assert.ErrorIs(t, err, ErrInvalidBaseURL, bad)
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(EnvRemoteURL, "")
	_, err := NewFromEnv()
	assert.ErrorIs(t, err, ErrRemoteDisabled)

	t.Setenv(EnvRemoteURL, "http://localhost:9000")
	t.Setenv(EnvRemoteTimeout, "3s")
	t.Setenv(EnvRemoteAttempts, "3")
	c, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.Equal(t, 3, c.retry.MaxAttempts)
	assert.NotNil(t, c.cache)

	t.Setenv(EnvRemoteAttempts, "0")
	_, err = NewFromEnv()
	assert.Error(t, err)

	t.Setenv(EnvRemoteAttempts, "")
	t.Setenv(EnvRemoteTimeout, "soon")
	_, err = NewFromEnv()
	assert.Error(t, err)
}

func TestFindReactionAgainstHandler(t *testing.T) {
	srv := httptest.NewServer(NewHandler(reaction.Default()))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)

	res := c.FindReaction(context.Background(), []string{"Cl", "Na"})
	require.True(t, res.Found())
	assert.Equal(t, "sodium-chloride", res.Reaction.ID)
	assert.Equal(t, types.Exothermic, res.Reaction.Energy)

	res = c.FindReaction(context.Background(), []string{"Fe", "Cu"})
	assert.False(t, res.Found())
}

func TestFindReactionResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		found  bool
	}{
		{"null body", http.StatusOK, "null", false},
		{"empty object", http.StatusOK, "{}", false},
		{"empty body", http.StatusOK, "", false},
		{"malformed json", http.StatusOK, "{not json", false},
		{"invalid energy", http.StatusOK, `{"name":"X","equation":"A → B","energy":"Warm"}`, false},
		{"server error", http.StatusInternalServerError, "boom", false},
		{"reaction", http.StatusOK, `{"id":"x","name":"X","reactants":["A","B"],"products":["AB"],"equation":"A + B → AB","type":"synthesis","energy":"exothermic"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res := newTestClient(t, srv.URL, 0).FindReaction(context.Background(), []string{"A", "B"})
			assert.Equal(t, tt.found, res.Found())
		})
	}
}

func TestLookupReportsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, 0).Lookup(context.Background(), []string{"H"})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[1,2"))
	}))
	defer srv2.Close()

	_, err = newTestClient(t, srv2.URL, 0).Lookup(context.Background(), []string{"H"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestLookupUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := newTestClient(t, url, 0).FindReaction(context.Background(), []string{"H", "O"})
	assert.False(t, res.Found())
}

func TestLookupSendsReactants(t *testing.T) {
	var got FindRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, FindPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	newTestClient(t, srv.URL, 0).FindReaction(context.Background(), []string{"O", "H", "H"})
	assert.Equal(t, []string{"O", "H", "H"}, got.Reactants)
}

func TestLookupEmptySelection(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	res, err := newTestClient(t, srv.URL, 0).Lookup(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestLookupCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"id":"w","name":"Water","reactants":["H","O"],"products":["H2O"],"equation":"2H2 + O2 → 2H2O"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 8)
	ctx := context.Background()

	first := c.FindReaction(ctx, []string{"H", "O"})
	second := c.FindReaction(ctx, []string{"O", "H"})
	require.True(t, first.Found())
	require.True(t, second.Found())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLookupSingleflight(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.FindReaction(context.Background(), []string{"Na", "Cl"})
		}()
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLookupSharedCallOutlivesFirstCaller(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	handler := NewHandler(reaction.Default())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		handler.ServeHTTP(w, r)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 8)

	shortCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Lookup(shortCtx, []string{"Na", "Cl"})
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan types.MatchResult, 1)
	secondErr := make(chan error, 1)
	go func() {
		res, err := c.Lookup(context.Background(), []string{"Cl", "Na"})
		second <- res
		secondErr <- err
	}()

	assert.ErrorIs(t, <-firstErr, context.DeadlineExceeded)
	close(release)

	res := <-second
	require.NoError(t, <-secondErr)
	require.True(t, res.Found(), "the joined caller is not failed by the first caller's deadline")
	assert.Equal(t, "sodium-chloride", res.Reaction.ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	cached, err := c.Lookup(context.Background(), []string{"Na", "Cl"})
	require.NoError(t, err)
	assert.True(t, cached.Found())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "served from cache")
}

func TestLookupBudget(t *testing.T) {
	c, err := NewClient(Config{
		BaseURL: "http://lab.example.com",
		Timeout: time.Second,
		Retry:   RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 100 * time.Millisecond, Multiplier: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second+200*time.Millisecond, c.lookupBudget())
}

func TestRetryWithBackoff(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}

	attempts := 0
	v, err := retryWithBackoff(context.Background(), cfg, func() (int, error) {
		attempts++
		if attempts < 3 {
			return 0, assert.AnError
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 3, attempts)

	attempts = 0
	_, err = retryWithBackoff(context.Background(), DefaultRetryConfig(), func() (int, error) {
		attempts++
		return 0, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, attempts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = retryWithBackoff(ctx, cfg, func() (int, error) {
		return 0, assert.AnError
	})
	assert.ErrorIs(t, err, context.Canceled)
}
