package trivia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, srv *httptest.Server, cfg Config) *Client {
	t.Helper()
	cfg.BaseURL = srv.URL
	c, err := NewClient(cfg, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestFetchSuccessReturnsBodyVerbatim(t *testing.T) {
	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		_, _ = w.Write([]byte("6 is the smallest perfect number."))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{})
	fact, err := c.Fetch(context.Background(), 6)
	require.NoError(t, err)

	assert.Equal(t, "/6/math", <-paths)
	assert.Equal(t, "6 is the smallest perfect number.", fact.Text)
	assert.False(t, fact.Fallback)
	assert.Equal(t, http.StatusOK, fact.Status)
	assert.Equal(t, int64(6), fact.Number)
}

func TestFetchUsesCategoryAndBasePath(t *testing.T) {
	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		_, _ = w.Write([]byte("fact"))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL + "/api", Category: "trivia"}, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "/api/42/trivia", <-paths)
}

func TestFetchNonSuccessStatusFallsBack(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", status)
		}))

		c := newTestClient(t, srv, Config{})
		fact, err := c.Fetch(context.Background(), 7)
		srv.Close()

		require.Error(t, err, "status %d", status)
		assert.ErrorIs(t, err, ErrUpstreamStatus)
		assert.Equal(t, DefaultFallback, fact.Text)
		assert.True(t, fact.Fallback)
		assert.Equal(t, status, fact.Status)
	}
}

func TestFetchEmptyBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{Fallback: "nothing to say"})
	fact, err := c.Fetch(context.Background(), 1)
	assert.ErrorIs(t, err, ErrEmptyFact)
	assert.Equal(t, "nothing to say", fact.Text)
	assert.True(t, fact.Fallback)
}

func TestFetchTimeoutFallsBack(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv, Config{Timeout: 50 * time.Millisecond})
	start := time.Now()
	fact, err := c.Fetch(context.Background(), 28)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, DefaultFallback, fact.Text)
	assert.Equal(t, 0, fact.Status)
}

func TestFetchHonorsCallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("unreachable"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fact, err := c.Fetch(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, fact.Fallback)
}

func TestFetchUnreachableProviderFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: base, Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(c.http.CloseIdleConnections)

	fact, err := c.Fetch(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, DefaultFallback, fact.Text)
}

func TestFetchCapsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	obsCore, logs := observer.New(zapcore.WarnLevel)
	c, err := NewClient(Config{BaseURL: srv.URL, MaxBodyBytes: 10},
		WithHTTPClient(srv.Client()), WithLogger(zap.New(obsCore)))
	require.NoError(t, err)

	fact, err := c.Fetch(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, fact.Text, 10)

	warns := logs.FilterMessage("trivia body truncated").All()
	require.Len(t, warns, 1)
	assert.Equal(t, int64(10), warns[0].ContextMap()["max_body_bytes"])
}

func TestFetchBodyAtCapIsNotTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 10)))
	}))
	defer srv.Close()

	obsCore, logs := observer.New(zapcore.WarnLevel)
	c, err := NewClient(Config{BaseURL: srv.URL, MaxBodyBytes: 10},
		WithHTTPClient(srv.Client()), WithLogger(zap.New(obsCore)))
	require.NoError(t, err)

	fact, err := c.Fetch(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 10), fact.Text)
	assert.Zero(t, logs.Len())
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, c.cfg.BaseURL)
	assert.Equal(t, DefaultCategory, c.cfg.Category)
	assert.Equal(t, DefaultTimeout, c.cfg.Timeout)
	assert.Equal(t, DefaultFallback, c.Fallback())
	assert.Equal(t, DefaultTransportConfig(), c.cfg.Transport)
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"ftp://numbersapi.com", "numbersapi.com", "http://", "://bad"} {
		_, err := NewClient(Config{BaseURL: raw})
		assert.Error(t, err, raw)
	}
}
