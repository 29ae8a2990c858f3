package source

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legisync/internal/domain"
)

func testClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:        5 * time.Second,
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRESTClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		w.Write([]byte(`{"value":"ok"}`))
	}))
	defer srv.Close()

	client := newRESTClient(testClientConfig(), testLogger())

	var out struct {
		Value string `json:"value"`
	}
	err := client.getJSON(context.Background(), srv.URL, map[string]string{"X-API-Key": "secret"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out.Value)
}

func TestRESTClient_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newRESTClient(testClientConfig(), testLogger())

	var out struct{}
	err := client.getJSON(context.Background(), srv.URL, nil, &out)

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRESTClient_ExhaustsAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newRESTClient(testClientConfig(), testLogger())

	var out struct{}
	err := client.getJSON(context.Background(), srv.URL, nil, &out)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamFetch))
	assert.Equal(t, int32(3), calls.Load())
}

func TestRESTClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":`))
	}))
	defer srv.Close()

	client := newRESTClient(testClientConfig(), testLogger())

	var out struct{}
	err := client.getJSON(context.Background(), srv.URL, nil, &out)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamParse))
}

func TestRESTClient_ContextCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testClientConfig()
	cfg.InitialBackoff = time.Minute
	client := newRESTClient(cfg, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out struct{}
	err := client.getJSON(ctx, srv.URL, nil, &out)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestCalculateBackoff(t *testing.T) {
	client := newRESTClient(ClientConfig{
		InitialBackoff: time.Second,
		MaxBackoff:     5 * time.Second,
	}, testLogger())

	assert.Equal(t, time.Second, client.calculateBackoff(1))
	assert.Equal(t, 2*time.Second, client.calculateBackoff(2))
	assert.Equal(t, 4*time.Second, client.calculateBackoff(3))
	assert.Equal(t, 5*time.Second, client.calculateBackoff(4)) // capped
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
	assert.Equal(t, "", truncate("", 5))
}

func TestTruncate_NeverSplitsRune(t *testing.T) {
	// 67 three-byte runes = 201 bytes; a byte-level clip at 200 would land
	// mid-rune and produce a value Postgres rejects as invalid UTF-8.
	long := strings.Repeat("€", 67)

	got := truncate(long, 200)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("€", 66), got)
	assert.LessOrEqual(t, len(got), 200)

	// Boundary exactly on a rune edge stays untouched.
	assert.Equal(t, strings.Repeat("é", 3), truncate(strings.Repeat("é", 4), 6))
}

func TestParseDateOr(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got := parseDateOr("2025-06-15", fallback)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.June, got.Month())

	assert.Equal(t, fallback, parseDateOr("", fallback))
	assert.Equal(t, fallback, parseDateOr("not a date", fallback))
}
