package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tracker/internal/store"
)

func countingServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestDefaultCachedFetcherConfig(t *testing.T) {
	config := DefaultCachedFetcherConfig()
	require.NotNil(t, config)
	assert.Equal(t, DefaultPageCacheTTL, config.CacheTTL)
	assert.False(t, config.SkipCache)
	assert.NotNil(t, config.Options)
}

func TestNewCachedFetcher_EmptyConfig(t *testing.T) {
	fetcher := NewCachedFetcher(store.NewMemory(), &CachedFetcherConfig{})
	assert.Equal(t, DefaultPageCacheTTL, fetcher.cacheTTL)
	assert.NotNil(t, fetcher.options)
}

func TestCachedFetcher_ServesFromCache(t *testing.T) {
	server, hits := countingServer(t, http.StatusOK, jsonLDPage)
	ctx := context.Background()
	kv := store.NewMemory()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	f := NewCachedFetcher(kv, nil)
	f.now = func() time.Time { return now }

	first, err := f.Fetch(ctx, server.URL)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := f.Fetch(ctx, server.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, int32(1), hits.Load())

	// A second fetcher over the same store sees the entry
	other := NewCachedFetcher(kv, nil)
	other.now = f.now
	third, err := other.Fetch(ctx, server.URL)
	require.NoError(t, err)
	assert.True(t, third.FromCache)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCachedFetcher_ExpiresAndInvalidates(t *testing.T) {
	server, hits := countingServer(t, http.StatusOK, jsonLDPage)
	ctx := context.Background()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	f := NewCachedFetcher(store.NewMemory(), &CachedFetcherConfig{CacheTTL: time.Hour})
	f.now = func() time.Time { return now }

	_, err := f.Fetch(ctx, server.URL)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	res, err := f.Fetch(ctx, server.URL)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, int32(2), hits.Load())

	require.NoError(t, f.InvalidateCache(ctx, server.URL))
	res, err = f.Fetch(ctx, server.URL)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, int32(3), hits.Load())

	require.NoError(t, f.InvalidateCache(ctx, "https://never.example/cached"))
}

func TestCachedFetcher_SkipCache(t *testing.T) {
	server, hits := countingServer(t, http.StatusOK, jsonLDPage)
	ctx := context.Background()

	f := NewCachedFetcher(store.NewMemory(), &CachedFetcherConfig{SkipCache: true})
	for i := 0; i < 2; i++ {
		res, err := f.Fetch(ctx, server.URL)
		require.NoError(t, err)
		assert.False(t, res.FromCache)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestCachedFetcher_FailuresAreNotCached(t *testing.T) {
	server, hits := countingServer(t, http.StatusServiceUnavailable, "busy")
	ctx := context.Background()
	kv := store.NewMemory()

	f := NewCachedFetcher(kv, nil)
	_, err := f.Fetch(ctx, server.URL)
	require.Error(t, err)
	_, err = f.Fetch(ctx, server.URL)
	require.Error(t, err)
	assert.Equal(t, int32(2), hits.Load())

	_, err = kv.Get(ctx, store.KeyPageCache)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCachedFetcher_FetchPosting(t *testing.T) {
	server, hits := countingServer(t, http.StatusOK, jsonLDPage)
	ctx := context.Background()

	f := NewCachedFetcher(store.NewMemory(), nil)
	for i := 0; i < 2; i++ {
		p, err := f.FetchPosting(ctx, server.URL)
		require.NoError(t, err)
		assert.Equal(t, "Senior Go Engineer", p.Title)
		assert.Equal(t, "Acme", p.Company)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestCachedFetcher_KeepsRedirectTarget(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/apply", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/postings/7", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/postings/7", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(jsonLDPage))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	ctx := context.Background()
	f := NewCachedFetcher(store.NewMemory(), nil)

	first, err := f.Fetch(ctx, server.URL+"/apply")
	require.NoError(t, err)
	second, err := f.Fetch(ctx, server.URL+"/apply")
	require.NoError(t, err)

	assert.True(t, second.FromCache)
	assert.Equal(t, server.URL+"/postings/7", first.URL)
	assert.Equal(t, first.URL, second.URL)
}
