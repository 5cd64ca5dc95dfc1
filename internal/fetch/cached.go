package fetch

import (
	"cmp"
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonathan/job-tracker/internal/store"
)

// DefaultPageCacheTTL is how long a fetched posting page is reused
const DefaultPageCacheTTL = 7 * 24 * time.Hour

// cachedPage is one entry of the page cache
type cachedPage struct {
	FinalURL    string    `json:"final_url,omitempty"`
	HTML        string    `json:"html"`
	ContentType string    `json:"content_type,omitempty"`
	StatusCode  int       `json:"status_code"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// CachedFetcher wraps Page with a page cache kept in the tracker's store, so
// importing the same posting twice, or retrying after a validation error,
// does not hit the job board again.
type CachedFetcher struct {
	kv        store.KV
	options   *Options
	cacheTTL  time.Duration
	skipCache bool
	now       func() time.Time
	mu        sync.Mutex
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL: DefaultPageCacheTTL,
		Options:  DefaultOptions(),
	}
}

// NewCachedFetcher creates a new cached fetcher over kv.
func NewCachedFetcher(kv store.KV, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultPageCacheTTL
	}
	return &CachedFetcher{
		kv:        kv,
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
		now:       time.Now,
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
	FetchedAt time.Time
}

// Fetch retrieves a URL, using the cache if the entry is fresh. Only
// successful fetches are cached; expired entries are pruned on write.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Step 1: Serve a fresh cached page
	pages, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	now := f.now()
	if page, ok := pages[urlStr]; ok && !f.skipCache && now.Sub(page.FetchedAt) < f.cacheTTL {
		log.Printf("[fetch] cache hit for %s (fetched %s)", urlStr, page.FetchedAt.Format(time.RFC3339))
		return &CachedResult{
			Result: &Result{
				URL:         cmp.Or(page.FinalURL, urlStr),
				HTML:        page.HTML,
				ContentType: page.ContentType,
				StatusCode:  page.StatusCode,
			},
			FromCache: true,
			FetchedAt: page.FetchedAt,
		}, nil
	}

	// Step 2: Fetch fresh content
	result, err := Page(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	// Step 3: Store it, dropping stale entries
	for u, page := range pages {
		if now.Sub(page.FetchedAt) >= f.cacheTTL {
			delete(pages, u)
		}
	}
	pages[urlStr] = cachedPage{
		FinalURL:    result.URL,
		HTML:        result.HTML,
		ContentType: result.ContentType,
		StatusCode:  result.StatusCode,
		FetchedAt:   now,
	}
	if err := store.SetJSON(ctx, f.kv, store.KeyPageCache, pages); err != nil {
		// The fetch itself succeeded
		log.Printf("[fetch] failed to cache %s: %v", urlStr, err)
	}

	return &CachedResult{Result: result, FetchedAt: now}, nil
}

// FetchPosting is FetchPosting over the cache
func (f *CachedFetcher) FetchPosting(ctx context.Context, pageURL string) (*Posting, error) {
	result, err := f.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return postingFromPage(ctx, result.Result, f.options)
}

// InvalidateCache drops the cached page for urlStr, forcing a re-fetch on
// the next request.
func (f *CachedFetcher) InvalidateCache(ctx context.Context, urlStr string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	pages, err := f.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := pages[urlStr]; !ok {
		return nil
	}
	delete(pages, urlStr)
	return store.SetJSON(ctx, f.kv, store.KeyPageCache, pages)
}

func (f *CachedFetcher) load(ctx context.Context) (map[string]cachedPage, error) {
	pages := make(map[string]cachedPage)
	if _, err := store.GetJSON(ctx, f.kv, store.KeyPageCache, &pages); err != nil {
		return nil, err
	}
	if pages == nil {
		pages = make(map[string]cachedPage)
	}
	return pages, nil
}
