package placelist

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// listings that load more places as their results panel scrolls.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the listing to render,
	// and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SnapshotStore keeps copies of fetched page HTML for debugging selectors.
type SnapshotStore interface {
	// Save stores the HTML fetched from url and returns where it was written.
	Save(ctx context.Context, url string, html string) (path string, err error)
}
