// Package rod implements placelist.Fetcher with headless Chrome driven by
// github.com/go-rod/rod. It renders JavaScript listings and scrolls their
// results panel so lazily loaded places make it into the HTML.
package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/placelist"
	"github.com/go-rod/rod/lib/proto"
)

// Defaults for Fetcher options.
const (
	DefaultFetchTimeout  = 90 * time.Second
	DefaultSettleDelay   = 5 * time.Second
	DefaultScrolls       = 10
	DefaultScrollDelay   = 2 * time.Second
	DefaultPanelWait     = 15 * time.Second
	DefaultPanelSelector = "div.m6QErb.DxyBCb.kA9KIf.dS8AEf.XiKgde.ussYcc"
)

// Ensure Fetcher implements placelist.Fetcher at compile time.
var _ placelist.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered listing HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	pool *browserPool

	fetchTimeout  time.Duration
	settleDelay   time.Duration
	scrolls       int
	scrollDelay   time.Duration
	panelWait     time.Duration
	panelSelector string
	recycleAfter  int
	userAgent     string
	logger        *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds a whole fetch including scrolling.
// Zero disables the timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.fetchTimeout = d }
}

// WithSettleDelay sets how long to wait after load before scrolling.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.settleDelay = d }
}

// WithScrolls sets how many times the results panel is scrolled to the bottom.
func WithScrolls(n int) Option {
	return func(f *Fetcher) { f.scrolls = n }
}

// WithScrollDelay sets the pause after each scroll.
func WithScrollDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.scrollDelay = d }
}

// WithPanelSelector sets the CSS selector of the scrollable results panel.
func WithPanelSelector(selector string) Option {
	return func(f *Fetcher) { f.panelSelector = selector }
}

// WithPanelWait sets how long to wait for the results panel to appear.
func WithPanelWait(d time.Duration) Option {
	return func(f *Fetcher) { f.panelWait = d }
}

// WithRecycleAfter sets the number of pages before the browser is replaced.
// Zero disables recycling.
func WithRecycleAfter(n int) Option {
	return func(f *Fetcher) { f.recycleAfter = n }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithLogger sets the logger used for non-fatal scrolling problems.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout:  DefaultFetchTimeout,
		settleDelay:   DefaultSettleDelay,
		scrolls:       DefaultScrolls,
		scrollDelay:   DefaultScrollDelay,
		panelWait:     DefaultPanelWait,
		panelSelector: DefaultPanelSelector,
		recycleAfter:  DefaultRecycleAfter,
		userAgent:     DefaultUserAgent,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	pool, err := newBrowserPool(f.recycleAfter, f.userAgent)
	if err != nil {
		return nil, err
	}
	f.pool = pool

	return f, nil
}

// Fetch navigates to the URL, scrolls the results panel and returns the
// rendered HTML. A missing results panel is not an error: the page is
// returned as rendered.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}

	browser, err := f.pool.acquire()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if err := sleep(ctx, f.settleDelay); err != nil {
		return "", err
	}

	if err := f.scrollPanel(ctx, page); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.pool.close()
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
