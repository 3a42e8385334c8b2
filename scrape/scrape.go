// Package scrape turns listing URLs into place lists. It coordinates
// rate limiting, fetching, snapshotting, and extraction, falling back from
// card extraction to line segmentation when a page has no recognizable
// cards.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/fwojciec/placelist"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs ScrapeAll fetches at once.
// Each fetch drives a browser page, so this stays low.
const DefaultConcurrency = 2

var _ placelist.Scraper = (*Scraper)(nil)

// Scraper extracts a PlaceList from a listing URL.
type Scraper struct {
	Fetcher placelist.Fetcher
	Cards   placelist.CardReader

	// Lines and Segmenter handle pages without cards. A nil Lines disables
	// the fallback; a nil Segmenter uses the default name rules.
	Lines     placelist.LineReader
	Segmenter *placelist.Segmenter

	// Optional.
	Snapshots placelist.SnapshotStore
	Limiter   placelist.DomainLimiter
	Logger    *slog.Logger
}

// Result holds the outcome of scraping a single URL.
type Result struct {
	URL  string
	List *placelist.PlaceList
	Err  error
}

// Scrape fetches rawURL and extracts its places.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*placelist.PlaceList, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	if s.Snapshots != nil {
		path, err := s.Snapshots.Save(ctx, rawURL, html)
		if err != nil {
			s.logger().Warn("saving snapshot failed", "url", rawURL, "err", err)
		} else {
			s.logger().Debug("saved snapshot", "url", rawURL, "path", path)
		}
	}

	return s.Parse(html)
}

// Parse extracts places from already fetched HTML. Cards are preferred;
// when the page has none its text lines are segmented instead.
func (s *Scraper) Parse(html string) (*placelist.PlaceList, error) {
	cards, err := s.Cards.ReadCards(html)
	if err != nil {
		return nil, fmt.Errorf("reading cards: %w", err)
	}
	if len(cards) > 0 || s.Lines == nil {
		s.logger().Debug("card extraction", "cards", len(cards))
		return placelist.ParseCards(cards), nil
	}

	lines, err := s.Lines.ReadLines(html)
	if err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	s.logger().Debug("no cards found, segmenting lines", "lines", len(lines))
	return s.Segmenter.Parse(lines), nil
}

// ScrapeAll scrapes urls with at most concurrency fetches in flight.
// Results are returned in input order; a failed URL does not stop the
// others. A concurrency below 1 uses DefaultConcurrency.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			list, err := s.Scrape(gctx, u)
			results[i] = Result{URL: u, List: list, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// ParseURL parses rawURL and requires an absolute http or https URL.
func ParseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, placelist.Errorf(placelist.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, placelist.Errorf(placelist.EINVALID, "invalid URL %q: scheme must be http or https", rawURL)
	}
	if u.Host == "" {
		return nil, placelist.Errorf(placelist.EINVALID, "invalid URL %q: missing host", rawURL)
	}
	return u, nil
}
