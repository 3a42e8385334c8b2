package scrape_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/placelist"
	"github.com/fwojciec/placelist/mock"
	"github.com/fwojciec/placelist/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return html, nil
		},
	}
}

func cardsOf(cards ...placelist.Card) *mock.CardReader {
	return &mock.CardReader{
		ReadCardsFn: func(_ string) ([]placelist.Card, error) {
			return cards, nil
		},
	}
}

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("extracts places from cards", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher("<html></html>"),
			Cards: cardsOf(
				placelist.Card{Text: "Weekend\nCozy Spots"},
				placelist.Card{Text: "Joe's Pizza\n4.5 (1,234)\nItalian · $$"},
			),
		}

		list, err := s.Scrape(context.Background(), "https://maps.example.com/list/1")

		require.NoError(t, err)
		assert.Equal(t, "Cozy Spots", list.ListDescription)
		require.Len(t, list.Items, 1)
		assert.Equal(t, placelist.Place{
			Name:        "Joe's Pizza",
			Rating:      "4.5",
			Description: "Italian · $$",
			Price:       "$$",
		}, list.Items[0])
	})

	t.Run("falls back to lines when there are no cards", func(t *testing.T) {
		t.Parallel()

		var gotHTML string
		s := &scrape.Scraper{
			Fetcher: staticFetcher("<body>page</body>"),
			Cards:   cardsOf(),
			Lines: &mock.LineReader{
				ReadLinesFn: func(html string) ([]string, error) {
					gotHTML = html
					return []string{"Joe's Pizza", "4.5 (1,234)", "Italian · $$"}, nil
				},
			},
		}

		list, err := s.Scrape(context.Background(), "https://maps.example.com/list/1")

		require.NoError(t, err)
		assert.Equal(t, "<body>page</body>", gotHTML)
		require.Len(t, list.Items, 1)
		assert.Equal(t, "Joe's Pizza", list.Items[0].Name)
		assert.Equal(t, "$$", list.Items[0].Price)
	})

	t.Run("no cards and no line reader yields empty list", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher(""),
			Cards:   cardsOf(),
		}

		list, err := s.Scrape(context.Background(), "https://maps.example.com/list/1")

		require.NoError(t, err)
		assert.Empty(t, list.ListDescription)
		assert.NotNil(t, list.Items)
		assert.Empty(t, list.Items)
	})

	t.Run("rejects invalid URL without fetching", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					t.Fatal("fetch should not be called")
					return "", nil
				},
			},
		}

		for _, raw := range []string{"ftp://maps.example.com", "/list/1", "https://", "::"} {
			_, err := s.Scrape(context.Background(), raw)
			assert.Equal(t, placelist.EINVALID, placelist.ErrorCode(err), raw)
		}
	})

	t.Run("waits on the limiter for the URL host", func(t *testing.T) {
		t.Parallel()

		var domain string
		s := &scrape.Scraper{
			Fetcher: staticFetcher(""),
			Cards:   cardsOf(),
			Limiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, d string) error {
					domain = d
					return nil
				},
			},
		}

		_, err := s.Scrape(context.Background(), "https://maps.example.com:8443/list/1")

		require.NoError(t, err)
		assert.Equal(t, "maps.example.com:8443", domain)
	})

	t.Run("limiter error aborts", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher(""),
			Limiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, _ string) error {
					return context.Canceled
				},
			},
		}

		_, err := s.Scrape(context.Background(), "https://maps.example.com")

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("wraps fetch errors", func(t *testing.T) {
		t.Parallel()

		fetchErr := errors.New("navigation failed")
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", fetchErr
				},
			},
		}

		_, err := s.Scrape(context.Background(), "https://maps.example.com")

		require.ErrorIs(t, err, fetchErr)
		assert.Contains(t, err.Error(), "https://maps.example.com")
	})

	t.Run("saves snapshot of fetched HTML", func(t *testing.T) {
		t.Parallel()

		var savedURL, savedHTML string
		s := &scrape.Scraper{
			Fetcher: staticFetcher("<html>listing</html>"),
			Cards:   cardsOf(),
			Snapshots: &mock.SnapshotStore{
				SaveFn: func(_ context.Context, url, html string) (string, error) {
					savedURL, savedHTML = url, html
					return "/tmp/snap.html", nil
				},
			},
		}

		_, err := s.Scrape(context.Background(), "https://maps.example.com/list/1")

		require.NoError(t, err)
		assert.Equal(t, "https://maps.example.com/list/1", savedURL)
		assert.Equal(t, "<html>listing</html>", savedHTML)
	})

	t.Run("snapshot failure is logged and not fatal", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		s := &scrape.Scraper{
			Fetcher: staticFetcher(""),
			Cards:   cardsOf(placelist.Card{Text: "Header"}, placelist.Card{Text: "Joe's Pizza"}),
			Snapshots: &mock.SnapshotStore{
				SaveFn: func(_ context.Context, _, _ string) (string, error) {
					return "", errors.New("disk full")
				},
			},
			Logger: slog.New(slog.NewTextHandler(&logs, nil)),
		}

		list, err := s.Scrape(context.Background(), "https://maps.example.com")

		require.NoError(t, err)
		assert.Len(t, list.Items, 1)
		assert.Contains(t, logs.String(), "disk full")
	})

	t.Run("card reader error is returned", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher(""),
			Cards: &mock.CardReader{
				ReadCardsFn: func(_ string) ([]placelist.Card, error) {
					return nil, placelist.Errorf(placelist.EINVALID, "unparseable HTML")
				},
			},
		}

		_, err := s.Scrape(context.Background(), "https://maps.example.com")

		assert.Equal(t, placelist.EINVALID, placelist.ErrorCode(err))
	})
}

func TestScraper_ScrapeAll(t *testing.T) {
	t.Parallel()

	t.Run("returns results in input order", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return url, nil
				},
			},
			Cards: &mock.CardReader{
				ReadCardsFn: func(html string) ([]placelist.Card, error) {
					return []placelist.Card{{Text: "Header"}, {Text: html}}, nil
				},
			},
		}
		urls := []string{
			"https://maps.example.com/1",
			"https://maps.example.com/2",
			"https://maps.example.com/3",
		}

		results := s.ScrapeAll(context.Background(), urls, 2)

		require.Len(t, results, 3)
		for i, r := range results {
			require.NoError(t, r.Err)
			assert.Equal(t, urls[i], r.URL)
			require.Len(t, r.List.Items, 1)
			assert.Equal(t, urls[i], r.List.Items[0].Name)
		}
	})

	t.Run("failed URL does not stop the others", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher(""),
			Cards:   cardsOf(),
		}

		results := s.ScrapeAll(context.Background(), []string{"ftp://bad", "https://maps.example.com"}, 0)

		require.Len(t, results, 2)
		assert.Equal(t, placelist.EINVALID, placelist.ErrorCode(results[0].Err))
		require.NoError(t, results[1].Err)
		assert.NotNil(t, results[1].List)
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int32
		var mu sync.Mutex
		release := make(chan struct{})
		started := make(chan struct{}, 10)

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					n := inFlight.Add(1)
					mu.Lock()
					if n > peak.Load() {
						peak.Store(n)
					}
					mu.Unlock()
					started <- struct{}{}
					<-release
					inFlight.Add(-1)
					return "", nil
				},
			},
			Cards: cardsOf(),
		}

		urls := make([]string, 6)
		for i := range urls {
			urls[i] = "https://maps.example.com"
		}

		done := make(chan []scrape.Result)
		go func() { done <- s.ScrapeAll(context.Background(), urls, 2) }()

		<-started
		<-started
		close(release)
		results := <-done

		assert.Len(t, results, 6)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})
}

func TestParseURL(t *testing.T) {
	t.Parallel()

	u, err := scrape.ParseURL("https://maps.example.com/list/1?hl=en")
	require.NoError(t, err)
	assert.Equal(t, "maps.example.com", u.Host)

	_, err = scrape.ParseURL("maps.example.com/list/1")
	assert.Equal(t, placelist.EINVALID, placelist.ErrorCode(err))
}
