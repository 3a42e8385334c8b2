package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/placelist"
)

var _ placelist.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper and logs a summary of every extraction.
type LoggingScraper struct {
	next   placelist.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next placelist.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) Scrape(ctx context.Context, url string) (list *placelist.PlaceList, err error) {
	defer func(begin time.Time) {
		var items int
		var described bool
		if list != nil {
			items = len(list.Items)
			described = list.ListDescription != ""
		}
		s.logger.Info("scrape",
			"url", url,
			"items", items,
			"list_description", described,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, url)
}
