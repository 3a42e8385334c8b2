package main

import (
	"fmt"
	"log/slog"

	plhttp "github.com/fwojciec/placelist/http"
	plslog "github.com/fwojciec/placelist/slog"
	"golang.org/x/time/rate"
)

// Run executes the serve command and blocks until the context is done.
func (c *ServeCmd) Run(deps *Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := plhttp.NewServer()
	s.Addr = c.Addr
	s.Scraper = plslog.NewLoggingScraper(deps.Scraper, logger)
	s.Logger = logger
	if c.Rate > 0 {
		s.Limiter = rate.NewLimiter(rate.Limit(c.Rate), max(c.Burst, 1))
	}

	if err := s.Open(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stderr, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()
	return s.Close()
}
