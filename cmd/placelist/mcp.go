package main

import (
	"log/slog"

	plmcp "github.com/fwojciec/placelist/mcp"
	plslog "github.com/fwojciec/placelist/slog"
)

// Run executes the mcp command. Stdout carries the protocol, so logs only
// go to stderr.
func (c *MCPCmd) Run(deps *Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := plmcp.NewServer(plslog.NewLoggingScraper(deps.Scraper, logger))
	return s.ServeStdio(deps.Ctx, deps.Stdin, deps.Stdout)
}
