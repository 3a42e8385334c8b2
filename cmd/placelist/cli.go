package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/placelist"
	"github.com/fwojciec/placelist/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Scraper *scrape.Scraper
	Lists   placelist.ListService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log fetches and extraction details to stderr"`
	DB      string `name:"db" env:"PLACELIST_DB" help:"History database path (default ~/.placelist/placelist.db)"`

	Fetch   FetchCmd   `cmd:"" help:"Fetch listing URLs and print their places as JSON"`
	Parse   ParseCmd   `cmd:"" help:"Extract places from a saved HTML page"`
	Lines   LinesCmd   `cmd:"" help:"Extract places from a plain text dump, one line per line"`
	Serve   ServeCmd   `cmd:"" help:"Serve extraction over HTTP"`
	MCP     MCPCmd     `cmd:"" name:"mcp" help:"Serve the fetch_list tool over MCP on stdin and stdout"`
	History HistoryCmd `cmd:"" help:"Inspect saved lists"`
}

// BrowserFlags configures how pages are fetched.
type BrowserFlags struct {
	Static      bool          `help:"Fetch with plain HTTP instead of a headless browser"`
	Scrolls     int           `default:"10" help:"Times to scroll the results panel"`
	ScrollDelay time.Duration `default:"2s" help:"Wait after each scroll"`
	SettleDelay time.Duration `default:"5s" help:"Wait after the page loads before scrolling"`
	RPS         float64       `name:"rps" default:"0.5" help:"Requests per second per host"`
	SnapshotDir string        `name:"snapshot-dir" type:"path" help:"Save fetched HTML under this directory"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs        []string `arg:"" name:"urls" help:"Listing URLs"`
	Concurrency int      `short:"c" default:"2" help:"Concurrent fetch limit"`
	Save        bool     `short:"s" help:"Save extracted lists to history"`

	BrowserFlags `embed:""`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File string `arg:"" name:"file" optional:"" default:"-" help:"HTML file, or - for stdin"`
}

// LinesCmd is the "lines" subcommand.
type LinesCmd struct {
	File string `arg:"" name:"file" optional:"" default:"-" help:"Text file, or - for stdin"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr  string  `default:":8000" env:"PLACELIST_ADDR" help:"Listen address"`
	Rate  float64 `default:"1" help:"Accepted /fetch requests per second"`
	Burst int     `default:"2" help:"Burst of /fetch requests accepted at once"`

	BrowserFlags `embed:""`
}

// MCPCmd is the "mcp" subcommand.
type MCPCmd struct {
	BrowserFlags `embed:""`
}

// HistoryCmd groups the history subcommands.
type HistoryCmd struct {
	List   HistoryListCmd   `cmd:"" help:"List saved lists, newest first"`
	Show   HistoryShowCmd   `cmd:"" help:"Print a saved list as JSON"`
	Delete HistoryDeleteCmd `cmd:"" help:"Delete a saved list"`
}

// HistoryListCmd is the "history list" subcommand.
type HistoryListCmd struct {
	URL   string `help:"Only lists fetched from this URL"`
	Limit int    `short:"n" default:"20" help:"Maximum lists to show"`
}

// HistoryShowCmd is the "history show" subcommand.
type HistoryShowCmd struct {
	ID string `arg:"" name:"id" help:"List ID"`
}

// HistoryDeleteCmd is the "history delete" subcommand.
type HistoryDeleteCmd struct {
	ID    string `arg:"" name:"id" help:"List ID"`
	Force bool   `help:"Confirm deletion"`
}
