package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/placelist"
	"github.com/fwojciec/placelist/fs"
	"github.com/fwojciec/placelist/goquery"
	plhttp "github.com/fwojciec/placelist/http"
	"github.com/fwojciec/placelist/rod"
	"github.com/fwojciec/placelist/scrape"
	plslog "github.com/fwojciec/placelist/slog"
	"github.com/fwojciec/placelist/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	// PLACELIST_* settings may come from a .env file in the working directory.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db and PLACELIST_DB are unset.
	DBPath string

	// SQLite database used by the history store.
	DB *sqlite.DB

	// Fetcher overrides the browser or HTTP fetcher, for end-to-end testing.
	Fetcher placelist.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("placelist"),
		kong.Description("Extract places from map listing pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'placelist --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = commandName(kongCtx)

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	// Only history and saved fetches touch the database.
	if needsDB(cmd, cli) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PLACELIST_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Lists = plslog.NewLoggingListService(sqlite.NewListService(m.DB), logger)
	}

	reader := goquery.NewReader(goquery.DefaultSelectors())
	deps.Scraper = &scrape.Scraper{
		Cards:     reader,
		Lines:     reader,
		Segmenter: placelist.NewSegmenter(),
		Logger:    logger,
	}

	var browser *BrowserFlags
	switch cmd {
	case "fetch":
		browser = &cli.Fetch.BrowserFlags
	case "serve":
		browser = &cli.Serve.BrowserFlags
	case "mcp":
		browser = &cli.MCP.BrowserFlags
	}
	if browser != nil {
		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(browser, logger); err != nil {
				if !browser.Static {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static")
				}
				return fmt.Errorf("failed to start fetcher: %w", err)
			}
			defer fetcher.Close()
		}
		deps.Scraper.Fetcher = plslog.NewLoggingFetcher(fetcher, logger)
		deps.Scraper.Limiter = scrape.NewDomainLimiter(browser.RPS)
		if browser.SnapshotDir != "" {
			deps.Scraper.Snapshots = fs.NewSnapshotStore(browser.SnapshotDir)
		}
	}

	return kongCtx.Run(deps)
}

// commandName returns the selected command path without argument
// placeholders, such as "history show".
func commandName(ctx *kong.Context) string {
	var words []string
	for _, w := range strings.Fields(ctx.Command()) {
		if !strings.HasPrefix(w, "<") {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "history list", "history show", "history delete":
		return true
	case "fetch":
		return cli.Fetch.Save
	}
	return false
}

func newFetcher(flags *BrowserFlags, logger *slog.Logger) (placelist.Fetcher, error) {
	if flags.Static {
		return plhttp.NewFetcher(plhttp.WithUserAgent(rod.DefaultUserAgent)), nil
	}
	return rod.NewFetcher(
		rod.WithScrolls(flags.Scrolls),
		rod.WithScrollDelay(flags.ScrollDelay),
		rod.WithSettleDelay(flags.SettleDelay),
		rod.WithLogger(logger),
	)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "placelist.db"
	}
	dir := filepath.Join(home, ".placelist")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "placelist.db")
}
