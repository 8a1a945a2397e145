package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/classify"
	"github.com/fwojciec/lighterceptor/discover"
	"github.com/fwojciec/lighterceptor/fs"
	"github.com/fwojciec/lighterceptor/goquery"
	lchttp "github.com/fwojciec/lighterceptor/http"
	"github.com/fwojciec/lighterceptor/rod"
	lcslog "github.com/fwojciec/lighterceptor/slog"
	"github.com/fwojciec/lighterceptor/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin is read when the discover input is "-".
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	CaptureService lighterceptor.CaptureService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
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
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
		Writer: fs.NewWriter(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lighterceptor"),
		kong.Description("Discover every network request a web resource would make"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lighterceptor --help' to see available commands")
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

	level := slog.LevelWarn
	if cmd == "discover" && cli.Discover.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	// Discovery only touches the history database when asked to save.
	if cmd != "discover" || cli.Discover.Save {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LIGHTERCEPTOR_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.CaptureService = sqlite.NewCaptureService(m.DB)
		if cli.Discover.Verbose {
			m.CaptureService = lcslog.NewLoggingCaptureService(m.CaptureService, logger)
		}
		deps.DB = m.DB
		deps.Captures = m.CaptureService
	}

	if cmd == "discover" {
		engine, closeEngine, err := newEngine(&cli.Discover, logger)
		if err != nil {
			if lighterceptor.ErrorCode(err) == lighterceptor.ERENDER {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
			}
			return fmt.Errorf("failed to start rendering environment: %w", err)
		}
		defer closeEngine()
		deps.Engine = engine
	}

	return kongCtx.Run(deps)
}

// newEngine wires a discovery engine from command flags.
func newEngine(c *DiscoverCmd, logger *slog.Logger) (*discover.Engine, func(), error) {
	var fetcher lighterceptor.Fetcher = lchttp.NewFetcher(
		lchttp.WithTimeout(c.Timeout),
		lchttp.WithMaxBodyBytes(c.MaxBodyBytes),
	)
	if c.RespectRobots {
		fetcher = lchttp.NewRobotsFetcher(fetcher, nil, lchttp.DefaultUserAgent)
	}

	var renderer lighterceptor.Renderer
	if c.Browser {
		r, err := rod.NewRenderer()
		if err != nil {
			_ = fetcher.Close()
			return nil, nil, err
		}
		renderer = r
	} else {
		renderer = goquery.NewRenderer()
	}

	if c.Verbose {
		fetcher = lcslog.NewLoggingFetcher(fetcher, logger)
		renderer = lcslog.NewLoggingRenderer(renderer, logger)
	}

	engine := &discover.Engine{
		Fetcher:     fetcher,
		Renderer:    renderer,
		Harvester:   goquery.NewHarvester(),
		Classifier:  classify.Default(),
		RetryDelays: retryDelays(c.Retries),
		Logger:      logger,
	}
	if c.RPS > 0 {
		engine.RateLimiter = discover.NewHostLimiter(c.RPS)
	}

	closeFn := func() {
		_ = renderer.Close()
		_ = fetcher.Close()
	}
	return engine, closeFn, nil
}

// retryDelays returns n exponential backoff delays starting from the
// engine defaults.
func retryDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := discover.DefaultRetryDelays()
	for len(delays) < n {
		delays = append(delays, delays[len(delays)-1]*2)
	}
	return delays[:n]
}

func defaultDBPath() string {
	if path := os.Getenv("LIGHTERCEPTOR_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "lighterceptor.db"
	}
	dir := filepath.Join(home, ".lighterceptor")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "lighterceptor.db")
}
