// podium shows a live leaderboard in the terminal: a top-three podium, a
// searchable ranked list and page controls, refreshed every few seconds.
//
// Usage:
//
//	podium --url http://localhost:8080
//	podium --query ali --once --format json
//	podium --page 3 | grep '#1'
//
// Output modes (auto-detected):
//
//	interactive  full-screen board (default when stdout is a TTY)
//	terminal     styled snapshot
//	plain        ANSI-free snapshot (default when piped)
//	json         structured snapshot for automation
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/dkoosis/podium/internal/config"
	"github.com/dkoosis/podium/internal/metrics"
	"github.com/dkoosis/podium/internal/version"
	"github.com/dkoosis/podium/pkg/board"
	"github.com/dkoosis/podium/pkg/client"
	"github.com/dkoosis/podium/pkg/leaderboard"
	"github.com/dkoosis/podium/pkg/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options are the flags that are not part of the resolved configuration.
type options struct {
	format  string
	once    bool
	page    int
	query   string
	envFile string
	version bool
}

func parseFlags(args []string, stderr io.Writer) (config.CliFlags, options, error) {
	var flags config.CliFlags
	var opts options

	fs := flag.NewFlagSet("podium", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to .podium.yaml (default: ./.podium.yaml, then the user config dir)")
	fs.StringVar(&flags.BackendURL, "url", "", "Backend base URL")
	fs.DurationVar(&flags.Refresh, "refresh", config.DefaultRefresh, "Refresh period")
	fs.DurationVar(&flags.Debounce, "debounce", config.DefaultDebounce, "Search debounce, 0 fetches on every keystroke")
	fs.DurationVar(&flags.Timeout, "timeout", config.DefaultTimeout, "Per-request timeout")
	fs.StringVar(&flags.Theme, "theme", "", "Theme: neon, mono")
	fs.StringVar(&flags.Brand, "brand", "", "Brand shown in the header")
	fs.BoolVar(&flags.NoColor, "no-color", false, "Disable colours")
	fs.BoolVar(&flags.Debug, "debug", false, "Log at debug level")
	fs.StringVar(&flags.LogFile, "log-file", "", "Write logs to this file")
	fs.StringVar(&flags.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	fs.StringVar(&opts.format, "format", "auto", "Output format: auto, terminal, plain, json")
	fs.BoolVar(&opts.once, "once", false, "Fetch once, print a snapshot and exit")
	fs.IntVar(&opts.page, "page", 1, "Initial page")
	fs.StringVar(&opts.query, "query", "", "Initial search")
	fs.StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before resolving config")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return flags, opts, err
	}
	if fs.NArg() > 0 {
		return flags, opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "refresh":
			flags.RefreshSet = true
		case "debounce":
			flags.DebounceSet = true
		case "timeout":
			flags.TimeoutSet = true
		case "no-color":
			flags.NoColorSet = true
		case "debug":
			flags.DebugSet = true
		}
	})

	switch opts.format {
	case "auto", "terminal", "plain", "json":
	default:
		return flags, opts, fmt.Errorf("unknown format %q (expected auto, terminal, plain, json)", opts.format)
	}
	if opts.page < 1 {
		return flags, opts, fmt.Errorf("page must be at least 1, got %d", opts.page)
	}
	return flags, opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	flags, opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "podium: %v\n", err)
		}
		return 2
	}
	if opts.version {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	if err := config.LoadEnvFile(opts.envFile); err != nil {
		fmt.Fprintf(stderr, "podium: %v\n", err)
		return 2
	}
	cfg, err := config.ResolveConfig(flags)
	if err != nil {
		fmt.Fprintf(stderr, "podium: %v\n", err)
		return 2
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "podium: %v\n", err)
		return 2
	}
	defer closeLog()
	slog.SetDefault(logger)
	logger.Debug("config resolved", "path", cfg.ConfigPath, "url", cfg.BackendURL, "sources", cfg.Sources)

	recorder := metrics.NewRecorder()
	c, err := client.New(cfg.BackendURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger),
		client.WithObserver(recorder),
	)
	if err != nil {
		fmt.Fprintf(stderr, "podium: %v\n", err)
		return 2
	}

	themeName := cfg.Theme
	if cfg.NoColor {
		themeName = "mono"
	}
	theme := render.ThemeByName(themeName, cfg.Brand, cfg.Palette, cfg.Avatars)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if isTTYWriter(stdout) && opts.format == "auto" && !opts.once {
		return runInteractive(ctx, cfg, opts, c, theme, recorder, logger, stderr)
	}
	return runSnapshot(ctx, cfg, opts, c, theme, stdout, stderr)
}

// runInteractive runs the board and, when configured, the metrics endpoint until
// the user quits or a signal arrives.
func runInteractive(ctx context.Context, cfg *config.ResolvedConfig, opts options, c client.Fetcher,
	theme *render.Theme, recorder *metrics.Recorder, logger *slog.Logger, stderr io.Writer) int {
	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	if cfg.MetricsAddr != "" {
		g.Go(func() error { return recorder.Serve(runCtx, cfg.MetricsAddr) })
	}
	g.Go(func() error {
		defer cancel()
		return board.Run(runCtx, board.Config{
			Fetcher:  c,
			Theme:    theme,
			Refresh:  cfg.Refresh,
			Debounce: cfg.Debounce,
			Logger:   logger,
			Stale:    recorder,
			Page:     opts.page,
			Query:    opts.query,
		})
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(stderr, "podium: %v\n", err)
		return 1
	}
	return 0
}

// runSnapshot fetches (page, query) once and prints it.
func runSnapshot(ctx context.Context, cfg *config.ResolvedConfig, opts options, c client.Fetcher,
	theme *render.Theme, stdout, stderr io.Writer) int {
	state := leaderboard.NewState()
	state.Query = opts.query
	state.Page = opts.page
	if state.TotalPages < opts.page {
		state.TotalPages = opts.page
	}

	start := time.Now()
	page, err := c.Fetch(ctx, opts.page, opts.query)
	if err != nil {
		fmt.Fprintf(stderr, "podium: fetch leaderboard from %s: %v\n", cfg.BackendURL, err)
		return 1
	}
	if state.Apply(page) {
		// --page was past the end; show the last page instead.
		if page, err = c.Fetch(ctx, state.Page, opts.query); err != nil {
			fmt.Fprintf(stderr, "podium: fetch leaderboard from %s: %v\n", cfg.BackendURL, err)
			return 1
		}
		state.Apply(page)
	}
	slog.Debug("snapshot fetched", "page", state.Page, "query", opts.query, "duration", time.Since(start))

	fmt.Fprint(stdout, selectRenderer(resolveFormat(opts.format, stdout), theme, cfg.Brand, stdout).Render(&state))
	return 0
}

// resolveFormat maps "auto" to terminal on a TTY and plain otherwise.
func resolveFormat(format string, stdout io.Writer) string {
	if format != "auto" {
		return format
	}
	if isTTYWriter(stdout) {
		return "terminal"
	}
	return "plain"
}

func selectRenderer(format string, theme *render.Theme, brand string, stdout io.Writer) render.Renderer {
	switch format {
	case "json":
		return render.NewJSON()
	case "terminal":
		width, _ := termSize(stdout)
		return render.NewTerminal(theme, width)
	default:
		return render.NewPlain(brand)
	}
}

// newLogger logs to the configured file, or nowhere: the board owns the terminal.
func newLogger(cfg *config.ResolvedConfig) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	// #nosec G304 -- path comes from the user's own flags or config
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}
