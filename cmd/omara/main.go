package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/erazemk/omara/internal/api"
	"github.com/erazemk/omara/internal/auth"
	"github.com/erazemk/omara/internal/db"
	"github.com/erazemk/omara/internal/metrics"
	"github.com/erazemk/omara/internal/nav"
	"github.com/erazemk/omara/internal/store"
	"github.com/erazemk/omara/internal/view"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	level  slog.Leveler
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.level.Level()
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		level:  lr.level,
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		level:  lr.level,
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string, level slog.Level) (func(), error) {
	opts := &slog.HandlerOptions{Level: level}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		level:  level,
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

type options struct {
	dbPath   string
	filePath string
	addr     string
	outfits  int
	wears    int
	logPath  string
	dev      bool
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("omara", flag.ContinueOnError)

	var o options
	fs.StringVar(&o.dbPath, "db", "omara.sqlite3", "")
	fs.StringVar(&o.dbPath, "d", "omara.sqlite3", "")

	fs.StringVar(&o.filePath, "file", "", "")
	fs.StringVar(&o.filePath, "f", "", "")

	fs.StringVar(&o.addr, "addr", ":8080", "")
	fs.StringVar(&o.addr, "a", ":8080", "")

	fs.IntVar(&o.outfits, "outfits", 12, "")
	fs.IntVar(&o.outfits, "n", 12, "")

	fs.IntVar(&o.wears, "wears", 6, "")
	fs.IntVar(&o.wears, "k", 6, "")

	fs.StringVar(&o.logPath, "log", "", "")
	fs.StringVar(&o.logPath, "l", "", "")

	fs.BoolVar(&o.dev, "dev", false, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: omara [flags]

Flags:
  -d, -db <path>          SQLite database path (default: omara.sqlite3)
  -f, -file <path>        keep outfits in a binary file instead of the database
  -a, -addr <host:port>   listen address (default: :8080)
  -n, -outfits <count>    number of outfit slots (default: 12)
  -k, -wears <count>      wear items per outfit (default: 6)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
      -dev                debug logging, panic on contract violations
  -h, -help               show this help and exit
`)
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return o, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	if o.outfits <= 0 || o.wears <= 0 {
		return o, fmt.Errorf("outfit and wear counts must be positive")
	}
	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if opts.dev {
		level = slog.LevelDebug
	}
	closeLog, err := setupLogger(opts.logPath, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	if err := run(opts); err != nil {
		slog.Error("omara stopped", "error", err)
		if closeLog != nil {
			closeLog()
		}
		os.Exit(1)
	}
}

func run(opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(opts.dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	slog.Info("database ready", "path", opts.dbPath)

	if err := ensurePasscode(ctx, database); err != nil {
		return err
	}

	jwtSecret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		return fmt.Errorf("getting JWT secret: %w", err)
	}

	var gateway store.Gateway = store.NewSQLite(database)
	if opts.filePath != "" {
		gateway = store.NewFile(opts.filePath)
		slog.Info("keeping outfits in file", "path", opts.filePath)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	recorder := view.NewRecorder(opts.outfits, opts.wears)
	catalogue, err := nav.New(nav.Config{
		Outfits:  opts.outfits,
		Wears:    opts.wears,
		Gateway:  gateway,
		UI:       recorder,
		Animator: view.NewTimedAnimator(recorder),
		Logger:   slog.Default().With("component", "catalogue"),
		Metrics:  metrics.New(reg),
		Strict:   opts.dev,
	})
	if err != nil {
		return fmt.Errorf("creating catalogue: %w", err)
	}
	defer catalogue.Close()

	report := catalogue.Restore(ctx)
	if report.Err != nil {
		slog.Warn("starting with an empty catalogue", "error", report.Err)
	}

	router := api.NewRouter(api.Config{
		DB:        database,
		JWTSecret: jwtSecret,
		Catalogue: catalogue,
		View:      recorder,
		Gatherer:  reg,
	})

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           api.LoggingMiddleware(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server started", "addr", opts.addr, "outfits", opts.outfits, "wears", opts.wears)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped, closing database")
	return nil
}

// ensurePasscode generates and prints a passcode on first run.
func ensurePasscode(ctx context.Context, database *sql.DB) error {
	hash, err := store.GetPasscodeHash(ctx, database)
	if err != nil {
		return fmt.Errorf("reading passcode: %w", err)
	}
	if hash != "" {
		return nil
	}

	passcode, err := auth.GeneratePasscode(16)
	if err != nil {
		return fmt.Errorf("generating passcode: %w", err)
	}
	hash, err = auth.HashPasscode(passcode)
	if err != nil {
		return err
	}
	if err := store.SetPasscodeHash(ctx, database, hash); err != nil {
		return fmt.Errorf("storing passcode: %w", err)
	}

	fmt.Println("Passcode created:")
	fmt.Printf("  %s\n", passcode)
	fmt.Println()
	fmt.Println("Save this passcode, it cannot be recovered.")
	fmt.Println("You can change it after logging in.")
	fmt.Println()
	return nil
}
