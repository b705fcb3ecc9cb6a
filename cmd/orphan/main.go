// # cmd/orphan/main.go
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"orphan/internal/config"
	"orphan/internal/errors"
	"orphan/internal/history"
	"orphan/internal/observability"
	"orphan/internal/serve"
)

var (
	configPath = flag.String("config", "./orphan.toml", "Path to config file")
	format     = flag.String("format", "text", "Output format: text or json")
	watch      = flag.Bool("watch", false, "Keep running and rescan on file changes")
	ui         = flag.Bool("ui", false, "Enable terminal UI mode (implies --watch)")
	serveMode  = flag.Bool("serve", false, "Expose the latest report over HTTP")
	trends     = flag.Bool("history", false, "Print recent scan history and exit")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("orphan v%s\n", VERSION)
		os.Exit(0)
	}

	if *format != "text" && *format != "json" {
		fmt.Fprintf(os.Stderr, "unknown format %q: want text or json\n", *format)
		os.Exit(1)
	}

	setupLogging()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		cfg.ScanPaths = []string{flag.Arg(0)}
	}

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracing(ctx, cfg.Tracing.Endpoint)
		if err != nil {
			slog.Error("failed to initialize tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Warn("trace shutdown failed", "error", err)
			}
		}()
	}

	if *trends {
		if err := printTrends(cfg); err != nil {
			slog.Error("failed to read history", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	rep, err := app.RunScan(ctx)
	if err != nil {
		if errors.IsCode(err, errors.CodeInput) {
			fmt.Fprintln(os.Stderr, err.Error())
		} else {
			slog.Error("scan failed", "error", err)
		}
		os.Exit(1)
	}

	if err := app.WriteOutputs(rep); err != nil {
		slog.Error("failed to write outputs", "error", err)
	}

	if !*ui {
		if *format == "json" {
			out, err := rep.RenderJSON()
			if err != nil {
				slog.Error("failed to render report", "error", err)
				os.Exit(1)
			}
			fmt.Print(out)
		} else {
			fmt.Print(rep.RenderText())
		}
	}

	if *serveMode {
		server, err := serve.New(cfg.Serve.Addr, app)
		if err != nil {
			slog.Error("failed to initialize server", "error", err)
			os.Exit(1)
		}
		go func() {
			if err := server.ListenAndServe(); err != nil {
				slog.Error("server failed", "error", err)
				os.Exit(1)
			}
		}()
	}

	if !*watch && !*ui && !*serveMode {
		os.Exit(0)
	}

	w, err := app.StartWatcher()
	if err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}
	defer w.Close()

	if *ui {
		if err := app.RunUI(); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
		return
	}

	// Block forever
	select {}
}

func setupLogging() {
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stderr
	if *ui {
		// In UI mode, avoid stderr logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
			output = f
		} else {
			fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err == nil {
		return cfg, nil
	}
	// Only fall back to defaults when the user did not point at a
	// specific file.
	if *configPath == "./orphan.toml" && os.IsNotExist(underlying(err)) {
		return config.Default(), nil
	}
	return nil, err
}

func underlying(err error) error {
	var de *errors.DomainError
	if stderrors.As(err, &de) && de.Err != nil {
		return de.Err
	}
	return err
}

func printTrends(cfg *config.Config) error {
	if cfg.History.Path == "" {
		return fmt.Errorf("history is not configured: set history.path in %s", *configPath)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	snapshots, err := store.RecentSnapshots(cfg.History.Project, 20)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Println("No scan history recorded yet.")
		return nil
	}

	fmt.Printf("Recent scans for %s:\n", cfg.History.Project)
	for _, s := range snapshots {
		fmt.Printf("  %s  files=%d edges=%d orphans=%d clusters=%d skipped=%d (%v)\n",
			s.Timestamp.Format(time.RFC3339), s.FileCount, s.EdgeCount,
			s.OrphanCount, s.ClusterCount, s.SkippedCount, s.Duration)
	}
	return nil
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "orphan", "orphan.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "orphan", "orphan.log")
	}

	return "orphan.log"
}
