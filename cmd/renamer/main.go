// Command renamer is the CLI entrypoint for the batch episodic renamer.
//
// It parses flags, validates configuration, and either runs rule
// diagnostics (--check), a single plan/confirm/rename pass, or the
// watch loop (--watch) that keeps renaming new arrivals.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/renamer/internal/check"
	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/display"
	"github.com/backmassage/renamer/internal/logging"
	"github.com/backmassage/renamer/internal/pipeline"
	"github.com/backmassage/renamer/internal/watch"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build", these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	dirAbs, err := absPath(cfg.Directory)
	if err != nil {
		log.Error("Directory not found: %s", cfg.Directory)
		return 1
	}
	cfg.Directory = dirAbs

	log.Info("=== Renamer v%s (%s) ===", version, commit)
	log.Info("Dir:      %s", cfg.Directory)
	log.Info("Pattern:  %s", cfg.Pattern)
	log.Info("Template: %s", cfg.Template)
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be renamed")
	}
	log.Info("")

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// pipeline stops between files and never leaves a half-applied batch.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	// Phase 4: One batch pass over what's already there, then optionally
	// stay resident and rename new arrivals as they appear.
	stats := pipeline.Run(ctx, &cfg, log)
	if stats.Aborted || stats.Failed > 0 {
		return 1
	}

	if cfg.Watch {
		svc := watch.New(&cfg, log)
		if err := svc.Run(ctx); err != nil {
			log.Error("%v", err)
			return 1
		}
	}
	return 0
}

// absPath returns the absolute, symlink-resolved target directory.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
