package pipeline

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/display"
	"github.com/backmassage/renamer/internal/logging"
	"github.com/backmassage/renamer/internal/transform"
)

// planResult is the outcome of planning one file on a worker.
type planResult struct {
	path string
	plan transform.Plan
	ok   bool
	err  error
}

// Run is the top-level batch entry point: discover → plan (parallel) →
// confirm → execute. It returns aggregate stats; the caller decides the
// exit code.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var stats RunStats

	files, err := Discover(cfg.Directory, cfg.Depth, cfg.FileTypes)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		stats.Failed++
		return stats
	}
	stats.Found = len(files)
	log.Info("Found %s under %s (depth %d)",
		display.Pluralize(len(files), "eligible file"), cfg.Directory, cfg.Depth)

	plans := planAll(ctx, cfg, log, files, &stats)
	if ctx.Err() != nil {
		log.Warn("Interrupted before any rename; filesystem untouched")
		return stats
	}
	if len(plans) == 0 {
		log.Info("Nothing to rename")
		return stats
	}

	for _, plan := range plans {
		suffix := ""
		if plan.NeedsConfirm {
			suffix = "  (season or episode is 0)"
		}
		log.Info("Plan: %s%s",
			display.Arrow(filepath.Base(plan.OriginalPath), filepath.Base(plan.NewPath)), suffix)
	}

	if !confirmAdvisories(cfg, log, plans, &stats) {
		return stats
	}

	execute(ctx, cfg, log, plans, &stats)
	logSummary(cfg, log, &stats)
	return stats
}

// planAll computes plans for all files on a pool of cfg.Workers
// goroutines. Every transformation is a pure function, so the only
// coordination is the job and result channels. Results are re-sorted by
// source path so output and execution order are deterministic.
func planAll(ctx context.Context, cfg *config.Config, log *logging.Logger, files []string, stats *RunStats) []transform.Plan {
	jobs := make(chan string)
	results := make(chan planResult)
	opts := cfg.RenderOptions()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				plan, ok, err := transform.BuildPlan(path, cfg.Compiled, cfg.Parsed, opts)
				results <- planResult{path: path, plan: plan, ok: ok, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	resolver := NewCollisionResolver()
	var plans []transform.Plan
	var warnings []planResult
	for r := range results {
		switch {
		case r.err != nil:
			warnings = append(warnings, r)
		case !r.ok:
			stats.NoMatch++
			log.Debug(cfg.Verbose, "No match, skipping: %s", filepath.Base(r.path))
		default:
			plans = append(plans, r.plan)
		}
	}

	sort.Slice(warnings, func(i, j int) bool { return warnings[i].path < warnings[j].path })
	for _, w := range warnings {
		stats.Warned++
		log.Warn("Cannot rename %s: %v", filepath.Base(w.path), w.err)
	}

	sort.Slice(plans, func(i, j int) bool { return plans[i].OriginalPath < plans[j].OriginalPath })
	// Files already sitting at their rendered destination claim it first.
	// A colliding newcomer then gets the dup suffix instead of renaming
	// over the incumbent.
	for i := range plans {
		if plans[i].NewPath == plans[i].OriginalPath {
			plans[i].NewPath = resolver.Resolve(plans[i].OriginalPath, plans[i].NewPath)
		}
	}
	for i := range plans {
		if plans[i].NewPath != plans[i].OriginalPath {
			plans[i].NewPath = resolver.Resolve(plans[i].OriginalPath, plans[i].NewPath)
		}
	}
	stats.Planned = len(plans)
	return plans
}

// confirmAdvisories prompts when any plan carries the advisory flag and
// the user did not pass --yes. Returns false when the batch must be
// abandoned (no rename has happened at this point).
func confirmAdvisories(cfg *config.Config, log *logging.Logger, plans []transform.Plan, stats *RunStats) bool {
	flagged := 0
	for _, plan := range plans {
		if plan.NeedsConfirm {
			flagged++
		}
	}
	if flagged == 0 || cfg.Yes {
		return true
	}

	log.Warn("%s with season or episode 0; this might be unintended",
		display.Pluralize(flagged, "file"))
	if !askConfirmation(os.Stdin, os.Stderr) {
		log.Warn("Aborting as per user request; no files were renamed")
		stats.Aborted = true
		return false
	}
	return true
}

// askConfirmation prints the proceed prompt to w and reads one line from
// r. Only "y" and "yes" (case-insensitive) proceed.
func askConfirmation(r io.Reader, w io.Writer) bool {
	io.WriteString(w, "Do you want to proceed? (y/N): ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// execute performs the renames sequentially. Per-file failures are
// reported and counted but never abort the batch. An interrupt stops
// between files, not mid-rename.
func execute(ctx context.Context, cfg *config.Config, log *logging.Logger, plans []transform.Plan, stats *RunStats) {
	for _, plan := range plans {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			return
		}
		if plan.NewPath == plan.OriginalPath {
			log.Debug(cfg.Verbose, "Already named correctly: %s", filepath.Base(plan.OriginalPath))
			stats.Unchanged++
			continue
		}
		if cfg.DryRun {
			log.Success("[DRY] Would rename %s",
				display.Arrow(filepath.Base(plan.OriginalPath), filepath.Base(plan.NewPath)))
			stats.Renamed++
			continue
		}
		// Never rename over a file that is already there. The resolver
		// only knows about destinations claimed within this batch, not
		// files that sat at a destination before the run started.
		if _, err := os.Stat(plan.NewPath); err == nil {
			log.Warn("Skipping %s: destination %s already exists",
				filepath.Base(plan.OriginalPath), filepath.Base(plan.NewPath))
			stats.Failed++
			continue
		}
		if err := os.Rename(plan.OriginalPath, plan.NewPath); err != nil {
			log.Error("Rename failed for %s: %v", display.ShortPath(plan.OriginalPath, 60), err)
			stats.Failed++
			continue
		}
		log.Success("Renamed %s",
			display.Arrow(filepath.Base(plan.OriginalPath), filepath.Base(plan.NewPath)))
		stats.Renamed++
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	verb := "renamed"
	if cfg.DryRun {
		verb = "previewed (dry run)"
	}
	log.Info("Done: %d %s, %d unchanged, %d failed", stats.Renamed, verb, stats.Unchanged, stats.Failed)
	log.Info("  Skipped (no match): %d, plan warnings: %d", stats.NoMatch, stats.Warned)
}
