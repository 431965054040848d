// Package watch keeps a run alive after the initial batch: it watches the
// target directory tree for new files and renames them as they appear.
// Events are debounced so a burst of writes (a download finishing, a
// torrent client moving files in) results in one pass.
//
// Watch mode is non-interactive: plans that would normally trigger the
// advisory confirmation prompt are skipped with a warning unless the run
// was started with --yes.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/display"
	"github.com/backmassage/renamer/internal/logging"
	"github.com/backmassage/renamer/internal/transform"
)

// debounceDelay is how long after the last event a pass runs.
const debounceDelay = 2 * time.Second

// Service watches the configured directory and renames new arrivals.
type Service struct {
	cfg *config.Config
	log *logging.Logger

	mu       sync.Mutex
	pending  map[string]struct{}
	debounce *time.Timer
}

// New creates a watch service for a validated config.
func New(cfg *config.Config, log *logging.Logger) *Service {
	return &Service{
		cfg:     cfg,
		log:     log,
		pending: make(map[string]struct{}),
	}
}

// Run watches until ctx is cancelled. Directories within the configured
// depth are watched; directories created later are added on the fly.
func (s *Service) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := s.addDirs(watcher, s.cfg.Directory); err != nil {
		return err
	}
	s.log.Info("Watching %s for new files (Ctrl-C to stop)", s.cfg.Directory)

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			if s.debounce != nil {
				s.debounce.Stop()
			}
			s.mu.Unlock()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleEvent(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("Watcher error: %v", err)
		}
	}
}

// addDirs registers root and every subdirectory that can still contain
// eligible files (a directory at the depth limit only holds entries
// beyond it).
func (s *Service) addDirs(watcher *fsnotify.Watcher, root string) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if strings.Count(rel, string(filepath.Separator))+1 >= s.cfg.Depth {
				return filepath.SkipDir
			}
		}
		return watcher.Add(path)
	})
}

// handleEvent queues created or written files for the next debounced pass
// and starts watching newly created directories.
func (s *Service) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	fi, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if fi.IsDir() {
		if event.Op&fsnotify.Create != 0 && s.withinDepth(event.Name, s.cfg.Depth-1) {
			if err := watcher.Add(event.Name); err != nil {
				s.log.Warn("Cannot watch %s: %v", event.Name, err)
			}
		}
		return
	}
	if !fi.Mode().IsRegular() {
		return
	}
	if !s.withinDepth(event.Name, s.cfg.Depth) {
		return
	}
	if !transform.IsEligible(event.Name, s.cfg.FileTypes) {
		return
	}

	s.mu.Lock()
	s.pending[event.Name] = struct{}{}
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(debounceDelay, s.flush)
	s.mu.Unlock()
}

// withinDepth reports whether path is at most maxLevel directory levels
// below the watched root (direct children are level 1).
func (s *Service) withinDepth(path string, maxLevel int) bool {
	rel, err := filepath.Rel(filepath.Clean(s.cfg.Directory), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return strings.Count(rel, string(filepath.Separator))+1 <= maxLevel
}

// flush processes everything queued since the last pass.
func (s *Service) flush() {
	s.mu.Lock()
	paths := make([]string, 0, len(s.pending))
	for p := range s.pending {
		paths = append(paths, p)
	}
	s.pending = make(map[string]struct{})
	s.mu.Unlock()

	sort.Strings(paths)
	for _, path := range paths {
		s.process(path)
	}
}

// process plans and executes the rename for one new arrival.
func (s *Service) process(path string) {
	cfg := s.cfg
	plan, ok, err := transform.BuildPlan(path, cfg.Compiled, cfg.Parsed, cfg.RenderOptions())
	if err != nil {
		s.log.Warn("Cannot rename %s: %v", filepath.Base(path), err)
		return
	}
	if !ok {
		s.log.Debug(cfg.Verbose, "No match, ignoring: %s", filepath.Base(path))
		return
	}
	if plan.NewPath == plan.OriginalPath {
		s.log.Debug(cfg.Verbose, "Already named correctly: %s", filepath.Base(path))
		return
	}
	if plan.NeedsConfirm && !cfg.Yes {
		s.log.Warn("Skipping %s: season or episode is 0 (pass --yes to rename anyway)",
			filepath.Base(path))
		return
	}
	if _, err := os.Stat(plan.NewPath); err == nil {
		s.log.Warn("Skipping %s: destination %s already exists",
			filepath.Base(plan.OriginalPath), filepath.Base(plan.NewPath))
		return
	}
	if cfg.DryRun {
		s.log.Success("[DRY] Would rename %s",
			display.Arrow(filepath.Base(plan.OriginalPath), filepath.Base(plan.NewPath)))
		return
	}
	if err := os.Rename(plan.OriginalPath, plan.NewPath); err != nil {
		s.log.Error("Rename failed for %s: %v", display.ShortPath(plan.OriginalPath, 60), err)
		return
	}
	s.log.Success("Renamed %s",
		display.Arrow(filepath.Base(plan.OriginalPath), filepath.Base(plan.NewPath)))
}
