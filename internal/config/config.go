// Package config holds runtime configuration: defaults, CLI flag parsing
// with config-file and environment merging, and validation. Flag values
// always win over environment variables, which win over the config file,
// which wins over defaults.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"

	"github.com/backmassage/renamer/internal/transform"
)

// DefaultTemplate is the rename template used when none is configured.
const DefaultTemplate = "{title} - S{season:02}E{episode:02}"

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig]
// and then mutated by [ParseFlags] before being passed (by pointer) to
// packages that need it.
type Config struct {
	// What to rename.
	Directory string   // Root directory to process.
	Pattern   string   // Regex with named groups applied to current names.
	Template  string   // New-name template with {name}/{name:width} tokens.
	FileTypes []string // Extension allow-list; empty accepts every file.

	// How to rename.
	DefaultSeason string                  // Fallback season when the pattern captures none. Default: "1".
	Title         string                  // Value for the {title} slot; empty renders nothing.
	Depth         int                     // Traversal depth; files directly in Directory are depth 1.
	Unknown       transform.UnknownPolicy // Unresolvable-placeholder policy. Default: keep.

	// Behavior flags.
	DryRun  bool // Report intended renames without touching the filesystem.
	Yes     bool // Skip the advisory confirmation prompt.
	Watch   bool // Keep running and rename new arrivals as they appear.
	Workers int  // Plan-phase parallelism. Default: NumCPU.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode
	LogFile   string // Optional log file path.
	CheckOnly bool   // Run --check diagnostics and exit.

	// Derived by Validate from Pattern and Template; nil until then.
	Compiled *regexp.Regexp
	Parsed   *transform.Template
}

// DefaultConfig returns a Config with the documented defaults applied.
// Used as the base before [ParseFlags] merges file, env, and CLI values.
func DefaultConfig() Config {
	return Config{
		Template:      DefaultTemplate,
		DefaultSeason: "1",
		Depth:         1,
		Unknown:       transform.UnknownKeep,
		Workers:       runtime.NumCPU(),
		ColorMode:     ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path. The
// filesystem root "/" is returned unchanged so we don't produce an empty
// string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and numeric bounds, then compiles the
// pattern and parses the template, storing both on the Config. Pattern
// and template problems are run-scoped: they abort before any plan is
// built. In CheckOnly mode compilation is left to the diagnostics flow so
// problems are reported one by one instead of failing fast.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch c.Unknown {
	case transform.UnknownKeep, transform.UnknownEmpty:
		// valid
	default:
		return errors.New("invalid unknown-placeholder policy (use 'keep' or 'empty')")
	}

	if c.Depth < 1 {
		return errors.New("depth must be at least 1")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	if c.CheckOnly {
		return nil
	}

	if c.Directory == "" {
		return errors.New("a directory to process is required (-d)")
	}
	if c.Pattern == "" {
		return errors.New("a file name pattern is required (-p)")
	}

	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	c.Compiled = re

	tmpl, err := transform.ParseTemplate(c.Template)
	if err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	c.Parsed = tmpl

	return nil
}

// RenderOptions builds the per-run rendering context handed to the
// transform engine.
func (c *Config) RenderOptions() transform.Options {
	return transform.Options{
		Defaults: map[string]string{
			string(transform.SlotSeason): c.DefaultSeason,
		},
		Title:   c.Title,
		Unknown: c.Unknown,
	}
}
