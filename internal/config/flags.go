package config

// This file implements CLI flag parsing and the config-file/env merge.
// Flags are defined with pflag and bound into a viper instance so a value
// can come from (in order of precedence) the command line, a RENAMER_*
// environment variable, a config file, or the built-in default.

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/backmassage/renamer/internal/transform"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// RENAMER_DEFAULT_SEASON=1.
const EnvPrefix = "RENAMER"

// ParseFlags parses os.Args into cfg, merging a config file and
// environment overrides. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, unreadable config file).
func ParseFlags(cfg *Config, version string) error {
	fs := pflag.NewFlagSet("renamer", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() { printUsage(version) }

	fs.StringP("directory", "d", cfg.Directory, "Directory to process")
	fs.StringP("pattern", "p", cfg.Pattern, "Regex with named groups matching current file names")
	fs.StringP("template", "n", cfg.Template, "New file name template")
	fs.StringSliceP("file-types", "t", cfg.FileTypes, "Comma-separated extensions to process (e.g. mkv,ass,srt)")
	fs.String("default-season", cfg.DefaultSeason, "Season used when the pattern captures none")
	fs.StringP("title", "T", cfg.Title, "Show title for the {title} placeholder")
	fs.Int("depth", cfg.Depth, "Directory recursion depth")
	fs.String("unknown", string(cfg.Unknown), "Unresolvable placeholder policy: keep | empty")
	fs.Bool("dry-run", cfg.DryRun, "Print intended changes without renaming")
	fs.BoolP("yes", "y", cfg.Yes, "Proceed without asking on advisory warnings")
	fs.Bool("watch", cfg.Watch, "Keep running and rename files as they appear")
	fs.IntP("workers", "w", cfg.Workers, "Parallel workers for the planning phase")
	fs.BoolP("verbose", "v", cfg.Verbose, "Verbose output")
	fs.String("color", string(cfg.ColorMode), "Colored logs: auto | always | never")
	fs.StringP("log", "l", cfg.LogFile, "Append logs to file")
	fs.BoolP("check", "c", cfg.CheckOnly, "Diagnose pattern and template, then exit")
	configPath := fs.String("config", "", "Config file to load")
	showVersion := fs.BoolP("version", "V", false, "Print version and exit")
	showHelp := fs.BoolP("help", "h", false, "Show this help and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if *showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if *showVersion {
		fmt.Fprintln(os.Stdout, "renamer v"+version)
		os.Exit(0)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, *configPath); err != nil {
		return err
	}

	cfg.Directory = NormalizeDirArg(v.GetString("directory"))
	cfg.Pattern = v.GetString("pattern")
	cfg.Template = v.GetString("template")
	cfg.FileTypes = normalizeFileTypes(v.GetStringSlice("file-types"))
	cfg.DefaultSeason = v.GetString("default-season")
	cfg.Title = v.GetString("title")
	cfg.Depth = v.GetInt("depth")
	cfg.Unknown = transform.UnknownPolicy(v.GetString("unknown"))
	cfg.DryRun = v.GetBool("dry-run")
	cfg.Yes = v.GetBool("yes")
	cfg.Watch = v.GetBool("watch")
	cfg.Workers = v.GetInt("workers")
	cfg.Verbose = v.GetBool("verbose")
	cfg.ColorMode = ColorMode(v.GetString("color"))
	cfg.LogFile = v.GetString("log")
	cfg.CheckOnly = v.GetBool("check")

	return nil
}

// readConfigFile loads an explicit --config file (must exist) or searches
// the working directory for an optional "renamer" config in any format
// viper understands.
func readConfigFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		return nil
	}
	v.SetConfigName("renamer")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config file: %w", err)
		}
	}
	return nil
}

// normalizeFileTypes flattens comma-separated entries (allowed in config
// files and env vars), trims whitespace, and drops empties.
func normalizeFileTypes(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Renamer v" + version + " — regex-driven batch file renamer"},
		{"", ""},
		{"  renamer [OPTIONS] -d <directory> -p <pattern>", ""},
		{"", ""},
		{"Selection", ""},
		{"  -d, --directory <path>", "Directory to process"},
		{"  -t, --file-types <list>", "Comma-separated extensions (e.g. mkv,ass,srt); empty = all"},
		{"  --depth <n>", "Recursion depth; files directly in the directory are depth 1 (default: 1)"},
		{"", ""},
		{"Naming", ""},
		{"  -p, --pattern <regex>", `Current-name regex with named groups, e.g. "S(?P<season>\d+)E(?P<episode>\d+)"`},
		{"  -n, --template <tmpl>", "New-name template (default: \"" + DefaultTemplate + "\")"},
		{"  -T, --title <name>", "Show title substituted for {title}"},
		{"  --default-season <s>", "Season used when the pattern captures none (default: 1)"},
		{"  --unknown <keep|empty>", "Unresolvable placeholders: keep verbatim or render empty (default: keep)"},
		{"", ""},
		{"Behavior", ""},
		{"  --dry-run", "Print intended changes without renaming"},
		{"  -y, --yes", "Proceed without asking on advisory warnings"},
		{"  --watch", "Keep running and rename files as they appear"},
		{"  -w, --workers <n>", "Parallel workers for the planning phase (default: CPU count)"},
		{"", ""},
		{"Display", ""},
		{"  --color <auto|always|never>", "Colored logs (default: auto)"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "Config file (flags override env, env overrides file)"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Diagnose pattern and template, then exit"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
