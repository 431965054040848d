// Package check implements the --check diagnostics flow: it compiles the
// configured pattern, parses the template, and cross-references the
// pattern's capture groups against the template's placeholders so a user
// can vet a pattern/template pair before running it on real files.
package check

import (
	"regexp"
	"strings"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/transform"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck reports on the configured pattern and template. It returns
// false when either fails to compile or parse; unresolvable placeholders
// and unused capture groups are warnings only.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Pattern & template check ===")

	ok := true
	re := checkPattern(cfg, log)
	if re == nil {
		ok = false
	}
	tmpl := checkTemplate(cfg, log)
	if tmpl == nil {
		ok = false
	}
	if re != nil && tmpl != nil {
		crossReference(cfg, log, re, tmpl)
	}
	return ok
}

// checkPattern compiles the pattern and lists its named capture groups.
func checkPattern(cfg *config.Config, log Logger) *regexp.Regexp {
	if cfg.Pattern == "" {
		log.Error("No pattern configured (-p)")
		return nil
	}
	re, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		log.Error("Pattern does not compile: %v", err)
		return nil
	}
	groups := namedGroups(re)
	if len(groups) == 0 {
		log.Warn("Pattern compiles but has no named capture groups; only defaults and {title} can be rendered")
	} else {
		log.Success("Pattern compiles; named groups: %s", strings.Join(groups, ", "))
	}
	return re
}

// checkTemplate parses the template and lists its placeholders.
func checkTemplate(cfg *config.Config, log Logger) *transform.Template {
	tmpl, err := transform.ParseTemplate(cfg.Template)
	if err != nil {
		log.Error("Template does not parse: %v", err)
		return nil
	}
	placeholders := unique(tmpl.Placeholders())
	if len(placeholders) == 0 {
		log.Warn("Template %q contains no placeholders; every match would render the same name", cfg.Template)
	} else {
		log.Success("Template parses; placeholders: %s", strings.Join(placeholders, ", "))
	}
	return tmpl
}

// crossReference reports, per placeholder, where its value would come
// from, and flags capture groups never used by the template.
func crossReference(cfg *config.Config, log Logger, re *regexp.Regexp, tmpl *transform.Template) {
	groups := make(map[string]bool)
	for _, g := range namedGroups(re) {
		groups[g] = true
	}
	opts := cfg.RenderOptions()

	used := make(map[string]bool)
	for _, name := range unique(tmpl.Placeholders()) {
		used[name] = true
		switch {
		case groups[name]:
			log.Info("  {%s}: captured by the pattern", name)
		case opts.Defaults[name] != "":
			log.Info("  {%s}: falls back to default %q", name, opts.Defaults[name])
		case transform.Slot(name) == transform.SlotTitle:
			log.Info("  {%s}: substitutes the configured title %q", name, cfg.Title)
		case cfg.Unknown == transform.UnknownEmpty:
			log.Warn("  {%s}: unresolvable, renders empty", name)
		default:
			log.Warn("  {%s}: unresolvable, kept verbatim in output", name)
		}
	}

	for _, g := range namedGroups(re) {
		if !used[g] {
			log.Warn("  group %q is captured but never used by the template", g)
		}
	}
}

// namedGroups returns the pattern's named capture groups in definition order.
func namedGroups(re *regexp.Regexp) []string {
	var groups []string
	for _, name := range re.SubexpNames() {
		if name != "" {
			groups = append(groups, name)
		}
	}
	return groups
}

// unique preserves first-seen order.
func unique(in []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
