package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// placeholderRe matches {identifier} and {identifier:width} tokens. The
// identifier is a run of word characters; anything else between braces is
// literal text and must round-trip through rendering unchanged.
var placeholderRe = regexp.MustCompile(`\{(\w+)(?::(\d+))?\}`)

// UnknownPolicy decides what the renderer does with a placeholder that has
// no captured value, no default, and is not the title slot.
type UnknownPolicy string

const (
	// UnknownKeep leaves the placeholder in the output verbatim, brace
	// syntax and all (default).
	UnknownKeep UnknownPolicy = "keep"
	// UnknownEmpty renders the placeholder as an empty string.
	UnknownEmpty UnknownPolicy = "empty"
)

// Options carries the caller-supplied rendering context shared by every
// file in a run.
type Options struct {
	// Defaults supplies fallback values by field name (e.g. a default
	// season) used when the pattern did not capture the field. Defaults
	// honor the same width and negative-value rules as captured values.
	Defaults map[string]string
	// Title substitutes the reserved {title} slot verbatim. Width
	// specifiers do not apply to the title slot.
	Title string
	// Unknown is the policy for unresolvable placeholders. The zero value
	// behaves like UnknownKeep.
	Unknown UnknownPolicy
}

// segment is one literal or placeholder span of a parsed template.
type segment struct {
	raw      string // original text, emitted for literals and kept-unknowns
	name     string // placeholder name; empty for literal segments
	width    int
	hasWidth bool
}

// Template is a parsed rename template, immutable and reusable across
// files and goroutines.
type Template struct {
	raw      string
	segments []segment
}

// ParseTemplate parses a template string once, up front. A width specifier
// that does not fit in an int is a configuration error and aborts the run
// before any file is processed.
func ParseTemplate(raw string) (*Template, error) {
	t := &Template{raw: raw}
	last := 0
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(raw, -1) {
		if m[0] > last {
			t.segments = append(t.segments, segment{raw: raw[last:m[0]]})
		}
		seg := segment{
			raw:  raw[m[0]:m[1]],
			name: raw[m[2]:m[3]],
		}
		if m[4] >= 0 {
			width, err := strconv.Atoi(raw[m[4]:m[5]])
			if err != nil {
				return nil, fmt.Errorf("template %q: bad width in %s: %w", raw, seg.raw, err)
			}
			seg.width = width
			seg.hasWidth = true
		}
		t.segments = append(t.segments, seg)
		last = m[1]
	}
	if last < len(raw) {
		t.segments = append(t.segments, segment{raw: raw[last:]})
	}
	return t, nil
}

// String returns the original template text.
func (t *Template) String() string { return t.raw }

// Placeholders returns the placeholder names in template order, repeats
// included.
func (t *Template) Placeholders() []string {
	var names []string
	for _, seg := range t.segments {
		if seg.name != "" {
			names = append(names, seg.name)
		}
	}
	return names
}

// Render substitutes placeholders left to right and returns the rendered
// base name. Resolution order per placeholder: captured field, declared
// default, the reserved title slot, then the unknown-placeholder policy.
// A NegativeValueError aborts rendering for this file only.
func (t *Template) Render(fields Fields, opts Options) (string, error) {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.name == "" {
			b.WriteString(seg.raw)
			continue
		}
		if value, ok := fields[seg.name]; ok {
			formatted, err := formatValue(seg, value)
			if err != nil {
				return "", err
			}
			b.WriteString(formatted)
			continue
		}
		if value, ok := opts.Defaults[seg.name]; ok {
			formatted, err := formatValue(seg, value)
			if err != nil {
				return "", err
			}
			b.WriteString(formatted)
			continue
		}
		if Slot(seg.name) == SlotTitle {
			b.WriteString(opts.Title)
			continue
		}
		if opts.Unknown != UnknownEmpty {
			b.WriteString(seg.raw)
		}
	}
	return b.String(), nil
}

// formatValue applies the width rules to one placeholder value. Values
// made entirely of digits are zero-padded to at least width digits (never
// truncated); everything else is space-padded to at least width runes, so
// an explicit sign is never silently dropped. A leading minus sign under
// a width request is refused rather than silently rendered as a
// plausible-looking padded number.
func formatValue(seg segment, value string) (string, error) {
	if !seg.hasWidth {
		return value, nil
	}
	if strings.HasPrefix(value, "-") {
		return "", &NegativeValueError{Field: seg.name, Value: value}
	}
	if isDigits(value) {
		if n, err := strconv.Atoi(value); err == nil {
			return fmt.Sprintf("%0*d", seg.width, n), nil
		}
	}
	return fmt.Sprintf("%*s", seg.width, value), nil
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
