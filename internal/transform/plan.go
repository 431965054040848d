package transform

import (
	"path/filepath"
	"regexp"
)

// Plan is the computed rename for one file, prior to any execution. The
// original path is the authoritative identity; the new path is derived
// and lives in the same directory.
type Plan struct {
	OriginalPath string
	NewPath      string
	// NeedsConfirm is the advisory flag: the extracted fields look
	// suspicious and the driver should ask before committing the batch.
	NeedsConfirm bool
}

// BuildPlan computes the rename plan for one path. The pattern is applied
// to the base name only. Returns ok=false when the pattern does not match
// (skip the file silently). A non-nil error means rendering failed for
// this file (e.g. a negative value under zero-padding); the caller should
// warn and continue with the rest of the batch.
func BuildPlan(path string, re *regexp.Regexp, tmpl *Template, opts Options) (Plan, bool, error) {
	name := filepath.Base(path)
	fields, ok := Extract(re, name)
	if !ok {
		return Plan{}, false, nil
	}
	rendered, err := tmpl.Render(fields, opts)
	if err != nil {
		return Plan{}, false, err
	}
	newName := EnforceExtension(rendered, name)
	return Plan{
		OriginalPath: path,
		NewPath:      filepath.Join(filepath.Dir(path), newName),
		NeedsConfirm: NeedsConfirmation(fields),
	}, true, nil
}
