package transform

import (
	"path/filepath"
	"strings"
)

// EnforceExtension makes the rendered name carry the original file's
// extension, case-folded, no matter what the template produced. Templates
// are not trusted to get extensions right: a differing extension is
// replaced, a missing one appended. An extension-free original leaves the
// rendered name exactly as produced.
func EnforceExtension(rendered, originalName string) string {
	origExt := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if origExt == "" {
		return rendered
	}
	renderedExt := strings.TrimPrefix(filepath.Ext(rendered), ".")
	if renderedExt == "" {
		return rendered + "." + origExt
	}
	if strings.EqualFold(renderedExt, origExt) {
		return rendered
	}
	return strings.TrimSuffix(rendered, "."+renderedExt) + "." + origExt
}
