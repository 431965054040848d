package transform

import (
	"path/filepath"
	"strings"
)

// IsEligible reports whether a path's extension belongs to the allow-list,
// case-insensitively. An empty allow-list accepts every file; a non-empty
// one rejects paths with no extension. Entries may be given with or
// without a leading dot.
func IsEligible(path string, allowList []string) bool {
	if len(allowList) == 0 {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range allowList {
		if strings.EqualFold(ext, strings.TrimPrefix(allowed, ".")) {
			return true
		}
	}
	return false
}
