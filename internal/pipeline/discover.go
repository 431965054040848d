package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/renamer/internal/transform"
)

// Discover walks root up to depth directory levels (files directly in
// root are depth 1), keeps regular files whose extension passes the
// allow-list, and returns the paths sorted lexicographically for
// deterministic processing order.
func Discover(root string, depth int, allowList []string) ([]string, error) {
	root = filepath.Clean(root)
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		level := strings.Count(rel, string(filepath.Separator)) + 1
		if d.IsDir() {
			// A directory at the depth limit only contains entries beyond it.
			if level >= depth {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if level <= depth && transform.IsEligible(path, allowList) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
