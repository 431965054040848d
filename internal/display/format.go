package display

import (
	"fmt"
)

// Arrow formats a rename as "old -> new" for plan previews and logs.
func Arrow(from, to string) string {
	return fmt.Sprintf("%s -> %s", from, to)
}

// Pluralize returns "n word" or "n words". Only handles regular plurals,
// which is all the summaries need.
func Pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// ShortPath middle-truncates a path to at most max runes, keeping the
// informative tail. Paths at or under the limit are returned unchanged.
func ShortPath(path string, max int) string {
	if max <= 3 || len(path) <= max {
		return path
	}
	keep := max - 3
	head := keep / 3
	tail := keep - head
	return path[:head] + "..." + path[len(path)-tail:]
}
