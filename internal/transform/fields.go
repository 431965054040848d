package transform

import "regexp"

// Fields maps a capture-group name to the text it captured in one file name.
// A mapping is built fresh per file and discarded after rendering.
type Fields map[string]string

// Well-known placeholder slots. The renderer and the advisory check branch
// on these constants; every other placeholder name is an ordinary field.
type Slot string

const (
	SlotSeason  Slot = "season"
	SlotEpisode Slot = "episode"
	SlotTitle   Slot = "title"
)

// Extract applies re once to the full file name (extension included) and
// returns the named capture groups that participated in the match. The
// second return is false when the pattern does not match anywhere in the
// name; that is not an error, it means the file is not a rename candidate.
func Extract(re *regexp.Regexp, name string) (Fields, bool) {
	idx := re.FindStringSubmatchIndex(name)
	if idx == nil {
		return nil, false
	}
	fields := make(Fields)
	for i, group := range re.SubexpNames() {
		if group == "" {
			continue
		}
		// idx holds start/end pairs; -1 marks a group that did not participate.
		if start := idx[2*i]; start >= 0 {
			fields[group] = name[start:idx[2*i+1]]
		}
	}
	return fields, true
}
