package transform

// NeedsConfirmation reports whether the extracted fields look suspicious
// enough to warrant human confirmation before renaming: a season or
// episode captured as the literal "0" usually means an unintended match
// or a fallback default. Advisory only; it never blocks processing, and
// no other field contributes.
func NeedsConfirmation(fields Fields) bool {
	return fields[string(SlotSeason)] == "0" || fields[string(SlotEpisode)] == "0"
}
