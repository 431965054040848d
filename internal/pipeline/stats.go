package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Found     int  // Eligible files discovered.
	Planned   int  // Plans computed (pattern matched, name rendered).
	NoMatch   int  // Files the pattern did not match (skipped silently).
	Warned    int  // Files whose plan failed to render (e.g. negative value).
	Unchanged int  // Plans whose destination equals the source.
	Renamed   int  // Renames executed (or previewed in dry-run mode).
	Failed    int  // Renames the filesystem refused.
	Aborted   bool // User declined the advisory confirmation.
}
