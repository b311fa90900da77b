package types

// SyncResult reports the outcome of one sync stage. It is produced fresh
// per invocation and never persisted.
type SyncResult struct {
	Synced int      `json:"synced"`
	Errors []string `json:"errors,omitempty"`
}

// AddError appends a human-readable error to the result.
func (r *SyncResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// OK reports whether the stage completed without any errors.
func (r *SyncResult) OK() bool {
	return len(r.Errors) == 0
}

// BackfillResult aggregates the three independent backfill stages.
// Success is true unless something escaped the orchestrator entirely.
type BackfillResult struct {
	Success   bool       `json:"success"`
	Folders   SyncResult `json:"folders"`
	Messages  SyncResult `json:"messages"`
	Calendars SyncResult `json:"calendars"`
}

// TotalErrors counts errors across all three stages.
func (r *BackfillResult) TotalErrors() int {
	return len(r.Folders.Errors) + len(r.Messages.Errors) + len(r.Calendars.Errors)
}
