package types

// FillError describes one failed field or entry inside an aggregate fill.
// It carries the offending field type and message, never a raw error value.
type FillError struct {
	Entry     int    `json:"entry,omitempty"`
	FieldType string `json:"fieldType,omitempty"`
	Type      string `json:"type,omitempty"`
	Message   string `json:"message"`
}

// FillResult aggregates one fill session. A failure at one step never
// retroactively invalidates already-filled fields, so partial counts are
// meaningful even when Success is false.
type FillResult struct {
	Success        bool        `json:"success"`
	Total          int         `json:"total"`
	Filled         int         `json:"filled"`
	Skipped        int         `json:"skipped"`
	Failed         int         `json:"failed"`
	Errors         []FillError `json:"errors"`
	EntriesCreated int         `json:"entriesCreated,omitempty"`
}

// Merge folds another result's counts and errors into r. Success is not
// merged; session-level success is decided by the caller.
func (r *FillResult) Merge(other FillResult) {
	r.Total += other.Total
	r.Filled += other.Filled
	r.Skipped += other.Skipped
	r.Failed += other.Failed
	r.Errors = append(r.Errors, other.Errors...)
	r.EntriesCreated += other.EntriesCreated
}
