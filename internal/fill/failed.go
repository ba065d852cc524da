package fill

import (
	"hash/fnv"
	"sync"

	"github.com/jonathan/job-autofill/internal/types"
)

// FailedFields is a session-scoped set of controls that rejected a write.
// Repeat fill passes in the same session consult it to avoid hammering the
// same broken control; it is never persisted.
type FailedFields struct {
	mu  sync.Mutex
	set map[uint64]struct{}
}

// NewFailedFields returns an empty set.
func NewFailedFields() *FailedFields {
	return &FailedFields{set: map[uint64]struct{}{}}
}

// FieldID derives a stable identity for a control from its signals. Two
// controls with identical signals collide, which is acceptable: they would
// fail the same way.
func FieldID(sig types.FieldSignals) uint64 {
	h := fnv.New64a()
	for _, s := range []string{sig.Name, sig.ID, sig.Label, sig.Placeholder, sig.Type} {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Add records a control as failed.
func (f *FailedFields) Add(sig types.FieldSignals) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set[FieldID(sig)] = struct{}{}
}

// Has reports whether a control failed earlier in this session.
func (f *FailedFields) Has(sig types.FieldSignals) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.set[FieldID(sig)]
	return ok
}

// Clear empties the set, typically after the page navigates.
func (f *FailedFields) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set = map[uint64]struct{}{}
}

// Len returns the number of recorded failures.
func (f *FailedFields) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.set)
}
