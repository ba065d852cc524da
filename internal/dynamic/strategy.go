package dynamic

import "github.com/jonathan/job-autofill/internal/analyze"

// EntryMatcher selects the fields belonging to one entry from the flat
// document-order list of work-experience fields on the page.
type EntryMatcher interface {
	Window(fields []analyze.ClassifiedField, entry, fieldsPerEntry int) []analyze.ClassifiedField
}

// ContiguousWindows assumes each entry renders as a contiguous block of
// fields in document order, the layout every mainstream applicant tracking
// system uses. Entry i owns fields [i*perEntry, (i+1)*perEntry).
type ContiguousWindows struct{}

func (ContiguousWindows) Window(fields []analyze.ClassifiedField, entry, fieldsPerEntry int) []analyze.ClassifiedField {
	start := entry * fieldsPerEntry
	if start >= len(fields) {
		return nil
	}
	end := start + fieldsPerEntry
	if end > len(fields) {
		end = len(fields)
	}
	return fields[start:end]
}
