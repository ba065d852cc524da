// Package dynamic fills repeating form sections that grow through an "add
// another" affordance. It clicks the add control, waits for the page to
// render the new entry's fields, and fills each entry's contiguous window of
// controls in turn.
package dynamic

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jonathan/job-autofill/internal/analyze"
	"github.com/jonathan/job-autofill/internal/classify"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/fill"
	"github.com/jonathan/job-autofill/internal/resolve"
	"github.com/jonathan/job-autofill/internal/signals"
	"github.com/jonathan/job-autofill/internal/types"
)

// AddButtonKeywords are the texts scanned for on clickable nodes to find the
// control that appends another entry, matched case-insensitively.
var AddButtonKeywords = []string{
	"add another",
	"add more",
	"add position",
	"add job",
	"add work",
	"add experience",
	"add entry",
	"add employment",
	"+ add",
	"add new",
	"add additional",
}

const (
	// DefaultMaxEntries caps how many entries one session will create.
	// Profiles longer than this fill only their most recent entries' worth.
	DefaultMaxEntries = 5
	// DefaultRetryAttempts bounds both the add-click retries and the polls
	// for new fields after a successful click.
	DefaultRetryAttempts = 3

	preClickPause  = 200 * time.Millisecond
	postClickWait  = 500 * time.Millisecond
	clickRetryWait = 1 * time.Second
	pollInterval   = 1 * time.Second
	entryDelay     = 300 * time.Millisecond
)

// Handler fills the repeating work-experience section of a page.
type Handler struct {
	Doc     dom.Document
	Filler  *fill.Filler
	Matcher EntryMatcher
	// MaxEntries caps the entries created per session; zero means
	// DefaultMaxEntries.
	MaxEntries int
	// RetryAttempts bounds add-click retries and new-field polls; zero means
	// DefaultRetryAttempts.
	RetryAttempts int
	Verbose       bool
}

// NewHandler returns a Handler with the contiguous-window entry matcher and
// the default entry cap and retry budget.
func NewHandler(doc dom.Document, filler *fill.Filler) *Handler {
	return &Handler{
		Doc:           doc,
		Filler:        filler,
		Matcher:       ContiguousWindows{},
		MaxEntries:    DefaultMaxEntries,
		RetryAttempts: DefaultRetryAttempts,
	}
}

func (h *Handler) maxEntries() int {
	if h.MaxEntries > 0 {
		return h.MaxEntries
	}
	return DefaultMaxEntries
}

func (h *Handler) retryAttempts() int {
	if h.RetryAttempts > 0 {
		return h.RetryAttempts
	}
	return DefaultRetryAttempts
}

// FillWorkSection fills up to MaxEntries work-experience entries. The
// fields argument is the section's currently rendered controls and sets the
// per-entry field count. A failure to create entry i aborts the remaining
// entries but keeps everything filled so far.
func (h *Handler) FillWorkSection(ctx context.Context, fields []analyze.ClassifiedField, entries []types.WorkExperience, opts fill.Options) types.FillResult {
	var result types.FillResult

	fieldsPerEntry := len(fields)
	if fieldsPerEntry == 0 || len(entries) == 0 {
		result.Success = true
		return result
	}

	n := len(entries)
	if limit := h.maxEntries(); n > limit {
		log.Printf("[Dynamic] Capping work entries at %d of %d", limit, n)
		n = limit
	}

	current := fields
	for i := 0; i < n; i++ {
		if i > 0 {
			grown, err := h.addEntry(ctx, fieldsPerEntry*(i+1))
			if err != nil {
				log.Printf("[Dynamic] Could not create entry %d: %v", i+1, err)
				result.Failed++
				result.Errors = append(result.Errors, types.FillError{
					Entry:   i + 1,
					Type:    "DYNAMIC_SECTION_FAILED",
					Message: err.Error(),
				})
				break
			}
			current = grown
		}

		window := h.Matcher.Window(current, i, fieldsPerEntry)
		if len(window) == 0 {
			result.Failed++
			result.Errors = append(result.Errors, types.FillError{
				Entry:   i + 1,
				Type:    "DYNAMIC_SECTION_FAILED",
				Message: "no fields rendered for entry",
			})
			break
		}

		if h.Verbose {
			log.Printf("[Dynamic] Filling entry %d/%d (%d fields)", i+1, n, len(window))
		}
		entryResult := h.Filler.FillGroup(ctx, window, resolve.WorkRecord(entries[i]))
		result.Merge(entryResult)
		result.EntriesCreated++

		if ctx.Err() != nil {
			break
		}
		if i < n-1 {
			if err := sleep(ctx, entryDelay); err != nil {
				break
			}
		}
	}

	result.Success = result.Failed == 0
	return result
}

// addEntry clicks the add control, retrying failed clicks, and waits until
// the section has grown to at least want fields, returning the fresh field
// list.
func (h *Handler) addEntry(ctx context.Context, want int) ([]analyze.ClassifiedField, error) {
	button, err := h.findAddButton(ctx)
	if err != nil {
		return nil, err
	}
	if button == nil {
		return nil, &fill.WriteError{FieldType: types.CategoryWorkExperience, Message: "no add-entry button found"}
	}

	attempts := h.retryAttempts()
	var clickErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, clickRetryWait); err != nil {
				return nil, err
			}
		}
		clickErr = h.clickAdd(ctx, button)
		if clickErr == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("[Dynamic] Add click attempt %d/%d failed: %v", attempt+1, attempts, clickErr)
	}
	if clickErr != nil {
		return nil, clickErr
	}

	// New fields render asynchronously; poll a bounded number of times.
	for attempt := 0; attempt < attempts; attempt++ {
		fields, err := h.collectWorkFields(ctx)
		if err != nil {
			return nil, err
		}
		if len(fields) >= want {
			return fields, nil
		}
		if err := sleep(ctx, pollInterval); err != nil {
			return nil, err
		}
	}
	return nil, &fill.WriteError{
		FieldType: types.CategoryWorkExperience,
		Message:   "new entry fields did not appear after add click",
	}
}

// clickAdd performs one scroll-highlight-click cycle on the add control.
func (h *Handler) clickAdd(ctx context.Context, button dom.Element) error {
	if err := button.ScrollIntoView(ctx); err != nil {
		return err
	}
	if err := sleep(ctx, preClickPause); err != nil {
		return err
	}
	if err := button.Highlight(ctx, fill.HighlightMedium); err != nil {
		log.Printf("[Dynamic] Highlighting add button failed: %v", err)
	}
	if err := button.Click(ctx); err != nil {
		return err
	}
	return sleep(ctx, postClickWait)
}

// findAddButton scans the page's clickable nodes for add-entry wording.
func (h *Handler) findAddButton(ctx context.Context) (dom.Element, error) {
	clickables, err := h.Doc.Clickables(ctx)
	if err != nil {
		return nil, err
	}
	for _, el := range clickables {
		if !el.Visible() || !el.Enabled() {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(el.Text()))
		if text == "" {
			continue
		}
		for _, keyword := range AddButtonKeywords {
			if strings.Contains(text, keyword) {
				return el, nil
			}
		}
	}
	return nil, nil
}

// collectWorkFields re-enumerates and re-classifies the page's fields,
// keeping the visible work-experience ones in document order. Stale element
// handles from before the add click are never reused.
func (h *Handler) collectWorkFields(ctx context.Context) ([]analyze.ClassifiedField, error) {
	elements, err := h.Doc.Fields(ctx)
	if err != nil {
		return nil, err
	}

	var out []analyze.ClassifiedField
	for _, el := range elements {
		switch el.InputType() {
		case "file", "button", "submit", "reset":
			continue
		}
		if !el.Visible() || !el.Enabled() {
			continue
		}
		c := classify.Classify(signals.Extract(el))
		if c.Category() != types.CategoryWorkExperience {
			continue
		}
		out = append(out, analyze.ClassifiedField{Element: el, Classification: c})
	}
	return out, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
