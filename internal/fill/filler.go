package fill

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jonathan/job-autofill/internal/analyze"
	"github.com/jonathan/job-autofill/internal/resolve"
	"github.com/jonathan/job-autofill/internal/types"
)

// Highlight colors applied during and after filling.
const (
	HighlightSuccess = "#4caf50"
	HighlightFailure = "#f44336"
)

// Options controls a fill session.
type Options struct {
	// Highlight colors each field green on success and red on failure.
	Highlight bool
	// FillDelay is the pause between consecutive field writes.
	FillDelay time.Duration
	Verbose   bool
}

// DefaultOptions returns the fill settings used when callers pass none.
func DefaultOptions() Options {
	return Options{
		Highlight: true,
		FillDelay: 100 * time.Millisecond,
	}
}

// WorkSectionFiller fills the repeating work-experience section, creating
// additional entries on the page as needed. It is injected so the filler
// stays ignorant of add-button mechanics.
type WorkSectionFiller func(ctx context.Context, fields []analyze.ClassifiedField, entries []types.WorkExperience, opts Options) types.FillResult

// Filler writes a profile into an analyzed form.
type Filler struct {
	Opts   Options
	Failed *FailedFields
	// Work handles the work-experience category. When nil, only the first
	// work entry is written into whatever fields already exist.
	Work WorkSectionFiller
}

// NewFiller returns a Filler with a fresh failed-field set.
func NewFiller(opts Options) *Filler {
	return &Filler{Opts: opts, Failed: NewFailedFields()}
}

// FillForm writes profile into the form category by category: personal info
// first, then education, skills, the repeating work section, and finally
// custom questions. Earlier writes settle before later, potentially
// DOM-shifting writes begin.
func (f *Filler) FillForm(ctx context.Context, analysis *analyze.FormAnalysis, profile *types.Profile) types.FillResult {
	var result types.FillResult

	for _, category := range types.Categories {
		group := analysis.Grouped[category]
		if len(group) == 0 {
			continue
		}
		if f.Opts.Verbose {
			log.Printf("[Filler] Filling %d %s field(s)", len(group), category)
		}

		switch category {
		case types.CategoryPersonalInfo:
			result.Merge(f.FillGroup(ctx, group, resolve.PersonalRecord(profile.PersonalInfo)))
		case types.CategoryEducation:
			if len(profile.Education) == 0 {
				result.Merge(skipAll(group))
				continue
			}
			result.Merge(f.FillGroup(ctx, group, resolve.EducationRecord(profile.Education[0])))
		case types.CategorySkills:
			result.Merge(f.FillGroup(ctx, group, resolve.SkillsRecord(profile.Skills)))
		case types.CategoryWorkExperience:
			if len(profile.WorkExperience) == 0 {
				result.Merge(skipAll(group))
				continue
			}
			if f.Work != nil {
				result.Merge(f.Work(ctx, group, profile.WorkExperience, f.Opts))
				continue
			}
			result.Merge(f.FillGroup(ctx, group, resolve.WorkRecord(profile.WorkExperience[0])))
		case types.CategoryCustom, types.CategoryDocuments:
			result.Merge(f.FillGroup(ctx, group, resolve.CustomRecord(profile)))
		}

		if ctx.Err() != nil {
			break
		}
	}

	result.Success = result.Failed == 0
	return result
}

// FillGroup writes one record into a flat group of classified fields.
// Failures are recorded per field and never stop the group; cancellation
// stops it but preserves counts accumulated so far.
func (f *Filler) FillGroup(ctx context.Context, fields []analyze.ClassifiedField, rec resolve.Record) types.FillResult {
	var result types.FillResult

	for _, field := range fields {
		result.Total++

		if f.Failed != nil && f.Failed.Has(field.Signals) {
			result.Skipped++
			continue
		}

		value := resolve.Resolve(field.FieldType, rec)
		if value == "" {
			result.Skipped++
			continue
		}

		if err := Write(ctx, field.Element, value, field.FieldType); err != nil {
			if errors.Is(err, ErrSkipped) {
				result.Skipped++
				continue
			}
			if ctx.Err() != nil {
				return result
			}
			result.Failed++
			result.Errors = append(result.Errors, types.FillError{
				FieldType: field.FieldType,
				Type:      "WRITE_FAILED",
				Message:   err.Error(),
			})
			if f.Failed != nil {
				f.Failed.Add(field.Signals)
			}
			if f.Opts.Highlight {
				if herr := field.Element.Highlight(ctx, HighlightFailure); herr != nil {
					log.Printf("[Filler] Highlight failed for %s: %v", field.FieldType, herr)
				}
			}
			continue
		}

		result.Filled++
		if f.Opts.Highlight {
			if herr := field.Element.Highlight(ctx, HighlightSuccess); herr != nil {
				log.Printf("[Filler] Highlight failed for %s: %v", field.FieldType, herr)
			}
		}

		if err := pause(ctx, f.Opts.FillDelay); err != nil {
			return result
		}
	}

	result.Success = result.Failed == 0
	return result
}

func skipAll(fields []analyze.ClassifiedField) types.FillResult {
	return types.FillResult{
		Success: true,
		Total:   len(fields),
		Skipped: len(fields),
	}
}
