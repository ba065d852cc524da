// Package analyze enumerates the forms on a host page, classifies every
// fillable control, and aggregates the results into a fillable plan: per-form
// statistics, category groupings, and an inferred form-purpose label.
package analyze

import (
	"context"
	"log"

	"github.com/jonathan/job-autofill/internal/classify"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/signals"
	"github.com/jonathan/job-autofill/internal/types"
)

// ClassifiedField pairs a live element with its classification.
type ClassifiedField struct {
	Element dom.Element
	types.Classification
}

// FormAnalysis aggregates one form or container. It is recomputed on every
// analysis pass and fully replaced, never merged, when the page mutates.
type FormAnalysis struct {
	Index    int
	FormType string
	Fields   []ClassifiedField
	Stats    types.ClassificationStats
	Grouped  map[string][]ClassifiedField
}

// Options controls analysis behavior.
type Options struct {
	Verbose bool
}

// DetectForms analyzes every <form> on the page. A page without form
// elements is analyzed as one whole-document container, since many modern
// application pages render their fields formless.
func DetectForms(ctx context.Context, doc dom.Document, opts Options) ([]FormAnalysis, error) {
	forms, err := doc.Forms(ctx)
	if err != nil {
		return nil, err
	}

	containers := make([]dom.Container, 0, len(forms))
	containers = append(containers, forms...)
	if len(containers) == 0 {
		root, err := doc.Root(ctx)
		if err != nil {
			return nil, err
		}
		containers = append(containers, root)
	}

	if opts.Verbose {
		log.Printf("[Analyzer] Found %d form container(s) on page", len(containers))
	}

	analyses := make([]FormAnalysis, 0, len(containers))
	for i, container := range containers {
		analysis, err := AnalyzeContainer(ctx, container, i, opts)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	return analyses, nil
}

// AnalyzeContainer classifies the fillable fields of one container and
// computes its aggregate view.
func AnalyzeContainer(ctx context.Context, container dom.Container, index int, opts Options) (FormAnalysis, error) {
	elements, err := FillableFields(ctx, container)
	if err != nil {
		return FormAnalysis{}, err
	}

	fields := make([]ClassifiedField, 0, len(elements))
	classifications := make([]types.Classification, 0, len(elements))
	for _, el := range elements {
		c := classify.Classify(signals.Extract(el))
		fields = append(fields, ClassifiedField{Element: el, Classification: c})
		classifications = append(classifications, c)
	}

	stats := classify.Stats(classifications)
	analysis := FormAnalysis{
		Index:    index,
		Fields:   fields,
		Stats:    stats,
		Grouped:  groupByCategory(fields),
		FormType: InferFormType(stats, classifications),
	}

	if opts.Verbose {
		log.Printf("[Analyzer] Container %d: %d fillable fields, %d classified, type=%s",
			index, stats.Total, stats.Classified, analysis.FormType)
	}
	return analysis, nil
}

// FillableFields filters a container's candidate fields down to the ones
// worth writing: visible, enabled, and not a button-like or file input.
func FillableFields(ctx context.Context, container dom.Container) ([]dom.Element, error) {
	candidates, err := container.Fields(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dom.Element, 0, len(candidates))
	for _, el := range candidates {
		switch el.InputType() {
		case "file", "button", "submit", "reset":
			continue
		}
		if !el.Visible() || !el.Enabled() {
			continue
		}
		out = append(out, el)
	}
	return out, nil
}

func groupByCategory(fields []ClassifiedField) map[string][]ClassifiedField {
	grouped := map[string][]ClassifiedField{}
	for _, f := range fields {
		category := f.Category()
		switch category {
		case types.CategoryPersonalInfo, types.CategoryWorkExperience, types.CategoryEducation,
			types.CategorySkills, types.CategoryCustom, types.CategoryDocuments:
		default:
			category = types.CategoryUnknown
		}
		grouped[category] = append(grouped[category], f)
	}
	return grouped
}

// InferFormType labels a form's purpose from its classification profile.
func InferFormType(stats types.ClassificationStats, classifications []types.Classification) string {
	byCategory := stats.ByCategory

	hasPersonalInfo := byCategory[types.CategoryPersonalInfo] >= 3
	hasWork := byCategory[types.CategoryWorkExperience] >= 1
	hasEducation := byCategory[types.CategoryEducation] >= 1

	if hasPersonalInfo && (hasWork || hasEducation) {
		return types.FormTypeJobApplication
	}

	// Resume uploads and salary questions mark application forms even when
	// the usual section mix is absent.
	for _, c := range classifications {
		if c.FieldType == "documents.resume" || c.FieldType == "custom.salaryExpectation" {
			return types.FormTypeJobApplication
		}
	}

	if hasPersonalInfo && !hasWork && !hasEducation {
		return types.FormTypeContact
	}

	if byCategory[types.CategoryPersonalInfo] > 0 && stats.Total < 10 {
		return types.FormTypeProfile
	}

	return types.FormTypeGeneric
}

// BestForm picks the form worth filling: job-application forms first (most
// classified fields wins), otherwise the form with the most fillable
// fields. Returns nil on a formless page.
func BestForm(analyses []FormAnalysis) *FormAnalysis {
	if len(analyses) == 0 {
		return nil
	}

	var best *FormAnalysis
	for i := range analyses {
		a := &analyses[i]
		if a.FormType != types.FormTypeJobApplication {
			continue
		}
		if best == nil || a.Stats.Classified > best.Stats.Classified {
			best = a
		}
	}
	if best != nil {
		return best
	}

	best = &analyses[0]
	for i := range analyses {
		if len(analyses[i].Fields) > len(best.Fields) {
			best = &analyses[i]
		}
	}
	return best
}

// Summary produces the quick page report behind CHECK_FORMS; nothing from
// it is persisted.
func Summary(ctx context.Context, doc dom.Document, opts Options) (types.CheckFormsResponse, error) {
	analyses, err := DetectForms(ctx, doc, opts)
	if err != nil {
		return types.CheckFormsResponse{}, err
	}

	best := BestForm(analyses)
	if best == nil || best.Stats.Total == 0 {
		return types.CheckFormsResponse{Success: true}, nil
	}

	resp := types.CheckFormsResponse{
		Success:         true,
		HasForm:         true,
		FormCount:       len(analyses),
		FieldCount:      len(best.Fields),
		ClassifiedCount: best.Stats.Classified,
		FormType:        best.FormType,
	}
	if best.Stats.Total > 0 {
		resp.Confidence = float64(best.Stats.HighConfidence) / float64(best.Stats.Total)
	}
	return resp, nil
}
