package fill

import (
	"context"

	"github.com/jonathan/job-autofill/internal/analyze"
	"github.com/jonathan/job-autofill/internal/classify"
)

// Confidence-band colors used by the debug highlighter.
const (
	HighlightHigh         = "#4caf50"
	HighlightMedium       = "#ff9800"
	HighlightLow          = "#ffeb3b"
	HighlightUnclassified = "#f44336"
)

// ConfidenceColor maps a classification to its highlight color.
func ConfidenceColor(fieldType string, confidence float64) string {
	switch {
	case fieldType == "":
		return HighlightUnclassified
	case confidence >= classify.HighConfidence:
		return HighlightHigh
	case confidence >= classify.MediumConfidence:
		return HighlightMedium
	default:
		return HighlightLow
	}
}

// HighlightFields colors every analyzed field by classification confidence,
// a visual debugging aid for tuning the pattern registry against real
// application pages. Returns the number of fields highlighted.
func HighlightFields(ctx context.Context, analyses []analyze.FormAnalysis) (int, error) {
	count := 0
	for _, a := range analyses {
		for _, field := range a.Fields {
			color := ConfidenceColor(field.FieldType, field.Confidence)
			if err := field.Element.Highlight(ctx, color); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
