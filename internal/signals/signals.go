// Package signals derives the textual cue bundle used to classify one form
// control. Label resolution is a strict fallback chain; the first non-empty
// candidate wins. Extraction never fails: a missing attribute or ancestor
// simply yields an empty string for that signal.
package signals

import (
	"strings"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/types"
)

// Extract builds the signal bundle for one element. The bundle is derived
// fresh per classification pass; labels can change under DOM mutation, so
// results must not be cached.
func Extract(el dom.Element) types.FieldSignals {
	return types.FieldSignals{
		Label:        extractLabel(el),
		Placeholder:  el.Attr("placeholder"),
		Name:         el.Attr("name"),
		ID:           el.Attr("id"),
		Type:         el.InputType(),
		Autocomplete: el.Attr("autocomplete"),
		AriaLabel:    el.Attr("aria-label"),
		ClassName:    el.Attr("class"),
		Title:        el.Attr("title"),
	}
}

// extractLabel resolves the element's human label. Priority order: explicit
// for-target label, ancestor label, preceding sibling label, aria-label,
// aria-labelledby target, title, then surrounding parent text with controls
// stripped.
func extractLabel(el dom.Element) string {
	labels := el.Labels()
	for _, candidate := range []string{
		labels.ForLabel,
		labels.AncestorLabel,
		labels.SiblingLabel,
		labels.AriaLabel,
		labels.LabelledBy,
		labels.Title,
		labels.ParentText,
	} {
		if cleaned := CleanLabelText(candidate); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// CleanLabelText strips required-field markers and separators from a raw
// label: asterisks, colons, and runs of whitespace.
func CleanLabelText(text string) string {
	text = strings.ReplaceAll(text, "*", "")
	text = strings.ReplaceAll(text, ":", "")
	return strings.Join(strings.Fields(text), " ")
}
