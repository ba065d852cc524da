// Package classify implements the multi-stage field classifier: exact
// keyword matching, regex pattern matching, then type/autocomplete hints,
// each stage tried until one clears its confidence floor. Classification is
// a pure function of the signal bundle and the static pattern registry.
package classify

import (
	"strings"

	"github.com/jonathan/job-autofill/internal/patterns"
	"github.com/jonathan/job-autofill/internal/types"
)

// Stage confidence floors. A stage's best match must clear its floor or the
// next stage runs.
const (
	exactFloor   = 0.9
	patternFloor = 0.7
	hintFloor    = 0.6
)

// Calibration constants for match scoring. The floors above are the
// contract; these magnitudes are tuning values.
const (
	exactBase         = 0.95
	exactLabelBase    = 0.98
	exactBoost        = 0.02
	exactClamp        = 1.0
	patternBase       = 0.80
	patternLabelBase  = 0.85
	patternBoost      = 0.05
	patternClamp      = 0.95
	autocompleteScore = 0.70
	typeScore         = 0.60
	highPriorityFloor = 9
)

// Classify returns the best semantic field-type guess for one signal
// bundle. When no stage clears its floor the result has an empty FieldType,
// zero confidence and method "none"; that is a tolerated miss, not an error.
func Classify(sig types.FieldSignals) types.Classification {
	if match := exactStage(sig); match != nil && match.Confidence >= exactFloor {
		return *match
	}
	if match := patternStage(sig); match != nil && match.Confidence >= patternFloor {
		return *match
	}
	if match := hintStage(sig); match != nil && match.Confidence >= hintFloor {
		return *match
	}
	return types.Classification{Method: types.MethodNone, Signals: sig}
}

// exactSearchTexts orders the candidate texts for keyword matching. The
// label comes first and is the only candidate that earns the label boost.
func exactSearchTexts(sig types.FieldSignals) []string {
	return []string{sig.Label, sig.Placeholder, sig.Name, sig.ID, sig.AriaLabel, sig.Title}
}

func patternSearchTexts(sig types.FieldSignals) []string {
	return []string{sig.Label, sig.Placeholder, sig.Name, sig.ID, sig.AriaLabel}
}

func exactStage(sig types.FieldSignals) *types.Classification {
	var best *types.Classification
	bestPriority := 0

	for _, fieldType := range patterns.FieldTypes() {
		entry, _ := patterns.Get(fieldType)
		if len(entry.Exact) == 0 {
			continue
		}

		for i, text := range exactSearchTexts(sig) {
			if text == "" {
				continue
			}
			lower := strings.ToLower(strings.TrimSpace(text))
			fromLabel := i == 0

			for _, keyword := range entry.Exact {
				kw := strings.ToLower(keyword)
				if lower != kw && !strings.Contains(lower, kw) {
					continue
				}

				confidence := exactBase
				if fromLabel {
					confidence = exactLabelBase
				}
				if entry.Priority >= highPriorityFloor {
					confidence = clamp(confidence+exactBoost, exactClamp)
				}
				if lower == kw {
					confidence = clamp(confidence+exactBoost, exactClamp)
				}

				// Clamping produces ties; a higher-priority field wins them.
				if best == nil || confidence > best.Confidence ||
					(confidence == best.Confidence && entry.Priority > bestPriority) {
					bestPriority = entry.Priority
					best = &types.Classification{
						FieldType:  fieldType,
						Confidence: confidence,
						Method:     types.MethodExactMatch,
						Signals:    sig,
					}
				}
			}
		}
	}

	return best
}

func patternStage(sig types.FieldSignals) *types.Classification {
	var best *types.Classification
	bestPriority := 0

	for _, fieldType := range patterns.FieldTypes() {
		entry, _ := patterns.Get(fieldType)
		if len(entry.Patterns) == 0 {
			continue
		}

		for i, text := range patternSearchTexts(sig) {
			if text == "" {
				continue
			}
			fromLabel := i == 0

			for _, re := range entry.Patterns {
				if !re.MatchString(text) {
					continue
				}

				confidence := patternBase
				if fromLabel {
					confidence = patternLabelBase
				}
				if entry.Priority >= highPriorityFloor {
					confidence = clamp(confidence+patternBoost, patternClamp)
				}

				if best == nil || confidence > best.Confidence ||
					(confidence == best.Confidence && entry.Priority > bestPriority) {
					bestPriority = entry.Priority
					best = &types.Classification{
						FieldType:  fieldType,
						Confidence: confidence,
						Method:     types.MethodPatternMatch,
						Signals:    sig,
					}
				}
			}
		}
	}

	return best
}

// hintStage matches on the autocomplete token or the raw HTML input type.
// Autocomplete scores higher, so it wins whenever both match. Hints are
// shared between entries (tel covers both phone fields), so ties here are
// common and the priority tie-break decides them, same as the other stages.
func hintStage(sig types.FieldSignals) *types.Classification {
	var best *types.Classification
	bestPriority := 0

	for _, fieldType := range patterns.FieldTypes() {
		entry, _ := patterns.Get(fieldType)

		if sig.Autocomplete != "" && entry.HasAutocomplete(sig.Autocomplete) {
			if best == nil || autocompleteScore > best.Confidence ||
				(autocompleteScore == best.Confidence && entry.Priority > bestPriority) {
				bestPriority = entry.Priority
				best = &types.Classification{
					FieldType:  fieldType,
					Confidence: autocompleteScore,
					Method:     types.MethodAutocompleteHint,
					Signals:    sig,
				}
			}
		}

		if sig.Type != "" && entry.HasType(sig.Type) {
			if best == nil || typeScore > best.Confidence ||
				(typeScore == best.Confidence && entry.Priority > bestPriority) {
				bestPriority = entry.Priority
				best = &types.Classification{
					FieldType:  fieldType,
					Confidence: typeScore,
					Method:     types.MethodTypeHint,
					Signals:    sig,
				}
			}
		}
	}

	return best
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}
