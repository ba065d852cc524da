package classify

import "github.com/jonathan/job-autofill/internal/types"

// Confidence band boundaries.
const (
	HighConfidence   = 0.8
	MediumConfidence = 0.5
)

// Stats summarizes a classification set by confidence band and category.
func Stats(classifications []types.Classification) types.ClassificationStats {
	stats := types.ClassificationStats{
		Total: len(classifications),
		ByCategory: map[string]int{
			types.CategoryPersonalInfo:   0,
			types.CategoryWorkExperience: 0,
			types.CategoryEducation:      0,
			types.CategorySkills:         0,
			types.CategoryCustom:         0,
			types.CategoryDocuments:      0,
			types.CategoryUnknown:        0,
		},
	}

	for _, c := range classifications {
		if c.FieldType == "" {
			stats.Unclassified++
			stats.ByCategory[types.CategoryUnknown]++
			continue
		}

		stats.Classified++
		category := c.Category()
		if _, known := stats.ByCategory[category]; known {
			stats.ByCategory[category]++
		}

		switch {
		case c.Confidence >= HighConfidence:
			stats.HighConfidence++
		case c.Confidence >= MediumConfidence:
			stats.MediumConfidence++
		default:
			stats.LowConfidence++
		}
	}

	return stats
}
