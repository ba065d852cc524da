package types

// Field categories form the first segment of a semantic field type key.
const (
	CategoryPersonalInfo   = "personalInfo"
	CategoryWorkExperience = "workExperience"
	CategoryEducation      = "education"
	CategorySkills         = "skills"
	CategoryCustom         = "custom"
	CategoryDocuments      = "documents"
	CategoryUnknown        = "unknown"
)

// Categories lists the known field categories in fill order: side effects of
// earlier writes settle before later, potentially DOM-shifting writes begin.
var Categories = []string{
	CategoryPersonalInfo,
	CategoryEducation,
	CategorySkills,
	CategoryWorkExperience,
	CategoryCustom,
	CategoryDocuments,
}

// Classification methods, in decreasing order of authority.
const (
	MethodExactMatch       = "exact-match"
	MethodPatternMatch     = "pattern-match"
	MethodAutocompleteHint = "autocomplete-hint"
	MethodTypeHint         = "type-hint"
	MethodNone             = "none"
)

// FieldSignals is the bundle of textual and structural cues extracted from
// one form control. It is derived fresh per classification pass and never
// cached across DOM mutations.
type FieldSignals struct {
	Label        string `json:"label"`
	Placeholder  string `json:"placeholder"`
	Name         string `json:"name"`
	ID           string `json:"id"`
	Type         string `json:"type"`
	Autocomplete string `json:"autocomplete"`
	AriaLabel    string `json:"ariaLabel"`
	ClassName    string `json:"className"`
	Title        string `json:"title"`
}

// Classification is the classifier's verdict for one field. FieldType is
// empty when no stage cleared its confidence floor.
type Classification struct {
	FieldType  string       `json:"fieldType,omitempty"`
	Confidence float64      `json:"confidence"`
	Method     string       `json:"method"`
	Signals    FieldSignals `json:"signals"`
}

// Category returns the first dotted segment of the field type, or "unknown"
// for unclassified fields.
func (c Classification) Category() string {
	if c.FieldType == "" {
		return CategoryUnknown
	}
	for i := 0; i < len(c.FieldType); i++ {
		if c.FieldType[i] == '.' {
			return c.FieldType[:i]
		}
	}
	return c.FieldType
}

// ClassificationStats summarizes a set of classifications by confidence band
// and category. Bands: high >= 0.8, medium 0.5-0.8, low < 0.5.
type ClassificationStats struct {
	Total            int            `json:"total"`
	Classified       int            `json:"classified"`
	Unclassified     int            `json:"unclassified"`
	HighConfidence   int            `json:"highConfidence"`
	MediumConfidence int            `json:"mediumConfidence"`
	LowConfidence    int            `json:"lowConfidence"`
	ByCategory       map[string]int `json:"byCategory"`
}

// Form type labels inferred by the analyzer.
const (
	FormTypeJobApplication = "job-application"
	FormTypeContact        = "contact"
	FormTypeProfile        = "profile"
	FormTypeGeneric        = "generic"
)
