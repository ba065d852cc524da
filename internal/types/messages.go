package types

// The structs below are the wire shapes of the agent's request/response
// contract, shared by the HTTP server and any in-process caller.

// ProfileResponse answers GET_PROFILE.
type ProfileResponse struct {
	Success bool     `json:"success"`
	Profile *Profile `json:"profile"`
}

// HasProfileResponse answers HAS_PROFILE.
type HasProfileResponse struct {
	Success    bool `json:"success"`
	HasProfile bool `json:"hasProfile"`
}

// CheckFormsResponse is the quick page summary for CHECK_FORMS. No full
// classification state is persisted for it.
type CheckFormsResponse struct {
	Success         bool    `json:"success"`
	HasForm         bool    `json:"hasForm"`
	FormCount       int     `json:"formCount"`
	FieldCount      int     `json:"fieldCount"`
	ClassifiedCount int     `json:"classifiedCount"`
	FormType        string  `json:"formType,omitempty"`
	Confidence      float64 `json:"confidence"`
}

// BestFormSummary describes the form the agent would fill.
type BestFormSummary struct {
	Index    int                 `json:"index"`
	FormType string              `json:"formType"`
	Stats    ClassificationStats `json:"stats"`
	Grouped  map[string]int      `json:"grouped"`
}

// AnalyzeFormsResponse answers ANALYZE_FORMS.
type AnalyzeFormsResponse struct {
	Success   bool             `json:"success"`
	FormCount int              `json:"formCount"`
	BestForm  *BestFormSummary `json:"bestForm,omitempty"`
}

// FillFormResponse answers FILL_FORM.
type FillFormResponse struct {
	Success       bool        `json:"success"`
	FieldsFilled  int         `json:"fieldsFilled"`
	FieldsTotal   int         `json:"fieldsTotal"`
	FieldsSkipped int         `json:"fieldsSkipped"`
	FieldsFailed  int         `json:"fieldsFailed"`
	Message       string      `json:"message,omitempty"`
	Summary       string      `json:"summary,omitempty"`
	Errors        []FillError `json:"errors"`
}

// HighlightResponse answers HIGHLIGHT_FIELDS.
type HighlightResponse struct {
	Success     bool `json:"success"`
	Highlighted int  `json:"highlighted"`
}
