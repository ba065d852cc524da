package classify

import (
	"testing"

	"github.com/jonathan/job-autofill/internal/types"
)

func TestClassify_ExactLabelMatch(t *testing.T) {
	c := Classify(types.FieldSignals{Label: "First Name", Type: "text"})

	if c.FieldType != "personalInfo.firstName" {
		t.Fatalf("FieldType = %q, want personalInfo.firstName", c.FieldType)
	}
	if c.Method != types.MethodExactMatch {
		t.Errorf("Method = %q, want %q", c.Method, types.MethodExactMatch)
	}
	if c.Confidence < 0.95 {
		t.Errorf("Confidence = %v, want >= 0.95", c.Confidence)
	}
}

func TestClassify_ExactLabelEqualityClampsAtOne(t *testing.T) {
	// Label base 0.98 plus priority and equality boosts clamps at 1.0.
	c := Classify(types.FieldSignals{Label: "Email Address", Type: "text"})

	if c.FieldType != "personalInfo.email" {
		t.Fatalf("FieldType = %q, want personalInfo.email", c.FieldType)
	}
	if c.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", c.Confidence)
	}
}

func TestClassify_ExactNameAttribute(t *testing.T) {
	c := Classify(types.FieldSignals{Name: "lastname", Type: "text"})

	if c.FieldType != "personalInfo.lastName" {
		t.Fatalf("FieldType = %q, want personalInfo.lastName", c.FieldType)
	}
	if c.Method != types.MethodExactMatch {
		t.Errorf("Method = %q, want %q", c.Method, types.MethodExactMatch)
	}
	if c.Confidence < 0.95 {
		t.Errorf("Confidence = %v, want >= 0.95", c.Confidence)
	}
}

func TestClassify_PatternMatchBand(t *testing.T) {
	// "first" misses every exact keyword but matches the first-name regex.
	c := Classify(types.FieldSignals{Name: "first", Type: "text"})

	if c.FieldType != "personalInfo.firstName" {
		t.Fatalf("FieldType = %q, want personalInfo.firstName", c.FieldType)
	}
	if c.Method != types.MethodPatternMatch {
		t.Errorf("Method = %q, want %q", c.Method, types.MethodPatternMatch)
	}
	if c.Confidence < 0.70 || c.Confidence >= 0.95 {
		t.Errorf("Confidence = %v, want in [0.70, 0.95)", c.Confidence)
	}
}

func TestClassify_AutocompleteHint(t *testing.T) {
	c := Classify(types.FieldSignals{Name: "x1", Autocomplete: "given-name", Type: "text"})

	if c.FieldType != "personalInfo.firstName" {
		t.Fatalf("FieldType = %q, want personalInfo.firstName", c.FieldType)
	}
	if c.Method != types.MethodAutocompleteHint {
		t.Errorf("Method = %q, want %q", c.Method, types.MethodAutocompleteHint)
	}
	if c.Confidence != 0.70 {
		t.Errorf("Confidence = %v, want 0.70", c.Confidence)
	}
}

func TestClassify_TypeHint(t *testing.T) {
	// Both phone fields accept type tel; the primary's higher priority must
	// win the tie so the value resolves against a key profiles actually set.
	c := Classify(types.FieldSignals{Name: "x1", Type: "tel"})

	if c.Method != types.MethodTypeHint {
		t.Fatalf("Method = %q, want %q", c.Method, types.MethodTypeHint)
	}
	if c.FieldType != "personalInfo.phone" {
		t.Errorf("FieldType = %q, want personalInfo.phone", c.FieldType)
	}
	if c.Confidence != 0.60 {
		t.Errorf("Confidence = %v, want 0.60", c.Confidence)
	}
}

func TestClassify_TypeHintDateTies(t *testing.T) {
	// month and date are accepted by the start-date, end-date and graduation
	// entries at equal priority; the earliest registry entry wins.
	for _, inputType := range []string{"month", "date"} {
		c := Classify(types.FieldSignals{Name: "x1", Type: inputType})
		if c.FieldType != "workExperience.startDate" {
			t.Errorf("Classify(type=%q).FieldType = %q, want workExperience.startDate", inputType, c.FieldType)
		}
		if c.Method != types.MethodTypeHint {
			t.Errorf("Classify(type=%q).Method = %q, want %q", inputType, c.Method, types.MethodTypeHint)
		}
	}
}

func TestClassify_AutocompleteBeatsType(t *testing.T) {
	c := Classify(types.FieldSignals{Name: "x1", Type: "tel", Autocomplete: "email"})

	if c.FieldType != "personalInfo.email" {
		t.Errorf("FieldType = %q, want personalInfo.email", c.FieldType)
	}
	if c.Method != types.MethodAutocompleteHint {
		t.Errorf("Method = %q, want %q", c.Method, types.MethodAutocompleteHint)
	}
}

func TestClassify_NoMatch(t *testing.T) {
	c := Classify(types.FieldSignals{Name: "xq9z", ID: "qq-17", Type: "text"})

	if c.FieldType != "" {
		t.Errorf("FieldType = %q, want empty", c.FieldType)
	}
	if c.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", c.Confidence)
	}
	if c.Method != types.MethodNone {
		t.Errorf("Method = %q, want %q", c.Method, types.MethodNone)
	}
	if c.Category() != types.CategoryUnknown {
		t.Errorf("Category = %q, want %q", c.Category(), types.CategoryUnknown)
	}
}

func TestClassify_HighestConfidenceWins(t *testing.T) {
	// The name says company, the label says school; the label-sourced match
	// scores higher and must win.
	c := Classify(types.FieldSignals{Label: "School Name", Name: "company", Type: "text"})

	if c.FieldType != "education.school" {
		t.Errorf("FieldType = %q, want education.school", c.FieldType)
	}
}

func TestClassify_WorkExperienceFields(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Company Name", "workExperience.company"},
		{"Job Title", "workExperience.position"},
		{"Start Date", "workExperience.startDate"},
		{"End Date", "workExperience.endDate"},
	}

	for _, tt := range tests {
		c := Classify(types.FieldSignals{Label: tt.label, Type: "text"})
		if c.FieldType != tt.want {
			t.Errorf("Classify(label=%q).FieldType = %q, want %q", tt.label, c.FieldType, tt.want)
		}
	}
}

func TestStats(t *testing.T) {
	classifications := []types.Classification{
		{FieldType: "personalInfo.email", Confidence: 1.0},
		{FieldType: "personalInfo.firstName", Confidence: 0.85},
		{FieldType: "workExperience.company", Confidence: 0.75},
		{FieldType: "custom.gender", Confidence: 0.45},
		{Method: types.MethodNone},
	}

	stats := Stats(classifications)

	if stats.Total != 5 {
		t.Errorf("Total = %d, want 5", stats.Total)
	}
	if stats.Classified != 4 {
		t.Errorf("Classified = %d, want 4", stats.Classified)
	}
	if stats.Unclassified != 1 {
		t.Errorf("Unclassified = %d, want 1", stats.Unclassified)
	}
	if stats.HighConfidence != 2 {
		t.Errorf("HighConfidence = %d, want 2", stats.HighConfidence)
	}
	if stats.MediumConfidence != 1 {
		t.Errorf("MediumConfidence = %d, want 1", stats.MediumConfidence)
	}
	if stats.LowConfidence != 1 {
		t.Errorf("LowConfidence = %d, want 1", stats.LowConfidence)
	}
	if stats.ByCategory[types.CategoryPersonalInfo] != 2 {
		t.Errorf("ByCategory[personalInfo] = %d, want 2", stats.ByCategory[types.CategoryPersonalInfo])
	}
	if stats.ByCategory[types.CategoryWorkExperience] != 1 {
		t.Errorf("ByCategory[workExperience] = %d, want 1", stats.ByCategory[types.CategoryWorkExperience])
	}
}
