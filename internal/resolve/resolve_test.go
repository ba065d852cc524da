package resolve

import (
	"testing"

	"github.com/jonathan/job-autofill/internal/types"
)

func TestResolve_DirectLookup(t *testing.T) {
	rec := PersonalRecord(map[string]string{
		"firstName": "Jane",
		"lastName":  "Doe",
		"email":     "jane@example.com",
		"phone":     "5551234567",
	})

	if got := Resolve("personalInfo.firstName", rec); got != "Jane" {
		t.Errorf("firstName = %q, want Jane", got)
	}
	if got := Resolve("personalInfo.email", rec); got != "jane@example.com" {
		t.Errorf("email = %q", got)
	}
	if got := Resolve("personalInfo.phone", rec); got != "(555) 123-4567" {
		t.Errorf("phone = %q, want formatted number", got)
	}
	if got := Resolve("personalInfo.city", rec); got != "" {
		t.Errorf("missing key = %q, want empty", got)
	}
	if got := Resolve("", rec); got != "" {
		t.Errorf("empty field type = %q, want empty", got)
	}
}

func TestResolve_FullName(t *testing.T) {
	rec := PersonalRecord(map[string]string{"firstName": "Jane", "lastName": "Doe"})
	if got := Resolve("personalInfo.fullName", rec); got != "Jane Doe" {
		t.Errorf("fullName = %q, want Jane Doe", got)
	}

	rec = PersonalRecord(map[string]string{"firstName": "Jane"})
	if got := Resolve("personalInfo.fullName", rec); got != "Jane" {
		t.Errorf("partial fullName = %q, want Jane", got)
	}

	if got := Resolve("personalInfo.fullName", Record{}); got != "" {
		t.Errorf("empty fullName = %q, want empty", got)
	}
}

func TestResolve_Address(t *testing.T) {
	rec := PersonalRecord(map[string]string{
		"city": "Portland", "state": "OR", "zipCode": "97201",
	})
	if got := Resolve("personalInfo.address", rec); got != "Portland, OR 97201" {
		t.Errorf("address = %q", got)
	}

	if got := Resolve("personalInfo.address", Record{}); got != "" {
		t.Errorf("empty address = %q, want empty", got)
	}
}

func TestResolve_DateRange(t *testing.T) {
	current := WorkRecord(types.WorkExperience{StartDate: "2020-01", Current: true})
	if got := Resolve("workExperience.dateRange", current); got != "2020-01 - Present" {
		t.Errorf("current range = %q", got)
	}

	ended := WorkRecord(types.WorkExperience{StartDate: "2020-01", EndDate: "2023-06"})
	if got := Resolve("workExperience.dateRange", ended); got != "2020-01 - 2023-06" {
		t.Errorf("ended range = %q", got)
	}

	if got := Resolve("workExperience.dateRange", WorkRecord(types.WorkExperience{})); got != "" {
		t.Errorf("no start date = %q, want empty", got)
	}
}

func TestResolve_WorkDates(t *testing.T) {
	rec := WorkRecord(types.WorkExperience{StartDate: "Jan 2020", EndDate: "2023-06"})
	if got := Resolve("workExperience.startDate", rec); got != "2020-01-01" {
		t.Errorf("startDate = %q, want 2020-01-01", got)
	}
	if got := Resolve("workExperience.endDate", rec); got != "2023-06-01" {
		t.Errorf("endDate = %q, want 2023-06-01", got)
	}
}

func TestResolve_CustomDefaults(t *testing.T) {
	rec := CustomRecord(types.NewProfile())
	tests := []struct {
		fieldType string
		want      string
	}{
		{"custom.referralSource", "Online Job Board"},
		{"custom.willingToRelocate", "Yes"},
		{"custom.workAuthorization", "Yes"},
		{"custom.sponsorship", "No"},
		{"custom.requiresSponsorship", "No"},
		{"custom.somethingElse", ""},
	}
	for _, tt := range tests {
		if got := Resolve(tt.fieldType, rec); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.fieldType, got, tt.want)
		}
	}
}

func TestResolve_CoverLetter(t *testing.T) {
	p := types.NewProfile()
	p.Skills.Summary = "Seasoned engineer with a focus on infrastructure."
	if got := Resolve("custom.coverLetter", CustomRecord(p)); got != p.Skills.Summary {
		t.Errorf("coverLetter = %q", got)
	}

	if got := Resolve("custom.coverLetter", CustomRecord(nil)); got != "" {
		t.Errorf("nil profile coverLetter = %q, want empty", got)
	}
}

func TestResolve_SkillsList(t *testing.T) {
	rec := SkillsRecord(types.Skills{Technical: []string{"Go", "SQL", "Kubernetes"}})
	if got := Resolve("skills.technical", rec); got != "Go, SQL, Kubernetes" {
		t.Errorf("technical = %q", got)
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(true, "workExperience.current"); got != "Yes" {
		t.Errorf("bool true = %q, want Yes", got)
	}
	if got := FormatValue(false, "workExperience.current"); got != "No" {
		t.Errorf("bool false = %q, want No", got)
	}
	if got := FormatValue([]string{"a", "b"}, "skills.technical"); got != "a, b" {
		t.Errorf("slice = %q, want a, b", got)
	}
	if got := FormatValue(nil, "x"); got != "" {
		t.Errorf("nil = %q, want empty", got)
	}
	if got := FormatValue(3, "x"); got != "3" {
		t.Errorf("int = %q, want 3", got)
	}
	if got := FormatValue("Jan 2021", "education.graduationDate"); got != "2021-01-01" {
		t.Errorf("graduation date = %q, want 2021-01-01", got)
	}
}
