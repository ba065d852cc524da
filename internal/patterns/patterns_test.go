package patterns

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	entry, ok := Get("personalInfo.email")
	if !ok {
		t.Fatal("personalInfo.email not registered")
	}
	if entry.Priority != 10 {
		t.Errorf("Priority = %d, want 10", entry.Priority)
	}
	if !entry.HasType("email") {
		t.Error("HasType(email) = false, want true")
	}
	if !entry.HasAutocomplete("email") {
		t.Error("HasAutocomplete(email) = false, want true")
	}

	if _, ok := Get("personalInfo.nope"); ok {
		t.Error("Get returned ok for unregistered field type")
	}
}

func TestFieldTypes_DeclarationOrder(t *testing.T) {
	types := FieldTypes()
	if len(types) != len(All()) {
		t.Fatalf("FieldTypes returned %d entries, registry has %d", len(types), len(All()))
	}
	for k := range All() {
		if indexOf(types, k) == -1 {
			t.Errorf("registered field type %q missing from FieldTypes order", k)
		}
	}

	// The order breaks classifier ties: work-experience entries come before
	// education entries so ambiguous date labels resolve to the work section,
	// start dates come before end dates, and the primary phone before its
	// alternate.
	ordered := [][2]string{
		{"personalInfo.firstName", "workExperience.company"},
		{"personalInfo.phone", "personalInfo.alternatePhone"},
		{"workExperience.startDate", "workExperience.endDate"},
		{"workExperience.endDate", "education.graduationDate"},
	}
	for _, pair := range ordered {
		before, after := indexOf(types, pair[0]), indexOf(types, pair[1])
		if before == -1 || after == -1 {
			t.Fatalf("expected field types %v missing from registry", pair)
		}
		if before > after {
			t.Errorf("%s at %d after %s at %d", pair[0], before, pair[1], after)
		}
	}
}

func TestByCategory(t *testing.T) {
	personal := ByCategory("personalInfo")
	if len(personal) == 0 {
		t.Fatal("ByCategory(personalInfo) is empty")
	}
	for _, ft := range personal {
		if !strings.HasPrefix(ft, "personalInfo.") {
			t.Errorf("ByCategory(personalInfo) returned %q", ft)
		}
	}
}

func TestPatternsCompileAndMatch(t *testing.T) {
	entry, _ := Get("personalInfo.firstName")
	matched := false
	for _, re := range entry.Patterns {
		if re.MatchString("f_name") {
			matched = true
		}
	}
	if !matched {
		t.Error("no firstName pattern matches f_name")
	}
}

func indexOf(items []string, want string) int {
	for i, item := range items {
		if item == want {
			return i
		}
	}
	return -1
}
