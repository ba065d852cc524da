package fill

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/job-autofill/internal/dom"
)

func pageField(t *testing.T, rawHTML, name string) (*dom.Page, dom.Element) {
	t.Helper()
	page, err := dom.NewPage(rawHTML)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	fields, err := page.Fields(context.Background())
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	for _, f := range fields {
		if f.Attr("name") == name {
			return page, f
		}
	}
	t.Fatalf("no field named %q", name)
	return nil, nil
}

func assertEvents(t *testing.T, got []dom.Event, want ...dom.Event) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got events %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got events %v, want %v", got, want)
		}
	}
}

func TestWriteText(t *testing.T) {
	page, el := pageField(t, `<form><input type="text" name="email"></form>`, "email")

	if err := Write(context.Background(), el, "jane@example.com", "personalInfo.email"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := el.Value(); got != "jane@example.com" {
		t.Errorf("Value = %q", got)
	}
	assertEvents(t, page.EventsFor("email"), dom.EventInput, dom.EventChange, dom.EventBlur)
}

func TestWriteSelectExactValue(t *testing.T) {
	page, el := pageField(t, `<form><select name="state">
		<option value="">Choose</option>
		<option value="OR">Oregon</option>
	</select></form>`, "state")

	if err := Write(context.Background(), el, "OR", "personalInfo.state"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := el.Value(); got != "OR" {
		t.Errorf("Value = %q, want OR", got)
	}
	assertEvents(t, page.EventsFor("state"), dom.EventChange, dom.EventBlur)
}

func TestWriteSelectByText(t *testing.T) {
	_, el := pageField(t, `<form><select name="state">
		<option value="OR">Oregon</option>
		<option value="WA">Washington</option>
	</select></form>`, "state")

	if err := Write(context.Background(), el, "Washington", "personalInfo.state"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := el.Value(); got != "WA" {
		t.Errorf("Value = %q, want WA", got)
	}
}

func TestWriteSelectSubstringFallback(t *testing.T) {
	_, el := pageField(t, `<form><select name="degree">
		<option value="bs">Bachelor of Science (BS)</option>
		<option value="ms">Master of Science (MS)</option>
	</select></form>`, "degree")

	if err := Write(context.Background(), el, "master of science", "education.degree"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := el.Value(); got != "ms" {
		t.Errorf("Value = %q, want ms", got)
	}
}

func TestWriteSelectUnmatched(t *testing.T) {
	page, el := pageField(t, `<form><select name="state">
		<option value="OR">Oregon</option>
	</select></form>`, "state")

	err := Write(context.Background(), el, "Nowhere", "personalInfo.state")
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("err = %v, want WriteError", err)
	}
	if werr.FieldType != "personalInfo.state" {
		t.Errorf("FieldType = %q", werr.FieldType)
	}
	// Change and blur still fire so dependent controls reset.
	assertEvents(t, page.EventsFor("state"), dom.EventChange, dom.EventBlur)
}

func TestWriteCheckboxTogglesOnce(t *testing.T) {
	page, el := pageField(t, `<form><input type="checkbox" name="relocate"></form>`, "relocate")
	ctx := context.Background()

	if err := Write(ctx, el, "Yes", "custom.willingToRelocate"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !el.Checked() {
		t.Error("checkbox not checked")
	}
	assertEvents(t, page.EventsFor("relocate"), dom.EventChange, dom.EventClick)

	// Same desired state again: no toggle, no extra events.
	if err := Write(ctx, el, "Yes", "custom.willingToRelocate"); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	assertEvents(t, page.EventsFor("relocate"), dom.EventChange, dom.EventClick)
}

func TestWriteCheckboxUnchecks(t *testing.T) {
	page, el := pageField(t, `<form><input type="checkbox" name="sponsor" checked></form>`, "sponsor")

	if err := Write(context.Background(), el, "No", "custom.sponsorship"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if el.Checked() {
		t.Error("checkbox still checked")
	}
	assertEvents(t, page.EventsFor("sponsor"), dom.EventChange, dom.EventClick)
}

func TestWriteRadioMatchesCaseInsensitive(t *testing.T) {
	page, el := pageField(t, `<form>
		<input type="radio" name="auth" value="Yes">
		<input type="radio" name="auth" value="No">
	</form>`, "auth")

	if err := Write(context.Background(), el, "yes", "custom.workAuthorization"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	assertEvents(t, page.EventsFor("auth"), dom.EventChange, dom.EventClick)
}

func TestWriteRadioNoMatch(t *testing.T) {
	_, el := pageField(t, `<form>
		<input type="radio" name="auth" value="Yes">
	</form>`, "auth")

	err := Write(context.Background(), el, "Maybe", "custom.workAuthorization")
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("err = %v, want WriteError", err)
	}
}

func TestWriteNumberStripsFormatting(t *testing.T) {
	_, el := pageField(t, `<form><input type="number" name="salary"></form>`, "salary")

	if err := Write(context.Background(), el, "$85,000", "custom.salaryExpectation"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := el.Value(); got != "85000" {
		t.Errorf("Value = %q, want 85000", got)
	}
}

func TestWriteNumberNonNumericSkips(t *testing.T) {
	page, el := pageField(t, `<form><input type="number" name="salary"></form>`, "salary")

	err := Write(context.Background(), el, "negotiable", "custom.salaryExpectation")
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("err = %v, want ErrSkipped", err)
	}
	if got := el.Value(); got != "" {
		t.Errorf("Value = %q, want empty", got)
	}
	if events := page.EventsFor("salary"); len(events) != 0 {
		t.Errorf("events = %v, want none", events)
	}
}

func TestWriteMonthInput(t *testing.T) {
	_, el := pageField(t, `<form><input type="month" name="start"></form>`, "start")

	if err := Write(context.Background(), el, "Jan 2020", "workExperience.startDate"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := el.Value(); got != "2020-01" {
		t.Errorf("Value = %q, want 2020-01", got)
	}
}

func TestWriteDateInput(t *testing.T) {
	_, el := pageField(t, `<form><input type="date" name="grad"></form>`, "grad")

	if err := Write(context.Background(), el, "2021-06", "education.graduationDate"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := el.Value(); got != "2021-06-01" {
		t.Errorf("Value = %q, want 2021-06-01", got)
	}
}

func TestTruthy(t *testing.T) {
	for _, v := range []string{"true", "Yes", "1"} {
		if !Truthy(v) {
			t.Errorf("Truthy(%q) = false", v)
		}
	}
	for _, v := range []string{"No", "false", "0", "", "yes"} {
		if Truthy(v) {
			t.Errorf("Truthy(%q) = true", v)
		}
	}
}
