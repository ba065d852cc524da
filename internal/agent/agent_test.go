package agent

import (
	"context"
	"testing"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/jonathan/job-autofill/internal/types"
)

const profileJSON = `{
	"personalInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com", "phone": "5551234567"},
	"workExperience": [{"company": "Acme Corp", "position": "Engineer", "startDate": "2020-01", "current": true}],
	"education": [{"school": "State University", "degree": "BS"}],
	"skills": {"technical": ["Go"], "summary": "Backend engineer."}
}`

func newAgent() *Agent {
	return New(store.NewMemoryStore(), Options{})
}

func newPage(t *testing.T, rawHTML string) *dom.Page {
	t.Helper()
	page, err := dom.NewPage(rawHTML)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return page
}

func TestSaveProfileAndGet(t *testing.T) {
	a := newAgent()
	ctx := context.Background()

	saved, err := a.SaveProfile(ctx, []byte(profileJSON))
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if saved.ProfileID != DefaultProfileID {
		t.Errorf("ProfileID = %q, want %q", saved.ProfileID, DefaultProfileID)
	}

	got, err := a.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got == nil || got.PersonalInfo["firstName"] != "Jane" {
		t.Errorf("loaded profile = %+v", got)
	}

	has, err := a.HasProfile(ctx)
	if err != nil || !has {
		t.Errorf("HasProfile = %v, %v", has, err)
	}
}

func TestSaveProfileRejectsBadShape(t *testing.T) {
	a := newAgent()

	_, err := a.SaveProfile(context.Background(), []byte(`{"workExperience": {}}`))
	if err == nil {
		t.Fatal("malformed profile accepted")
	}
	if CodeOf(err) != CodeProfileInvalid {
		t.Errorf("code = %q, want %q", CodeOf(err), CodeProfileInvalid)
	}
	aerr := err.(*Error)
	if aerr.Message != "workExperience must be an array" {
		t.Errorf("message = %q", aerr.Message)
	}
}

func TestSaveProfileRejectsBadEmail(t *testing.T) {
	a := newAgent()

	_, err := a.SaveProfile(context.Background(), []byte(`{"personalInfo": {"email": "not-an-email"}}`))
	if err == nil {
		t.Fatal("bad email accepted")
	}
	if CodeOf(err) != CodeProfileInvalid {
		t.Errorf("code = %q, want %q", CodeOf(err), CodeProfileInvalid)
	}
}

func TestClearProfile(t *testing.T) {
	a := newAgent()
	ctx := context.Background()

	if _, err := a.SaveProfile(ctx, []byte(profileJSON)); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if err := a.ClearProfile(ctx); err != nil {
		t.Fatalf("ClearProfile: %v", err)
	}
	if has, _ := a.HasProfile(ctx); has {
		t.Error("profile still present after clear")
	}
}

func TestFillFormWithoutProfile(t *testing.T) {
	a := newAgent()
	page := newPage(t, `<form><input type="text" name="first_name"></form>`)

	_, err := a.FillForm(context.Background(), page)
	if CodeOf(err) != CodeNoProfile {
		t.Errorf("code = %q, want %q", CodeOf(err), CodeNoProfile)
	}
}

func TestFillFormWithoutFields(t *testing.T) {
	a := newAgent()
	ctx := context.Background()
	if _, err := a.SaveProfile(ctx, []byte(profileJSON)); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	page := newPage(t, `<p>Position closed.</p>`)
	_, err := a.FillForm(ctx, page)
	if CodeOf(err) != CodeNoFormsDetected {
		t.Errorf("code = %q, want %q", CodeOf(err), CodeNoFormsDetected)
	}
}

func TestFillFormEndToEnd(t *testing.T) {
	a := newAgent()
	ctx := context.Background()
	if _, err := a.SaveProfile(ctx, []byte(profileJSON)); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	page := newPage(t, `<form>
		<label for="fn">First Name</label><input type="text" id="fn" name="first_name">
		<label for="ln">Last Name</label><input type="text" id="ln" name="last_name">
		<label for="em">Email Address</label><input type="email" id="em" name="email">
		<label for="ph">Phone Number</label><input type="tel" id="ph" name="phone">
		<label for="co">Company Name</label><input type="text" id="co" name="company">
	</form>`)

	resp, err := a.FillForm(ctx, page)
	if err != nil {
		t.Fatalf("FillForm: %v", err)
	}
	if !resp.Success {
		t.Errorf("Success = false: %+v", resp)
	}
	if resp.FieldsFilled != 5 {
		t.Errorf("FieldsFilled = %d, want 5", resp.FieldsFilled)
	}
	if resp.Summary == "" {
		t.Error("empty summary")
	}

	fields, _ := page.Fields(ctx)
	for _, f := range fields {
		switch f.Attr("name") {
		case "first_name":
			if f.Value() != "Jane" {
				t.Errorf("first_name = %q", f.Value())
			}
		case "phone":
			if f.Value() != "(555) 123-4567" {
				t.Errorf("phone = %q", f.Value())
			}
		case "company":
			if f.Value() != "Acme Corp" {
				t.Errorf("company = %q", f.Value())
			}
		}
	}
}

func TestCheckForms(t *testing.T) {
	a := newAgent()
	page := newPage(t, `<form>
		<label for="em">Email Address</label><input type="email" id="em" name="email">
	</form>`)

	resp, err := a.CheckForms(context.Background(), page)
	if err != nil {
		t.Fatalf("CheckForms: %v", err)
	}
	if !resp.Success || !resp.HasForm || resp.FieldCount != 1 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestCheckMany(t *testing.T) {
	a := newAgent()
	docs := map[string]dom.Document{
		"application": newPage(t, `<form><label for="em">Email Address</label><input type="email" id="em" name="email"></form>`),
		"thanks":      newPage(t, `<p>Thanks!</p>`),
	}

	results, err := a.CheckMany(context.Background(), docs)
	if err != nil {
		t.Fatalf("CheckMany: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if !results["application"].HasForm {
		t.Error("application page reported no form")
	}
	if results["thanks"].HasForm {
		t.Error("empty page reported a form")
	}
}

func TestAnalyzeForms(t *testing.T) {
	a := newAgent()
	page := newPage(t, `<form>
		<label for="fn">First Name</label><input type="text" id="fn" name="first_name">
		<label for="ln">Last Name</label><input type="text" id="ln" name="last_name">
		<label for="em">Email Address</label><input type="email" id="em" name="email">
		<label for="co">Company Name</label><input type="text" id="co" name="company">
	</form>`)

	resp, err := a.AnalyzeForms(context.Background(), page)
	if err != nil {
		t.Fatalf("AnalyzeForms: %v", err)
	}
	if !resp.Success || resp.FormCount != 1 || resp.BestForm == nil {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.BestForm.FormType != types.FormTypeJobApplication {
		t.Errorf("FormType = %q", resp.BestForm.FormType)
	}
	if resp.BestForm.Grouped[types.CategoryPersonalInfo] != 3 {
		t.Errorf("personalInfo count = %d, want 3", resp.BestForm.Grouped[types.CategoryPersonalInfo])
	}
}

func TestHighlightFields(t *testing.T) {
	a := newAgent()
	page := newPage(t, `<form>
		<label for="em">Email Address</label><input type="email" id="em" name="email">
		<input type="text" name="mystery_xq">
	</form>`)

	resp, err := a.HighlightFields(context.Background(), page)
	if err != nil {
		t.Fatalf("HighlightFields: %v", err)
	}
	if !resp.Success || resp.Highlighted != 2 {
		t.Errorf("resp = %+v", resp)
	}
}
