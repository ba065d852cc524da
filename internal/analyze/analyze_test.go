package analyze

import (
	"context"
	"testing"
	"time"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/types"
)

const applicationForm = `<form>
	<label for="fn">First Name</label><input type="text" id="fn" name="first_name">
	<label for="ln">Last Name</label><input type="text" id="ln" name="last_name">
	<label for="em">Email Address</label><input type="email" id="em" name="email">
	<label for="ph">Phone Number</label><input type="tel" id="ph" name="phone">
	<label for="co">Company Name</label><input type="text" id="co" name="company">
	<label for="jt">Job Title</label><input type="text" id="jt" name="job_title">
</form>`

func mustPage(t *testing.T, rawHTML string) *dom.Page {
	t.Helper()
	page, err := dom.NewPage(rawHTML)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return page
}

func TestDetectForms(t *testing.T) {
	page := mustPage(t, applicationForm)

	analyses, err := DetectForms(context.Background(), page, Options{})
	if err != nil {
		t.Fatalf("DetectForms: %v", err)
	}
	if len(analyses) != 1 {
		t.Fatalf("got %d analyses, want 1", len(analyses))
	}

	a := analyses[0]
	if a.Stats.Total != 6 {
		t.Errorf("Total = %d, want 6", a.Stats.Total)
	}
	if a.Stats.Classified != 6 {
		t.Errorf("Classified = %d, want 6", a.Stats.Classified)
	}
	if a.FormType != types.FormTypeJobApplication {
		t.Errorf("FormType = %q, want %q", a.FormType, types.FormTypeJobApplication)
	}
	if got := len(a.Grouped[types.CategoryPersonalInfo]); got != 4 {
		t.Errorf("personalInfo group = %d, want 4", got)
	}
	if got := len(a.Grouped[types.CategoryWorkExperience]); got != 2 {
		t.Errorf("workExperience group = %d, want 2", got)
	}
}

func TestDetectForms_RootFallbackForFormlessPage(t *testing.T) {
	page := mustPage(t, `<div class="application">
		<label for="em">Email Address</label><input type="email" id="em" name="email">
	</div>`)

	analyses, err := DetectForms(context.Background(), page, Options{})
	if err != nil {
		t.Fatalf("DetectForms: %v", err)
	}
	if len(analyses) != 1 {
		t.Fatalf("got %d analyses, want 1", len(analyses))
	}
	if analyses[0].Stats.Total != 1 {
		t.Errorf("Total = %d, want 1", analyses[0].Stats.Total)
	}
}

func TestFillableFields_Filtering(t *testing.T) {
	page := mustPage(t, `<form>
		<input type="text" name="keep">
		<input type="text" name="invisible" style="display:none">
		<input type="text" name="off" disabled>
		<input type="file" name="resume_file">
	</form>`)

	forms, _ := page.Forms(context.Background())
	fields, err := FillableFields(context.Background(), forms[0])
	if err != nil {
		t.Fatalf("FillableFields: %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("got %d fields, want 1", len(fields))
	}
	if fields[0].Attr("name") != "keep" {
		t.Errorf("kept %q", fields[0].Attr("name"))
	}
}

func TestInferFormType(t *testing.T) {
	tests := []struct {
		name            string
		byCategory      map[string]int
		total           int
		classifications []types.Classification
		want            string
	}{
		{
			name:       "personal info plus work",
			byCategory: map[string]int{types.CategoryPersonalInfo: 3, types.CategoryWorkExperience: 1},
			total:      4,
			want:       types.FormTypeJobApplication,
		},
		{
			name:       "personal info plus education",
			byCategory: map[string]int{types.CategoryPersonalInfo: 4, types.CategoryEducation: 2},
			total:      6,
			want:       types.FormTypeJobApplication,
		},
		{
			name:       "resume upload marks application",
			byCategory: map[string]int{},
			total:      1,
			classifications: []types.Classification{
				{FieldType: "documents.resume"},
			},
			want: types.FormTypeJobApplication,
		},
		{
			name:       "personal info only is contact",
			byCategory: map[string]int{types.CategoryPersonalInfo: 3},
			total:      3,
			want:       types.FormTypeContact,
		},
		{
			name:       "small form with some personal info is profile",
			byCategory: map[string]int{types.CategoryPersonalInfo: 1},
			total:      2,
			want:       types.FormTypeProfile,
		},
		{
			name:       "nothing recognized is generic",
			byCategory: map[string]int{},
			total:      5,
			want:       types.FormTypeGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := types.ClassificationStats{Total: tt.total, ByCategory: tt.byCategory}
			if got := InferFormType(stats, tt.classifications); got != tt.want {
				t.Errorf("InferFormType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBestForm(t *testing.T) {
	if BestForm(nil) != nil {
		t.Error("BestForm(nil) != nil")
	}

	analyses := []FormAnalysis{
		{Index: 0, FormType: types.FormTypeGeneric, Fields: make([]ClassifiedField, 8)},
		{Index: 1, FormType: types.FormTypeJobApplication, Stats: types.ClassificationStats{Classified: 3}},
		{Index: 2, FormType: types.FormTypeJobApplication, Stats: types.ClassificationStats{Classified: 7}},
	}
	if best := BestForm(analyses); best.Index != 2 {
		t.Errorf("best = %d, want the application form with most classified fields", best.Index)
	}

	noApplication := []FormAnalysis{
		{Index: 0, FormType: types.FormTypeGeneric, Fields: make([]ClassifiedField, 2)},
		{Index: 1, FormType: types.FormTypeContact, Fields: make([]ClassifiedField, 5)},
	}
	if best := BestForm(noApplication); best.Index != 1 {
		t.Errorf("best = %d, want the form with most fields", best.Index)
	}
}

func TestSummary(t *testing.T) {
	page := mustPage(t, applicationForm)

	resp, err := Summary(context.Background(), page, Options{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !resp.Success || !resp.HasForm {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.FormCount != 1 || resp.FieldCount != 6 || resp.ClassifiedCount != 6 {
		t.Errorf("counts = %d/%d/%d", resp.FormCount, resp.FieldCount, resp.ClassifiedCount)
	}
	if resp.FormType != types.FormTypeJobApplication {
		t.Errorf("FormType = %q", resp.FormType)
	}
	if resp.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", resp.Confidence)
	}
}

func TestSummary_EmptyPage(t *testing.T) {
	page := mustPage(t, `<p>Thanks for applying.</p>`)

	resp, err := Summary(context.Background(), page, Options{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !resp.Success || resp.HasForm {
		t.Errorf("resp = %+v, want success with no form", resp)
	}
}

func TestWatcher_ReanalyzesOnMutation(t *testing.T) {
	page := mustPage(t, `<form id="f">
		<label for="em">Email Address</label><input type="email" id="em" name="email">
	</form>`)

	w, err := NewWatcher(context.Background(), page, Options{})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if got := w.Latest()[0].Stats.Total; got != 1 {
		t.Fatalf("initial Total = %d, want 1", got)
	}

	updated := make(chan []FormAnalysis, 1)
	w.OnUpdate = func(a []FormAnalysis) {
		select {
		case updated <- a:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give Run a moment to start waiting before the mutation fires.
	time.Sleep(20 * time.Millisecond)
	if err := page.AppendHTML("#f", `<label for="ph">Phone Number</label><input type="tel" id="ph" name="phone">`); err != nil {
		t.Fatalf("AppendHTML: %v", err)
	}

	var fresh []FormAnalysis
	select {
	case fresh = <-updated:
	case <-time.After(2 * time.Second):
		t.Fatal("no re-analysis after mutation")
	}
	if got := fresh[0].Stats.Total; got != 2 {
		t.Errorf("Total after mutation = %d, want 2", got)
	}
	if got := w.Latest()[0].Stats.Total; got != 2 {
		t.Errorf("Latest Total = %d, want 2", got)
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}
