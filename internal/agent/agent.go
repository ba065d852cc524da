// Package agent is the session facade tying the engine together: profile
// persistence, form analysis, filling, and highlighting against an attached
// page. The HTTP server and the CLI subcommands both drive this type.
package agent

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-autofill/internal/analyze"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/dynamic"
	"github.com/jonathan/job-autofill/internal/fill"
	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/schemas"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/jonathan/job-autofill/internal/types"
)

// DefaultProfileID keys the single profile a normal session uses.
const DefaultProfileID = "default"

// Options configures an Agent.
type Options struct {
	ProfileID string
	Fill      fill.Options
	Verbose   bool
}

// DefaultOptions returns the agent settings used when callers pass none.
func DefaultOptions() Options {
	return Options{
		ProfileID: DefaultProfileID,
		Fill:      fill.DefaultOptions(),
	}
}

// Agent executes the engine's operations against a profile store and,
// per call, an attached page. The failed-field set lives for the agent's
// lifetime, one session.
type Agent struct {
	Store store.ProfileStore
	Opts  Options

	failedMu sync.Mutex
	failed   *fill.FailedFields
}

// New returns an Agent over the given store.
func New(s store.ProfileStore, opts Options) *Agent {
	if opts.ProfileID == "" {
		opts.ProfileID = DefaultProfileID
	}
	return &Agent{Store: s, Opts: opts, failed: fill.NewFailedFields()}
}

// Profile loads the saved profile, or nil when none exists.
func (a *Agent) Profile(ctx context.Context) (*types.Profile, error) {
	profile, err := a.Store.Get(ctx, a.Opts.ProfileID)
	if err != nil {
		return nil, &Error{Code: CodeProfileLoadFailed, Message: "could not load profile", Cause: err}
	}
	return profile, nil
}

// SaveProfile validates raw profile JSON and persists it. Validation runs
// shape checks first so the caller sees the original hand-editing mistakes
// as plain messages, then schema and format checks.
func (a *Agent) SaveProfile(ctx context.Context, content []byte) (*types.Profile, error) {
	if msg := schemas.CheckProfileShape(content); msg != "" {
		return nil, &Error{Code: CodeProfileInvalid, Message: msg}
	}
	if err := schemas.ValidateProfileJSON(content); err != nil {
		return nil, &Error{Code: CodeProfileInvalid, Message: "profile failed schema validation", Cause: err}
	}

	var profile types.Profile
	if err := json.Unmarshal(content, &profile); err != nil {
		return nil, &Error{Code: CodeProfileInvalid, Message: "profile is not valid JSON", Cause: err}
	}
	if err := schemas.CheckFormats(profile.PersonalInfo); err != nil {
		return nil, &Error{Code: CodeProfileInvalid, Message: "profile has invalid field formats", Cause: err}
	}

	if profile.ProfileID == "" {
		profile.ProfileID = a.Opts.ProfileID
	}
	if err := a.Store.Save(ctx, &profile); err != nil {
		return nil, &Error{Code: CodeProfileSaveFailed, Message: "could not save profile", Cause: err}
	}
	return &profile, nil
}

// HasProfile reports whether a non-empty profile is saved.
func (a *Agent) HasProfile(ctx context.Context) (bool, error) {
	ok, err := a.Store.Has(ctx, a.Opts.ProfileID)
	if err != nil {
		return false, &Error{Code: CodeProfileLoadFailed, Message: "could not check profile", Cause: err}
	}
	return ok, nil
}

// ClearProfile deletes the saved profile and resets the failed-field set.
func (a *Agent) ClearProfile(ctx context.Context) error {
	if err := a.Store.Clear(ctx, a.Opts.ProfileID); err != nil {
		return &Error{Code: CodeProfileSaveFailed, Message: "could not clear profile", Cause: err}
	}
	a.ResetSession()
	return nil
}

// ResetSession forgets the session's failed fields, typically after the
// attached page navigates.
func (a *Agent) ResetSession() {
	a.failedMu.Lock()
	defer a.failedMu.Unlock()
	a.failed = fill.NewFailedFields()
}

func (a *Agent) failedFields() *fill.FailedFields {
	a.failedMu.Lock()
	defer a.failedMu.Unlock()
	return a.failed
}

// CheckForms produces the quick page summary.
func (a *Agent) CheckForms(ctx context.Context, doc dom.Document) (types.CheckFormsResponse, error) {
	resp, err := analyze.Summary(ctx, doc, analyze.Options{Verbose: a.Opts.Verbose})
	if err != nil {
		return types.CheckFormsResponse{}, &Error{Code: CodeFormDetectionFailed, Message: "could not analyze page", Cause: err}
	}
	return resp, nil
}

// CheckMany summarizes several attached pages concurrently, keyed by name.
func (a *Agent) CheckMany(ctx context.Context, docs map[string]dom.Document) (map[string]types.CheckFormsResponse, error) {
	var mu sync.Mutex
	results := make(map[string]types.CheckFormsResponse, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	for name, doc := range docs {
		g.Go(func() error {
			resp, err := a.CheckForms(gctx, doc)
			if err != nil {
				return err
			}
			mu.Lock()
			results[name] = resp
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AnalyzeForms runs a full analysis pass and summarizes the best form.
func (a *Agent) AnalyzeForms(ctx context.Context, doc dom.Document) (types.AnalyzeFormsResponse, error) {
	analyses, err := analyze.DetectForms(ctx, doc, analyze.Options{Verbose: a.Opts.Verbose})
	if err != nil {
		return types.AnalyzeFormsResponse{}, &Error{Code: CodeFormDetectionFailed, Message: "could not analyze page", Cause: err}
	}

	resp := types.AnalyzeFormsResponse{Success: true, FormCount: len(analyses)}
	if best := analyze.BestForm(analyses); best != nil && best.Stats.Total > 0 {
		grouped := make(map[string]int, len(best.Grouped))
		for category, fields := range best.Grouped {
			grouped[category] = len(fields)
		}
		resp.BestForm = &types.BestFormSummary{
			Index:    best.Index,
			FormType: best.FormType,
			Stats:    best.Stats,
			Grouped:  grouped,
		}
	}
	return resp, nil
}

// FillForm fills the best form on the attached page with the saved profile.
// A page with no fillable fields and a missing profile are both errors; a
// partially filled form is a success-shaped response carrying the partial
// counts and the FILL_PARTIAL message.
func (a *Agent) FillForm(ctx context.Context, doc dom.Document) (types.FillFormResponse, error) {
	profile, err := a.Profile(ctx)
	if err != nil {
		return types.FillFormResponse{}, err
	}
	if profile == nil || profile.IsEmpty() {
		return types.FillFormResponse{}, &Error{Code: CodeNoProfile, Message: "no profile saved"}
	}

	analyses, err := analyze.DetectForms(ctx, doc, analyze.Options{Verbose: a.Opts.Verbose})
	if err != nil {
		return types.FillFormResponse{}, &Error{Code: CodeFormDetectionFailed, Message: "could not analyze page", Cause: err}
	}
	best := analyze.BestForm(analyses)
	if best == nil || len(best.Fields) == 0 {
		return types.FillFormResponse{}, &Error{Code: CodeNoFormsDetected, Message: "no fillable forms found on this page"}
	}

	filler := &fill.Filler{Opts: a.Opts.Fill, Failed: a.failedFields()}
	handler := dynamic.NewHandler(doc, filler)
	handler.Verbose = a.Opts.Verbose
	filler.Work = func(ctx context.Context, fields []analyze.ClassifiedField, entries []types.WorkExperience, opts fill.Options) types.FillResult {
		return handler.FillWorkSection(ctx, fields, entries, opts)
	}

	if a.Opts.Verbose {
		log.Printf("[Agent] Filling form %d (%s) with %d fields", best.Index, best.FormType, len(best.Fields))
	}
	result := filler.FillForm(ctx, best, profile)

	resp := types.FillFormResponse{
		Success:       result.Success,
		FieldsFilled:  result.Filled,
		FieldsTotal:   result.Total,
		FieldsSkipped: result.Skipped,
		FieldsFailed:  result.Failed,
		Summary:       observability.FillSummary(result),
		Errors:        result.Errors,
	}
	if !result.Success {
		resp.Message = CodeFillPartial
	}
	return resp, nil
}

// HighlightFields colors every analyzed field by classification confidence.
func (a *Agent) HighlightFields(ctx context.Context, doc dom.Document) (types.HighlightResponse, error) {
	analyses, err := analyze.DetectForms(ctx, doc, analyze.Options{Verbose: a.Opts.Verbose})
	if err != nil {
		return types.HighlightResponse{}, &Error{Code: CodeFormDetectionFailed, Message: "could not analyze page", Cause: err}
	}
	count, err := fill.HighlightFields(ctx, analyses)
	if err != nil {
		return types.HighlightResponse{}, &Error{Code: CodeFormDetectionFailed, Message: "could not highlight fields", Cause: err}
	}
	return types.HighlightResponse{Success: true, Highlighted: count}, nil
}
