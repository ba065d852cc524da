// Package fill writes resolved profile values into live form controls,
// dispatching the synthetic events host-page frameworks listen for, and
// orchestrates filling whole analyzed forms category by category.
package fill

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/resolve"
)

// ErrSkipped reports that a value has nothing writable for its control, so
// the write was skipped rather than attempted and failed. Callers count
// these as skips, not failures.
var ErrSkipped = errors.New("no writable value for control")

// scrollSettle is the pause after scrolling a control into view, enough for
// sticky headers and lazy-rendered sections to settle.
const scrollSettle = 50 * time.Millisecond

var nonNumericRe = regexp.MustCompile(`[^0-9.-]`)

// Write assigns value to el according to its control kind. Every path that
// changes the control dispatches the events a hand-typed edit would produce;
// React-style frameworks drop writes that arrive without them.
func Write(ctx context.Context, el dom.Element, value, fieldType string) error {
	if err := el.ScrollIntoView(ctx); err != nil {
		return &WriteError{FieldType: fieldType, Message: "scroll into view failed", Cause: err}
	}
	if err := pause(ctx, scrollSettle); err != nil {
		return err
	}

	switch {
	case el.Tag() == "select":
		return writeSelect(ctx, el, value, fieldType)
	case el.InputType() == "checkbox":
		return writeCheckbox(ctx, el, value, fieldType)
	case el.InputType() == "radio":
		return writeRadio(ctx, el, value, fieldType)
	case el.InputType() == "date" || el.InputType() == "month" || el.InputType() == "week":
		return writeText(ctx, el, resolve.FormatDateForControl(value, el.InputType()), fieldType)
	case el.InputType() == "number":
		return writeNumber(ctx, el, value, fieldType)
	default:
		return writeText(ctx, el, value, fieldType)
	}
}

// writeSelect matches value against the options: exact value-or-text first,
// then case-insensitive substring. An unmatched value leaves the control
// alone but still dispatches change and blur, so dependent controls reset.
func writeSelect(ctx context.Context, el dom.Element, value, fieldType string) error {
	options := el.Options()

	match := ""
	found := false
	for _, o := range options {
		if o.Value == value || o.Text == value {
			match, found = o.Value, true
			break
		}
	}
	if !found {
		lower := strings.ToLower(value)
		for _, o := range options {
			if strings.Contains(strings.ToLower(o.Text), lower) ||
				strings.Contains(strings.ToLower(o.Value), lower) {
				match, found = o.Value, true
				break
			}
		}
	}

	if !found {
		log.Printf("[Writer] No matching option for %q in select %s", value, fieldType)
		if err := el.Dispatch(ctx, dom.EventChange, dom.EventBlur); err != nil {
			return &WriteError{FieldType: fieldType, Message: "dispatch failed", Cause: err}
		}
		return &WriteError{FieldType: fieldType, Message: "no matching option for " + value}
	}

	if err := el.SelectValue(ctx, match); err != nil {
		return &WriteError{FieldType: fieldType, Message: "select option failed", Cause: err}
	}
	if err := el.Dispatch(ctx, dom.EventChange, dom.EventBlur); err != nil {
		return &WriteError{FieldType: fieldType, Message: "dispatch failed", Cause: err}
	}
	return nil
}

// Truthy determines the desired state of a checkbox from a resolved value.
func Truthy(value string) bool {
	switch value {
	case "true", "Yes", "1":
		return true
	}
	return false
}

// writeCheckbox toggles only when the desired state differs from the current
// one, so its change and click fire exactly once per actual toggle.
func writeCheckbox(ctx context.Context, el dom.Element, value, fieldType string) error {
	want := Truthy(value)
	if el.Checked() == want {
		return nil
	}
	if err := el.SetChecked(ctx, want); err != nil {
		return &WriteError{FieldType: fieldType, Message: "set checked failed", Cause: err}
	}
	if err := el.Dispatch(ctx, dom.EventChange, dom.EventClick); err != nil {
		return &WriteError{FieldType: fieldType, Message: "dispatch failed", Cause: err}
	}
	return nil
}

// writeRadio selects the member of the same-named group whose value matches,
// compared case-insensitively.
func writeRadio(ctx context.Context, el dom.Element, value, fieldType string) error {
	group, err := el.RadioGroup(ctx)
	if err != nil {
		return &WriteError{FieldType: fieldType, Message: "radio group lookup failed", Cause: err}
	}
	for _, r := range group {
		if !strings.EqualFold(r.Attr("value"), value) {
			continue
		}
		if err := r.SetChecked(ctx, true); err != nil {
			return &WriteError{FieldType: fieldType, Message: "set checked failed", Cause: err}
		}
		if err := r.Dispatch(ctx, dom.EventChange, dom.EventClick); err != nil {
			return &WriteError{FieldType: fieldType, Message: "dispatch failed", Cause: err}
		}
		return nil
	}
	log.Printf("[Writer] No radio in group matches %q for %s", value, fieldType)
	return &WriteError{FieldType: fieldType, Message: "no radio option matches " + value}
}

// writeNumber strips everything but digits, dots and minus signs before
// writing. A value with no numeric content is skipped.
func writeNumber(ctx context.Context, el dom.Element, value, fieldType string) error {
	numeric := nonNumericRe.ReplaceAllString(value, "")
	if numeric == "" {
		log.Printf("[Writer] Skipping non-numeric value %q for number field %s", value, fieldType)
		return ErrSkipped
	}
	return writeText(ctx, el, numeric, fieldType)
}

// writeText is the generic path for text-like inputs and textareas: native
// value assignment followed by input, change and blur.
func writeText(ctx context.Context, el dom.Element, value, fieldType string) error {
	if err := el.SetValue(ctx, value); err != nil {
		return &WriteError{FieldType: fieldType, Message: "set value failed", Cause: err}
	}
	if err := el.Dispatch(ctx, dom.EventInput, dom.EventChange, dom.EventBlur); err != nil {
		return &WriteError{FieldType: fieldType, Message: "dispatch failed", Cause: err}
	}
	return nil
}

// pause sleeps for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
