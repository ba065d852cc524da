// Package dom defines the narrow capability interface through which the
// autofill engine observes and mutates a host page. Two implementations
// exist: a goquery-backed synthetic page for tests and static analysis, and
// a chromedp-backed live browser session. Classifier and resolver logic
// never touch a DOM API directly; everything goes through these interfaces.
package dom

import (
	"context"
	"fmt"
)

// Event names dispatched after writes so host-page frameworks observe the
// change. The writer's per-control event sequences are part of its contract.
type Event string

// Synthetic events the engine dispatches.
const (
	EventInput  Event = "input"
	EventChange Event = "change"
	EventBlur   Event = "blur"
	EventClick  Event = "click"
)

// Option is one choice in a select control.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// LabelContext carries the raw label-bearing texts around an element. The
// signal extractor applies the fallback ordering and cleaning; the DOM
// implementation only gathers the candidates.
type LabelContext struct {
	ForLabel      string // text of <label for="...{ element id }">
	AncestorLabel string // text of closest ancestor <label>, controls stripped
	SiblingLabel  string // text of nearest preceding sibling <label>
	AriaLabel     string // aria-label attribute
	LabelledBy    string // text of the aria-labelledby target
	Title         string // title attribute
	ParentText    string // parent element text, controls stripped, capped length
}

// Element is one form control or clickable node. Read methods reflect the
// snapshot taken when the element was enumerated; write methods act on the
// live node and may fail if the page has since replaced it.
type Element interface {
	Tag() string             // lowercase tag name
	InputType() string       // lowercase type; "text" for type-less inputs
	Attr(name string) string // "" when absent
	Text() string            // visible text content
	Visible() bool
	Enabled() bool // not disabled, readonly, or aria-disabled
	Value() string
	Checked() bool
	Options() []Option // select options; nil for other controls
	Labels() LabelContext

	SetValue(ctx context.Context, v string) error // assigns via the native value setter; dispatches nothing
	SetChecked(ctx context.Context, v bool) error
	SelectValue(ctx context.Context, optionValue string) error
	Dispatch(ctx context.Context, events ...Event) error
	Click(ctx context.Context) error // .click() plus synthetic MouseEvent and Event dispatch
	ScrollIntoView(ctx context.Context) error
	Highlight(ctx context.Context, color string) error
	RadioGroup(ctx context.Context) ([]Element, error) // same-named radios in document order, self included
}

// Container is a subtree that can enumerate its candidate form fields in
// document order. The enumeration applies the fillable type whitelist only;
// visibility and enabled filtering is the analyzer's concern.
type Container interface {
	Fields(ctx context.Context) ([]Element, error)
}

// Document is a whole host page.
type Document interface {
	// Forms returns the page's <form> containers in document order.
	Forms(ctx context.Context) ([]Container, error)
	// Root returns the whole document as a single container, used as the
	// fallback when a page renders its fields outside any <form>.
	Root(ctx context.Context) (Container, error)
	// Fields enumerates candidate fields across the whole page, in document
	// order, ignoring form boundaries. The dynamic section handler relies on
	// this flat ordering.
	Fields(ctx context.Context) ([]Element, error)
	// Clickables returns button, a, div[role=button] and span[role=button]
	// nodes, the affordances scanned for "add another" controls.
	Clickables(ctx context.Context) ([]Element, error)
	// WaitMutation blocks until the page structure changes or ctx is done.
	// DOM mutation by the host page is asynchronous; this is the only
	// notification primitive, and callers must bound it with a deadline.
	WaitMutation(ctx context.Context) error
}

// FieldSelector is the candidate whitelist shared by both implementations.
// File, button, submit and reset inputs are excluded by later filtering, not
// by the selector, mirroring how browsers match these groups.
const FieldSelector = `input[type="text"], input[type="email"], input[type="tel"], ` +
	`input[type="url"], input[type="number"], input[type="date"], input[type="month"], ` +
	`input[type="week"], input[type="time"], input[type="datetime-local"], ` +
	`input[type="search"], input[type="password"], input[type="checkbox"], ` +
	`input[type="radio"], input:not([type]), select, textarea`

// ClickableSelector matches the nodes scanned for add-entry affordances.
const ClickableSelector = `button, a, div[role="button"], span[role="button"]`

// Error represents a DOM capability failure.
type Error struct {
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dom %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("dom %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
