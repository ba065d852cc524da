// Package dom - browser.go provides the live-browser Document backed by
// chromedp. Requires Chrome/Chromium to be installed on the system.
package dom

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserOptions configures a live browser session.
type BrowserOptions struct {
	Headless bool
	Timeout  time.Duration
	Verbose  bool
}

// DefaultBrowserOptions returns the options used when none are given.
func DefaultBrowserOptions() BrowserOptions {
	return BrowserOptions{Headless: true, Timeout: 60 * time.Second}
}

// Browser is a live Document driving a real page through the DevTools
// protocol. All element operations evaluate JavaScript against node
// references collected into window-scoped arrays, so references stay valid
// until the next enumeration pass.
type Browser struct {
	ctx     context.Context
	cancels []context.CancelFunc
	verbose bool
}

// NewBrowser starts a headless browser session and navigates to url.
func NewBrowser(ctx context.Context, url string, opts BrowserOptions) (*Browser, error) {
	if opts.Verbose {
		log.Printf("[Browser] Starting browser session for: %s", url)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserOptions().Timeout
	}
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)

	b := &Browser{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelTimeout, cancelCtx, cancelAlloc},
		verbose: opts.Verbose,
	}

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give JavaScript-rendered forms a moment to appear.
		chromedp.Sleep(2*time.Second),
	)
	if err != nil {
		b.Close()
		return nil, &Error{Op: "navigate", Message: fmt.Sprintf("failed to open %s", url), Cause: err}
	}

	return b, nil
}

// Close tears the browser session down.
func (b *Browser) Close() {
	for _, cancel := range b.cancels {
		cancel()
	}
}

type elementMeta struct {
	Tag          string   `json:"tag"`
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	ID           string   `json:"id"`
	Placeholder  string   `json:"placeholder"`
	Autocomplete string   `json:"autocomplete"`
	ClassName    string   `json:"className"`
	Title        string   `json:"title"`
	AriaLabel    string   `json:"ariaLabel"`
	Text         string   `json:"text"`
	Value        string   `json:"value"`
	Checked      bool     `json:"checked"`
	Visible      bool     `json:"visible"`
	Enabled      bool     `json:"enabled"`
	Options      []Option `json:"options,omitempty"`
	ForLabel     string   `json:"forLabel"`
	Ancestor     string   `json:"ancestorLabel"`
	Sibling      string   `json:"siblingLabel"`
	LabelledBy   string   `json:"labelledBy"`
	ParentText   string   `json:"parentText"`
}

// metaJS builds one metadata object per element. Label candidates are
// gathered here in a single round trip; ordering and cleaning happen on the
// Go side in the signal extractor.
const metaJS = `
const autofillMeta = (el) => {
  const strip = (node) => {
    const clone = node.cloneNode(true);
    clone.querySelectorAll('input, select, textarea, button').forEach(n => n.remove());
    return clone.textContent.trim().replace(/\s+/g, ' ');
  };
  const style = window.getComputedStyle(el);
  const rect = el.getBoundingClientRect();
  const visible = style.display !== 'none' && style.visibility !== 'hidden' &&
    style.opacity !== '0' && rect.width > 0 && rect.height > 0;
  let forLabel = '';
  if (el.id) {
    const l = document.querySelector('label[for="' + CSS.escape(el.id) + '"]');
    if (l) forLabel = l.textContent.trim();
  }
  const ancestor = el.closest('label');
  let sibling = '';
  for (let s = el.previousElementSibling; s; s = s.previousElementSibling) {
    if (s.tagName === 'LABEL') { sibling = s.textContent.trim(); break; }
  }
  let labelledBy = '';
  const ref = el.getAttribute('aria-labelledby');
  if (ref) {
    const t = document.getElementById(ref);
    if (t) labelledBy = t.textContent.trim();
  }
  let parentText = '';
  if (el.parentElement) {
    const t = strip(el.parentElement);
    if (t.length < 100) parentText = t;
  }
  return {
    tag: el.tagName.toLowerCase(),
    type: el.tagName === 'INPUT' ? (el.type || 'text').toLowerCase() : el.tagName.toLowerCase(),
    name: el.name || '',
    id: el.id || '',
    placeholder: el.placeholder || '',
    autocomplete: el.getAttribute('autocomplete') || '',
    className: (typeof el.className === 'string' ? el.className : '') || '',
    title: el.title || '',
    ariaLabel: el.getAttribute('aria-label') || '',
    text: (el.textContent || '').trim(),
    value: el.value || '',
    checked: !!el.checked,
    visible: visible,
    enabled: !el.disabled && !el.readOnly && el.getAttribute('aria-disabled') !== 'true',
    options: el.tagName === 'SELECT'
      ? Array.from(el.options).map(o => ({value: o.value, text: o.text.trim()}))
      : undefined,
    forLabel: forLabel,
    ancestorLabel: ancestor ? strip(ancestor) : '',
    siblingLabel: sibling,
    labelledBy: labelledBy,
    parentText: parentText,
  };
};
`

func (b *Browser) collect(ctx context.Context, store, selector string) ([]Element, error) {
	expr := fmt.Sprintf(`(() => {%s
  %s = Array.from(document.querySelectorAll(%s));
  return %s.map(autofillMeta);
})()`, metaJS, store, strconv.Quote(selector), store)

	var metas []elementMeta
	if err := b.run(ctx, chromedp.Evaluate(expr, &metas)); err != nil {
		return nil, &Error{Op: "collect", Message: "field enumeration failed", Cause: err}
	}

	out := make([]Element, len(metas))
	for i, meta := range metas {
		out[i] = &browserElement{
			browser: b,
			ref:     fmt.Sprintf("%s[%d]", store, i),
			meta:    meta,
		}
	}
	return out, nil
}

// run executes actions on the session context but honors the caller's
// deadline.
func (b *Browser) run(ctx context.Context, actions ...chromedp.Action) error {
	done := make(chan error, 1)
	go func() { done <- chromedp.Run(b.ctx, actions...) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Forms implements Document.
func (b *Browser) Forms(ctx context.Context) ([]Container, error) {
	var count int
	err := b.run(ctx, chromedp.Evaluate(
		`(window.__autofillForms = Array.from(document.querySelectorAll('form'))).length`, &count))
	if err != nil {
		return nil, &Error{Op: "forms", Message: "form enumeration failed", Cause: err}
	}
	out := make([]Container, count)
	for i := 0; i < count; i++ {
		out[i] = &browserContainer{browser: b, root: fmt.Sprintf("window.__autofillForms[%d]", i), index: i}
	}
	return out, nil
}

// Root implements Document.
func (b *Browser) Root(context.Context) (Container, error) {
	return &browserContainer{browser: b, root: "document", index: -1}, nil
}

// Fields implements Document.
func (b *Browser) Fields(ctx context.Context) ([]Element, error) {
	return b.collect(ctx, "window.__autofillAll", FieldSelector)
}

// Clickables implements Document.
func (b *Browser) Clickables(ctx context.Context) ([]Element, error) {
	return b.collect(ctx, "window.__autofillClicks", ClickableSelector)
}

// WaitMutation implements Document. The DevTools protocol offers no direct
// MutationObserver bridge here, so structural change is detected by polling
// the candidate-field count. Callers bound the wait with ctx.
func (b *Browser) WaitMutation(ctx context.Context) error {
	countExpr := fmt.Sprintf(`document.querySelectorAll(%s).length`, strconv.Quote(FieldSelector))

	var baseline int
	if err := b.run(ctx, chromedp.Evaluate(countExpr, &baseline)); err != nil {
		return &Error{Op: "observe", Message: "baseline field count failed", Cause: err}
	}

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			var current int
			if err := b.run(ctx, chromedp.Evaluate(countExpr, &current)); err != nil {
				return &Error{Op: "observe", Message: "field count poll failed", Cause: err}
			}
			if current != baseline {
				return nil
			}
		}
	}
}

type browserContainer struct {
	browser *Browser
	root    string
	index   int
}

func (c *browserContainer) Fields(ctx context.Context) ([]Element, error) {
	store := fmt.Sprintf("window.__autofillFields%d", c.index+1)
	expr := fmt.Sprintf(`(() => {%s
  %s = Array.from((%s).querySelectorAll(%s));
  return %s.map(autofillMeta);
})()`, metaJS, store, c.root, strconv.Quote(FieldSelector), store)

	var metas []elementMeta
	if err := c.browser.run(ctx, chromedp.Evaluate(expr, &metas)); err != nil {
		return nil, &Error{Op: "fields", Message: "container enumeration failed", Cause: err}
	}
	out := make([]Element, len(metas))
	for i, meta := range metas {
		out[i] = &browserElement{browser: c.browser, ref: fmt.Sprintf("%s[%d]", store, i), meta: meta}
	}
	return out, nil
}

// browserElement reads from the metadata snapshot taken at enumeration and
// writes through JavaScript evaluated against the stored node reference.
type browserElement struct {
	browser *Browser
	ref     string
	meta    elementMeta
}

func (e *browserElement) Tag() string          { return e.meta.Tag }
func (e *browserElement) InputType() string    { return e.meta.Type }
func (e *browserElement) Text() string         { return e.meta.Text }
func (e *browserElement) Visible() bool        { return e.meta.Visible }
func (e *browserElement) Enabled() bool        { return e.meta.Enabled }
func (e *browserElement) Value() string        { return e.meta.Value }
func (e *browserElement) Checked() bool        { return e.meta.Checked }
func (e *browserElement) Options() []Option    { return e.meta.Options }

func (e *browserElement) Attr(name string) string {
	switch name {
	case "name":
		return e.meta.Name
	case "id":
		return e.meta.ID
	case "placeholder":
		return e.meta.Placeholder
	case "autocomplete":
		return e.meta.Autocomplete
	case "class":
		return e.meta.ClassName
	case "title":
		return e.meta.Title
	case "aria-label":
		return e.meta.AriaLabel
	}
	return ""
}

func (e *browserElement) Labels() LabelContext {
	return LabelContext{
		ForLabel:      e.meta.ForLabel,
		AncestorLabel: e.meta.Ancestor,
		SiblingLabel:  e.meta.Sibling,
		AriaLabel:     e.meta.AriaLabel,
		LabelledBy:    e.meta.LabelledBy,
		Title:         e.meta.Title,
		ParentText:    e.meta.ParentText,
	}
}

func (e *browserElement) eval(ctx context.Context, body string, args ...any) error {
	expr := fmt.Sprintf("(el => {%s})(%s)", fmt.Sprintf(body, args...), e.ref)
	if err := e.browser.run(ctx, chromedp.Evaluate(expr, nil)); err != nil {
		return &Error{Op: "eval", Message: "element operation failed", Cause: err}
	}
	return nil
}

// SetValue assigns through the prototype's native value setter so
// framework-installed property shadows still observe the change.
func (e *browserElement) SetValue(ctx context.Context, v string) error {
	return e.eval(ctx, `
  const proto = el.tagName === 'TEXTAREA' ? HTMLTextAreaElement.prototype : HTMLInputElement.prototype;
  const desc = Object.getOwnPropertyDescriptor(proto, 'value');
  if (desc && desc.set) { desc.set.call(el, %s); } else { el.value = %s; }`,
		strconv.Quote(v), strconv.Quote(v))
}

func (e *browserElement) SetChecked(ctx context.Context, v bool) error {
	return e.eval(ctx, `el.checked = %t;`, v)
}

func (e *browserElement) SelectValue(ctx context.Context, optionValue string) error {
	return e.eval(ctx, `el.value = %s;`, strconv.Quote(optionValue))
}

func (e *browserElement) Dispatch(ctx context.Context, events ...Event) error {
	var sb strings.Builder
	for _, ev := range events {
		fmt.Fprintf(&sb, "el.dispatchEvent(new Event(%s, {bubbles: true, cancelable: true}));\n",
			strconv.Quote(string(ev)))
	}
	return e.eval(ctx, "%s", sb.String())
}

// Click fires the DOM click method plus synthetic MouseEvent and Event
// dispatches, covering the varied ways host pages wire their handlers.
func (e *browserElement) Click(ctx context.Context) error {
	return e.eval(ctx, `
  el.click();
  el.dispatchEvent(new MouseEvent('click', {bubbles: true, cancelable: true}));
  el.dispatchEvent(new Event('click', {bubbles: true}));`)
}

func (e *browserElement) ScrollIntoView(ctx context.Context) error {
	return e.eval(ctx, `el.scrollIntoView({behavior: 'smooth', block: 'center', inline: 'nearest'});`)
}

func (e *browserElement) Highlight(ctx context.Context, color string) error {
	return e.eval(ctx, `
  el.style.outline = '2px solid ' + %s;
  el.style.backgroundColor = %s + '22';`, strconv.Quote(color), strconv.Quote(color))
}

func (e *browserElement) RadioGroup(ctx context.Context) ([]Element, error) {
	if e.meta.Name == "" {
		return []Element{e}, nil
	}
	selector := fmt.Sprintf(`input[type="radio"][name="%s"]`, e.meta.Name)
	return e.browser.collect(ctx, "window.__autofillRadios", selector)
}
