package dom

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is the synthetic DOM implementation backed by goquery. It exists so
// the classification and fill logic can run against static HTML in tests and
// offline analysis. Style-based visibility is approximated from inline
// attributes; there is no layout, so the zero-bounding-box rule of a real
// browser cannot apply here.
type Page struct {
	mu      sync.Mutex
	doc     *goquery.Document
	events  []EventRecord
	clicks  []clickHandler
	mutated chan struct{}
}

// EventRecord is one synthetic event dispatched to the page, kept so tests
// can assert the writer's event contract.
type EventRecord struct {
	Target string // element name, id, or tag when both are absent
	Event  Event
}

type clickHandler struct {
	selector string
	fn       func(*Page)
}

// NewPage parses an HTML document into a synthetic page.
func NewPage(rawHTML string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, &Error{Op: "parse", Message: "failed to parse HTML", Cause: err}
	}
	return &Page{doc: doc, mutated: make(chan struct{})}, nil
}

// OnClick registers a scripted click behavior for elements matching the
// selector, standing in for the host page's own handlers.
func (p *Page) OnClick(selector string, fn func(*Page)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clicks = append(p.clicks, clickHandler{selector: selector, fn: fn})
}

// AppendHTML appends a fragment to the first element matching the selector
// and signals a structural mutation, the way a host page reveals a new
// repeated-entry block.
func (p *Page) AppendHTML(selector, fragment string) error {
	p.mu.Lock()
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		p.mu.Unlock()
		return &Error{Op: "append", Message: fmt.Sprintf("no element matches %q", selector)}
	}
	sel.AppendHtml(fragment)
	p.mu.Unlock()
	p.signalMutation()
	return nil
}

// Events returns the synthetic events dispatched so far, in order.
func (p *Page) Events() []EventRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]EventRecord, len(p.events))
	copy(out, p.events)
	return out
}

// EventsFor returns the events dispatched to one target.
func (p *Page) EventsFor(target string) []Event {
	var out []Event
	for _, rec := range p.Events() {
		if rec.Target == target {
			out = append(out, rec.Event)
		}
	}
	return out
}

func (p *Page) record(target string, ev Event) {
	p.mu.Lock()
	p.events = append(p.events, EventRecord{Target: target, Event: ev})
	p.mu.Unlock()
}

func (p *Page) signalMutation() {
	p.mu.Lock()
	close(p.mutated)
	p.mutated = make(chan struct{})
	p.mu.Unlock()
}

func (p *Page) mutationChan() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mutated
}

// Forms implements Document.
func (p *Page) Forms(_ context.Context) ([]Container, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Container
	p.doc.Find("form").Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &pageContainer{page: p, sel: sel})
	})
	return out, nil
}

// Root implements Document.
func (p *Page) Root(_ context.Context) (Container, error) {
	return &pageContainer{page: p, sel: p.doc.Selection}, nil
}

// Fields implements Document.
func (p *Page) Fields(ctx context.Context) ([]Element, error) {
	root, _ := p.Root(ctx)
	return root.Fields(ctx)
}

// Clickables implements Document.
func (p *Page) Clickables(_ context.Context) ([]Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Element
	p.doc.Find(ClickableSelector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &pageElement{page: p, sel: sel})
	})
	return out, nil
}

// WaitMutation implements Document.
func (p *Page) WaitMutation(ctx context.Context) error {
	select {
	case <-p.mutationChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type pageContainer struct {
	page *Page
	sel  *goquery.Selection
}

func (c *pageContainer) Fields(_ context.Context) ([]Element, error) {
	c.page.mu.Lock()
	defer c.page.mu.Unlock()
	var out []Element
	c.sel.Find(FieldSelector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &pageElement{page: c.page, sel: sel})
	})
	return out, nil
}

type pageElement struct {
	page *Page
	sel  *goquery.Selection
}

func (e *pageElement) node() *html.Node {
	if len(e.sel.Nodes) == 0 {
		return nil
	}
	return e.sel.Nodes[0]
}

func (e *pageElement) target() string {
	if name := e.Attr("name"); name != "" {
		return name
	}
	if id := e.Attr("id"); id != "" {
		return id
	}
	return e.Tag()
}

func (e *pageElement) Tag() string {
	n := e.node()
	if n == nil {
		return ""
	}
	return strings.ToLower(n.Data)
}

func (e *pageElement) InputType() string {
	switch e.Tag() {
	case "select":
		return "select"
	case "textarea":
		return "textarea"
	}
	if t := strings.ToLower(strings.TrimSpace(e.Attr("type"))); t != "" {
		return t
	}
	return "text"
}

func (e *pageElement) Attr(name string) string {
	v, _ := e.sel.Attr(name)
	return v
}

func (e *pageElement) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

func (e *pageElement) Visible() bool {
	for n := e.node(); n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		for _, a := range n.Attr {
			switch a.Key {
			case "hidden":
				return false
			case "style":
				if styleHides(a.Val) {
					return false
				}
			}
		}
	}
	return true
}

func styleHides(style string) bool {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	return strings.Contains(s, "display:none") ||
		strings.Contains(s, "visibility:hidden") ||
		strings.Contains(s, "opacity:0;") ||
		strings.HasSuffix(s, "opacity:0")
}

func (e *pageElement) Enabled() bool {
	if _, ok := e.sel.Attr("disabled"); ok {
		return false
	}
	if _, ok := e.sel.Attr("readonly"); ok {
		return false
	}
	return e.Attr("aria-disabled") != "true"
}

func (e *pageElement) Value() string {
	switch e.Tag() {
	case "textarea":
		return e.sel.Text()
	case "select":
		if v, ok := e.sel.Attr("value"); ok {
			return v
		}
		var selected string
		e.sel.Find("option[selected]").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
			selected = opt.AttrOr("value", strings.TrimSpace(opt.Text()))
			return false
		})
		return selected
	default:
		return e.Attr("value")
	}
}

func (e *pageElement) Checked() bool {
	_, ok := e.sel.Attr("checked")
	return ok
}

func (e *pageElement) Options() []Option {
	if e.Tag() != "select" {
		return nil
	}
	var out []Option
	e.sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		text := strings.TrimSpace(opt.Text())
		out = append(out, Option{Value: opt.AttrOr("value", text), Text: text})
	})
	return out
}

func (e *pageElement) Labels() LabelContext {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()

	ctx := LabelContext{
		AriaLabel: e.Attr("aria-label"),
		Title:     e.Attr("title"),
	}

	if id := e.Attr("id"); id != "" {
		ctx.ForLabel = strings.TrimSpace(e.page.doc.Find(fmt.Sprintf(`label[for="%s"]`, id)).First().Text())
	}

	if ancestor := e.sel.Closest("label"); ancestor.Length() > 0 {
		ctx.AncestorLabel = textExcludingControls(ancestor.Nodes[0])
	}

	for n := prevElement(e.node()); n != nil; n = prevElement(n) {
		if strings.EqualFold(n.Data, "label") {
			ctx.SiblingLabel = textExcludingControls(n)
			break
		}
	}

	if ref := e.Attr("aria-labelledby"); ref != "" {
		ctx.LabelledBy = strings.TrimSpace(e.page.doc.Find("#" + ref).First().Text())
	}

	if parent := e.node().Parent; parent != nil && parent.Type == html.ElementNode {
		if text := textExcludingControls(parent); len(text) < 100 {
			ctx.ParentText = text
		}
	}

	return ctx
}

func prevElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// textExcludingControls collects the text content of a subtree, skipping
// form controls so an input nested inside its label does not pollute the
// label text.
func textExcludingControls(root *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "input", "select", "textarea", "button":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func (e *pageElement) SetValue(_ context.Context, v string) error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if e.Tag() == "textarea" {
		e.sel.SetText(v)
		return nil
	}
	e.sel.SetAttr("value", v)
	return nil
}

func (e *pageElement) SetChecked(_ context.Context, v bool) error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if v {
		e.sel.SetAttr("checked", "checked")
	} else {
		e.sel.RemoveAttr("checked")
	}
	return nil
}

func (e *pageElement) SelectValue(_ context.Context, optionValue string) error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if e.Tag() != "select" {
		return &Error{Op: "select", Message: "element is not a select"}
	}
	e.sel.SetAttr("value", optionValue)
	e.sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		if opt.AttrOr("value", strings.TrimSpace(opt.Text())) == optionValue {
			opt.SetAttr("selected", "selected")
		} else {
			opt.RemoveAttr("selected")
		}
	})
	return nil
}

func (e *pageElement) Dispatch(_ context.Context, events ...Event) error {
	for _, ev := range events {
		e.page.record(e.target(), ev)
	}
	return nil
}

func (e *pageElement) Click(_ context.Context) error {
	e.page.record(e.target(), EventClick)

	// Snapshot matching handlers, then run them unlocked: handlers mutate
	// the page.
	e.page.mu.Lock()
	var fns []func(*Page)
	for _, h := range e.page.clicks {
		if e.sel.Is(h.selector) {
			fns = append(fns, h.fn)
		}
	}
	e.page.mu.Unlock()

	for _, fn := range fns {
		fn(e.page)
	}
	if len(fns) > 0 {
		e.page.signalMutation()
	}
	return nil
}

func (e *pageElement) ScrollIntoView(_ context.Context) error {
	return nil // no layout to scroll in a synthetic page
}

func (e *pageElement) Highlight(_ context.Context, color string) error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	e.sel.SetAttr("data-autofill-highlight", color)
	return nil
}

func (e *pageElement) RadioGroup(_ context.Context) ([]Element, error) {
	name := e.Attr("name")
	if name == "" {
		return []Element{e}, nil
	}
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	var out []Element
	e.page.doc.Find(fmt.Sprintf(`input[type="radio"][name="%s"]`, name)).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &pageElement{page: e.page, sel: sel})
	})
	return out, nil
}
