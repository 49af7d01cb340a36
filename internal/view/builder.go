// Package view turns a document into a tree of foldable widgets.
//
// Every object and array becomes an expandable component that owns one
// fold.Node; the nodes mirror the nesting of the document so that "+" and
// "-" can widen or narrow the whole subtree one level at a time. Arrays whose
// items are all objects can switch between a nested list and a table.
package view

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/kvfold/internal/document"
	"github.com/oakwood-commons/kvfold/internal/fold"
	"github.com/oakwood-commons/kvfold/internal/widget"
)

// Default fold depths: objects open down to depth 1, arrays only at the root.
const (
	DefaultObjectDepth = 1
	DefaultArrayDepth  = 0
)

// Bindings lists the keys handled by view nodes, for help output. The
// nodes match on key strings; these bindings only carry the help text.
func Bindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "expand subtree one level")),
		key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "collapse subtree one level")),
		key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter/space", "toggle fold or switch table/list")),
	}
}

// indentWidth is the indentation of nested entries.
const indentWidth = 2

// Builder maps document values to view components.
type Builder struct {
	Styles Styles
	// ObjectDepth is the deepest level at which objects start expanded.
	ObjectDepth int
	// ArrayDepth is the deepest level at which arrays start expanded.
	ArrayDepth int
	Log        logr.Logger
}

// NewBuilder returns a builder with the default fold depths.
func NewBuilder(styles Styles, log logr.Logger) *Builder {
	return &Builder{
		Styles:      styles,
		ObjectDepth: DefaultObjectDepth,
		ArrayDepth:  DefaultArrayDepth,
		Log:         log,
	}
}

// prefix is the key label drawn before a value inside an object.
type prefix struct {
	key string
	ok  bool
}

func keyPrefix(key string) prefix { return prefix{key: key, ok: true} }

// Build creates the view of v. Objects and arrays get a fresh child of
// parent as their fold node. isLast selects terminal punctuation instead of
// a trailing comma.
func (b *Builder) Build(v *document.Value, isLast bool, depth int, parent *fold.Node) widget.Component {
	return b.build(v, prefix{}, isLast, depth, parent, RootPath)
}

func (b *Builder) build(v *document.Value, pfx prefix, isLast bool, depth int, parent *fold.Node, path string) widget.Component {
	switch v.Kind() {
	case document.Object:
		return b.object(v, pfx, isLast, depth, parent, path)
	case document.Array:
		return b.array(v, pfx, isLast, depth, parent, path)
	case document.String:
		return b.entry(pfx, b.scalar(v, b.Styles.String, isLast, path))
	case document.Number:
		return b.entry(pfx, b.scalar(v, b.Styles.Number, isLast, path))
	case document.Bool:
		return b.entry(pfx, b.scalar(v, b.Styles.Bool, isLast, path))
	case document.Null:
		return b.entry(pfx, b.scalar(v, b.Styles.Null, isLast, path))
	case document.Unsupported:
		b.Log.V(1).Info("unsupported value", "path", path, "desc", v.Str())
		return b.entry(pfx, widget.NewLabel("Unimplemented", b.Styles.Placeholder))
	}
	return b.entry(pfx, widget.NewLabel("Unimplemented", b.Styles.Placeholder))
}

// Scalar is a focusable leaf showing a string, number, boolean or null.
type Scalar struct {
	widget.Base
	value  *document.Value
	style  lipgloss.Style
	punct  lipgloss.Style
	isLast bool
	path   string
}

func (b *Builder) scalar(v *document.Value, style lipgloss.Style, isLast bool, path string) *Scalar {
	return &Scalar{value: v, style: style, punct: b.Styles.Punctuation, isLast: isLast, path: path}
}

func (s *Scalar) Focusable() bool { return true }

// Path is the document path of the value.
func (s *Scalar) Path() string { return s.path }

// Value returns the document value shown.
func (s *Scalar) Value() *document.Value { return s.value }

// Text is the literal drawn for the value.
func (s *Scalar) Text() string { return s.value.Literal() }

func (s *Scalar) Render() widget.Block {
	line := widget.Line{{Text: s.Text(), Style: s.style, Owner: s}}
	if !s.isLast {
		line = append(line, widget.Span{Text: ",", Style: s.punct})
	}
	return widget.Block{line}
}

// KeyLabel draws `"key": ` in front of an object entry.
type KeyLabel struct {
	widget.Base
	key   string
	style lipgloss.Style
}

func (b *Builder) keyLabel(key string) *KeyLabel {
	return &KeyLabel{key: key, style: b.Styles.Key}
}

func (k *KeyLabel) Render() widget.Block {
	return widget.Block{widget.Line{
		{Text: strconv.Quote(k.key), Style: k.style, Owner: k},
		{Text: ": ", Owner: k},
	}}
}

// Entry is an object entry holding a leaf value.
type Entry struct {
	widget.Base
	label *KeyLabel
	value widget.Component
}

func (b *Builder) entry(pfx prefix, value widget.Component) widget.Component {
	if !pfx.ok {
		return value
	}
	e := &Entry{label: b.keyLabel(pfx.key), value: value}
	widget.Add(e, e.label)
	widget.Add(e, value)
	return e
}

func (e *Entry) Render() widget.Block {
	return widget.HBox(e.label.Render(), e.value.Render())
}

// header builds the first line of a container: key label, fold toggle and
// optional trailing widgets.
func (b *Builder) header(pfx prefix, toggle *widget.Toggle, extra ...widget.Component) *widget.Horizontal {
	h := widget.NewHorizontal()
	if pfx.ok {
		widget.Add(h, b.keyLabel(pfx.key))
	}
	widget.Add(h, toggle)
	for _, c := range extra {
		widget.Add(h, c)
	}
	return h
}

func punctuated(s string, isLast bool) string {
	if isLast {
		return s
	}
	return s + ","
}

// Expandable is the part shared by objects, lists and tables: a fold node,
// the toggle bound to it and the "+"/"-" bindings acting on the subtree.
type Expandable struct {
	widget.Base
	fold   *fold.Node
	toggle *widget.Toggle
	inner  widget.Component
	path   string
	log    logr.Logger
}

func (e *Expandable) init(b *Builder, node *fold.Node, path string) {
	e.fold = node
	e.path = path
	e.log = b.Log
}

// Fold returns the fold node governing the component.
func (e *Expandable) Fold() *fold.Node { return e.fold }

// Toggle returns the widget that opens and closes the component.
func (e *Expandable) Toggle() *widget.Toggle { return e.toggle }

// Path is the document path of the container.
func (e *Expandable) Path() string { return e.path }

func (e *Expandable) Render() widget.Block { return e.inner.Render() }

// OnEvent handles "+" and "-" that bubbled up from a descendant. A "-" that
// cannot collapse anything here keeps bubbling so an ancestor collapses.
func (e *Expandable) OnEvent(ev *widget.Event) bool {
	switch {
	case ev.IsKey("+"):
		changed := e.fold.Expand()
		e.log.V(1).Info("expand", "path", e.path, "changed", changed, "min", e.fold.MinLevel(), "max", e.fold.MaxLevel())
		return true
	case ev.IsKey("-"):
		ev.Focus(e.toggle)
		changed := e.fold.Collapse()
		e.log.V(1).Info("collapse", "path", e.path, "changed", changed, "min", e.fold.MinLevel(), "max", e.fold.MaxLevel())
		return changed
	}
	return false
}

// Object is the view of an object: a "{" toggle followed by indented
// entries and the closing brace.
type Object struct {
	Expandable
	value *document.Value
}

func (b *Builder) object(v *document.Value, pfx prefix, isLast bool, depth int, parent *fold.Node, path string) *Object {
	o := &Object{value: v}
	o.init(b, parent.Child(), path)
	o.fold.Expanded = depth <= b.ObjectDepth

	body := widget.NewVertical()
	entries := v.Entries()
	for i, e := range entries {
		child := b.build(e.Value, keyPrefix(e.Key), i == len(entries)-1, depth+1, o.fold, KeyPath(path, e.Key))
		widget.Add(body, widget.NewIndented(indentWidth, child))
	}
	widget.Add(body, widget.NewLabel(punctuated("}", isLast), b.Styles.Punctuation))

	o.toggle = widget.NewToggle("{", punctuated("{...}", isLast), &o.fold.Expanded, b.Styles.Punctuation)
	o.inner = widget.NewVertical(b.header(pfx, o.toggle), widget.NewMaybe(body, &o.fold.Expanded))
	widget.Add(o, o.inner)
	return o
}

// Value returns the object shown.
func (o *Object) Value() *document.Value { return o.value }

// ArrayView is the slot an array is drawn in. It holds either a List or a
// Table and keeps its position in the tree while the two are swapped.
type ArrayView struct {
	widget.Base
}

func (b *Builder) array(v *document.Value, pfx prefix, isLast bool, depth int, parent *fold.Node, path string) *ArrayView {
	a := &ArrayView{}
	widget.Add(a, b.list(v, pfx, isLast, depth, parent, path))
	return a
}

// Current returns the List or Table currently shown.
func (a *ArrayView) Current() widget.Component {
	children := a.Children()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func (a *ArrayView) Render() widget.Block {
	if c := a.Current(); c != nil {
		return c.Render()
	}
	return widget.Blank()
}

// arrayState is what a list or table needs to rebuild itself as the other.
type arrayState struct {
	value      *document.Value
	pfx        prefix
	isLast     bool
	depth      int
	foldParent *fold.Node
	builder    *Builder
}

// List is the nested rendering of an array.
type List struct {
	Expandable
	arrayState
	button *widget.Button
}

func (b *Builder) list(v *document.Value, pfx prefix, isLast bool, depth int, parent *fold.Node, path string) *List {
	l := &List{arrayState: arrayState{value: v, pfx: pfx, isLast: isLast, depth: depth, foldParent: parent, builder: b}}
	l.init(b, parent.Child(), path)
	l.fold.Expanded = depth <= b.ArrayDepth

	body := widget.NewVertical()
	items := v.Items()
	for i, item := range items {
		child := b.build(item, prefix{}, i == len(items)-1, depth+1, l.fold, IndexPath(path, i))
		widget.Add(body, widget.NewIndented(indentWidth, child))
	}
	widget.Add(body, widget.NewLabel(punctuated("]", isLast), b.Styles.Punctuation))

	l.toggle = widget.NewToggle("[", punctuated("[...]", isLast), &l.fold.Expanded, b.Styles.Punctuation)
	var extra []widget.Component
	if IsTableSuitable(v) {
		l.button = widget.NewButton("   ", "(table view)", b.Styles.Button, func(ev *widget.Event) {
			b.ToTable(l, ev)
		})
		extra = append(extra, l.button)
	}
	l.inner = widget.NewVertical(b.header(pfx, l.toggle, extra...), widget.NewMaybe(body, &l.fold.Expanded))
	widget.Add(l, l.inner)
	return l
}

// Value returns the array shown.
func (l *List) Value() *document.Value { return l.value }

// Button returns the "(table view)" button, or nil when the array cannot be
// shown as a table.
func (l *List) Button() *widget.Button { return l.button }
