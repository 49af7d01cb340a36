package widget

import (
	"charm.land/lipgloss/v2"
)

// Label is a non-focusable run of styled text.
type Label struct {
	Base
	Text  string
	Style lipgloss.Style
}

// NewLabel returns a label.
func NewLabel(text string, style lipgloss.Style) *Label {
	return &Label{Text: text, Style: style}
}

func (l *Label) Render() Block { return Text(l, l.Text, l.Style) }

// Toggle flips a shared boolean on enter, space or a primary click. The
// flag is owned by the caller so several widgets can observe it.
type Toggle struct {
	Base
	On, Off string
	Style   lipgloss.Style
	State   *bool
}

// NewToggle returns a toggle showing on when *state is true and off otherwise.
func NewToggle(on, off string, state *bool, style lipgloss.Style) *Toggle {
	return &Toggle{On: on, Off: off, State: state, Style: style}
}

func (t *Toggle) Focusable() bool { return true }

func (t *Toggle) Render() Block {
	label := t.Off
	if *t.State {
		label = t.On
	}
	return Text(t, label, t.Style)
}

func (t *Toggle) OnEvent(ev *Event) bool {
	if ev.IsKey("enter", "space") || ev.IsPrimaryClick() {
		*t.State = !*t.State
		ev.Focus(t)
		return true
	}
	return false
}

// Button runs an action on enter or a primary click.
type Button struct {
	Base
	Prefix string
	Title  string
	Style  lipgloss.Style
	Action func(ev *Event)
}

// NewButton returns a button drawn as prefix followed by the styled title.
// Only the title is highlighted when focused.
func NewButton(prefix, title string, style lipgloss.Style, action func(ev *Event)) *Button {
	return &Button{Prefix: prefix, Title: title, Style: style, Action: action}
}

func (b *Button) Focusable() bool { return true }

func (b *Button) Render() Block {
	return Block{Line{
		{Text: b.Prefix},
		{Text: b.Title, Style: b.Style, Owner: b},
	}}
}

func (b *Button) OnEvent(ev *Event) bool {
	if ev.IsKey("enter") || ev.IsPrimaryClick() {
		ev.Focus(b)
		if b.Action != nil {
			b.Action(ev)
		}
		return true
	}
	return false
}

// Vertical stacks its children top to bottom.
type Vertical struct {
	Base
}

// NewVertical returns a container holding children.
func NewVertical(children ...Component) *Vertical {
	v := &Vertical{}
	for _, c := range children {
		Add(v, c)
	}
	return v
}

func (v *Vertical) Render() Block {
	var out Block
	for _, c := range v.children {
		out = append(out, c.Render()...)
	}
	return out
}

// Horizontal lays its children out side by side.
type Horizontal struct {
	Base
}

// NewHorizontal returns a container holding children.
func NewHorizontal(children ...Component) *Horizontal {
	h := &Horizontal{}
	for _, c := range children {
		Add(h, c)
	}
	return h
}

func (h *Horizontal) Render() Block {
	blocks := make([]Block, len(h.children))
	for i, c := range h.children {
		blocks[i] = c.Render()
	}
	return HBox(blocks...)
}

// Indented shifts its single child right.
type Indented struct {
	Base
	Width int
}

// NewIndented wraps child with width columns of indentation.
func NewIndented(width int, child Component) *Indented {
	in := &Indented{Width: width}
	Add(in, child)
	return in
}

func (in *Indented) Render() Block {
	if len(in.children) == 0 {
		return Blank()
	}
	return Indent(in.Width, in.children[0].Render())
}

// Maybe renders its child only while *visible is true.
type Maybe struct {
	Base
	Visible *bool
}

// NewMaybe wraps child.
func NewMaybe(child Component, visible *bool) *Maybe {
	m := &Maybe{Visible: visible}
	Add(m, child)
	return m
}

func (m *Maybe) Render() Block {
	if !*m.Visible || len(m.children) == 0 {
		return nil
	}
	return m.children[0].Render()
}
