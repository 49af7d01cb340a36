package widget

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// NavKeys are the bindings the screen uses to move focus.
type NavKeys struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultNavKeys returns arrow, vi and paging bindings.
func DefaultNavKeys() NavKeys {
	return NavKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous row")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next row")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous item in row")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next item in row")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first item")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last item")),
	}
}

// Bindings lists the navigation bindings in display order.
func (k NavKeys) Bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Home, k.End}
}

// Event wraps a bubbletea message during dispatch.
type Event struct {
	Msg    tea.Msg
	screen *Screen
}

// IsKey reports whether the event is a key press matching one of names,
// using bubbletea's key string form ("enter", "space", "+", "ctrl+c").
func (e *Event) IsKey(names ...string) bool {
	k, ok := e.Msg.(tea.KeyPressMsg)
	if !ok {
		return false
	}
	return slices.Contains(names, k.String())
}

// IsPrimaryClick reports whether the event is a left button press.
func (e *Event) IsPrimaryClick() bool {
	m, ok := e.Msg.(tea.MouseClickMsg)
	return ok && m.Button == tea.MouseLeft
}

// Focus moves keyboard focus to c.
func (e *Event) Focus(c Component) {
	if e.screen != nil {
		e.screen.Focus(c)
	}
}

// FocusWithin moves focus to the first focusable descendant of c once the
// next frame has been rendered.
func (e *Event) FocusWithin(c Component) {
	if e.screen != nil {
		e.screen.FocusWithin(c)
	}
}

type hit struct {
	x0, x1 int
	owner  Component
}

// Screen renders a component tree into frames and routes input to it.
// It is not safe for concurrent use; bubbletea drives it from one goroutine.
type Screen struct {
	root Component
	keys NavKeys

	focused Component
	pending Component
	lastRow int
	page    int

	chain []Component
	hits  [][]hit
	frame Block
}

// NewScreen returns a screen for root.
func NewScreen(root Component, keys NavKeys) *Screen {
	return &Screen{root: root, keys: keys, page: 10}
}

// Root returns the component tree.
func (s *Screen) Root() Component { return s.root }

// Keys returns the navigation bindings.
func (s *Screen) Keys() NavKeys { return s.keys }

// SetPageSize sets the distance of a page-up or page-down move in rows.
func (s *Screen) SetPageSize(rows int) {
	s.page = max(1, rows)
}

// Focused returns the focused component, or nil when nothing is focusable.
func (s *Screen) Focused() Component { return s.focused }

// Focus moves keyboard focus to c. A component that is not on screen keeps
// the request until the next frame decides where focus lands.
func (s *Screen) Focus(c Component) {
	if c != nil && c.Focusable() {
		s.focused = c
		s.pending = nil
	}
}

// FocusWithin defers focus to the first focusable descendant of c that
// appears in the next frame.
func (s *Screen) FocusWithin(c Component) {
	s.pending = c
}

// FocusedBox is the box of the focused component in the last frame.
func (s *Screen) FocusedBox() Box {
	if s.focused == nil {
		return emptyBox
	}
	return s.focused.base().box
}

// Chain returns the focusable components of the last frame in reading order.
func (s *Screen) Chain() []Component { return slices.Clone(s.chain) }

// Render draws a new frame, refreshes layout boxes and the focus chain and
// returns the frame with the focused component highlighted.
func (s *Screen) Render() Block {
	block := s.root.Render()
	resetBoxes(s.root)

	s.chain = s.chain[:0]
	s.hits = make([][]hit, len(block))
	seen := make(map[Component]bool)
	for y, line := range block {
		x := 0
		for _, span := range line {
			w := span.Width()
			if span.Owner != nil && w > 0 {
				ob := span.Owner.base()
				ob.box = ob.box.union(Box{X0: x, Y0: y, X1: x + w - 1, Y1: y})
				s.hits[y] = append(s.hits[y], hit{x0: x, x1: x + w - 1, owner: span.Owner})
				if span.Owner.Focusable() && !seen[span.Owner] {
					seen[span.Owner] = true
					s.chain = append(s.chain, span.Owner)
				}
			}
			x += w
		}
	}
	s.resolveFocus(seen)

	s.frame = make(Block, len(block))
	for y, line := range block {
		out := make(Line, len(line))
		for i, span := range line {
			if span.Owner != nil && span.Owner == s.focused {
				span.Style = span.Style.Reverse(true)
			}
			out[i] = span
		}
		s.frame[y] = out
	}
	return s.frame
}

func resetBoxes(c Component) {
	b := c.base()
	b.box = emptyBox
	for _, child := range b.children {
		resetBoxes(child)
	}
}

func (s *Screen) resolveFocus(seen map[Component]bool) {
	if s.pending != nil {
		for _, c := range s.chain {
			if Contains(s.pending, c) {
				s.focused = c
				break
			}
		}
		s.pending = nil
	}
	if len(s.chain) == 0 {
		s.focused = nil
		return
	}
	if s.focused == nil {
		s.focused = s.chain[0]
	} else if !seen[s.focused] {
		// The focused component vanished; land on the first entry of the
		// closest row above.
		row := s.chain[0].base().box.Y0
		for _, c := range s.chain {
			y := c.base().box.Y0
			if y > s.lastRow {
				break
			}
			row = y
		}
		for _, c := range s.chain {
			if c.base().box.Y0 == row {
				s.focused = c
				break
			}
		}
	}
	s.lastRow = s.focused.base().box.Y0
}

// Frame returns the last rendered frame.
func (s *Screen) Frame() Block { return s.frame }

// String renders the last frame with ANSI styling.
func (s *Screen) String() string {
	rows := make([]string, len(s.frame))
	for y, line := range s.frame {
		var b strings.Builder
		for _, span := range line {
			b.WriteString(span.Style.Render(span.Text))
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

// Plain returns the last frame without styling.
func (s *Screen) Plain() string { return s.frame.Plain() }

// Dispatch routes msg to the component tree and reports whether it had an
// effect. Keys go to the focused component and bubble to its ancestors;
// unhandled keys move focus. A primary click focuses the component under
// the pointer and then bubbles from it.
func (s *Screen) Dispatch(msg tea.Msg) bool {
	switch m := msg.(type) {
	case tea.KeyPressMsg:
		ev := &Event{Msg: msg, screen: s}
		for _, c := range Ancestors(s.focused) {
			if c.OnEvent(ev) {
				return true
			}
		}
		return s.navigate(m)
	case tea.MouseClickMsg:
		return s.click(msg, m.X, m.Y)
	}
	return false
}

func (s *Screen) click(msg tea.Msg, x, y int) bool {
	target := s.hitTest(x, y)
	if target == nil {
		return s.focusRow(x, y)
	}
	focused := false
	for _, c := range Ancestors(target) {
		if c.Focusable() {
			s.Focus(c)
			s.lastRow = c.base().box.Y0
			focused = true
			break
		}
	}
	if !focused {
		s.focusRow(x, y)
	}
	ev := &Event{Msg: msg, screen: s}
	for _, c := range Ancestors(target) {
		if c.OnEvent(ev) {
			return true
		}
	}
	return true
}

func (s *Screen) hitTest(x, y int) Component {
	if y < 0 || y >= len(s.hits) {
		return nil
	}
	for _, h := range s.hits[y] {
		if x >= h.x0 && x <= h.x1 {
			return h.owner
		}
	}
	return nil
}

// focusRow focuses the chain entry on row y closest to column x.
func (s *Screen) focusRow(x, y int) bool {
	var best Component
	dist := 0
	for _, c := range s.chain {
		b := c.base().box
		if b.Y0 != y {
			continue
		}
		if d := abs(b.X0 - x); best == nil || d < dist {
			best, dist = c, d
		}
	}
	if best == nil || best == s.focused {
		return false
	}
	s.Focus(best)
	s.lastRow = y
	return true
}

func (s *Screen) navigate(msg tea.KeyPressMsg) bool {
	switch {
	case key.Matches(msg, s.keys.Up):
		return s.moveRow(-1, 1)
	case key.Matches(msg, s.keys.Down):
		return s.moveRow(1, 1)
	case key.Matches(msg, s.keys.Left):
		return s.moveInRow(-1)
	case key.Matches(msg, s.keys.Right):
		return s.moveInRow(1)
	case key.Matches(msg, s.keys.PageUp):
		return s.moveRow(-1, s.page)
	case key.Matches(msg, s.keys.PageDown):
		return s.moveRow(1, s.page)
	case key.Matches(msg, s.keys.Home):
		return s.moveTo(0)
	case key.Matches(msg, s.keys.End):
		return s.moveTo(len(s.chain) - 1)
	}
	return false
}

func (s *Screen) index() int {
	return slices.Index(s.chain, s.focused)
}

func (s *Screen) moveTo(i int) bool {
	if i < 0 || i >= len(s.chain) || s.chain[i] == s.focused {
		return false
	}
	s.focused = s.chain[i]
	s.lastRow = s.focused.base().box.Y0
	return true
}

// moveRow moves focus rows rows up (dir -1) or down (dir 1), landing on the
// entry of the target row closest to the current column. A move always
// reaches at least the adjacent focusable row.
func (s *Screen) moveRow(dir, rows int) bool {
	cur := s.index()
	if cur < 0 {
		return s.moveTo(0)
	}
	from := s.chain[cur].base().box
	target := from.Y0 + dir*rows

	row := -1
	for i := range s.chain {
		y := s.chain[i].base().box.Y0
		if dir > 0 && y > from.Y0 && (row < 0 || y <= target && y > row || row > target && y < row) {
			row = y
		}
		if dir < 0 && y < from.Y0 && (row < 0 || y >= target && y < row || row < target && y > row) {
			row = y
		}
	}
	if row < 0 {
		return false
	}

	best := -1
	for i, c := range s.chain {
		b := c.base().box
		if b.Y0 != row {
			continue
		}
		if best < 0 || abs(b.X0-from.X0) < abs(s.chain[best].base().box.X0-from.X0) {
			best = i
		}
	}
	return s.moveTo(best)
}

func (s *Screen) moveInRow(dir int) bool {
	cur := s.index()
	if cur < 0 {
		return s.moveTo(0)
	}
	y := s.chain[cur].base().box.Y0
	next := cur + dir
	if next < 0 || next >= len(s.chain) || s.chain[next].base().box.Y0 != y {
		return false
	}
	return s.moveTo(next)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
