package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/kvfold/internal/document"
	"github.com/oakwood-commons/kvfold/internal/fold"
	"github.com/oakwood-commons/kvfold/internal/input"
	"github.com/oakwood-commons/kvfold/internal/view"
	"github.com/oakwood-commons/kvfold/internal/widget"
)

// Default window size used until the terminal reports its size.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Options configures a Model.
type Options struct {
	Theme       Theme
	NoColor     bool
	Fullscreen  bool
	ObjectDepth int
	ArrayDepth  int
	Width       int
	Height      int
	Logger      logr.Logger
}

// DefaultOptions returns the built-in palette, default fold depths and an
// 80x24 window.
func DefaultOptions() Options {
	return Options{
		Theme:       fallbackDefaultTheme(),
		ObjectDepth: view.DefaultObjectDepth,
		ArrayDepth:  view.DefaultArrayDepth,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Logger:      logr.Discard(),
	}
}

// Model is the bubbletea model of the viewer: a widget screen holding the
// document view, the input router in front of it, a viewport that scrolls
// the frame and a status line.
type Model struct {
	Doc      *document.Value
	Fold     *fold.Node
	Screen   *widget.Screen
	Router   *input.Router
	Viewport viewport.Model

	NoColor    bool
	Fullscreen bool
	WinWidth   int
	WinHeight  int

	status lipgloss.Style
	log    logr.Logger
}

// NewModel builds the view of doc and renders the first frame.
func NewModel(doc *document.Value, opts Options) *Model {
	b := view.NewBuilder(opts.Theme.Styles(opts.NoColor), opts.Logger)
	b.ObjectDepth = opts.ObjectDepth
	b.ArrayDepth = opts.ArrayDepth

	root := fold.Root()
	screen := widget.NewScreen(widget.NewVertical(b.Build(doc, true, 0, root)), widget.DefaultNavKeys())
	m := &Model{
		Doc:        doc,
		Fold:       root,
		Screen:     screen,
		Router:     input.NewRouter(screen, input.DefaultKeyMap(), opts.Logger),
		Viewport:   viewport.New(),
		NoColor:    opts.NoColor,
		Fullscreen: opts.Fullscreen,
		status:     opts.Theme.StatusStyle(opts.NoColor),
		log:        opts.Logger,
	}
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	m.resize(w, h)
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width != m.WinWidth || msg.Height != m.WinHeight {
			m.resize(msg.Width, msg.Height)
		}
		return m, nil
	case tea.MouseClickMsg:
		if msg.Y >= m.Viewport.Height() {
			return m, nil
		}
		msg.X += m.Viewport.XOffset()
		msg.Y += m.Viewport.YOffset()
		return m, m.handle(msg)
	}
	return m, m.handle(msg)
}

// handle runs msg through the router and, unless consumed, the screen.
func (m *Model) handle(msg tea.Msg) tea.Cmd {
	consumed, cmd := m.Router.Update(msg)
	changed := consumed
	if !consumed {
		changed = m.Screen.Dispatch(msg)
	}
	if changed {
		m.refresh()
	}
	return cmd
}

func (m *Model) resize(w, h int) {
	m.WinWidth, m.WinHeight = w, h
	m.Viewport.SetWidth(w)
	m.refresh()
}

// refresh renders a new frame and scrolls the focused component into view.
func (m *Model) refresh() {
	frame := m.Screen.Render()
	lines := strings.Split(m.Screen.String(), "\n")
	if len(frame) == 0 {
		lines = nil
	}

	height := max(1, m.WinHeight-1)
	if !m.Fullscreen {
		height = max(1, min(height, len(frame)))
	}
	m.Viewport.SetHeight(height)
	m.Viewport.SetContentLines(lines)
	m.Screen.SetPageSize(height)

	if box := m.Screen.FocusedBox(); !box.Empty() {
		m.Viewport.EnsureVisible(box.Y1, box.X0, box.X1+1)
		m.Viewport.EnsureVisible(box.Y0, box.X0, box.X1+1)
	}
}

// DocumentFold is the fold node of the document's root container, or nil
// for a scalar document.
func (m *Model) DocumentFold() *fold.Node {
	children := m.Fold.Children()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// StatusLine shows the path of the focused node and the fold depth range
// of the document.
func (m *Model) StatusLine() string {
	parts := make([]string, 0, 2)
	if f := m.Screen.Focused(); f != nil {
		if p := view.PathOf(f); p != "" {
			parts = append(parts, p)
		}
	}
	if f := m.DocumentFold(); f != nil {
		parts = append(parts, fmt.Sprintf("depth %d/%d", f.MinLevel(), f.MaxLevel()))
	}
	line := strings.Join(parts, "  ")
	if m.WinWidth > 0 {
		line = runewidth.Truncate(line, m.WinWidth, "…")
	}
	return line
}

// Render returns the visible part of the frame and the status line.
func (m *Model) Render() string {
	return m.Viewport.View() + "\n" + m.status.Render(m.StatusLine())
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = m.Fullscreen
	if m.Fullscreen {
		v.MouseMode = tea.MouseModeCellMotion
	}
	return v
}
