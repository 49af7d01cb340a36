// Package input filters terminal events before they reach the widget tree.
//
// The Router handles what no single widget owns: two-key sequences that jump
// to the ends of the document, quitting, and turning the mouse wheel into
// row navigation. Everything else falls through to the screen dispatcher.
package input

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
)

// maxJump bounds the focus moves of a single jump so a misbehaving focus
// chain cannot hang the event loop.
const maxJump = 1 << 20

// Dispatcher is the part of the screen the router drives.
type Dispatcher interface {
	Dispatch(msg tea.Msg) bool
}

// KeyMap holds the global bindings.
type KeyMap struct {
	Top    key.Binding // single key
	Bottom key.Binding // pressed twice in a row
	Quit   key.Binding
}

// DefaultKeyMap returns G for the top, gg for the bottom and q or escape to
// quit.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Top:    key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "jump to top")),
		Bottom: key.NewBinding(key.WithKeys("g"), key.WithHelp("gg", "jump to bottom")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "quit")),
	}
}

// Bindings lists the global bindings in display order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Top, k.Bottom, k.Quit}
}

var (
	upMsg   = tea.KeyPressMsg{Code: tea.KeyUp}
	downMsg = tea.KeyPressMsg{Code: tea.KeyDown}
)

// Router is a pre-dispatch filter. It keeps the last two input events to
// detect key sequences.
type Router struct {
	target   Dispatcher
	keys     KeyMap
	log      logr.Logger
	previous tea.Msg
	next     tea.Msg
}

// NewRouter returns a router in front of target.
func NewRouter(target Dispatcher, keys KeyMap, log logr.Logger) *Router {
	return &Router{target: target, keys: keys, log: log}
}

// Update filters msg. It returns whether the router consumed the event and
// a command to run: tea.Quit when quitting, or a command re-injecting a
// navigation key for wheel events. Unconsumed events are for the caller to
// dispatch.
func (r *Router) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyPressMsg, tea.MouseMsg:
		r.previous, r.next = r.next, msg
	default:
		return false, nil
	}

	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(k, r.keys.Top):
			n := r.repeat(upMsg)
			r.log.V(1).Info("jump to top", "moves", n)
			return true, nil
		case key.Matches(k, r.keys.Bottom) && r.isSequence(r.keys.Bottom):
			n := r.repeat(downMsg)
			r.log.V(1).Info("jump to bottom", "moves", n)
			return true, nil
		case key.Matches(k, r.keys.Quit):
			r.log.V(1).Info("quit", "key", k.String())
			return true, tea.Quit
		}
		return false, nil
	}

	if w, ok := msg.(tea.MouseWheelMsg); ok {
		switch w.Button {
		case tea.MouseWheelDown:
			return true, inject(downMsg)
		case tea.MouseWheelUp:
			return true, inject(upMsg)
		}
	}
	return false, nil
}

// isSequence reports whether the previous event also matched b.
func (r *Router) isSequence(b key.Binding) bool {
	k, ok := r.previous.(tea.KeyPressMsg)
	return ok && key.Matches(k, b)
}

func (r *Router) repeat(msg tea.Msg) int {
	n := 0
	for n < maxJump && r.target.Dispatch(msg) {
		n++
	}
	return n
}

func inject(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
