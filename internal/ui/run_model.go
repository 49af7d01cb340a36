package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/kvfold/internal/document"
)

// RunModel starts the Bubble Tea program for doc. Width/height of 0 will
// auto-detect the terminal size (falling back to defaults). Extra
// ProgramOptions (e.g., custom IO) are passed to tea.NewProgram.
func RunModel(doc *document.Value, opts Options, startKeys []string, progOpts ...tea.ProgramOption) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if opts.Width <= 0 {
				opts.Width = w
			}
			if opts.Height <= 0 {
				opts.Height = h
			}
		}
	}

	m := NewModel(doc, opts)
	if ApplyStartupKeys(m, startKeys) {
		return nil
	}
	m.log.V(1).Info("starting program", "width", m.WinWidth, "height", m.WinHeight, "fullscreen", m.Fullscreen)

	prog := tea.NewProgram(m, progOpts...)
	_, err := prog.Run()
	return err
}
