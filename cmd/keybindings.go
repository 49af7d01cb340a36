package cmd

import (
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/oakwood-commons/kvfold/internal/input"
	"github.com/oakwood-commons/kvfold/internal/view"
	"github.com/oakwood-commons/kvfold/internal/widget"
)

// mouseRows describe the fullscreen mouse handling, which has no key
// bindings.
var mouseRows = [][]string{
	{"wheel", "previous/next row"},
	{"click", "focus item; on a toggle, fold or unfold"},
}

// keyBindingRows lists every binding of the viewer as (keys, action) rows.
func keyBindingRows() [][]string {
	var bindings []key.Binding
	bindings = append(bindings, widget.DefaultNavKeys().Bindings()...)
	bindings = append(bindings, view.Bindings()...)
	bindings = append(bindings, input.DefaultKeyMap().Bindings()...)

	rows := make([][]string, 0, len(bindings)+len(mouseRows))
	for _, b := range bindings {
		h := b.Help()
		rows = append(rows, []string{h.Key, h.Desc})
	}
	return append(rows, mouseRows...)
}

// renderKeyBindings renders the binding reference as a bordered table.
func renderKeyBindings(noColor bool) string {
	header := lipgloss.NewStyle().Bold(!noColor).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEY", "ACTION").
		Rows(keyBindingRows()...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return t.String()
}
