package view

import (
	"charm.land/lipgloss/v2"
)

// Styles holds the lipgloss styles used to draw a document.
type Styles struct {
	Key         lipgloss.Style // object keys
	String      lipgloss.Style
	Number      lipgloss.Style
	Bool        lipgloss.Style
	Null        lipgloss.Style
	Punctuation lipgloss.Style // braces, brackets, commas and fold toggles
	Button      lipgloss.Style // view switch buttons
	Index       lipgloss.Style // row numbers of tables
	Header      lipgloss.Style // column names of tables
	Border      lipgloss.Style // table grid lines
	Placeholder lipgloss.Style // values that cannot be shown
}

// DefaultStyles uses the bright ANSI palette.
func DefaultStyles() Styles {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return Styles{
		Key:         fg("12"),
		String:      fg("10"),
		Number:      fg("14"),
		Bool:        fg("11"),
		Null:        fg("9"),
		Punctuation: lipgloss.NewStyle(),
		Button:      fg("8"),
		Index:       fg("8"),
		Header:      lipgloss.NewStyle().Bold(true),
		Border:      lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle(),
	}
}

// PlainStyles draws everything without colors.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Key: s, String: s, Number: s, Bool: s, Null: s,
		Punctuation: s, Button: s, Index: s, Header: s, Border: s, Placeholder: s,
	}
}
