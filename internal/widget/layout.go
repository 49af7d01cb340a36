package widget

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Span is a run of text drawn with one style. Owner is the component the
// span belongs to for focus highlighting and hit testing; nil for chrome.
type Span struct {
	Text  string
	Style lipgloss.Style
	Owner Component
}

// Width is the display width of the span in terminal cells.
func (s Span) Width() int {
	return runewidth.StringWidth(s.Text)
}

// Line is one row of spans.
type Line []Span

// Width is the display width of the line.
func (l Line) Width() int {
	w := 0
	for _, s := range l {
		w += s.Width()
	}
	return w
}

// Plain returns the text of the line without styling.
func (l Line) Plain() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Block is a rectangle of lines. Lines may be shorter than the block width.
type Block []Line

// Width is the width of the widest line.
func (b Block) Width() int {
	w := 0
	for _, l := range b {
		w = max(w, l.Width())
	}
	return w
}

// Height is the number of lines.
func (b Block) Height() int { return len(b) }

// Plain returns the text of the block, one line per row.
func (b Block) Plain() string {
	rows := make([]string, len(b))
	for i, l := range b {
		rows[i] = l.Plain()
	}
	return strings.Join(rows, "\n")
}

// Text returns a one-line block.
func Text(owner Component, s string, style lipgloss.Style) Block {
	return Block{Line{{Text: s, Style: style, Owner: owner}}}
}

// Blank returns a block of one empty line.
func Blank() Block {
	return Block{Line{}}
}

// VBox stacks blocks top to bottom.
func VBox(blocks ...Block) Block {
	var out Block
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

// HBox places blocks side by side. Each block starts at the column where the
// widest line of the previous one ended, so multi-line blocks stay aligned.
func HBox(blocks ...Block) Block {
	var out Block
	offset := 0
	for _, b := range blocks {
		if len(b) == 0 {
			continue
		}
		for i, l := range b {
			for len(out) <= i {
				out = append(out, Line{})
			}
			if pad := offset - out[i].Width(); pad > 0 {
				out[i] = append(out[i], Span{Text: strings.Repeat(" ", pad)})
			}
			out[i] = append(out[i], l...)
		}
		offset += b.Width()
	}
	return out
}

// Indent shifts every line of b right by n columns.
func Indent(n int, b Block) Block {
	pad := Block{Line{{Text: strings.Repeat(" ", n)}}}
	return HBox(pad, b)
}

// PadRight extends every line to width with spaces.
func PadRight(b Block, width int) Block {
	out := make(Block, len(b))
	for i, l := range b {
		out[i] = l
		if pad := width - l.Width(); pad > 0 {
			out[i] = append(append(Line{}, l...), Span{Text: strings.Repeat(" ", pad)})
		}
	}
	return out
}

// PadBottom appends empty lines until b is height lines tall.
func PadBottom(b Block, height int) Block {
	for len(b) < height {
		b = append(b, Line{})
	}
	return b
}
