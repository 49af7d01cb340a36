package view

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/kvfold/internal/document"
	"github.com/oakwood-commons/kvfold/internal/fold"
	"github.com/oakwood-commons/kvfold/internal/widget"
)

// IsTableSuitable reports whether v is an array of objects worth showing as
// a table: at least two rows or at least one row with two columns.
func IsTableSuitable(v *document.Value) bool {
	if v.Kind() != document.Array || v.Len() == 0 {
		return false
	}
	columns := 0
	for _, item := range v.Items() {
		if item.Kind() != document.Object {
			return false
		}
		columns = max(columns, item.Len())
	}
	return columns >= 2 || v.Len() >= 2
}

// Table is the grid rendering of an array of objects. Each distinct key
// becomes a column in first-seen order; cells are full views, so nested
// containers inside cells stay foldable under the table's own fold node.
type Table struct {
	Expandable
	arrayState
	button *widget.Button
	grid   *Grid
}

func (b *Builder) table(v *document.Value, pfx prefix, isLast bool, depth int, parent *fold.Node, path string) *Table {
	t := &Table{arrayState: arrayState{value: v, pfx: pfx, isLast: isLast, depth: depth, foldParent: parent, builder: b}}
	t.init(b, parent.Child(), path)
	t.fold.Expanded = true

	t.grid = &Grid{styles: b.Styles}
	columns := make(map[string]int)
	for i, item := range v.Items() {
		row := &Row{index: i, path: IndexPath(path, i), style: b.Styles.Index}
		for _, e := range item.Entries() {
			col, ok := columns[e.Key]
			if !ok {
				col = len(t.grid.columns)
				columns[e.Key] = col
				t.grid.columns = append(t.grid.columns, e.Key)
			}
			for len(row.cells) <= col {
				row.cells = append(row.cells, nil)
			}
			cell := b.build(e.Value, prefix{}, true, depth+1, t.fold, KeyPath(row.path, e.Key))
			row.cells[col] = cell
			widget.Add(row, cell)
		}
		t.grid.rows = append(t.grid.rows, row)
		widget.Add(t.grid, row)
	}

	t.toggle = widget.NewToggle("[", punctuated("[...]", isLast), &t.fold.Expanded, b.Styles.Punctuation)
	t.button = widget.NewButton(" ", "(array view)", b.Styles.Button, func(ev *widget.Event) {
		b.ToList(t, ev)
	})
	body := widget.NewVertical(
		widget.NewIndented(indentWidth, t.grid),
		widget.NewLabel(punctuated("]", isLast), b.Styles.Punctuation),
	)
	t.inner = widget.NewVertical(b.header(pfx, t.toggle, t.button), widget.NewMaybe(body, &t.fold.Expanded))
	widget.Add(t, t.inner)
	return t
}

// Value returns the array shown.
func (t *Table) Value() *document.Value { return t.value }

// Button returns the "(array view)" button.
func (t *Table) Button() *widget.Button { return t.button }

// Columns returns the column names in display order.
func (t *Table) Columns() []string { return t.grid.columns }

// Rows returns the data rows.
func (t *Table) Rows() []*Row { return t.grid.rows }

// Row is one data row of a table. Cells are indexed by column; missing keys
// leave nil gaps.
type Row struct {
	widget.Base
	index int
	cells []widget.Component
	path  string
	style lipgloss.Style
}

// Path is the document path of the row's object.
func (r *Row) Path() string { return r.path }

// Cell returns the cell of column col, or nil for a gap.
func (r *Row) Cell(col int) widget.Component {
	if col < 0 || col >= len(r.cells) {
		return nil
	}
	return r.cells[col]
}

func (r *Row) Render() widget.Block {
	blocks := make([]widget.Block, 0, len(r.cells))
	for _, c := range r.cells {
		if c != nil {
			blocks = append(blocks, c.Render())
		}
	}
	return widget.HBox(blocks...)
}

// Grid draws the rows of a table inside a light frame. The index column
// is the first column of the frame and is set off from the data columns by
// a heavy rule on every row.
type Grid struct {
	widget.Base
	styles  Styles
	columns []string
	rows    []*Row
}

func (g *Grid) Render() widget.Block {
	widths := make([]int, len(g.columns))
	header := make([]widget.Block, len(g.columns))
	for j, name := range g.columns {
		header[j] = widget.Text(nil, name, g.styles.Header)
		widths[j] = header[j].Width()
	}

	cells := make([][]widget.Block, len(g.rows))
	indexWidth := 0
	for i, row := range g.rows {
		indexWidth = max(indexWidth, len(strconv.Itoa(row.index)))
		cells[i] = make([]widget.Block, len(g.columns))
		for j := range g.columns {
			var b widget.Block
			if c := row.Cell(j); c != nil {
				b = c.Render()
			}
			if len(b) == 0 {
				b = widget.Blank()
			}
			cells[i][j] = b
			widths[j] = max(widths[j], b.Width())
		}
	}

	rule := func(left, indexMid, mid, right string) widget.Block {
		parts := make([]string, len(widths))
		for j, w := range widths {
			parts[j] = strings.Repeat("─", w)
		}
		text := left + strings.Repeat("─", indexWidth) + indexMid + strings.Join(parts, mid) + right
		return widget.Block{widget.Line{{Text: text, Style: g.styles.Border}}}
	}

	out := rule("┌", "┰", "┬", "┐")
	out = append(out, g.line(widget.Text(nil, "", g.styles.Index), indexWidth, header, widths)...)
	out = append(out, rule("├", "╂", "┼", "┤")...)
	for i, row := range g.rows {
		index := widget.Text(row, strconv.Itoa(row.index), row.style)
		out = append(out, g.line(index, indexWidth, cells[i], widths)...)
	}
	out = append(out, rule("└", "┸", "┴", "┘")...)
	return out
}

func (g *Grid) line(index widget.Block, indexWidth int, cells []widget.Block, widths []int) widget.Block {
	height := 1
	for _, c := range cells {
		height = max(height, c.Height())
	}
	bar := func(s string) widget.Block {
		b := make(widget.Block, height)
		for i := range b {
			b[i] = widget.Line{{Text: s, Style: g.styles.Border}}
		}
		return b
	}
	light := bar("│")
	blocks := []widget.Block{
		light,
		widget.PadRight(widget.PadBottom(index, height), indexWidth),
		bar("┃"),
	}
	for j, c := range cells {
		blocks = append(blocks, widget.PadRight(widget.PadBottom(c, height), widths[j]), light)
	}
	return widget.HBox(blocks...)
}
