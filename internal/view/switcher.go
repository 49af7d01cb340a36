package view

import (
	"github.com/oakwood-commons/kvfold/internal/fold"
	"github.com/oakwood-commons/kvfold/internal/widget"
)

// ToTable replaces l with a table of the same array in place and focuses
// the first data row. It returns nil when l is not attached.
func (b *Builder) ToTable(l *List, ev *widget.Event) *Table {
	s := l.arrayState
	t := b.table(s.value, s.pfx, s.isLast, s.depth, s.foldParent, l.path)
	if !b.swap(l, t, l.fold, t.fold) {
		return nil
	}
	if ev != nil {
		if rows := t.Rows(); len(rows) > 0 {
			ev.FocusWithin(rows[0])
		} else {
			ev.Focus(t.toggle)
		}
	}
	b.Log.V(1).Info("switched to table", "path", l.path, "columns", len(t.Columns()), "rows", len(t.Rows()))
	return t
}

// ToList replaces t with the nested list view of the same array in place.
// The list starts with the default fold state for its depth and takes focus
// on its toggle. It returns nil when t is not attached.
func (b *Builder) ToList(t *Table, ev *widget.Event) *List {
	s := t.arrayState
	l := b.list(s.value, s.pfx, s.isLast, s.depth, s.foldParent, t.path)
	if !b.swap(t, l, t.fold, l.fold) {
		return nil
	}
	if ev != nil {
		ev.Focus(l.toggle)
	}
	b.Log.V(1).Info("switched to list", "path", t.path)
	return l
}

// swap attaches next where old was and releases the fold state of old. The
// replacement is fully built before old leaves the tree; if old is detached
// the new fold node is released instead.
func (b *Builder) swap(old, next widget.Component, oldFold, nextFold *fold.Node) bool {
	if !widget.Replace(old, next) {
		nextFold.Release()
		return false
	}
	oldFold.Release()
	return true
}
