package view

import (
	"regexp"
	"strconv"

	"github.com/oakwood-commons/kvfold/internal/widget"
)

// RootPath names the document root, matching the CEL variable.
const RootPath = "_"

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// KeyPath appends an object key to parent.
func KeyPath(parent, key string) string {
	if identifier.MatchString(key) {
		return parent + "." + key
	}
	return parent + "[" + strconv.Quote(key) + "]"
}

// IndexPath appends an array index to parent.
func IndexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

// Pathed is implemented by components that stand for a document node.
type Pathed interface {
	Path() string
}

// PathOf returns the document path of the closest node enclosing c.
func PathOf(c widget.Component) string {
	for _, a := range widget.Ancestors(c) {
		if p, ok := a.(Pathed); ok {
			return p.Path()
		}
	}
	return ""
}
