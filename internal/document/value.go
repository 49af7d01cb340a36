// Package document holds the in-memory form of a loaded document.
//
// A Value is a closed variant over the JSON kinds. Objects keep their entries
// in source order so the view shows keys the way the input file lists them.
package document

import (
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// Unsupported marks a value the viewer cannot show, such as a binary
	// blob or a Go value without a JSON mapping.
	Unsupported Kind = iota
	Object
	Array
	String
	Number
	Bool
	Null
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Array:
		return "array"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Null:
		return "null"
	case Unsupported:
		return "unsupported"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Entry is one key/value pair of an object.
type Entry struct {
	Key   string
	Value *Value
}

// Value is a node of a document tree.
type Value struct {
	kind    Kind
	entries []Entry
	items   []*Value
	text    string
	boolean bool
}

// NewObject returns an object with the given entries. A repeated key keeps
// its first position and its last value.
func NewObject(entries ...Entry) *Value {
	v := &Value{kind: Object, entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		v.Set(e.Key, e.Value)
	}
	return v
}

// NewArray returns an array holding items.
func NewArray(items ...*Value) *Value {
	if items == nil {
		items = []*Value{}
	}
	return &Value{kind: Array, items: items}
}

func NewString(s string) *Value { return &Value{kind: String, text: s} }

// NewNumber returns a number that renders as literal. The literal is kept
// verbatim so large integers and exponents survive a round trip.
func NewNumber(literal string) *Value { return &Value{kind: Number, text: literal} }

func NewInt(i int64) *Value { return NewNumber(strconv.FormatInt(i, 10)) }

func NewUint(u uint64) *Value { return NewNumber(strconv.FormatUint(u, 10)) }

func NewFloat(f float64) *Value { return NewNumber(strconv.FormatFloat(f, 'g', -1, 64)) }

func NewBool(b bool) *Value { return &Value{kind: Bool, boolean: b} }

func NewNull() *Value { return &Value{kind: Null} }

// NewUnsupported returns a placeholder; desc says what was dropped.
func NewUnsupported(desc string) *Value { return &Value{kind: Unsupported, text: desc} }

// Kind returns the variant of v. A nil Value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// Set replaces the value stored under key or appends a new entry.
// It is a no-op on non-objects.
func (v *Value) Set(key string, val *Value) {
	if v == nil || v.kind != Object {
		return
	}
	if val == nil {
		val = NewNull()
	}
	for i := range v.entries {
		if v.entries[i].Key == key {
			v.entries[i].Value = val
			return
		}
	}
	v.entries = append(v.entries, Entry{Key: key, Value: val})
}

// Append adds an item to an array. It is a no-op on non-arrays.
func (v *Value) Append(item *Value) {
	if v == nil || v.kind != Array {
		return
	}
	if item == nil {
		item = NewNull()
	}
	v.items = append(v.items, item)
}

// Entries returns the object entries in source order.
func (v *Value) Entries() []Entry {
	if v.Kind() != Object {
		return nil
	}
	return v.entries
}

// Items returns the array items.
func (v *Value) Items() []*Value {
	if v.Kind() != Array {
		return nil
	}
	return v.items
}

// Len is the number of entries of an object or items of an array.
func (v *Value) Len() int {
	switch v.Kind() {
	case Object:
		return len(v.entries)
	case Array:
		return len(v.items)
	case String, Number, Bool, Null, Unsupported:
		return 0
	}
	return 0
}

// Get looks up an object entry.
func (v *Value) Get(key string) (*Value, bool) {
	for _, e := range v.Entries() {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Index returns the i-th array item.
func (v *Value) Index(i int) (*Value, bool) {
	items := v.Items()
	if i < 0 || i >= len(items) {
		return nil, false
	}
	return items[i], true
}

// Str returns the content of a string, the literal of a number or the
// description of an unsupported value.
func (v *Value) Str() string {
	if v == nil {
		return ""
	}
	return v.text
}

// Bool returns the content of a boolean.
func (v *Value) Bool() bool {
	return v != nil && v.kind == Bool && v.boolean
}

// Literal is the JSON text of a scalar: quoted strings, numbers as written,
// true/false and null. Containers and unsupported values return "".
func (v *Value) Literal() string {
	switch v.Kind() {
	case String:
		return strconv.Quote(v.text)
	case Number:
		return v.text
	case Bool:
		return strconv.FormatBool(v.boolean)
	case Null:
		return "null"
	case Object, Array, Unsupported:
		return ""
	}
	return ""
}

// IsContainer reports whether v is an object or an array.
func (v *Value) IsContainer() bool {
	k := v.Kind()
	return k == Object || k == Array
}
