package loader

import (
	"github.com/oakwood-commons/kvfold/internal/document"
)

// TryDecode attempts to parse a string value as structured data (JWT, JSON,
// YAML, TOML, NDJSON). It returns the decoded tree and true if the string
// contains serialized data that parses into an object or array. Plain
// strings, numbers, and other scalars return (nil, false).
func TryDecode(value string) (*document.Value, bool) {
	if value == "" {
		return nil, false
	}

	parsed, err := LoadRoot(value)
	if err != nil {
		return nil, false
	}

	// A bare word parses as a YAML string; only containers count.
	if parsed.IsContainer() {
		return parsed, true
	}
	return nil, false
}

// RecursiveDecode returns a copy of node in which every string leaf that
// holds serialized data is replaced with its parsed tree. The replacement is
// applied recursively so that nested serialized strings are also expanded.
func RecursiveDecode(node *document.Value) *document.Value {
	return recursiveDecode(node, 0)
}

const maxDecodeDepth = 20

func recursiveDecode(node *document.Value, depth int) *document.Value {
	if node == nil || depth > maxDecodeDepth {
		return node
	}

	switch node.Kind() {
	case document.Object:
		out := document.NewObject()
		for _, e := range node.Entries() {
			out.Set(e.Key, recursiveDecode(e.Value, depth+1))
		}
		return out

	case document.Array:
		out := document.NewArray()
		for _, item := range node.Items() {
			out.Append(recursiveDecode(item, depth+1))
		}
		return out

	case document.String:
		if decoded, ok := TryDecode(node.Str()); ok {
			// Recurse into the decoded structure in case it contains
			// further serialized strings.
			return recursiveDecode(decoded, depth+1)
		}
		return node

	default:
		return node
	}
}
