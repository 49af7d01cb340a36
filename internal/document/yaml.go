package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxAliasDepth bounds alias expansion so self-referencing anchors cannot
// recurse forever.
const maxAliasDepth = 64

// ParseYAML decodes every document of a YAML stream, keeping mapping order.
// Empty documents are skipped.
func ParseYAML(data []byte) ([]*Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []*Value
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if node.Kind == 0 || (node.Kind == yaml.DocumentNode && len(node.Content) == 0) {
			continue
		}
		v, err := FromYAMLNode(&node)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// FromYAMLNode converts a decoded yaml.Node tree.
func FromYAMLNode(node *yaml.Node) (*Value, error) {
	return fromYAML(node, 0)
}

func fromYAML(node *yaml.Node, aliases int) (*Value, error) {
	if node == nil {
		return NewNull(), nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return NewNull(), nil
		}
		return fromYAML(node.Content[0], aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth {
			return nil, fmt.Errorf("line %d: alias nesting exceeds %d", node.Line, maxAliasDepth)
		}
		return fromYAML(node.Alias, aliases+1)
	case yaml.MappingNode:
		obj := NewObject()
		if err := mergeYAMLMapping(obj, node, aliases, true); err != nil {
			return nil, err
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := NewArray()
		for _, c := range node.Content {
			item, err := fromYAML(c, aliases)
			if err != nil {
				return nil, err
			}
			arr.Append(item)
		}
		return arr, nil
	case yaml.ScalarNode:
		return yamlScalar(node)
	default:
		return NewUnsupported(fmt.Sprintf("yaml node kind %d", node.Kind)), nil
	}
}

// mergeYAMLMapping copies the pairs of node into obj. Merged mappings are
// applied with overwrite unset so explicit keys always win.
func mergeYAMLMapping(obj *Value, node *yaml.Node, aliases int, overwrite bool) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			if err := mergeYAMLInto(obj, v, aliases); err != nil {
				return err
			}
			continue
		}
		key := yamlKey(k)
		if _, exists := obj.Get(key); exists && !overwrite {
			continue
		}
		val, err := fromYAML(v, aliases)
		if err != nil {
			return err
		}
		obj.Set(key, val)
	}
	return nil
}

// mergeYAMLInto applies a "<<" merge key: one mapping or a sequence of them.
func mergeYAMLInto(obj *Value, src *yaml.Node, aliases int) error {
	for src.Kind == yaml.AliasNode {
		if aliases >= maxAliasDepth {
			return fmt.Errorf("line %d: alias nesting exceeds %d", src.Line, maxAliasDepth)
		}
		src = src.Alias
		aliases++
	}
	switch src.Kind {
	case yaml.MappingNode:
		return mergeYAMLMapping(obj, src, aliases, false)
	case yaml.SequenceNode:
		for _, c := range src.Content {
			if err := mergeYAMLInto(obj, c, aliases); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: merge value is not a mapping", src.Line)
	}
}

func yamlKey(k *yaml.Node) string {
	for k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind == yaml.ScalarNode {
		return k.Value
	}
	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	_ = enc.Encode(k)
	_ = enc.Close()
	return strings.TrimSpace(buf.String())
}

func yamlScalar(node *yaml.Node) (*Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return NewNull(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return NewBool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return NewInt(i), nil
		}
		var u uint64
		if err := node.Decode(&u); err == nil {
			return NewUint(u), nil
		}
		return NewNumber(node.Value), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return NewNumber(strings.TrimPrefix(strconv.FormatFloat(f, 'g', -1, 64), "+")), nil
		}
		return NewFloat(f), nil
	case "!!binary":
		return NewUnsupported("binary"), nil
	default:
		// strings, timestamps and custom tags show their text.
		return NewString(node.Value), nil
	}
}
