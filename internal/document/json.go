package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseJSON decodes exactly one JSON value, keeping object key order.
func ParseJSON(data []byte) (*Value, error) {
	dec := newJSONDecoder(data)
	v, err := decodeJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return v, nil
}

// ParseJSONStream decodes a sequence of concatenated JSON values.
func ParseJSONStream(data []byte) ([]*Value, error) {
	dec := newJSONDecoder(data)
	var out []*Value
	for {
		v, err := decodeJSON(dec)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func newJSONDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}

func decodeJSON(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key at offset %d is not a string", dec.InputOffset())
				}
				val, err := decodeJSON(dec)
				if err != nil {
					return nil, fmt.Errorf("key %q: %w", key, noEOF(err))
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, noEOF(err)
			}
			return obj, nil
		case '[':
			arr := NewArray()
			for dec.More() {
				item, err := decodeJSON(dec)
				if err != nil {
					return nil, fmt.Errorf("index %d: %w", arr.Len(), noEOF(err))
				}
				arr.Append(item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, noEOF(err)
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", rune(t), dec.InputOffset())
		}
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumber(t.String()), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// noEOF turns a bare EOF inside a value into a syntax error so stream
// decoding does not mistake a truncated value for a clean end.
func noEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
