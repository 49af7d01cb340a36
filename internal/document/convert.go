package document

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"time"
)

// FromInterface converts a decoded Go value (maps, slices and scalars as
// produced by encoding/json, go-toml or CEL) into a Value. Plain Go maps
// carry no order, so their keys are sorted. Values without a JSON mapping
// become Unsupported instead of failing.
func FromInterface(x any) *Value {
	switch t := x.(type) {
	case nil:
		return NewNull()
	case *Value:
		if t == nil {
			return NewNull()
		}
		return t
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromInterface(t[k]))
		}
		return obj
	case []any:
		arr := NewArray()
		for _, item := range t {
			arr.Append(FromInterface(item))
		}
		return arr
	case string:
		return NewString(t)
	case bool:
		return NewBool(t)
	case json.Number:
		return NewNumber(t.String())
	case int:
		return NewInt(int64(t))
	case int8:
		return NewInt(int64(t))
	case int16:
		return NewInt(int64(t))
	case int32:
		return NewInt(int64(t))
	case int64:
		return NewInt(t)
	case uint:
		return NewUint(uint64(t))
	case uint8:
		return NewUint(uint64(t))
	case uint16:
		return NewUint(uint64(t))
	case uint32:
		return NewUint(uint64(t))
	case uint64:
		return NewUint(t)
	case float32:
		return NewFloat(float64(t))
	case float64:
		return NewFloat(t)
	case time.Time:
		return NewString(t.Format(time.RFC3339Nano))
	case fmt.Stringer:
		if isNilPointer(x) {
			return NewNull()
		}
		return NewString(t.String())
	}
	return fromReflect(reflect.ValueOf(x))
}

func fromReflect(rv reflect.Value) *Value {
	//exhaustive:ignore // only containers and pointers need reflection
	switch rv.Kind() {
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			byKey[k] = iter.Value()
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromInterface(byKey[k].Interface()))
		}
		return obj
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return NewUnsupported("bytes")
		}
		arr := NewArray()
		for i := range rv.Len() {
			arr.Append(FromInterface(rv.Index(i).Interface()))
		}
		return arr
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return NewNull()
		}
		return FromInterface(rv.Elem().Interface())
	case reflect.Invalid:
		return NewNull()
	default:
		return NewUnsupported(rv.Type().String())
	}
}

func isNilPointer(x any) bool {
	rv := reflect.ValueOf(x)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// ToInterface converts v into plain Go values: map[string]any, []any,
// string, int64 or float64, bool and nil. Unsupported values map to nil.
func ToInterface(v *Value) any {
	switch v.Kind() {
	case Object:
		m := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			m[e.Key] = ToInterface(e.Value)
		}
		return m
	case Array:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = ToInterface(item)
		}
		return out
	case String:
		return v.text
	case Number:
		if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(v.text, 10, 64); err == nil {
			return u
		}
		if f, err := strconv.ParseFloat(v.text, 64); err == nil {
			return f
		}
		return math.NaN()
	case Bool:
		return v.boolean
	case Null, Unsupported:
		return nil
	}
	return nil
}
