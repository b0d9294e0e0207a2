// Package jsontree provides a schema-less intermediate tree for JSON decoded
// from untrusted model output. A Value is one of null, bool, number, string,
// list or map; callers inspect it field by field instead of asserting on any.
package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// Null is the JSON null literal and the zero Value.
	Null Kind = iota
	// Bool is true or false.
	Bool
	// Number is any JSON number, held as float64.
	Number
	// String is a JSON string.
	String
	// List is a JSON array.
	List
	// Map is a JSON object.
	Map
)

// String returns the lower-case JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "array"
	case Map:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is an immutable node of a decoded JSON document.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	list []Value
	m    map[string]Value
}

// Decode strictly decodes a single JSON document. Trailing data after the
// top-level value is an error.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}

	return FromAny(raw)
}

// FromAny converts the output of encoding/json (or a hand-built literal) into
// a Value. Unsupported Go types are rejected.
func FromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Value{kind: Null}, nil
	case bool:
		return Value{kind: Bool, b: v}, nil
	case json.Number:
		// Overflow yields ±Inf; callers clamp numbers, so it is kept.
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("invalid number %q: %w", v.String(), err)
		}
		return Value{kind: Number, n: f}, nil
	case float64:
		return Value{kind: Number, n: v}, nil
	case int:
		return Value{kind: Number, n: float64(v)}, nil
	case string:
		return Value{kind: String, s: v}, nil
	case []any:
		list := make([]Value, len(v))
		for i, item := range v {
			child, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			list[i] = child
		}
		return Value{kind: List, list: list}, nil
	case map[string]any:
		m := make(map[string]Value, len(v))
		for key, item := range v {
			child, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			m[key] = child
		}
		return Value{kind: Map, m: m}, nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", raw)
	}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == Bool }

// Number returns the number held by v.
func (v Value) Number() (float64, bool) { return v.n, v.kind == Number }

// Str returns the string held by v.
func (v Value) Str() (string, bool) { return v.s, v.kind == String }

// Items returns the elements of a list.
func (v Value) Items() ([]Value, bool) { return v.list, v.kind == List }

// Get returns the member named key of a map. It reports false when v is not
// a map or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Map {
		return Value{}, false
	}
	child, ok := v.m[key]
	return child, ok
}

// Keys returns the member names of a map in sorted order, or nil.
func (v Value) Keys() []string {
	if v.kind != Map {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for key := range v.m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Interface converts v back into the plain Go representation used by
// encoding/json (nil, bool, float64, string, []any, map[string]any). Infinite
// numbers become ±math.MaxFloat64 so the result always re-encodes.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		if math.IsInf(v.n, 0) {
			return math.Copysign(math.MaxFloat64, v.n)
		}
		return v.n
	case String:
		return v.s
	case List:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case Map:
		out := make(map[string]any, len(v.m))
		for key, item := range v.m {
			out[key] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v as JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}
