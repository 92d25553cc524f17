// Package wire models the values exchanged between a generated client and
// server: null, booleans, numbers, strings, lists and string-keyed maps.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindList:   "list",
	KindMap:    "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is an immutable wire value. The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	items   []Value
	entries map[string]Value
}

func Null() Value           { return Value{} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }
func Int(i int64) Value     { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func String(s string) Value { return Value{kind: KindString, s: s} }

func List(items ...Value) Value {
	return Value{kind: KindList, items: append([]Value{}, items...)}
}

func Map(entries map[string]Value) Value {
	cp := make(map[string]Value, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	return Value{kind: KindMap, entries: cp}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() bool     { return v.b }
func (v Value) AsString() string { return v.s }

// AsInt truncates floats.
func (v Value) AsInt() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Len is the number of list items or map entries.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.items)
	case KindMap:
		return len(v.entries)
	}
	return 0
}

// Items returns a copy of the list items.
func (v Value) Items() []Value {
	return append([]Value(nil), v.items...)
}

// Index returns the i-th list item.
func (v Value) Index(i int) Value {
	return v.items[i]
}

// Get returns the map entry for key.
func (v Value) Get(key string) (Value, bool) {
	e, ok := v.entries[key]
	return e, ok
}

// Keys returns the map keys in sorted order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.entries))
	for k := range v.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v Value) isNumber() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// Equal compares structurally. Integers and floats compare by numeric
// value, since a JSON round trip does not preserve the distinction.
func (v Value) Equal(other Value) bool {
	if v.isNumber() && other.isNumber() {
		if v.kind == KindInt && other.kind == KindInt {
			return v.i == other.i
		}
		return v.AsFloat() == other.AsFloat()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindList:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for k, e := range v.entries {
			o, ok := other.entries[k]
			if !ok || !e.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindList:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := v.Keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = strconv.Quote(k) + ": " + v.entries[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "null"
}

// Interface converts v to the natural Go shapes: nil, bool, int64,
// float64, string, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.entries))
		for k, e := range v.entries {
			out[k] = e.Interface()
		}
		return out
	}
	return nil
}

// FromInterface is the inverse of Interface. It also accepts the other Go
// integer and float widths, json.Number and Values.
func FromInterface(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Null(), fmt.Errorf("wire: bad number %q: %w", x, err)
		}
		return Float(f), nil
	case string:
		return String(x), nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			v, err := FromInterface(item)
			if err != nil {
				return Null(), err
			}
			items[i] = v
		}
		return Value{kind: KindList, items: items}, nil
	case []Value:
		return List(x...), nil
	case map[string]any:
		entries := make(map[string]Value, len(x))
		for k, e := range x {
			v, err := FromInterface(e)
			if err != nil {
				return Null(), err
			}
			entries[k] = v
		}
		return Value{kind: KindMap, entries: entries}, nil
	case map[string]Value:
		return Map(x), nil
	}
	return Null(), fmt.Errorf("wire: cannot represent %T", x)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindFloat && (math.IsNaN(v.f) || math.IsInf(v.f, 0)) {
		return nil, fmt.Errorf("wire: %v has no JSON form", v.f)
	}
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}
	out, err := FromInterface(x)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// Encode and Decode frame a value as JSON text.

func Encode(v Value) ([]byte, error) {
	return json.Marshal(v)
}

func Decode(data []byte) (Value, error) {
	var v Value
	err := json.Unmarshal(data, &v)
	return v, err
}
