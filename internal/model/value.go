package model

import (
	"encoding/json"
	"fmt"
)

// ValueKind enumerates the closed set of kinds a Value can hold.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
	KindStringList
)

// Value is a tagged value restricted to JSON-safe kinds.
// Entities, parameters, context data and preferences all use Values so the
// payloads stay serializable across the transport boundary.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []string
}

// Values is a string-keyed map of tagged values.
type Values map[string]Value

func String(s string) Value       { return Value{kind: KindString, str: s} }
func Number(n float64) Value      { return Value{kind: KindNumber, num: n} }
func Bool(b bool) Value           { return Value{kind: KindBool, b: b} }
func StringList(l []string) Value { return Value{kind: KindStringList, list: l} }

// Kind returns the kind tag.
func (v Value) Kind() ValueKind { return v.kind }

// AsString returns the string content and whether the kind is string.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the numeric content and whether the kind is number.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the bool content and whether the kind is bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsStringList returns the list content and whether the kind is string list.
func (v Value) AsStringList() ([]string, bool) { return v.list, v.kind == KindStringList }

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindStringList:
		if v.list == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.list)
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// UnmarshalJSON implements json.Unmarshaler. Numbers, booleans, strings and
// lists of strings are accepted; anything else is rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = String(s)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = Bool(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Number(n)
		return nil
	}
	var l []string
	if err := json.Unmarshal(data, &l); err == nil {
		*v = StringList(l)
		return nil
	}
	return fmt.Errorf("unsupported value payload: %s", string(data))
}

// ValuesFrom converts a generic decoded-JSON map into Values, rejecting
// payload kinds outside the closed set.
func ValuesFrom(m map[string]interface{}) (Values, error) {
	if m == nil {
		return nil, nil
	}
	out := make(Values, len(m))
	for k, raw := range m {
		switch t := raw.(type) {
		case string:
			out[k] = String(t)
		case float64:
			out[k] = Number(t)
		case bool:
			out[k] = Bool(t)
		case []interface{}:
			list := make([]string, len(t))
			for i, item := range t {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("key %q: list items must be strings", k)
				}
				list[i] = s
			}
			out[k] = StringList(list)
		default:
			return nil, fmt.Errorf("key %q: unsupported value type %T", k, raw)
		}
	}
	return out, nil
}

// Merge applies other on top of vs, last write wins per key.
func (vs Values) Merge(other Values) Values {
	if vs == nil {
		vs = Values{}
	}
	for k, val := range other {
		vs[k] = val
	}
	return vs
}

// Clone returns a shallow copy safe to hand outside the owning store.
func (vs Values) Clone() Values {
	if vs == nil {
		return nil
	}
	out := make(Values, len(vs))
	for k, val := range vs {
		out[k] = val
	}
	return out
}
