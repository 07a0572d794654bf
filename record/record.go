// Package record provides the schemaless record type processed by recgo.
//
// A Record is a mapping from field name to a small typed Value. There is no
// schema: fields may be absent on some records, and presence must be checked
// explicitly before access.
package record

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
	// KindArray represents an array value.
	KindArray
)

// Value is a small typed value stored in a Record field.
//
// The representation is designed to make indexing and equality checks fast
// and predictable: no reflection and no fmt-based stringification.
type Value struct {
	Kind Kind    `json:"k"`
	I64  int64   `json:"i,omitempty"`
	F64  float64 `json:"f,omitempty"`
	S    string  `json:"s,omitempty"`
	B    bool    `json:"b,omitempty"`
	A    []Value `json:"a,omitempty"`
}

// Key returns a stable string representation for use in maps.
//
// It is intended for indexing (field-value buckets) and memoization keys and
// must remain stable: two Values compare equal iff their Keys are equal.
func (v Value) Key() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return "i:" + strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return "f:" + strconv.FormatUint(math.Float64bits(v.F64), 16)
	case KindString:
		return "s:" + v.S
	case KindBool:
		if v.B {
			return "b:1"
		}
		return "b:0"
	case KindArray:
		if len(v.A) == 0 {
			return "a:"
		}
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].Key()
		}
		return "a:" + strings.Join(parts, "\x1f")
	default:
		return "invalid"
	}
}

// Equal reports whether two Values hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindArray:
		if len(v.A) != len(o.A) {
			return false
		}
		for i := range v.A {
			if !v.A[i].Equal(o.A[i]) {
				return false
			}
		}
		return true
	default:
		return v.I64 == o.I64 && v.F64 == o.F64 && v.S == o.S && v.B == o.B
	}
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.S, true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, S: v} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Array returns an array Value.
func Array(v []Value) Value { return Value{Kind: KindArray, A: v} }

// Record is one logical data item: a mapping from field name to Value.
type Record map[string]Value

// Get returns the value for a field and whether the field is present.
func (r Record) Get(field string) (Value, bool) {
	v, ok := r[field]
	return v, ok
}

// Has reports whether the field is present on the record.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Clone creates a deep copy of the record.
//
// This is the safe default to prevent external mutation after a record has
// been handed to the engine.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v.clone()
	}
	return clone
}

func (v Value) clone() Value {
	if v.Kind != KindArray || len(v.A) == 0 {
		return v
	}
	arr := make([]Value, len(v.A))
	for i := range v.A {
		arr[i] = v.A[i].clone()
	}
	return Value{Kind: v.Kind, A: arr}
}

// CanonicalKey returns a stable key identifying the record's full content.
//
// Fields are visited in sorted order, so two records with the same fields and
// values produce the same key regardless of construction order. Used by the
// stream processor to memoize enrichment results per distinct record.
func (r Record) CanonicalKey() string {
	if len(r) == 0 {
		return ""
	}
	fields := make([]string, 0, len(r))
	for k := range r {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	var sb strings.Builder
	for i, k := range fields {
		if i > 0 {
			sb.WriteByte('\x1e')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(r[k].Key())
	}
	return sb.String()
}
