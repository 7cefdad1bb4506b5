// Package value contains the tagged value type used to represent literals in
// query trees and the criteria, sort and projection documents produced from
// them.
package value

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Kind identifies which variant a [Value] holds.
type Kind uint8

// Supported value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindTime
	KindPattern
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:    "null",
	KindBool:    "bool",
	KindNumber:  "number",
	KindString:  "string",
	KindTime:    "time",
	KindPattern: "pattern",
	KindArray:   "array",
	KindObject:  "object",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is a closed union of scalars, regular expressions, arrays and
// objects. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	t    time.Time
	re   *regexp.Regexp
	arr  []Value
	obj  *Map
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Num returns a numeric value.
func Num(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int returns a numeric value holding an integer.
func Int(n int64) Value { return Value{kind: KindNumber, n: float64(n)} }

// Str returns a string value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Date returns a time value.
func Date(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Regex returns a pattern value. A nil pattern is null.
func Regex(re *regexp.Regexp) Value {
	if re == nil {
		return Null()
	}
	return Value{kind: KindPattern, re: re}
}

// List returns an array value holding the given items.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// Obj returns an object value. A nil map is replaced by an empty one.
func Obj(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindObject, obj: m}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsTime returns the time held by v.
func (v Value) AsTime() (time.Time, bool) { return v.t, v.kind == KindTime }

// AsRegex returns the pattern held by v.
func (v Value) AsRegex() (*regexp.Regexp, bool) { return v.re, v.kind == KindPattern }

// AsArray returns the items held by v. The returned slice is shared with v.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// AsMap returns the object held by v. The returned map is shared with v.
func (v Value) AsMap() (*Map, bool) { return v.obj, v.kind == KindObject }

// Clone returns a deep copy of arrays and objects. Scalars are returned as is.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Clone()
		}
		return List(items...)
	case KindObject:
		return Obj(v.obj.Clone())
	default:
		return v
	}
}

// Interface converts v into plain Go values: nil, bool, float64 (int64 for
// integral numbers), string, time.Time, *regexp.Regexp, []any and
// map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if i, ok := v.integer(); ok {
			return i
		}
		return v.n
	case KindString:
		return v.s
	case KindTime:
		return v.t
	case KindPattern:
		return v.re
	case KindArray:
		items := make([]any, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Interface()
		}
		return items
	case KindObject:
		return v.obj.Interface()
	default:
		return nil
	}
}

func (v Value) integer() (int64, bool) {
	if math.IsInf(v.n, 0) || math.IsNaN(v.n) || math.Trunc(v.n) != v.n {
		return 0, false
	}
	if v.n > math.MaxInt64 || v.n < math.MinInt64 {
		return 0, false
	}
	return int64(v.n), true
}

// String renders scalars the way they would be used as document keys. Arrays
// and objects are rendered with [fmt].
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return FormatNumber(v.n)
	case KindString:
		return v.s
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	case KindPattern:
		return v.re.String()
	default:
		return fmt.Sprint(v.Interface())
	}
}

// FormatNumber renders n the shortest way that reads back as n.
func FormatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
