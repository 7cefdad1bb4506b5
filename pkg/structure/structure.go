// Package structure contains type-related operations, such as converting a
// value of type any into a [value.Value] and converting numbers.
package structure

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/goccy/go-reflect"

	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// TagName is the struct tag read when converting structs.
const TagName = "mongorql"

// ErrNonStringKey is returned by [ToValue] for maps whose keys are not
// strings.
var ErrNonStringKey = errors.New("map key is not a string")

// ErrUnsupportedKind is returned by [ToValue] when a value of the given kind
// has no document representation, like channels and functions.
type ErrUnsupportedKind struct {
	Kind reflect.Kind
}

// Error implements [error].
func (e ErrUnsupportedKind) Error() string {
	return fmt.Sprintf("cannot convert value of kind %s", e.Kind)
}

// ToValue converts obj into a [value.Value]. Maps with string keys and
// structs become objects, slices and arrays become lists, and pointers are
// followed. Struct fields can be renamed or skipped with the "mongorql" tag,
// which also accepts the "omitempty" and "omitzero" flags. As in
// encoding/json, omitempty skips false, 0, nil pointers and interfaces, and
// empty arrays, slices, maps and strings, while omitzero skips zero values.
func ToValue(obj any) (value.Value, error) {
	v, err := value.Of(obj)
	if err == nil {
		return v, nil
	}
	if !errors.As(err, new(value.ErrUnsupportedType)) {
		return v, err
	}
	return fromReflect(reflect.ValueNoEscapeOf(obj))
}

func fromReflect(v reflect.Value) (value.Value, error) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return value.Null(), nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Invalid:
		return value.Null(), nil
	case reflect.Bool:
		return value.Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.Num(float64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return value.Num(v.Float()), nil
	case reflect.String:
		return value.Str(v.String()), nil
	case reflect.Slice:
		if v.IsNil() {
			return value.Null(), nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return value.Str(string(v.Bytes())), nil
		}
		return fromList(v)
	case reflect.Array:
		return fromList(v)
	case reflect.Map:
		if v.IsNil() {
			return value.Null(), nil
		}
		return fromMap(v)
	case reflect.Struct:
		if v.CanInterface() {
			if res, err := value.Of(v.Interface()); err == nil {
				return res, nil
			}
		}
		return fromStruct(v)
	default:
		return value.Value{}, ErrUnsupportedKind{Kind: v.Kind()}
	}
}

func fromList(v reflect.Value) (value.Value, error) {
	items := make([]value.Value, v.Len())
	for i := range v.Len() {
		item, err := ToValue(v.Index(i).Interface())
		if err != nil {
			return value.Value{}, err
		}
		items[i] = item
	}
	return value.List(items...), nil
}

func fromMap(v reflect.Value) (value.Value, error) {
	if v.Type().Key().Kind() != reflect.String {
		return value.Value{}, ErrNonStringKey
	}
	entries := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries[iter.Key().String()] = iter.Value().Interface()
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	m := value.NewMap()
	for _, k := range keys {
		item, err := ToValue(entries[k])
		if err != nil {
			return value.Value{}, err
		}
		m.Set(k, item)
	}
	return value.Obj(m), nil
}

func fromStruct(v reflect.Value) (value.Value, error) {
	m := value.NewMap()
	typ := v.Type()
	for n := range typ.NumField() {
		field := typ.Field(n)
		if field.PkgPath != "" {
			continue
		}
		name := field.Name
		var omitEmpty, omitZero bool
		if tag, ok := field.Tag.Lookup(TagName); ok {
			if tag == "-" {
				continue
			}
			segments := strings.Split(tag, ",")
			if segments[0] != "" {
				name = segments[0]
			}
			omitEmpty = slices.Contains(segments[1:], "omitempty")
			omitZero = slices.Contains(segments[1:], "omitzero")
		}
		fv := v.Field(n)
		if omitZero && fv.IsZero() {
			continue
		}
		if omitEmpty && isEmpty(fv) {
			continue
		}
		item, err := ToValue(fv.Interface())
		if err != nil {
			return value.Value{}, fmt.Errorf("field %s: %w", field.Name, err)
		}
		m.Set(name, item)
	}
	return value.Obj(m), nil
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Ptr:
		return v.IsZero()
	default:
		return false
	}
}

// AsInteger converts any built-in number to int and returns a flag that informs
// if the argument is a valid integer.
func AsInteger(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float32:
		if trunc := math.Trunc(float64(t)); trunc == float64(t) {
			return int(trunc), true
		}
		return 0, false
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return 0, false
		}
		if trunc := math.Trunc(t); trunc == t {
			return int(trunc), true
		}
		return 0, false
	default:
		return 0, false
	}
}
