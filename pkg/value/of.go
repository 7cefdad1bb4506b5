package value

import (
	"fmt"
	"regexp"
	"time"
)

// ErrUnsupportedType is returned by [Of] when the Go type has no direct
// Value representation. Package structure handles the remaining types with
// reflection.
type ErrUnsupportedType struct {
	Value any
}

// Error implements [error].
func (e ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported value type %T", e.Value)
}

// Of converts common Go values to a Value without using reflection.
func Of(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Map:
		return Obj(t), nil
	case bool:
		return Bool(t), nil
	case string:
		return Str(t), nil
	case time.Time:
		return Date(t), nil
	case *regexp.Regexp:
		return Regex(t), nil
	case []Value:
		return List(t...), nil
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = Str(s)
		}
		return List(items...), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			var err error
			if items[i], err = Of(item); err != nil {
				return Value{}, err
			}
		}
		return List(items...), nil
	case map[string]any:
		m := NewMap()
		for _, k := range sortedKeys(t) {
			item, err := Of(t[k])
			if err != nil {
				return Value{}, err
			}
			m.Set(k, item)
		}
		return Obj(m), nil
	}
	if n, ok := number(v); ok {
		return Num(n), nil
	}
	return Value{}, ErrUnsupportedType{Value: v}
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}
