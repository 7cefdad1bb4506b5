package value

import (
	"bytes"
	"encoding/json"
	"maps"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MarshalJSON implements [json.Marshaler]. Times, patterns and non-finite
// numbers use the extended JSON forms {"$date": ...},
// {"$regex": ..., "$options": ...} and {"$numberDouble": ...}.
func (v Value) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := v.marshalJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) marshalJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindNumber:
		if math.IsInf(v.n, 0) || math.IsNaN(v.n) {
			return MapOf("$numberDouble", Str(FormatNumber(v.n))).marshalJSON(buf)
		}
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindBool:
		b, err := json.Marshal(v.b)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindString:
		return writeJSONString(buf, v.s)
	case KindTime:
		return MapOf("$date", Str(v.t.Format(time.RFC3339Nano))).marshalJSON(buf)
	case KindPattern:
		return patternDoc(v.re).marshalJSON(buf)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.marshalJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		return v.obj.marshalJSON(buf)
	}
	return nil
}

// MarshalJSON implements [json.Marshaler], keeping insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := m.marshalJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Map) marshalJSON(buf *bytes.Buffer) error {
	if m == nil {
		buf.WriteString("null")
		return nil
	}
	buf.WriteByte('{')
	var i bool
	for k, v := range m.All() {
		if i {
			buf.WriteByte(',')
		}
		if err := writeJSONString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := v.marshalJSON(buf); err != nil {
			return err
		}
		i = true
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode always terminates with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// MarshalYAML implements [yaml.Marshaler].
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindPattern:
		return patternDoc(v.re), nil
	case KindArray:
		return v.arr, nil
	case KindObject:
		return v.obj, nil
	default:
		return v.Interface(), nil
	}
}

// MarshalYAML implements [yaml.Marshaler], keeping insertion order.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range m.All() {
		key, val := new(yaml.Node), new(yaml.Node)
		if err := key.Encode(k); err != nil {
			return nil, err
		}
		if err := val.Encode(v); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

var flagsPrefix = regexp.MustCompile(`^\(\?([a-zA-Z]+)\)`)

func patternDoc(re *regexp.Regexp) *Map {
	src := re.String()
	var options string
	if match := flagsPrefix.FindStringSubmatch(src); match != nil {
		options = match[1]
		src = strings.TrimPrefix(src, match[0])
	}
	return MapOf("$regex", Str(src), "$options", Str(options))
}

func sortedKeys[T any](m map[string]T) []string {
	return slices.Sorted(maps.Keys(m))
}
