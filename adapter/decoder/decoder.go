// Package decoder contains the default [domain.Decoder] implementation.
package decoder

import (
	"fmt"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/mitchellh/mapstructure"
	"github.com/vinicius-lino-figueiredo/mongorql/domain"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/structure"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// Decoder implements domain.Decoder.
type Decoder struct{}

// NewDecoder returns a new implementation of domain.Decoder.
func NewDecoder() domain.Decoder {
	return &Decoder{}
}

// Decode implements domain.Decoder. Queries, values and ordered maps are
// converted to plain Go values before being decoded, so a translated query
// can be copied into user structs tagged with "mongorql".
func (d *Decoder) Decode(source any, target any) error {
	if target == nil {
		return domain.ErrTargetNil
	}

	v := reflect.ValueNoEscapeOf(target)
	if v.Kind() != reflect.Ptr {
		return domain.ErrNonPointer
	}

	source = d.adjust(source)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: structure.TagName,
		Result:  target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(source); err != nil {
		errDec := domain.ErrDecode{Source: source, Target: target}
		return fmt.Errorf("%w: %w", errDec, err)
	}
	return nil
}

func (d *Decoder) adjust(source any) any {
	switch t := source.(type) {
	case *domain.Query:
		if t == nil {
			return nil
		}
		return t.Map()
	case value.Value:
		return t.Interface()
	case *value.Map:
		if t == nil {
			return nil
		}
		return t.Interface()
	case []any:
		lst := make([]any, len(t))
		for n, v := range t {
			lst[n] = d.adjust(v)
		}
		return lst
	case map[string]any:
		doc := make(map[string]any, len(t))
		for k, v := range t {
			doc[k] = d.adjust(v)
		}
		return doc
	default:
		return source
	}
}
