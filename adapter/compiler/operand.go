package compiler

import (
	"strings"

	"github.com/vinicius-lino-figueiredo/mongorql/domain"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// operand is a resolved argument: a literal value, a list of operands or the
// query produced by a nested call.
type operand struct {
	val   value.Value
	items []operand
	list  bool
	query *domain.Query
}

// toValue converts o into a plain value. Nested queries become their document
// form.
func (o operand) toValue() value.Value {
	switch {
	case o.query != nil:
		return value.Obj(o.query.Document())
	case o.list:
		items := make([]value.Value, len(o.items))
		for i, item := range o.items {
			items[i] = item.toValue()
		}
		return value.List(items...)
	default:
		// Literals belong to the tree, which is never modified.
		return o.val.Clone()
	}
}

// path returns o as a document key. Lists of segments, written as
// (name,first) or name/first, are joined with dots.
func (o operand) path() string {
	return pathOf(o.toValue())
}

func pathOf(v value.Value) string {
	items, ok := v.AsArray()
	if !ok {
		return v.String()
	}
	segments := make([]string, len(items))
	for i, item := range items {
		segments[i] = pathOf(item)
	}
	return strings.Join(segments, ".")
}

// criteria returns the filter document carried by o, if any.
func (o operand) criteria() (*value.Map, bool) {
	if o.query != nil {
		return o.query.Criteria, true
	}
	if o.list {
		return nil, false
	}
	doc, ok := o.val.AsMap()
	if !ok {
		return nil, false
	}
	return doc.Clone(), true
}

// arg returns the i-th operand, or a null one when it is missing.
func arg(args []operand, i int) operand {
	if i < len(args) {
		return args[i]
	}
	return operand{val: value.Null()}
}
