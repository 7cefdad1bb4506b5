package ast

import (
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/structure"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// Builder assembles a query tree with chained calls. Every call appends a term
// to a top-level "and", the same shape a parser produces for "a&b&c".
//
//	node, err := ast.New().Eq("color", "yellow").Sort("-size", "price").Build()
//
// Paths can be given as a string or as a []string of segments. Values are
// converted with [structure.ToValue]; the first conversion error is kept and
// returned by [Builder.Build].
type Builder struct {
	root *Call
	err  error
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{root: NewCall(And.String())}
}

// Build returns the tree built so far.
func (b *Builder) Build() (Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.root, nil
}

// Call appends an arbitrary operator term. It can be used for operators that
// have no dedicated method.
func (b *Builder) Call(name string, args ...any) *Builder {
	nodes := make([]Node, len(args))
	for i, arg := range args {
		n, err := NodeOf(arg)
		if err != nil && b.err == nil {
			b.err = err
		}
		nodes[i] = n
	}
	b.root.Args = append(b.root.Args, NewCall(name, nodes...))
	return b
}

// Eq appends eq(path,v).
func (b *Builder) Eq(path, v any) *Builder { return b.Call(Eq.String(), path, v) }

// Ne appends ne(path,v).
func (b *Builder) Ne(path, v any) *Builder { return b.Call(Ne.String(), path, v) }

// Gt appends gt(path,v).
func (b *Builder) Gt(path, v any) *Builder { return b.Call(Gt.String(), path, v) }

// Lt appends lt(path,v).
func (b *Builder) Lt(path, v any) *Builder { return b.Call(Lt.String(), path, v) }

// Ge appends ge(path,v).
func (b *Builder) Ge(path, v any) *Builder { return b.Call(Ge.String(), path, v) }

// Le appends le(path,v).
func (b *Builder) Le(path, v any) *Builder { return b.Call(Le.String(), path, v) }

// In appends in(path,values).
func (b *Builder) In(path, values any) *Builder { return b.Call(In.String(), path, values) }

// Out appends out(path,values).
func (b *Builder) Out(path, values any) *Builder { return b.Call(Out.String(), path, values) }

// Contains appends contains(path,v).
func (b *Builder) Contains(path, v any) *Builder { return b.Call(Contains.String(), path, v) }

// Excludes appends excludes(path,v).
func (b *Builder) Excludes(path, v any) *Builder { return b.Call(Excludes.String(), path, v) }

// Match appends match(path,v).
func (b *Builder) Match(path, v any) *Builder { return b.Call(Match.String(), path, v) }

// Sort appends sort(attrs...).
func (b *Builder) Sort(attrs ...string) *Builder {
	return b.Call(Sort.String(), toAny(attrs)...)
}

// Select appends select(paths...).
func (b *Builder) Select(paths ...any) *Builder { return b.Call(Select.String(), paths...) }

// Unselect appends unselect(paths...).
func (b *Builder) Unselect(paths ...any) *Builder { return b.Call(Unselect.String(), paths...) }

// Limit appends limit(args...), usually limit(count,start).
func (b *Builder) Limit(args ...int) *Builder {
	return b.Call(Limit.String(), toAny(args)...)
}

// And appends and(queries...).
func (b *Builder) And(queries ...*Builder) *Builder {
	return b.Call(And.String(), toAny(queries)...)
}

// Or appends or(queries...).
func (b *Builder) Or(queries ...*Builder) *Builder {
	return b.Call(Or.String(), toAny(queries)...)
}

// NodeOf converts v into a node. Nodes are returned as they are, builders are
// built, string slices and []any become lists, and anything else becomes a
// [Literal].
func NodeOf(v any) (Node, error) {
	switch t := v.(type) {
	case Node:
		return t, nil
	case *Builder:
		return t.Build()
	case []string:
		return Strings(t...), nil
	case []any:
		l := make(List, len(t))
		for i, item := range t {
			n, err := NodeOf(item)
			if err != nil {
				return nil, err
			}
			l[i] = n
		}
		return l, nil
	}
	val, err := structure.ToValue(v)
	if err != nil {
		return Lit(value.Null()), err
	}
	return Lit(val), nil
}

func toAny[T any](s []T) []any {
	res := make([]any, len(s))
	for i, item := range s {
		res[i] = item
	}
	return res
}
