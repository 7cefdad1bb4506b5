// Package compiler contains the default [domain.Compiler] implementation: a
// tree walker that applies every operator node of an RQL tree to a [domain.Query].
package compiler

import (
	"github.com/vinicius-lino-figueiredo/mongorql/adapter/merger"
	"github.com/vinicius-lino-figueiredo/mongorql/domain"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/ast"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// Compiler implements [domain.Compiler].
type Compiler struct {
	merger domain.Merger
}

// NewCompiler returns a new implementation of domain.Compiler.
func NewCompiler(options ...Option) domain.Compiler {
	c := &Compiler{
		merger: merger.NewMerger(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Compile implements [domain.Compiler].
func (c *Compiler) Compile(root ast.Node) (*domain.Query, error) {
	q := domain.NewQuery()
	if root == nil {
		return q, nil
	}
	if _, err := c.walk(root, q); err != nil {
		return nil, err
	}
	return q, nil
}

// walk resolves node against q. Arguments of a call are resolved first, each
// one against a fresh query, so nested calls reach their parent as finished
// queries.
func (c *Compiler) walk(node ast.Node, q *domain.Query) (operand, error) {
	switch n := node.(type) {
	case ast.List:
		items := make([]operand, len(n))
		for i, item := range n {
			var err error
			if items[i], err = c.walk(item, domain.NewQuery()); err != nil {
				return operand{}, err
			}
		}
		return operand{items: items, list: true}, nil
	case *ast.Call:
		if n == nil {
			return operand{val: value.Null()}, nil
		}
		op, ok := n.Op()
		if !ok {
			return operand{}, domain.ErrUnsupportedOperator{Operator: n.Name}
		}
		args, err := c.walk(ast.List(n.Args), nil)
		if err != nil {
			return operand{}, err
		}
		if err := c.apply(op, n.Name, q, args.items); err != nil {
			return operand{}, err
		}
		return operand{query: q}, nil
	case ast.Literal:
		return operand{val: n.Value}, nil
	default:
		return operand{val: value.Null()}, nil
	}
}
