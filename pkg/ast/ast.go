// Package ast defines the expression tree produced by RQL parsers and consumed
// by compilers.
//
// A tree is made of three kinds of [Node]: [*Call], an operator applied to a
// list of arguments, [List], an ordered sequence used for array-valued
// arguments and dotted paths, and [Literal], a scalar or regular expression.
package ast

import "github.com/vinicius-lino-figueiredo/mongorql/pkg/value"

// Node is implemented by [*Call], [List] and [Literal].
type Node interface {
	node()
}

// Call is an operator node. Name is kept as written by the parser, so it may
// name an operator that [LookupOperator] does not know.
type Call struct {
	Name string
	Args []Node
}

// List is a sequence of nodes.
type List []Node

// Literal holds a scalar value.
type Literal struct {
	Value value.Value
}

func (*Call) node()   {}
func (List) node()    {}
func (Literal) node() {}

// NewCall returns a call node with the given name and arguments.
func NewCall(name string, args ...Node) *Call {
	if args == nil {
		args = []Node{}
	}
	return &Call{Name: name, Args: args}
}

// Lit wraps v in a [Literal].
func Lit(v value.Value) Literal {
	return Literal{Value: v}
}

// Strings returns a [List] of string literals.
func Strings(s ...string) List {
	l := make(List, len(s))
	for i, item := range s {
		l[i] = Lit(value.Str(item))
	}
	return l
}

// Op resolves the operator named by c.
func (c *Call) Op() (Operator, bool) {
	return LookupOperator(c.Name)
}
