package ast

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

type ASTTestSuite struct {
	suite.Suite
}

func (s *ASTTestSuite) TestOperators() {
	ops := Operators()
	s.Len(ops, 17)
	for _, op := range ops {
		found, ok := LookupOperator(op.String())
		s.True(ok, op.String())
		s.Equal(op, found)
	}

	_, ok := LookupOperator("aggregate")
	s.False(ok)
	_, ok = LookupOperator("")
	s.False(ok)

	s.Equal("unknown", Operator(0).String())
	s.Equal("unknown", Operator(200).String())
	s.Equal("unselect", Unselect.String())
}

func (s *ASTTestSuite) TestCallOp() {
	op, ok := NewCall("sort").Op()
	s.True(ok)
	s.Equal(Sort, op)

	_, ok = NewCall("foo").Op()
	s.False(ok)

	s.NotNil(NewCall("and").Args)
}

func (s *ASTTestSuite) TestBuilder() {
	node, err := New().
		Eq("color", "yellow").
		Gt([]string{"size", "width"}, 10).
		In("tags", []string{"a", "b"}).
		Sort("-size", "price").
		Limit(20, 3).
		Build()
	s.NoError(err)

	expected := NewCall("and",
		NewCall("eq", Lit(value.Str("color")), Lit(value.Str("yellow"))),
		NewCall("gt", Strings("size", "width"), Lit(value.Int(10))),
		NewCall("in", Lit(value.Str("tags")), Strings("a", "b")),
		NewCall("sort", Lit(value.Str("-size")), Lit(value.Str("price"))),
		NewCall("limit", Lit(value.Int(20)), Lit(value.Int(3))),
	)
	s.Equal(expected, node)
}

func (s *ASTTestSuite) TestBuilderOperators() {
	b := New().
		Eq("a", 1).Ne("a", 1).Gt("a", 1).Lt("a", 1).Ge("a", 1).Le("a", 1).
		In("a", []any{1}).Out("a", []any{1}).
		Contains("a", 1).Excludes("a", 1).Match("a", "x").
		Select("a").Unselect("b").
		And(New().Eq("c", 1)).Or(New().Eq("d", 1)).
		Call("custom", "e")
	node, err := b.Build()
	s.NoError(err)

	var names []string
	for _, arg := range node.(*Call).Args {
		names = append(names, arg.(*Call).Name)
	}
	s.Equal([]string{
		"eq", "ne", "gt", "lt", "ge", "le", "in", "out", "contains",
		"excludes", "match", "select", "unselect", "and", "or", "custom",
	}, names)
}

func (s *ASTTestSuite) TestNestedBuilders() {
	node, err := New().Or(New().Eq("a", 1), New().Lt("b", 2)).Build()
	s.NoError(err)

	expected := NewCall("and",
		NewCall("or",
			NewCall("and", NewCall("eq", Lit(value.Str("a")), Lit(value.Int(1)))),
			NewCall("and", NewCall("lt", Lit(value.Str("b")), Lit(value.Int(2)))),
		),
	)
	s.Equal(expected, node)
}

func (s *ASTTestSuite) TestBuilderKeepsFirstError() {
	_, err := New().Eq("a", make(chan int)).Eq("b", func() {}).Build()
	s.Error(err)
	s.Contains(err.Error(), "chan")
}

func (s *ASTTestSuite) TestNodeOf() {
	call := NewCall("limit")
	n, err := NodeOf(call)
	s.NoError(err)
	s.Same(call, n)

	n, err = NodeOf([]any{"a", 1, []string{"b"}})
	s.NoError(err)
	s.Equal(List{Lit(value.Str("a")), Lit(value.Int(1)), Strings("b")}, n)

	n, err = NodeOf(map[string]any{"a": 1})
	s.NoError(err)
	lit, ok := n.(Literal)
	s.True(ok)
	s.Equal(value.KindObject, lit.Value.Kind())

	n, err = NodeOf(nil)
	s.NoError(err)
	s.Equal(Lit(value.Null()), n)

	_, err = NodeOf([]any{make(chan int)})
	s.Error(err)
}

func TestASTTestSuite(t *testing.T) {
	suite.Run(t, new(ASTTestSuite))
}
