package parser

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/mongorql/domain"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/ast"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// render writes a tree in normalized RQL form. Strings are quoted, so they can
// be told apart from numbers and keywords.
func render(n ast.Node) string {
	switch t := n.(type) {
	case *ast.Call:
		args := make([]string, len(t.Args))
		for i, arg := range t.Args {
			args[i] = render(arg)
		}
		return t.Name + "(" + strings.Join(args, ",") + ")"
	case ast.List:
		items := make([]string, len(t))
		for i, item := range t {
			items[i] = render(item)
		}
		return "(" + strings.Join(items, ",") + ")"
	case ast.Literal:
		switch t.Value.Kind() {
		case value.KindString:
			return strconv.Quote(t.Value.String())
		case value.KindPattern:
			return "/" + t.Value.String() + "/"
		case value.KindTime:
			return "date:" + t.Value.String()
		default:
			return t.Value.String()
		}
	default:
		return "?"
	}
}

type ParserTestSuite struct {
	suite.Suite
	p *Parser
}

func (s *ParserTestSuite) SetupTest() {
	s.p = NewParser().(*Parser)
}

func (s *ParserTestSuite) parse(query string) string {
	node, err := s.p.Parse(query, nil)
	s.Require().NoError(err, query)
	return render(node)
}

func (s *ParserTestSuite) TestEmpty() {
	s.Equal("and()", s.parse(""))
	s.Equal("and()", s.parse("  "))
}

func (s *ParserTestSuite) TestNormalized() {
	testCases := []struct {
		query string
		tree  string
	}{
		{query: "gt(qty,25)", tree: `and(gt("qty",25))`},
		{query: "and(eq(a,1),lt(b,2))", tree: `and(and(eq("a",1),lt("b",2)))`},
		{query: "sort(-size,+price)", tree: `and(sort("-size","+price"))`},
		{query: "limit(10,0)", tree: `and(limit(10,0))`},
		{query: "sort()", tree: `and(sort())`},
		{query: "in(color,(red,blue))", tree: `and(in("color",("red","blue")))`},
		{query: "in(color,())", tree: `and(in("color",()))`},
		{query: "eq(name/first,Bob)", tree: `and(eq(("name","first"),"Bob"))`},
		{query: "or(eq(a,1),eq(b,2))", tree: `and(or(eq("a",1),eq("b",2)))`},
		{query: "eq(sub,limit(1))", tree: `and(eq("sub",limit(1)))`},
		{query: "eq( a , 1 )", tree: `and(eq("a",1))`},
	}

	for _, tc := range testCases {
		s.Equal(tc.tree, s.parse(tc.query), tc.query)
	}
}

func (s *ParserTestSuite) TestFIQL() {
	testCases := []struct {
		query string
		tree  string
	}{
		{query: "a=1", tree: `and(eq("a",1))`},
		{query: "a==1", tree: `and(eq("a",1))`},
		{query: "a!=1", tree: `and(ne("a",1))`},
		{query: "a<1", tree: `and(lt("a",1))`},
		{query: "a<=1", tree: `and(le("a",1))`},
		{query: "a>1", tree: `and(gt("a",1))`},
		{query: "a>=1", tree: `and(ge("a",1))`},
		{query: "price=lt=10", tree: `and(lt("price",10))`},
		{query: "color=in=(red,blue)", tree: `and(in("color",("red","blue")))`},
		{query: "name/first=Bob", tree: `and(eq(("name","first"),"Bob"))`},
		{query: "a = 1 & b = 2", tree: `and(eq("a",1),eq("b",2))`},
	}

	for _, tc := range testCases {
		s.Equal(tc.tree, s.parse(tc.query), tc.query)
	}
}

func (s *ParserTestSuite) TestConjunctions() {
	s.Equal(`and(eq("a",1),eq("b",2))`, s.parse("a=1&b=2"))
	s.Equal(`and(eq("a",1),eq("b",2))`, s.parse("a=1,b=2"))
	s.Equal(`or(eq("a",1),eq("b",2))`, s.parse("a=1|b=2"))
	s.Equal(`and(or(eq("a",1),eq("b",2)),eq("c",3))`, s.parse("(a=1|b=2)&c=3"))
	s.Equal(
		`and(sort("+headline"),limit(10,0))`,
		s.parse("sort(+headline)&limit(10,0)"),
	)
	s.Equal(
		`and(lt("price",10),sort("-rating"),limit(5))`,
		s.parse("price=lt=10&sort(-rating)&limit(5)"),
	)
}

func (s *ParserTestSuite) TestMixedConjunctions() {
	_, err := s.p.Parse("a=1&b=2|c=3", nil)
	s.ErrorIs(err, domain.ErrMixedConjunctions)
	s.ErrorAs(err, new(domain.ErrParse))

	_, err = s.p.Parse("(a=1|b=2&c=3)", nil)
	s.ErrorIs(err, domain.ErrMixedConjunctions)
}

func (s *ParserTestSuite) TestSyntaxErrors() {
	for _, query := range []string{"eq(a", "a=", "=1", "a=1&", "(a=1", "eq(a,1))", "a^b"} {
		_, err := s.p.Parse(query, nil)
		var parseErr domain.ErrParse
		s.ErrorAs(err, &parseErr, query)
		s.Equal(query, parseErr.Query)
	}
}

func (s *ParserTestSuite) TestAutoConverter() {
	testCases := []struct {
		text string
		lit  string
	}{
		{text: "true", lit: "true"},
		{text: "false", lit: "false"},
		{text: "null", lit: "null"},
		{text: "undefined", lit: "null"},
		{text: "Infinity", lit: "Infinity"},
		{text: "-Infinity", lit: "-Infinity"},
		{text: "10", lit: "10"},
		{text: "-2.5", lit: "-2.5"},
		{text: "010", lit: `"010"`},
		{text: "1e1", lit: `"1e1"`},
		{text: "+5", lit: `"+5"`},
		{text: "NaN", lit: `"NaN"`},
		{text: "a%20b", lit: `"a b"`},
		{text: "yellow", lit: `"yellow"`},
	}

	for _, tc := range testCases {
		s.Equal(`and(eq("a",`+tc.lit+`))`, s.parse("eq(a,"+tc.text+")"), tc.text)
	}
}

func (s *ParserTestSuite) TestConverters() {
	testCases := []struct {
		text string
		lit  string
	}{
		{text: "string:10", lit: `"10"`},
		{text: "string:a%2Cb", lit: `"a,b"`},
		{text: "number:010", lit: "10"},
		{text: "number:1e1", lit: "10"},
		{text: "boolean:true", lit: "true"},
		{text: "boolean:yes", lit: "false"},
		{text: "epoch:0", lit: "date:1970-01-01T00:00:00Z"},
		{text: "isodate:2020-01-02T03:04:05Z", lit: "date:2020-01-02T03:04:05Z"},
		{text: "isodate:2020-01-02", lit: "date:2020-01-02T00:00:00Z"},
		{text: "date:2020-01-02T03:04:05Z", lit: "date:2020-01-02T03:04:05Z"},
		{text: "date:86400000", lit: "date:1970-01-02T00:00:00Z"},
		{text: "re:%5Eab", lit: "/(?i)^ab/"},
		{text: "RE:%5Eab", lit: "/^ab/"},
		{text: "glob:ab*", lit: "/(?i)^ab/"},
		{text: "glob:*ab", lit: "/(?i)ab$/"},
		{text: "glob:a?c", lit: "/(?i)^a.c$/"},
		{text: "glob:a.c", lit: `/(?i)^a\.c$/`},
	}

	for _, tc := range testCases {
		s.Equal(`and(eq("a",`+tc.lit+`))`, s.parse("eq(a,"+tc.text+")"), tc.text)
	}
}

func (s *ParserTestSuite) TestConverterErrors() {
	_, err := s.p.Parse("eq(a,foo:1)", nil)
	s.ErrorIs(err, domain.ErrUnknownConverter{Name: "foo"})

	_, err = s.p.Parse("eq(a,number:abc)", nil)
	var convErr domain.ErrConvert
	s.ErrorAs(err, &convErr)
	s.Equal("number", convErr.Converter)
	s.Equal("abc", convErr.Value)

	_, err = s.p.Parse("eq(a,isodate:yesterday)", nil)
	s.ErrorAs(err, new(domain.ErrConvert))

	_, err = s.p.Parse("eq(a,RE:%28)", nil)
	s.ErrorAs(err, new(domain.ErrConvert))

	for _, text := range []string{"epoch:1e30", "epoch:-1e30", "epoch:Infinity", "date:1e19"} {
		_, err = s.p.Parse("eq(a,"+text+")", nil)
		s.ErrorIs(err, errNotDate, text)
	}
}

func (s *ParserTestSuite) TestCustomConverter() {
	p := NewParser(WithConverter("upper", func(text string) (value.Value, error) {
		return value.Str(strings.ToUpper(text)), nil
	}))
	node, err := p.Parse("eq(a,upper:abc)", nil)
	s.NoError(err)
	s.Equal(`and(eq("a","ABC"))`, render(node))
}

func (s *ParserTestSuite) TestParameters() {
	node, err := s.p.Parse("eq(qty,$1)&eq(name,$2)", domain.Positional(10, "Bob"))
	s.NoError(err)
	s.Equal(`and(eq("qty",10),eq("name","Bob"))`, render(node))

	node, err = s.p.Parse("in(color,$colors)&eq(a,$missing)", map[string]any{
		"colors": []string{"red", "blue"},
	})
	s.NoError(err)
	s.Equal(`and(in("color",("red","blue")),eq("a",null))`, render(node))

	node, err = s.p.Parse("eq(a,$sub)", map[string]any{
		"sub": ast.NewCall("limit", ast.Lit(value.Int(1))),
	})
	s.NoError(err)
	s.Equal(`and(eq("a",limit(1)))`, render(node))

	_, err = s.p.Parse("eq(a,$bad)", map[string]any{"bad": make(chan int)})
	s.ErrorAs(err, new(domain.ErrConvert))
}

// Without parameters, placeholders are read as any other value.
func (s *ParserTestSuite) TestPlaceholderWithoutParameters() {
	s.Equal(`and(eq("a","$1"))`, s.parse("eq(a,$1)"))
}

func (s *ParserTestSuite) TestParseReader() {
	node, err := s.p.ParseReader(context.Background(), strings.NewReader("a=1&b=gt=2"), nil)
	s.NoError(err)
	s.Equal(`and(eq("a",1),gt("b",2))`, render(node))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.p.ParseReader(ctx, strings.NewReader("a=1"), nil)
	s.ErrorIs(err, context.Canceled)
}

func (s *ParserTestSuite) TestDatesAreUTC() {
	node, err := s.p.Parse("eq(a,epoch:1000)", nil)
	s.NoError(err)
	lit := node.(*ast.Call).Args[0].(*ast.Call).Args[1].(ast.Literal)
	t, ok := lit.Value.AsTime()
	s.True(ok)
	s.Equal(time.UTC, t.Location())
	s.Equal(int64(1000), t.UnixMilli())
}

func TestParserTestSuite(t *testing.T) {
	suite.Run(t, new(ParserTestSuite))
}
