package mongorql_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vinicius-lino-figueiredo/mongorql"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/ast"
)

func BenchmarkTranslateText(b *testing.B) {
	queries := map[string]string{
		"Simple":     "a=1",
		"FIQL":       "price=lt=10&rating=ge=4&sort(-rating)&limit(5)",
		"Normalized": "and(or(eq(a,1),eq(b,2)),in(c,(x,y,z)),select(a,b))",
		"Parameters": "eq(qty,$1)&in(tag,$2)",
	}
	params := mongorql.WithParameters(mongorql.Positional(10, []string{"a", "b"}))
	for name, query := range queries {
		b.Run(name, func(b *testing.B) {
			for b.Loop() {
				if _, err := mongorql.Translate(query, params); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkTranslateTree(b *testing.B) {
	node, err := ast.New().
		Eq("a", 1).
		Or(ast.New().Gt("b", 2), ast.New().Lt("b", 0)).
		Sort("-a").
		Build()
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		if _, err := mongorql.Translate(node); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTranslateWideConjunction(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		terms := make([]string, n)
		for i := range terms {
			terms[i] = fmt.Sprintf("f%d=gt=%d", i%10, i)
		}
		query := strings.Join(terms, "&")
		b.Run(fmt.Sprintf("Terms=%d", n), func(b *testing.B) {
			for b.Loop() {
				if _, err := mongorql.Translate(query); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
