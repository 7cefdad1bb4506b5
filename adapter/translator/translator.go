// Package translator contains the default [domain.Translator] implementation,
// which ties a [domain.Parser] and a [domain.Compiler] together.
package translator

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/vinicius-lino-figueiredo/mongorql/adapter/compiler"
	"github.com/vinicius-lino-figueiredo/mongorql/adapter/parser"
	"github.com/vinicius-lino-figueiredo/mongorql/domain"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/ast"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/structure"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// Translator implements [domain.Translator].
type Translator struct {
	parser   domain.Parser
	compiler domain.Compiler
	logger   *slog.Logger
}

// NewTranslator returns a new implementation of domain.Translator.
func NewTranslator(options ...Option) domain.Translator {
	t := &Translator{
		parser:   parser.NewParser(),
		compiler: compiler.NewCompiler(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Translate implements [domain.Translator].
func (t *Translator) Translate(query any, options ...domain.TranslateOption) (*domain.Query, error) {
	opts := t.options(options)
	log := t.logger.With("id", uuid.NewString())
	start := time.Now()

	root, err := t.tree(query, opts)
	if err != nil {
		log.Debug("translation failed", "input", inputKind(query), "error", err)
		return nil, err
	}
	q, err := t.compiler.Compile(root)
	if err != nil {
		log.Debug("translation failed", "input", inputKind(query), "error", err)
		return nil, err
	}
	log.Debug("query translated",
		"input", inputKind(query),
		"criteria", q.Criteria.Len(),
		"duration", time.Since(start),
	)
	return q, nil
}

// TranslateReader implements [domain.Translator].
func (t *Translator) TranslateReader(ctx context.Context, r io.Reader, options ...domain.TranslateOption) (*domain.Query, error) {
	opts := t.options(options)
	root, err := t.parser.ParseReader(ctx, r, opts.Parameters)
	if err != nil {
		t.logger.DebugContext(ctx, "translation failed", "input", "reader", "error", err)
		return nil, err
	}
	return t.Translate(root, options...)
}

func (t *Translator) options(options []domain.TranslateOption) domain.TranslateOptions {
	var opts domain.TranslateOptions
	for _, option := range options {
		option(&opts)
	}
	return opts
}

// tree returns the query tree for any accepted input.
func (t *Translator) tree(query any, opts domain.TranslateOptions) (ast.Node, error) {
	switch q := query.(type) {
	case nil:
		return nil, nil
	case string:
		return t.parser.Parse(q, opts.Parameters)
	case *ast.Builder:
		return q.Build()
	case ast.Node:
		return q, nil
	}
	return objectTree(query)
}

// objectTree reads a plain object as a conjunction of equalities, one per
// key, in key order.
func objectTree(query any) (ast.Node, error) {
	v, err := structure.ToValue(query)
	if err != nil {
		return nil, domain.ErrUnsupportedQuery{Query: query}
	}
	doc, ok := v.AsMap()
	if !ok {
		return nil, domain.ErrUnsupportedQuery{Query: query}
	}
	keys := doc.Keys()
	slices.Sort(keys)
	root := ast.NewCall(ast.And.String())
	for _, k := range keys {
		val, _ := doc.Get(k)
		root.Args = append(root.Args, ast.NewCall(ast.Eq.String(), ast.Lit(value.Str(k)), ast.Lit(val)))
	}
	return root, nil
}

func inputKind(query any) string {
	switch query.(type) {
	case nil:
		return "nil"
	case string:
		return "text"
	case *ast.Builder, ast.Node:
		return "tree"
	default:
		return "object"
	}
}
