// Package domain contains domain-specific interfaces, entities, errors and
// option types for mongorql.
//
// This package defines the interfaces implemented by the adapters (parsing RQL
// text, compiling trees, merging criteria, comparing and decoding values) as
// well as the functional options used to configure a translation.
package domain

import (
	"context"
	"io"

	"github.com/vinicius-lino-figueiredo/mongorql/pkg/ast"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// Parser converts RQL text into a query tree.
type Parser interface {
	// Parse parses a query string. Placeholders like $name are replaced by
	// the matching entry of parameters.
	Parse(query string, parameters map[string]any) (ast.Node, error)
	// ParseReader reads the whole query from r before parsing it. Reading
	// stops if ctx is done.
	ParseReader(ctx context.Context, r io.Reader, parameters map[string]any) (ast.Node, error)
}

// Compiler walks a query tree and builds the resulting [Query].
type Compiler interface {
	// Compile returns a new [Query] built from root. A nil root results in
	// an empty query.
	Compile(root ast.Node) (*Query, error)
}

// Merger combines criteria documents, as required by the and operator.
type Merger interface {
	// Merge merges src into dst in place and returns the resulting
	// document, which is either dst or an $and document wrapping it.
	Merge(dst, src *value.Map) *value.Map
}

// Comparer provides ordering and equality for values.
type Comparer interface {
	// Compare returns -1, 0, or 1 based on the comparison of two values.
	Compare(a, b value.Value) int
	// Equal reports whether a and b are deeply equal.
	Equal(a, b value.Value) bool
}

// Decoder converts between different data representations.
type Decoder interface {
	// Decode copies source into the value pointed by target.
	Decode(source any, target any) error
}

// Translator is the entry point: it accepts RQL text or a prebuilt tree and
// returns the equivalent [Query].
type Translator interface {
	// Translate accepts nil, a string, an [ast.Node], an [*ast.Builder] or
	// a plain object (map or struct), which is read as a conjunction of
	// equalities.
	Translate(query any, options ...TranslateOption) (*Query, error)
	// TranslateReader reads RQL text from r and translates it.
	TranslateReader(ctx context.Context, r io.Reader, options ...TranslateOption) (*Query, error)
}
