// Package mongorql translates RQL (Resource Query Language) queries into
// MongoDB-style query objects.
//
// A query can be given as RQL text, such as "price=lt=10&sort(-rating)", as a
// tree built with [ast.New], or as a plain object read as a list of
// equalities. The result is a [Query] holding the filter document, sort,
// projections, skip and limit.
//
// The basic usage starts with [Translate], or with [New] when the parser,
// compiler or logger need to be replaced.
package mongorql

import (
	"context"
	"io"
	"log/slog"

	"github.com/vinicius-lino-figueiredo/mongorql/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/mongorql/adapter/translator"
	"github.com/vinicius-lino-figueiredo/mongorql/domain"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/ast"
)

var (
	// ErrMixedConjunctions is returned when a single group of RQL text
	// joins terms with both & and |.
	ErrMixedConjunctions = domain.ErrMixedConjunctions
	// ErrTargetNil is returned when user provides a nil value as a target
	// to [Decode].
	ErrTargetNil = domain.ErrTargetNil
	// ErrNonPointer is returned when the target given to [Decode] is not a
	// pointer.
	ErrNonPointer = domain.ErrNonPointer
)

// ErrUnsupportedOperator is returned when a query contains an operator name
// with no translation.
type ErrUnsupportedOperator = domain.ErrUnsupportedOperator

// ErrUnsupportedQuery is returned when [Translate] receives a value that is not
// a string, a query tree or an object.
type ErrUnsupportedQuery = domain.ErrUnsupportedQuery

// ErrParse wraps syntax errors found in RQL text.
type ErrParse = domain.ErrParse

// ErrUnknownConverter is returned for values prefixed with an unregistered
// converter name.
type ErrUnknownConverter = domain.ErrUnknownConverter

// ErrConvert is returned when a converter cannot read a value.
type ErrConvert = domain.ErrConvert

// ErrDecode is returned by [Decoder.Decode] to easily wrap third party decoding
// errors.
type ErrDecode = domain.ErrDecode

// Query is the result of a translation.
type Query = domain.Query

// Sort represents an ordered list of fields which should be used, respectively,
// to sort the results of a query.
type Sort = domain.Sort

// SortName represents a single field and the order which should be used to sort
// it, a positive value meaning ascending order and a negative value meaning
// descending order.
type SortName = domain.SortName

// Translator converts queries into [Query] values.
type Translator = domain.Translator

// Parser converts RQL text into a query tree.
type Parser = domain.Parser

// Compiler walks a query tree and builds the resulting [Query].
type Compiler = domain.Compiler

// Merger combines criteria documents for the and operator.
type Merger = domain.Merger

// Comparer provides ordering and equality for values.
type Comparer = domain.Comparer

// Decoder converts between different data representations.
type Decoder = domain.Decoder

// Node is an element of a query tree.
type Node = ast.Node

// TranslateOption configures a translation through the functional options
// pattern.
type TranslateOption = domain.TranslateOption

// WithParameters sets the values that replace $name placeholders in RQL text.
func WithParameters(p map[string]any) TranslateOption {
	return domain.WithParameters(p)
}

// Positional returns the parameters for $1, $2, and so on.
func Positional(args ...any) map[string]any {
	return domain.Positional(args...)
}

// Option configures a [Translator] created with [New].
type Option = translator.Option

// WithParser sets the parser for RQL text.
func WithParser(p Parser) Option {
	return translator.WithParser(p)
}

// WithCompiler sets the compiler for query trees.
func WithCompiler(c Compiler) Option {
	return translator.WithCompiler(c)
}

// WithLogger sets the logger. Translations are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return translator.WithLogger(l)
}

// New creates a new [Translator] with the provided configuration options:
//
// - [WithParser]: sets the parser for RQL text.
//
// - [WithCompiler]: sets the compiler that applies operators.
//
// - [WithLogger]: sets the structured logger.
func New(options ...Option) Translator {
	return translator.NewTranslator(options...)
}

var defaultTranslator = New()

// Translate translates query with the default [Translator]. See
// [domain.Translator] for the accepted inputs.
func Translate(query any, options ...TranslateOption) (*Query, error) {
	return defaultTranslator.Translate(query, options...)
}

// TranslateReader reads RQL text from r and translates it with the default
// [Translator].
func TranslateReader(ctx context.Context, r io.Reader, options ...TranslateOption) (*Query, error) {
	return defaultTranslator.TranslateReader(ctx, r, options...)
}

// Decode copies source, usually a [Query] or one of its documents, into the
// value pointed by target. Struct fields can be renamed with the "mongorql"
// tag.
func Decode(source any, target any) error {
	return decoder.NewDecoder().Decode(source, target)
}
