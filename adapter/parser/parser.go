// Package parser contains the default [domain.Parser] implementation, which
// reads RQL text in both the normalized form (and(eq(a,1),lt(b,2))) and the
// FIQL shorthand (a=1&b=lt=2).
package parser

import (
	"context"
	"io"
	"strings"

	"github.com/dolmen-go/contextio"
	"github.com/vinicius-lino-figueiredo/mongorql/domain"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/ast"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// fiqlOperators maps comparison symbols to operator names. The =name= form
// is handled separately.
var fiqlOperators = map[string]string{
	"=":  ast.Eq.String(),
	"==": ast.Eq.String(),
	"!=": ast.Ne.String(),
	"<":  ast.Lt.String(),
	"<=": ast.Le.String(),
	">":  ast.Gt.String(),
	">=": ast.Ge.String(),
}

// Parser implements [domain.Parser].
type Parser struct {
	converters map[string]Converter
}

// NewParser returns a new implementation of domain.Parser.
func NewParser(options ...Option) domain.Parser {
	p := &Parser{
		converters: DefaultConverters(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Parse implements [domain.Parser].
func (p *Parser) Parse(query string, parameters map[string]any) (ast.Node, error) {
	if strings.TrimSpace(query) == "" {
		return ast.NewCall(ast.And.String()), nil
	}
	raw, err := grammar.ParseString("", query)
	if err != nil {
		return nil, domain.ErrParse{Query: query, Err: err}
	}
	s := &state{Parser: p, parameters: parameters}
	node, err := s.group(raw)
	if err != nil {
		return nil, domain.ErrParse{Query: query, Err: err}
	}
	return node, nil
}

// ParseReader implements [domain.Parser].
func (p *Parser) ParseReader(ctx context.Context, r io.Reader, parameters map[string]any) (ast.Node, error) {
	b, err := io.ReadAll(contextio.NewReader(ctx, r))
	if err != nil {
		return nil, err
	}
	return p.Parse(string(b), parameters)
}

// state holds what a single Parse call needs while converting the raw tree.
type state struct {
	*Parser
	parameters map[string]any
}

func (s *state) group(g *rawGroup) (ast.Node, error) {
	head, err := s.term(g.Head)
	if err != nil {
		return nil, err
	}
	args := []ast.Node{head}
	var conj string
	for _, link := range g.Tail {
		name := ast.And.String()
		if link.Conj == "|" {
			name = ast.Or.String()
		}
		if conj != "" && conj != name {
			return nil, domain.ErrMixedConjunctions
		}
		conj = name
		t, err := s.term(link.Term)
		if err != nil {
			return nil, err
		}
		args = append(args, t)
	}
	if conj == "" {
		conj = ast.And.String()
	}
	return ast.NewCall(conj, args...), nil
}

func (s *state) term(t *rawTerm) (ast.Node, error) {
	switch {
	case t.Call != nil:
		return s.call(t.Call)
	case t.Group != nil:
		return s.group(t.Group)
	default:
		return s.compare(t.Compare)
	}
}

func (s *state) call(c *rawCall) (ast.Node, error) {
	args, err := s.args(c.Args)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(c.Name, args...), nil
}

func (s *state) compare(c *rawCompare) (ast.Node, error) {
	name, ok := fiqlOperators[c.Op]
	if !ok {
		name = strings.Trim(c.Op, "=")
	}
	property, err := s.value(c.Property)
	if err != nil {
		return nil, err
	}
	v, err := s.arg(c.Value)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(name, property, v), nil
}

func (s *state) args(raw []*rawArg) ([]ast.Node, error) {
	nodes := make([]ast.Node, len(raw))
	for i, a := range raw {
		var err error
		if nodes[i], err = s.arg(a); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

func (s *state) arg(a *rawArg) (ast.Node, error) {
	switch {
	case a.Call != nil:
		return s.call(a.Call)
	case a.Array != nil:
		items, err := s.args(a.Array.Items)
		if err != nil {
			return nil, err
		}
		return ast.List(items), nil
	default:
		return s.value(a.Value)
	}
}

// value converts a word, or a slash separated path into a list of words.
func (s *state) value(v *rawValue) (ast.Node, error) {
	if len(v.Parts) == 1 {
		return s.word(v.Parts[0])
	}
	items := make(ast.List, len(v.Parts))
	for i, part := range v.Parts {
		var err error
		if items[i], err = s.word(part); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *state) word(w string) (ast.Node, error) {
	if name, ok := strings.CutPrefix(w, "$"); ok && s.parameters != nil {
		return s.parameter(name)
	}
	conv, text := AutoConverter, w
	if prefix, rest, ok := strings.Cut(w, ":"); ok {
		conv, text = prefix, rest
	}
	convert, ok := s.converters[conv]
	if !ok {
		return nil, domain.ErrUnknownConverter{Name: conv}
	}
	v, err := convert(text)
	if err != nil {
		return nil, domain.ErrConvert{Converter: conv, Value: text, Err: err}
	}
	return ast.Lit(v), nil
}

// parameter looks up a placeholder. Missing entries are null, trees and
// builders are inserted as they are.
func (s *state) parameter(name string) (ast.Node, error) {
	p, ok := s.parameters[name]
	if !ok {
		return ast.Lit(value.Null()), nil
	}
	n, err := ast.NodeOf(p)
	if err != nil {
		return nil, domain.ErrConvert{Converter: "parameter", Value: name, Err: err}
	}
	return n, nil
}
