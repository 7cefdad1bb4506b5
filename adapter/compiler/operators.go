package compiler

import (
	"github.com/vinicius-lino-figueiredo/mongorql/domain"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/ast"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/structure"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// Comparison keys written into criteria documents.
const (
	keyNe  = "$ne"
	keyGt  = "$gt"
	keyLt  = "$lt"
	keyGte = "$gte"
	keyLte = "$lte"
	keyIn  = "$in"
	keyNin = "$nin"
	keyOr  = "$or"
)

func (c *Compiler) apply(op ast.Operator, name string, q *domain.Query, args []operand) error {
	switch op {
	case ast.Eq, ast.Match:
		// match does not wrap the value with $regex, patterns are
		// stored as they are.
		q.Criteria.Set(arg(args, 0).path(), arg(args, 1).toValue())
	case ast.Ne:
		c.compare(q, keyNe, args)
	case ast.Gt:
		c.compare(q, keyGt, args)
	case ast.Lt:
		c.compare(q, keyLt, args)
	case ast.Ge:
		c.compare(q, keyGte, args)
	case ast.Le:
		c.compare(q, keyLte, args)
	case ast.In:
		c.compare(q, keyIn, args)
	case ast.Out:
		c.compare(q, keyNin, args)
	case ast.Contains:
		c.wrapped(q, keyIn, args)
	case ast.Excludes:
		c.wrapped(q, keyNin, args)
	case ast.Select:
		c.project(q, 1, args)
	case ast.Unselect:
		c.project(q, 0, args)
	case ast.Sort:
		c.sort(q, args)
	case ast.Limit:
		q.Limit = count(arg(args, 0))
		q.Skip = count(arg(args, 1))
	case ast.And:
		c.and(q, args)
	case ast.Or:
		c.or(q, args)
	default:
		return domain.ErrUnsupportedOperator{Operator: name}
	}
	return nil
}

// compare sets criteria[path][key] = value, creating the field document when
// it is missing or holds a plain value.
func (c *Compiler) compare(q *domain.Query, key string, args []operand) {
	path := arg(args, 0).path()
	current, _ := q.Criteria.Get(path)
	doc, ok := current.AsMap()
	if !ok {
		doc = value.NewMap()
		q.Criteria.Set(path, value.Obj(doc))
	}
	doc.Set(key, arg(args, 1).toValue())
}

func (c *Compiler) wrapped(q *domain.Query, key string, args []operand) {
	v := arg(args, 1)
	c.compare(q, key, []operand{arg(args, 0), {items: []operand{v}, list: true}})
}

func (c *Compiler) project(q *domain.Query, flag int64, args []operand) {
	if q.Projections == nil {
		q.Projections = value.NewMap()
	}
	for _, a := range args {
		q.Projections.Set(a.path(), value.Int(flag))
	}
}

func (c *Compiler) sort(q *domain.Query, args []operand) {
	if q.Sort == nil {
		q.Sort = value.NewMap()
	}
	for _, a := range args {
		attr, ok := a.toValue().AsString()
		if !ok || attr == "" {
			continue
		}
		order := int64(1)
		switch attr[0] {
		case '-':
			order = -1
			attr = attr[1:]
		case '+':
			attr = attr[1:]
		}
		q.Sort.Set(attr, value.Int(order))
	}
}

// count reads limit arguments. Missing, falsy, fractional or negative values
// count as zero.
func count(o operand) int64 {
	n, ok := o.toValue().AsNumber()
	if !ok {
		return 0
	}
	i, ok := structure.AsInteger(n)
	if !ok || i < 0 {
		return 0
	}
	return int64(i)
}

// and merges every argument into q: criteria through the merger, sort and
// projection entries key by key, and skip and limit when they are set.
func (c *Compiler) and(q *domain.Query, args []operand) {
	for _, a := range args {
		if a.query != nil {
			c.mergeQuery(q, a.query)
			continue
		}
		if doc, ok := a.criteria(); ok {
			q.Criteria = c.merger.Merge(q.Criteria, doc)
		}
	}
}

func (c *Compiler) mergeQuery(q, other *domain.Query) {
	q.Criteria = c.merger.Merge(q.Criteria, other.Criteria)
	if other.Sort != nil {
		if q.Sort == nil {
			q.Sort = value.NewMap()
		}
		for k, v := range other.Sort.All() {
			q.Sort.Set(k, v)
		}
	}
	if other.Projections != nil {
		if q.Projections == nil {
			q.Projections = value.NewMap()
		}
		for k, v := range other.Projections.All() {
			q.Projections.Set(k, v)
		}
	}
	if other.Limit != 0 {
		q.Limit = other.Limit
	}
	if other.Skip != 0 {
		q.Skip = other.Skip
	}
}

func (c *Compiler) or(q *domain.Query, args []operand) {
	terms := make([]value.Value, 0, len(args))
	for _, a := range args {
		if doc, ok := a.criteria(); ok {
			terms = append(terms, value.Obj(doc))
		}
	}
	q.Criteria.Set(keyOr, value.List(terms...))
}
