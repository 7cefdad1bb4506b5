// Package merger contains the default [domain.Merger] implementation, which
// combines criteria documents the way the and operator requires.
package merger

import (
	"strings"

	"github.com/vinicius-lino-figueiredo/mongorql/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/mongorql/domain"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// AndKey is the logical key used to hold terms that cannot share a document.
const AndKey = "$and"

// Merger implements [domain.Merger].
//
// Keys of the incoming document are copied into the accumulated one. Nested
// documents are merged recursively, arrays are appended and anything else is
// overwritten. When an operator key (starting with $) would receive a value
// different from the one already set, directly or inside a field document,
// both constraints are kept by moving the accumulated document into an $and
// list and writing the remaining keys into a new term of that list.
type Merger struct {
	comparer domain.Comparer
}

// NewMerger returns a new implementation of domain.Merger.
func NewMerger(options ...Option) domain.Merger {
	m := &Merger{
		comparer: comparer.NewComparer(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Merge implements [domain.Merger].
func (m *Merger) Merge(dst, src *value.Map) *value.Map {
	if dst == nil {
		dst = value.NewMap()
	}
	mg := &merge{Merger: m, root: dst, term: dst}
	for key, source := range src.All() {
		dest, found := mg.term.Get(key)
		if found && m.collides(key, dest, source) {
			mg.promote()
			dest, found = value.Value{}, false
		}
		mg.term.Set(key, m.combine(dest, found, source))
	}
	return mg.root
}

// merge holds the state of a single call to Merge.
type merge struct {
	*Merger
	root *value.Map
	term *value.Map
}

func (mg *merge) promote() {
	term := value.NewMap()
	if terms, ok := mg.root.Get(AndKey); ok {
		if items, ok := terms.AsArray(); ok {
			mg.root.Set(AndKey, value.List(append(items, value.Obj(term))...))
			mg.term = term
			return
		}
	}
	wrapper := value.NewMap()
	wrapper.Set(AndKey, value.List(value.Obj(mg.root), value.Obj(term)))
	mg.root = wrapper
	mg.term = term
}

// collides reports whether storing source over dest would lose an operator
// constraint.
func (m *Merger) collides(key string, dest, source value.Value) bool {
	if IsOperatorKey(key) {
		return !m.comparer.Equal(dest, source)
	}
	srcDoc, ok := source.AsMap()
	if !ok {
		return false
	}
	destDoc, ok := dest.AsMap()
	if !ok {
		return false
	}
	for k, v := range srcDoc.All() {
		if d, found := destDoc.Get(k); found && m.collides(k, d, v) {
			return true
		}
	}
	return false
}

func (m *Merger) combine(dest value.Value, found bool, source value.Value) value.Value {
	if found && m.comparer.Equal(dest, source) {
		return dest
	}
	switch source.Kind() {
	case value.KindObject:
		srcDoc, _ := source.AsMap()
		destDoc, ok := dest.AsMap()
		if !found || !ok {
			destDoc = value.NewMap()
		}
		for k, v := range srcDoc.All() {
			d, f := destDoc.Get(k)
			destDoc.Set(k, m.combine(d, f, v))
		}
		return value.Obj(destDoc)
	case value.KindArray:
		srcItems, _ := source.AsArray()
		destItems, ok := dest.AsArray()
		if !found || !ok {
			destItems = nil
		}
		items := make([]value.Value, 0, len(destItems)+len(srcItems))
		items = append(items, destItems...)
		for _, item := range srcItems {
			items = append(items, item.Clone())
		}
		return value.List(items...)
	default:
		return source
	}
}

// IsOperatorKey reports whether key is a $-prefixed operator key.
func IsOperatorKey(key string) bool {
	return strings.HasPrefix(key, "$")
}
