// Package comparer contains the default [domain.Comparer] implementation.
package comparer

import (
	"cmp"
	"slices"

	"github.com/vinicius-lino-figueiredo/mongorql/domain"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// Values of different kinds are ordered by kind, smallest first.
var kindOrder = map[value.Kind]int{
	value.KindNull:    0,
	value.KindNumber:  1,
	value.KindString:  2,
	value.KindPattern: 3,
	value.KindBool:    4,
	value.KindTime:    5,
	value.KindArray:   6,
	value.KindObject:  7,
}

// Comparer implements domain.Comparer.
type Comparer struct{}

// NewComparer returns a new implementation of domain.Comparer.
func NewComparer() domain.Comparer {
	return &Comparer{}
}

// Equal implements domain.Comparer.
func (c *Comparer) Equal(a, b value.Value) bool {
	return c.Compare(a, b) == 0
}

// Compare implements domain.Comparer.
func (c *Comparer) Compare(a, b value.Value) int {
	if a.Kind() != b.Kind() {
		return cmp.Compare(kindOrder[a.Kind()], kindOrder[b.Kind()])
	}

	switch a.Kind() {
	case value.KindNumber:
		x, _ := a.AsNumber()
		y, _ := b.AsNumber()
		return cmp.Compare(x, y)
	case value.KindString:
		x, _ := a.AsString()
		y, _ := b.AsString()
		return cmp.Compare(x, y)
	case value.KindPattern:
		x, _ := a.AsRegex()
		y, _ := b.AsRegex()
		return cmp.Compare(x.String(), y.String())
	case value.KindBool:
		x, _ := a.AsBool()
		y, _ := b.AsBool()
		return c.compareBool(x, y)
	case value.KindTime:
		x, _ := a.AsTime()
		y, _ := b.AsTime()
		return x.Compare(y)
	case value.KindArray:
		x, _ := a.AsArray()
		y, _ := b.AsArray()
		return c.compareArray(x, y)
	case value.KindObject:
		x, _ := a.AsMap()
		y, _ := b.AsMap()
		return c.compareDoc(x, y)
	default:
		return 0
	}
}

func (c *Comparer) compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if a {
		return 1
	}
	return -1
}

func (c *Comparer) compareArray(a, b []value.Value) int {
	for i := range min(len(a), len(b)) {
		if comp := c.Compare(a[i], b[i]); comp != 0 {
			return comp
		}
	}

	// Common section was identical, longest one wins
	return cmp.Compare(len(a), len(b))
}

// compareDoc ignores key order, so {a:1,b:2} equals {b:2,a:1}.
func (c *Comparer) compareDoc(a, b *value.Map) int {
	aKeys := a.Keys()
	bKeys := b.Keys()
	slices.Sort(aKeys)
	slices.Sort(bKeys)

	for i := range min(len(aKeys), len(bKeys)) {
		if comp := cmp.Compare(aKeys[i], bKeys[i]); comp != 0 {
			return comp
		}
		x, _ := a.Get(aKeys[i])
		y, _ := b.Get(bKeys[i])
		if comp := c.Compare(x, y); comp != 0 {
			return comp
		}
	}

	return cmp.Compare(len(aKeys), len(bKeys))
}
