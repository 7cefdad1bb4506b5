package domain

import (
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

// Query is the result of a translation: a MongoDB-like filter document plus
// sort, projection and pagination settings.
//
// Sort and Projections stay nil until an operator asks for them, so a nil
// value means "nothing requested" while an empty map never appears. Skip and
// Limit default to zero, and a zero Limit means no limit.
type Query struct {
	// Criteria maps field paths (or the logical keys $and and $or) to
	// either a plain value or a document of comparison operators.
	Criteria *value.Map
	// Sort maps field paths to 1 (ascending) or -1 (descending).
	Sort *value.Map
	// Projections maps field paths to 1 (include) or 0 (exclude).
	Projections *value.Map
	// Skip is the number of documents to skip.
	Skip int64
	// Limit is the maximum number of documents to return.
	Limit int64
}

// NewQuery returns an empty [Query].
func NewQuery() *Query {
	return &Query{Criteria: value.NewMap()}
}

// Document returns q as a single object with the keys criteria, skip, limit,
// sort and projections, in that order. Absent sort and projections are null.
func (q *Query) Document() *value.Map {
	doc := value.NewMap()
	doc.Set("criteria", value.Obj(q.Criteria))
	doc.Set("skip", value.Int(q.Skip))
	doc.Set("limit", value.Int(q.Limit))
	doc.Set("sort", optional(q.Sort))
	doc.Set("projections", optional(q.Projections))
	return doc
}

func optional(m *value.Map) value.Value {
	if m == nil {
		return value.Null()
	}
	return value.Obj(m)
}

// Map returns [Query.Document] as plain Go values, ready to be handed to a
// database driver or encoder that does not know [value.Value].
func (q *Query) Map() map[string]any {
	return q.Document().Interface()
}

// SortFields returns the sort settings as an ordered [Sort].
func (q *Query) SortFields() Sort {
	if q.Sort == nil {
		return nil
	}
	res := make(Sort, 0, q.Sort.Len())
	for k, v := range q.Sort.All() {
		n, _ := v.AsNumber()
		res = append(res, SortName{Key: k, Order: int64(n)})
	}
	return res
}

// MarshalJSON implements json.Marshaler.
func (q *Query) MarshalJSON() ([]byte, error) {
	return q.Document().MarshalJSON()
}

// MarshalYAML implements yaml.Marshaler.
func (q *Query) MarshalYAML() (any, error) {
	return q.Document().MarshalYAML()
}

// Sort represents an ordered list of fields which should be used to sort query
// results, applied in sequence.
type Sort = []SortName

// SortName represents a single field and the order which should be used to sort
// it. A positive Order value means ascending order and a negative value means
// descending order.
type SortName struct {
	Key   string
	Order int64
}
