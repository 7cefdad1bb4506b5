package structure

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/value"
)

var simpleMapsTestCases = []any{
	map[string]string{"A": "0"}, map[string]bool{"B": true},
	map[string]int{"C": -2}, map[string]int8{"D": -3},
	map[string]int16{"E": -4}, map[string]int32{"F": -5},
	map[string]int64{"G": -6}, map[string]uint{"H": 7},
	map[string]uint8{"I": 8}, map[string]uint16{"J": 9},
	map[string]uint32{"K": 10}, map[string]uint64{"L": 11},
	map[string]float32{"M": 12.5}, map[string]float64{"N": 13.5},
	map[string]any{"O": []any{14}}, map[string]any{"P": []int{15}},
	map[string]time.Time{"Q": time.UnixMilli(16).UTC()},
	map[string]*regexp.Regexp{"R": regexp.MustCompile(`17`)},
	map[string][]byte{"S": []byte("18")},
}

var simpleStructTestCases = []any{
	struct{ A string }{A: "0"},
	struct{ B bool }{B: true},
	struct{ C int }{C: -2},
	struct{ D int8 }{D: -3},
	struct{ E int16 }{E: -4},
	struct{ F int32 }{F: -5},
	struct{ G int64 }{G: -6},
	struct{ H uint }{H: 7},
	struct{ I uint8 }{I: 8},
	struct{ J uint16 }{J: 9},
	struct{ K uint32 }{K: 10},
	struct{ L uint64 }{L: 11},
	struct{ M float32 }{M: 12.5},
	struct{ N float64 }{N: 13.5},
	struct{ O []any }{O: []any{14}},
	struct{ P []int }{P: []int{15}},
	struct{ Q time.Time }{Q: time.UnixMilli(16).UTC()},
	struct{ R *regexp.Regexp }{R: regexp.MustCompile(`17`)},
	struct{ S []byte }{S: []byte("18")},
}

var expectedJSON = []string{
	`{"A":"0"}`, `{"B":true}`, `{"C":-2}`, `{"D":-3}`, `{"E":-4}`, `{"F":-5}`,
	`{"G":-6}`, `{"H":7}`, `{"I":8}`, `{"J":9}`, `{"K":10}`, `{"L":11}`,
	`{"M":12.5}`, `{"N":13.5}`, `{"O":[14]}`, `{"P":[15]}`,
	`{"Q":{"$date":"1970-01-01T00:00:00.016Z"}}`,
	`{"R":{"$regex":"17","$options":""}}`, `{"S":"18"}`,
}

type StructureTestSuite struct {
	suite.Suite
}

func (s *StructureTestSuite) json(v value.Value) string {
	b, err := v.MarshalJSON()
	s.Require().NoError(err)
	return string(b)
}

func (s *StructureTestSuite) TestSimpleMaps() {
	for n, tc := range simpleMapsTestCases {
		v, err := ToValue(tc)
		s.NoError(err)
		s.Equal(expectedJSON[n], s.json(v))
	}
}

func (s *StructureTestSuite) TestSimpleStructs() {
	for n, tc := range simpleStructTestCases {
		v, err := ToValue(tc)
		s.NoError(err)
		s.Equal(expectedJSON[n], s.json(v))
	}
}

func (s *StructureTestSuite) TestTaggedStruct() {
	type address struct {
		City string `mongorql:"city"`
	}
	type person struct {
		Name     string            `mongorql:"name"`
		Nickname string            `mongorql:"nick,omitzero"`
		Address  *address          `mongorql:"address,omitempty"`
		Tags     []string          `mongorql:"tags"`
		Extra    map[string]string `mongorql:"extra,omitempty"`
		Secret   string            `mongorql:"-"`
		Age      int
		internal int
	}

	v, err := ToValue(person{Name: "Bob", Tags: []string{"a"}, Age: 30, Secret: "x", internal: 1})
	s.NoError(err)
	s.Equal(`{"name":"Bob","tags":["a"],"Age":30}`, s.json(v))

	v, err = ToValue(&person{Name: "Ann", Nickname: "A", Address: &address{City: "Rio"}})
	s.NoError(err)
	s.Equal(`{"name":"Ann","nick":"A","address":{"city":"Rio"},"tags":[],"Age":0}`, s.json(v))
}

func (s *StructureTestSuite) TestOmitEmpty() {
	type filter struct {
		Name   string         `mongorql:"name,omitempty"`
		Age    int            `mongorql:"age,omitempty"`
		Score  float64        `mongorql:"score,omitempty"`
		Active bool           `mongorql:"active,omitempty"`
		Tags   []string       `mongorql:"tags,omitempty"`
		Meta   map[string]int `mongorql:"meta,omitempty"`
		Extra  any            `mongorql:"extra,omitempty"`
		Point  [0]int         `mongorql:"point,omitempty"`
		When   time.Time      `mongorql:"when,omitempty"`
	}

	v, err := ToValue(filter{Tags: []string{}, Meta: map[string]int{}})
	s.NoError(err)
	s.Equal(`{"when":{"$date":"0001-01-01T00:00:00Z"}}`, s.json(v))

	v, err = ToValue(filter{Name: "Bob", Age: 3, Active: true, Tags: []string{"a"}})
	s.NoError(err)
	s.Equal(`{"name":"Bob","age":3,"active":true,"tags":["a"],"when":{"$date":"0001-01-01T00:00:00Z"}}`, s.json(v))
}

func (s *StructureTestSuite) TestMapKeysAreSorted() {
	v, err := ToValue(map[string]int{"c": 3, "a": 1, "b": 2})
	s.NoError(err)
	s.Equal(`{"a":1,"b":2,"c":3}`, s.json(v))
}

func (s *StructureTestSuite) TestNilValues() {
	var ptr *int
	var m map[string]int
	var sl []int
	var iface any
	for _, tc := range []any{nil, ptr, m, sl, iface} {
		v, err := ToValue(tc)
		s.NoError(err)
		s.True(v.IsNull())
	}
}

func (s *StructureTestSuite) TestArrays() {
	v, err := ToValue([3]int{1, 2, 3})
	s.NoError(err)
	s.Equal(`[1,2,3]`, s.json(v))

	n := 5
	v, err = ToValue([]*int{&n, nil})
	s.NoError(err)
	s.Equal(`[5,null]`, s.json(v))
}

func (s *StructureTestSuite) TestUnsupported() {
	_, err := ToValue(map[int]string{1: "a"})
	s.ErrorIs(err, ErrNonStringKey)

	_, err = ToValue(make(chan int))
	s.ErrorIs(err, ErrUnsupportedKind{Kind: reflect.Chan})

	_, err = ToValue(struct{ F func() }{F: func() {}})
	s.ErrorIs(err, ErrUnsupportedKind{Kind: reflect.Func})
}

func (s *StructureTestSuite) TestAsInteger() {
	testCases := []struct {
		in  any
		out int
		ok  bool
	}{
		{in: 1, out: 1, ok: true},
		{in: int8(-2), out: -2, ok: true},
		{in: uint16(3), out: 3, ok: true},
		{in: float32(4), out: 4, ok: true},
		{in: float64(5), out: 5, ok: true},
		{in: 5.5, ok: false},
		{in: float32(0.5), ok: false},
		{in: math.Inf(1), ok: false},
		{in: math.NaN(), ok: false},
		{in: "6", ok: false},
		{in: nil, ok: false},
	}
	for _, tc := range testCases {
		n, ok := AsInteger(tc.in)
		s.Equal(tc.ok, ok, "%v", tc.in)
		s.Equal(tc.out, n, "%v", tc.in)
	}
}

func TestStructureTestSuite(t *testing.T) {
	suite.Run(t, new(StructureTestSuite))
}
