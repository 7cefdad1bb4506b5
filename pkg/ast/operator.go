package ast

// Operator is the closed set of operators understood by the compiler.
type Operator uint8

// Supported operators. The zero value is not a valid operator.
const (
	Eq Operator = iota + 1
	Ne
	Gt
	Lt
	Ge
	Le
	In
	Out
	Contains
	Excludes
	Match
	And
	Or
	Sort
	Limit
	Select
	Unselect
)

var operatorNames = [...]string{
	Eq:       "eq",
	Ne:       "ne",
	Gt:       "gt",
	Lt:       "lt",
	Ge:       "ge",
	Le:       "le",
	In:       "in",
	Out:      "out",
	Contains: "contains",
	Excludes: "excludes",
	Match:    "match",
	And:      "and",
	Or:       "or",
	Sort:     "sort",
	Limit:    "limit",
	Select:   "select",
	Unselect: "unselect",
}

var operatorsByName = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorNames))
	for op, name := range operatorNames {
		if name != "" {
			m[name] = Operator(op)
		}
	}
	return m
}()

// LookupOperator returns the operator with the given name.
func LookupOperator(name string) (Operator, bool) {
	op, ok := operatorsByName[name]
	return op, ok
}

// Operators returns every supported operator in declaration order.
func Operators() []Operator {
	ops := make([]Operator, 0, len(operatorNames)-1)
	for op := Eq; op <= Unselect; op++ {
		ops = append(ops, op)
	}
	return ops
}

// String returns the operator name as written in RQL.
func (o Operator) String() string {
	if int(o) < len(operatorNames) && operatorNames[o] != "" {
		return operatorNames[o]
	}
	return "unknown"
}
