// Package predicate builds query predicates over scripting objects.
//
// A Predicate is an ordered conjunction of conditions. It can be rendered as
// an NSPredicate format string (Format), as a JXA whose clause evaluated by
// the target application (Whose), or evaluated in process against plain
// records (Evaluate).
package predicate

import (
	"fmt"
	"sort"
	"strings"
)

// Operator is a comparison operator.
type Operator string

const (
	Equal              Operator = "=="
	NotEqual           Operator = "!="
	GreaterThan        Operator = ">"
	LessThan           Operator = "<"
	GreaterThanOrEqual Operator = ">="
	LessThanOrEqual    Operator = "<="
	Between            Operator = "BETWEEN"
	BeginsWith         Operator = "BEGINSWITH"
	Contains           Operator = "CONTAINS"
	EndsWith           Operator = "ENDSWITH"
	Matches            Operator = "MATCHES"
)

var aliases = map[Operator][]string{
	Equal:              {"=", "==", "eq", "EQ", "equals", "EQUALS"},
	NotEqual:           {"!=", "!==", "neq", "NEQ", "not equal to", "NOT EQUAL TO", "<>"},
	GreaterThan:        {">", "gt", "GT", "greater than", "GREATER THAN"},
	LessThan:           {"<", "lt", "LT", "less than", "LESS THAN"},
	GreaterThanOrEqual: {">=", "=>", "geq", "GEQ", "greater than or equal to", "GREATER THAN OR EQUAL TO"},
	LessThanOrEqual:    {"<=", "=<", "leq", "LEQ", "less than or equal to", "LESS THAN OR EQUAL TO"},
	Between:            {"between", "BETWEEN"},
	BeginsWith:         {"begins with", "beginswith", "BEGINS WITH", "BEGINSWITH"},
	Contains:           {"contains", "CONTAINS"},
	EndsWith:           {"ends with", "endswith", "ENDS WITH", "ENDSWITH"},
	Matches:            {"matches", "MATCHES"},
}

var operatorByAlias = func() map[string]Operator {
	m := make(map[string]Operator)
	for op, names := range aliases {
		for _, n := range names {
			m[n] = op
		}
	}
	return m
}()

// ParseOperator resolves a symbol or name ("==", "eq", "greater than",
// "BEGINSWITH", ...) to an Operator.
func ParseOperator(s string) (Operator, error) {
	if op, ok := operatorByAlias[strings.TrimSpace(s)]; ok {
		return op, nil
	}
	return "", &InvalidPredicateError{Message: fmt.Sprintf("unknown comparison operation %q", s)}
}

// arity is the number of values the operator compares against.
func (op Operator) arity() int {
	if op == Between {
		return 2
	}
	return 1
}

// Condition is a single comparison.
type Condition struct {
	Key      string
	Operator Operator
	Values   []any
}

// Value returns the first comparison value.
func (c Condition) Value() any {
	if len(c.Values) == 0 {
		return nil
	}
	return c.Values[0]
}

// Compare pairs an operator with its values for use in FromMap.
type Compare struct {
	Operator Operator
	Values   []any
}

// Is returns a Compare for FromMap, e.g. predicate.Is(">", 3).
func Is(op string, values ...any) Compare {
	o, err := ParseOperator(op)
	if err != nil {
		o = Operator(op)
	}
	return Compare{Operator: o, Values: values}
}

// Predicate is a conjunction of conditions. The zero value is empty and
// ready to use.
type Predicate struct {
	conds []Condition
}

// New returns an empty predicate.
func New() *Predicate {
	return &Predicate{}
}

// FromMap builds a predicate from field/value pairs. Plain values compare
// with ==; Compare values select their own operator. Keys are taken in
// sorted order so the output is deterministic.
func FromMap(m map[string]any) (*Predicate, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := New()
	for _, k := range keys {
		switch v := m[k].(type) {
		case Compare:
			if err := p.add(len(p.conds), k, v.Operator, v.Values...); err != nil {
				return nil, err
			}
		default:
			p.AddEqual(k, v)
		}
	}
	return p, nil
}

// FromArgs builds an equality predicate from alternating keys and values.
func FromArgs(args ...any) (*Predicate, error) {
	if len(args)%2 != 0 {
		return nil, &InvalidPredicateError{Message: "The number of keys and values must be equal; the number of arguments must be an even number."}
	}
	p := New()
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return nil, &InvalidPredicateError{Message: fmt.Sprintf("key at position %d is %T, not string", i, args[i])}
		}
		p.AddEqual(key, args[i+1])
	}
	return p, nil
}

// Where builds a one-condition predicate from an operator name.
func Where(key, op string, values ...any) (*Predicate, error) {
	o, err := ParseOperator(op)
	if err != nil {
		return nil, err
	}
	p := New()
	if err := p.add(0, key, o, values...); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Predicate) add(index int, key string, op Operator, values ...any) error {
	if key == "" {
		return &InvalidPredicateError{Message: "empty key"}
	}
	if _, ok := aliases[op]; !ok {
		return &InvalidPredicateError{Message: fmt.Sprintf("unknown comparison operation %q", op)}
	}
	if len(values) != op.arity() {
		return &InvalidPredicateError{Message: fmt.Sprintf("%s takes %d value(s), got %d", op, op.arity(), len(values))}
	}
	if index < 0 || index > len(p.conds) {
		return &InvalidPredicateError{Message: fmt.Sprintf("index %d out of range", index)}
	}
	c := Condition{Key: key, Operator: op, Values: values}
	p.conds = append(p.conds, Condition{})
	copy(p.conds[index+1:], p.conds[index:])
	p.conds[index] = c
	return nil
}

func (p *Predicate) mustAdd(index int, key string, op Operator, values ...any) *Predicate {
	if err := p.add(index, key, op, values...); err != nil {
		panic(err)
	}
	return p
}

// Add appends a condition.
func (p *Predicate) Add(key string, op Operator, values ...any) error {
	return p.add(len(p.conds), key, op, values...)
}

// Insert inserts a condition before position index.
func (p *Predicate) Insert(index int, key string, op Operator, values ...any) error {
	return p.add(index, key, op, values...)
}

func (p *Predicate) AddEqual(key string, v any) *Predicate { return p.mustAdd(len(p.conds), key, Equal, v) }
func (p *Predicate) AddNotEqual(key string, v any) *Predicate {
	return p.mustAdd(len(p.conds), key, NotEqual, v)
}
func (p *Predicate) AddGreaterThan(key string, v any) *Predicate {
	return p.mustAdd(len(p.conds), key, GreaterThan, v)
}
func (p *Predicate) AddLessThan(key string, v any) *Predicate {
	return p.mustAdd(len(p.conds), key, LessThan, v)
}
func (p *Predicate) AddGreaterThanOrEqual(key string, v any) *Predicate {
	return p.mustAdd(len(p.conds), key, GreaterThanOrEqual, v)
}
func (p *Predicate) AddLessThanOrEqual(key string, v any) *Predicate {
	return p.mustAdd(len(p.conds), key, LessThanOrEqual, v)
}
func (p *Predicate) AddBetween(key string, lo, hi any) *Predicate {
	return p.mustAdd(len(p.conds), key, Between, lo, hi)
}
func (p *Predicate) AddBeginsWith(key string, v any) *Predicate {
	return p.mustAdd(len(p.conds), key, BeginsWith, v)
}
func (p *Predicate) AddContains(key string, v any) *Predicate {
	return p.mustAdd(len(p.conds), key, Contains, v)
}
func (p *Predicate) AddEndsWith(key string, v any) *Predicate {
	return p.mustAdd(len(p.conds), key, EndsWith, v)
}
func (p *Predicate) AddMatches(key string, pattern string) *Predicate {
	return p.mustAdd(len(p.conds), key, Matches, pattern)
}

// Conditions returns a copy of the conditions in order.
func (p *Predicate) Conditions() []Condition {
	return append([]Condition(nil), p.conds...)
}

// Len returns the number of conditions.
func (p *Predicate) Len() int {
	if p == nil {
		return 0
	}
	return len(p.conds)
}

// String returns the format string.
func (p *Predicate) String() string {
	return p.Format()
}

// InvalidPredicateError reports a predicate that cannot be built or rendered.
type InvalidPredicateError struct {
	Message string
}

func (e *InvalidPredicateError) Error() string {
	return "Could not construct valid predicate format. " + e.Message
}
