package predicate

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Literal is implemented by values that render themselves as JavaScript,
// such as object specifiers. They are embedded in whose clauses verbatim.
type Literal interface {
	JS() string
}

var whoseOps = map[Operator]string{
	Equal:              "_equals",
	GreaterThan:        "_greaterThan",
	LessThan:           "_lessThan",
	GreaterThanOrEqual: "_greaterThanEquals",
	LessThanOrEqual:    "_lessThanEquals",
	BeginsWith:         "_beginsWith",
	Contains:           "_contains",
	EndsWith:           "_endsWith",
}

// Whose renders the predicate as the argument of a JXA whose() call. The
// clause is evaluated by the target application. MATCHES has no Apple Event
// equivalent and is rejected.
func (p *Predicate) Whose() (string, error) {
	if p.Len() == 0 {
		return "", &InvalidPredicateError{Message: "empty predicate"}
	}
	var terms []string
	for _, c := range p.conds {
		t, err := whoseTerms(c)
		if err != nil {
			return "", err
		}
		terms = append(terms, t...)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return `{"_and": [` + strings.Join(terms, ", ") + `]}`, nil
}

func whoseTerms(c Condition) ([]string, error) {
	key, err := json.Marshal(c.Key)
	if err != nil {
		return nil, err
	}
	term := func(op string, v any) (string, error) {
		lit, err := jsLiteral(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`{%s: {%q: %s}}`, key, op, lit), nil
	}

	switch c.Operator {
	case NotEqual:
		t, err := term("_equals", c.Value())
		if err != nil {
			return nil, err
		}
		return []string{`{"_not": [` + t + `]}`}, nil
	case Between:
		lo, err := term("_greaterThanEquals", c.Values[0])
		if err != nil {
			return nil, err
		}
		hi, err := term("_lessThanEquals", c.Values[1])
		if err != nil {
			return nil, err
		}
		return []string{lo, hi}, nil
	case Matches:
		return nil, &InvalidPredicateError{Message: fmt.Sprintf("%s MATCHES cannot be evaluated by the target application", c.Key)}
	}

	op, ok := whoseOps[c.Operator]
	if !ok {
		return nil, &InvalidPredicateError{Message: fmt.Sprintf("unsupported operator %q", c.Operator)}
	}
	t, err := term(op, c.Value())
	if err != nil {
		return nil, err
	}
	return []string{t}, nil
}

// jsLiteral renders v as a JavaScript literal.
func jsLiteral(v any) (string, error) {
	switch v := v.(type) {
	case Literal:
		return v.JS(), nil
	case time.Time:
		return fmt.Sprintf("new Date(%q)", v.UTC().Format(time.RFC3339Nano)), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", &InvalidPredicateError{Message: fmt.Sprintf("cannot encode %T: %v", v, err)}
	}
	return string(b), nil
}
