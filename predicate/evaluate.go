package predicate

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// Evaluate reports whether record satisfies every condition. Missing keys
// evaluate as nil.
func (p *Predicate) Evaluate(record map[string]any) (bool, error) {
	for _, c := range p.Conditions() {
		ok, err := c.Evaluate(record[c.Key])
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Filter returns the records that satisfy the predicate, in order.
func (p *Predicate) Filter(records []map[string]any) ([]map[string]any, error) {
	var out []map[string]any
	for _, r := range records {
		ok, err := p.Evaluate(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Evaluate compares v against the condition's values.
func (c Condition) Evaluate(v any) (bool, error) {
	if len(c.Values) != c.Operator.arity() {
		return false, &InvalidPredicateError{Message: fmt.Sprintf("%s takes %d value(s), got %d", c.Operator, c.Operator.arity(), len(c.Values))}
	}
	switch c.Operator {
	case Equal:
		return equal(v, c.Value()), nil
	case NotEqual:
		return !equal(v, c.Value()), nil
	case GreaterThan, LessThan, GreaterThanOrEqual, LessThanOrEqual:
		n, err := order(v, c.Value())
		if err != nil {
			return false, err
		}
		switch c.Operator {
		case GreaterThan:
			return n > 0, nil
		case LessThan:
			return n < 0, nil
		case GreaterThanOrEqual:
			return n >= 0, nil
		default:
			return n <= 0, nil
		}
	case Between:
		lo, err := order(v, c.Values[0])
		if err != nil {
			return false, err
		}
		hi, err := order(v, c.Values[1])
		if err != nil {
			return false, err
		}
		return lo >= 0 && hi <= 0, nil
	case BeginsWith, EndsWith:
		s, ok := v.(string)
		if !ok {
			return false, nil
		}
		arg := fmt.Sprint(c.Value())
		if c.Operator == BeginsWith {
			return strings.HasPrefix(s, arg), nil
		}
		return strings.HasSuffix(s, arg), nil
	case Contains:
		return contains(v, c.Value()), nil
	case Matches:
		s, ok := v.(string)
		if !ok {
			return false, nil
		}
		re, err := regexp.Compile(`^(?:` + fmt.Sprint(c.Value()) + `)$`)
		if err != nil {
			return false, &InvalidPredicateError{Message: fmt.Sprintf("invalid MATCHES pattern: %v", err)}
		}
		return re.MatchString(s), nil
	}
	return false, &InvalidPredicateError{Message: fmt.Sprintf("unsupported operator %q", c.Operator)}
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			return fa == fb
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Equal(tb)
		}
	}
	return reflect.DeepEqual(a, b)
}

func order(a, b any) (int, error) {
	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			switch {
			case fa < fb:
				return -1, nil
			case fa > fb:
				return 1, nil
			}
			return 0, nil
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb), nil
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb), nil
		}
	}
	return 0, &InvalidPredicateError{Message: fmt.Sprintf("cannot order %T and %T", a, b)}
}

// number converts numeric kinds and booleans to float64.
func number(v any) (float64, bool) {
	switch v := v.(type) {
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func contains(haystack, needle any) bool {
	if s, ok := haystack.(string); ok {
		return strings.Contains(s, fmt.Sprint(needle))
	}
	rv := reflect.ValueOf(haystack)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if equal(rv.Index(i).Interface(), needle) {
				return true
			}
		}
	}
	return false
}
