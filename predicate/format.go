package predicate

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// referenceDate is the NSDate epoch used by CAST(x, "NSDate").
var referenceDate = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// Format renders the predicate as an NSPredicate format string with every
// value substituted, e.g. ( name == "Safari" ) && ( index < 3 ).
func (p *Predicate) Format() string {
	if p.Len() == 0 {
		return "TRUEPREDICATE"
	}
	parts := make([]string, len(p.conds))
	for i, c := range p.conds {
		var rhs string
		if c.Operator == Between {
			rhs = "{" + literal(c.Values[0]) + ", " + literal(c.Values[1]) + "}"
		} else {
			rhs = literal(c.Value())
		}
		parts[i] = c.Key + " " + string(c.Operator) + " " + rhs
	}
	return "( " + strings.Join(parts, " ) && ( ") + " )"
}

// literal renders v in NSPredicate literal syntax.
func literal(v any) string {
	switch v := v.(type) {
	case nil:
		return "NIL"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return quote(v)
	case time.Time:
		secs := v.Sub(referenceDate).Seconds()
		return fmt.Sprintf(`CAST(%s, "NSDate")`, strconv.FormatFloat(secs, 'f', -1, 64))
	case fmt.Stringer:
		return quote(v.String())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.Trunc(f) == f && math.Abs(f) < 1e15 {
			return strconv.FormatFloat(f, 'f', 1, 64)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case reflect.Slice, reflect.Array:
		items := make([]string, rv.Len())
		for i := range items {
			items[i] = literal(rv.Index(i).Interface())
		}
		return "{" + strings.Join(items, ", ") + "}"
	}
	return quote(fmt.Sprint(v))
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
