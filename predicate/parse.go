package predicate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Parse reads a format string of the form produced by Format: comparisons
// joined with && or AND, each optionally parenthesized. Values may be
// quoted strings, numbers, TRUE/YES, FALSE/NO, NIL, CAST(secs, "NSDate")
// dates or a {lo, hi} list.
// Disjunction is not supported.
func Parse(format string) (*Predicate, error) {
	ps := &parser{src: format}
	p := New()
	if strings.TrimSpace(format) == "" || strings.EqualFold(strings.TrimSpace(format), "TRUEPREDICATE") {
		return p, nil
	}
	if err := ps.conjunction(p); err != nil {
		return nil, err
	}
	ps.skipSpace()
	if !ps.eof() {
		return nil, ps.errorf("unexpected %q", ps.rest())
	}
	return p, nil
}

type parser struct {
	src string
	pos int
}

func (ps *parser) errorf(format string, args ...any) error {
	return &InvalidPredicateError{Message: fmt.Sprintf("at offset %d: ", ps.pos) + fmt.Sprintf(format, args...)}
}

func (ps *parser) eof() bool { return ps.pos >= len(ps.src) }
func (ps *parser) rest() string { return ps.src[ps.pos:] }
func (ps *parser) peek() byte { return ps.src[ps.pos] }
func (ps *parser) skipSpace() {
	for !ps.eof() && unicode.IsSpace(rune(ps.peek())) {
		ps.pos++
	}
}

func (ps *parser) conjunction(p *Predicate) error {
	for {
		if err := ps.clause(p); err != nil {
			return err
		}
		ps.skipSpace()
		switch {
		case strings.HasPrefix(ps.rest(), "&&"):
			ps.pos += 2
		case ps.keyword("AND"):
		case strings.HasPrefix(ps.rest(), "||"), ps.keyword("OR"):
			return ps.errorf("OR is not supported")
		default:
			return nil
		}
	}
}

// keyword consumes word if it appears next, case-insensitively, as a whole word.
func (ps *parser) keyword(word string) bool {
	r := ps.rest()
	if len(r) < len(word) || !strings.EqualFold(r[:len(word)], word) {
		return false
	}
	if len(r) > len(word) && isIdent(r[len(word)]) {
		return false
	}
	ps.pos += len(word)
	return true
}

func (ps *parser) clause(p *Predicate) error {
	ps.skipSpace()
	if !ps.eof() && ps.peek() == '(' {
		ps.pos++
		if err := ps.conjunction(p); err != nil {
			return err
		}
		ps.skipSpace()
		if ps.eof() || ps.peek() != ')' {
			return ps.errorf("expected )")
		}
		ps.pos++
		return nil
	}

	key := ps.ident()
	if key == "" {
		return ps.errorf("expected key")
	}
	op, err := ps.operator()
	if err != nil {
		return err
	}
	v, err := ps.value()
	if err != nil {
		return err
	}
	values := []any{v}
	if list, ok := v.([]any); ok && op == Between {
		values = list
	}
	if err := p.Add(key, op, values...); err != nil {
		return err
	}
	return nil
}

func isIdent(c byte) bool {
	return c == '_' || c == '.' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (ps *parser) ident() string {
	ps.skipSpace()
	start := ps.pos
	for !ps.eof() && isIdent(ps.peek()) {
		ps.pos++
	}
	return ps.src[start:ps.pos]
}

var symbolOps = []string{"==", "!=", "<>", ">=", "=>", "<=", "=<", "=", ">", "<"}

var wordOps = []Operator{BeginsWith, EndsWith, Contains, Matches, Between}

func (ps *parser) operator() (Operator, error) {
	ps.skipSpace()
	for _, s := range symbolOps {
		if strings.HasPrefix(ps.rest(), s) {
			ps.pos += len(s)
			return ParseOperator(s)
		}
	}
	for _, op := range wordOps {
		if ps.keyword(string(op)) {
			return op, nil
		}
	}
	return "", ps.errorf("expected operator")
}

func (ps *parser) value() (any, error) {
	ps.skipSpace()
	if ps.eof() {
		return nil, ps.errorf("expected value")
	}
	switch c := ps.peek(); {
	case c == '"' || c == '\'':
		return ps.str(c)
	case c == '{':
		return ps.list()
	case c == '-' || c == '+' || c >= '0' && c <= '9':
		return ps.number()
	}
	switch {
	case ps.keyword("TRUE"), ps.keyword("YES"):
		return true, nil
	case ps.keyword("FALSE"), ps.keyword("NO"):
		return false, nil
	case ps.keyword("NIL"), ps.keyword("NULL"):
		return nil, nil
	case ps.keyword("CAST"):
		return ps.cast()
	}
	return nil, ps.errorf("unexpected %q", ps.rest())
}

func (ps *parser) str(q byte) (string, error) {
	ps.pos++
	var b strings.Builder
	for !ps.eof() {
		c := ps.peek()
		ps.pos++
		switch c {
		case q:
			return b.String(), nil
		case '\\':
			if ps.eof() {
				return "", ps.errorf("unterminated string")
			}
			e := ps.peek()
			ps.pos++
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", ps.errorf("unterminated string")
}

// cast reads the remainder of CAST(<seconds>, "NSDate"), a date counted
// from the NSDate reference date.
func (ps *parser) cast() (time.Time, error) {
	ps.skipSpace()
	if ps.eof() || ps.peek() != '(' {
		return time.Time{}, ps.errorf("expected ( after CAST")
	}
	ps.pos++
	ps.skipSpace()
	if ps.eof() {
		return time.Time{}, ps.errorf("expected seconds")
	}
	n, err := ps.number()
	if err != nil {
		return time.Time{}, err
	}
	var secs float64
	switch n := n.(type) {
	case int64:
		secs = float64(n)
	case float64:
		secs = n
	}
	ps.skipSpace()
	if ps.eof() || ps.peek() != ',' {
		return time.Time{}, ps.errorf("expected , in CAST")
	}
	ps.pos++
	ps.skipSpace()
	if ps.eof() || ps.peek() != '"' && ps.peek() != '\'' {
		return time.Time{}, ps.errorf("expected type name in CAST")
	}
	typ, err := ps.str(ps.peek())
	if err != nil {
		return time.Time{}, err
	}
	if typ != "NSDate" {
		return time.Time{}, ps.errorf("unsupported CAST type %q", typ)
	}
	ps.skipSpace()
	if ps.eof() || ps.peek() != ')' {
		return time.Time{}, ps.errorf("expected ) after CAST")
	}
	ps.pos++
	return referenceDate.Add(time.Duration(math.Round(secs * float64(time.Second)))), nil
}

func (ps *parser) number() (any, error) {
	start := ps.pos
	if c := ps.peek(); c == '-' || c == '+' {
		ps.pos++
	}
	for !ps.eof() {
		c := ps.peek()
		exp := ps.pos > start && (ps.src[ps.pos-1] == 'e' || ps.src[ps.pos-1] == 'E')
		if !(c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' || exp && (c == '-' || c == '+')) {
			break
		}
		ps.pos++
	}
	s := ps.src[start:ps.pos]
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, ps.errorf("invalid number %q", s)
	}
	return f, nil
}

func (ps *parser) list() ([]any, error) {
	ps.pos++
	var items []any
	for {
		ps.skipSpace()
		if !ps.eof() && ps.peek() == '}' {
			ps.pos++
			return items, nil
		}
		v, err := ps.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		ps.skipSpace()
		if ps.eof() {
			return nil, ps.errorf("unterminated list")
		}
		switch ps.peek() {
		case ',':
			ps.pos++
		case '}':
		default:
			return nil, ps.errorf("expected , or }")
		}
	}
}
