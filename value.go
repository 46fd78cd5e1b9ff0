package xa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tmc/xa/osa"
	"github.com/tmc/xa/predicate"
)

// Kind is the type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindDate
	KindList
	KindRecord
	KindReference
)

var kindNames = [...]string{"null", "bool", "int", "float", "string", "date", "list", "record", "reference"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a scripting value: a primitive, a list, a record or a reference
// to an object inside the application.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	t    time.Time
	list []Value
	rec  map[string]Value
	ref  Specifier
	sess *Session
}

// Null is the null Value.
var Null = Value{}

func BoolValue(b bool) Value      { return Value{kind: KindBool, b: b} }
func IntValue(i int64) Value      { return Value{kind: KindInt, i: i} }
func FloatValue(f float64) Value  { return Value{kind: KindFloat, f: f} }
func StringValue(s string) Value  { return Value{kind: KindString, s: s} }
func DateValue(t time.Time) Value { return Value{kind: KindDate, t: t} }
func ListValue(vs ...Value) Value { return Value{kind: KindList, list: vs} }
func RecordValue(m map[string]Value) Value {
	return Value{kind: KindRecord, rec: m}
}
func ReferenceValue(s Specifier) Value { return Value{kind: KindReference, ref: s} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns v as a bool. Numbers are true when non-zero.
func (v Value) Bool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.s != ""
	}
	return false
}

// Int returns v as an integer, truncating floats.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return int64(v.f)
	case KindBool:
		if v.b {
			return 1
		}
	case KindString:
		n, _ := strconv.ParseInt(v.s, 10, 64)
		return n
	}
	return 0
}

// Float returns v as a float.
func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return float64(v.i)
	case KindString:
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	}
	return 0
}

// Str returns a string value, or "" for any other kind.
func (v Value) Str() string {
	if v.kind == KindString {
		return v.s
	}
	return ""
}

// Time returns a date value, or the zero time.
func (v Value) Time() time.Time { return v.t }

// List returns the elements of a list value.
func (v Value) List() []Value { return v.list }

// Record returns the fields of a record value.
func (v Value) Record() map[string]Value { return v.rec }

// Field returns a record field, or Null.
func (v Value) Field(name string) Value { return v.rec[name] }

// Path is a POSIX path passed to a command as a file reference.
type Path string

// JS renders p as a JXA Path object.
func (p Path) JS() string { return "Path(" + osa.JSString(string(p)) + ")" }

// Specifier returns the specifier of a reference value.
func (v Value) Specifier() (Specifier, bool) {
	return v.ref, v.kind == KindReference
}

// Object wraps a reference value. It returns nil for any other kind.
func (v Value) Object() *Object {
	if v.kind != KindReference {
		return nil
	}
	return &Object{sess: v.sess, spec: v.ref}
}

// String formats v for display. Strings are returned unquoted.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindDate:
		return v.t.Format(time.RFC3339)
	case KindReference:
		return v.ref.String()
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindRecord:
		keys := v.keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.rec[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}

func (v Value) keys() []string {
	keys := make([]string, 0, len(v.rec))
	for k := range v.rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Any converts v to plain Go data: nil, bool, int64, float64, string,
// time.Time, []any, map[string]any or Specifier.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindDate:
		return v.t
	case KindReference:
		return v.ref
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Any()
		}
		return out
	case KindRecord:
		out := make(map[string]any, len(v.rec))
		for k, e := range v.rec {
			out[k] = e.Any()
		}
		return out
	}
	return nil
}

// plain is like Any but renders references as strings, for encoders.
func (v Value) plain() any {
	switch v.kind {
	case KindReference:
		return v.ref.String()
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.plain()
		}
		return out
	case KindRecord:
		out := make(map[string]any, len(v.rec))
		for k, e := range v.rec {
			out[k] = e.plain()
		}
		return out
	}
	return v.Any()
}

// MarshalJSON encodes v as plain JSON. References encode as their
// specifier string.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.plain())
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.plain(), nil
}

// JS renders v as a JavaScript literal.
func (v Value) JS() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return "null"
		}
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return osa.JSString(v.s)
	case KindDate:
		return "new Date(" + osa.JSString(v.t.UTC().Format(time.RFC3339Nano)) + ")"
	case KindReference:
		return v.ref.JS()
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.JS()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindRecord:
		keys := v.keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = osa.JSString(k) + ": " + v.rec[k].JS()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "null"
}

// specified is implemented by Object and the adapter types embedding it.
type specified interface {
	Specifier() Specifier
}

// ValueOf converts Go data to a Value. It accepts nil, Value, Specifier,
// objects, bools, numbers, strings, time.Time, slices, arrays and maps
// with string keys. Unsigned integers above math.MaxInt64 become floats,
// as JavaScript numbers are.
func ValueOf(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Null, nil
	case Value:
		return x, nil
	case Specifier:
		return ReferenceValue(x), nil
	case specified:
		return ReferenceValue(x.Specifier()), nil
	case time.Time:
		return DateValue(x), nil
	case predicate.Literal:
		return ReferenceValue(Specifier{root: x.JS()}), nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return IntValue(n), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Null, err
		}
		return FloatValue(f), nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Bool:
		return BoolValue(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntValue(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return FloatValue(float64(u)), nil
		}
		return IntValue(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return FloatValue(rv.Float()), nil
	case reflect.String:
		return StringValue(rv.String()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return Null, nil
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		list := make([]Value, rv.Len())
		for i := range list {
			e, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return Null, err
			}
			list[i] = e
		}
		return ListValue(list...), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Null, fmt.Errorf("xa: cannot convert %T: map keys must be strings", x)
		}
		rec := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			e, err := ValueOf(iter.Value().Interface())
			if err != nil {
				return Null, err
			}
			rec[iter.Key().String()] = e
		}
		return RecordValue(rec), nil
	}
	return Null, fmt.Errorf("xa: cannot convert %T to a scripting value", x)
}

// literal renders x as a JavaScript literal.
func literal(x any) (string, error) {
	v, err := ValueOf(x)
	if err != nil {
		return "", err
	}
	return v.JS(), nil
}

// decodeValue parses a script result.
func decodeValue(raw []byte, sess *Session) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return Null, fmt.Errorf("xa: decode result: %w", err)
	}
	return fromJSON(x, sess)
}

func fromJSON(x any, sess *Session) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Null, nil
	case bool:
		return BoolValue(x), nil
	case string:
		return StringValue(x), nil
	case json.Number:
		return ValueOf(x)
	case []any:
		list := make([]Value, len(x))
		for i, e := range x {
			v, err := fromJSON(e, sess)
			if err != nil {
				return Null, err
			}
			list[i] = v
		}
		return ListValue(list...), nil
	case map[string]any:
		if len(x) == 1 {
			if ref, ok := x["$ref"].(string); ok {
				spec, err := ParseSpecifier(ref)
				if err != nil {
					return Null, err
				}
				v := ReferenceValue(spec)
				v.sess = sess
				return v, nil
			}
			if d, ok := x["$date"].(string); ok {
				t, err := time.Parse(time.RFC3339Nano, d)
				if err != nil {
					return Null, fmt.Errorf("xa: decode date: %w", err)
				}
				return DateValue(t), nil
			}
		}
		rec := make(map[string]Value, len(x))
		for k, e := range x {
			v, err := fromJSON(e, sess)
			if err != nil {
				return Null, err
			}
			rec[k] = v
		}
		return RecordValue(rec), nil
	}
	return Null, fmt.Errorf("xa: unexpected %T in result", x)
}
