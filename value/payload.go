package value

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Type is the kind of data a Payload holds, and the kind of data a widget
// synchronizes.
type Type uint8

const (
	TypeNull Type = iota
	TypeString
	TypeInt
	TypeFloat
	TypeObject
)

var typeNames = [...]string{
	TypeNull:   "null",
	TypeString: "string",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeObject: "object",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Payload is a tagged union holding exactly one of null, string, int, float
// or object. The zero Payload is null.
type Payload struct {
	typ Type
	s   string
	i   int
	f   float64
	obj any
}

// Null returns the null payload.
func Null() Payload { return Payload{} }

// String returns a string payload.
func String(s string) Payload { return Payload{typ: TypeString, s: s} }

// Int returns an int payload.
func Int(i int) Payload { return Payload{typ: TypeInt, i: i} }

// Float returns a float payload.
func Float(f float64) Payload { return Payload{typ: TypeFloat, f: f} }

// Object returns an object payload.
func Object(o any) Payload { return Payload{typ: TypeObject, obj: o} }

// Zero returns the zero payload of type t.
func Zero(t Type) Payload {
	switch t {
	case TypeString:
		return String("")
	case TypeInt:
		return Int(0)
	case TypeFloat:
		return Float(0)
	case TypeObject:
		return Object(nil)
	}
	return Null()
}

// Type returns the payload type.
func (p Payload) Type() Type { return p.typ }

// IsNull reports whether the payload is null.
func (p Payload) IsNull() bool { return p.typ == TypeNull }

// Text returns the payload as a string. Numbers are formatted, objects
// implementing fmt.Stringer use it, anything else is empty.
func (p Payload) Text() string {
	switch p.typ {
	case TypeString:
		return p.s
	case TypeInt:
		return strconv.Itoa(p.i)
	case TypeFloat:
		return strconv.FormatFloat(p.f, 'g', -1, 64)
	case TypeObject:
		if s, ok := p.obj.(fmt.Stringer); ok {
			return s.String()
		}
	}
	return ""
}

// Int returns the payload as an int. Floats are truncated, strings parsed
// (0 when not a number), null and objects are 0.
func (p Payload) Int() int {
	switch p.typ {
	case TypeInt:
		return p.i
	case TypeFloat:
		return int(p.f)
	case TypeString:
		s := strings.TrimSpace(p.s)
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// Float returns the payload as a float64. Strings are parsed (0 when not a
// number), null and objects are 0.
func (p Payload) Float() float64 {
	switch p.typ {
	case TypeFloat:
		return p.f
	case TypeInt:
		return float64(p.i)
	case TypeString:
		if f, err := strconv.ParseFloat(strings.TrimSpace(p.s), 64); err == nil {
			return f
		}
	}
	return 0
}

// Object returns the object of an object payload, or nil.
func (p Payload) Object() any {
	if p.typ == TypeObject {
		return p.obj
	}
	return nil
}

// Equal reports whether both payloads have the same type and value.
// Two NaN floats are equal. Objects are equal when they are comparable and ==.
func (p Payload) Equal(o Payload) bool {
	if p.typ != o.typ {
		return false
	}
	switch p.typ {
	case TypeNull:
		return true
	case TypeString:
		return p.s == o.s
	case TypeInt:
		return p.i == o.i
	case TypeFloat:
		return p.f == o.f || (math.IsNaN(p.f) && math.IsNaN(o.f))
	}
	return sameObject(p.obj, o.obj)
}

func sameObject(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() {
		return false
	}
	return va.Equal(vb)
}

// GoString implements fmt.GoStringer for debugging output.
func (p Payload) GoString() string {
	switch p.typ {
	case TypeString:
		return "value.String(" + strconv.Quote(p.s) + ")"
	case TypeInt:
		return "value.Int(" + strconv.Itoa(p.i) + ")"
	case TypeFloat:
		return "value.Float(" + strconv.FormatFloat(p.f, 'g', -1, 64) + ")"
	case TypeObject:
		return fmt.Sprintf("value.Object(%#v)", p.obj)
	}
	return "value.Null()"
}
