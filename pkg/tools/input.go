package tools

import (
	"strconv"
)

// Value is a validated, typed input value.
type Value struct {
	typ FieldType
	str string
	num float64
}

// StringValue returns a string-typed value.
func StringValue(s string) Value {
	return Value{typ: TypeString, str: s}
}

// NumberValue returns a number-typed value.
func NumberValue(n float64) Value {
	return Value{typ: TypeNumber, num: n}
}

// IntegerValue returns an integer-typed value.
func IntegerValue(n int64) Value {
	return Value{typ: TypeInteger, num: float64(n)}
}

// Type returns the value's type.
func (v Value) Type() FieldType {
	return v.typ
}

// Float returns the numeric value; zero for strings.
func (v Value) Float() float64 {
	return v.num
}

// String renders the value the way it is sent as a query parameter.
func (v Value) String() string {
	switch v.typ {
	case TypeNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case TypeInteger:
		return strconv.FormatInt(int64(v.num), 10)
	default:
		return v.str
	}
}

// Interface returns the value as a plain Go value for JSON encoding.
func (v Value) Interface() any {
	switch v.typ {
	case TypeNumber:
		return v.num
	case TypeInteger:
		return int64(v.num)
	default:
		return v.str
	}
}

// Input is the validated input of one tool invocation. It only holds
// declared fields and is only produced by a Validator.
type Input struct {
	values map[string]Value
}

// Get returns the value of field name, if set.
func (in Input) Get(name string) (Value, bool) {
	v, ok := in.values[name]
	return v, ok
}

// Len returns the number of set fields.
func (in Input) Len() int {
	return len(in.values)
}

// Map returns the input as a plain map.
func (in Input) Map() map[string]any {
	m := make(map[string]any, len(in.values))
	for k, v := range in.values {
		m[k] = v.Interface()
	}
	return m
}
