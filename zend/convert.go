package zend

import (
	"math"
	"strconv"
	"strings"
)

// ToString converts a scalar record the way string juggling does.
func ToString(z *Zval) string {
	z = z.Deref()
	switch z.Type() {
	case TypeTrue:
		return "1"
	case TypeLong:
		return strconv.FormatInt(z.Long(), 10)
	case TypeDouble:
		return FormatDouble(z.Double())
	case TypeString:
		return z.Str().Val()
	case TypeArray:
		return "Array"
	case TypeObject:
		return "Object"
	case TypeResource:
		return "Resource id #" + strconv.Itoa(z.Resource().Handle())
	}
	return ""
}

// ToNumber converts a record to int or float for arithmetic. isFloat is set
// when the result is only representable as float.
func ToNumber(z *Zval) (i int64, f float64, isFloat bool) {
	z = z.Deref()
	switch z.Type() {
	case TypeTrue:
		return 1, 1, false
	case TypeLong:
		return z.Long(), float64(z.Long()), false
	case TypeDouble:
		return 0, z.Double(), true
	case TypeString:
		s := strings.TrimSpace(z.Str().Val())
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, float64(n), false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return 0, f, true
		}
	}
	return 0, 0, false
}

// FormatDouble renders a float with the shortest round-tripping digits,
// switching to exponent form below 1e-4 and from 1e15 on.
func FormatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	repr := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(repr, "e")
	e, _ := strconv.Atoi(exp)
	if f != 0 && (e < -4 || e >= 15) {
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		sign := "+"
		if e < 0 {
			sign = "-"
			e = -e
		}
		return mantissa + "E" + sign + strconv.Itoa(e)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// TypeName returns the gettype() name of a record.
func TypeName(z *Zval) string {
	z = z.Deref()
	switch z.Type() {
	case TypeNull, TypeUndef:
		return "NULL"
	case TypeFalse, TypeTrue:
		return "boolean"
	case TypeLong:
		return "integer"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeResource:
		return "resource"
	}
	return "unknown type"
}
