package zend

import (
	"strings"
)

// standardFunctions are registered into every engine.
var standardFunctions = []FunctionEntry{
	{"strlen", fnStrlen},
	{"strtoupper", fnStrtoupper},
	{"count", fnCount},
	{"implode", fnImplode},
	{"array_sum", fnArraySum},
	{"gettype", fnGettype},
	{"preg_match", fnPregMatch},
	{"preg_replace", fnPregReplace},
}

func expectArgs(ex *ExecuteData, n int) bool {
	if ex.NumArgs() >= n {
		return true
	}
	ex.Engine().Error(LevelWarning, "%s() expects at least %d argument(s), %d given",
		ex.Func().Name(), n, ex.NumArgs())
	return false
}

func fnStrlen(ex *ExecuteData, ret *Zval) {
	if !expectArgs(ex, 1) {
		return
	}
	ret.SetLong(int64(len(ToString(ex.Arg(0)))))
}

func fnStrtoupper(ex *ExecuteData, ret *Zval) {
	if !expectArgs(ex, 1) {
		return
	}
	ret.SetString(strings.ToUpper(ToString(ex.Arg(0))))
}

func fnCount(ex *ExecuteData, ret *Zval) {
	if !expectArgs(ex, 1) {
		return
	}
	arg := ex.Arg(0).Deref()
	if arg.Type() != TypeArray {
		ex.Engine().Error(LevelWarning, "count(): Argument #1 ($value) must be of type Countable|array, %s given",
			TypeName(arg))
		ret.SetLong(0)
		return
	}
	ret.SetLong(int64(arg.Array().Count()))
}

func fnImplode(ex *ExecuteData, ret *Zval) {
	if !expectArgs(ex, 2) {
		return
	}
	sep, pieces := ex.Arg(0).Deref(), ex.Arg(1).Deref()
	if sep.Type() == TypeArray {
		sep, pieces = pieces, sep
	}
	if pieces.Type() != TypeArray {
		ex.Engine().Error(LevelWarning, "implode(): Argument #2 ($array) must be of type ?array, %s given",
			TypeName(pieces))
		return
	}
	ht := pieces.Array()
	parts := make([]string, 0, ht.Count())
	for pos := range ht.NumUsed() {
		value := ht.Bucket(pos).Val.Deref()
		if value.IsUndef() {
			continue
		}
		parts = append(parts, ToString(value))
	}
	ret.SetString(strings.Join(parts, ToString(sep)))
}

func fnArraySum(ex *ExecuteData, ret *Zval) {
	if !expectArgs(ex, 1) {
		return
	}
	arg := ex.Arg(0).Deref()
	if arg.Type() != TypeArray {
		ex.Engine().Error(LevelWarning, "array_sum(): Argument #1 ($array) must be of type array, %s given",
			TypeName(arg))
		return
	}
	var sum int64
	var fsum float64
	isFloat := false
	ht := arg.Array()
	for pos := range ht.NumUsed() {
		value := ht.Bucket(pos).Val.Deref()
		if value.IsUndef() {
			continue
		}
		i, f, vf := ToNumber(value)
		if !isFloat && !vf {
			sum += i
			continue
		}
		if !isFloat {
			fsum = float64(sum)
			isFloat = true
		}
		fsum += f
	}
	if isFloat {
		ret.SetDouble(fsum)
	} else {
		ret.SetLong(sum)
	}
}

func fnGettype(ex *ExecuteData, ret *Zval) {
	if !expectArgs(ex, 1) {
		return
	}
	ret.SetString(TypeName(ex.Arg(0)))
}
