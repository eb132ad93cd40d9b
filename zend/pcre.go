package zend

import (
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const regexMatchTimeout = time.Second

var closingDelimiters = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
}

// compileRegex parses a delimited pattern like "/foo/i" and caches the result
// per engine. Problems are reported as warnings attributed to fn.
func (e *Engine) compileRegex(fn string, pattern string) *regexp2.Regexp {
	if re, ok := e.regexes[pattern]; ok {
		return re
	}

	p := strings.TrimLeft(pattern, " \t\n\r\v\f")
	if p == "" {
		e.Error(LevelWarning, "%s(): Empty regular expression", fn)
		return nil
	}
	delimiter := p[0]
	if delimiter == '\\' || delimiter == 0 ||
		(delimiter >= '0' && delimiter <= '9') ||
		(delimiter >= 'a' && delimiter <= 'z') ||
		(delimiter >= 'A' && delimiter <= 'Z') {
		e.Error(LevelWarning, "%s(): Delimiter must not be alphanumeric, backslash, or NUL", fn)
		return nil
	}
	closing := delimiter
	if c, ok := closingDelimiters[delimiter]; ok {
		closing = c
	}
	end := strings.LastIndexByte(p[1:], closing)
	if end < 0 {
		e.Error(LevelWarning, "%s(): No ending delimiter '%c' found", fn, closing)
		return nil
	}
	expr, modifiers := p[1:end+1], p[end+2:]

	var options regexp2.RegexOptions
	for i := 0; i < len(modifiers); i++ {
		switch modifiers[i] {
		case 'i':
			options |= regexp2.IgnoreCase
		case 'm':
			options |= regexp2.Multiline
		case 's':
			options |= regexp2.Singleline
		case 'x':
			options |= regexp2.IgnorePatternWhitespace
		case 'u':
			options |= regexp2.Unicode
		case '\n', '\r', ' ':
		default:
			e.Error(LevelWarning, "%s(): Unknown modifier '%c'", fn, modifiers[i])
			return nil
		}
	}

	re, err := regexp2.Compile(expr, options)
	if err != nil {
		e.Error(LevelWarning, "%s(): Compilation failed: %v", fn, err)
		return nil
	}
	re.MatchTimeout = regexMatchTimeout
	e.regexes[pattern] = re
	return re
}

func fnPregMatch(ex *ExecuteData, ret *Zval) {
	if !expectArgs(ex, 2) {
		return
	}
	re := ex.Engine().compileRegex("preg_match", ToString(ex.Arg(0)))
	if re == nil {
		ret.SetFalse()
		return
	}
	ok, err := re.MatchString(ToString(ex.Arg(1)))
	if err != nil {
		ex.Engine().Error(LevelWarning, "preg_match(): %v", err)
		ret.SetFalse()
		return
	}
	if ok {
		ret.SetLong(1)
	} else {
		ret.SetLong(0)
	}
}

var backslashGroup = regexp.MustCompile(`\\(\d{1,2})`)

func fnPregReplace(ex *ExecuteData, ret *Zval) {
	if !expectArgs(ex, 3) {
		return
	}
	re := ex.Engine().compileRegex("preg_replace", ToString(ex.Arg(0)))
	if re == nil {
		ret.SetNull()
		return
	}
	replacement := backslashGroup.ReplaceAllString(ToString(ex.Arg(1)), "$${$1}")
	limit := -1
	if ex.NumArgs() > 3 {
		if n, _, isFloat := ToNumber(ex.Arg(3)); !isFloat && n > 0 {
			limit = int(n)
		}
	}
	result, err := re.Replace(ToString(ex.Arg(2)), replacement, -1, limit)
	if err != nil {
		ex.Engine().Error(LevelWarning, "preg_replace(): %v", err)
		ret.SetNull()
		return
	}
	ret.SetString(result)
}
