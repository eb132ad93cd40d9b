package zend

import (
	"strings"
	"testing"
)

func strs(ss ...string) []Zval {
	ret := make([]Zval, len(ss))
	for i, s := range ss {
		ret[i].SetString(s)
	}
	return ret
}

func TestPregMatch(t *testing.T) {
	e := testEngine(t)
	for _, c := range []struct {
		pattern  string
		subject  string
		expected int64
	}{
		{"/foo/", "a foo b", 1},
		{"/FOO/", "a foo b", 0},
		{"/FOO/i", "a foo b", 1},
		{"#^a.b$#s", "a\nb", 1},
		{"#^a.b$#", "a\nb", 0},
		{"{(\\w)\\1}", "hello", 1},
		{"/(?<=a)b/", "ab", 1},
	} {
		args := strs(c.pattern, c.subject)
		ret := callName(t, e, "preg_match", args...)
		if ret.Type() != TypeLong || ret.Long() != c.expected {
			t.Fatalf("%s %q: got %v", c.pattern, c.subject, ToString(&ret))
		}
		for i := range args {
			PtrDtor(&args[i])
		}
	}
	if len(e.regexes) != 7 {
		t.Fatalf("got %v", len(e.regexes))
	}
}

func TestPregMatchBadPattern(t *testing.T) {
	e := testEngine(t)
	diagnostics := collectDiagnostics(e)
	for _, c := range []struct {
		pattern string
		message string
	}{
		{"", "Empty regular expression"},
		{"abc", "Delimiter must not be alphanumeric"},
		{"/abc", "No ending delimiter '/' found"},
		{"(abc", "No ending delimiter ')' found"},
		{"/abc/k", "Unknown modifier 'k'"},
		{"/(abc/", "Compilation failed"},
	} {
		*diagnostics = nil
		args := strs(c.pattern, "abc")
		ret := callName(t, e, "preg_match", args...)
		if ret.Type() != TypeFalse {
			t.Fatalf("%q: got %v", c.pattern, TypeName(&ret))
		}
		if len(*diagnostics) != 1 {
			t.Fatalf("%q: got %v", c.pattern, *diagnostics)
		}
		d := (*diagnostics)[0]
		if d.Level != LevelWarning ||
			!strings.HasPrefix(d.Message, "preg_match(): ") ||
			!strings.Contains(d.Message, c.message) {
			t.Fatalf("got %v", d.Message)
		}
		for i := range args {
			PtrDtor(&args[i])
		}
	}
}

func TestPregReplace(t *testing.T) {
	e := testEngine(t)
	for _, c := range []struct {
		args     []string
		expected string
	}{
		{[]string{"/o/", "0", "foo boo"}, "f00 b00"},
		{[]string{"/(\\w+) (\\w+)/", "$2 $1", "hello world"}, "world hello"},
		{[]string{"/(\\w+) (\\w+)/", "\\2-\\1", "hello world"}, "world-hello"},
		{[]string{"/o/", "0", "foo boo", "2"}, "f00 boo"},
	} {
		args := strs(c.args...)
		ret := callName(t, e, "preg_replace", args...)
		if ToString(&ret) != c.expected {
			t.Fatalf("got %q", ToString(&ret))
		}
		PtrDtor(&ret)
		for i := range args {
			PtrDtor(&args[i])
		}
	}

	args := strs("/x", "y", "z")
	ret := callName(t, e, "preg_replace", args...)
	if ret.Type() != TypeNull {
		t.Fatalf("got %v", TypeName(&ret))
	}
	for i := range args {
		PtrDtor(&args[i])
	}
}
