package debugs

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/reusee/zendapi/bridge"
	"github.com/reusee/zendapi/zend"
	"go.starlark.net/starlark"
)

func TestDumpYAML(t *testing.T) {
	list := bridge.NewArray()
	defer list.Release()
	list.AppendInt(1)
	list.AppendString("a")
	list.AppendString("1")
	list.AppendFloat(1.5)
	list.AppendNull()
	entry := bridge.NewArray()
	entry.SetBool("k", true)
	list.AppendArray(entry)
	entry.Release()

	buf := new(strings.Builder)
	if err := DumpYAML(buf, &list.Variant); err != nil {
		t.Fatal(err)
	}
	expected := `- 1
- a
- "1"
- 1.5
- null
- k: true
`
	if buf.String() != expected {
		t.Fatalf("got %q", buf.String())
	}
}

func TestDumpYAMLMapping(t *testing.T) {
	arr := bridge.NewArray()
	defer arr.Release()
	arr.SetString("name", "foo")
	arr.SetIndex(3, bridge.NewInt(42))
	arr.SetFloat("inf", math.Inf(1))

	buf := new(strings.Builder)
	if err := DumpYAML(buf, &arr.Variant); err != nil {
		t.Fatal(err)
	}
	expected := `name: foo
3: 42
inf: .inf
`
	if buf.String() != expected {
		t.Fatalf("got %q", buf.String())
	}
}

func TestDumpYAMLRecursion(t *testing.T) {
	var z zend.Zval
	z.SetArray(zend.NewHashTable(0))
	defer zend.PtrDtor(&z)
	var self zend.Zval
	zend.Copy(&self, &z)
	z.Array().NextIndexInsert(&self)

	buf := new(strings.Builder)
	if err := DumpYAML(buf, bridge.Borrow(&z)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "- '*RECURSION*'\n" {
		t.Fatalf("got %q", buf.String())
	}
	// break the cycle
	z.Array().Clean()
}

func TestYAMLBuiltin(t *testing.T) {
	testScope(t, io.Discard).Call(func(
		rt *bridge.Runtime,
	) {
		thread := &starlark.Thread{
			Name: "test",
		}
		globals, err := starlark.ExecFile(thread, "test.star", `
s = yaml({"a": [1, 2]})
`, builtins(rt, io.Discard))
		if err != nil {
			t.Fatal(err)
		}
		if s, _ := starlark.AsString(globals["s"]); s != "a:\n  - 1\n  - 2\n" {
			t.Fatalf("got %q", s)
		}
	})
}
