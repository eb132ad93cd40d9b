package bridge

import (
	"fmt"
	"testing"

	"github.com/reusee/zendapi/zend"
)

func TestArrayAppend(t *testing.T) {
	a := NewArray()
	defer a.Release()
	if !a.IsArray() || a.Count() != 0 {
		t.Fatal()
	}
	a.AppendNull()
	a.AppendBool(true)
	a.AppendInt(42)
	a.AppendFloat(1.5)
	a.AppendString("foo")
	a.AppendBytes([]byte("bar"))
	if a.Count() != 6 {
		t.Fatalf("got %v", a.Count())
	}
	if !a.Index(0).IsNull() {
		t.Fatal()
	}
	if !a.Index(1).ToBool() {
		t.Fatal()
	}
	if a.Index(2).ToInt() != 42 {
		t.Fatal()
	}
	if a.Index(3).ToFloat() != 1.5 {
		t.Fatal()
	}
	if a.Index(4).ToString() != "foo" {
		t.Fatal()
	}
	if a.Index(5).ToString() != "bar" {
		t.Fatal()
	}
	if a.Index(4).IsOwning() {
		t.Fatal("lookup should borrow")
	}
}

func TestArrayAppendHandle(t *testing.T) {
	a := NewArray()
	v := NewString("foo")
	a.Append(v)
	if v.Refcount() != 2 {
		t.Fatalf("got %v", v.Refcount())
	}
	if a.Index(0).Ptr().Str() != v.Ptr().Str() {
		t.Fatal("should share storage")
	}
	a.Release()
	if v.Refcount() != 1 {
		t.Fatalf("got %v", v.Refcount())
	}
	v.Release()
}

func TestArrayNested(t *testing.T) {
	outer := NewArray()
	inner := NewArray()
	inner.AppendInt(1)
	outer.AppendArray(inner)
	outer.SetIndex(5, &inner.Variant)
	if inner.Refcount() != 3 {
		t.Fatalf("got %v", inner.Refcount())
	}
	nested, ok := AsArray(outer.Index(0))
	if !ok {
		t.Fatal()
	}
	if nested.Index(0).ToInt() != 1 {
		t.Fatal()
	}
	nested.Release()
	// next index continues after the largest one
	outer.AppendInt(2)
	if outer.Index(6).ToInt() != 2 {
		t.Fatal()
	}
	outer.Release()
	if inner.Refcount() != 1 {
		t.Fatalf("got %v", inner.Refcount())
	}
	inner.Release()
}

func TestArraySet(t *testing.T) {
	a := NewArray()
	defer a.Release()
	a.SetNull("null")
	a.SetBool("bool", true)
	a.SetInt("int", 1)
	a.SetFloat("float", 2.5)
	a.SetString("string", "foo")
	a.SetBytes("bytes", []byte("bar"))
	if a.Count() != 6 {
		t.Fatalf("got %v", a.Count())
	}
	if !a.Exists("null") || !a.Get("null").IsNull() {
		t.Fatal()
	}
	if a.Get("float").ToFloat() != 2.5 {
		t.Fatal()
	}

	// overwrite in place
	old := a.Get("string").Ptr().Str()
	a.SetString("string", "baz")
	if a.Count() != 6 {
		t.Fatalf("got %v", a.Count())
	}
	if a.Get("string").ToString() != "baz" {
		t.Fatal()
	}
	if !old.Freed() {
		t.Fatal("old value should be released")
	}

	v := NewInt(3)
	a.Set("int", v)
	if a.Get("int").ToInt() != 3 {
		t.Fatal()
	}
}

func TestArrayNumericKeys(t *testing.T) {
	a := NewArray()
	defer a.Release()
	a.SetString("12", "foo")
	if a.Index(12).ToString() != "foo" {
		t.Fatal()
	}
	if !a.ExistsIndex(12) {
		t.Fatal()
	}
	a.SetString("012", "bar")
	if a.Count() != 2 {
		t.Fatalf("got %v", a.Count())
	}
	a.AppendInt(1)
	if a.Index(13).ToInt() != 1 {
		t.Fatal()
	}
}

func TestArrayMissing(t *testing.T) {
	a := NewArray()
	defer a.Release()
	if v := a.Get("foo"); !v.IsNull() || !v.IsOwning() {
		t.Fatal()
	}
	if v := a.Index(42); !v.IsNull() {
		t.Fatal()
	}
	if a.Exists("foo") || a.ExistsIndex(42) {
		t.Fatal()
	}
}

func TestArrayRemove(t *testing.T) {
	a := NewArray()
	defer a.Release()
	a.SetInt("a", 1)
	a.AppendInt(2)
	if !a.Remove("a") {
		t.Fatal()
	}
	if a.Remove("a") {
		t.Fatal()
	}
	if !a.RemoveIndex(0) {
		t.Fatal()
	}
	if a.RemoveIndex(0) {
		t.Fatal()
	}
	if a.Count() != 0 {
		t.Fatalf("got %v", a.Count())
	}
}

func TestArrayClear(t *testing.T) {
	a := NewArray()
	defer a.Release()
	v := NewString("foo")
	defer v.Release()
	a.Append(v)
	a.AppendInt(1)
	a.Clear()
	if a.Count() != 0 {
		t.Fatalf("got %v", a.Count())
	}
	if v.Refcount() != 1 {
		t.Fatalf("got %v", v.Refcount())
	}
	a.AppendInt(2)
	if a.Index(0).ToInt() != 2 {
		t.Fatal()
	}
}

func TestAsArray(t *testing.T) {
	if _, ok := AsArray(NewInt(1)); ok {
		t.Fatal()
	}
	a := NewArray()
	a.AppendInt(1)
	v := a.Copy()
	arr, ok := AsArray(v)
	if !ok {
		t.Fatal()
	}
	if a.Refcount() != 3 {
		t.Fatalf("got %v", a.Refcount())
	}
	arr.AppendInt(2)
	if a.Count() != 2 {
		t.Fatal("should share storage")
	}
	arr.Release()
	v.Release()
	a.Release()
}

func TestBorrowArray(t *testing.T) {
	var z zend.Zval
	z.SetArray(zend.NewHashTable(0))
	defer zend.PtrDtor(&z)
	a := BorrowArray(&z)
	a.AppendInt(1)
	a.Release()
	if z.Array().Count() != 1 {
		t.Fatal()
	}
	if z.Refcount() != 1 {
		t.Fatalf("got %v", z.Refcount())
	}
}

func TestNotArray(t *testing.T) {
	var z zend.Zval
	z.SetLong(1)
	a := WrapArray(&z)
	if a.AppendInt(1) {
		t.Fatal()
	}
	a.SetInt("a", 1)
	if a.Count() != 0 || a.Exists("a") || !a.Get("a").IsNull() {
		t.Fatal()
	}
	if !a.Begin().Equal(a.End()) {
		t.Fatal()
	}
	a.Clear()
}

func TestArrayAll(t *testing.T) {
	a := NewArray()
	defer a.Release()
	a.SetString("foo", "bar")
	a.AppendInt(1)
	a.SetIndex(10, NewFloat(0.5))
	var got []string
	for k, v := range a.All() {
		got = append(got, fmt.Sprintf("%v:%v", key(k), v.Type()))
	}
	if str := fmt.Sprint(got); str != "[foo:string 0:int 10:float]" {
		t.Fatalf("got %s", str)
	}
	n := 0
	for range a.All() {
		n++
		break
	}
	if n != 1 {
		t.Fatal()
	}
}

func key(v *Variant) any {
	if v.IsString() {
		return v.ToString()
	}
	return v.ToInt()
}
