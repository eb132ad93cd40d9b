package bridge

import (
	"errors"
	"io"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/zendapi/configs"
	"github.com/reusee/zendapi/logs"
	"github.com/reusee/zendapi/modes"
	"github.com/reusee/zendapi/zend"
)

func withRuntime(t *testing.T, fn func(rt *Runtime, diagnostics *[]zend.Diagnostic)) {
	t.Helper()
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() configs.Files {
			return nil
		},
		func() logs.Writer {
			return io.Discard
		},
	).Call(func(
		rt *Runtime,
	) {
		var diagnostics []zend.Diagnostic
		rt.Engine().OnError(func(d zend.Diagnostic) {
			diagnostics = append(diagnostics, d)
		})
		fn(rt, &diagnostics)
	})
}

func TestRegisterAndCall(t *testing.T) {
	withRuntime(t, func(rt *Runtime, _ *[]zend.Diagnostic) {
		if err := rt.Register("add", func(args *Array) *Variant {
			return NewInt(args.Index(0).ToInt() + args.Index(1).ToInt())
		}); err != nil {
			t.Fatal(err)
		}
		rt.Engine().Startup()

		args := NewArray()
		defer args.Release()
		args.AppendInt(1)
		args.AppendInt(2)
		ret, err := rt.CallName("ADD", args)
		if err != nil {
			t.Fatal(err)
		}
		defer ret.Release()
		if ret.ToInt() != 3 {
			t.Fatalf("got %v", ret.ToInt())
		}
	})
}

func TestDispatchBorrowsArgs(t *testing.T) {
	withRuntime(t, func(rt *Runtime, _ *[]zend.Diagnostic) {
		var inner uint32
		rt.Register("echo", func(args *Array) *Variant {
			arg := args.Index(0)
			inner = arg.Refcount()
			return arg
		})

		s := NewString("foo")
		defer s.Release()
		args := NewArray()
		defer args.Release()
		args.Append(s)
		if s.Refcount() != 2 {
			t.Fatalf("got %v", s.Refcount())
		}

		ret, err := rt.CallName("echo", args)
		if err != nil {
			t.Fatal(err)
		}
		// one more for the call frame only
		if inner != 3 {
			t.Fatalf("got %v", inner)
		}
		if ret.ToString() != "foo" {
			t.Fatalf("got %v", ret.ToString())
		}
		if s.Refcount() != 3 {
			t.Fatalf("got %v", s.Refcount())
		}
		ret.Release()
		if s.Refcount() != 2 {
			t.Fatalf("got %v", s.Refcount())
		}
	})
}

func TestDispatchMovesResult(t *testing.T) {
	withRuntime(t, func(rt *Runtime, _ *[]zend.Diagnostic) {
		var result *Array
		rt.Register("make", func(args *Array) *Variant {
			result = NewArray()
			return &result.Variant
		})
		rt.Register("none", func(args *Array) *Variant {
			return nil
		})

		ret, err := rt.CallName("make", nil)
		if err != nil {
			t.Fatal(err)
		}
		if !ret.IsArray() {
			t.Fatalf("got %v", ret.Type())
		}
		// the source handle was emptied
		result.Release()
		if ret.Refcount() != 1 {
			t.Fatalf("got %v", ret.Refcount())
		}
		ret.Release()

		ret, err = rt.CallName("none", nil)
		if err != nil {
			t.Fatal(err)
		}
		if !ret.IsNull() {
			t.Fatalf("got %v", ret.Type())
		}
	})
}

func TestDispatchReturnsArgs(t *testing.T) {
	withRuntime(t, func(rt *Runtime, _ *[]zend.Diagnostic) {
		rt.Register("same", func(args *Array) *Variant {
			return args.Copy()
		})
		rt.Register("nested", func(args *Array) *Variant {
			out := NewArray()
			out.AppendArray(args)
			return &out.Variant
		})

		call := func(name string) *Variant {
			s := NewString("hello")
			args := NewArray()
			args.Append(s)
			s.Release()
			ret, err := rt.CallName(name, args)
			if err != nil {
				t.Fatal(err)
			}
			// frame and caller values are gone after this
			args.Release()
			return ret
		}

		ret := call("same")
		arr, ok := AsArray(ret)
		if !ok {
			t.Fatalf("got %v", ret.Type())
		}
		if arr.Count() != 1 {
			t.Fatalf("got %v", arr.Count())
		}
		elem := arr.Index(0)
		if elem.ToString() != "hello" {
			t.Fatalf("got %v", elem.ToString())
		}
		if elem.Refcount() != 1 {
			t.Fatalf("got %v", elem.Refcount())
		}
		arr.Release()
		ret.Release()

		ret = call("nested")
		outer, ok := AsArray(ret)
		if !ok {
			t.Fatalf("got %v", ret.Type())
		}
		inner, ok := AsArray(outer.Index(0))
		if !ok {
			t.Fatalf("got %v", outer.Index(0).Type())
		}
		// the outer slot and this handle
		if inner.Refcount() != 2 {
			t.Fatalf("got %v", inner.Refcount())
		}
		elem = inner.Index(0)
		if elem.ToString() != "hello" {
			t.Fatalf("got %v", elem.ToString())
		}
		if elem.Refcount() != 1 {
			t.Fatalf("got %v", elem.Refcount())
		}
		inner.Release()
		outer.Release()
		ret.Release()
	})
}

func TestMaxArgc(t *testing.T) {
	withRuntime(t, func(rt *Runtime, _ *[]zend.Diagnostic) {
		called := 0
		rt.Register("argc", func(args *Array) *Variant {
			called++
			return NewInt(int64(args.Count()))
		})

		args := NewArray()
		defer args.Release()
		for i := range MaxArgc {
			args.AppendInt(int64(i))
		}
		ret, err := rt.CallName("argc", args)
		if err != nil {
			t.Fatal(err)
		}
		if ret.ToInt() != MaxArgc {
			t.Fatalf("got %v", ret.ToInt())
		}

		args.AppendInt(MaxArgc)
		ret, err = rt.CallName("argc", args)
		if !errors.Is(err, ErrTooManyArgs) {
			t.Fatalf("got %v", err)
		}
		if !ret.IsBool() || ret.ToBool() {
			t.Fatalf("got %v", ret.Type())
		}
		if called != 1 {
			t.Fatalf("got %v", called)
		}
	})
}

func TestArgOrder(t *testing.T) {
	withRuntime(t, func(rt *Runtime, _ *[]zend.Diagnostic) {
		args := NewArray()
		defer args.Release()
		args.SetIndex(1, NewString("b"))
		args.SetIndex(0, NewString("a"))
		sep := NewString("-")
		defer sep.Release()
		pieces := NewArray()
		defer pieces.Release()
		pieces.Append(sep)
		pieces.AppendArray(args)
		ret, err := rt.CallName("implode", pieces)
		if err != nil {
			t.Fatal(err)
		}
		defer ret.Release()
		if ret.ToString() != "b-a" {
			t.Fatalf("got %v", ret.ToString())
		}
	})
}

func TestNotCallable(t *testing.T) {
	withRuntime(t, func(rt *Runtime, diagnostics *[]zend.Diagnostic) {
		ret, err := rt.CallName("nope", nil)
		if !errors.Is(err, ErrNotCallable) {
			t.Fatalf("got %v", err)
		}
		if !ret.IsBool() || ret.ToBool() {
			t.Fatalf("got %v", ret.Type())
		}
		if len(*diagnostics) != 1 || (*diagnostics)[0].Level != zend.LevelWarning {
			t.Fatalf("got %v", *diagnostics)
		}

		ret, err = rt.Call(NewInt(1), nil)
		if !errors.Is(err, ErrNotCallable) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestCallStandard(t *testing.T) {
	withRuntime(t, func(rt *Runtime, _ *[]zend.Diagnostic) {
		args := NewArray()
		defer args.Release()
		args.AppendString("foo")
		ret, err := rt.CallName("strlen", args)
		if err != nil {
			t.Fatal(err)
		}
		if ret.ToInt() != 3 {
			t.Fatalf("got %v", ret.ToInt())
		}
		ret, err = rt.CallName("strtoupper", args)
		if err != nil {
			t.Fatal(err)
		}
		defer ret.Release()
		if ret.ToString() != "FOO" {
			t.Fatalf("got %v", ret.ToString())
		}
	})
}

func TestRegisterDuplicate(t *testing.T) {
	withRuntime(t, func(rt *Runtime, diagnostics *[]zend.Diagnostic) {
		fn := func(args *Array) *Variant {
			return NewInt(1)
		}
		if err := rt.Register("foo", fn); err != nil {
			t.Fatal(err)
		}
		err := rt.Register("FOO", fn)
		if !errors.Is(err, zend.ErrDuplicateFunction) {
			t.Fatalf("got %v", err)
		}
		if len(*diagnostics) != 1 || (*diagnostics)[0].Level != zend.LevelCoreWarning {
			t.Fatalf("got %v", *diagnostics)
		}

		// the native mapping is still replaced
		if err := rt.Register("strlen", fn); !errors.Is(err, zend.ErrDuplicateFunction) {
			t.Fatalf("got %v", err)
		}
		if _, ok := rt.functions["strlen"]; !ok {
			t.Fatal()
		}
	})
}

func TestRegisterAfterStartup(t *testing.T) {
	withRuntime(t, func(rt *Runtime, _ *[]zend.Diagnostic) {
		rt.Engine().Startup()
		err := rt.Register("foo", func(args *Array) *Variant {
			return nil
		})
		if !errors.Is(err, zend.ErrFunctionTableSealed) {
			t.Fatalf("got %v", err)
		}
		if _, ok := rt.functions["foo"]; ok {
			t.Fatal()
		}
	})
}

func TestCallNative(t *testing.T) {
	withRuntime(t, func(rt *Runtime, _ *[]zend.Diagnostic) {
		rt.Register("twice", func(args *Array) *Variant {
			arg := args.Index(0)
			ret, err := rt.CallName("strtoupper", args)
			if err != nil {
				return NewNull()
			}
			defer ret.Release()
			return NewString(arg.ToString() + ret.ToString())
		})
		args := NewArray()
		defer args.Release()
		args.AppendString("a")
		ret, err := rt.CallName("twice", args)
		if err != nil {
			t.Fatal(err)
		}
		defer ret.Release()
		if ret.ToString() != "aA" {
			t.Fatalf("got %v", ret.ToString())
		}
	})
}
