package main

import (
	"strconv"

	"github.com/reusee/zendapi/bridge"
	"github.com/reusee/zendapi/zend"
)

// registerDemo installs a few native functions and a class to try from the
// command line or the repl.
func registerDemo(rt *bridge.Runtime) error {
	engine := rt.Engine()

	counter, err := engine.DeclareClass("Counter", nil)
	if err != nil {
		return err
	}
	var zero zend.Zval
	zero.SetLong(0)
	counter.DeclareProperty("count", &zero)
	counter.DeclareMethod("__construct", func(ex *zend.ExecuteData, ret *zend.Zval) {
		if arg := ex.Arg(0); arg != nil {
			ex.Engine().UpdateProperty(ex.This(), "count", arg)
		}
	})
	counter.DeclareMethod("increment", func(ex *zend.ExecuteData, ret *zend.Zval) {
		var rv zend.Zval
		n := ex.Engine().ReadProperty(ex.This(), "count", &rv).Long() + 1
		var value zend.Zval
		value.SetLong(n)
		ex.Engine().UpdateProperty(ex.This(), "count", &value)
		ret.SetLong(n)
	})

	for name, fn := range map[string]bridge.Function{

		// greet(name...) returns a greeting per name and their lengths
		"greet": func(args *bridge.Array) *bridge.Variant {
			ret := bridge.NewArray()
			if args.Count() == 0 {
				args = bridge.NewArray()
				defer args.Release()
				args.AppendString("world")
			}
			for _, who := range args.All() {
				item := bridge.NewArray()
				item.SetString("greeting", "hello, "+who.ToString())
				strlenArgs := argsOf(who)
				length, err := rt.CallName("strlen", strlenArgs)
				strlenArgs.Release()
				if err == nil {
					item.Set("length", length)
				}
				length.Release()
				ret.AppendArray(item)
				item.Release()
			}
			return &ret.Variant
		},

		// sum(n...) adds integer arguments
		"sum": func(args *bridge.Array) *bridge.Variant {
			var sum int64
			for _, arg := range args.All() {
				if arg.IsInt() {
					sum += arg.ToInt()
					continue
				}
				n, err := strconv.ParseInt(arg.ToString(), 10, 64)
				if err != nil {
					return bridge.NewBool(false)
				}
				sum += n
			}
			return bridge.NewInt(sum)
		},

		// count_to(n) creates a Counter and increments it n times
		"count_to": func(args *bridge.Array) *bridge.Variant {
			arg := args.Index(0)
			n := arg.ToInt()
			if !arg.IsInt() {
				n, _ = strconv.ParseInt(arg.ToString(), 10, 64)
			}
			initial := bridge.NewArray()
			defer initial.Release()
			initial.AppendInt(0)
			obj := rt.Create("Counter", initial)
			for range n {
				ret, err := obj.Call("increment", nil)
				ret.Release()
				if err != nil {
					break
				}
			}
			return &obj.Variant
		},
	} {
		if err := rt.Register(name, fn); err != nil {
			return err
		}
	}

	return nil
}

func argsOf(values ...*bridge.Variant) *bridge.Array {
	args := bridge.NewArray()
	for _, v := range values {
		args.Append(v)
	}
	return args
}
