package debugs

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/reusee/zendapi/bridge"
	"github.com/reusee/zendapi/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens a starlark REPL with globals bound. Host values in globals are
// converted by value; call, dump and yaml are always available.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
	rt *bridge.Runtime,
	writer logs.Writer,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := builtins(rt, writer)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, mappings)
	}
}

func builtins(rt *bridge.Runtime, w io.Writer) starlark.StringDict {
	return starlark.StringDict{

		// call(name, *args) calls a host function
		"call": starlark.NewBuiltin("call", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("%s: missing function name", b.Name())
			}
			name, ok := starlark.AsString(args[0])
			if !ok {
				return nil, fmt.Errorf("%s: function name must be string, got %s", b.Name(), args[0].Type())
			}
			callArgs := bridge.NewArray()
			defer callArgs.Release()
			for _, arg := range args[1:] {
				v, err := fromStarlark(arg)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", b.Name(), err)
				}
				callArgs.Append(v)
				v.Release()
			}
			ret, err := rt.CallName(name, callArgs)
			defer ret.Release()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return toStarlarkValue(ret), nil
		}),

		// dump(value) prints value the way var_dump does
		"dump": starlark.NewBuiltin("dump", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var value starlark.Value
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value); err != nil {
				return nil, err
			}
			v, err := fromStarlark(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			defer v.Release()
			bridge.VarDump(w, v)
			return starlark.None, nil
		}),

		"yaml": starlark.NewBuiltin("yaml", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var value starlark.Value
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value); err != nil {
				return nil, err
			}
			v, err := fromStarlark(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			defer v.Release()
			buf := new(strings.Builder)
			if err := DumpYAML(buf, v); err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return starlark.String(buf.String()), nil
		}),
	}
}
