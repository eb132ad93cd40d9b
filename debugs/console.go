package debugs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/reusee/zendapi/bridge"
	"github.com/reusee/zendapi/logs"
	"github.com/reusee/zendapi/nets"
	"github.com/reusee/zendapi/syncs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Session evaluates starlark read from r line by line, writing results and
// errors to w. Bindings persist across lines. Every line runs with the
// engine lock held.
type Session func(ctx context.Context, name string, r io.Reader, w io.Writer, prompt string) error

// EngineLock serializes access to the runtime.
type EngineLock syncs.Semaphore

func (Module) EngineLock() EngineLock {
	return EngineLock(syncs.NewSemaphore(1))
}

func (Module) Session(
	rt *bridge.Runtime,
	lock EngineLock,
	logger logs.Logger,
) Session {
	return func(ctx context.Context, name string, r io.Reader, w io.Writer, prompt string) error {
		logger.DebugContext(ctx, "session start", "name", name)
		defer logger.DebugContext(ctx, "session end", "name", name)

		globals := builtins(rt, w)
		thread := &starlark.Thread{
			Name: name,
			Print: func(_ *starlark.Thread, msg string) {
				fmt.Fprintln(w, msg)
			},
		}

		scanner := bufio.NewScanner(r)
		fmt.Fprint(w, prompt)
		for scanner.Scan() {
			line := scanner.Text()
			var err error
			if lockErr := syncs.Semaphore(lock).Do(ctx, func() {
				err = evalLine(thread, line, globals, w)
			}); lockErr != nil {
				return lockErr
			}
			if err != nil {
				fmt.Fprintf(w, "error: %v\n", err)
			}
			fmt.Fprint(w, prompt)
		}
		return scanner.Err()
	}
}

// evalLine prints the value of a sole expression, or executes statements
// against globals.
func evalLine(thread *starlark.Thread, line string, globals starlark.StringDict, w io.Writer) error {
	f, err := fileOptions.Parse(thread.Name, line, 0)
	if err != nil {
		return err
	}
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			value, err := starlark.EvalExprOptions(fileOptions, thread, stmt.X, globals)
			if err != nil {
				return err
			}
			if value != starlark.None {
				fmt.Fprintln(w, value)
			}
			return nil
		}
	}
	return starlark.ExecREPLChunk(f, thread, globals)
}

// Console serves a session per accepted connection until ctx is done.
// Connections from non-local peers are refused.
type Console func(ctx context.Context, ln net.Listener) error

const consolePrompt = ">>> "

func (Module) Console(
	session Session,
	isLocalAddr nets.IsLocalAddr,
	logger logs.Logger,
) Console {
	return func(ctx context.Context, ln net.Listener) error {
		stop := context.AfterFunc(ctx, func() {
			ln.Close()
		})
		defer stop()

		var wg sync.WaitGroup
		defer wg.Wait()

		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				return err
			}

			remote := conn.RemoteAddr().String()
			if ok, err := isLocalAddr(remote); err != nil || !ok {
				logger.WarnContext(ctx, "console: refused",
					"remote", remote,
				)
				conn.Close()
				continue
			}

			wg.Go(func() {
				defer conn.Close()
				stop := context.AfterFunc(ctx, func() {
					conn.Close()
				})
				defer stop()
				if err := session(ctx, "console "+remote, conn, conn, consolePrompt); err != nil &&
					ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
					logger.WarnContext(ctx, "console: session",
						"remote", remote,
						"error", err,
					)
				}
			})
		}
	}
}
