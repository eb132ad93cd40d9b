package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/reusee/dscope"
	"github.com/reusee/zendapi/bridge"
	"github.com/reusee/zendapi/cmds"
	"github.com/reusee/zendapi/debugs"
	"github.com/reusee/zendapi/logs"
	"github.com/reusee/zendapi/modes"
	"github.com/reusee/zendapi/nets"
	"github.com/reusee/zendapi/vars"
	"golang.org/x/term"
)

var (
	doRepl       = cmds.Switch("repl")
	inProduction = cmds.Switch("production")
	callName     = cmds.Var[string]("call")
	callArgs     = cmds.Collect[string]("arg")
	outputFormat = cmds.Var[string]("format")
	consoleAddr  = cmds.Var[string]("console")
)

func main() {
	cmds.Execute(os.Args[1:])

	var mode any = modes.ForDevelopment()
	if *inProduction {
		mode = modes.ForProduction()
	}

	dscope.New(
		new(debugs.Module),
		mode,
	).Call(func(
		rt *bridge.Runtime,
		tap debugs.Tap,
		session debugs.Session,
		console debugs.Console,
		listen nets.Listen,
		configAddr nets.ConsoleAddr,
		logger logs.Logger,
	) {
		if err := registerDemo(rt); err != nil {
			logger.Error("register demo", "error", err)
			os.Exit(1)
		}

		engine := rt.Engine()
		engine.Startup()
		engine.RequestStartup(context.Background())
		defer engine.RequestShutdown()
		ctx := engine.Context()

		if addr := vars.FirstNonZero(*consoleAddr, string(configAddr)); addr != "" {
			ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer cancel()
			ln, err := listen(ctx, addr)
			if err != nil {
				logger.ErrorContext(ctx, "listen", "error", err)
				os.Exit(1)
			}
			if err := console(ctx, ln); err != nil {
				logger.ErrorContext(ctx, "console", "error", err)
				os.Exit(1)
			}
			return
		}

		if *doRepl {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				tap(ctx, "repl", map[string]any{})
				return
			}
			// script from pipe
			if err := session(ctx, "stdin", os.Stdin, os.Stdout, ""); err != nil {
				logger.ErrorContext(ctx, "stdin", "error", err)
				os.Exit(1)
			}
			return
		}

		name := vars.FirstNonZero(*callName, "greet")
		args := bridge.NewArray()
		defer args.Release()
		for _, arg := range *callArgs {
			args.AppendString(arg)
		}
		ret, err := rt.CallName(name, args)
		if err != nil {
			logger.ErrorContext(ctx, "call failed",
				"function", name,
				"error", err,
			)
			os.Exit(1)
		}
		defer ret.Release()

		switch *outputFormat {
		case "yaml":
			if err := debugs.DumpYAML(os.Stdout, ret); err != nil {
				logger.ErrorContext(ctx, "dump", "error", err)
				os.Exit(1)
			}
		default:
			bridge.VarDump(os.Stdout, ret)
		}
	})
}
