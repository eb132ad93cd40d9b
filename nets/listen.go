package nets

import (
	"context"
	"net"
	"os"

	"github.com/reusee/zendapi/configs"
	"github.com/reusee/zendapi/logs"
	"github.com/reusee/zendapi/vars"
	"golang.org/x/net/netutil"
)

// ConsoleAddr is the address the debug console listens on. Empty disables it.
type ConsoleAddr string

func (Module) ConsoleAddr(
	loader configs.Loader,
) ConsoleAddr {
	return vars.FirstNonZero(
		configs.First[ConsoleAddr](loader, "console.addr"),
		ConsoleAddr(os.Getenv("ZENDAPI_CONSOLE_ADDR")),
	)
}

// MaxConns bounds the connections a listener serves at once.
type MaxConns int

const defaultMaxConns = 4

func (Module) MaxConns(
	loader configs.Loader,
) MaxConns {
	return vars.FirstNonZero(
		configs.First[MaxConns](loader, "console.max_conns"),
		defaultMaxConns,
	)
}

type Listen func(ctx context.Context, addr string) (net.Listener, error)

func (Module) Listen(
	maxConns MaxConns,
	logger logs.Logger,
) Listen {
	return func(ctx context.Context, addr string) (net.Listener, error) {
		var config net.ListenConfig
		ln, err := config.Listen(ctx, "tcp", addr)
		if err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "listening",
			"addr", ln.Addr().String(),
			"max_conns", int(maxConns),
		)
		return netutil.LimitListener(ln, int(maxConns)), nil
	}
}
