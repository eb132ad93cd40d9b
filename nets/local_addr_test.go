package nets

import (
	"io"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/zendapi/configs"
	"github.com/reusee/zendapi/logs"
	"github.com/reusee/zendapi/modes"
)

func testScope(t *testing.T, files configs.Files) dscope.Scope {
	return dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Files {
			return files
		},
		func() logs.Writer {
			return io.Discard
		},
	)
}

func TestIsLocalAddr(t *testing.T) {
	testScope(t, nil).Call(func(
		isLocalAddr IsLocalAddr,
	) {
		for _, c := range []struct {
			addr     string
			expected bool
		}{
			{"127.0.0.1:10000", true},
			{"[::1]:80", true},
			{"10.1.2.3", true},
			{"192.168.0.1:22", true},
			{"8.8.8.8:53", false},
			{"no-such-host.invalid", false},
		} {
			yes, err := isLocalAddr(c.addr)
			if err != nil {
				t.Fatal(err)
			}
			if yes != c.expected {
				t.Fatalf("%s: got %v", c.addr, yes)
			}
		}
	})
}
