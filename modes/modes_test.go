package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

func TestModes(t *testing.T) {
	for _, c := range []struct {
		module any
		mode   Mode
	}{
		{ForProduction(), ModeProduction},
		{ForDevelopment(), ModeDevelopment},
		{ForTest(t), ModeDevelopment},
	} {
		dscope.New(c.module).Call(func(
			mode Mode,
		) {
			if mode != c.mode {
				t.Fatalf("got %v", mode)
			}
		})
	}
}

func TestForTest(t *testing.T) {
	dscope.New(ForTest(t)).Call(func(
		got *testing.T,
	) {
		if got != t {
			t.Fatal()
		}
	})
}
