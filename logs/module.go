package logs

import (
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/zendapi/configs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
}

// Writer receives the text log output.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
