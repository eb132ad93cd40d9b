package bridge

import (
	"github.com/reusee/dscope"
	"github.com/reusee/zendapi/zend"
)

type Module struct {
	dscope.Module
	Zend zend.Module
}

func (Module) Runtime(
	engine *zend.Engine,
) *Runtime {
	return NewRuntime(engine)
}
