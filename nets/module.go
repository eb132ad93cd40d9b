package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/zendapi/configs"
	"github.com/reusee/zendapi/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
