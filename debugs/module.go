package debugs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/zendapi/bridge"
	"github.com/reusee/zendapi/nets"
)

type Module struct {
	dscope.Module
	Bridge bridge.Module
	Nets   nets.Module
}
