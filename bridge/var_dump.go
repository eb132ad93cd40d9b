package bridge

import (
	"io"

	"github.com/reusee/zendapi/zend"
)

// VarDumpLevel is the indentation level VarDump starts at.
const VarDumpLevel = 10

func VarDump(w io.Writer, v *Variant) {
	zend.VarDump(w, v.Ptr(), VarDumpLevel)
}
