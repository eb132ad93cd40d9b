package bridge

import (
	"errors"
	"fmt"

	"github.com/reusee/zendapi/logs"
	"github.com/reusee/zendapi/zend"
)

// MaxArgc is the maximum number of arguments passed to a host call.
const MaxArgc = 20

var (
	ErrBorrowed    = errors.New("handle is borrowed")
	ErrTooManyArgs = errors.New("too many arguments")
	ErrNotCallable = zend.ErrNotCallable
)

// call invokes fn through the host dispatcher. Arguments are passed as
// shallow copies of the slots of args; the host frame takes its own
// references. On failure the result is false.
func call(engine *zend.Engine, this *zend.Zval, fn *zend.Zval, args *Array) (*Variant, error) {
	var argv [MaxArgc]zend.Zval
	argc := 0
	if args != nil {
		if n := args.Count(); n > MaxArgc {
			return NewBool(false), logs.WrapSpan(
				engine.Context(),
				fmt.Errorf("%w: %d, at most %d", ErrTooManyArgs, n, MaxArgc),
			)
		}
		for it, end := args.Begin(), args.End(); !it.Equal(end); it.Next() {
			argv[argc] = *direct(&it.bucket().Val)
			argc++
		}
	}

	ret := new(Variant)
	if err := engine.CallUserFunction(this, fn, &ret.val, argv[:argc]); err != nil {
		zend.PtrDtor(&ret.val)
		ret.val.SetFalse()
		return ret, logs.WrapSpan(engine.Context(), err)
	}
	return ret, nil
}
