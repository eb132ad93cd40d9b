package bridge

import (
	"errors"

	"github.com/reusee/zendapi/zend"
)

// Function is a native function callable from the host. args borrows the
// call frame and is only valid during the call. The returned handle is
// moved into the host return slot; nil returns null.
type Function func(args *Array) *Variant

// Runtime connects native functions and host calls on one engine.
type Runtime struct {
	engine    *zend.Engine
	functions map[string]Function
}

func NewRuntime(engine *zend.Engine) *Runtime {
	return &Runtime{
		engine:    engine,
		functions: make(map[string]Function),
	}
}

func (r *Runtime) Engine() *zend.Engine {
	return r.engine
}

// Call invokes a host callable: a function name, a "Class::method" string,
// an array callback or an invokable object.
func (r *Runtime) Call(fn *Variant, args *Array) (*Variant, error) {
	return call(r.engine, nil, fn.Ptr(), args)
}

func (r *Runtime) CallName(name string, args *Array) (*Variant, error) {
	fn := NewString(name)
	defer fn.Release()
	return r.Call(fn, args)
}

// Create instantiates class. The constructor runs when args is not nil.
// An undefined or abstract class yields a null handle.
func (r *Runtime) Create(class string, args *Array) *Object {
	o := new(Object)
	o.val.SetNull()
	ce := r.engine.LookupClass(class)
	if ce == nil {
		r.engine.Error(zend.LevelWarning, "class '%s' is undefined.", class)
		return o
	}
	if err := r.engine.ObjectInitEx(&o.val, ce); err != nil {
		return o
	}
	if args != nil && ce.Constructor() != nil {
		ret, err := o.Call(zend.MagicConstruct, args)
		if err != nil {
			r.engine.Logger().DebugContext(r.engine.Context(), "constructor failed",
				"class", ce.Name(),
				"error", err,
			)
		}
		ret.Release()
	}
	return o
}

// Register publishes fn to the host function table under name. The native
// mapping is replaced even when the host reports a duplicate name.
func (r *Runtime) Register(name string, fn Function) error {
	err := r.engine.RegisterFunctions([]zend.FunctionEntry{
		{
			Name:    name,
			Handler: r.dispatch,
		},
	})
	if errors.Is(err, zend.ErrFunctionTableSealed) {
		return err
	}
	r.functions[r.engine.FoldName(name)] = fn
	r.engine.Logger().Debug("register native function",
		"name", name,
	)
	return err
}

// dispatch is the host handler of every registered native function.
func (r *Runtime) dispatch(ex *zend.ExecuteData, ret *zend.Zval) {
	name := ex.Func().Name()
	fn, ok := r.functions[r.engine.FoldName(name)]
	if !ok {
		r.engine.Error(zend.LevelWarning, "native function %s is not registered", name)
		return
	}

	// slots point at the frame arguments
	args := NewArray()
	defer args.Release()
	ht := args.table()
	for i := range ex.NumArgs() {
		var z zend.Zval
		z.SetIndirect(ex.Arg(i))
		ht.NextIndexInsert(&z)
	}

	result := fn(args)
	if ht.Refcount() > 1 {
		// the args array outlives the frame
		ownSlots(ht)
	}
	if result == nil {
		return
	}
	result.moveTo(ret)
}

// ownSlots replaces indirect slots with counted copies of their targets.
func ownSlots(ht *zend.HashTable) {
	for pos := range ht.NumUsed() {
		slot := &ht.Bucket(pos).Val
		if slot.Type() != zend.TypeIndirect {
			continue
		}
		zend.Copy(slot, slot.Indirect())
	}
}
