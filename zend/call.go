package zend

import (
	"errors"
	"fmt"
	"strings"
)

var errCallDepth = errors.New("maximum call depth reached")

// CallUserFunction calls callable synchronously and stores the result in
// retval, which the caller owns afterwards. object binds method calls; it
// may be nil. callable is a function name, a "Class::method" string, an
// array of [object or class name, method name] or an invokable object.
// params are borrowed: the frame takes its own reference to each.
func (e *Engine) CallUserFunction(object *Zval, callable *Zval, retval *Zval, params []Zval) error {
	retval.SetNull()
	fn, this, err := e.resolveCallable(object, callable)
	if err != nil {
		e.Error(LevelWarning, "Invalid callback %s, %s", describeCallable(callable), err.Error())
		return fmt.Errorf("%w: %w", ErrNotCallable, err)
	}
	return e.invoke(fn, this, retval, params)
}

func (e *Engine) invoke(fn *Function, this *Zval, retval *Zval, params []Zval) error {
	if fn.handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrNotCallable, fn.name)
	}
	if e.callDepth >= e.maxCallDepth {
		e.Error(LevelError, "Maximum call stack size of %d reached", e.maxCallDepth)
		return errCallDepth
	}
	e.callDepth++
	defer func() {
		e.callDepth--
	}()

	ex := &ExecuteData{
		engine: e,
		fn:     fn,
		args:   make([]Zval, len(params)),
	}
	if this != nil && this.Type() == TypeObject {
		Copy(&ex.this, this)
	}
	for i := range params {
		Copy(&ex.args[i], params[i].Deref())
	}
	retval.SetNull()

	fn.handler(ex, retval)

	for i := range ex.args {
		PtrDtor(&ex.args[i])
	}
	PtrDtor(&ex.this)
	return nil
}

func (e *Engine) resolveCallable(object *Zval, callable *Zval) (fn *Function, this *Zval, err error) {
	if object != nil {
		object = object.Deref()
		if object.Type() != TypeObject {
			object = nil
		}
	}
	callable = callable.Deref()

	switch callable.Type() {

	case TypeString:
		name := callable.Str().Val()
		if object != nil {
			return e.resolveMethod(object.Object().Class(), object, name)
		}
		if className, method, ok := strings.Cut(name, "::"); ok {
			ce := e.LookupClass(className)
			if ce == nil {
				return nil, nil, fmt.Errorf("class \"%s\" not found", className)
			}
			return e.resolveMethod(ce, nil, method)
		}
		fn := e.LookupFunction(name)
		if fn == nil {
			return nil, nil, fmt.Errorf("function \"%s\" not found or invalid function name", name)
		}
		return fn, nil, nil

	case TypeArray:
		ht := callable.Array()
		if ht.Count() != 2 {
			return nil, nil, errors.New("array callback must have exactly two members")
		}
		target := ht.IndexFind(0)
		method := ht.IndexFind(1)
		if target == nil || method == nil || method.Deref().Type() != TypeString {
			return nil, nil, errors.New("array callback must have exactly two members")
		}
		name := method.Deref().Str().Val()
		target = target.Deref()
		switch target.Type() {
		case TypeObject:
			return e.resolveMethod(target.Object().Class(), target, name)
		case TypeString:
			ce := e.LookupClass(target.Str().Val())
			if ce == nil {
				return nil, nil, fmt.Errorf("class \"%s\" not found", target.Str().Val())
			}
			return e.resolveMethod(ce, object, name)
		}
		return nil, nil, errors.New("first array member is not a valid class name or object")

	case TypeObject:
		return e.resolveMethod(callable.Object().Class(), callable, MagicInvoke)

	}

	return nil, nil, errors.New("no array or string given")
}

func (e *Engine) resolveMethod(ce *ClassEntry, this *Zval, name string) (*Function, *Zval, error) {
	fn := ce.Method(name)
	if fn == nil {
		return nil, nil, fmt.Errorf("class %s does not have a method \"%s\"", ce.name, name)
	}
	if this != nil && !this.Object().Class().InstanceOf(fn.scope) {
		this = nil
	}
	return fn, this, nil
}

func describeCallable(callable *Zval) string {
	callable = callable.Deref()
	switch callable.Type() {
	case TypeString:
		return callable.Str().Val()
	case TypeArray:
		ht := callable.Array()
		target, method := ht.IndexFind(0), ht.IndexFind(1)
		if target == nil || method == nil {
			return "array"
		}
		var class string
		switch t := target.Deref(); t.Type() {
		case TypeObject:
			class = t.Object().Class().Name()
		case TypeString:
			class = t.Str().Val()
		}
		return class + "::" + ToString(method.Deref())
	case TypeObject:
		return callable.Object().Class().Name()
	}
	return callable.Type().String()
}
