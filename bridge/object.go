package bridge

import (
	"github.com/reusee/zendapi/zend"
)

// Object is a handle to a host object instance.
type Object struct {
	Variant
}

func WrapObject(z *zend.Zval) *Object {
	o := new(Object)
	o.wrap(z)
	return o
}

func BorrowObject(z *zend.Zval) *Object {
	o := new(Object)
	o.borrow(z)
	return o
}

// AsObject returns an owning object handle sharing the instance of v.
func AsObject(v *Variant) (*Object, bool) {
	if v.Ptr().Deref().Type() != zend.TypeObject {
		return nil, false
	}
	return WrapObject(v.Ptr()), true
}

func (o *Object) instance() *zend.Object {
	return o.Ptr().Deref().Object()
}

// ClassName returns the name of the instance's class, "" when the handle
// holds no object.
func (o *Object) ClassName() string {
	obj := o.instance()
	if obj == nil {
		return ""
	}
	return obj.Class().Name()
}

// Get reads a property. The result is always owning.
func (o *Object) Get(name string) *Variant {
	obj := o.instance()
	if obj == nil {
		return NewNull()
	}
	ret := new(Variant)
	var rv zend.Zval
	z := obj.Class().Engine().ReadProperty(obj, name, &rv)
	if z == &rv {
		// computed into rv, already ours
		ret.val = rv
		return ret
	}
	ret.wrap(z)
	return ret
}

// Set assigns a property. The object takes its own reference to v.
func (o *Object) Set(name string, v *Variant) {
	obj := o.instance()
	if obj == nil {
		return
	}
	obj.Class().Engine().UpdateProperty(obj, name, v.Ptr())
}

func (o *Object) set(name string, z *zend.Zval) {
	defer zend.PtrDtor(z)
	obj := o.instance()
	if obj == nil {
		return
	}
	obj.Class().Engine().UpdateProperty(obj, name, z)
}

func (o *Object) SetNull(name string) {
	var z zend.Zval
	z.SetNull()
	o.set(name, &z)
}

func (o *Object) SetBool(name string, b bool) {
	var z zend.Zval
	z.SetBool(b)
	o.set(name, &z)
}

func (o *Object) SetInt(name string, i int64) {
	var z zend.Zval
	z.SetLong(i)
	o.set(name, &z)
}

func (o *Object) SetFloat(name string, f float64) {
	var z zend.Zval
	z.SetDouble(f)
	o.set(name, &z)
}

func (o *Object) SetString(name string, s string) {
	var z zend.Zval
	z.SetString(s)
	o.set(name, &z)
}

func (o *Object) SetBytes(name string, b []byte) {
	var z zend.Zval
	z.SetString(string(b))
	o.set(name, &z)
}

func (o *Object) SetArray(name string, a *Array) {
	o.Set(name, &a.Variant)
}

// Call invokes method on the instance. args may be nil.
func (o *Object) Call(method string, args *Array) (*Variant, error) {
	callable := NewString(method)
	defer callable.Release()
	return o.CallValue(callable, args)
}

// CallValue invokes fn with the instance bound. fn is anything the host
// accepts as a callable.
func (o *Object) CallValue(fn *Variant, args *Array) (*Variant, error) {
	obj := o.instance()
	if obj == nil {
		return NewBool(false), ErrNotCallable
	}
	return call(obj.Class().Engine(), o.Ptr().Deref(), fn.Ptr(), args)
}
