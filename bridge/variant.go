package bridge

import (
	"github.com/reusee/zendapi/zend"
)

// Variant is a handle to one host value.
//
// An owning handle holds a private record and one reference to its heap
// payload; Release drops that reference. A borrowing handle points at a
// record someone else owns and never touches the reference count.
type Variant struct {
	val      zend.Zval
	ref      *zend.Zval
	released bool
}

func NewNull() *Variant {
	v := new(Variant)
	v.val.SetNull()
	return v
}

func NewBool(b bool) *Variant {
	v := new(Variant)
	v.val.SetBool(b)
	return v
}

func NewInt(i int64) *Variant {
	v := new(Variant)
	v.val.SetLong(i)
	return v
}

func NewFloat(f float64) *Variant {
	v := new(Variant)
	v.val.SetDouble(f)
	return v
}

func NewString(s string) *Variant {
	v := new(Variant)
	v.val.SetString(s)
	return v
}

func NewBytes(b []byte) *Variant {
	v := new(Variant)
	v.val.SetString(string(b))
	return v
}

// Wrap returns an owning handle sharing the payload of z.
func Wrap(z *zend.Zval) *Variant {
	v := new(Variant)
	v.wrap(z)
	return v
}

// Borrow returns a handle reading and writing through z. z must outlive it.
func Borrow(z *zend.Zval) *Variant {
	v := new(Variant)
	v.borrow(z)
	return v
}

func (v *Variant) wrap(z *zend.Zval) {
	if z == nil {
		v.val.SetNull()
		return
	}
	zend.Copy(&v.val, direct(z))
}

func (v *Variant) borrow(z *zend.Zval) {
	if z == nil {
		v.val.SetNull()
		return
	}
	v.ref = z
}

func direct(z *zend.Zval) *zend.Zval {
	for z.Type() == zend.TypeIndirect {
		z = z.Indirect()
	}
	return z
}

// Ptr returns the record the handle currently designates.
func (v *Variant) Ptr() *zend.Zval {
	if v.ref != nil {
		return direct(v.ref)
	}
	return &v.val
}

func (v *Variant) IsOwning() bool {
	return v.ref == nil
}

// Release drops the reference an owning handle holds. It is safe to call
// more than once, and a no-op on borrowing handles.
func (v *Variant) Release() {
	if v == nil || v.ref != nil || v.released {
		return
	}
	v.released = true
	zend.PtrDtor(&v.val)
	v.val.SetUndef()
}

// Copy returns a new owning handle sharing the same payload.
func (v *Variant) Copy() *Variant {
	return Wrap(v.Ptr())
}

// Deref returns a borrowing handle to the value behind a reference.
func (v *Variant) Deref() *Variant {
	return Borrow(v.Ptr().Deref())
}

// moveTo hands the value over to dst. An owning handle gives up its
// reference; a borrowing one has dst take a new reference.
func (v *Variant) moveTo(dst *zend.Zval) {
	if v.ref != nil {
		zend.Copy(dst, v.Ptr())
		return
	}
	if v.released {
		dst.SetNull()
		return
	}
	*dst = v.val
	v.val.SetUndef()
	v.released = true
}

func (v *Variant) Type() zend.Type {
	return v.Ptr().Type()
}

func (v *Variant) Refcount() uint32 {
	return v.Ptr().Refcount()
}

func (v *Variant) IsNull() bool {
	t := v.Type()
	return t == zend.TypeNull || t == zend.TypeUndef
}

func (v *Variant) IsBool() bool {
	t := v.Type()
	return t == zend.TypeTrue || t == zend.TypeFalse
}

func (v *Variant) IsInt() bool {
	return v.Type() == zend.TypeLong
}

func (v *Variant) IsFloat() bool {
	return v.Type() == zend.TypeDouble
}

func (v *Variant) IsString() bool {
	return v.Type() == zend.TypeString
}

func (v *Variant) IsArray() bool {
	return v.Type() == zend.TypeArray
}

func (v *Variant) IsObject() bool {
	return v.Type() == zend.TypeObject
}

func (v *Variant) IsResource() bool {
	return v.Type() == zend.TypeResource
}

func (v *Variant) IsReference() bool {
	return v.Type() == zend.TypeReference
}

// ToString returns the string payload, or "" for other types.
func (v *Variant) ToString() string {
	z := v.Ptr()
	if z.Type() != zend.TypeString {
		return ""
	}
	return z.Str().Val()
}

// ToBytes returns a copy of the string payload, or nil for other types.
func (v *Variant) ToBytes() []byte {
	z := v.Ptr()
	if z.Type() != zend.TypeString {
		return nil
	}
	return []byte(z.Str().Val())
}

func (v *Variant) ToInt() int64 {
	return v.Ptr().Long()
}

func (v *Variant) ToFloat() float64 {
	return v.Ptr().Double()
}

func (v *Variant) ToBool() bool {
	return v.Ptr().Bool()
}

func (v *Variant) assign(set func(z *zend.Zval)) error {
	if v.ref != nil {
		return ErrBorrowed
	}
	if !v.released {
		zend.PtrDtor(&v.val)
	}
	set(&v.val)
	v.released = false
	return nil
}

func (v *Variant) AssignNull() error {
	return v.assign(func(z *zend.Zval) {
		z.SetNull()
	})
}

func (v *Variant) AssignBool(b bool) error {
	return v.assign(func(z *zend.Zval) {
		z.SetBool(b)
	})
}

func (v *Variant) AssignInt(i int64) error {
	return v.assign(func(z *zend.Zval) {
		z.SetLong(i)
	})
}

func (v *Variant) AssignFloat(f float64) error {
	return v.assign(func(z *zend.Zval) {
		z.SetDouble(f)
	})
}

func (v *Variant) AssignString(s string) error {
	return v.assign(func(z *zend.Zval) {
		z.SetString(s)
	})
}

func (v *Variant) AssignBytes(b []byte) error {
	return v.assign(func(z *zend.Zval) {
		z.SetString(string(b))
	})
}
