package bridge

import (
	"iter"

	"github.com/reusee/zendapi/zend"
)

// Array is a handle to a host array. Numeric string keys are stored as
// integer keys, so Set("12", v) and SetIndex(12, v) address the same slot.
type Array struct {
	Variant
}

func NewArray() *Array {
	a := new(Array)
	a.val.SetArray(zend.NewHashTable(0))
	return a
}

func WrapArray(z *zend.Zval) *Array {
	a := new(Array)
	a.wrap(z)
	return a
}

func BorrowArray(z *zend.Zval) *Array {
	a := new(Array)
	a.borrow(z)
	return a
}

// AsArray returns an owning array handle sharing the payload of v.
func AsArray(v *Variant) (*Array, bool) {
	if v.Ptr().Deref().Type() != zend.TypeArray {
		return nil, false
	}
	return WrapArray(v.Ptr()), true
}

func (a *Array) table() *zend.HashTable {
	return a.Ptr().Deref().Array()
}

// append stores z under the next free index, taking over its reference.
func (a *Array) append(z *zend.Zval) bool {
	ht := a.table()
	if ht == nil {
		zend.PtrDtor(z)
		return false
	}
	if _, ok := ht.NextIndexInsert(z); !ok {
		zend.PtrDtor(z)
		return false
	}
	return true
}

func (a *Array) set(key string, z *zend.Zval) {
	ht := a.table()
	if ht == nil {
		zend.PtrDtor(z)
		return
	}
	ht.SymtableUpdate(key, z)
}

// Append stores a new reference to v under the next free index. It reports
// false when the next index is not available.
func (a *Array) Append(v *Variant) bool {
	var z zend.Zval
	zend.Copy(&z, v.Ptr())
	return a.append(&z)
}

func (a *Array) AppendNull() bool {
	var z zend.Zval
	z.SetNull()
	return a.append(&z)
}

func (a *Array) AppendBool(b bool) bool {
	var z zend.Zval
	z.SetBool(b)
	return a.append(&z)
}

func (a *Array) AppendInt(i int64) bool {
	var z zend.Zval
	z.SetLong(i)
	return a.append(&z)
}

func (a *Array) AppendFloat(f float64) bool {
	var z zend.Zval
	z.SetDouble(f)
	return a.append(&z)
}

func (a *Array) AppendString(s string) bool {
	var z zend.Zval
	z.SetString(s)
	return a.append(&z)
}

func (a *Array) AppendBytes(b []byte) bool {
	var z zend.Zval
	z.SetString(string(b))
	return a.append(&z)
}

func (a *Array) AppendArray(arr *Array) bool {
	return a.Append(&arr.Variant)
}

func (a *Array) AppendObject(o *Object) bool {
	return a.Append(&o.Variant)
}

// Set stores a new reference to v under key, replacing any previous value.
func (a *Array) Set(key string, v *Variant) {
	var z zend.Zval
	zend.Copy(&z, v.Ptr())
	a.set(key, &z)
}

func (a *Array) SetIndex(i int64, v *Variant) {
	ht := a.table()
	if ht == nil {
		return
	}
	var z zend.Zval
	zend.Copy(&z, v.Ptr())
	ht.IndexUpdate(i, &z)
}

func (a *Array) SetNull(key string) {
	var z zend.Zval
	z.SetNull()
	a.set(key, &z)
}

func (a *Array) SetBool(key string, b bool) {
	var z zend.Zval
	z.SetBool(b)
	a.set(key, &z)
}

func (a *Array) SetInt(key string, i int64) {
	var z zend.Zval
	z.SetLong(i)
	a.set(key, &z)
}

func (a *Array) SetFloat(key string, f float64) {
	var z zend.Zval
	z.SetDouble(f)
	a.set(key, &z)
}

func (a *Array) SetString(key string, s string) {
	var z zend.Zval
	z.SetString(s)
	a.set(key, &z)
}

func (a *Array) SetBytes(key string, b []byte) {
	var z zend.Zval
	z.SetString(string(b))
	a.set(key, &z)
}

func found(slot *zend.Zval) *zend.Zval {
	if slot == nil {
		return nil
	}
	slot = direct(slot)
	if slot.IsUndef() {
		return nil
	}
	return slot
}

// Get returns a borrowing handle to the value under key, or a null handle
// when there is none.
func (a *Array) Get(key string) *Variant {
	ht := a.table()
	if ht == nil {
		return NewNull()
	}
	slot := found(ht.SymtableFind(key))
	if slot == nil {
		return NewNull()
	}
	return Borrow(slot)
}

func (a *Array) Index(i int64) *Variant {
	ht := a.table()
	if ht == nil {
		return NewNull()
	}
	slot := found(ht.IndexFind(i))
	if slot == nil {
		return NewNull()
	}
	return Borrow(slot)
}

func (a *Array) Exists(key string) bool {
	ht := a.table()
	return ht != nil && found(ht.SymtableFind(key)) != nil
}

func (a *Array) ExistsIndex(i int64) bool {
	ht := a.table()
	return ht != nil && found(ht.IndexFind(i)) != nil
}

// Remove deletes key and reports whether it was present.
func (a *Array) Remove(key string) bool {
	ht := a.table()
	return ht != nil && ht.SymtableDel(key)
}

func (a *Array) RemoveIndex(i int64) bool {
	ht := a.table()
	return ht != nil && ht.IndexDel(i)
}

func (a *Array) Clear() {
	if ht := a.table(); ht != nil {
		ht.Clean()
	}
}

func (a *Array) Count() int {
	ht := a.table()
	if ht == nil {
		return 0
	}
	return ht.Count()
}

// All iterates keys and values in insertion order. Both handles are only
// valid for one step; use Copy to keep them.
func (a *Array) All() iter.Seq2[*Variant, *Variant] {
	return func(yield func(*Variant, *Variant) bool) {
		for it, end := a.Begin(), a.End(); !it.Equal(end); it.Next() {
			key := it.Key()
			ok := yield(key, it.Value())
			key.Release()
			if !ok {
				return
			}
		}
	}
}
