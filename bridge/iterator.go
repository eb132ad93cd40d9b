package bridge

import (
	"github.com/reusee/zendapi/zend"
)

// ArrayIterator walks the raw slots of an array in insertion order,
// skipping deleted ones. Modifying the array invalidates it.
type ArrayIterator struct {
	ht  *zend.HashTable
	pos int
}

// Begin returns an iterator at the first live slot.
func (a *Array) Begin() *ArrayIterator {
	it := &ArrayIterator{
		ht: a.table(),
	}
	it.skip()
	return it
}

// End returns an iterator one past the last slot.
func (a *Array) End() *ArrayIterator {
	it := &ArrayIterator{
		ht: a.table(),
	}
	if it.ht != nil {
		it.pos = it.ht.NumUsed()
	}
	return it
}

func (it *ArrayIterator) bucket() *zend.Bucket {
	if it.ht == nil {
		return nil
	}
	return it.ht.Bucket(it.pos)
}

func (it *ArrayIterator) skip() {
	for {
		b := it.bucket()
		if b == nil || !direct(&b.Val).IsUndef() {
			return
		}
		it.pos++
	}
}

func (it *ArrayIterator) Next() {
	if it.bucket() == nil {
		return
	}
	it.pos++
	it.skip()
}

// Equal reports whether both iterators are at the same slot of the same array.
func (it *ArrayIterator) Equal(other *ArrayIterator) bool {
	return it.ht == other.ht && it.pos == other.pos
}

// Key returns an owning handle to the key of the current slot, a string or
// an int.
func (it *ArrayIterator) Key() *Variant {
	b := it.bucket()
	if b == nil {
		return NewNull()
	}
	if b.Key != nil {
		return NewString(b.Key.Val())
	}
	return NewInt(b.H)
}

// Value returns a borrowing handle to the value of the current slot.
func (it *ArrayIterator) Value() *Variant {
	b := it.bucket()
	if b == nil {
		return NewNull()
	}
	return Borrow(&b.Val)
}
