package zend

import "fmt"

// Refcounted is implemented by every heap payload a Zval can point to.
type Refcounted interface {
	header() *RefHeader
}

// RefHeader is embedded at the start of every heap payload.
type RefHeader struct {
	refcount  uint32
	immutable bool
	freed     bool
}

func (h *RefHeader) header() *RefHeader {
	return h
}

func (h *RefHeader) Refcount() uint32 {
	return h.refcount
}

func (h *RefHeader) IsImmutable() bool {
	return h.immutable
}

func (h *RefHeader) Freed() bool {
	return h.freed
}

func (h *RefHeader) checkLive(what string) {
	if h.freed {
		panic(fmt.Errorf("use of freed %s", what))
	}
}

// AddRef increments the reference count of the payload of z, if it has one.
func AddRef(z *Zval) {
	if z.counted == nil {
		return
	}
	h := z.counted.header()
	if h.immutable {
		return
	}
	h.checkLive(z.typ.String())
	h.refcount++
}

// PtrDtor drops one reference to the payload of z and frees it when the
// count reaches zero. Releasing a payload that is already freed panics.
func PtrDtor(z *Zval) {
	if z.counted == nil {
		return
	}
	h := z.counted.header()
	if h.immutable {
		return
	}
	if h.freed || h.refcount == 0 {
		panic(fmt.Errorf("refcount underflow on %s", z.typ))
	}
	h.refcount--
	if h.refcount > 0 {
		return
	}
	switch c := z.counted.(type) {
	case *String:
		c.freed = true
	case *HashTable:
		c.destroy()
	case *Object:
		c.release()
	case *Resource:
		c.close()
	case *Reference:
		c.freed = true
		PtrDtor(&c.Val)
	}
}

// Copy makes dst a shallow copy of src holding its own reference.
func Copy(dst, src *Zval) {
	*dst = *src
	AddRef(dst)
}
