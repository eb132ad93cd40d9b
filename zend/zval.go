package zend

import "fmt"

type Type uint8

const (
	TypeUndef Type = iota
	TypeNull
	TypeFalse
	TypeTrue
	TypeLong
	TypeDouble
	TypeString
	TypeArray
	TypeObject
	TypeResource
	TypeReference
	// TypeIndirect records point at another record; hash tables use them to
	// expose slots owned by someone else.
	TypeIndirect
)

func (t Type) String() string {
	switch t {
	case TypeUndef:
		return "undef"
	case TypeNull:
		return "null"
	case TypeFalse:
		return "false"
	case TypeTrue:
		return "true"
	case TypeLong:
		return "int"
	case TypeDouble:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeResource:
		return "resource"
	case TypeReference:
		return "reference"
	case TypeIndirect:
		return "indirect"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Zval is the fixed-size tagged value record. Plain assignment is a shallow
// copy that does not touch reference counts; use Copy for an owning copy.
//
// The Set methods overwrite the record without releasing what it held.
type Zval struct {
	typ      Type
	lval     int64
	dval     float64
	counted  Refcounted
	indirect *Zval
}

func (z *Zval) Type() Type {
	return z.typ
}

func (z *Zval) SetUndef() {
	*z = Zval{}
}

func (z *Zval) SetNull() {
	*z = Zval{typ: TypeNull}
}

func (z *Zval) SetBool(b bool) {
	if b {
		*z = Zval{typ: TypeTrue}
	} else {
		*z = Zval{typ: TypeFalse}
	}
}

func (z *Zval) SetFalse() {
	*z = Zval{typ: TypeFalse}
}

func (z *Zval) SetLong(i int64) {
	*z = Zval{typ: TypeLong, lval: i}
}

func (z *Zval) SetDouble(f float64) {
	*z = Zval{typ: TypeDouble, dval: f}
}

// SetString stores a freshly allocated string with refcount 1.
func (z *Zval) SetString(s string) {
	z.SetStr(NewString(s))
}

// SetStr stores s, taking over one reference.
func (z *Zval) SetStr(s *String) {
	*z = Zval{typ: TypeString, counted: s}
}

func (z *Zval) SetArray(ht *HashTable) {
	*z = Zval{typ: TypeArray, counted: ht}
}

func (z *Zval) SetObject(o *Object) {
	*z = Zval{typ: TypeObject, counted: o}
}

func (z *Zval) SetResource(r *Resource) {
	*z = Zval{typ: TypeResource, counted: r}
}

func (z *Zval) SetReference(r *Reference) {
	*z = Zval{typ: TypeReference, counted: r}
}

func (z *Zval) SetIndirect(target *Zval) {
	*z = Zval{typ: TypeIndirect, indirect: target}
}

func (z *Zval) IsUndef() bool {
	return z.typ == TypeUndef
}

func (z *Zval) Long() int64 {
	if z.typ != TypeLong {
		return 0
	}
	return z.lval
}

func (z *Zval) Double() float64 {
	if z.typ != TypeDouble {
		return 0
	}
	return z.dval
}

func (z *Zval) Bool() bool {
	return z.typ == TypeTrue
}

func (z *Zval) Str() *String {
	s, _ := z.counted.(*String)
	return s
}

func (z *Zval) Array() *HashTable {
	ht, _ := z.counted.(*HashTable)
	return ht
}

func (z *Zval) Object() *Object {
	o, _ := z.counted.(*Object)
	return o
}

func (z *Zval) Resource() *Resource {
	r, _ := z.counted.(*Resource)
	return r
}

func (z *Zval) Reference() *Reference {
	r, _ := z.counted.(*Reference)
	return r
}

func (z *Zval) Indirect() *Zval {
	if z.typ != TypeIndirect {
		return nil
	}
	return z.indirect
}

func (z *Zval) Counted() Refcounted {
	return z.counted
}

// Deref follows indirect records and references to the value record.
func (z *Zval) Deref() *Zval {
	for {
		switch z.typ {
		case TypeIndirect:
			z = z.indirect
		case TypeReference:
			z = &z.counted.(*Reference).Val
		default:
			return z
		}
	}
}

// IsRefcounted reports whether copies of z must be paired with AddRef and PtrDtor.
func (z *Zval) IsRefcounted() bool {
	if z.counted == nil {
		return false
	}
	return !z.counted.header().immutable
}

// Refcount returns the reference count of the heap payload, or 0 when z has none.
func (z *Zval) Refcount() uint32 {
	if z.counted == nil {
		return 0
	}
	return z.counted.header().refcount
}
