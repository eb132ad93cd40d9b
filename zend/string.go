package zend

// String is a reference-counted byte string.
type String struct {
	RefHeader
	val string
}

func NewString(s string) *String {
	return &String{
		RefHeader: RefHeader{
			refcount: 1,
		},
		val: s,
	}
}

// InternedString returns an immutable string that ignores reference counting.
func InternedString(s string) *String {
	return &String{
		RefHeader: RefHeader{
			refcount:  1,
			immutable: true,
		},
		val: s,
	}
}

func (s *String) Val() string {
	s.checkLive("string")
	return s.val
}

func (s *String) Len() int {
	return len(s.val)
}

// Reference is a shared, reference-counted box around one record.
type Reference struct {
	RefHeader
	Val Zval
}

// NewReference boxes val, taking over the reference val holds.
func NewReference(val *Zval) *Reference {
	return &Reference{
		RefHeader: RefHeader{
			refcount: 1,
		},
		Val: *val,
	}
}

// MakeReference turns z into a reference to its former value in place.
func MakeReference(z *Zval) {
	if z.typ == TypeReference {
		return
	}
	z.SetReference(NewReference(z))
}

// Resource wraps an opaque host resource with a destructor.
type Resource struct {
	RefHeader
	handle   int
	typeName string
	ptr      any
	dtor     func(any)
}

func (r *Resource) Handle() int {
	return r.handle
}

func (r *Resource) TypeName() string {
	return r.typeName
}

func (r *Resource) Ptr() any {
	r.checkLive("resource")
	return r.ptr
}

func (r *Resource) close() {
	r.freed = true
	if r.dtor != nil {
		r.dtor(r.ptr)
	}
	r.ptr = nil
}
