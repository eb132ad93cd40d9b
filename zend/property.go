package zend

// ReadProperty returns the record holding property name of obj.
//
// A declared or dynamic property is returned as a pointer to its slot. A
// value computed by __get is stored into rv and rv is returned; the caller
// owns it. An undefined property reports a warning and yields a shared null.
func (e *Engine) ReadProperty(obj *Object, name string, rv *Zval) *Zval {
	if slot := obj.Properties().Find(name); slot != nil {
		return slot.Deref()
	}
	if fn := obj.ce.Method(MagicGet); fn != nil && obj.guards[name]&guardGet == 0 {
		obj.setGuard(name, guardGet)
		defer obj.clearGuard(name, guardGet)
		var this, arg Zval
		this.SetObject(obj)
		arg.SetString(name)
		err := e.invoke(fn, &this, rv, []Zval{arg})
		PtrDtor(&arg)
		if err == nil {
			return rv
		}
	}
	e.Error(LevelWarning, "Undefined property: %s::$%s", obj.ce.name, name)
	e.uninitialized.SetNull()
	return &e.uninitialized
}

// UpdateProperty assigns value to property name of obj. value is borrowed;
// the property takes its own reference.
func (e *Engine) UpdateProperty(obj *Object, name string, value *Zval) {
	props := obj.Properties()
	if slot := props.Find(name); slot != nil {
		slot = slot.Deref()
		old := *slot
		Copy(slot, value.Deref())
		PtrDtor(&old)
		return
	}
	if fn := obj.ce.Method(MagicSet); fn != nil && obj.guards[name]&guardSet == 0 {
		obj.setGuard(name, guardSet)
		defer obj.clearGuard(name, guardSet)
		var this, arg, ret Zval
		this.SetObject(obj)
		arg.SetString(name)
		err := e.invoke(fn, &this, &ret, []Zval{arg, *value})
		PtrDtor(&arg)
		PtrDtor(&ret)
		if err == nil {
			return
		}
	}
	var v Zval
	Copy(&v, value.Deref())
	props.Update(name, &v)
}

func (o *Object) setGuard(name string, guard uint8) {
	if o.guards == nil {
		o.guards = make(map[string]uint8)
	}
	o.guards[name] |= guard
}

func (o *Object) clearGuard(name string, guard uint8) {
	o.guards[name] &^= guard
	if o.guards[name] == 0 {
		delete(o.guards, name)
	}
}
