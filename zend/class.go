package zend

// Handler is the native entry point signature of every host function.
// ret is initialised to null before the call.
type Handler func(ex *ExecuteData, ret *Zval)

type Function struct {
	name    string
	handler Handler
	scope   *ClassEntry
}

func (f *Function) Name() string {
	return f.name
}

// Scope returns the class declaring the function, nil for free functions.
func (f *Function) Scope() *ClassEntry {
	return f.scope
}

// ExecuteData is the call frame handed to a Handler. The frame owns one
// reference to each argument and to This for the duration of the call.
type ExecuteData struct {
	engine *Engine
	fn     *Function
	this   Zval
	args   []Zval
}

func (ex *ExecuteData) Engine() *Engine {
	return ex.engine
}

func (ex *ExecuteData) Func() *Function {
	return ex.fn
}

func (ex *ExecuteData) NumArgs() int {
	return len(ex.args)
}

// Arg returns the i-th argument slot (0-based), nil when out of range.
func (ex *ExecuteData) Arg(i int) *Zval {
	if i < 0 || i >= len(ex.args) {
		return nil
	}
	return &ex.args[i]
}

// This returns the bound instance, nil for free functions.
func (ex *ExecuteData) This() *Object {
	return ex.this.Object()
}

const (
	MagicConstruct = "__construct"
	MagicDestruct  = "__destruct"
	MagicGet       = "__get"
	MagicSet       = "__set"
	MagicInvoke    = "__invoke"
)

// ClassEntry is the runtime metadata of a declared class.
type ClassEntry struct {
	name       string
	parent     *ClassEntry
	engine     *Engine
	abstract   bool
	properties *HashTable
	methods    map[string]*Function
}

func (c *ClassEntry) Name() string {
	return c.name
}

func (c *ClassEntry) Parent() *ClassEntry {
	return c.parent
}

func (c *ClassEntry) Engine() *Engine {
	return c.engine
}

func (c *ClassEntry) IsAbstract() bool {
	return c.abstract
}

func (c *ClassEntry) SetAbstract(abstract bool) *ClassEntry {
	c.abstract = abstract
	return c
}

// DeclareProperty adds a default property, taking over the reference def holds.
func (c *ClassEntry) DeclareProperty(name string, def *Zval) *ClassEntry {
	c.properties.Update(name, def)
	return c
}

// DefaultProperties returns the template copied into every new instance.
func (c *ClassEntry) DefaultProperties() *HashTable {
	return c.properties
}

func (c *ClassEntry) DeclareMethod(name string, handler Handler) *ClassEntry {
	c.methods[c.engine.FoldName(name)] = &Function{
		name:    name,
		handler: handler,
		scope:   c,
	}
	return c
}

// Method resolves name against this class and its ancestors.
func (c *ClassEntry) Method(name string) *Function {
	key := c.engine.FoldName(name)
	for ce := c; ce != nil; ce = ce.parent {
		if fn, ok := ce.methods[key]; ok {
			return fn
		}
	}
	return nil
}

func (c *ClassEntry) Constructor() *Function {
	return c.Method(MagicConstruct)
}

func (c *ClassEntry) Destructor() *Function {
	return c.Method(MagicDestruct)
}

func (c *ClassEntry) InstanceOf(other *ClassEntry) bool {
	for ce := c; ce != nil; ce = ce.parent {
		if ce == other {
			return true
		}
	}
	return false
}

// Object is an instance of a class.
type Object struct {
	RefHeader
	ce         *ClassEntry
	handle     uint32
	properties *HashTable
	destructed bool
	guards     map[string]uint8
}

const (
	guardGet uint8 = 1 << iota
	guardSet
)

func (o *Object) Class() *ClassEntry {
	return o.ce
}

func (o *Object) Handle() uint32 {
	return o.handle
}

func (o *Object) Properties() *HashTable {
	o.checkLive("object")
	return o.properties
}

func (o *Object) release() {
	if !o.destructed {
		o.destructed = true
		if fn := o.ce.Destructor(); fn != nil {
			// keep the instance alive while its destructor runs
			o.refcount = 1
			var this, ret Zval
			this.SetObject(o)
			o.ce.engine.invoke(fn, &this, &ret, nil)
			PtrDtor(&ret)
			o.refcount--
			if o.refcount > 0 {
				return
			}
		}
	}
	o.freed = true
	props := o.properties
	o.properties = nil
	PtrDtor(&Zval{typ: TypeArray, counted: props})
}
