package zend

import (
	"context"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/reusee/zendapi/logs"
	"golang.org/x/text/cases"
)

// Engine holds the executor globals: the function and class tables, the
// error reporting state and the request context diagnostics are logged with.
//
// An Engine is bound to one goroutine; nothing in it is synchronized.
type Engine struct {
	logger         logs.Logger
	errorReporting ErrorLevel
	newSpan        logs.NewSpan
	ctx            context.Context

	fold      cases.Caser
	functions map[string]*Function
	classes   map[string]*ClassEntry
	sealed    bool
	regexes   map[string]*regexp2.Regexp

	errorHooks    []func(Diagnostic)
	nextHandle    uint32
	nextResource  int
	uninitialized Zval
	callDepth     int
	maxCallDepth  int
}

const defaultMaxCallDepth = 512

func NewEngine(logger logs.Logger, errorReporting ErrorLevel) *Engine {
	e := &Engine{
		logger:         logger,
		errorReporting: errorReporting,
		ctx:            context.Background(),
		fold:           cases.Fold(),
		functions:      make(map[string]*Function),
		classes:        make(map[string]*ClassEntry),
		regexes:        make(map[string]*regexp2.Regexp),
		maxCallDepth:   defaultMaxCallDepth,
	}
	e.uninitialized.SetNull()
	if err := e.RegisterFunctions(standardFunctions); err != nil {
		panic(err)
	}
	return e
}

// FoldName returns the case-insensitive lookup key of a function or class name.
func (e *Engine) FoldName(name string) string {
	return e.fold.String(name)
}

func (e *Engine) Logger() logs.Logger {
	return e.logger
}

func (e *Engine) ErrorReporting() ErrorLevel {
	return e.errorReporting
}

func (e *Engine) SetErrorReporting(level ErrorLevel) {
	e.errorReporting = level
}

// Startup seals the function table. Functions can only be registered before.
func (e *Engine) Startup() {
	e.sealed = true
	e.logger.DebugContext(e.ctx, "engine startup",
		"functions", len(e.functions),
		"classes", len(e.classes),
	)
}

func (e *Engine) Started() bool {
	return e.sealed
}

// RequestStartup binds diagnostics to ctx, tagged with a fresh span.
func (e *Engine) RequestStartup(ctx context.Context) {
	if e.newSpan != nil {
		ctx, _ = e.newSpan(ctx, "")
	}
	e.ctx = ctx
}

func (e *Engine) RequestShutdown() {
	e.ctx = context.Background()
}

func (e *Engine) Context() context.Context {
	return e.ctx
}

// OnError registers a callback invoked for every reported diagnostic.
func (e *Engine) OnError(fn func(Diagnostic)) {
	e.errorHooks = append(e.errorHooks, fn)
}

// Error reports a diagnostic. Levels masked out by error reporting are dropped.
func (e *Engine) Error(level ErrorLevel, format string, args ...any) {
	if level&e.errorReporting == 0 {
		return
	}
	diagnostic := Diagnostic{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	}
	for _, hook := range e.errorHooks {
		hook(diagnostic)
	}
	e.logger.Log(e.ctx, level.slogLevel(), diagnostic.Message,
		"level", level.String(),
	)
}

type FunctionEntry struct {
	Name    string
	Handler Handler
}

// RegisterFunctions publishes entries to the function table. On a duplicate
// name the entries added by this call are rolled back.
func (e *Engine) RegisterFunctions(entries []FunctionEntry) error {
	if e.sealed {
		for _, entry := range entries {
			e.Error(LevelCoreWarning, "Function registration failed - function table is sealed - %s", entry.Name)
		}
		return ErrFunctionTableSealed
	}
	var added []string
	for _, entry := range entries {
		key := e.FoldName(entry.Name)
		if _, ok := e.functions[key]; ok {
			e.Error(LevelCoreWarning, "Function registration failed - duplicate name - %s", entry.Name)
			for _, key := range added {
				delete(e.functions, key)
			}
			return fmt.Errorf("%w: %s", ErrDuplicateFunction, entry.Name)
		}
		e.functions[key] = &Function{
			name:    entry.Name,
			handler: entry.Handler,
		}
		added = append(added, key)
	}
	return nil
}

func (e *Engine) LookupFunction(name string) *Function {
	return e.functions[e.FoldName(name)]
}

// DeclareClass adds a class. A parent's default properties are inherited.
func (e *Engine) DeclareClass(name string, parent *ClassEntry) (*ClassEntry, error) {
	key := e.FoldName(name)
	if _, ok := e.classes[key]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateClass, name)
	}
	ce := &ClassEntry{
		name:       name,
		parent:     parent,
		engine:     e,
		properties: NewHashTable(0),
		methods:    make(map[string]*Function),
	}
	if parent != nil {
		defaults := parent.properties
		for pos := range defaults.NumUsed() {
			bucket := defaults.Bucket(pos)
			if bucket.Val.IsUndef() {
				continue
			}
			var value Zval
			dupValue(&value, &bucket.Val)
			ce.properties.Update(bucket.Key.Val(), &value)
		}
	}
	e.classes[key] = ce
	return ce, nil
}

// LookupClass resolves a class name case-insensitively.
func (e *Engine) LookupClass(name string) *ClassEntry {
	name = strings.TrimPrefix(name, `\`)
	return e.classes[e.FoldName(name)]
}

// ObjectInitEx stores a new instance of ce in z. Default properties are
// copied into the instance, array defaults as fresh tables.
func (e *Engine) ObjectInitEx(z *Zval, ce *ClassEntry) error {
	if ce.abstract {
		e.Error(LevelError, "Cannot instantiate abstract class %s", ce.name)
		z.SetNull()
		return fmt.Errorf("%w: %s", ErrAbstractClass, ce.name)
	}
	e.nextHandle++
	object := &Object{
		RefHeader: RefHeader{
			refcount: 1,
		},
		ce:         ce,
		handle:     e.nextHandle,
		properties: NewHashTable(ce.properties.Count()),
	}
	defaults := ce.properties
	for pos := range defaults.NumUsed() {
		bucket := defaults.Bucket(pos)
		if bucket.Val.IsUndef() {
			continue
		}
		var value Zval
		dupValue(&value, &bucket.Val)
		object.properties.Update(bucket.Key.Val(), &value)
	}
	z.SetObject(object)
	return nil
}

// NewResource allocates a resource with refcount 1. dtor runs when the last
// reference is released.
func (e *Engine) NewResource(typeName string, ptr any, dtor func(any)) *Resource {
	e.nextResource++
	return &Resource{
		RefHeader: RefHeader{
			refcount: 1,
		},
		handle:   e.nextResource,
		typeName: typeName,
		ptr:      ptr,
		dtor:     dtor,
	}
}
