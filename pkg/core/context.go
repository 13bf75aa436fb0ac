package core

import (
	"github.com/xiaq/persistent/hash"
	"github.com/xiaq/persistent/hashmap"
	"golang.org/x/exp/slices"
)

// Binding is what a Context knows about a name.
type Binding struct {
	Type Type
	// Value is the definition of the name, or nil if the name is only assumed
	// to have Type.
	Value Value
}

// Context is the typing context, mapping names to bindings. It is immutable:
// Assume and Define return extended copies that share structure with the
// receiver. The zero value is not usable; use NewContext.
type Context struct {
	m hashmap.Map
}

// Env is the evaluation environment, mapping names to values. Like Context, it
// is immutable and the zero value is not usable; use NewEnv.
type Env struct {
	m hashmap.Map
}

var emptyNames = hashmap.New(equalName, hashName)

func equalName(k1, k2 any) bool { return k1 == k2 }

func hashName(k any) uint32 { return hash.String(k.(Name)) }

// NewContext returns an empty Context.
func NewContext() Context { return Context{emptyNames} }

// Assume returns a Context where name is an opaque variable of type t.
func (ctx Context) Assume(name Name, t Type) Context {
	return Context{ctx.m.Assoc(name, Binding{Type: t})}
}

// Define returns a Context where name is a variable of type t, defined as v.
func (ctx Context) Define(name Name, t Type, v Value) Context {
	return Context{ctx.m.Assoc(name, Binding{Type: t, Value: v})}
}

// Lookup returns the binding of a name.
func (ctx Context) Lookup(name Name) (Binding, bool) {
	b, ok := ctx.m.Index(name)
	if !ok {
		return Binding{}, false
	}
	return b.(Binding), true
}

// Len returns the number of names bound in the Context.
func (ctx Context) Len() int { return ctx.m.Len() }

// Names returns all the bound names, sorted.
func (ctx Context) Names() []Name {
	names := make([]Name, 0, ctx.m.Len())
	for it := ctx.m.Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		names = append(names, k.(Name))
	}
	slices.Sort(names)
	return names
}

// Env returns the environment for evaluating terms under the Context. Only
// defined names are included; assumed names evaluate to neutral variables.
func (ctx Context) Env() Env {
	env := NewEnv()
	for it := ctx.m.Iterator(); it.HasElem(); it.Next() {
		k, b := it.Elem()
		if v := b.(Binding).Value; v != nil {
			env = env.Bind(k.(Name), v)
		}
	}
	return env
}

// NewEnv returns an empty Env.
func NewEnv() Env { return Env{emptyNames} }

// Bind returns an Env where name has value v.
func (env Env) Bind(name Name, v Value) Env {
	return Env{env.m.Assoc(name, v)}
}

// Lookup returns the value of a name.
func (env Env) Lookup(name Name) (Value, bool) {
	v, ok := env.m.Index(name)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// Len returns the number of names bound in the Env.
func (env Env) Len() int { return env.m.Len() }
