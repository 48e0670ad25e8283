package rt

import (
	"fmt"
	"unsafe"
)

// Storage units for the builtin descriptors. Sizes are declared, not
// measured: map and slice backing storage is not part of an object's
// declared size.
const (
	headerSize = unsafe.Sizeof(Object{})
	slotSize   = unsafe.Sizeof((*Object)(nil))
)

// registerBuiltinTypes installs the categories every runtime provides.
func (r *Runtime) registerBuiltinTypes() {
	r.TupleType = &TypeDesc{
		Name:      "Tuple",
		BasicSize: headerSize,
		ItemSize:  slotSize,
		Flags:     FlagGCTracked | FlagVarSize,
	}
	r.DictType = &TypeDesc{
		Name:      "Dict",
		BasicSize: headerSize,
		Flags:     FlagGCTracked,
		Dealloc:   dictDealloc,
	}
	r.FuncType = &TypeDesc{
		Name:       "Func",
		BasicSize:  headerSize,
		Flags:      FlagCallable | FlagVectorcall,
		Call:       funcCall,
		Vectorcall: funcVectorcall,
	}
	r.FallbackFuncType = &TypeDesc{
		Name:      "FallbackFunc",
		BasicSize: headerSize,
		Flags:     FlagCallable,
		Call:      funcCall,
	}
	r.BoxType = &TypeDesc{
		Name:      "Box",
		BasicSize: headerSize,
	}
}

// ---------------------------------------------------------------------------
// Tuple: ordered, fixed-length sequence of owned references
// ---------------------------------------------------------------------------

// NewTuple allocates a tuple holding the given elements. The tuple takes
// its own reference to each non-nil element.
func (r *Runtime) NewTuple(elems ...*Object) *Object {
	o := r.NewObject(r.TupleType, len(elems))
	for i, e := range elems {
		RetainSafe(e)
		o.slots[i] = e
	}
	return o
}

// TupleItems returns the tuple's element slice. Borrowed: the slice and
// its references belong to the tuple.
func TupleItems(t Ref) []*Object {
	return t.Header().slots
}

// ---------------------------------------------------------------------------
// Dict: string-keyed mapping of owned references
// ---------------------------------------------------------------------------

// NewDict allocates a dict holding the given entries. The dict takes its
// own reference to each non-nil value; key order is irrelevant.
func (r *Runtime) NewDict(entries map[string]*Object) *Object {
	o := r.NewObject(r.DictType, 0)
	m := make(map[string]*Object, len(entries))
	for k, v := range entries {
		RetainSafe(v)
		m[k] = v
	}
	o.data = m
	return o
}

// DictGet returns the value stored under key. Borrowed reference.
func DictGet(d Ref, key string) (*Object, bool) {
	m, _ := d.Header().data.(map[string]*Object)
	v, ok := m[key]
	return v, ok
}

// DictLen returns the number of entries.
func DictLen(d Ref) int {
	m, _ := d.Header().data.(map[string]*Object)
	return len(m)
}

func dictItems(d *Object) map[string]*Object {
	if d == nil {
		return nil
	}
	m, _ := d.data.(map[string]*Object)
	return m
}

func dictDealloc(o *Object) {
	m, _ := o.data.(map[string]*Object)
	for k, v := range m {
		delete(m, k)
		ReleaseSafe(v)
	}
	ReleaseSlots(o)
}

// ---------------------------------------------------------------------------
// Func: native callables
// ---------------------------------------------------------------------------

// FuncImpl is the native implementation behind a Func object. Arguments
// and keyword values are borrowed; the returned object must carry a new
// reference owned by the caller.
type FuncImpl func(args []*Object, kwargs map[string]*Object) (*Object, error)

type funcState struct {
	name  string
	arity int // exact positional count; negative means variadic + keywords
	impl  FuncImpl
}

// NewFunc allocates a callable with a vectorcall entry point. An arity of
// 0 or more declares an exact positional count and rejects keywords; a
// negative arity accepts any positional count plus keywords.
func (r *Runtime) NewFunc(name string, arity int, impl FuncImpl) *Object {
	return r.newFunc(r.FuncType, name, arity, impl)
}

// NewFallbackFunc allocates a callable that only exposes the generic call
// path. Behaviorally identical to NewFunc with the same implementation;
// it exists so the two invocation paths can be compared.
func (r *Runtime) NewFallbackFunc(name string, arity int, impl FuncImpl) *Object {
	return r.newFunc(r.FallbackFuncType, name, arity, impl)
}

func (r *Runtime) newFunc(t *TypeDesc, name string, arity int, impl FuncImpl) *Object {
	if impl == nil {
		panic("rt.NewFunc: nil implementation")
	}
	o := r.NewObject(t, 0)
	o.data = &funcState{name: name, arity: arity, impl: impl}
	return o
}

// FuncName returns the name a callable was registered under.
func FuncName(f Ref) string {
	st, _ := f.Header().data.(*funcState)
	if st == nil {
		return "?"
	}
	return st.name
}

func (st *funcState) invoke(args []*Object, kwargs map[string]*Object) (*Object, error) {
	if st.arity >= 0 {
		if len(args) != st.arity {
			return nil, &InvocationError{
				Callable: st.name,
				Reason:   fmt.Sprintf("takes %d positional arguments, got %d", st.arity, len(args)),
			}
		}
		if len(kwargs) > 0 {
			return nil, &InvocationError{Callable: st.name, Reason: "does not accept keyword arguments"}
		}
	}
	return st.impl(args, kwargs)
}

func funcVectorcall(callee *Object, args []*Object, kwargs map[string]*Object) (*Object, error) {
	return callee.data.(*funcState).invoke(args, kwargs)
}

func funcCall(callee *Object, args *Object, kwargs *Object) (*Object, error) {
	return callee.data.(*funcState).invoke(TupleItems(args), dictItems(kwargs))
}

// ---------------------------------------------------------------------------
// Box: fixed-size wrapper around a native value
// ---------------------------------------------------------------------------

// NewBox allocates a box holding an arbitrary native value.
func (r *Runtime) NewBox(v any) *Object {
	o := r.NewObject(r.BoxType, 0)
	o.data = v
	return o
}

// BoxValue returns the native value held by a box, or nil for a finalized
// or non-box object.
func BoxValue(b Ref) any {
	return b.Header().data
}
