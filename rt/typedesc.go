package rt

// TypeFlags describes capabilities of an object category.
type TypeFlags uint32

const (
	// FlagGCTracked objects join the runtime's tracking ring at allocation.
	FlagGCTracked TypeFlags = 1 << iota

	// FlagVectorcall marks categories whose Vectorcall entry point is valid.
	FlagVectorcall

	// FlagVarSize marks variable-length categories (ItemSize != 0).
	FlagVarSize

	// FlagCallable marks categories whose instances can be invoked.
	FlagCallable
)

// VectorcallFunc invokes a callable directly from the argument array,
// avoiding temporary aggregate construction. Arguments are borrowed: the
// callee takes no reference of its own, and the returned object carries a
// new reference owned by the caller.
type VectorcallFunc func(callee *Object, args []*Object, kwargs map[string]*Object) (*Object, error)

// CallFunc is the generic call path. args is always a tuple object and
// kwargs a dict object or nil, assembled (and later released) by the
// invoker. The returned object carries a new reference owned by the caller.
type CallFunc func(callee *Object, args *Object, kwargs *Object) (*Object, error)

// TypeDesc is the shared descriptor for a category of objects. A
// descriptor outlives every instance of its category and is never mutated
// after registration.
type TypeDesc struct {
	Name string

	// BasicSize is the fixed storage size; ItemSize, when nonzero, is the
	// per-item size of variable-length instances.
	BasicSize uintptr
	ItemSize  uintptr

	Flags TypeFlags

	// Dealloc releases an instance's owned sub-references when its count
	// reaches zero. When nil, the default releases the slot array. Invoked
	// exactly once per instance, only by the release protocol.
	Dealloc func(*Object)

	// Call is the generic invocation path; Vectorcall, when present and
	// FlagVectorcall is set, must be observably equivalent to Call with
	// the same arguments.
	Call       CallFunc
	Vectorcall VectorcallFunc
}

// Callable reports whether instances of this category can be invoked.
func (t *TypeDesc) Callable() bool {
	return t != nil && t.Flags&FlagCallable != 0
}
