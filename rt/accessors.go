package rt

// ---------------------------------------------------------------------------
// Read-only header accessors
//
// Every accessor takes a Ref and widens to *Object exactly once, so call
// sites can pass any category value without a manual cast.
// ---------------------------------------------------------------------------

// TypeOf returns the object's type descriptor. Never nil for a live object.
func TypeOf(r Ref) *TypeDesc {
	return r.Header().typ
}

// SizeOf returns the declared storage size of the object: BasicSize for
// fixed-size categories, BasicSize plus length×ItemSize for variable-length
// ones.
func SizeOf(r Ref) uintptr {
	o := r.Header()
	t := o.typ
	if t.ItemSize != 0 {
		return t.BasicSize + uintptr(o.length)*t.ItemSize
	}
	return t.BasicSize
}

// RefCount returns the current reference count. Purely observational: the
// value is stale the moment the domain lock is released and must never be
// used for synchronization.
func RefCount(r Ref) int64 {
	return r.Header().refcount
}

// IsExact reports whether the object's category is exactly t, with no
// regard for any wider relationship between categories.
func IsExact(r Ref, t *TypeDesc) bool {
	return r.Header().typ == t
}

// HasFeature reports whether the object's category has every flag in f.
func HasFeature(r Ref, f TypeFlags) bool {
	return r.Header().typ.Flags&f == f
}

func typeName(o *Object) string {
	if o == nil || o.typ == nil {
		return "?"
	}
	return o.typ.Name
}
