package rt

// ---------------------------------------------------------------------------
// Invocation
//
// Invoke prefers the category's vectorcall entry point, which consumes the
// argument array directly. Categories without one go through the generic
// path, which assembles a temporary tuple (and dict, when keywords are
// present) and releases both before returning. The two paths must be
// observably equivalent: same result, same error, same reference-count
// deltas on arguments and result.
// ---------------------------------------------------------------------------

// Invoke calls the callable with the given positional arguments and
// keyword mapping. Arguments are borrowed; the returned object carries a
// new reference owned by the caller. A non-callable target or an
// incompatible argument shape yields an *InvocationError with no side
// effects on the arguments. The caller must hold the domain lock.
func (r *Runtime) Invoke(callable Ref, args []*Object, kwargs map[string]*Object) (*Object, error) {
	o := callable.Header()
	t := o.typ
	if !t.Callable() {
		return nil, errNotCallable(o)
	}
	if t.Flags&FlagVectorcall != 0 && t.Vectorcall != nil {
		r.stats.FastCalls++
		return t.Vectorcall(o, args, kwargs)
	}
	if t.Call == nil {
		return nil, errNotCallable(o)
	}
	return r.invokeGeneric(o, args, kwargs)
}

// CallOneArg is the single-positional-argument specialization of Invoke,
// observably equivalent to Invoke(callable, []*Object{arg}, nil). It exists
// because the one-argument case is hot enough to deserve an entry point
// that avoids building an argument slice at every call site.
func (r *Runtime) CallOneArg(callable Ref, arg *Object) (*Object, error) {
	o := callable.Header()
	t := o.typ
	if t.Callable() && t.Flags&FlagVectorcall != 0 && t.Vectorcall != nil {
		r.stats.FastCalls++
		one := [1]*Object{arg}
		return t.Vectorcall(o, one[:], nil)
	}
	return r.Invoke(callable, []*Object{arg}, nil)
}

// invokeGeneric packages the arguments into temporary aggregates and
// routes through the generic call path. The temporaries hold the only
// extra references taken on the arguments, and both are released before
// returning, so the caller observes the same reference-count deltas as the
// vectorcall path.
func (r *Runtime) invokeGeneric(o *Object, args []*Object, kwargs map[string]*Object) (*Object, error) {
	r.stats.FallbackCalls++
	tup := r.NewTuple(args...)
	var kw *Object
	if len(kwargs) > 0 {
		kw = r.NewDict(kwargs)
	}
	res, err := o.typ.Call(o, tup, kw)
	Release(tup)
	ReleaseSafe(kw)
	return res, err
}
