package rt

import (
	"sync"
	"sync/atomic"
)

// Stats holds per-runtime counters. Counters are maintained under the
// domain lock; read a copy via Runtime.Stats.
type Stats struct {
	Allocs        uint64 // objects initialized through this runtime
	FastCalls     uint64 // invocations routed through a vectorcall entry
	FallbackCalls uint64 // invocations routed through the generic path
}

// Runtime is the execution domain: the domain lock, the GC tracking ring,
// and the builtin type descriptors.
//
// All lifetime, accessor, and tracking operations in this package require
// the domain lock to be held by the calling goroutine. The lock is a
// single domain-wide mutex, not a per-object lock, and no operation
// acquires it internally.
type Runtime struct {
	mu     sync.Mutex
	locked atomic.Bool // for AssertHeld and TryLock diagnostics

	// Tracking ring sentinel. Its links always point at ring members (or
	// itself when the ring is empty) and its other header fields are unused.
	gcAll Object

	// Builtin categories, registered once at construction.
	TupleType        *TypeDesc
	DictType         *TypeDesc
	FuncType         *TypeDesc
	FallbackFuncType *TypeDesc
	BoxType          *TypeDesc

	stats Stats
}

// NewRuntime creates a runtime with an empty tracking ring and the builtin
// categories registered.
func NewRuntime() *Runtime {
	r := &Runtime{}
	r.gcAll.gcNext = &r.gcAll
	r.gcAll.gcPrev = &r.gcAll
	r.registerBuiltinTypes()
	return r
}

// ---------------------------------------------------------------------------
// Domain lock
// ---------------------------------------------------------------------------

// Lock acquires the domain lock. Blocks if another goroutine holds it.
func (r *Runtime) Lock() {
	r.mu.Lock()
	r.locked.Store(true)
}

// Unlock releases the domain lock.
func (r *Runtime) Unlock() {
	r.locked.Store(false)
	r.mu.Unlock()
}

// TryLock acquires the domain lock without blocking.
// Returns true if acquired.
func (r *Runtime) TryLock() bool {
	if !r.mu.TryLock() {
		return false
	}
	r.locked.Store(true)
	return true
}

// AssertHeld panics in debug builds when the domain lock is free. A no-op
// in normal builds.
func (r *Runtime) AssertHeld() {
	if debugChecks && !r.locked.Load() {
		panic("rt: domain lock not held")
	}
}

// ---------------------------------------------------------------------------
// Allocation
// ---------------------------------------------------------------------------

// NewObject allocates a bare object of category t with reference count 1,
// tracking it when the category requires it. length is the item count for
// variable-length categories and must be 0 otherwise.
func (r *Runtime) NewObject(t *TypeDesc, length int) *Object {
	return r.InitObject(&Object{}, t, length)
}

// InitObject initializes the embedded header of a category value allocated
// by the caller: reference count 1, type t, slots sized for variable-length
// categories, tracked when the category requires it. Returns the header.
func (r *Runtime) InitObject(ref Ref, t *TypeDesc, length int) *Object {
	if t == nil {
		panic("rt.InitObject: nil type descriptor")
	}
	if length < 0 {
		panic("rt.InitObject: negative length")
	}
	if length > 0 && t.Flags&FlagVarSize == 0 {
		panic("rt.InitObject: length given for fixed-size category " + t.Name)
	}
	o := ref.Header()
	o.typ = t
	o.refcount = 1
	o.length = length
	if t.Flags&FlagVarSize != 0 {
		o.slots = make([]*Object, length)
	}
	if t.Flags&FlagGCTracked != 0 {
		r.Track(o)
	}
	r.stats.Allocs++
	return o
}

// Stats returns a copy of the runtime's counters.
func (r *Runtime) Stats() Stats {
	return r.stats
}
