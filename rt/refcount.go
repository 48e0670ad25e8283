package rt

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// Retain/Release: the reference count protocol
//
// These are true functions, not expansion tricks: each evaluates its
// argument exactly once and mutates the count exactly once. Failure modes
// (nil object, dead object, count underflow) are programmer errors and
// panic rather than returning an error, because continuing would operate
// on a corrupted object graph.
// ---------------------------------------------------------------------------

// Retain increments r's reference count by exactly one.
// r must reference a live object and the caller must hold the domain lock.
func Retain(r Ref) {
	o := r.Header()
	checkLive(o, "rt.Retain")
	o.refcount++
}

// Release decrements r's reference count by exactly one. On the 1→0
// transition the object is finalized: untracked, its deallocation callback
// run exactly once, and its owned references released.
// r must reference a live object and the caller must hold the domain lock.
func Release(r Ref) {
	o := r.Header()
	checkLive(o, "rt.Release")
	if o.refcount <= 0 {
		panic(fmt.Sprintf("rt.Release: %s object already dead (refcount %d)", typeName(o), o.refcount))
	}
	o.refcount--
	if o.refcount == 0 {
		finalize(o)
	}
}

// RetainSafe is Retain for optional references: it does nothing when o is
// nil. Callers routinely hold optional references, so the nil check lives
// here rather than at every call site.
func RetainSafe(o *Object) {
	if o == nil {
		return
	}
	Retain(o)
}

// ReleaseSafe is Release for optional references: it does nothing when o
// is nil.
func ReleaseSafe(o *Object) {
	if o == nil {
		return
	}
	Release(o)
}

// ---------------------------------------------------------------------------
// Finalization
// ---------------------------------------------------------------------------

// finalize runs the deallocation protocol for an object whose count just
// reached zero. Called only by Release; never invoked directly.
//
// The object is detached from the tracking ring first, so a deallocation
// callback that untracks again sees a harmless no-op.
func finalize(o *Object) {
	Untrack(o)
	if o.typ != nil && o.typ.Dealloc != nil {
		o.typ.Dealloc(o)
	} else {
		ReleaseSlots(o)
	}
	o.data = nil
}

// ReleaseSlots releases every owned slot reference and clears the slot
// array. This is the default deallocation behavior; custom Dealloc
// callbacks that own only their slots can call it directly.
func ReleaseSlots(r Ref) {
	o := r.Header()
	slots := o.slots
	o.slots = nil
	for i, s := range slots {
		slots[i] = nil
		ReleaseSafe(s)
	}
}
