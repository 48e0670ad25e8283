package rt

// Object is the header shared by every runtime-managed value.
//
// The header carries the reference count, the type descriptor, the
// intrusive GC tracking links, and the owned-reference slots released at
// finalization. Category structs embed Object as their first field and are
// widened back to *Object through the Ref interface.
type Object struct {
	refcount int64
	typ      *TypeDesc

	// Tracking ring links. Both nil while untracked; a tracked object
	// always has non-nil neighbors because the ring has a sentinel.
	gcPrev *Object
	gcNext *Object

	// Owned references, released during finalization.
	slots []*Object

	// Item count for variable-length categories (FlagVarSize).
	length int

	// Native payload: callable state, boxed scalars. Opaque to the core.
	data any
}

// Ref is implemented by any value that embeds an object header.
//
// Ref is the widening adapter: public operations accept a Ref, widen to
// *Object exactly once, and never evaluate their argument again. Callers
// can therefore pass any category value without a manual cast.
type Ref interface {
	Header() *Object
}

// Header returns the object itself. This makes *Object satisfy Ref and
// gives every embedding category struct the widening method for free.
func (o *Object) Header() *Object { return o }

// ---------------------------------------------------------------------------
// Slot access
// ---------------------------------------------------------------------------

// NumSlots returns the number of owned reference slots.
func (o *Object) NumSlots() int { return len(o.slots) }

// Slot returns the owned reference at index i (may be nil). The reference
// is borrowed; retain it before storing it anywhere that outlives o.
func (o *Object) Slot(i int) *Object { return o.slots[i] }

// SetSlot stores v at slot i, taking a reference to v and releasing the
// previous occupant. Safe for self-assignment.
func (o *Object) SetSlot(i int, v *Object) {
	old := o.slots[i]
	RetainSafe(v)
	o.slots[i] = v
	ReleaseSafe(old)
}

// Length returns the item count for variable-length categories, 0 for
// fixed-size categories.
func (o *Object) Length() int { return o.length }
