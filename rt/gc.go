package rt

// ---------------------------------------------------------------------------
// GC tracking ring
//
// Tracked objects form an intrusive doubly-linked ring around a sentinel
// owned by the Runtime. Membership is recorded entirely in the object
// header links, so detachment needs no runtime pointer and works even
// while the object is being finalized.
// ---------------------------------------------------------------------------

// Track inserts the object into the runtime's tracking ring. No-op if the
// object is already tracked. The caller must hold the domain lock.
func (r *Runtime) Track(ref Ref) {
	o := ref.Header()
	if o.gcNext != nil {
		return
	}
	head := &r.gcAll
	o.gcPrev = head
	o.gcNext = head.gcNext
	head.gcNext.gcPrev = o
	head.gcNext = o
}

// Untrack detaches the object from its tracking ring. Idempotent: an
// already-untracked object is a no-op, not an error. Tolerates objects
// whose reference count has already reached zero, since finalization order
// can visit this step after the count transition. The caller must hold the
// domain lock.
func Untrack(ref Ref) {
	o := ref.Header()
	if o.gcNext == nil {
		return
	}
	o.gcPrev.gcNext = o.gcNext
	o.gcNext.gcPrev = o.gcPrev
	o.gcNext = nil
	o.gcPrev = nil
}

// Tracked reports whether the object is currently on a tracking ring.
func Tracked(ref Ref) bool {
	return ref.Header().gcNext != nil
}

// TrackedCount walks the ring and returns the number of tracked objects.
// Diagnostic use only; cost is linear in the number of tracked objects.
func (r *Runtime) TrackedCount() int {
	n := 0
	for o := r.gcAll.gcNext; o != &r.gcAll; o = o.gcNext {
		n++
	}
	return n
}

// EachTracked calls fn for every tracked object until fn returns false.
// The next link is read before fn runs, so fn may untrack (or release and
// thereby finalize) the object it was handed.
func (r *Runtime) EachTracked(fn func(*Object) bool) {
	for o := r.gcAll.gcNext; o != &r.gcAll; {
		next := o.gcNext
		if !fn(o) {
			return
		}
		o = next
	}
}
