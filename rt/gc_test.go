package rt

import (
	"testing"
)

// ---------------------------------------------------------------------------
// Tracking ring tests
// ---------------------------------------------------------------------------

func TestUntrackIdempotent(t *testing.T) {
	r := newLockedRuntime(t)

	o := r.NewTuple()
	if !Tracked(o) {
		t.Fatal("fresh tuple not tracked")
	}

	Untrack(o)
	if Tracked(o) {
		t.Fatal("object still tracked after Untrack")
	}
	count := r.TrackedCount()

	// Second untrack is a no-op, not an error.
	Untrack(o)
	if Tracked(o) {
		t.Error("object re-tracked by second Untrack")
	}
	if got := r.TrackedCount(); got != count {
		t.Errorf("TrackedCount = %d after repeated Untrack, want %d", got, count)
	}

	Release(o)
}

func TestTrackIdempotent(t *testing.T) {
	r := newLockedRuntime(t)

	o := r.NewTuple()
	before := r.TrackedCount()
	r.Track(o)
	if got := r.TrackedCount(); got != before {
		t.Errorf("TrackedCount = %d after redundant Track, want %d", got, before)
	}
	Release(o)
}

func TestTrackedCountFollowsLifecycle(t *testing.T) {
	r := newLockedRuntime(t)

	base := r.TrackedCount()
	objs := make([]*Object, 5)
	for i := range objs {
		objs[i] = r.NewTuple()
	}
	if got := r.TrackedCount(); got != base+5 {
		t.Fatalf("TrackedCount = %d, want %d", got, base+5)
	}

	for _, o := range objs {
		Release(o)
	}
	if got := r.TrackedCount(); got != base {
		t.Errorf("TrackedCount = %d after releases, want %d", got, base)
	}
}

// An object may be detached during its own finalization sequence: the
// deallocation callback runs after the count has reached zero, and an
// explicit Untrack there must be a harmless no-op that leaves the ring
// consistent for the remaining tracked objects.
func TestUntrackDuringFinalize(t *testing.T) {
	r := newLockedRuntime(t)

	fired := 0
	selfUntracking := &TypeDesc{
		Name:      "SelfUntracking",
		BasicSize: headerSize,
		Flags:     FlagGCTracked,
		Dealloc: func(o *Object) {
			if got := RefCount(o); got != 0 {
				t.Errorf("refcount = %d inside deallocation, want 0", got)
			}
			Untrack(o)
			fired++
			ReleaseSlots(o)
		},
	}

	before := r.NewTuple()
	b := r.NewObject(selfUntracking, 0)
	after := r.NewTuple()

	base := r.TrackedCount()
	Release(b)
	if fired != 1 {
		t.Fatalf("deallocation fired %d times, want 1", fired)
	}
	if got := r.TrackedCount(); got != base-1 {
		t.Errorf("TrackedCount = %d after finalize, want %d", got, base-1)
	}

	// Neighbors must still be reachable through the ring.
	seen := map[*Object]bool{}
	r.EachTracked(func(o *Object) bool {
		seen[o] = true
		return true
	})
	if !seen[before] || !seen[after] {
		t.Error("tracking ring lost a neighbor of the finalized object")
	}

	Release(before)
	Release(after)
}

func TestEachTrackedToleratesUntrack(t *testing.T) {
	r := newLockedRuntime(t)

	a := r.NewTuple()
	b := r.NewTuple()
	c := r.NewTuple()

	visited := 0
	r.EachTracked(func(o *Object) bool {
		visited++
		Untrack(o)
		return true
	})
	if visited != 3 {
		t.Errorf("visited %d objects, want 3", visited)
	}
	if got := r.TrackedCount(); got != 0 {
		t.Errorf("TrackedCount = %d after untracking walk, want 0", got)
	}

	Release(a)
	Release(b)
	Release(c)
}

func TestEachTrackedEarlyStop(t *testing.T) {
	r := newLockedRuntime(t)

	a := r.NewTuple()
	b := r.NewTuple()

	visited := 0
	r.EachTracked(func(*Object) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("visited %d objects with early stop, want 1", visited)
	}

	Release(a)
	Release(b)
}
