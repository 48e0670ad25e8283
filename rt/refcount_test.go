package rt

import (
	"strings"
	"testing"
)

// countingType builds a tracked category whose deallocation callback
// increments *fired and then releases the slot array.
func countingType(name string, fired *int) *TypeDesc {
	return &TypeDesc{
		Name:      name,
		BasicSize: headerSize,
		Flags:     FlagGCTracked,
		Dealloc: func(o *Object) {
			*fired++
			ReleaseSlots(o)
		},
	}
}

func newLockedRuntime(t *testing.T) *Runtime {
	t.Helper()
	r := NewRuntime()
	r.Lock()
	t.Cleanup(r.Unlock)
	return r
}

// ---------------------------------------------------------------------------
// Retain/Release tests
// ---------------------------------------------------------------------------

func TestRetainReleaseBalanced(t *testing.T) {
	r := newLockedRuntime(t)

	fired := 0
	o := r.NewObject(countingType("Probe", &fired), 0)

	before := RefCount(o)
	Retain(o)
	Release(o)

	if got := RefCount(o); got != before {
		t.Errorf("refcount = %d after balanced retain/release, want %d", got, before)
	}
	if fired != 0 {
		t.Errorf("deallocation fired %d times, want 0", fired)
	}

	Release(o)
	if fired != 1 {
		t.Errorf("deallocation fired %d times after final release, want 1", fired)
	}
}

func TestReleaseFinalizesExactlyOnce(t *testing.T) {
	r := newLockedRuntime(t)

	fired := 0
	o := r.NewObject(countingType("Once", &fired), 0)

	if got := RefCount(o); got != 1 {
		t.Fatalf("fresh object refcount = %d, want 1", got)
	}
	Release(o)
	if fired != 1 {
		t.Errorf("deallocation fired %d times, want exactly 1", fired)
	}
}

// Two retains on a fresh object, then three releases; the callback must
// fire on the third release only.
func TestThreeReleasesFireOnThird(t *testing.T) {
	r := newLockedRuntime(t)

	fired := 0
	o := r.NewObject(countingType("Trio", &fired), 0)

	Retain(o)
	Retain(o)
	if got := RefCount(o); got != 3 {
		t.Fatalf("refcount = %d after two retains, want 3", got)
	}

	Release(o)
	Release(o)
	if fired != 0 {
		t.Fatalf("deallocation fired early (%d times)", fired)
	}
	Release(o)
	if fired != 1 {
		t.Errorf("deallocation fired %d times, want 1", fired)
	}
}

func TestReleaseDeadObjectPanics(t *testing.T) {
	r := newLockedRuntime(t)

	fired := 0
	o := r.NewObject(countingType("Dead", &fired), 0)
	Release(o)

	defer func() {
		msg, ok := recover().(string)
		if !ok {
			t.Fatal("expected panic on double release")
		}
		if !strings.Contains(msg, "already dead") {
			t.Errorf("panic message = %q, want mention of dead object", msg)
		}
	}()
	Release(o)
}

func TestSafeVariantsTolerateNil(t *testing.T) {
	RetainSafe(nil)
	ReleaseSafe(nil)

	r := newLockedRuntime(t)
	o := r.NewBox(7)
	RetainSafe(o)
	if got := RefCount(o); got != 2 {
		t.Errorf("refcount = %d after RetainSafe, want 2", got)
	}
	ReleaseSafe(o)
	if got := RefCount(o); got != 1 {
		t.Errorf("refcount = %d after ReleaseSafe, want 1", got)
	}
}

// ---------------------------------------------------------------------------
// Finalization tests
// ---------------------------------------------------------------------------

func TestFinalizeReleasesOwnedSlots(t *testing.T) {
	r := newLockedRuntime(t)

	fired := 0
	elem := r.NewObject(countingType("Elem", &fired), 0)
	tup := r.NewTuple(elem, elem)

	if got := RefCount(elem); got != 3 {
		t.Fatalf("element refcount = %d after tuple creation, want 3", got)
	}

	// Drop our reference; the tuple keeps the element alive.
	Release(elem)
	if fired != 0 {
		t.Fatal("element finalized while tuple still owns it")
	}

	Release(tup)
	if fired != 1 {
		t.Errorf("element deallocation fired %d times after tuple release, want 1", fired)
	}
}

func TestSetSlotReleasesPreviousOccupant(t *testing.T) {
	r := newLockedRuntime(t)

	fired := 0
	a := r.NewObject(countingType("A", &fired), 0)
	b := r.NewBox("b")
	tup := r.NewTuple(a)
	Release(a) // tuple holds the only reference now

	tup.SetSlot(0, b)
	if fired != 1 {
		t.Errorf("previous occupant finalized %d times, want 1", fired)
	}
	if got := RefCount(b); got != 2 {
		t.Errorf("new occupant refcount = %d, want 2", got)
	}

	// Self-assignment must not finalize the occupant.
	tup.SetSlot(0, b)
	if got := RefCount(b); got != 2 {
		t.Errorf("refcount = %d after self-assignment, want 2", got)
	}

	Release(tup)
	Release(b)
}

func TestDictReleasesValues(t *testing.T) {
	r := newLockedRuntime(t)

	fired := 0
	v := r.NewObject(countingType("V", &fired), 0)
	d := r.NewDict(map[string]*Object{"k": v})
	Release(v)

	got, ok := DictGet(d, "k")
	if !ok || got == nil {
		t.Fatal("DictGet lost the entry")
	}
	if DictLen(d) != 1 {
		t.Fatalf("DictLen = %d, want 1", DictLen(d))
	}

	Release(d)
	if fired != 1 {
		t.Errorf("dict value finalized %d times, want 1", fired)
	}
}
