// Package snapshot captures diagnostic snapshots of a runtime's tracked
// objects and encodes them as canonical CBOR.
//
// A snapshot is purely observational: capturing one never mutates
// reference counts or ring membership.
package snapshot

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/softglow/pyrite/rt"
)

// ObjectRecord describes one tracked object at capture time.
type ObjectRecord struct {
	ID       uint64 // capture-local identifier, starting at 1
	Type     string // type descriptor name
	RefCount int64
	Size     uint64   // declared size from the accessor layer
	Length   int      // item count for variable-length categories
	Slots    []uint64 // IDs of owned references; 0 for nil or untracked targets
}

// TypeRecord describes a type descriptor referenced by the snapshot.
type TypeRecord struct {
	Name      string
	BasicSize uint64
	ItemSize  uint64
	Flags     uint32
}

// Snapshot is a point-in-time view of a runtime's tracking ring.
type Snapshot struct {
	ID      string // random UUID assigned at capture
	Profile string // build profile label supplied by the caller
	TakenAt time.Time
	Objects []ObjectRecord
	Types   []TypeRecord
}

// Capture walks the runtime's tracking ring and records every tracked
// object. The caller must hold the domain lock for the duration of the
// call.
func Capture(r *rt.Runtime, profile string) *Snapshot {
	r.AssertHeld()

	// First pass: assign capture-local IDs so slot references can point
	// at other tracked objects.
	ids := make(map[*rt.Object]uint64)
	var order []*rt.Object
	r.EachTracked(func(o *rt.Object) bool {
		ids[o] = uint64(len(order) + 1)
		order = append(order, o)
		return true
	})

	s := &Snapshot{
		ID:      uuid.NewString(),
		Profile: profile,
		// Second precision survives the CBOR epoch time encoding.
		TakenAt: time.Now().UTC().Truncate(time.Second),
		Objects: make([]ObjectRecord, 0, len(order)),
	}

	seenTypes := make(map[*rt.TypeDesc]bool)
	for _, o := range order {
		t := rt.TypeOf(o)
		if !seenTypes[t] {
			seenTypes[t] = true
			s.Types = append(s.Types, TypeRecord{
				Name:      t.Name,
				BasicSize: uint64(t.BasicSize),
				ItemSize:  uint64(t.ItemSize),
				Flags:     uint32(t.Flags),
			})
		}

		rec := ObjectRecord{
			ID:       ids[o],
			Type:     t.Name,
			RefCount: rt.RefCount(o),
			Size:     uint64(rt.SizeOf(o)),
			Length:   o.Length(),
		}
		if n := o.NumSlots(); n > 0 {
			rec.Slots = make([]uint64, n)
			for i := 0; i < n; i++ {
				rec.Slots[i] = ids[o.Slot(i)] // 0 for nil or untracked
			}
		}
		s.Objects = append(s.Objects, rec)
	}
	return s
}

// Lookup returns the record with the given capture-local ID.
func (s *Snapshot) Lookup(id uint64) (ObjectRecord, bool) {
	for _, rec := range s.Objects {
		if rec.ID == id {
			return rec, true
		}
	}
	return ObjectRecord{}, false
}

// CountByType returns the number of recorded objects per type name.
func (s *Snapshot) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, rec := range s.Objects {
		counts[rec.Type]++
	}
	return counts
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("snapshot %s: %d objects, %d types (%s)", s.ID, len(s.Objects), len(s.Types), s.Profile)
}
