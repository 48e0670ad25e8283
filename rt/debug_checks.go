//go:build pyritedebug

package rt

import "fmt"

// In debug builds, every lifetime operation validates the object header it
// was handed before touching the count.

const debugChecks = true

func checkLive(o *Object, op string) {
	if o == nil {
		panic(op + ": nil object")
	}
	if o.typ == nil {
		panic(op + ": object has no type descriptor")
	}
	if o.refcount < 0 {
		panic(fmt.Sprintf("%s: corrupted refcount %d", op, o.refcount))
	}
}
