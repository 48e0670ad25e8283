//go:build !pyritedebug

package rt

// Header validation hooks for normal builds. The no-op body keeps the
// lifetime operations small enough for the compiler to inline them.

const debugChecks = false

func checkLive(o *Object, op string) {}
