// Package rt implements the Pyrite object runtime core.
//
// This package contains:
//   - Reference-counted object headers and the retain/release protocol
//   - Shared type descriptors and cast-safe accessors
//   - The GC tracking ring and detachment
//   - Vectorcall invocation with a generic fallback path
//
// All lifetime and tracking operations assume the caller holds the
// runtime's domain lock; see Runtime.Lock.
package rt
