package rt

import "fmt"

// InvocationError is the recoverable error class produced by Invoke and
// CallOneArg: the target is not callable, or the argument shape does not
// match its declared signature. It is always returned as an explicit error
// value, never panicked.
//
// Lifetime and tracking operations never return errors; their failure
// modes are fatal invariant violations.
type InvocationError struct {
	Callable string // name of the callable or its category
	Reason   string
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("cannot invoke %s: %s", e.Callable, e.Reason)
}

func errNotCallable(o *Object) error {
	return &InvocationError{Callable: typeName(o), Reason: "object is not callable"}
}
