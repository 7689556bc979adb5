// Package native holds error values shared by every part of the native
// library: I/O failures and cancellation.
package native

import "fmt"

// IOKind categorizes an IOError.
type IOKind uint8

const (
	// IOKindOther marks an I/O error the native library could not classify.
	// Values captured from host callbacks travel under this kind.
	IOKindOther IOKind = iota
	IOKindNotFound
	IOKindUnexpectedEOF
	IOKindInvalidData
	IOKindTimedOut
)

// String returns the string representation of the kind
func (k IOKind) String() string {
	switch k {
	case IOKindOther:
		return "other"
	case IOKindNotFound:
		return "not found"
	case IOKindUnexpectedEOF:
		return "unexpected end of file"
	case IOKindInvalidData:
		return "invalid data"
	case IOKindTimedOut:
		return "timed out"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", k)
	}
}

// IOError is a generic I/O failure, optionally wrapping its cause.
type IOError struct {
	Kind IOKind
	Err  error
}

func (e *IOError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *IOError) Unwrap() error { return e.Err }

// CancellationError reports that an operation was cancelled before it
// completed.
type CancellationError struct{}

func (*CancellationError) Error() string { return "Operation was cancelled" }

// ErrCancelled is the cancellation value returned by native operations.
var ErrCancelled error = &CancellationError{}
