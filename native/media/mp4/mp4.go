// Package mp4 defines the errors reported while sanitizing mp4 containers.
package mp4

import "fmt"

// ParseErrorKind discriminates ParseError.
type ParseErrorKind uint8

const (
	InvalidBoxLayout ParseErrorKind = iota + 1
	InvalidInput
	MissingRequiredBox
	TruncatedBox
	UnsupportedBox
	UnsupportedBoxLayout
	UnsupportedFormat
)

// ParseError reports input that is not a well-formed or supported mp4.
type ParseError struct {
	Kind ParseErrorKind
	// Name is the box type or format involved, when known.
	Name string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case InvalidBoxLayout:
		return "invalid box layout"
	case InvalidInput:
		return "invalid input"
	case MissingRequiredBox:
		return fmt.Sprintf("missing required %s box", e.Name)
	case TruncatedBox:
		return "truncated box"
	case UnsupportedBox:
		return fmt.Sprintf("unsupported %s box", e.Name)
	case UnsupportedBoxLayout:
		return "unsupported box layout"
	case UnsupportedFormat:
		return fmt.Sprintf("unsupported format %s", e.Name)
	default:
		return fmt.Sprintf("parse error (%d)", e.Kind)
	}
}

// IOError reports a failure reading the input stream.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return "io error: " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }
