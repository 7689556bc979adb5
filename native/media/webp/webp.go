// Package webp defines the errors reported while sanitizing WebP images.
package webp

import "fmt"

// ParseErrorKind discriminates ParseError.
type ParseErrorKind uint8

const (
	InvalidChunkLayout ParseErrorKind = iota + 1
	InvalidInput
	InvalidVp8lPrefixCode
	MissingRequiredChunk
	TruncatedChunk
	UnsupportedChunk
	UnsupportedVp8lVersion
)

// ParseError reports input that is not a well-formed or supported WebP.
type ParseError struct {
	Kind ParseErrorKind
	// Name is the chunk type involved, when known.
	Name string
	// Version is the rejected VP8L version for UnsupportedVp8lVersion.
	Version uint8
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case InvalidChunkLayout:
		return "invalid chunk layout"
	case InvalidInput:
		return "invalid input"
	case InvalidVp8lPrefixCode:
		return "invalid VP8L prefix code"
	case MissingRequiredChunk:
		return fmt.Sprintf("missing required %s chunk", e.Name)
	case TruncatedChunk:
		return "truncated chunk"
	case UnsupportedChunk:
		return fmt.Sprintf("unsupported %s chunk", e.Name)
	case UnsupportedVp8lVersion:
		return fmt.Sprintf("unsupported VP8L version %d", e.Version)
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
