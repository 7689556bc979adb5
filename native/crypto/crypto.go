// Package crypto defines the errors of the symmetric primitives exposed by
// the native library.
package crypto

import "fmt"

// ErrorKind discriminates Error.
type ErrorKind uint8

const (
	UnknownAlgorithm ErrorKind = iota + 1
	InvalidKeySize
	InvalidNonceSize
	InvalidInputSize
	InvalidTag
)

type Error struct {
	Kind ErrorKind
	// Algorithm is set for UnknownAlgorithm.
	Algorithm string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownAlgorithm:
		return fmt.Sprintf("unknown %s algorithm", e.Algorithm)
	case InvalidKeySize:
		return "invalid key size"
	case InvalidNonceSize:
		return "invalid nonce size"
	case InvalidInputSize:
		return "invalid input size"
	case InvalidTag:
		return "invalid authentication tag"
	default:
		return fmt.Sprintf("crypto error (%d)", e.Kind)
	}
}
