// Package attest defines enclave attestation failures.
package attest

import "fmt"

// Source identifies which attestation flow failed.
type Source uint8

const (
	SourceEnclave Source = iota
	SourceHsmEnclave
)

// Error is an attestation failure.
type Error struct {
	Source Source
	Reason string
}

func (e *Error) Error() string {
	if e == nil {
		return "attestation failed"
	}
	switch e.Source {
	case SourceHsmEnclave:
		return fmt.Sprintf("HSM enclave attestation failed: %s", e.Reason)
	default:
		return fmt.Sprintf("enclave attestation failed: %s", e.Reason)
	}
}
