// Package svr defines the errors of secure value recovery.
package svr

import (
	"fmt"

	"github.com/otelwasm/jsbridge/native/attest"
)

// ErrorKind discriminates Error.
type ErrorKind uint8

const (
	Service ErrorKind = iota + 1
	ConnectionTimedOut
	Connect
	AttestationError
	RequestFailed
	RestoreFailed
	DataMissing
	Protocol
)

// Error is a secure value recovery failure.
type Error struct {
	Kind ErrorKind
	// TriesRemaining is the number of guesses left for RestoreFailed.
	TriesRemaining uint32
	// Detail carries the server or protocol explanation, if any.
	Detail string
	// Err is the attestation failure for AttestationError, or the transport
	// cause for Service and Connect.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case Service:
		return fmt.Sprintf("network error: %v", e.Err)
	case ConnectionTimedOut:
		return "connect timed out"
	case Connect:
		return fmt.Sprintf("connection error: %v", e.Err)
	case AttestationError:
		if e.Err == nil {
			return "attestation failed"
		}
		return e.Err.Error()
	case RequestFailed:
		return "request failed with status " + e.Detail
	case RestoreFailed:
		return fmt.Sprintf("restore request failed; %d tries remaining", e.TriesRemaining)
	case DataMissing:
		return "missing data"
	case Protocol:
		return "protocol error: " + e.Detail
	default:
		return fmt.Sprintf("svr error (%d)", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NewRestoreFailed returns a RestoreFailed error.
func NewRestoreFailed(triesRemaining uint32) *Error {
	return &Error{Kind: RestoreFailed, TriesRemaining: triesRemaining}
}

// NewAttestationError wraps an attestation failure.
func NewAttestationError(err *attest.Error) *Error {
	if err == nil {
		return &Error{Kind: AttestationError}
	}
	return &Error{Kind: AttestationError, Err: err}
}
