// Package cdsi defines the errors of contact directory lookups.
package cdsi

import (
	"fmt"

	"github.com/otelwasm/jsbridge/native/attest"
)

// LookupErrorKind discriminates LookupError.
type LookupErrorKind uint8

const (
	RateLimited LookupErrorKind = iota + 1
	AttestationError
	InvalidArgument
	InvalidToken
	ConnectionTimedOut
	ConnectTransport
	WebSocket
	Protocol
	InvalidResponse
	ParseError
	Server
)

// LookupError is a directory lookup failure.
type LookupError struct {
	Kind LookupErrorKind
	// RetryAfterSeconds is the server-advised delay for RateLimited.
	RetryAfterSeconds uint32
	// ServerReason is the server supplied text for InvalidArgument and Server.
	ServerReason string
	// Err is the attestation failure for AttestationError, or the transport
	// cause for ConnectTransport and WebSocket.
	Err error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case RateLimited:
		return fmt.Sprintf("Rate limited; try again after %ds", e.RetryAfterSeconds)
	case AttestationError:
		if e.Err == nil {
			return "attestation failed"
		}
		return e.Err.Error()
	case InvalidArgument:
		return "request was invalid: " + e.ServerReason
	case InvalidToken:
		return "request token was invalid"
	case ConnectionTimedOut:
		return "connect timed out"
	case ConnectTransport:
		return fmt.Sprintf("transport failed: %v", e.Err)
	case WebSocket:
		return fmt.Sprintf("websocket error: %v", e.Err)
	case Protocol:
		return "protocol error after establishing a connection"
	case InvalidResponse:
		return "invalid response received from the server"
	case ParseError:
		return "failed to parse the response from the server"
	case Server:
		return "server error: " + e.ServerReason
	default:
		return fmt.Sprintf("lookup error (%d)", e.Kind)
	}
}

func (e *LookupError) Unwrap() error { return e.Err }

// NewRateLimited returns a RateLimited lookup error.
func NewRateLimited(retryAfterSeconds uint32) *LookupError {
	return &LookupError{Kind: RateLimited, RetryAfterSeconds: retryAfterSeconds}
}

// NewAttestationError wraps an attestation failure.
func NewAttestationError(err *attest.Error) *LookupError {
	if err == nil {
		return &LookupError{Kind: AttestationError}
	}
	return &LookupError{Kind: AttestationError, Err: err}
}
