// Package protocol defines the errors raised by the session and message
// layer of the native library.
package protocol

import (
	"fmt"

	"github.com/google/uuid"
)

// Address identifies one device of a remote user.
type Address struct {
	Name     string
	DeviceID uint32
}

func (a Address) String() string {
	return fmt.Sprintf("%s.%d", a.Name, a.DeviceID)
}

// ErrorKind discriminates protocol errors.
type ErrorKind uint8

const (
	KindInvalidArgument ErrorKind = iota
	KindInvalidState
	KindInvalidProtobufEncoding
	KindInvalidMessage
	KindInvalidKey
	KindDuplicatedMessage
	KindSealedSenderSelfSend
	KindUntrustedIdentity
	KindInvalidRegistrationID
	KindInvalidSessionStructure
	KindInvalidSenderKeySession
	KindSessionNotFound
	KindApplicationCallback
)

// Error is a protocol failure. Which fields are populated depends on Kind.
type Error struct {
	Kind ErrorKind

	// Address is set for KindUntrustedIdentity, KindInvalidRegistrationID and
	// KindSessionNotFound.
	Address Address
	// RegistrationID is the rejected id for KindInvalidRegistrationID.
	RegistrationID uint32
	// DistributionID is set for KindInvalidSenderKeySession.
	DistributionID uuid.UUID
	// Chain and Counter locate the message for KindDuplicatedMessage.
	Chain   uint32
	Counter uint32
	// Detail carries free-form context for the remaining kinds.
	Detail string

	// Func and Err describe a failing application callback.
	Func string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidArgument:
		return "invalid argument: " + e.Detail
	case KindInvalidState:
		return "invalid state: " + e.Detail
	case KindInvalidProtobufEncoding:
		return "failed to decode protobuf: " + e.Detail
	case KindInvalidMessage:
		return "invalid message: " + e.Detail
	case KindInvalidKey:
		return "invalid key: " + e.Detail
	case KindDuplicatedMessage:
		return fmt.Sprintf("message with old counter %d / %d", e.Chain, e.Counter)
	case KindSealedSenderSelfSend:
		return "message from self"
	case KindUntrustedIdentity:
		return fmt.Sprintf("untrusted identity for address %s", e.Address)
	case KindInvalidRegistrationID:
		return fmt.Sprintf("session for %s has invalid registration ID %#x", e.Address, e.RegistrationID)
	case KindInvalidSessionStructure:
		return "invalid session structure: " + e.Detail
	case KindInvalidSenderKeySession:
		return fmt.Sprintf("invalid sender key session with distribution ID %s", e.DistributionID)
	case KindSessionNotFound:
		return fmt.Sprintf("session with %s not found", e.Address)
	case KindApplicationCallback:
		return fmt.Sprintf("application callback %s failed: %v", e.Func, e.Err)
	default:
		return fmt.Sprintf("protocol error (%d)", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func NewDuplicatedMessage(chain, counter uint32) *Error {
	return &Error{Kind: KindDuplicatedMessage, Chain: chain, Counter: counter}
}

func NewUntrustedIdentity(addr Address) *Error {
	return &Error{Kind: KindUntrustedIdentity, Address: addr}
}

func NewInvalidRegistrationID(addr Address, id uint32) *Error {
	return &Error{Kind: KindInvalidRegistrationID, Address: addr, RegistrationID: id}
}

func NewInvalidSenderKeySession(distributionID uuid.UUID) *Error {
	return &Error{Kind: KindInvalidSenderKeySession, DistributionID: distributionID}
}

// NewApplicationCallback reports that the application callback fn failed
// with err.
func NewApplicationCallback(fn string, err error) *Error {
	return &Error{Kind: KindApplicationCallback, Func: fn, Err: err}
}
