// Package chat defines the errors of the authenticated chat connection.
package chat

import "fmt"

// ErrorKind discriminates Error.
type ErrorKind uint8

const (
	WebSocket ErrorKind = iota + 1
	UnexpectedFrameReceived
	ServerRequestMissingID
	IncomingDataInvalid
	RequestHasInvalidHeader
	Timeout
	TimeoutEstablishingConnection
	AllConnectionRoutesFailed
	ServiceUnavailable
	Disconnected
	ServiceInactive
	AppExpired
	DeviceDeregistered
)

// Error is a chat service failure. Err carries the transport cause, if any.
type Error struct {
	Kind ErrorKind
	// Attempts is the number of routes tried for AllConnectionRoutesFailed.
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case WebSocket:
		return fmt.Sprintf("websocket error: %v", e.Err)
	case UnexpectedFrameReceived:
		return "unexpected frame received"
	case ServerRequestMissingID:
		return "request from server is missing an id"
	case IncomingDataInvalid:
		return "failed to decode incoming data"
	case RequestHasInvalidHeader:
		return "request has an invalid header"
	case Timeout:
		return "timed out while waiting for a response"
	case TimeoutEstablishingConnection:
		return "timed out while establishing a connection"
	case AllConnectionRoutesFailed:
		return fmt.Sprintf("all %d connection attempts failed", e.Attempts)
	case ServiceUnavailable:
		return "service unavailable"
	case Disconnected:
		return "chat connection was disconnected"
	case ServiceInactive:
		return "chat service is not active"
	case AppExpired:
		return "app version is too old"
	case DeviceDeregistered:
		return "device has been deregistered"
	default:
		return fmt.Sprintf("chat error (%d)", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }
