// Package devicetransfer defines the errors of device-to-device transfer key
// generation.
package devicetransfer

import "errors"

var (
	ErrKeyDecodingFailed = errors.New("failed to decode key")
	ErrInternal          = errors.New("internal error in device transfer")
)
