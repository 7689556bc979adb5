// Package backup defines the errors reported while reading message backups.
package backup

import "fmt"

// ReadError is a backup validation failure. FoundUnknownFields lists the
// unrecognized fields seen before the failure, as human readable paths.
type ReadError struct {
	Err                error
	FoundUnknownFields []string
}

func (e *ReadError) Error() string {
	if len(e.FoundUnknownFields) == 0 {
		return e.Message()
	}
	return fmt.Sprintf("%s (%d unknown fields)", e.Message(), len(e.FoundUnknownFields))
}

// Message describes the validation failure alone, without the unknown
// fields.
func (e *ReadError) Message() string {
	if e.Err == nil {
		return "backup validation failed"
	}
	return e.Err.Error()
}

func (e *ReadError) Unwrap() error { return e.Err }
