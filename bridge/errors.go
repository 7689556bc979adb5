package bridge

import "errors"

var (
	ErrRegistryInstalled    = errors.New("error registry already installed")
	ErrRegistryNotInstalled = errors.New("error registry not installed")
	ErrBaseClassMissing     = errors.New("base error class not exported")
	ErrKindClassMissing     = errors.New("error class not exported")
	ErrInvalidConfig        = errors.New("invalid configuration")
)
