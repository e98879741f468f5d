package utils

import "github.com/pkg/errors"

// NewUnexpectedTypeError is used when a dependency or config value has the wrong
// dynamic type. Mirrors the rdk utils.NewUnexpectedTypeError idiom.
func NewUnexpectedTypeError(expected, actual interface{}) error {
	return errors.Errorf("expected %T but got %T", expected, actual)
}

// NewUnimplementedInterfaceError is used when a failed interface check occurs.
func NewUnimplementedInterfaceError(expected string, actual interface{}) error {
	return errors.Errorf("expected implementation of %s but got %T", expected, actual)
}
