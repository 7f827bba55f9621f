package jsonbuild

import (
	"fmt"
	"reflect"
)

// ConversionError is the error returned when a value cannot be
// converted to a wire node.
//
// Unknown types are not conversion errors, see [Marshal]. A
// ConversionError means that a converter was found for the value, but
// failed.
type ConversionError struct {
	// Type is the name of the type that failed to convert.
	Type string
	// Reason is an explanation of why the conversion failed.
	Reason error
}

func (e ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s: %s", e.Type, e.Reason)
}

func (e ConversionError) Unwrap() error {
	return e.Reason
}

func wrapConvErr(t reflect.Type, err error) error {
	return ConversionError{t.String(), err}
}
