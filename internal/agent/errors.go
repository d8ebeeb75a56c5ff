package agent

import (
	"errors"
	"fmt"
)

var (
	// ErrParameterBounds indicates a construction parameter outside its valid range.
	ErrParameterBounds = errors.New("agent: parameter out of valid bounds")

	// ErrInvalidStatus indicates a Status value outside the enumeration.
	ErrInvalidStatus = errors.New("agent: invalid status")
)

// ParamError names the offending construction parameter.
type ParamError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", ErrParameterBounds, e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrParameterBounds
}
