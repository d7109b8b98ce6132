package quantity

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/roach88/varq/pkg/dim"
)

var errNotScalar = errors.New("expected a number or a unit expression")

// RangeError reports clamp limits with upper < lower, a NaN limit, or an
// infinite limit on the closed side (lower = +Inf, upper = -Inf).
type RangeError struct {
	Lower float64
	Upper float64
}

func (e *RangeError) Error() string {
	switch {
	case math.IsNaN(e.Lower) || math.IsNaN(e.Upper):
		return fmt.Sprintf("invalid clamp range: limits must not be NaN (lower %g, upper %g)", e.Lower, e.Upper)
	case math.IsInf(e.Lower, 1) || math.IsInf(e.Upper, -1):
		return fmt.Sprintf("invalid clamp range: lower limit %g and upper limit %g must be finite or open", e.Lower, e.Upper)
	}
	return fmt.Sprintf("invalid clamp range: upper limit %g must not be smaller than lower limit %g", e.Upper, e.Lower)
}

// ContractViolation is the panic value of FunctionWrapper.Call and
// Dynamic.Get when a function returns a dimension other than the one it
// returned during its construction self-test.
//
// It is not meant to be recovered from: the function itself is broken.
type ContractViolation struct {
	Function Function
	Expected dim.Dimension
	Found    dim.Dimension
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("quantity function %T violated its dimension contract: expected %s, found %s",
		e.Function, e.Expected, e.Found)
}

// DecodeError is returned when a variable quantity payload is neither a
// valid constant nor a valid tagged function. The function error is the more
// informative one for structured payloads and is reported first.
type DecodeError struct {
	Function error
	Constant error
}

func (e *DecodeError) Error() string {
	var parts []string
	if e.Function != nil {
		parts = append(parts, "as function: "+e.Function.Error())
	}
	if e.Constant != nil {
		parts = append(parts, "as constant: "+e.Constant.Error())
	}
	return "decode variable quantity: " + strings.Join(parts, "; ")
}

// Unwrap exposes both causes to errors.Is and errors.As.
func (e *DecodeError) Unwrap() []error {
	var errs []error
	for _, err := range []error{e.Function, e.Constant} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// UnknownTagError reports a function tag with no registered type.
type UnknownTagError struct {
	Tag string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown quantity function tag %q", e.Tag)
}

// IsDimensionMismatch returns true if err is or wraps a *dim.MismatchError.
func IsDimensionMismatch(err error) bool {
	var me *dim.MismatchError
	return errors.As(err, &me)
}

// IsInvalidRange returns true if err is or wraps a *RangeError.
func IsInvalidRange(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}

// IsUnknownTag returns true if err is or wraps an *UnknownTagError.
func IsUnknownTag(err error) bool {
	var te *UnknownTagError
	return errors.As(err, &te)
}

// AsContractViolation inspects a recovered panic value.
func AsContractViolation(r any) (*ContractViolation, bool) {
	cv, ok := r.(*ContractViolation)
	return cv, ok
}
