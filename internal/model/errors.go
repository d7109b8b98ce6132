package model

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes shared with the CLI.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	ErrCodeMissingUnit  = "E201" // unit is required
	ErrCodeInvalidUnit  = "E202" // unit does not parse
	ErrCodeMissingValue = "E203" // value is required
	ErrCodeInvalidValue = "E204" // value does not decode
)

// CompileError is a problem with a model file, located by CUE position when
// one is available.
type CompileError struct {
	Code     string
	Quantity string
	Field    string
	Message  string
	Pos      token.Pos
	Err      error
}

func (e *CompileError) Error() string {
	where := e.Field
	if e.Quantity != "" {
		where = e.Quantity + "." + e.Field
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Code, where, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, where, e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Line returns the 1-based source line, or 0 without a position.
func (e *CompileError) Line() int {
	if e.Pos.IsValid() {
		return e.Pos.Line()
	}
	return 0
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error, quantity string) *CompileError {
	ce := &CompileError{Code: ErrCodeBuildFailed, Quantity: quantity, Field: "cue", Message: err.Error(), Err: err}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return ce
	}
	ce.Message = errs[0].Error()
	if positions := errors.Positions(errs[0]); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
