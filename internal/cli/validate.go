package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/varq/internal/model"
	"github.com/roach88/varq/pkg/quantity"
)

// QuantitySummary describes one compiled quantity.
type QuantitySummary struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Dim         string `json:"dim"`
	Kind        string `json:"kind"`          // "constant" or "function"
	Tag         string `json:"tag,omitempty"` // function tag
	Description string `json:"description,omitempty"`
}

// ValidationError is one compile problem in a model directory.
type ValidationError struct {
	Code     string `json:"code"`
	Quantity string `json:"quantity,omitempty"`
	Field    string `json:"field"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool              `json:"valid"`
	Quantities []QuantitySummary `json:"quantities,omitempty"`
	Errors     []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <model-dir>",
		Short: "Compile a model directory and report every problem",
		Long: `Compile every quantity of a CUE model directory.

Each quantity's unit must parse and its value must decode for that unit.
Function values are constructed and self-tested, so a function whose
output dimension disagrees with the declared unit is reported here.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, modelDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	m, errs := model.LoadDir(modelDir)
	if m == nil {
		return outputLoadError(formatter, errs)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", m.FileCount, modelDir)

	if len(errs) > 0 {
		return outputValidationErrors(formatter, toValidationErrors(errs))
	}

	result := ValidationResult{Valid: true, Quantities: make([]QuantitySummary, 0, len(m.Quantities))}
	for _, q := range m.Quantities {
		s := summarize(q)
		formatter.VerboseLog("  %s [%s] %s", s.Name, s.Unit, s.kindLabel())
		result.Quantities = append(result.Quantities, s)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ %d quantities valid\n", len(result.Quantities))
	return nil
}

func summarize(q model.Quantity) QuantitySummary {
	s := QuantitySummary{
		Name:        q.Name,
		Unit:        q.Unit,
		Dim:         q.Dim.String(),
		Kind:        "constant",
		Description: q.Description,
	}
	if !q.Value.IsConstant() {
		s.Kind = "function"
		s.Tag, _ = quantity.TagOf(q.Value.Function())
	}
	return s
}

func (s QuantitySummary) kindLabel() string {
	if s.Tag != "" {
		return s.Kind + " " + s.Tag
	}
	return s.Kind
}

func toValidationErrors(errs []error) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, err := range errs {
		var ce *model.CompileError
		if !errors.As(err, &ce) {
			out = append(out, ValidationError{Code: model.ErrCodeGeneric, Field: "model", Message: err.Error()})
			continue
		}
		ve := ValidationError{
			Code:     ce.Code,
			Quantity: ce.Quantity,
			Field:    ce.Field,
			Message:  ce.Message,
			Line:     ce.Line(),
		}
		if ce.Pos.IsValid() {
			ve.File = ce.Pos.Filename()
		}
		out = append(out, ve)
	}
	return out
}

// outputLoadError reports a model directory that could not be loaded at all.
func outputLoadError(formatter *OutputFormatter, errs []error) error {
	code, message := model.ErrCodeGeneric, "model could not be loaded"
	if len(errs) > 0 {
		message = errs[0].Error()
		var ce *model.CompileError
		if errors.As(errs[0], &ce) {
			code, message = ce.Code, ce.Message
		}
	}
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []ValidationError) error {
	failure := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.Format == "json" {
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}); err != nil {
			return err
		}
		return failure
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "%s:%d\n", err.File, err.Line)
		}
		where := err.Field
		if err.Quantity != "" {
			where = err.Quantity + "." + err.Field
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, where, err.Message)
	}
	return failure
}
