package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/varq/internal/model"
	"github.com/roach88/varq/pkg/dim"
	"github.com/roach88/varq/pkg/quantity"
)

// Error codes for evaluation.
const (
	ErrCodeUnknownQuantity = "E301" // no quantity with that name
	ErrCodeBadFactor       = "E302" // factor does not parse
	ErrCodeBadUnit         = "E303" // output unit does not parse or does not match
	ErrCodeContract        = "E304" // function broke its dimension contract
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Unit string // output unit, defaults to the declared unit
}

// EvalResult is the outcome of evaluating one quantity.
type EvalResult struct {
	Name    string   `json:"name"`
	Inputs  []string `json:"inputs"`
	SI      string   `json:"si"`      // value in coherent SI base units
	Value   float64  `json:"value"`   // value in Unit
	Unit    string   `json:"unit"`
	Display string   `json:"display"` // "<value> <unit>"
}

func (r EvalResult) String() string {
	return r.Name + " = " + r.Display
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <model-dir> <name> [factor...]",
		Short: "Evaluate one quantity of a model",
		Long: `Evaluate a model quantity on a list of influencing factors.

Each factor is a unit expression such as "350 K" or "12 V". A function
uses the first factor whose dimension matches its influence and ignores
the rest; a constant ignores all of them.

Examples:
  varq eval ./model winding_resistance "393.15 K"
  varq eval ./model winding_resistance "393.15 K" --unit mOhm`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], args[1], args[2:], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Unit, "unit", "u", "", "output unit (default: declared unit)")
	return cmd
}

func runEval(opts *EvalOptions, modelDir, name string, factorArgs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	m, errs := model.LoadDir(modelDir)
	if m == nil {
		return outputLoadError(formatter, errs)
	}
	if len(errs) > 0 {
		return outputValidationErrors(formatter, toValidationErrors(errs))
	}

	q, ok := m.Lookup(name)
	if !ok {
		return commandError(formatter, ErrCodeUnknownQuantity, fmt.Sprintf("no quantity %q in %s", name, modelDir))
	}

	unit := q.Unit
	if opts.Unit != "" {
		unit = opts.Unit
	}

	result, code, err := evaluate(name, q.Value, factorArgs, unit)
	if err != nil {
		return evalError(formatter, code, err)
	}
	formatter.VerboseLog("evaluated %s on %d factor(s)", name, len(result.Inputs))
	return formatter.Success(result)
}

// evaluate parses factors, evaluates v and expresses the result in unit.
// On failure it also returns the error code to report.
func evaluate(name string, v quantity.Dynamic, factorArgs []string, unit string) (EvalResult, string, error) {
	factors, err := parseFactors(factorArgs)
	if err != nil {
		return EvalResult{}, ErrCodeBadFactor, err
	}

	target, err := dim.Parse(unit)
	if err != nil {
		return EvalResult{}, ErrCodeBadUnit, err
	}
	if target.Value == 0 || math.IsInf(target.Value, 0) || math.IsNaN(target.Value) {
		return EvalResult{}, ErrCodeBadUnit, fmt.Errorf("unit %q: scale factor %g must be finite and non-zero", unit, target.Value)
	}
	if target.Dim != v.Dim() {
		return EvalResult{}, ErrCodeBadUnit, fmt.Errorf("unit %q: %w", unit, &dim.MismatchError{Expected: v.Dim(), Found: target.Dim})
	}

	got, err := get(v, factors)
	if err != nil {
		return EvalResult{}, ErrCodeContract, err
	}

	inputs := make([]string, len(factors))
	for i, f := range factors {
		inputs[i] = f.String()
	}
	value := got.Value / target.Value
	return EvalResult{
		Name:    name,
		Inputs:  inputs,
		SI:      got.String(),
		Value:   value,
		Unit:    unit,
		Display: strings.TrimSpace(dim.FormatValue(value) + " " + unit),
	}, "", nil
}

// get evaluates v, turning a contract violation into an error.
func get(v quantity.Dynamic, factors []dim.Quantity) (q dim.Quantity, err error) {
	defer func() {
		if r := recover(); r != nil {
			cv, ok := quantity.AsContractViolation(r)
			if !ok {
				panic(r)
			}
			err = cv
		}
	}()
	return v.Get(factors), nil
}

func parseFactors(args []string) ([]dim.Quantity, error) {
	factors := make([]dim.Quantity, 0, len(args))
	for _, a := range args {
		f, err := dim.Parse(a)
		if err != nil {
			return nil, fmt.Errorf("factor: %w", err)
		}
		factors = append(factors, f)
	}
	return factors, nil
}

func commandError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

func evalError(formatter *OutputFormatter, code string, err error) error {
	_ = formatter.Error(code, err.Error(), nil)
	exit := ExitCommandError
	if code == ErrCodeContract {
		exit = ExitFailure
	}
	return WrapExitError(exit, code, err)
}
