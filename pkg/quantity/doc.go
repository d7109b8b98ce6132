// Package quantity models physical quantities whose value is either a
// constant or a dimension-checked function of influencing factors.
//
// # Functions
//
// A Function maps a list of influencing factors (dim.Quantity values) to one
// dim.Quantity. Every Function must return the same dimension for every
// input, including an empty list. The package ships four of them:
//
//	Linear            slope·x + base
//	FirstOrderTaylor  base·(1 + slope·(x − x0))
//	Polynomial        a0·xⁿ + … + an   (Horner form)
//	Exponential       Σ aᵢ·exp(kᵢ·x)
//
// Each derives the dimension of x (its influencing factor) and of its output
// from the coefficients at construction, rejecting inconsistent coefficients
// with a *dim.MismatchError. At call time the first factor whose dimension
// equals the influencing-factor dimension is used as x; with no match the
// function returns its value at x = 0 (see MatchFactor).
//
// Clamped saturates any Function's output to [lower, upper].
//
// # Typed access
//
// FunctionWrapper[T] adapts a Function to a statically typed kind T, such as
// unit.Power or unit.Resistance from gonum.org/v1/gonum/unit. Construction
// calls the function once with no factors and compares the dimension to T's.
// That check is a sample, not a proof: if a later call returns a different
// dimension, Call panics with a *ContractViolation.
//
// VarQuantity[T] is what client code holds: a constant T or a wrapped
// function, evaluated with Get. Dynamic is the same thing for dimensions that
// are only known at run time.
//
// # Persistence
//
// Functions are stored externally tagged, {Tag: {fields}}, in YAML or JSON.
// Register adds a tag for a new Function type; the built-ins are registered
// as Linear, Polynomial, FirstOrderTaylor, Exponential and Clamped. Decoding a
// VarQuantity tries a constant (number or unit expression) first and a tagged
// function second:
//
//	resistance: 2 mOhm
//	resistance:
//	  FirstOrderTaylor:
//	    base_value: 1 Ohm
//	    slope: 0.004 / K
//	    expansion_point: 293.15 K
//
// Decoding always runs the constructors, so a loaded model is checked exactly
// like one built in code.
package quantity
