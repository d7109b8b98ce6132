package quantity

import "github.com/roach88/varq/pkg/dim"

// Function maps influencing factors to a quantity.
//
// Implementations must return the same dimension for every input, including
// a nil slice, must not mutate the factors, and must be safe for concurrent
// use by multiple goroutines.
type Function interface {
	Call(factors []dim.Quantity) dim.Quantity
}

// Cloner is implemented by functions that hold state worth copying. Functions
// without it are treated as immutable and shared on Clone.
type Cloner interface {
	Clone() Function
}

// Clone returns a deep copy of fn if it implements Cloner, otherwise fn.
func Clone(fn Function) Function {
	if c, ok := fn.(Cloner); ok {
		return c.Clone()
	}
	return fn
}

// MatchFactor scans factors in order and calls matched with the first one
// whose dimension equals want. If none does, it returns noMatch().
func MatchFactor[R any](factors []dim.Quantity, want dim.Dimension, matched func(x dim.Quantity) R, noMatch func() R) R {
	for _, f := range factors {
		if f.Dim == want {
			return matched(f)
		}
	}
	return noMatch()
}
