package quantity

import (
	"errors"

	"gopkg.in/yaml.v3"

	"github.com/roach88/varq/pkg/dim"
)

// FunctionWrapper adapts a Function to the typed kind T.
//
// NewFunctionWrapper checks once, with an empty input, that the function
// returns T's dimension. Call relies on that holding for every later input
// and panics with a *ContractViolation when it does not.
type FunctionWrapper[T Kind] struct {
	fn Function
}

// NewFunctionWrapper wraps fn after the empty-input self-test. On a
// mismatch it returns a *dim.MismatchError with T's dimension as Expected.
func NewFunctionWrapper[T Kind](fn Function) (*FunctionWrapper[T], error) {
	if fn == nil {
		return nil, errors.New("function wrapper: nil function")
	}
	want, err := KindDimension[T]()
	if err != nil {
		return nil, err
	}
	if got := fn.Call(nil).Dim; got != want {
		return nil, &dim.MismatchError{Expected: want, Found: got}
	}
	return &FunctionWrapper[T]{fn: fn}, nil
}

// Call evaluates the wrapped function and converts the result to T.
func (w *FunctionWrapper[T]) Call(factors []dim.Quantity) T {
	q := w.fn.Call(factors)
	v, err := As[T](q)
	if err != nil {
		panic(&ContractViolation{Function: w.fn, Expected: DimensionOf[T](), Found: q.Dim})
	}
	return v
}

// Inner returns the wrapped function.
func (w *FunctionWrapper[T]) Inner() Function {
	return w.fn
}

// Clone returns a wrapper around a clone of the inner function. The
// self-test is not repeated.
func (w *FunctionWrapper[T]) Clone() *FunctionWrapper[T] {
	return &FunctionWrapper[T]{fn: Clone(w.fn)}
}

// MarshalYAML writes the inner function in its tagged form.
func (w *FunctionWrapper[T]) MarshalYAML() (any, error) {
	return EncodeFunction(w.fn)
}

// MarshalJSON is the JSON form of MarshalYAML.
func (w *FunctionWrapper[T]) MarshalJSON() ([]byte, error) {
	return MarshalFunctionJSON(w.fn)
}

// UnmarshalYAML decodes a tagged function and runs the self-test.
func (w *FunctionWrapper[T]) UnmarshalYAML(node *yaml.Node) error {
	fn, err := DecodeFunction(node)
	if err != nil {
		return err
	}
	built, err := NewFunctionWrapper[T](fn)
	if err != nil {
		return err
	}
	*w = *built
	return nil
}

// UnmarshalJSON accepts the same payloads as UnmarshalYAML.
func (w *FunctionWrapper[T]) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	return w.UnmarshalYAML(&node)
}
