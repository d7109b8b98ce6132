package quantity

import (
	"gopkg.in/yaml.v3"

	"github.com/roach88/varq/pkg/dim"
)

// VarQuantity is either a constant T or a function of influencing factors
// returning T. The zero value is the constant 0.
//
// A VarQuantity is immutable; build a new one to change it.
type VarQuantity[T Kind] struct {
	value T
	fn    *FunctionWrapper[T]
}

// Constant creates a constant VarQuantity.
func Constant[T Kind](v T) VarQuantity[T] {
	return VarQuantity[T]{value: v}
}

// FromWrapper creates a function-backed VarQuantity. A nil wrapper yields
// the constant 0.
func FromWrapper[T Kind](w *FunctionWrapper[T]) VarQuantity[T] {
	return VarQuantity[T]{fn: w}
}

// FromFunction wraps fn with NewFunctionWrapper, so the dimension self-test
// runs before the VarQuantity exists.
func FromFunction[T Kind](fn Function) (VarQuantity[T], error) {
	w, err := NewFunctionWrapper[T](fn)
	if err != nil {
		return VarQuantity[T]{}, err
	}
	return VarQuantity[T]{fn: w}, nil
}

// FromDynamic converts a Dynamic whose dimension is T's.
func FromDynamic[T Kind](d Dynamic) (VarQuantity[T], error) {
	if d.fn == nil {
		v, err := As[T](dim.New(d.value, d.dim))
		if err != nil {
			return VarQuantity[T]{}, err
		}
		return Constant(v), nil
	}
	return FromFunction[T](d.fn)
}

// Get returns the constant, or evaluates the function at factors.
func (q VarQuantity[T]) Get(factors []dim.Quantity) T {
	if q.fn == nil {
		return q.value
	}
	return q.fn.Call(factors)
}

// IsConstant reports whether q holds a constant.
func (q VarQuantity[T]) IsConstant() bool {
	return q.fn == nil
}

// Constant returns the constant value and true, or 0 and false.
func (q VarQuantity[T]) Constant() (T, bool) {
	if q.fn != nil {
		return 0, false
	}
	return q.value, true
}

// Wrapper returns the function wrapper, or nil for a constant.
func (q VarQuantity[T]) Wrapper() *FunctionWrapper[T] {
	return q.fn
}

// Clone deep-copies the wrapped function, if any.
func (q VarQuantity[T]) Clone() VarQuantity[T] {
	if q.fn == nil {
		return q
	}
	return VarQuantity[T]{fn: q.fn.Clone()}
}

// Dynamic returns q with its dimension tracked at run time. It panics if T
// has no SI dimension; see KindDimension.
func (q VarQuantity[T]) Dynamic() Dynamic {
	d := Dynamic{dim: DimensionOf[T]()}
	if q.fn == nil {
		d.value = float64(q.value)
	} else {
		d.fn = q.fn.fn
	}
	return d
}

// MarshalYAML writes a constant as a number or unit expression and a
// function in its tagged form.
func (q VarQuantity[T]) MarshalYAML() (any, error) {
	if _, err := KindDimension[T](); err != nil {
		return nil, err
	}
	return q.Dynamic().MarshalYAML()
}

// MarshalJSON is the JSON form of MarshalYAML.
func (q VarQuantity[T]) MarshalJSON() ([]byte, error) {
	if _, err := KindDimension[T](); err != nil {
		return nil, err
	}
	return q.Dynamic().MarshalJSON()
}

// UnmarshalYAML tries a constant first and a tagged function second. When
// both fail the error is a *DecodeError.
func (q *VarQuantity[T]) UnmarshalYAML(node *yaml.Node) error {
	v, constErr := DecodeConstant[T](node)
	if constErr == nil {
		*q = Constant(v)
		return nil
	}
	fn, fnErr := DecodeFunction(node)
	if fnErr == nil {
		var w *FunctionWrapper[T]
		if w, fnErr = NewFunctionWrapper[T](fn); fnErr == nil {
			*q = FromWrapper(w)
			return nil
		}
	}
	return &DecodeError{Function: fnErr, Constant: constErr}
}

// UnmarshalJSON accepts the same payloads as UnmarshalYAML.
func (q *VarQuantity[T]) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	return q.UnmarshalYAML(&node)
}
