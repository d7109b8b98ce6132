package quantity

import (
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"

	"github.com/roach88/varq/pkg/dim"
)

// Dynamic is a variable quantity whose dimension is known only at run time,
// for example one loaded from a model file that declares its unit.
// It follows the same rules as VarQuantity: a function is self-tested
// against the dimension once, and Get panics with a *ContractViolation if it
// later drifts.
type Dynamic struct {
	dim   dim.Dimension
	value float64
	fn    Function
}

// DynamicConstant creates a constant Dynamic.
func DynamicConstant(q dim.Quantity) Dynamic {
	return Dynamic{dim: q.Dim, value: q.Value}
}

// DynamicFunction creates a function-backed Dynamic after checking that fn
// returns d for an empty input.
func DynamicFunction(d dim.Dimension, fn Function) (Dynamic, error) {
	if fn == nil {
		return Dynamic{}, errors.New("dynamic quantity: nil function")
	}
	if got := fn.Call(nil).Dim; got != d {
		return Dynamic{}, &dim.MismatchError{Expected: d, Found: got}
	}
	return Dynamic{dim: d, fn: fn}, nil
}

// DecodeDynamic decodes a payload for dimension d the way
// VarQuantity.UnmarshalYAML does: a bare number is the SI value in d, a
// string must parse to d, anything else must be a tagged function.
func DecodeDynamic(d dim.Dimension, node *yaml.Node) (Dynamic, error) {
	q, constErr := decodeDynamicConstant(d, node)
	if constErr == nil {
		return DynamicConstant(q), nil
	}
	fn, fnErr := DecodeFunction(node)
	if fnErr == nil {
		var out Dynamic
		if out, fnErr = DynamicFunction(d, fn); fnErr == nil {
			return out, nil
		}
	}
	return Dynamic{}, &DecodeError{Function: fnErr, Constant: constErr}
}

// UnmarshalDynamic decodes YAML or JSON for dimension d.
func UnmarshalDynamic(d dim.Dimension, data []byte) (Dynamic, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Dynamic{}, err
	}
	return DecodeDynamic(d, &node)
}

func decodeDynamicConstant(d dim.Dimension, node *yaml.Node) (dim.Quantity, error) {
	node = content(node)
	if node == nil || node.Kind != yaml.ScalarNode {
		return dim.Quantity{}, errNotScalar
	}
	if dim.IsNumberNode(node) {
		var v float64
		if err := node.Decode(&v); err != nil {
			return dim.Quantity{}, err
		}
		return dim.New(v, d), nil
	}
	q, err := dim.Parse(node.Value)
	if err != nil {
		return dim.Quantity{}, err
	}
	if q.Dim != d {
		return dim.Quantity{}, &dim.MismatchError{Expected: d, Found: q.Dim}
	}
	return q, nil
}

// Get returns the constant, or evaluates the function and checks its
// dimension.
func (d Dynamic) Get(factors []dim.Quantity) dim.Quantity {
	if d.fn == nil {
		return dim.New(d.value, d.dim)
	}
	q := d.fn.Call(factors)
	if q.Dim != d.dim {
		panic(&ContractViolation{Function: d.fn, Expected: d.dim, Found: q.Dim})
	}
	return q
}

// Dim returns the dimension every result of d carries.
func (d Dynamic) Dim() dim.Dimension { return d.dim }

// IsConstant reports whether d holds a constant.
func (d Dynamic) IsConstant() bool { return d.fn == nil }

// Function returns the function, or nil for a constant.
func (d Dynamic) Function() Function { return d.fn }

// Clone deep-copies the function, if any.
func (d Dynamic) Clone() Dynamic {
	if d.fn != nil {
		d.fn = Clone(d.fn)
	}
	return d
}

// MarshalYAML writes a constant as a number or unit expression and a
// function in its tagged form.
func (d Dynamic) MarshalYAML() (any, error) {
	if d.fn == nil {
		return dim.New(d.value, d.dim).MarshalYAML()
	}
	return EncodeFunction(d.fn)
}

// MarshalJSON is the JSON form of MarshalYAML.
func (d Dynamic) MarshalJSON() ([]byte, error) {
	if d.fn == nil {
		return json.Marshal(dim.New(d.value, d.dim))
	}
	return MarshalFunctionJSON(d.fn)
}
