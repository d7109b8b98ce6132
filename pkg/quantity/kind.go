package quantity

import (
	"fmt"

	"gonum.org/v1/gonum/unit"
	"gopkg.in/yaml.v3"

	"github.com/roach88/varq/pkg/dim"
)

// Kind is a statically typed quantity: a float64 in coherent SI units whose
// dimension is reported by Unit. The typed quantities of
// gonum.org/v1/gonum/unit (unit.Power, unit.Length, unit.Dimless, ...) and
// package kinds satisfy it.
type Kind interface {
	~float64
	Unit() *unit.Unit
}

// KindDimension returns the dimension of T, or an error if T uses a gonum
// dimension that has no SI base counterpart, such as angle.
func KindDimension[T Kind]() (dim.Dimension, error) {
	var zero T
	d, err := dim.FromGonum(zero.Unit().Dimensions())
	if err != nil {
		return dim.None, fmt.Errorf("quantity: kind %T: %w", zero, err)
	}
	return d, nil
}

// DimensionOf is like KindDimension but panics on an unsupported kind.
func DimensionOf[T Kind]() dim.Dimension {
	d, err := KindDimension[T]()
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Of turns a typed value into an influencing factor. Like DimensionOf it
// panics on an unsupported kind.
func Of[T Kind](v T) dim.Quantity {
	return dim.New(float64(v), DimensionOf[T]())
}

// As converts q to T, failing if the dimensions differ.
func As[T Kind](q dim.Quantity) (T, error) {
	want, err := KindDimension[T]()
	if err != nil {
		return 0, err
	}
	if q.Dim != want {
		return 0, &dim.MismatchError{Expected: want, Found: q.Dim}
	}
	return T(q.Value), nil
}

// DecodeConstant decodes a YAML scalar as a T. A bare number is taken as the
// SI value of T; a string is parsed as a unit expression and must have T's
// dimension.
//
// Custom Function types use it to accept "2 mOhm" as well as 0.002 for a
// typed field.
func DecodeConstant[T Kind](node *yaml.Node) (T, error) {
	if _, err := KindDimension[T](); err != nil {
		return 0, err
	}
	node = content(node)
	if node == nil || node.Kind != yaml.ScalarNode {
		return 0, errNotScalar
	}
	if dim.IsNumberNode(node) {
		var v float64
		if err := node.Decode(&v); err != nil {
			return 0, err
		}
		return T(v), nil
	}
	q, err := dim.Parse(node.Value)
	if err != nil {
		return 0, err
	}
	return As[T](q)
}

// content unwraps a document node to its root.
func content(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	return node
}
