package quantity

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/roach88/varq/pkg/dim"
)

// FirstOrderTaylor is the first-order expansion base·(1 + slope·(x − x0))
// around the expansion point x0. A typical use is a resistance with a linear
// temperature coefficient:
//
//	R(T) = 1 Ω · (1 + 0.004 /K · (T − 293.15 K))
type FirstOrderTaylor struct {
	base  dim.Quantity
	slope dim.Quantity
	point dim.Quantity
}

// NewFirstOrderTaylor creates the expansion. slope·point must be
// dimensionless; otherwise the error is a *dim.MismatchError with Expected
// set to the dimensionless value and Found to the offending product.
func NewFirstOrderTaylor(base, slope, point dim.Quantity) (*FirstOrderTaylor, error) {
	found, err := point.Dim.CheckedMul(slope.Dim)
	if err != nil {
		return nil, err
	}
	if !found.IsNone() {
		return nil, &dim.MismatchError{Expected: dim.None, Found: found}
	}
	return &FirstOrderTaylor{base: base, slope: slope, point: point}, nil
}

// Call evaluates the expansion at the first factor with the dimension of the
// expansion point. Without one, x is taken as zero.
func (f *FirstOrderTaylor) Call(factors []dim.Quantity) dim.Quantity {
	return MatchFactor(factors, f.point.Dim,
		func(x dim.Quantity) dim.Quantity {
			return dim.New(f.base.Value*(1+f.slope.Value*(x.Value-f.point.Value)), f.base.Dim)
		},
		func() dim.Quantity { return f.base },
	)
}

// BaseValue returns the value at the expansion point.
func (f *FirstOrderTaylor) BaseValue() dim.Quantity { return f.base }

// Slope returns the relative slope, e.g. a temperature coefficient.
func (f *FirstOrderTaylor) Slope() dim.Quantity { return f.slope }

// ExpansionPoint returns x0.
func (f *FirstOrderTaylor) ExpansionPoint() dim.Quantity { return f.point }

// InfluenceDim returns the dimension of the expansion point.
func (f *FirstOrderTaylor) InfluenceDim() dim.Dimension { return f.point.Dim }

// OutputDim returns the dimension of the base value.
func (f *FirstOrderTaylor) OutputDim() dim.Dimension { return f.base.Dim }

// Clone returns an independent copy.
func (f *FirstOrderTaylor) Clone() Function {
	c := *f
	return &c
}

type taylorFields struct {
	BaseValue      dim.Quantity `yaml:"base_value" json:"base_value"`
	Slope          dim.Quantity `yaml:"slope" json:"slope"`
	ExpansionPoint dim.Quantity `yaml:"expansion_point" json:"expansion_point"`
}

func (f *FirstOrderTaylor) fields() taylorFields {
	return taylorFields{BaseValue: f.base, Slope: f.slope, ExpansionPoint: f.point}
}

// MarshalYAML writes base_value, slope and expansion_point.
func (f *FirstOrderTaylor) MarshalYAML() (any, error) { return f.fields(), nil }

// MarshalJSON writes the same fields as MarshalYAML.
func (f *FirstOrderTaylor) MarshalJSON() ([]byte, error) { return json.Marshal(f.fields()) }

// UnmarshalYAML decodes the fields and reruns the constructor checks.
func (f *FirstOrderTaylor) UnmarshalYAML(node *yaml.Node) error {
	var w taylorFields
	if err := decodeFields(node, &w, "base_value", "slope", "expansion_point"); err != nil {
		return err
	}
	built, err := NewFirstOrderTaylor(w.BaseValue, w.Slope, w.ExpansionPoint)
	if err != nil {
		return err
	}
	*f = *built
	return nil
}
