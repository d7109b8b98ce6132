package quantity

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/roach88/varq/pkg/dim"
)

// Linear is slope·x + base.
//
// x has dimension base/slope and the output has the dimension of base, so
// every pair of coefficients is consistent.
type Linear struct {
	slope     dim.Quantity
	base      dim.Quantity
	influence dim.Dimension
}

// NewLinear creates a Linear function. base/slope is computed with plain
// Dimension.Div; decoding rejects payloads whose exponents would overflow.
func NewLinear(slope, base dim.Quantity) *Linear {
	return &Linear{
		slope:     slope,
		base:      base,
		influence: base.Dim.Div(slope.Dim),
	}
}

// Call evaluates the function at the first factor matching InfluenceDim, or
// returns the base value.
func (l *Linear) Call(factors []dim.Quantity) dim.Quantity {
	return MatchFactor(factors, l.influence,
		func(x dim.Quantity) dim.Quantity {
			return dim.New(l.slope.Value*x.Value+l.base.Value, l.base.Dim)
		},
		func() dim.Quantity { return l.base },
	)
}

// Slope returns the coefficient of x.
func (l *Linear) Slope() dim.Quantity { return l.slope }

// BaseValue returns the value at x = 0.
func (l *Linear) BaseValue() dim.Quantity { return l.base }

// InfluenceDim returns the dimension a factor needs to be used as x.
func (l *Linear) InfluenceDim() dim.Dimension { return l.influence }

// OutputDim returns the dimension of every result.
func (l *Linear) OutputDim() dim.Dimension { return l.base.Dim }

// Clone returns an independent copy.
func (l *Linear) Clone() Function {
	c := *l
	return &c
}

type linearFields struct {
	Slope     dim.Quantity `yaml:"slope" json:"slope"`
	BaseValue dim.Quantity `yaml:"base_value" json:"base_value"`
}

func (l *Linear) fields() linearFields {
	return linearFields{Slope: l.slope, BaseValue: l.base}
}

// MarshalYAML writes the slope and base_value fields.
func (l *Linear) MarshalYAML() (any, error) { return l.fields(), nil }

// MarshalJSON writes the same fields as MarshalYAML.
func (l *Linear) MarshalJSON() ([]byte, error) { return json.Marshal(l.fields()) }

// UnmarshalYAML decodes the fields and reruns the constructor checks.
func (l *Linear) UnmarshalYAML(node *yaml.Node) error {
	var f linearFields
	if err := decodeFields(node, &f, "slope", "base_value"); err != nil {
		return err
	}
	if _, err := f.BaseValue.Dim.CheckedDiv(f.Slope.Dim); err != nil {
		return err
	}
	*l = *NewLinear(f.Slope, f.BaseValue)
	return nil
}
