package quantity

import (
	"encoding/json"
	"errors"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/roach88/varq/pkg/dim"
)

// Clamped saturates the output of another function to [lower, upper]. The
// limits are SI values in the inner function's output dimension, which
// Clamped leaves unchanged.
type Clamped struct {
	inner Function
	lower float64
	upper float64
}

// NewClamped wraps fn. It returns a *RangeError if upper < lower or either
// limit is NaN. A lower limit of -Inf or an upper limit of +Inf leaves that
// side open; infinities on the closed side are rejected.
func NewClamped(fn Function, lower, upper float64) (*Clamped, error) {
	if fn == nil {
		return nil, errors.New("clamped: nil function")
	}
	if math.IsNaN(lower) || math.IsNaN(upper) || upper < lower ||
		math.IsInf(lower, 1) || math.IsInf(upper, -1) {
		return nil, &RangeError{Lower: lower, Upper: upper}
	}
	return &Clamped{inner: fn, lower: lower, upper: upper}, nil
}

// Call evaluates the inner function and clamps its value.
func (c *Clamped) Call(factors []dim.Quantity) dim.Quantity {
	q := c.inner.Call(factors)
	q.Value = max(c.lower, min(c.upper, q.Value))
	return q
}

// Inner returns the wrapped function.
func (c *Clamped) Inner() Function { return c.inner }

// Lower returns the lower limit, -Inf when open.
func (c *Clamped) Lower() float64 { return c.lower }

// Upper returns the upper limit, +Inf when open.
func (c *Clamped) Upper() float64 { return c.upper }

// Clone returns a copy with a cloned inner function.
func (c *Clamped) Clone() Function {
	return &Clamped{inner: Clone(c.inner), lower: c.lower, upper: c.upper}
}

// clampedFields omits an open limit, so both encodings stay finite.
type clampedFields struct {
	Function map[string]Function `yaml:"function" json:"function"`
	Lower    *float64            `yaml:"lower_limit,omitempty" json:"lower_limit,omitempty"`
	Upper    *float64            `yaml:"upper_limit,omitempty" json:"upper_limit,omitempty"`
}

func (c *Clamped) fields() (clampedFields, error) {
	inner, err := EncodeFunction(c.inner)
	if err != nil {
		return clampedFields{}, err
	}
	f := clampedFields{Function: inner}
	if !math.IsInf(c.lower, -1) {
		f.Lower = &c.lower
	}
	if !math.IsInf(c.upper, 1) {
		f.Upper = &c.upper
	}
	return f, nil
}

// MarshalYAML writes the tagged inner function and the finite limits.
func (c *Clamped) MarshalYAML() (any, error) {
	return c.fields()
}

// MarshalJSON writes the same fields as MarshalYAML.
func (c *Clamped) MarshalJSON() ([]byte, error) {
	f, err := c.fields()
	if err != nil {
		return nil, err
	}
	return json.Marshal(f)
}

// UnmarshalYAML reads the fields written by MarshalYAML. A missing limit is
// open.
func (c *Clamped) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Function yaml.Node `yaml:"function"`
		Lower    *float64  `yaml:"lower_limit"`
		Upper    *float64  `yaml:"upper_limit"`
	}
	err := decodeOptionalFields(node, &raw, []string{"function"}, []string{"lower_limit", "upper_limit"})
	if err != nil {
		return err
	}
	inner, err := DecodeFunction(&raw.Function)
	if err != nil {
		return err
	}
	lower, upper := math.Inf(-1), math.Inf(1)
	if raw.Lower != nil {
		lower = *raw.Lower
	}
	if raw.Upper != nil {
		upper = *raw.Upper
	}
	built, err := NewClamped(inner, lower, upper)
	if err != nil {
		return err
	}
	*c = *built
	return nil
}
