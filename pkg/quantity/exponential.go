package quantity

import (
	"encoding/json"
	"math"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/varq/pkg/dim"
)

// ExpTerm is one term amplitude·exp(exponent·x) of an Exponential.
type ExpTerm struct {
	Amplitude dim.Quantity `yaml:"amplitude" json:"amplitude"`
	Exponent  dim.Quantity `yaml:"exponent" json:"exponent"`
}

// Exponential is the sum Σ amplitudeᵢ·exp(exponentᵢ·x).
//
// All amplitudes share one dimension, which is the output dimension, and all
// exponents share one dimension, whose inverse is the dimension of x. An
// empty sum is a dimensionless zero.
type Exponential struct {
	terms     []ExpTerm
	influence dim.Dimension
	output    dim.Dimension
	fallback  float64
}

// NewExponential creates the sum. The slice is copied. Adjacent terms are
// compared, amplitudes first, and the first disagreement is returned as a
// *dim.MismatchError.
func NewExponential(terms []ExpTerm) (*Exponential, error) {
	terms = slices.Clone(terms)
	for i := 1; i < len(terms); i++ {
		prev, cur := terms[i-1], terms[i]
		if prev.Amplitude.Dim != cur.Amplitude.Dim {
			return nil, &dim.MismatchError{Expected: prev.Amplitude.Dim, Found: cur.Amplitude.Dim}
		}
		if prev.Exponent.Dim != cur.Exponent.Dim {
			return nil, &dim.MismatchError{Expected: prev.Exponent.Dim, Found: cur.Exponent.Dim}
		}
	}

	e := &Exponential{terms: terms}
	if len(terms) > 0 {
		influence, err := dim.None.CheckedDiv(terms[0].Exponent.Dim)
		if err != nil {
			return nil, err
		}
		e.influence = influence
		e.output = terms[0].Amplitude.Dim
	}
	for _, t := range terms {
		e.fallback += t.Amplitude.Value
	}
	return e, nil
}

// Call evaluates the sum at the first matching factor. Without one, every
// exponential is 1 and the result is the sum of the amplitudes.
func (e *Exponential) Call(factors []dim.Quantity) dim.Quantity {
	return MatchFactor(factors, e.influence,
		func(x dim.Quantity) dim.Quantity {
			var sum float64
			for _, t := range e.terms {
				sum += t.Amplitude.Value * math.Exp(t.Exponent.Value*x.Value)
			}
			return dim.New(sum, e.output)
		},
		func() dim.Quantity { return dim.New(e.fallback, e.output) },
	)
}

// Terms returns a copy of the terms.
func (e *Exponential) Terms() []ExpTerm { return slices.Clone(e.terms) }

// InfluenceDim returns the inverse of the exponent dimension.
func (e *Exponential) InfluenceDim() dim.Dimension { return e.influence }

// OutputDim returns the amplitude dimension.
func (e *Exponential) OutputDim() dim.Dimension { return e.output }

// Clone returns a deep copy.
func (e *Exponential) Clone() Function {
	c := *e
	c.terms = slices.Clone(e.terms)
	return &c
}

type exponentialFields struct {
	Terms []ExpTerm `yaml:"terms" json:"terms"`
}

func (e *Exponential) fields() exponentialFields {
	t := e.terms
	if t == nil {
		t = []ExpTerm{}
	}
	return exponentialFields{Terms: t}
}

// MarshalYAML writes the terms in order.
func (e *Exponential) MarshalYAML() (any, error) { return e.fields(), nil }

// MarshalJSON writes the same fields as MarshalYAML.
func (e *Exponential) MarshalJSON() ([]byte, error) { return json.Marshal(e.fields()) }

// UnmarshalYAML decodes the fields and reruns the constructor checks.
func (e *Exponential) UnmarshalYAML(node *yaml.Node) error {
	var f exponentialFields
	if err := decodeFields(node, &f, "terms"); err != nil {
		return err
	}
	built, err := NewExponential(f.Terms)
	if err != nil {
		return err
	}
	*e = *built
	return nil
}
