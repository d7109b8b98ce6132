package quantity

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/varq/pkg/dim"
)

// Polynomial is a0·xⁿ + a1·xⁿ⁻¹ + … + an, evaluated in Horner form.
//
// The dimension of x is an/an-1 and the output has the dimension of an.
// Every coefficient ai at distance k from the end must satisfy
// ai·x^k == an. A check whose exponents leave the range of a dimension fails
// with dim.ErrExponentRange. With fewer than two coefficients x is dimensionless, and an
// empty polynomial evaluates to a dimensionless zero.
type Polynomial struct {
	coefficients []dim.Quantity
	values       []float64
	influence    dim.Dimension
	fallback     dim.Quantity
}

// NewPolynomial creates a polynomial from coefficients ordered highest power
// first. The slice is copied.
func NewPolynomial(coefficients []dim.Quantity) (*Polynomial, error) {
	coefficients = slices.Clone(coefficients)
	n := len(coefficients)

	var influence dim.Dimension
	if n > 1 {
		d, err := coefficients[n-1].Dim.CheckedDiv(coefficients[n-2].Dim)
		if err != nil {
			return nil, err
		}
		influence = d
	}

	var fallback dim.Quantity
	if n > 0 {
		fallback = coefficients[n-1]
		for k := 1; k < n; k++ {
			xk, err := influence.CheckedPow(k)
			if err != nil {
				return nil, fmt.Errorf("coefficient %d: %w", n-1-k, err)
			}
			got, err := coefficients[n-1-k].Dim.CheckedMul(xk)
			if err != nil {
				return nil, fmt.Errorf("coefficient %d: %w", n-1-k, err)
			}
			if got != fallback.Dim {
				return nil, &dim.MismatchError{Expected: fallback.Dim, Found: got}
			}
		}
	}

	values := make([]float64, n)
	for i, c := range coefficients {
		values[i] = c.Value
	}
	return &Polynomial{
		coefficients: coefficients,
		values:       values,
		influence:    influence,
		fallback:     fallback,
	}, nil
}

// Call evaluates the polynomial at the first matching factor, or returns the
// last coefficient when nothing matches.
func (p *Polynomial) Call(factors []dim.Quantity) dim.Quantity {
	return MatchFactor(factors, p.influence,
		func(x dim.Quantity) dim.Quantity {
			return dim.New(horner(p.values, x.Value), p.fallback.Dim)
		},
		func() dim.Quantity { return p.fallback },
	)
}

func horner(coefficients []float64, x float64) float64 {
	var acc float64
	for _, c := range coefficients {
		acc = acc*x + c
	}
	return acc
}

// Coefficients returns a copy of the coefficients, highest power first.
func (p *Polynomial) Coefficients() []dim.Quantity { return slices.Clone(p.coefficients) }

// InfluenceDim returns the dimension of x.
func (p *Polynomial) InfluenceDim() dim.Dimension { return p.influence }

// OutputDim returns the dimension of the last coefficient.
func (p *Polynomial) OutputDim() dim.Dimension { return p.fallback.Dim }

// Clone returns a deep copy.
func (p *Polynomial) Clone() Function {
	return &Polynomial{
		coefficients: slices.Clone(p.coefficients),
		values:       slices.Clone(p.values),
		influence:    p.influence,
		fallback:     p.fallback,
	}
}

type polynomialFields struct {
	Coefficients []dim.Quantity `yaml:"coefficients" json:"coefficients"`
}

func (p *Polynomial) fields() polynomialFields {
	c := p.coefficients
	if c == nil {
		c = []dim.Quantity{}
	}
	return polynomialFields{Coefficients: c}
}

// MarshalYAML writes the coefficients, highest power first.
func (p *Polynomial) MarshalYAML() (any, error) { return p.fields(), nil }

// MarshalJSON writes the same fields as MarshalYAML.
func (p *Polynomial) MarshalJSON() ([]byte, error) { return json.Marshal(p.fields()) }

// UnmarshalYAML decodes the fields and reruns the constructor checks.
func (p *Polynomial) UnmarshalYAML(node *yaml.Node) error {
	var f polynomialFields
	if err := decodeFields(node, &f, "coefficients"); err != nil {
		return err
	}
	built, err := NewPolynomial(f.Coefficients)
	if err != nil {
		return err
	}
	*p = *built
	return nil
}
