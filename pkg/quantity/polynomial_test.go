package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/varq/pkg/dim"
)

func scalars(vs ...float64) []dim.Quantity {
	out := make([]dim.Quantity, len(vs))
	for i, v := range vs {
		out[i] = dim.Scalar(v)
	}
	return out
}

func TestPolynomialCall(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []float64
		x      float64
		want   float64
	}{
		{"linear", []float64{3, 2}, 2, 8},
		{"quadratic", []float64{-1, 3, 2}, 2, 4},
		{"constant", []float64{7}, 100, 7},
		{"cubic", []float64{1, 0, 0, 0}, 3, 27},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPolynomial(scalars(tt.coeffs...))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, p.Call(scalars(tt.x)).Value, 1e-12)
		})
	}
}

func TestPolynomialNoMatch(t *testing.T) {
	p, err := NewPolynomial(scalars(-1, 3, 2))
	require.NoError(t, err)

	assert.Equal(t, dim.Scalar(2), p.Call(nil))
	assert.Equal(t, dim.Scalar(2), p.Call([]dim.Quantity{dim.New(2, dim.Length)}))
}

func TestPolynomialWithUnits(t *testing.T) {
	p, err := NewPolynomial([]dim.Quantity{
		dim.New(-1, dim.Length),
		dim.New(3, dim.Area),
		dim.New(2, dim.Volume),
	})
	require.NoError(t, err)

	assert.Equal(t, dim.Length, p.InfluenceDim())
	assert.Equal(t, dim.Volume, p.OutputDim())
	assert.Equal(t, dim.New(4, dim.Volume), p.Call([]dim.Quantity{dim.New(2, dim.Length)}))
}

func TestPolynomialFluxDensityLoss(t *testing.T) {
	wPerT := dim.Power.Div(dim.MagneticFluxDensity)
	p, err := NewPolynomial([]dim.Quantity{
		dim.New(2, wPerT.Div(dim.MagneticFluxDensity)),
		dim.New(0.5, wPerT),
		dim.New(3, dim.Power),
	})
	require.NoError(t, err)

	assert.Equal(t, 3.0, p.Call(nil).Value)
	got := p.Call([]dim.Quantity{dim.New(3, dim.MagneticFluxDensity), dim.New(-2, dim.Force)})
	assert.InDelta(t, 22.5, got.Value, 1e-12)
}

func TestPolynomialMismatch(t *testing.T) {
	_, err := NewPolynomial([]dim.Quantity{
		dim.New(1, dim.None),
		dim.New(2, dim.None),
		dim.New(3, dim.Area),
		dim.New(4, dim.Volume),
	})
	require.Error(t, err)

	var me *dim.MismatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, dim.Volume, me.Expected)
	assert.Equal(t, dim.Area, me.Found)

	_, err = NewPolynomial([]dim.Quantity{
		dim.New(1, dim.None),
		dim.New(2, dim.Length),
		dim.New(3, dim.Area),
		dim.New(4, dim.Volume),
	})
	assert.NoError(t, err)
}

func TestPolynomialExponentRange(t *testing.T) {
	// x has dimension m, so coefficient k from the end carries m^(1-k).
	const n = 130
	coeffs := make([]dim.Quantity, n)
	for k := range n {
		coeffs[n-1-k] = dim.New(1, dim.Dimension{Meter: int8(1 - min(k, 128))})
	}

	_, err := NewPolynomial(coeffs[n-128:])
	require.NoError(t, err)

	_, err = NewPolynomial(coeffs)
	require.Error(t, err)
	assert.ErrorIs(t, err, dim.ErrExponentRange)
	assert.False(t, IsDimensionMismatch(err))
}

func TestPolynomialDegenerate(t *testing.T) {
	empty, err := NewPolynomial(nil)
	require.NoError(t, err)
	assert.Equal(t, dim.Scalar(0), empty.Call(nil))
	assert.Equal(t, dim.None, empty.InfluenceDim())
	assert.Equal(t, dim.Scalar(0), empty.Call(scalars(5)))

	single, err := NewPolynomial([]dim.Quantity{dim.New(3, dim.Power)})
	require.NoError(t, err)
	assert.Equal(t, dim.None, single.InfluenceDim())
	assert.Equal(t, dim.New(3, dim.Power), single.Call(scalars(5)))
}

func TestPolynomialCopiesInput(t *testing.T) {
	coeffs := scalars(1, 2)
	p, err := NewPolynomial(coeffs)
	require.NoError(t, err)

	coeffs[1] = dim.Scalar(100)
	assert.Equal(t, dim.Scalar(2), p.Call(nil))

	out := p.Coefficients()
	out[0] = dim.Scalar(-1)
	assert.Equal(t, dim.Scalar(1), p.Coefficients()[0])
}
