package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/unit"

	"github.com/roach88/varq/pkg/dim"
)

func TestLinearDimensions(t *testing.T) {
	tests := []struct {
		name      string
		slope     dim.Dimension
		base      dim.Dimension
		influence dim.Dimension
	}{
		{"dimensionless", dim.None, dim.None, dim.None},
		{"power per voltage", dim.Voltage, dim.Power, dim.Current},
		{"resistance per kelvin", dim.Resistance.Div(dim.Temperature), dim.Resistance, dim.Temperature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLinear(dim.New(1, tt.slope), dim.New(1, tt.base))
			assert.Equal(t, tt.influence, l.InfluenceDim())
			assert.Equal(t, tt.base, l.OutputDim())
		})
	}
}

func TestLinearCall(t *testing.T) {
	l := NewLinear(dim.Scalar(0.5), dim.Scalar(-3))
	assert.Equal(t, dim.Scalar(-2), l.Call([]dim.Quantity{dim.Scalar(2)}))
	assert.Equal(t, dim.Scalar(-3), l.Call(nil))
	assert.Equal(t, dim.Scalar(-3), l.Call([]dim.Quantity{dim.New(2, dim.Length)}))
}

func TestLinearWithUnits(t *testing.T) {
	l := NewLinear(dim.New(2, dim.Voltage), dim.New(0.5, dim.Power))

	tests := []struct {
		current unit.Current
		want    float64
	}{
		{1, 2.5},
		{2.5, 5.5},
	}
	for _, tt := range tests {
		got := l.Call([]dim.Quantity{Of(unit.Temperature(300)), Of(tt.current)})
		assert.InDelta(t, tt.want, got.Value, 1e-12)
		assert.Equal(t, dim.Power, got.Dim)
	}

	assert.Equal(t, dim.New(0.5, dim.Power), l.Call([]dim.Quantity{Of(unit.Temperature(300))}))
}

func TestLinearAccessors(t *testing.T) {
	l := NewLinear(dim.New(2, dim.Voltage), dim.New(0.5, dim.Power))
	assert.Equal(t, dim.New(2, dim.Voltage), l.Slope())
	assert.Equal(t, dim.New(0.5, dim.Power), l.BaseValue())
}
