package dim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionAlgebra(t *testing.T) {
	assert.Equal(t, Power, Voltage.Mul(Current))
	assert.Equal(t, Resistance, Voltage.Div(Current))
	assert.Equal(t, Area, Length.Pow(2))
	assert.Equal(t, Frequency, Time.Inv())
	assert.Equal(t, Resistivity, Resistance.Mul(Length))
	assert.Equal(t, None, Power.Div(Power))
	assert.True(t, Length.Div(Length).IsNone())
	assert.False(t, Length.IsNone())
}

func TestDimensionCheckedAlgebra(t *testing.T) {
	d, err := Voltage.CheckedMul(Current)
	require.NoError(t, err)
	assert.Equal(t, Power, d)

	d, err = Voltage.CheckedDiv(Current)
	require.NoError(t, err)
	assert.Equal(t, Resistance, d)

	d, err = None.CheckedPow(1 << 40)
	require.NoError(t, err)
	assert.Equal(t, None, d)

	d, err = Length.CheckedPow(-MaxExponent)
	require.NoError(t, err)
	assert.Equal(t, Dimension{Meter: -MaxExponent}, d)

	tests := []struct {
		name string
		fn   func() (Dimension, error)
	}{
		{"pow wraps to none", func() (Dimension, error) { return Length.CheckedPow(256) }},
		{"pow past range", func() (Dimension, error) { return Area.CheckedPow(64) }},
		{"mul", func() (Dimension, error) { return Length.CheckedMul(Dimension{Meter: MaxExponent}) }},
		{"div", func() (Dimension, error) { return Dimension{Meter: -MaxExponent}.CheckedDiv(Length) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			assert.ErrorIs(t, err, ErrExponentRange)
		})
	}
}

func TestDimensionStringExtremeExponent(t *testing.T) {
	assert.Equal(t, "1/m^128", Dimension{Meter: -128}.String())
}

func TestDimensionString(t *testing.T) {
	tests := []struct {
		dim  Dimension
		want string
	}{
		{None, "1"},
		{Length, "m"},
		{Area, "m^2"},
		{Frequency, "1/s"},
		{Power, "kg*m^2/s^3"},
		{Voltage, "kg*m^2/s^3/A"},
		{Resistivity, "kg*m^3/s^3/A^2"},
		{Dimension{Kelvin: -1}, "1/K"},
		{Dimension{Mol: 1, Candela: 1}, "mol*cd"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dim.String())
		})
	}
}

func TestQuantityArithmetic(t *testing.T) {
	a := New(2, Length)
	b := New(3, Length)

	sum, err := a.Add(b)
	assert.NoError(t, err)
	assert.Equal(t, New(5, Length), sum)

	diff, err := a.Sub(b)
	assert.NoError(t, err)
	assert.Equal(t, New(-1, Length), diff)

	_, err = a.Add(New(1, Time))
	var mismatch *MismatchError
	assert.ErrorAs(t, err, &mismatch)
	assert.Equal(t, Length, mismatch.Expected)
	assert.Equal(t, Time, mismatch.Found)
	assert.Equal(t, "dimension mismatch: expected m, found s", err.Error())

	assert.Equal(t, New(6, Area), a.Mul(b))
	assert.Equal(t, New(2, Velocity), New(4, Length).Div(New(2, Time)))
	assert.Equal(t, New(8, Volume), a.Pow(3))
	assert.Equal(t, New(-2, Length), a.Scale(-1))
}

func TestQuantityString(t *testing.T) {
	assert.Equal(t, "2", Scalar(2).String())
	assert.Equal(t, "2.5 kg*m^2/s^3", New(2.5, Power).String())
	assert.Equal(t, "0.5 /K", New(0.5, Dimension{Kelvin: -1}).String())
	assert.Equal(t, "1e-06 m", New(1e-6, Length).String())
}
