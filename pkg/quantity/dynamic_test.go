package quantity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/unit"
	"gopkg.in/yaml.v3"

	"github.com/roach88/varq/pkg/dim"
)

func TestDynamicDecode(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		constant bool
		want     float64
	}{
		{"bare number", "0.002", true, 0.002},
		{"unit string", "2 mOhm", true, 0.002},
		{"json string", `"3 kOhm"`, true, 3000},
		{"function", "Linear: {slope: 1 Ohm/K, base_value: 5 Ohm}", false, 5},
		{"json function", `{"Linear": {"slope": "1 Ohm/K", "base_value": "5 Ohm"}}`, false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := UnmarshalDynamic(dim.Resistance, []byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.constant, d.IsConstant())
			assert.Equal(t, dim.Resistance, d.Dim())

			got := d.Get(nil)
			assert.InDelta(t, tt.want, got.Value, 1e-12)
			assert.Equal(t, dim.Resistance, got.Dim)
		})
	}
}

func TestDynamicDecodeErrors(t *testing.T) {
	_, err := UnmarshalDynamic(dim.Resistance, []byte("2 mT"))
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.True(t, IsDimensionMismatch(de.Constant))

	_, err = UnmarshalDynamic(dim.Power, []byte("Linear: {slope: 1 Ohm/K, base_value: 5 Ohm}"))
	require.ErrorAs(t, err, &de)
	assert.True(t, IsDimensionMismatch(de.Function))

	_, err = UnmarshalDynamic(dim.Power, []byte("[1, 2]"))
	assert.Error(t, err)
}

func TestDynamicContractViolation(t *testing.T) {
	d, err := DynamicFunction(dim.Power, driftingFunction{})
	require.NoError(t, err)
	assert.Equal(t, dim.New(1, dim.Power), d.Get(nil))

	cv := recoverViolation(t, func() { d.Get(scalars(1)) })
	assert.Equal(t, dim.Power, cv.Expected)
	assert.Equal(t, dim.Voltage, cv.Found)

	_, err = DynamicFunction(dim.Voltage, driftingFunction{})
	assert.True(t, IsDimensionMismatch(err))

	_, err = DynamicFunction(dim.Voltage, nil)
	assert.Error(t, err)
}

func TestDynamicRoundTrip(t *testing.T) {
	fn, err := NewPolynomial([]dim.Quantity{dim.New(2, dim.Power.Div(dim.Temperature)), dim.New(10, dim.Power)})
	require.NoError(t, err)
	withFn, err := DynamicFunction(dim.Power, fn)
	require.NoError(t, err)

	for name, d := range map[string]Dynamic{
		"constant": DynamicConstant(dim.New(42, dim.Power)),
		"function": withFn,
	} {
		in := []dim.Quantity{dim.New(3, dim.Temperature)}

		y, err := yaml.Marshal(d)
		require.NoError(t, err, name)
		back, err := UnmarshalDynamic(dim.Power, y)
		require.NoError(t, err, name)
		assert.Equal(t, d.Get(in), back.Get(in), name)

		j, err := json.Marshal(d)
		require.NoError(t, err, name)
		back, err = UnmarshalDynamic(dim.Power, j)
		require.NoError(t, err, name)
		assert.Equal(t, d.Get(in), back.Get(in), name)
	}
}

func TestDynamicVarQuantityConversion(t *testing.T) {
	q, err := FromFunction[unit.Power](NewLinear(dim.New(2, dim.Voltage), dim.New(0.5, dim.Power)))
	require.NoError(t, err)

	d := q.Dynamic()
	assert.Equal(t, dim.Power, d.Dim())
	assert.Same(t, q.Wrapper().Inner(), d.Function())

	back, err := FromDynamic[unit.Power](d)
	require.NoError(t, err)
	in := []dim.Quantity{Of(unit.Current(3))}
	assert.Equal(t, q.Get(in), back.Get(in))

	c, err := FromDynamic[unit.Power](DynamicConstant(dim.New(5, dim.Power)))
	require.NoError(t, err)
	assert.Equal(t, unit.Power(5), c.Get(nil))

	_, err = FromDynamic[unit.Voltage](DynamicConstant(dim.New(5, dim.Power)))
	assert.True(t, IsDimensionMismatch(err))

	_, err = FromDynamic[unit.Voltage](d)
	assert.True(t, IsDimensionMismatch(err))
}

func TestDynamicClone(t *testing.T) {
	fn, err := NewPolynomial(scalars(1, 2))
	require.NoError(t, err)
	d, err := DynamicFunction(dim.None, fn)
	require.NoError(t, err)

	c := d.Clone()
	assert.NotSame(t, d.Function(), c.Function())
	assert.Equal(t, d.Get(scalars(4)), c.Get(scalars(4)))
}
