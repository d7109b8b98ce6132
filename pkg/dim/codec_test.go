package dim

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type holder struct {
	Value Quantity `yaml:"value" json:"value"`
}

func TestQuantityYAMLDecode(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Quantity
	}{
		{"number", "value: 3\n", Scalar(3)},
		{"float", "value: 1.5e-3\n", Scalar(1.5e-3)},
		{"quoted number", "value: \"3\"\n", Scalar(3)},
		{"millitesla", "value: 1 mT\n", New(1e-3, MagneticFluxDensity)},
		{"base units", "value: 2.5 kg*m^2/s^3\n", New(2.5, Power)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h holder
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &h))
			assert.InDelta(t, tt.want.Value, h.Value.Value, 1e-15)
			assert.Equal(t, tt.want.Dim, h.Value.Dim)
		})
	}
}

func TestQuantityYAMLDecodeErrors(t *testing.T) {
	var h holder
	assert.Error(t, yaml.Unmarshal([]byte("value: 2 parsec\n"), &h))
	assert.Error(t, yaml.Unmarshal([]byte("value: [1, 2]\n"), &h))
}

func TestQuantityYAMLRoundTrip(t *testing.T) {
	for _, q := range []Quantity{Scalar(-4), New(2.5, Power), New(0.004, Dimension{Kelvin: -1})} {
		out, err := yaml.Marshal(holder{Value: q})
		require.NoError(t, err)

		var back holder
		require.NoError(t, yaml.Unmarshal(out, &back))
		assert.Equal(t, q, back.Value)
	}
}

func TestQuantityJSON(t *testing.T) {
	out, err := json.Marshal(Scalar(2))
	require.NoError(t, err)
	assert.JSONEq(t, `2`, string(out))

	out, err = json.Marshal(New(1, Length))
	require.NoError(t, err)
	assert.JSONEq(t, `"1 m"`, string(out))

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"value": "3 kOhm"}`), &h))
	assert.Equal(t, New(3000, Resistance), h.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"value": 0.25}`), &h))
	assert.Equal(t, Scalar(0.25), h.Value)

	assert.Error(t, json.Unmarshal([]byte(`{"value": true}`), &h))
	assert.Error(t, json.Unmarshal([]byte(`{"value": "3 bogus"}`), &h))
}

func TestIsNumberNode(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("[1, 2.5, '3', abc, 1 m]"), &doc))
	seq := doc.Content[0].Content
	assert.True(t, IsNumberNode(seq[0]))
	assert.True(t, IsNumberNode(seq[1]))
	assert.False(t, IsNumberNode(seq[2]))
	assert.False(t, IsNumberNode(seq[3]))
	assert.False(t, IsNumberNode(seq[4]))
}
