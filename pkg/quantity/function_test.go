package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/varq/pkg/dim"
)

func TestMatchFactor(t *testing.T) {
	matched := func(x dim.Quantity) float64 { return x.Value }
	noMatch := func() float64 { return -1 }

	tests := []struct {
		name    string
		factors []dim.Quantity
		want    float64
	}{
		{"nil", nil, -1},
		{"unrelated only", []dim.Quantity{dim.New(3, dim.Time), dim.New(4, dim.Mass)}, -1},
		{"single match", []dim.Quantity{dim.New(3, dim.Time), dim.New(4, dim.Length)}, 4},
		{"first match wins", []dim.Quantity{dim.New(5, dim.Length), dim.New(6, dim.Length)}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchFactor(tt.factors, dim.Length, matched, noMatch))
		})
	}
}

type sharedFunction struct{}

func (sharedFunction) Call([]dim.Quantity) dim.Quantity { return dim.Scalar(1) }

func TestCloneWithoutCloner(t *testing.T) {
	fn := sharedFunction{}
	assert.Equal(t, fn, Clone(fn))
}

func TestCloneWithCloner(t *testing.T) {
	p, err := NewPolynomial([]dim.Quantity{dim.Scalar(1), dim.Scalar(2)})
	assert.NoError(t, err)

	c := Clone(p)
	assert.NotSame(t, p, c)
	assert.Equal(t, p.Call([]dim.Quantity{dim.Scalar(3)}), c.Call([]dim.Quantity{dim.Scalar(3)}))
}
