package dim

import "math"

// Quantity is a scalar in coherent SI base units paired with its dimension.
// It is a plain value: every operation returns a new Quantity.
type Quantity struct {
	Value float64
	Dim   Dimension
}

// New creates a Quantity.
func New(value float64, d Dimension) Quantity {
	return Quantity{Value: value, Dim: d}
}

// Scalar creates a dimensionless Quantity.
func Scalar(value float64) Quantity {
	return Quantity{Value: value}
}

// Add sums two quantities of the same dimension.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	if q.Dim != o.Dim {
		return Quantity{}, &MismatchError{Expected: q.Dim, Found: o.Dim}
	}
	return Quantity{Value: q.Value + o.Value, Dim: q.Dim}, nil
}

// Sub subtracts o from q; both must share a dimension.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	if q.Dim != o.Dim {
		return Quantity{}, &MismatchError{Expected: q.Dim, Found: o.Dim}
	}
	return Quantity{Value: q.Value - o.Value, Dim: q.Dim}, nil
}

// Mul multiplies values and combines dimensions.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{Value: q.Value * o.Value, Dim: q.Dim.Mul(o.Dim)}
}

// Div divides values and combines dimensions.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{Value: q.Value / o.Value, Dim: q.Dim.Div(o.Dim)}
}

// Scale multiplies the value by a plain factor, keeping the dimension.
func (q Quantity) Scale(f float64) Quantity {
	return Quantity{Value: q.Value * f, Dim: q.Dim}
}

// Pow raises q to an integer power.
func (q Quantity) Pow(n int) Quantity {
	return Quantity{Value: math.Pow(q.Value, float64(n)), Dim: q.Dim.Pow(n)}
}

// String formats q so that Parse(q.String()) reproduces it exactly:
// "2.5 kg*m^2/s^3", "0.5 /K", or a bare number when dimensionless.
func (q Quantity) String() string {
	v := FormatValue(q.Value)
	if q.Dim.IsNone() {
		return v
	}
	return v + " " + q.Dim.unitSuffix()
}
