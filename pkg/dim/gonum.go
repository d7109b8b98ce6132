package dim

import (
	"fmt"

	"gonum.org/v1/gonum/unit"
)

// FromGonum converts gonum dimensions to a Dimension. Gonum's angle
// dimension has no counterpart and is rejected, as are exponents that do not
// fit in an int8.
func FromGonum(d unit.Dimensions) (Dimension, error) {
	var out Dimension
	for k, e := range d {
		if e < -128 || e > 127 {
			return None, fmt.Errorf("exponent %d of %v out of range", e, k)
		}
		v := int8(e)
		switch k {
		case unit.TimeDim:
			out.Second = v
		case unit.LengthDim:
			out.Meter = v
		case unit.TemperatureDim:
			out.Kelvin = v
		case unit.MassDim:
			out.Kilogram = v
		case unit.CurrentDim:
			out.Ampere = v
		case unit.MoleDim:
			out.Mol = v
		case unit.LuminousIntensityDim:
			out.Candela = v
		default:
			if e != 0 {
				return None, fmt.Errorf("unsupported gonum dimension %v", k)
			}
		}
	}
	return out, nil
}

// Gonum returns d as gonum dimensions, omitting zero exponents.
func (d Dimension) Gonum() unit.Dimensions {
	out := unit.Dimensions{}
	set := func(k unit.Dimension, e int8) {
		if e != 0 {
			out[k] = int(e)
		}
	}
	set(unit.TimeDim, d.Second)
	set(unit.LengthDim, d.Meter)
	set(unit.TemperatureDim, d.Kelvin)
	set(unit.MassDim, d.Kilogram)
	set(unit.CurrentDim, d.Ampere)
	set(unit.MoleDim, d.Mol)
	set(unit.LuminousIntensityDim, d.Candela)
	return out
}

// FromUniter converts any gonum quantity, typed or *unit.Unit.
func FromUniter(u unit.Uniter) (Quantity, error) {
	gu := u.Unit()
	d, err := FromGonum(gu.Dimensions())
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: gu.Value(), Dim: d}, nil
}

// Unit converts q to a gonum unit value.
func (q Quantity) Unit() *unit.Unit {
	return unit.New(q.Value, q.Dim.Gonum())
}
