// Package kinds adds statically typed quantities that gonum.org/v1/gonum/unit
// does not provide. Each type follows gonum's conventions: the value is in
// coherent SI units, Unit converts to a *unit.Unit and From converts back,
// failing on a dimension mismatch.
package kinds

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/unit"
)

var errMismatch = errors.New("dimension mismatch")

// Resistivity is an electrical resistivity in Ω·m.
type Resistivity float64

// OhmMeter is one unit of Resistivity.
const OhmMeter Resistivity = 1

// Unit converts r to a *unit.Unit.
func (r Resistivity) Unit() *unit.Unit {
	return unit.New(float64(r), unit.Dimensions{
		unit.MassDim:    1,
		unit.LengthDim:  3,
		unit.TimeDim:    -3,
		unit.CurrentDim: -2,
	})
}

// From sets r from u, or to NaN with an error if u is not a resistivity.
func (r *Resistivity) From(u unit.Uniter) error {
	if !unit.DimensionsMatch(u, OhmMeter) {
		*r = Resistivity(math.NaN())
		return errMismatch
	}
	*r = Resistivity(u.Unit().Value())
	return nil
}

// TemperatureCoefficient is a relative change per kelvin, 1/K.
type TemperatureCoefficient float64

// PerKelvin is one unit of TemperatureCoefficient.
const PerKelvin TemperatureCoefficient = 1

func (c TemperatureCoefficient) Unit() *unit.Unit {
	return unit.New(float64(c), unit.Dimensions{unit.TemperatureDim: -1})
}

func (c *TemperatureCoefficient) From(u unit.Uniter) error {
	if !unit.DimensionsMatch(u, PerKelvin) {
		*c = TemperatureCoefficient(math.NaN())
		return errMismatch
	}
	*c = TemperatureCoefficient(u.Unit().Value())
	return nil
}

// Density is a mass density in kg/m³.
type Density float64

// KilogramPerCubicMeter is one unit of Density.
const KilogramPerCubicMeter Density = 1

func (d Density) Unit() *unit.Unit {
	return unit.New(float64(d), unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3})
}

func (d *Density) From(u unit.Uniter) error {
	if !unit.DimensionsMatch(u, KilogramPerCubicMeter) {
		*d = Density(math.NaN())
		return errMismatch
	}
	*d = Density(u.Unit().Value())
	return nil
}
