package dim

import (
	"errors"
	"fmt"
	"strings"
)

// MaxExponent bounds every exponent of a Dimension to
// [-MaxExponent, MaxExponent]. The checked operations reject results outside
// that range.
const MaxExponent = 127

// ErrExponentRange reports an exponent that does not fit a Dimension.
var ErrExponentRange = errors.New("dimension exponent out of range")

// Dimension is a vector of exponents over the SI base dimensions.
// The zero value is dimensionless. Dimensions are comparable with ==.
type Dimension struct {
	Second   int8
	Meter    int8
	Kelvin   int8
	Kilogram int8
	Ampere   int8
	Mol      int8
	Candela  int8
}

// Base and commonly derived dimensions.
var (
	None              = Dimension{}
	Time              = Dimension{Second: 1}
	Length            = Dimension{Meter: 1}
	Temperature       = Dimension{Kelvin: 1}
	Mass              = Dimension{Kilogram: 1}
	Current           = Dimension{Ampere: 1}
	Amount            = Dimension{Mol: 1}
	LuminousIntensity = Dimension{Candela: 1}

	Area                = Dimension{Meter: 2}
	Volume              = Dimension{Meter: 3}
	Frequency           = Dimension{Second: -1}
	Velocity            = Dimension{Meter: 1, Second: -1}
	Acceleration        = Dimension{Meter: 1, Second: -2}
	Density             = Dimension{Kilogram: 1, Meter: -3}
	Force               = Dimension{Kilogram: 1, Meter: 1, Second: -2}
	Pressure            = Dimension{Kilogram: 1, Meter: -1, Second: -2}
	Energy              = Dimension{Kilogram: 1, Meter: 2, Second: -2}
	Torque              = Energy
	Power               = Dimension{Kilogram: 1, Meter: 2, Second: -3}
	Charge              = Dimension{Ampere: 1, Second: 1}
	Voltage             = Dimension{Kilogram: 1, Meter: 2, Second: -3, Ampere: -1}
	Resistance          = Dimension{Kilogram: 1, Meter: 2, Second: -3, Ampere: -2}
	Conductance         = Dimension{Kilogram: -1, Meter: -2, Second: 3, Ampere: 2}
	Resistivity         = Dimension{Kilogram: 1, Meter: 3, Second: -3, Ampere: -2}
	Capacitance         = Dimension{Kilogram: -1, Meter: -2, Second: 4, Ampere: 2}
	Inductance          = Dimension{Kilogram: 1, Meter: 2, Second: -2, Ampere: -2}
	MagneticFlux        = Dimension{Kilogram: 1, Meter: 2, Second: -2, Ampere: -1}
	MagneticFluxDensity = Dimension{Kilogram: 1, Second: -2, Ampere: -1}
)

// Mul returns the dimension of a product: exponents add. Exponents wrap on
// overflow; use CheckedMul for dimensions built from untrusted input.
func (d Dimension) Mul(o Dimension) Dimension {
	return Dimension{
		Second:   d.Second + o.Second,
		Meter:    d.Meter + o.Meter,
		Kelvin:   d.Kelvin + o.Kelvin,
		Kilogram: d.Kilogram + o.Kilogram,
		Ampere:   d.Ampere + o.Ampere,
		Mol:      d.Mol + o.Mol,
		Candela:  d.Candela + o.Candela,
	}
}

// Div returns the dimension of a quotient: exponents subtract.
func (d Dimension) Div(o Dimension) Dimension {
	return d.Mul(o.Inv())
}

// Pow scales every exponent by n. Like Mul it wraps on overflow; see
// CheckedPow.
func (d Dimension) Pow(n int) Dimension {
	m := int8(n)
	return Dimension{
		Second:   d.Second * m,
		Meter:    d.Meter * m,
		Kelvin:   d.Kelvin * m,
		Kilogram: d.Kilogram * m,
		Ampere:   d.Ampere * m,
		Mol:      d.Mol * m,
		Candela:  d.Candela * m,
	}
}

// CheckedMul is Mul that fails with ErrExponentRange instead of wrapping.
func (d Dimension) CheckedMul(o Dimension) (Dimension, error) {
	a, b := d.exponents(), o.exponents()
	for i := range a {
		a[i] += b[i]
	}
	return fromExponents(a)
}

// CheckedDiv is Div that fails with ErrExponentRange instead of wrapping.
func (d Dimension) CheckedDiv(o Dimension) (Dimension, error) {
	a, b := d.exponents(), o.exponents()
	for i := range a {
		a[i] -= b[i]
	}
	return fromExponents(a)
}

// CheckedPow is Pow that fails with ErrExponentRange instead of wrapping.
func (d Dimension) CheckedPow(n int) (Dimension, error) {
	if d.IsNone() {
		return None, nil
	}
	if n > MaxExponent || n < -MaxExponent {
		return None, fmt.Errorf("%w: %s^%d", ErrExponentRange, d, n)
	}
	a := d.exponents()
	for i := range a {
		a[i] *= n
	}
	return fromExponents(a)
}

func (d Dimension) exponents() [7]int {
	return [7]int{
		int(d.Second), int(d.Meter), int(d.Kelvin), int(d.Kilogram),
		int(d.Ampere), int(d.Mol), int(d.Candela),
	}
}

func fromExponents(e [7]int) (Dimension, error) {
	for _, v := range e {
		if v > MaxExponent || v < -MaxExponent {
			return None, fmt.Errorf("%w: %d", ErrExponentRange, v)
		}
	}
	return Dimension{
		Second:   int8(e[0]),
		Meter:    int8(e[1]),
		Kelvin:   int8(e[2]),
		Kilogram: int8(e[3]),
		Ampere:   int8(e[4]),
		Mol:      int8(e[5]),
		Candela:  int8(e[6]),
	}, nil
}

// Inv returns the reciprocal dimension.
func (d Dimension) Inv() Dimension {
	return d.Pow(-1)
}

// IsNone reports whether d is dimensionless.
func (d Dimension) IsNone() bool {
	return d == None
}

// String formats d in base SI symbols, e.g. "kg*m^2/s^3/A".
// The dimensionless value formats as "1".
func (d Dimension) String() string {
	s := d.unitSuffix()
	switch {
	case s == "":
		return "1"
	case strings.HasPrefix(s, "/"):
		return "1" + s
	default:
		return s
	}
}

// unitSuffix renders the exponents as a unit expression that Parse accepts.
// Pure denominators render with a leading "/" so that "<value> /K" reads
// naturally after a number.
func (d Dimension) unitSuffix() string {
	var num, den []string

	add := func(sym string, exp int8) {
		e := int(exp)
		switch {
		case e == 0:
			return
		case e == 1:
			num = append(num, sym)
		case e > 1:
			num = append(num, fmt.Sprintf("%s^%d", sym, e))
		case e == -1:
			den = append(den, sym)
		default:
			den = append(den, fmt.Sprintf("%s^%d", sym, -e))
		}
	}

	add("kg", d.Kilogram)
	add("m", d.Meter)
	add("s", d.Second)
	add("A", d.Ampere)
	add("K", d.Kelvin)
	add("mol", d.Mol)
	add("cd", d.Candela)

	var b strings.Builder
	b.WriteString(strings.Join(num, "*"))
	for _, s := range den {
		b.WriteString("/")
		b.WriteString(s)
	}
	return b.String()
}
