// Package dim provides the dimensional algebra used by varq.
//
// A Dimension is a fixed vector of integer exponents over the seven SI base
// dimensions (time, length, temperature, mass, current, amount of substance,
// luminous intensity). A Quantity pairs a float64 scalar, always expressed in
// coherent SI base units, with a Dimension.
//
// Two quantities are unit-compatible iff their dimensions compare equal with
// ==. Arithmetic that requires equal dimensions (Add, Sub) returns a
// *MismatchError instead of silently producing a meaningless value.
//
// # Unit expressions
//
// Parse understands a small grammar used throughout config files:
//
//	2 ohm*m        0.5 / K        1e-3 T        1/(2.0e6) Ohm*m
//	-3.0 V         2.0 m^3        9.81 m/s^2    4 mm²
//
// Juxtaposition multiplies, SI prefixes are accepted on every symbol, and
// Unicode forms (Ω, µ, ², ⁻¹, ·) are folded with NFKC before scanning.
//
// # Interop
//
// FromUniter and Dimension.Gonum bridge to gonum.org/v1/gonum/unit, whose
// typed quantities (unit.Power, unit.Length, ...) are the statically typed
// kinds used by package quantity.
package dim
