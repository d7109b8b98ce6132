// Package model loads variable quantities from CUE model files.
//
// A model directory holds one or more .cue files contributing to a single
// top-level "quantities" struct. Each entry declares its unit and its value:
//
//	quantities: {
//		winding_resistance: {
//			unit:        "Ohm"
//			description: "copper winding, 20 °C reference"
//			value: FirstOrderTaylor: {
//				base_value:      "0.5 Ohm"
//				slope:           "0.00393 / K"
//				expansion_point: "293.15 K"
//			}
//		}
//		core_density: {
//			unit:  "kg/m^3"
//			value: 7650
//		}
//	}
//
// The unit fixes the quantity's dimension. The value is decoded exactly like
// a quantity.Dynamic payload: a number is an SI value in that dimension, a
// string is a unit expression, a struct is a tagged quantity function whose
// constructor and dimension self-test run during compilation.
//
// Compile errors carry CUE source positions and stable codes:
//
//	E201  unit is missing
//	E202  unit does not parse
//	E203  value is missing
//	E204  value does not decode for the declared unit
package model
