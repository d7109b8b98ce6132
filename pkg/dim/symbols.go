package dim

import "strings"

// symbol is a named unit: its factor to coherent SI and its dimension.
type symbol struct {
	factor float64
	dim    Dimension
}

// symbols lists every unit name Parse accepts without a prefix. Keys are in
// NFKC form, so the ohm sign and the micro sign never appear here.
var symbols = map[string]symbol{
	"s":   {1, Time},
	"m":   {1, Length},
	"g":   {1e-3, Mass},
	"kg":  {1, Mass},
	"K":   {1, Temperature},
	"A":   {1, Current},
	"mol": {1, Amount},
	"cd":  {1, LuminousIntensity},

	"Hz":     {1, Frequency},
	"N":      {1, Force},
	"Pa":     {1, Pressure},
	"J":      {1, Energy},
	"W":      {1, Power},
	"C":      {1, Charge},
	"V":      {1, Voltage},
	"F":      {1, Capacitance},
	"Ohm":    {1, Resistance},
	"ohm":    {1, Resistance},
	"\u03a9": {1, Resistance}, // Ω
	"S":      {1, Conductance},
	"Wb":     {1, MagneticFlux},
	"T":      {1, MagneticFluxDensity},
	"H":      {1, Inductance},

	"min": {60, Time},
	"h":   {3600, Time},
	"l":   {1e-3, Volume},
	"L":   {1e-3, Volume},
	"bar": {1e5, Pressure},
}

// prefixes is ordered longest first so "da" wins over "d".
var prefixes = []struct {
	name   string
	factor float64
}{
	{"da", 1e1},
	{"Y", 1e24},
	{"Z", 1e21},
	{"E", 1e18},
	{"P", 1e15},
	{"T", 1e12},
	{"G", 1e9},
	{"M", 1e6},
	{"k", 1e3},
	{"h", 1e2},
	{"d", 1e-1},
	{"c", 1e-2},
	{"m", 1e-3},
	{"u", 1e-6},
	{"\u03bc", 1e-6}, // μ
	{"n", 1e-9},
	{"p", 1e-12},
	{"f", 1e-15},
	{"a", 1e-18},
}

// lookupSymbol resolves a unit name. An exact match always beats a prefixed
// reading, so "T" is tesla, "min" is minute and "cd" is candela.
func lookupSymbol(name string) (symbol, bool) {
	if s, ok := symbols[name]; ok {
		return s, true
	}
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(name, p.name)
		if !ok || rest == "" {
			continue
		}
		if s, ok := symbols[rest]; ok {
			return symbol{factor: s.factor * p.factor, dim: s.dim}, true
		}
	}
	return symbol{}, false
}
