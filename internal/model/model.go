package model

import (
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/varq/pkg/dim"
	"github.com/roach88/varq/pkg/quantity"
)

// Quantity is one compiled model entry.
type Quantity struct {
	Name        string
	Unit        string
	Description string
	Dim         dim.Dimension
	Value       quantity.Dynamic
}

// Model is the set of quantities of one model directory, sorted by name.
type Model struct {
	Quantities []Quantity
	FileCount  int
}

// Lookup returns the quantity called name.
func (m *Model) Lookup(name string) (*Quantity, bool) {
	i, ok := slices.BinarySearchFunc(m.Quantities, name, func(q Quantity, name string) int {
		return strings.Compare(q.Name, name)
	})
	if !ok {
		return nil, false
	}
	return &m.Quantities[i], true
}

// Names returns the quantity names in order.
func (m *Model) Names() []string {
	names := make([]string, len(m.Quantities))
	for i, q := range m.Quantities {
		names[i] = q.Name
	}
	return names
}

// CompileString compiles CUE source text. Intended for tests and for
// callers that already hold the model in memory.
func CompileString(src string) (*Model, []error) {
	v := cuecontext.New().CompileString(src)
	if err := v.Err(); err != nil {
		return nil, []error{formatCUEError(err, "")}
	}
	return Compile(v)
}

// Compile compiles every entry of the "quantities" struct of v. It does not
// stop at the first bad entry: all errors are returned, and the model holds
// the entries that compiled.
func Compile(v cue.Value) (*Model, []error) {
	m := &Model{}
	qs := v.LookupPath(cue.ParsePath("quantities"))
	if !qs.Exists() {
		return m, []error{&CompileError{
			Code:    ErrCodeGeneric,
			Field:   "quantities",
			Message: "no quantities defined",
			Pos:     v.Pos(),
		}}
	}

	iter, err := qs.Fields()
	if err != nil {
		return m, []error{formatCUEError(err, "")}
	}

	var errs []error
	for iter.Next() {
		q, err := CompileQuantity(iter.Label(), iter.Value())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		m.Quantities = append(m.Quantities, *q)
	}

	slices.SortFunc(m.Quantities, func(a, b Quantity) int {
		return strings.Compare(a.Name, b.Name)
	})
	return m, errs
}

// CompileQuantity compiles a single entry.
func CompileQuantity(name string, v cue.Value) (*Quantity, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, name)
	}

	q := &Quantity{Name: name}

	unitVal := v.LookupPath(cue.ParsePath("unit"))
	if !unitVal.Exists() {
		return nil, &CompileError{Code: ErrCodeMissingUnit, Quantity: name, Field: "unit", Message: "unit is required", Pos: v.Pos()}
	}
	unit, err := unitVal.String()
	if err != nil {
		return nil, &CompileError{Code: ErrCodeInvalidUnit, Quantity: name, Field: "unit", Message: "unit must be a string", Pos: unitVal.Pos(), Err: err}
	}
	d, err := dim.ParseDimension(unit)
	if err != nil {
		return nil, &CompileError{Code: ErrCodeInvalidUnit, Quantity: name, Field: "unit", Message: err.Error(), Pos: unitVal.Pos(), Err: err}
	}
	q.Unit, q.Dim = unit, d

	if descVal := v.LookupPath(cue.ParsePath("description")); descVal.Exists() {
		if q.Description, err = descVal.String(); err != nil {
			return nil, formatCUEError(err, name)
		}
	}

	valueVal := v.LookupPath(cue.ParsePath("value"))
	if !valueVal.Exists() {
		return nil, &CompileError{Code: ErrCodeMissingValue, Quantity: name, Field: "value", Message: "value is required", Pos: v.Pos()}
	}
	payload, err := valueVal.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(err, name)
	}
	q.Value, err = quantity.UnmarshalDynamic(d, payload)
	if err != nil {
		return nil, &CompileError{Code: ErrCodeInvalidValue, Quantity: name, Field: "value", Message: err.Error(), Pos: valueVal.Pos(), Err: err}
	}

	return q, nil
}
