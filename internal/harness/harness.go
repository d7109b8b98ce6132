package harness

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/varq/internal/model"
	"github.com/roach88/varq/pkg/dim"
	"github.com/roach88/varq/pkg/quantity"
)

// Harness evaluates scenarios.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger for per-case debug output.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates a Harness. Logging is discarded unless WithLogger is given.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run resolves the scenario's quantity and evaluates every case.
//
// An error means the quantity itself could not be built; failing cases are
// reported in the Result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	v, err := resolve(scenario)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	h.logger.Debug("running scenario",
		"scenario", scenario.Name,
		"dim", v.Dim().String(),
		"constant", v.IsConstant(),
		"cases", len(scenario.Cases),
	)

	result := NewResult()
	for _, c := range scenario.Cases {
		cr := h.runCase(v, c)
		h.logger.Debug("case evaluated",
			"scenario", scenario.Name,
			"case", cr.Name,
			"got", cr.Got,
			"pass", cr.Pass,
		)
		result.AddCase(cr)
	}
	return result, nil
}

func resolve(s *Scenario) (quantity.Dynamic, error) {
	var want dim.Dimension
	if s.Unit != "" {
		d, err := dim.ParseDimension(s.Unit)
		if err != nil {
			return quantity.Dynamic{}, fmt.Errorf("unit: %w", err)
		}
		want = d
	}

	if s.hasInlineQuantity() {
		return quantity.DecodeDynamic(want, &s.Quantity)
	}

	m, errs := model.LoadDir(s.Model)
	if len(errs) > 0 {
		return quantity.Dynamic{}, fmt.Errorf("model %s: %w", s.Model, errs[0])
	}
	q, ok := m.Lookup(s.Ref)
	if !ok {
		return quantity.Dynamic{}, fmt.Errorf("model %s: no quantity %q", s.Model, s.Ref)
	}
	if s.Unit != "" && q.Dim != want {
		return quantity.Dynamic{}, fmt.Errorf("model %s: %s: %w", s.Model, s.Ref, &dim.MismatchError{Expected: want, Found: q.Dim})
	}
	return q.Value, nil
}

// runCase evaluates one case. A contract violation becomes a failed case;
// any other panic propagates.
func (h *Harness) runCase(v quantity.Dynamic, c Case) (cr CaseResult) {
	cr = CaseResult{
		Name:   c.Name,
		Inputs: make([]string, len(c.Inputs)),
		Expect: c.Expect.String(),
	}
	for i, in := range c.Inputs {
		cr.Inputs[i] = in.String()
	}

	defer func() {
		if r := recover(); r != nil {
			cv, ok := quantity.AsContractViolation(r)
			if !ok {
				panic(r)
			}
			h.logger.Warn("contract violation", "case", c.Name, "error", cv.Error())
			cr.Pass = false
			cr.Error = cv.Error()
		}
	}()

	got := v.Get(c.Inputs)
	cr.Got = got.String()

	if got.Dim != c.Expect.Dim {
		cr.Error = (&dim.MismatchError{Expected: c.Expect.Dim, Found: got.Dim}).Error()
		return cr
	}

	tol := c.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	if !within(got.Value, c.Expect.Value, tol) {
		cr.Error = fmt.Sprintf("got %s, expected %s (tolerance %g)", cr.Got, cr.Expect, tol)
		return cr
	}

	cr.Pass = true
	return cr
}

func within(got, want, tol float64) bool {
	if math.IsNaN(got) || math.IsNaN(want) {
		return math.IsNaN(got) && math.IsNaN(want)
	}
	return math.Abs(got-want) <= tol*math.Max(1, math.Abs(want))
}
