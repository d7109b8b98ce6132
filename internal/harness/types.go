package harness

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name   string   `json:"name"`
	Inputs []string `json:"inputs"`
	Expect string   `json:"expect"`
	Got    string   `json:"got,omitempty"`
	Pass   bool     `json:"pass"`
	Error  string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario.
type Result struct {
	// Pass is true if every case passed.
	Pass bool `json:"pass"`

	Cases []CaseResult `json:"cases"`

	// Errors contains one message per failed case.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddCase records a case and fails the result if the case failed.
func (r *Result) AddCase(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if !c.Pass {
		r.Errors = append(r.Errors, c.Name+": "+c.Error)
		r.Pass = false
	}
}
