package harness

import (
	"github.com/Preyvik/MCP-UiPath/internal/convert"
	"github.com/Preyvik/MCP-UiPath/internal/flowchart"
)

// Result is the outcome of one scenario execution.
type Result struct {
	// Pass indicates overall scenario success: the conversion ran and
	// every expectation matched.
	Pass bool `json:"pass"`

	// Token is the trace token the conversion ran under.
	Token string `json:"token"`

	// Valid is the actual validation outcome.
	Valid bool `json:"valid"`

	// Errors contains expectation mismatch messages. Empty if Pass.
	Errors []string `json:"errors,omitempty"`

	// Report is the validation report, present for both outcomes.
	Report *flowchart.Report `json:"-"`

	// Write is the full conversion result; nil when validation rejected
	// the flowchart.
	Write *convert.WriteResult `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError records an expectation mismatch and marks the result failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
