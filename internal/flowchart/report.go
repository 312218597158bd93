package flowchart

import (
	"fmt"
	"strings"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// Failure categories, ordered here by remedy priority.
const (
	CategoryStructural   = "structural"
	CategoryReference    = "reference"
	CategoryCircular     = "circular"
	CategoryReachability = "reachability"
)

// Failure is one accumulated validation finding. AffectedNodes carries
// post-reassignment Reference IDs except for placement failures, whose
// offenders were never renumbered.
type Failure struct {
	Category      string   `json:"category"`
	Rule          string   `json:"rule"`
	Details       string   `json:"details"`
	AffectedNodes []string `json:"affectedNodes"`
}

// Remedy is the single actionable hint attached to an invalid report,
// chosen by category priority.
type Remedy struct {
	Fix             string `json:"fix"`
	RetrySuggestion string `json:"retrySuggestion"`
}

// Report is the complete outcome of one validation pass. ModifiedTree
// always carries the ID-reassigned, layout-annotated copy; callers use
// it for output only when IsValid. Remedy is nil on valid reports.
type Report struct {
	IsValid      bool       `json:"isValid"`
	Failures     []Failure  `json:"failures"`
	Remedy       *Remedy    `json:"remedy,omitempty"`
	ModifiedTree ir.IRValue `json:"-"`
}

// deriveRemedy picks the hint for the highest-priority category
// present: structural beats circular beats reachability beats
// reference. Circular and reachability hints name the affected nodes
// from the first failure of their category.
func deriveRemedy(failures []Failure) *Remedy {
	has := make(map[string]bool, len(failures))
	for _, f := range failures {
		has[f.Category] = true
	}

	if has[CategoryStructural] {
		return &Remedy{
			Fix:             "Nest FlowStep/FlowDecision inside Flowchart container",
			RetrySuggestion: "Flowchart → nodes: [FlowStep, FlowDecision]",
		}
	}
	if has[CategoryCircular] {
		return &Remedy{
			Fix: "Break circular path by removing or redirecting one connection",
			RetrySuggestion: fmt.Sprintf("Review path: %s and set one 'next' to null",
				strings.Join(firstAffected(failures, CategoryCircular), " → ")),
		}
	}
	if has[CategoryReachability] {
		return &Remedy{
			Fix: "Connect orphaned nodes to flowchart or remove them",
			RetrySuggestion: fmt.Sprintf("Add reference from existing node to: %s",
				strings.Join(firstAffected(failures, CategoryReachability), ", ")),
		}
	}
	return &Remedy{
		Fix:             "Ensure all reference IDs are unique and properly formatted",
		RetrySuggestion: "Use sequential IDs: __ReferenceID0, __ReferenceID1, etc.",
	}
}

func firstAffected(failures []Failure, category string) []string {
	for _, f := range failures {
		if f.Category == category {
			return f.AffectedNodes
		}
	}
	return nil
}

// Value renders the failure as an IR object for canonical serialization.
func (f Failure) Value() ir.IRObject {
	affected := make(ir.IRArray, 0, len(f.AffectedNodes))
	for _, n := range f.AffectedNodes {
		affected = append(affected, ir.IRString(n))
	}
	return ir.IRObject{
		"category":      ir.IRString(f.Category),
		"rule":          ir.IRString(f.Rule),
		"details":       ir.IRString(f.Details),
		"affectedNodes": affected,
	}
}

// Value renders the report, minus the tree, as an IR object. Used for
// deterministic report fingerprints and goldens.
func (r *Report) Value() ir.IRObject {
	failures := make(ir.IRArray, 0, len(r.Failures))
	for _, f := range r.Failures {
		failures = append(failures, f.Value())
	}
	obj := ir.IRObject{
		"isValid":  ir.IRBool(r.IsValid),
		"failures": failures,
	}
	if r.Remedy != nil {
		obj["remedy"] = ir.IRObject{
			"fix":             ir.IRString(r.Remedy.Fix),
			"retrySuggestion": ir.IRString(r.Remedy.RetrySuggestion),
		}
	}
	return obj
}
