package harness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Preyvik/MCP-UiPath/internal/flowchart"
	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// AssertionError is returned when an expectation fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Kind     string              // Expectation kind for categorization
	Expected string              // Human-readable expected outcome
	Actual   string              // Human-readable actual outcome
	Failures []flowchart.Failure // Report failures for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Expectation failed: %s\n", e.Kind)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)

	if len(e.Failures) > 0 {
		fmt.Fprintf(&buf, "\n\nReport failures:\n")
		for i, f := range e.Failures {
			fmt.Fprintf(&buf, "  [%d] %s: %s (affected: %s)\n",
				i, f.Category, f.Rule, strings.Join(f.AffectedNodes, ", "))
		}
	}

	return buf.String()
}

// EvaluateExpectations checks a finished run against the scenario's
// expect clause and returns one message per mismatch. An empty slice
// means the scenario passed.
//
// Validation-report expectations run whenever a report is present;
// resolution expectations (declarations, imports, bindings, start
// node) run only when the conversion produced a document.
func EvaluateExpectations(scenario *Scenario, result *Result) []string {
	var msgs []string
	add := func(err error) {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}

	e := scenario.Expect

	if e.Valid != result.Valid {
		add(&AssertionError{
			Kind:     "validity",
			Expected: fmt.Sprintf("valid=%t", e.Valid),
			Actual:   fmt.Sprintf("valid=%t", result.Valid),
			Failures: reportFailures(result),
		})
	}

	if result.Report != nil {
		for i, spec := range e.Failures {
			add(assertFailure(i, spec, result.Report))
		}
		if e.FailureCount > 0 && e.FailureCount != len(result.Report.Failures) {
			add(&AssertionError{
				Kind:     "failure count",
				Expected: fmt.Sprintf("%d failure(s)", e.FailureCount),
				Actual:   fmt.Sprintf("%d failure(s)", len(result.Report.Failures)),
				Failures: result.Report.Failures,
			})
		}
		add(assertRemedy(e, result.Report))
	}

	if result.Write != nil {
		add(assertContains("declarations", e.Declarations, result.Write.Declarations))
		add(assertContains("imports", e.Imports, result.Write.Imports))
		add(assertAbsent("imports", e.ImportsAbsent, result.Write.Imports))
		add(assertContains("assembly references", e.AssemblyRefs, result.Write.AssemblyRefs))
		add(assertCustomBindings(e.CustomBindings, result.Write.CustomBindings))
		if e.Corrections > 0 {
			got := result.Write.Context.CorrectionCount("")
			if got != e.Corrections {
				add(&AssertionError{
					Kind:     "corrections",
					Expected: fmt.Sprintf("%d correction(s)", e.Corrections),
					Actual:   fmt.Sprintf("%d correction(s)", got),
				})
			}
		}
		add(assertStartNode(e.StartNode, result.Write.Document))
	}

	return msgs
}

// assertFailure looks for a report failure matching every field the
// spec fills in. Category always participates; rule and affected nodes
// match exactly, details by substring.
func assertFailure(index int, spec FailureSpec, report *flowchart.Report) error {
	for _, f := range report.Failures {
		if f.Category != spec.Category {
			continue
		}
		if spec.Rule != "" && f.Rule != spec.Rule {
			continue
		}
		if spec.DetailsContain != "" && !strings.Contains(f.Details, spec.DetailsContain) {
			continue
		}
		if spec.AffectedNodes != nil && !stringSlicesEqual(f.AffectedNodes, spec.AffectedNodes) {
			continue
		}
		return nil
	}

	return &AssertionError{
		Kind:     fmt.Sprintf("failures[%d]", index),
		Expected: describeFailureSpec(spec),
		Actual:   "no matching failure in report",
		Failures: report.Failures,
	}
}

func describeFailureSpec(spec FailureSpec) string {
	parts := []string{fmt.Sprintf("category=%s", spec.Category)}
	if spec.Rule != "" {
		parts = append(parts, fmt.Sprintf("rule=%s", spec.Rule))
	}
	if spec.DetailsContain != "" {
		parts = append(parts, fmt.Sprintf("details contain %q", spec.DetailsContain))
	}
	if spec.AffectedNodes != nil {
		parts = append(parts, fmt.Sprintf("affected=%v", spec.AffectedNodes))
	}
	return strings.Join(parts, ", ")
}

func assertRemedy(e ExpectClause, report *flowchart.Report) error {
	if e.RemedyFix == "" && e.RemedyRetryContains == "" {
		return nil
	}
	if report.Remedy == nil {
		return &AssertionError{
			Kind:     "remedy",
			Expected: "a remedy suggestion",
			Actual:   "report carries no remedy",
			Failures: report.Failures,
		}
	}
	if e.RemedyFix != "" && report.Remedy.Fix != e.RemedyFix {
		return &AssertionError{
			Kind:     "remedy fix",
			Expected: e.RemedyFix,
			Actual:   report.Remedy.Fix,
		}
	}
	if e.RemedyRetryContains != "" && !strings.Contains(report.Remedy.RetrySuggestion, e.RemedyRetryContains) {
		return &AssertionError{
			Kind:     "remedy retry",
			Expected: fmt.Sprintf("contains %q", e.RemedyRetryContains),
			Actual:   report.Remedy.RetrySuggestion,
		}
	}
	return nil
}

// assertContains checks that every wanted entry appears in got.
// Extra entries in got are ignored (subset semantics).
func assertContains(kind string, want, got []string) error {
	var missing []string
	for _, w := range want {
		if !containsString(got, w) {
			missing = append(missing, w)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &AssertionError{
		Kind:     kind,
		Expected: fmt.Sprintf("contains %v", missing),
		Actual:   fmt.Sprintf("%v", got),
	}
}

// assertAbsent checks that no banned entry appears in got.
func assertAbsent(kind string, banned, got []string) error {
	var found []string
	for _, b := range banned {
		if containsString(got, b) {
			found = append(found, b)
		}
	}
	if len(found) == 0 {
		return nil
	}
	return &AssertionError{
		Kind:     kind,
		Expected: fmt.Sprintf("absent %v", found),
		Actual:   fmt.Sprintf("%v", got),
	}
}

// assertCustomBindings compares the whole surviving binding map, not a
// subset. A scenario that lists bindings asserts the filter's exact
// output.
func assertCustomBindings(want, got map[string]string) error {
	if want == nil {
		return nil
	}
	if mapsEqual(want, got) {
		return nil
	}
	return &AssertionError{
		Kind:     "custom bindings",
		Expected: formatBindings(want),
		Actual:   formatBindings(got),
	}
}

func assertStartNode(want string, document ir.IRValue) error {
	if want == "" {
		return nil
	}
	doc, ok := document.(ir.IRObject)
	if !ok {
		return &AssertionError{
			Kind:     "start node",
			Expected: want,
			Actual:   "document is not an object",
		}
	}
	got := doc.StringOr(ir.KeyStartNode, "")
	if got != want {
		return &AssertionError{
			Kind:     "start node",
			Expected: want,
			Actual:   got,
		}
	}
	return nil
}

func reportFailures(result *Result) []flowchart.Failure {
	if result.Report == nil {
		return nil
	}
	return result.Report.Failures
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func formatBindings(m map[string]string) string {
	if len(m) == 0 {
		return "(none)"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%s", k, m[k])
	}
	return strings.Join(pairs, ", ")
}
