package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Preyvik/MCP-UiPath/internal/flowchart"
	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// Scenario defines one conformance scenario: a workflow document to
// convert, the metadata envelope it arrives with, and the expected
// outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario pins down.
	Description string `yaml:"description"`

	// TraceToken is an optional fixed trace token for deterministic
	// runs. If empty, defaults to "test-trace-default".
	TraceToken string `yaml:"trace_token,omitempty"`

	// Metadata is the envelope the workflow arrives with. Omitted means
	// a fresh document with the default envelope.
	Metadata *MetadataSpec `yaml:"metadata,omitempty"`

	// Workflow is the body to convert, written as an inline YAML tree.
	// YAML null maps to the explicit IR null terminal.
	Workflow map[string]interface{} `yaml:"workflow"`

	// Expect describes the outcome to assert.
	Expect ExpectClause `yaml:"expect"`
}

// MetadataSpec mirrors the metadata envelope in scenario form.
type MetadataSpec struct {
	Class              string            `yaml:"class,omitempty"`
	Namespaces         []string          `yaml:"namespaces,omitempty"`
	AssemblyReferences []string          `yaml:"assembly_references,omitempty"`
	Arguments          []ArgumentSpec    `yaml:"arguments,omitempty"`
	XmlnsBindings      map[string]string `yaml:"xmlns_bindings,omitempty"`
}

// ArgumentSpec is one workflow member declaration. Direction defaults
// to In and type to String, matching the envelope parser's defaults.
type ArgumentSpec struct {
	Name      string `yaml:"name"`
	Direction string `yaml:"direction,omitempty"`
	Type      string `yaml:"type,omitempty"`
}

// ExpectClause describes the expected conversion outcome.
//
// Set-valued fields use containment semantics: every listed entry must
// appear in the result. CustomBindings is the exception and compares
// the whole map; nil skips the check, an empty map asserts nothing was
// kept.
type ExpectClause struct {
	// Valid is the expected validation outcome. Invalid scenarios must
	// list at least one failure and may not carry resolution
	// expectations, since a rejected conversion produces no document.
	Valid bool `yaml:"valid"`

	// Failures each must match at least one report failure.
	Failures []FailureSpec `yaml:"failures,omitempty"`

	// FailureCount pins the exact number of report failures. Zero means
	// no count assertion; invalid reports always carry at least one.
	FailureCount int `yaml:"failure_count,omitempty"`

	// RemedyFix is the expected remedy fix line, compared exactly.
	RemedyFix string `yaml:"remedy_fix,omitempty"`

	// RemedyRetryContains is a substring of the remedy retry suggestion.
	RemedyRetryContains string `yaml:"remedy_retry_contains,omitempty"`

	// Declarations lists namespace prefixes that must be declared.
	Declarations []string `yaml:"declarations,omitempty"`

	// Imports lists expression imports that must be present.
	Imports []string `yaml:"imports,omitempty"`

	// ImportsAbsent lists expression imports that must not be present.
	ImportsAbsent []string `yaml:"imports_absent,omitempty"`

	// AssemblyRefs lists assembly references that must be present.
	AssemblyRefs []string `yaml:"assembly_refs,omitempty"`

	// CustomBindings is the exact map of kept custom xmlns bindings.
	CustomBindings map[string]string `yaml:"custom_bindings,omitempty"`

	// Corrections pins the total number of applied corrections. Zero
	// means no count assertion.
	Corrections int `yaml:"corrections,omitempty"`

	// StartNode is the document's startNode after reference remapping.
	StartNode string `yaml:"start_node,omitempty"`
}

// FailureSpec matches one expected validation failure. Category is
// required; the remaining fields narrow the match when set.
type FailureSpec struct {
	Category       string   `yaml:"category"`
	Rule           string   `yaml:"rule,omitempty"`
	DetailsContain string   `yaml:"details_contain,omitempty"`
	AffectedNodes  []string `yaml:"affected_nodes,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos surface as load errors rather than silently
// skipped expectations.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

var validCategories = map[string]bool{
	flowchart.CategoryStructural:   true,
	flowchart.CategoryReference:    true,
	flowchart.CategoryCircular:     true,
	flowchart.CategoryReachability: true,
}

// validateScenario checks that required fields are present and the
// expectation shape matches the declared validity.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Workflow) == 0 {
		return fmt.Errorf("workflow is required and must be non-empty")
	}

	if s.Metadata != nil {
		for i, arg := range s.Metadata.Arguments {
			if arg.Name == "" {
				return fmt.Errorf("metadata.arguments[%d]: name is required", i)
			}
			switch arg.Direction {
			case "", ir.DirectionIn, ir.DirectionOut, ir.DirectionInOut:
			default:
				return fmt.Errorf("metadata.arguments[%d]: unknown direction %q", i, arg.Direction)
			}
		}
	}

	e := s.Expect
	if e.FailureCount < 0 {
		return fmt.Errorf("expect: failure_count must be non-negative")
	}
	if e.Corrections < 0 {
		return fmt.Errorf("expect: corrections must be non-negative")
	}
	if e.Valid {
		if len(e.Failures) > 0 || e.FailureCount > 0 || e.RemedyFix != "" || e.RemedyRetryContains != "" {
			return fmt.Errorf("expect: failure expectations require valid: false")
		}
	} else {
		if len(e.Failures) == 0 {
			return fmt.Errorf("expect: invalid scenarios must list at least one failure")
		}
		if len(e.Declarations) > 0 || len(e.Imports) > 0 || len(e.ImportsAbsent) > 0 ||
			len(e.AssemblyRefs) > 0 || e.CustomBindings != nil || e.Corrections > 0 || e.StartNode != "" {
			return fmt.Errorf("expect: resolution expectations require valid: true (a rejected conversion produces no document)")
		}
	}
	for i, f := range e.Failures {
		if f.Category == "" {
			return fmt.Errorf("expect.failures[%d]: category is required", i)
		}
		if !validCategories[f.Category] {
			return fmt.Errorf("expect.failures[%d]: unknown category %q", i, f.Category)
		}
	}
	return nil
}
