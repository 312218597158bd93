// Package harness provides scenario-driven conformance testing for the
// conversion pipeline.
//
// Scenarios are YAML files describing one conversion end to end: the
// workflow tree to convert, the metadata envelope it arrives with, and
// the expected outcome. The runner feeds the workflow through the full
// write pipeline (auto-correction, namespace and assembly resolution,
// flowchart validation, layout, translation) and evaluates every
// expectation against the result.
//
// # Scenario Format
//
//	name: metadata_roundtrip
//	description: "Carried metadata survives a minimal conversion."
//	trace_token: golden-roundtrip
//	metadata:
//	  class: RoutingWorkflow
//	  namespaces: [MyCompany.Processing]
//	  assembly_references: [Acme.Widgets]
//	  arguments:
//	    - {name: in_Config, direction: In, type: String}
//	  xmlns_bindings:
//	    acme: "clr-namespace:Acme.Widgets;assembly=Acme.Widgets"
//	workflow:
//	  type: Flowchart
//	  displayName: Routing
//	  startNode: check
//	  nodes:
//	    - type: FlowStep
//	      "x:Name": check
//	      next: null
//	expect:
//	  valid: true
//	  declarations: [ui, x]
//	  imports: [MyCompany.Processing]
//	  assembly_refs: [Acme.Widgets]
//	  start_node: __ReferenceID0
//
// Rejected conversions assert on the validation report instead:
//
//	expect:
//	  valid: false
//	  failures:
//	    - category: circular
//	      affected_nodes: ["__ReferenceID0"]
//	  remedy_fix: Break circular path by removing or redirecting one connection
//
// # Expectations
//
// Set-valued expectations (declarations, imports, assembly_refs) use
// containment: every listed entry must be present in the result, and
// imports_absent inverts that. custom_bindings compares the whole map.
// Each failure spec must match at least one report failure on category
// plus whichever of rule, details substring, and affected node list it
// sets.
//
// # Determinism
//
// Scenarios run with a fixed trace token and a discarded logger, so a
// scenario is a pure function of its file content. The canonical
// snapshot of a run (validation report plus laid-out document) is
// byte-stable, and golden files under testdata/golden pin it exactly.
package harness
