package flowchart

import (
	"fmt"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// Validate deep-copies tree and rewrites every flowchart's node IDs
// to the sequential wire form, then runs the full rule set and lays
// out node geometry. The returned report carries the rewritten tree
// whether or not validation passed; callers serialize it only on
// IsValid.
func Validate(tree ir.IRValue) *Report {
	modified := ir.DeepCopy(tree)

	var failures []Failure
	var flowcharts []ir.IRObject
	if root, ok := modified.(ir.IRObject); ok {
		discover(root, "root", &flowcharts, &failures)
	}
	for _, fc := range flowcharts {
		failures = append(failures, validateFlowchart(fc)...)
	}

	report := &Report{
		IsValid:      len(failures) == 0,
		Failures:     failures,
		ModifiedTree: modified,
	}
	if !report.IsValid {
		report.Remedy = deriveRemedy(failures)
	}
	return report
}

// discover walks the activity tree in document order, collecting every
// flowchart and flagging flow nodes that sit outside one. parentKind
// is the type of the enclosing activity, "root" at the top level.
func discover(node ir.IRObject, parentKind string, flowcharts *[]ir.IRObject, failures *[]Failure) {
	kind := node.StringOr(ir.KeyType, "")

	if (kind == ir.KindFlowStep || kind == ir.KindFlowDecision) && parentKind != ir.KindFlowchart {
		*failures = append(*failures, Failure{
			Category:      CategoryStructural,
			Rule:          fmt.Sprintf("%s must be within Flowchart container", kind),
			Details:       fmt.Sprintf("%s found in %s", kind, parentKind),
			AffectedNodes: []string{node.StringOr(ir.KeyName, "unnamed")},
		})
	}
	if kind == ir.KindFlowchart {
		*flowcharts = append(*flowcharts, node)
	}

	recurse := func(child ir.IRValue) {
		if obj, ok := child.(ir.IRObject); ok {
			discover(obj, kind, flowcharts, failures)
		}
	}
	for _, key := range []string{"activities", ir.KeyNodes} {
		if arr, ok := node.GetArray(key); ok {
			for _, entry := range arr {
				recurse(entry)
			}
		}
	}
	if body, ok := node.GetObject("body"); ok {
		discover(body, kind, flowcharts, failures)
	}
	// Scope bodies carry either a single activity object or a list.
	switch act := node[ir.KeyActivity].(type) {
	case ir.IRObject:
		discover(act, kind, flowcharts, failures)
	case ir.IRArray:
		for _, entry := range act {
			recurse(entry)
		}
	}
	for _, key := range []string{"then", "else", "try"} {
		if branch, ok := node.GetObject(key); ok {
			discover(branch, kind, flowcharts, failures)
		}
	}
	if catches, ok := node.GetArray("catches"); ok {
		for _, entry := range catches {
			recurse(entry)
		}
	}
	if fin, ok := node.GetObject("finally"); ok {
		discover(fin, kind, flowcharts, failures)
	}
}

// validateFlowchart runs the per-flowchart pipeline: ID remap first so
// every later rule sees wire-form references, then start reference,
// ID integrity, successor references, cycles, and reachability.
// Layout runs last and unconditionally.
func validateFlowchart(fc ir.IRObject) []Failure {
	assignReferenceIDs(fc)

	nodes, _ := fc.GetArray(ir.KeyNodes)
	slots, byRef := indexNodes(nodes)

	var failures []Failure
	failures = append(failures, checkStartNode(fc, byRef)...)
	failures = append(failures, checkReferenceIDs(slots)...)
	failures = append(failures, checkDanglingReferences(slots, byRef)...)

	g := buildGraph(slots, byRef)
	failures = append(failures, checkCycles(g)...)

	if start, ok := fc.GetString(ir.KeyStartNode); ok && start != "" {
		if _, exists := byRef[start]; exists {
			failures = append(failures, checkReachability(start, g)...)
		}
	}

	applyLayout(fc, slots, byRef)
	return failures
}

func checkStartNode(fc ir.IRObject, byRef map[string]nodeSlot) []Failure {
	start, ok := fc.GetString(ir.KeyStartNode)
	if !ok || start == "" {
		return []Failure{{
			Category:      CategoryStructural,
			Rule:          "Flowchart must have startNode property",
			Details:       "startNode is missing or null",
			AffectedNodes: []string{fc.StringOr(ir.KeyDisplayName, "Flowchart")},
		}}
	}
	slot, exists := byRef[start]
	if !exists {
		return []Failure{{
			Category:      CategoryStructural,
			Rule:          "StartNode must reference a valid node",
			Details:       fmt.Sprintf("startNode '%s' does not match any node reference ID", start),
			AffectedNodes: []string{start},
		}}
	}
	if slot.kind != ir.KindFlowStep {
		return []Failure{{
			Category:      CategoryStructural,
			Rule:          "StartNode must reference a FlowStep",
			Details:       fmt.Sprintf("startNode '%s' references a %s, not a FlowStep", start, slot.kind),
			AffectedNodes: []string{start},
		}}
	}
	return nil
}

// checkReferenceIDs enforces uniqueness and the wire ID format. After
// assignReferenceIDs both hold by construction; the checks stay for
// node lists that reach validation through other paths.
func checkReferenceIDs(slots []nodeSlot) []Failure {
	var failures []Failure
	seen := make(map[string]bool, len(slots))
	for _, slot := range slots {
		if seen[slot.id] {
			failures = append(failures, Failure{
				Category:      CategoryReference,
				Rule:          "Reference IDs must be unique",
				Details:       fmt.Sprintf("Duplicate reference ID: %s", slot.id),
				AffectedNodes: []string{slot.id},
			})
		}
		seen[slot.id] = true
	}
	for _, slot := range slots {
		if !ir.NodeRef(slot.id).Valid() {
			failures = append(failures, Failure{
				Category:      CategoryReference,
				Rule:          `Reference ID must match pattern __ReferenceID\d+`,
				Details:       fmt.Sprintf("Invalid reference ID format: %s", slot.id),
				AffectedNodes: []string{slot.id},
			})
		}
	}
	return failures
}

// checkDanglingReferences flags successor references that name no node
// in the flowchart. Null successors are legal terminals and absent
// keys are fine; an empty string is a dangling reference.
func checkDanglingReferences(slots []nodeSlot, byRef map[string]nodeSlot) []Failure {
	var failures []Failure
	check := func(slot nodeSlot, key, rule string) {
		ref, ok := slot.obj.GetString(key)
		if !ok {
			return
		}
		if _, exists := byRef[ref]; !exists {
			failures = append(failures, Failure{
				Category:      CategoryReference,
				Rule:          rule,
				Details:       fmt.Sprintf("Reference %s not found", ref),
				AffectedNodes: []string{slot.id},
			})
		}
	}
	for _, slot := range slots {
		switch slot.kind {
		case ir.KindFlowStep:
			check(slot, ir.KeyNext, "Next reference must point to existing node")
		case ir.KindFlowDecision:
			check(slot, ir.KeyTrue, "True reference must point to existing node")
			check(slot, ir.KeyFalse, "False reference must point to existing node")
		}
	}
	return failures
}
