// Package testutil provides deterministic workflow tree fixtures for
// tests across the conversion packages.
//
// The builders produce the canonical node shapes: explicit null
// terminals instead of absent keys, so fixtures exercise the same
// tree forms real documents carry.
package testutil

import "github.com/Preyvik/MCP-UiPath/internal/ir"

// Step builds a FlowStep node. An empty next becomes the explicit
// null terminal.
func Step(name, next string) ir.IRObject {
	return ir.IRObject{
		ir.KeyType: ir.IRString(ir.KindFlowStep),
		ir.KeyName: ir.IRString(name),
		ir.KeyNext: successor(next),
	}
}

// StepWith is Step with an inner activity attached.
func StepWith(name, next string, activity ir.IRObject) ir.IRObject {
	node := Step(name, next)
	node[ir.KeyActivity] = activity
	return node
}

// Decision builds a FlowDecision node. Empty branch references become
// null terminals; a decision with both branches null is legal.
func Decision(name, condition, trueRef, falseRef string) ir.IRObject {
	return ir.IRObject{
		ir.KeyType:      ir.IRString(ir.KindFlowDecision),
		ir.KeyName:      ir.IRString(name),
		ir.KeyCondition: ir.IRString(condition),
		ir.KeyTrue:      successor(trueRef),
		ir.KeyFalse:     successor(falseRef),
	}
}

// Flowchart assembles a flowchart container around nodes in the given
// order. An empty start becomes the null startNode.
func Flowchart(displayName, start string, nodes ...ir.IRValue) ir.IRObject {
	arr := make(ir.IRArray, len(nodes))
	copy(arr, nodes)
	return ir.IRObject{
		ir.KeyType:        ir.IRString(ir.KindFlowchart),
		ir.KeyDisplayName: ir.IRString(displayName),
		ir.KeyStartNode:   successor(start),
		ir.KeyNodes:       arr,
	}
}

// Assign builds the minimal assignment activity used as step payload.
func Assign(displayName, to, value string) ir.IRObject {
	return ir.IRObject{
		ir.KeyType:        ir.IRString("Assign"),
		ir.KeyDisplayName: ir.IRString(displayName),
		"to":              ir.IRString(to),
		"value":           ir.IRString(value),
	}
}

func successor(ref string) ir.IRValue {
	if ref == "" {
		return ir.IRNull{}
	}
	return ir.IRString(ref)
}
