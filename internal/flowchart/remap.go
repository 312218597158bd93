package flowchart

import (
	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// nodeSlot is one object entry of a flowchart's nodes list after
// reference reassignment. index is the entry's position in the list,
// which also drives layout rows.
type nodeSlot struct {
	index int
	id    string
	kind  string
	obj   ir.IRObject
}

// assignReferenceIDs renumbers the flowchart's nodes in document order
// to __ReferenceID0..N-1, whatever the input carried, then rewrites
// startNode and every string successor through the old-to-new map.
// References that resolve to no old ID stay as they are; the dangling
// check picks them up later. Inline object successors are not
// references and pass through untouched.
func assignReferenceIDs(fc ir.IRObject) {
	nodes, ok := fc.GetArray(ir.KeyNodes)
	if !ok {
		return
	}

	mapping := make(map[string]string, len(nodes))
	for i, entry := range nodes {
		node, ok := entry.(ir.IRObject)
		if !ok {
			continue
		}
		newID := ir.MakeNodeRef(i).String()
		if oldID, ok := node.GetString(ir.KeyName); ok {
			// Duplicate input names: the later node wins the mapping.
			mapping[oldID] = newID
		}
		node[ir.KeyName] = ir.IRString(newID)
	}

	if oldStart, ok := fc.GetString(ir.KeyStartNode); ok && oldStart != "" {
		if mapped, ok := mapping[oldStart]; ok {
			fc[ir.KeyStartNode] = ir.IRString(mapped)
		}
	}

	for _, entry := range nodes {
		node, ok := entry.(ir.IRObject)
		if !ok {
			continue
		}
		switch node.StringOr(ir.KeyType, "") {
		case ir.KindFlowStep:
			remapSuccessor(node, ir.KeyNext, mapping)
		case ir.KindFlowDecision:
			remapSuccessor(node, ir.KeyTrue, mapping)
			remapSuccessor(node, ir.KeyFalse, mapping)
		}
	}
}

func remapSuccessor(node ir.IRObject, key string, mapping map[string]string) {
	ref, ok := node.GetString(key)
	if !ok || ref == "" {
		return
	}
	if mapped, ok := mapping[ref]; ok {
		node[key] = ir.IRString(mapped)
	}
}

// indexNodes builds the post-reassignment node table: object entries
// in document order plus the by-reference lookup.
func indexNodes(nodes ir.IRArray) ([]nodeSlot, map[string]nodeSlot) {
	slots := make([]nodeSlot, 0, len(nodes))
	byRef := make(map[string]nodeSlot, len(nodes))
	for i, entry := range nodes {
		node, ok := entry.(ir.IRObject)
		if !ok {
			continue
		}
		slot := nodeSlot{
			index: i,
			id:    node.StringOr(ir.KeyName, ""),
			kind:  node.StringOr(ir.KeyType, ""),
			obj:   node,
		}
		slots = append(slots, slot)
		byRef[slot.id] = slot
	}
	return slots, byRef
}
