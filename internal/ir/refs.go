package ir

import (
	"fmt"
	"regexp"
)

// Node kind discriminators for the flowchart vocabulary.
const (
	KindFlowchart    = "Flowchart"
	KindFlowStep     = "FlowStep"
	KindFlowDecision = "FlowDecision"
)

// Well-known IR object keys consumed by the resolvers and the validator.
const (
	KeyType        = "type"
	KeyName        = "x:Name"
	KeyDisplayName = "displayName"
	KeyStartNode   = "startNode"
	KeyNodes       = "nodes"
	KeyNext        = "next"
	KeyTrue        = "true"
	KeyFalse       = "false"
	KeyActivity    = "activity"
	KeyCondition   = "condition"
	KeyVariables   = "variables"
	KeyViewState   = "viewState"
)

// NodeRef is a flowchart node's Reference ID, used for cross-node edges.
// Assigned IDs always match __ReferenceID<n>; raw input may carry anything.
type NodeRef string

var nodeRefPattern = regexp.MustCompile(`^__ReferenceID\d+$`)

// MakeNodeRef builds the canonical Reference ID for a node index.
func MakeNodeRef(index int) NodeRef {
	return NodeRef(fmt.Sprintf("__ReferenceID%d", index))
}

// Valid reports whether the reference matches the required format.
func (r NodeRef) Valid() bool {
	return nodeRefPattern.MatchString(string(r))
}

func (r NodeRef) String() string {
	return string(r)
}
