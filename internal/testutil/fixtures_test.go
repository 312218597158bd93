package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

func TestStep(t *testing.T) {
	node := Step("fetch", "store")

	assert.Equal(t, ir.KindFlowStep, node.StringOr(ir.KeyType, ""))
	assert.Equal(t, "fetch", node.StringOr(ir.KeyName, ""))
	assert.Equal(t, "store", node.StringOr(ir.KeyNext, ""))
}

func TestStepTerminal(t *testing.T) {
	node := Step("last", "")

	// Terminal steps carry an explicit null, not an absent key.
	require.True(t, node.Has(ir.KeyNext))
	assert.True(t, ir.IsNull(node[ir.KeyNext]))
}

func TestDecision(t *testing.T) {
	node := Decision("check", "count > 0", "yes", "")

	assert.Equal(t, ir.KindFlowDecision, node.StringOr(ir.KeyType, ""))
	assert.Equal(t, "count > 0", node.StringOr(ir.KeyCondition, ""))
	assert.Equal(t, "yes", node.StringOr(ir.KeyTrue, ""))
	assert.True(t, ir.IsNull(node[ir.KeyFalse]))
}

func TestFlowchartPreservesNodeOrder(t *testing.T) {
	fc := Flowchart("Main", "a", Step("a", "b"), Step("b", ""))

	assert.Equal(t, "a", fc.StringOr(ir.KeyStartNode, ""))
	nodes, ok := fc.GetArray(ir.KeyNodes)
	require.True(t, ok)
	require.Len(t, nodes, 2)
	first, ok := nodes[0].(ir.IRObject)
	require.True(t, ok)
	assert.Equal(t, "a", first.StringOr(ir.KeyName, ""))
}

func TestStepWithAttachesActivity(t *testing.T) {
	node := StepWith("run", "", Assign("Set total", "total", "a + b"))

	activity, ok := node.GetObject(ir.KeyActivity)
	require.True(t, ok)
	assert.Equal(t, "Assign", activity.StringOr(ir.KeyType, ""))
	assert.Equal(t, "a + b", activity.StringOr("value", ""))
}
