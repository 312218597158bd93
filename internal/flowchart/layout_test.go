package flowchart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
	"github.com/Preyvik/MCP-UiPath/internal/testutil"
)

func TestNodePosition(t *testing.T) {
	r, ok := nodePosition(nodeSlot{index: 0, kind: ir.KindFlowStep})
	require.True(t, ok)
	assert.Equal(t, rect{300, 200, 110, 70}, r)

	r, ok = nodePosition(nodeSlot{index: 3, kind: ir.KindFlowDecision})
	require.True(t, ok)
	assert.Equal(t, rect{325, 500, 60, 60}, r)

	_, ok = nodePosition(nodeSlot{index: 1, kind: "Sequence"})
	assert.False(t, ok)
}

func TestValidateLayoutGeometry(t *testing.T) {
	fc := testutil.Flowchart("Main", "fetch",
		testutil.Step("fetch", "check"),
		testutil.Decision("check", "ok", "store", ""),
		testutil.Step("store", ""),
	)

	report := Validate(fc)
	require.True(t, report.IsValid)

	modified := report.ModifiedTree.(ir.IRObject)
	fcVS, ok := modified.GetObject(ir.KeyViewState)
	require.True(t, ok)
	assert.Equal(t, "330,10", fcVS.StringOr("ShapeLocation", ""))
	assert.Equal(t, "50,50", fcVS.StringOr("ShapeSize", ""))
	assert.Equal(t, "355,60 355,200", fcVS.StringOr("ConnectorLocation", ""))

	nodes, _ := modified.GetArray(ir.KeyNodes)

	step := nodes[0].(ir.IRObject)
	stepVS, _ := step.GetObject(ir.KeyViewState)
	assert.Equal(t, "300,200", stepVS.StringOr("ShapeLocation", ""))
	assert.Equal(t, "110,70", stepVS.StringOr("ShapeSize", ""))
	// Bottom center of the step to top center of the decision.
	assert.Equal(t, "355,270 355,300", stepVS.StringOr("ConnectorLocation", ""))

	decision := nodes[1].(ir.IRObject)
	decVS, _ := decision.GetObject(ir.KeyViewState)
	assert.Equal(t, "325,300", decVS.StringOr("ShapeLocation", ""))
	assert.Equal(t, "60,60", decVS.StringOr("ShapeSize", ""))
	assert.Equal(t, "325,330 150,330 150,400", decVS.StringOr("TrueConnector", ""))
	assert.False(t, decVS.Has("FalseConnector"))

	last := nodes[2].(ir.IRObject)
	lastVS, _ := last.GetObject(ir.KeyViewState)
	assert.Equal(t, "300,400", lastVS.StringOr("ShapeLocation", ""))
	assert.False(t, lastVS.Has("ConnectorLocation"))
}

func TestApplyLayoutFalseConnector(t *testing.T) {
	fc := testutil.Flowchart("Main", "d",
		testutil.Decision("d", "ready", "t", "f"),
		testutil.Step("t", ""),
		testutil.Step("f", ""),
	)
	slots, byRef := indexFixture(t, fc)

	applyLayout(fc, slots, byRef)

	dec, _ := fc.GetArray(ir.KeyNodes)
	vs, _ := dec[0].(ir.IRObject).GetObject(ir.KeyViewState)
	// True branch rides the left rail, false branch the right one.
	assert.Equal(t, "325,230 150,230 150,300", vs.StringOr("TrueConnector", ""))
	assert.Equal(t, "385,230 560,230 560,400", vs.StringOr("FalseConnector", ""))

	fcVS, _ := fc.GetObject(ir.KeyViewState)
	assert.Equal(t, "355,60 355,200", fcVS.StringOr("ConnectorLocation", ""))
}

func TestApplyLayoutRunsOnInvalidFlowchart(t *testing.T) {
	report := Validate(testutil.Flowchart("Main", "",
		testutil.Step("a", ""),
	))
	require.False(t, report.IsValid)

	modified := report.ModifiedTree.(ir.IRObject)
	fcVS, ok := modified.GetObject(ir.KeyViewState)
	require.True(t, ok)
	// No resolvable start, so the anchor keeps its shape but drops
	// the connector.
	assert.Equal(t, "330,10", fcVS.StringOr("ShapeLocation", ""))
	assert.False(t, fcVS.Has("ConnectorLocation"))

	nodes, _ := modified.GetArray(ir.KeyNodes)
	node := nodes[0].(ir.IRObject)
	assert.True(t, node.Has(ir.KeyViewState))
}

func TestApplyLayoutSkipsNonFlowNodes(t *testing.T) {
	fc := testutil.Flowchart("Main", "a",
		testutil.Step("a", "odd"),
		ir.IRObject{
			ir.KeyType: ir.IRString("Sequence"),
			ir.KeyName: ir.IRString("odd"),
		},
	)

	report := Validate(fc)
	require.True(t, report.IsValid)

	modified := report.ModifiedTree.(ir.IRObject)
	nodes, _ := modified.GetArray(ir.KeyNodes)
	step := nodes[0].(ir.IRObject)
	stray := nodes[1].(ir.IRObject)

	// The target has no canvas position, so the connector is omitted.
	vs, _ := step.GetObject(ir.KeyViewState)
	assert.False(t, vs.Has("ConnectorLocation"))
	assert.False(t, stray.Has(ir.KeyViewState))
}
