package flowchart

import (
	"fmt"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// Canvas geometry. Nodes stack in a single column, one row per node
// slot; decision branches ride fixed vertical rails on either side of
// the column. All values are pixels on the designer canvas.
const (
	stepX      = 300
	stepWidth  = 110
	stepHeight = 70

	decisionX    = 325
	decisionSize = 60

	rowBaseY = 200
	rowPitch = 100

	trueRailX  = 150
	falseRailX = 560
)

type rect struct {
	x, y, w, h int
}

func (r rect) centerX() int { return r.x + r.w/2 }

// nodePosition returns the layout rectangle for a node slot. Only
// steps and decisions occupy canvas space; anything else reports
// ok=false and connectors toward it are omitted.
func nodePosition(slot nodeSlot) (rect, bool) {
	switch slot.kind {
	case ir.KindFlowStep:
		return rect{stepX, rowBaseY + slot.index*rowPitch, stepWidth, stepHeight}, true
	case ir.KindFlowDecision:
		return rect{decisionX, rowBaseY + slot.index*rowPitch, decisionSize, decisionSize}, true
	}
	return rect{}, false
}

// connectorTarget resolves the successor reference under key to its
// layout rectangle.
func connectorTarget(node ir.IRObject, key string, byRef map[string]nodeSlot) (rect, bool) {
	ref, ok := node.GetString(key)
	if !ok || ref == "" {
		return rect{}, false
	}
	target, exists := byRef[ref]
	if !exists {
		return rect{}, false
	}
	return nodePosition(target)
}

// applyLayout writes viewState geometry onto the flowchart and its
// step and decision nodes. It runs on every flowchart, valid or not,
// so an error report still carries a fully positioned tree.
func applyLayout(fc ir.IRObject, slots []nodeSlot, byRef map[string]nodeSlot) {
	// The start anchor is a fixed 50x50 circle at the top of the canvas.
	startVS := ir.IRObject{
		"ShapeLocation": ir.IRString("330,10"),
		"ShapeSize":     ir.IRString("50,50"),
	}
	if t, ok := connectorTarget(fc, ir.KeyStartNode, byRef); ok {
		startVS["ConnectorLocation"] = ir.IRString(fmt.Sprintf("355,60 %d,%d", t.centerX(), t.y))
	}
	fc[ir.KeyViewState] = startVS

	for _, slot := range slots {
		switch slot.kind {
		case ir.KindFlowStep:
			r, _ := nodePosition(slot)
			vs := ir.IRObject{
				"ShapeLocation": ir.IRString(fmt.Sprintf("%d,%d", r.x, r.y)),
				"ShapeSize":     ir.IRString(fmt.Sprintf("%d,%d", r.w, r.h)),
			}
			if t, ok := connectorTarget(slot.obj, ir.KeyNext, byRef); ok {
				vs["ConnectorLocation"] = ir.IRString(fmt.Sprintf("%d,%d %d,%d", r.centerX(), r.y+r.h, t.centerX(), t.y))
			}
			slot.obj[ir.KeyViewState] = vs

		case ir.KindFlowDecision:
			r, _ := nodePosition(slot)
			cy := r.y + r.h/2
			vs := ir.IRObject{
				"ShapeLocation": ir.IRString(fmt.Sprintf("%d,%d", r.x, r.y)),
				"ShapeSize":     ir.IRString(fmt.Sprintf("%d,%d", r.w, r.h)),
			}
			if t, ok := connectorTarget(slot.obj, ir.KeyTrue, byRef); ok {
				vs["TrueConnector"] = ir.IRString(fmt.Sprintf("%d,%d %d,%d %d,%d", r.x, cy, trueRailX, cy, trueRailX, t.y))
			}
			if t, ok := connectorTarget(slot.obj, ir.KeyFalse, byRef); ok {
				vs["FalseConnector"] = ir.IRString(fmt.Sprintf("%d,%d %d,%d %d,%d", r.x+r.w, cy, falseRailX, cy, falseRailX, t.y))
			}
			slot.obj[ir.KeyViewState] = vs
		}
	}
}
