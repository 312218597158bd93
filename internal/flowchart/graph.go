package flowchart

import (
	"fmt"
	"strings"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// flowGraph is the successor graph over one flowchart's nodes: steps
// contribute at most one edge and decisions at most two. An edge
// exists only when its target resolves. order preserves document
// order for deterministic traversal roots and orphan reporting.
type flowGraph struct {
	order []string
	edges map[string][]string
}

func buildGraph(slots []nodeSlot, byRef map[string]nodeSlot) flowGraph {
	g := flowGraph{
		order: make([]string, 0, len(slots)),
		edges: make(map[string][]string, len(slots)),
	}
	for _, slot := range slots {
		var neighbors []string
		appendEdge := func(key string) {
			ref, ok := slot.obj.GetString(key)
			if !ok || ref == "" {
				return
			}
			if _, exists := byRef[ref]; exists {
				neighbors = append(neighbors, ref)
			}
		}
		switch slot.kind {
		case ir.KindFlowStep:
			appendEdge(ir.KeyNext)
		case ir.KindFlowDecision:
			appendEdge(ir.KeyTrue)
			appendEdge(ir.KeyFalse)
		}
		g.order = append(g.order, slot.id)
		g.edges[slot.id] = neighbors
	}
	return g
}

// checkCycles starts a depth-first search at every unvisited node in
// document order and reports one failure per cycle reached.
func checkCycles(g flowGraph) []Failure {
	var failures []Failure
	visited := make(map[string]bool, len(g.order))
	for _, root := range g.order {
		if visited[root] {
			continue
		}
		path := findCycle(root, g, visited)
		if path == nil {
			continue
		}
		failures = append(failures, Failure{
			Category: CategoryCircular,
			Rule:     "Flowchart must not contain circular references",
			Details:  "Circular path detected: " + strings.Join(path, " → "),
			// The closing repeat of the first node stays out of the
			// affected list.
			AffectedNodes: path[:len(path)-1],
		})
	}
	return failures
}

// findCycle is a depth-first search with an explicit frame stack; the
// stack doubles as the current path. Returns the cycle as
// [first repeated node, ..., first repeated node], or nil.
func findCycle(root string, g flowGraph, visited map[string]bool) []string {
	type frame struct {
		id   string
		next int
	}
	stack := []frame{{id: root}}
	visited[root] = true
	onPath := map[string]bool{root: true}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		neighbors := g.edges[top.id]
		if top.next >= len(neighbors) {
			onPath[top.id] = false
			stack = stack[:len(stack)-1]
			continue
		}
		neighbor := neighbors[top.next]
		top.next++

		if !visited[neighbor] {
			visited[neighbor] = true
			onPath[neighbor] = true
			stack = append(stack, frame{id: neighbor})
			continue
		}
		if onPath[neighbor] {
			start := 0
			for i := range stack {
				if stack[i].id == neighbor {
					start = i
					break
				}
			}
			path := make([]string, 0, len(stack)-start+1)
			for _, f := range stack[start:] {
				path = append(path, f.id)
			}
			return append(path, neighbor)
		}
	}
	return nil
}

// checkReachability walks breadth-first from the resolved start
// reference and reports every node the walk never touches. Orphans
// list in document order. Callers skip this check entirely when the
// start reference did not resolve.
func checkReachability(start string, g flowGraph) []Failure {
	reachable := make(map[string]bool, len(g.order))
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if reachable[current] {
			continue
		}
		reachable[current] = true
		for _, neighbor := range g.edges[current] {
			if !reachable[neighbor] {
				queue = append(queue, neighbor)
			}
		}
	}

	var orphans []string
	for _, id := range g.order {
		if !reachable[id] {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) == 0 {
		return nil
	}
	return []Failure{{
		Category:      CategoryReachability,
		Rule:          "All nodes must be reachable from StartNode",
		Details:       fmt.Sprintf("%d orphaned node(s)", len(orphans)),
		AffectedNodes: orphans,
	}}
}
