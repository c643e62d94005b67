package verify

import (
	"fmt"
	"strings"

	"github.com/weftlab/weft/internal/ir"
)

// checkAcyclicity detects same-timestep cycles: a directed graph is built
// from all covariant, non-temporal wirings and searched with three-color
// depth-first traversal. Temporal edges are excluded by origin - they are
// time-delayed recurrences, not same-step flows, and a loop through them
// is the whole point of a temporal composition.
//
// Each back-edge yields one error finding whose message traces the cycle
// in order, so the report reads as a diagnosis rather than a boolean.
func checkAcyclicity(system *ir.SystemIR) []Finding {
	adjacency := make(map[string][]string)
	for _, w := range system.Wirings {
		if w.Direction != ir.DirectionCovariant || w.IsTemporal {
			continue
		}
		adjacency[w.Source] = append(adjacency[w.Source], w.Target)
	}

	// Nodes visited in canonical block order for deterministic traces.
	var nodes []string
	seen := make(map[string]bool)
	for _, b := range system.Blocks {
		nodes = append(nodes, b.Name)
		seen[b.Name] = true
	}
	for _, w := range system.Wirings {
		if adjacency[w.Source] != nil && !seen[w.Source] {
			nodes = append(nodes, w.Source)
			seen[w.Source] = true
		}
	}

	const (
		white = iota // unvisited
		gray         // on the current path
		black        // fully explored
	)
	color := make(map[string]int)
	var path []string
	var findings []Finding

	var visit func(node string)
	visit = func(node string) {
		color[node] = gray
		path = append(path, node)
		for _, next := range adjacency[node] {
			switch color[next] {
			case white:
				visit(next)
			case gray:
				findings = append(findings, cycleFinding(path, next))
			}
		}
		path = path[:len(path)-1]
		color[node] = black
	}

	for _, node := range nodes {
		if color[node] == white {
			visit(node)
		}
	}

	if findings == nil {
		return []Finding{pass(CheckAcyclicity, "covariant dataflow graph is acyclic")}
	}
	return findings
}

// cycleFinding trims the DFS path to the cycle proper and renders it with
// the entry node repeated at the end.
func cycleFinding(path []string, backTo string) Finding {
	start := 0
	for i, n := range path {
		if n == backTo {
			start = i
			break
		}
	}
	cycle := append(append([]string{}, path[start:]...), backTo)
	return Finding{
		CheckID:        CheckAcyclicity,
		Severity:       SeverityError,
		Message:        fmt.Sprintf("covariant cycle detected: %s", strings.Join(cycle, " -> ")),
		SourceElements: cycle[:len(cycle)-1],
	}
}
