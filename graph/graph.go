package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel node names marking the chain boundaries.
const (
	Start = "__start__"
	End   = "__end__"
)

// NodeFunc transforms a state value into a partial update. Implementations
// must not modify the input state.
type NodeFunc[S, U any] func(ctx context.Context, state S) U

// Merge folds a partial update into a state value and returns the new state.
type Merge[S, U any] func(state S, update U) S

// Graph accumulates nodes and edges for a linear chain. Builder calls
// chain freely; the first construction error is deferred and reported by
// Compile.
type Graph[S, U any] struct {
	merge Merge[S, U]
	nodes map[string]NodeFunc[S, U]
	edges map[string]string
	err   error
}

// New creates an empty graph over the given merge function.
func New[S, U any](merge Merge[S, U]) *Graph[S, U] {
	return &Graph[S, U]{
		merge: merge,
		nodes: make(map[string]NodeFunc[S, U]),
		edges: make(map[string]string),
	}
}

// AddNode registers a named node. Names must be unique and must not be
// the Start or End sentinels.
func (g *Graph[S, U]) AddNode(name string, fn NodeFunc[S, U]) *Graph[S, U] {
	if g.err != nil {
		return g
	}
	if name == "" {
		g.err = errors.New("graph: node name must not be empty")
		return g
	}
	if name == Start || name == End {
		g.err = fmt.Errorf("graph: node name %q is reserved", name)
		return g
	}
	if fn == nil {
		g.err = fmt.Errorf("graph: node %q has no function", name)
		return g
	}
	if _, ok := g.nodes[name]; ok {
		g.err = fmt.Errorf("graph: duplicate node %q", name)
		return g
	}
	g.nodes[name] = fn
	return g
}

// AddEdge declares that to runs after from. Every node has exactly one
// outgoing edge; fan-out is rejected.
func (g *Graph[S, U]) AddEdge(from, to string) *Graph[S, U] {
	if g.err != nil {
		return g
	}
	if from == End {
		g.err = fmt.Errorf("graph: cannot add edge out of %s", End)
		return g
	}
	if to == Start {
		g.err = fmt.Errorf("graph: cannot add edge into %s", Start)
		return g
	}
	if from == to {
		g.err = fmt.Errorf("graph: self edge on %q", from)
		return g
	}
	if prev, ok := g.edges[from]; ok {
		g.err = fmt.Errorf("graph: %q already has an edge to %q, branching is not supported", from, prev)
		return g
	}
	g.edges[from] = to
	return g
}

// Compile validates the declared chain and freezes it into an executable
// Pipeline. The chain must walk Start, then every added node exactly
// once, then End.
func (g *Graph[S, U]) Compile() (*Pipeline[S, U], error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.merge == nil {
		return nil, errors.New("graph: merge function is required")
	}

	for from, to := range g.edges {
		if from != Start {
			if _, ok := g.nodes[from]; !ok {
				return nil, fmt.Errorf("graph: edge from unknown node %q", from)
			}
		}
		if to != End {
			if _, ok := g.nodes[to]; !ok {
				return nil, fmt.Errorf("graph: edge to unknown node %q", to)
			}
		}
	}

	steps := make([]step[S, U], 0, len(g.nodes))
	seen := make(map[string]bool, len(g.nodes))
	cur := Start
	for {
		next, ok := g.edges[cur]
		if !ok {
			return nil, fmt.Errorf("graph: no edge out of %q", cur)
		}
		if next == End {
			break
		}
		if seen[next] {
			return nil, fmt.Errorf("graph: cycle through %q", next)
		}
		seen[next] = true
		steps = append(steps, step[S, U]{name: next, fn: g.nodes[next]})
		cur = next
	}

	if len(steps) != len(g.nodes) {
		var unreached []string
		for name := range g.nodes {
			if !seen[name] {
				unreached = append(unreached, name)
			}
		}
		sort.Strings(unreached)
		return nil, fmt.Errorf("graph: nodes not reachable from %s: %s", Start, strings.Join(unreached, ", "))
	}

	return &Pipeline[S, U]{merge: g.merge, steps: steps}, nil
}
