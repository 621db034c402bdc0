// Package graph provides a small linear state-graph engine. Named nodes
// transform an immutable state value by returning partial updates, and a
// merge function folds each update back into the state before the next
// node runs.
//
// A chain is declared with a builder and frozen by Compile:
//
//	p, err := graph.New(mergeFn).
//		AddNode("first", firstFn).
//		AddNode("second", secondFn).
//		AddEdge(graph.Start, "first").
//		AddEdge("first", "second").
//		AddEdge("second", graph.End).
//		Compile()
//
// Compiled pipelines run in two modes: Invoke folds the chain and returns
// the final state, Stream additionally reports each node's partial update
// in execution order through a one-shot iterator. Chains can also be
// declared in YAML (Definition) and resolved against a Registry of named
// node functions.
//
// The engine is deliberately linear: one entry, one exit, no branching,
// no retries. Nodes are total functions and the context is threaded for
// observability only, never for cancellation.
package graph
