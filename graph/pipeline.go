package graph

import (
	"context"
	"time"
)

type step[S, U any] struct {
	name string
	fn   NodeFunc[S, U]
}

// Pipeline is a compiled linear chain. It is immutable and safe for
// concurrent use: every run folds over its own state values.
type Pipeline[S, U any] struct {
	merge Merge[S, U]
	steps []step[S, U]
}

// Nodes returns the chain's node names in execution order.
func (p *Pipeline[S, U]) Nodes() []string {
	names := make([]string, len(p.steps))
	for i, st := range p.steps {
		names[i] = st.name
	}
	return names
}

// Len returns the number of nodes in the chain.
func (p *Pipeline[S, U]) Len() int { return len(p.steps) }

// Invoke runs the chain to completion and returns the final state. Each
// node sees the state produced by merging all earlier updates.
func (p *Pipeline[S, U]) Invoke(ctx context.Context, initial S) S {
	state := initial
	for _, st := range p.steps {
		state = p.merge(state, st.fn(ctx, state))
	}
	return state
}

// Stream runs the chain to completion and returns the per-node updates as
// a one-shot iterator in execution order. The run is not paced by the
// consumer: every node executes before Stream returns, so an abandoned
// iterator never leaves the chain half-run.
func (p *Pipeline[S, U]) Stream(ctx context.Context, initial S) *Stream[U] {
	updates := make([]NodeUpdate[U], 0, len(p.steps))
	state := initial
	for _, st := range p.steps {
		u := st.fn(ctx, state)
		updates = append(updates, NodeUpdate[U]{Node: st.name, Update: u})
		state = p.merge(state, u)
	}
	return &Stream[U]{updates: updates}
}

// Trace runs the chain like Invoke while timing each node.
func (p *Pipeline[S, U]) Trace(ctx context.Context, initial S) (S, *Trace) {
	tr := &Trace{Steps: make([]StepTrace, 0, len(p.steps))}
	start := time.Now()
	state := initial
	for _, st := range p.steps {
		begin := time.Now()
		state = p.merge(state, st.fn(ctx, state))
		tr.Steps = append(tr.Steps, StepTrace{Node: st.name, Duration: time.Since(begin)})
	}
	tr.Duration = time.Since(start)
	return state, tr
}

// Trace reports node-level timings for one run.
type Trace struct {
	Steps    []StepTrace
	Duration time.Duration
}

// StepTrace is the timing record for a single node.
type StepTrace struct {
	Node     string
	Duration time.Duration
}
