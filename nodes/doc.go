// Package nodes contains the built-in draft transformation steps.
//
// Each step is a pure function from a draft to a partial update: it reads
// the fields it needs and returns only the fields it changes. The
// framework applies updates through mail.Apply, so steps never mutate
// their input draft.
//
// Default compiles the standard drafting pipeline:
//
//	p, err := nodes.Default()
//	final := p.Invoke(ctx, mail.New("Hi", "", "a@b.com", mail.CategoryOther))
//
// Register exposes every step through a graph.Registry so custom
// pipelines can be assembled from definition files.
package nodes
