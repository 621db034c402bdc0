package graph

// NodeUpdate pairs a node's declared name with the partial update it
// produced.
type NodeUpdate[U any] struct {
	Node   string
	Update U
}

// Stream is a finite, one-shot sequence of per-node updates. It is not
// restartable and not safe for concurrent use.
type Stream[U any] struct {
	updates []NodeUpdate[U]
	pos     int
}

// Next returns the next update in execution order. The second result is
// false once the stream is drained.
func (s *Stream[U]) Next() (NodeUpdate[U], bool) {
	if s.pos >= len(s.updates) {
		var zero NodeUpdate[U]
		return zero, false
	}
	u := s.updates[s.pos]
	s.pos++
	return u, true
}

// Collect drains the stream and returns the remaining updates.
func (s *Stream[U]) Collect() []NodeUpdate[U] {
	out := make([]NodeUpdate[U], 0, len(s.updates)-s.pos)
	for {
		u, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, u)
	}
}

// ForEach drains the stream, invoking fn for each remaining update.
func (s *Stream[U]) ForEach(fn func(NodeUpdate[U])) {
	for {
		u, ok := s.Next()
		if !ok {
			return
		}
		fn(u)
	}
}
