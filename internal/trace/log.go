package trace

// Log is an append-only sequence of steps. With never mutates the receiver,
// so a Log captured at one point of a solve keeps describing that point.
type Log struct {
	steps []Step
}

// With returns a log holding the receiver's steps followed by s.
func (l Log) With(s Step) Log {
	n := len(l.steps)
	return Log{steps: append(l.steps[:n:n], s)}
}

// Len returns the number of steps.
func (l Log) Len() int { return len(l.steps) }

// Steps returns a copy of the steps in order. It never returns nil.
func (l Log) Steps() []Step {
	out := make([]Step, len(l.steps))
	copy(out, l.steps)
	return out
}
