package docking

import "fmt"

// eventRing keeps the last debug lines, oldest first.
type eventRing struct {
	capacity int
	lines    []string
}

func newEventRing(capacity int) *eventRing {
	return &eventRing{capacity: min(max(capacity, minEventLogCapacity), maxEventLogCapacity)}
}

func (r *eventRing) push(frame uint64, msg string) {
	for len(r.lines) >= r.capacity {
		r.lines = r.lines[1:]
	}
	r.lines = append(r.lines, fmt.Sprintf("[frame %d] %s", frame, msg))
}

func (r *eventRing) snapshot() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

func (r *eventRing) clear() {
	r.lines = nil
}
