package nav

import (
	"sync"
	"time"
)

// taskGroup tracks pending fire-once callbacks so a session teardown can
// cancel them deterministically instead of letting a late timer mutate a
// disposed session.
type taskGroup struct {
	mu     sync.Mutex
	next   int
	timers map[int]*time.Timer
	closed bool
}

func newTaskGroup() *taskGroup {
	return &taskGroup{timers: make(map[int]*time.Timer)}
}

// After schedules fn once after d. The callback is dropped if the group is
// closed before it fires.
func (g *taskGroup) After(d time.Duration, fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}

	id := g.next
	g.next++

	g.timers[id] = time.AfterFunc(d, func() {
		g.mu.Lock()
		if g.closed {
			g.mu.Unlock()
			return
		}
		delete(g.timers, id)
		g.mu.Unlock()

		fn()
	})
}

// Close stops every pending timer. Safe to call more than once.
func (g *taskGroup) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	for id, t := range g.timers {
		t.Stop()
		delete(g.timers, id)
	}
}
