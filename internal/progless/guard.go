package progless

import "sync/atomic"

// TaskGuard tracks one unit of work. Done counts it toward progress and
// removes its task line; Cancel only removes the line. Only the first of
// either call has any effect, and guards handed out before a Reset are
// ignored.
//
// A nil *TaskGuard is valid and does nothing, so callers can write
//
//	defer p.Task(name).Done()
type TaskGuard struct {
	state    *state
	cycle    uint8
	name     string
	listed   bool
	released atomic.Bool
}

// Name returns the task name the guard was listed under, if any.
func (g *TaskGuard) Name() string {
	if g == nil {
		return ""
	}
	return g.name
}

// Done marks the work finished.
func (g *TaskGuard) Done() { g.release(true) }

// Cancel drops the task without counting it.
func (g *TaskGuard) Cancel() { g.release(false) }

func (g *TaskGuard) release(inc bool) {
	if g == nil || g.state == nil || g.released.Swap(true) {
		return
	}
	g.state.releaseGuard(g, inc)
}
