package progless

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/sigman78/fyi/internal/msg"
)

// Lifecycle phases.
const (
	phaseCreated uint32 = iota
	phaseRunning
	phaseFinished
)

// Dirty bits: which buffer fields need rewriting on the next tick.
const (
	tickBar uint32 = 1 << iota
	tickTasks
	tickDone
	tickPercent
	tickTitle
	tickTotal

	tickAll     = tickBar | tickTasks | tickDone | tickPercent | tickTitle | tickTotal
	tickResized = tickBar | tickTasks | tickTitle
)

const (
	sigintTitle  = "Early shutdown in progress."
	splinesTitle = "Reticulating splines…"
)

// state is shared by the public handle, every TaskGuard and the steady
// ticker. Counters are atomic; the task list, title and render buffer share
// mu so a repaint never sees a half-applied update.
type state struct {
	cfg     config
	limiter *rate.Limiter

	done   atomic.Uint32
	total  atomic.Uint32
	cycle  atomic.Uint32 // only the low byte is meaningful
	phase  atomic.Uint32
	flags  atomic.Uint32
	sigint atomic.Bool

	mu          sync.Mutex
	buf         *RenderBuffer
	title       msg.Msg
	tasks       []*task
	started     time.Time
	stopped     time.Duration
	lastSecs    int64
	lastWidth   int
	lastLines   int
	lastFrame   []byte
	scratch     []byte
	writeFailed bool

	cursorWanted bool
	cursorHidden bool
}

func newState(total uint32, cfg config) *state {
	s := &state{
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Every(cfg.throttle), 1),
		buf:      newFrame(),
		started:  time.Now(),
		lastSecs: -1,
	}
	s.total.Store(total)
	s.flags.Store(tickAll)
	return s
}

func (s *state) running() bool { return s.phase.Load() != phaseFinished }

func (s *state) currentCycle() uint8 { return uint8(s.cycle.Load()) }

// advance adds n to done, clamped to total. It reports whether this call is
// the one that reached total. Callers that get true must clear the task list.
func (s *state) advance(n uint32) bool {
	if n == 0 || !s.running() {
		return false
	}
	for {
		old, total := s.done.Load(), s.total.Load()
		if old >= total {
			return false
		}
		next := total
		if n < total-old {
			next = old + n
		}
		if s.done.CompareAndSwap(old, next) {
			s.flags.Or(tickDone | tickPercent | tickBar)
			return next == total
		}
	}
}

func (s *state) add(n uint32) {
	if s.advance(n) {
		s.mu.Lock()
		s.clearTasks()
		s.mu.Unlock()
	}
}

// setDone overrides the done count, clamped to total.
func (s *state) setDone(n uint32) {
	if !s.running() {
		return
	}
	total := s.total.Load()
	n = min(n, total)
	if s.done.Swap(n) == n {
		return
	}
	s.flags.Or(tickDone | tickPercent | tickBar)
	if n == total {
		s.mu.Lock()
		s.clearTasks()
		s.mu.Unlock()
	}
}

func (s *state) percent() float64 {
	done, total := s.done.Load(), s.total.Load()
	switch {
	case done == 0:
		return 0
	case done >= total:
		return 1
	}
	return float64(done) / float64(total)
}

func (s *state) elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running() {
		return s.stopped
	}
	return time.Since(s.started)
}

// clearTasks requires mu.
func (s *state) clearTasks() {
	if len(s.tasks) > 0 {
		clear(s.tasks)
		s.tasks = s.tasks[:0]
		s.flags.Or(tickTasks)
	}
}

func (s *state) addTask(name string) *TaskGuard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addTaskLocked(name)
}

// addTaskLocked requires mu. The guard always counts toward done; only a
// printable name is listed.
func (s *state) addTaskLocked(name string) *TaskGuard {
	g := &TaskGuard{state: s, cycle: s.currentCycle()}
	if !s.running() {
		return g
	}
	if t := newTask(name); t != nil {
		s.tasks = append(s.tasks, t)
		s.flags.Or(tickTasks)
		g.name = name
		g.listed = true
	}
	return g
}

// dropTask removes the first task registered under name. Requires mu.
func (s *state) dropTask(name string) bool {
	i := slices.IndexFunc(s.tasks, func(t *task) bool { return t.name == name })
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.flags.Or(tickTasks)
	return true
}

// removeTask drops one matching task and counts it done.
func (s *state) removeTask(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running() || !s.dropTask(name) {
		return
	}
	if s.advance(1) {
		s.clearTasks()
	}
}

// releaseGuard is the TaskGuard exit path. Guards from an earlier cycle are
// ignored.
func (s *state) releaseGuard(g *TaskGuard, inc bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.cycle != s.currentCycle() || !s.running() {
		return
	}
	if g.listed {
		s.dropTask(g.name)
	}
	if inc && s.advance(1) {
		s.clearTasks()
	}
}

// update advances done, swaps the title and lists a task under one lock.
func (s *state) update(n uint32, title msg.Msg, name string) *TaskGuard {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.advance(n) {
		s.clearTasks()
	}
	s.setTitleLocked(title)
	return s.addTaskLocked(name)
}

func (s *state) setTitle(title msg.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setTitleLocked(title)
}

func (s *state) setTitleLocked(title msg.Msg) {
	if !s.running() {
		return
	}
	s.title = title.WithNewline(false)
	s.flags.Or(tickTitle)
}

// applySigint swaps in the early-shutdown title, once per cycle.
func (s *state) applySigint() {
	if s.running() && !s.sigint.Swap(true) {
		s.setTitle(msg.New(msg.Warning, sigintTitle))
	}
}

// reset starts a new cycle over total. Outstanding guards become inert.
func (s *state) reset(total uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total.Store(total)
	s.done.Store(0)
	s.cycle.Add(1)
	clear(s.tasks)
	s.tasks = s.tasks[:0]
	s.started = time.Now()
	s.stopped = 0
	s.lastSecs = -1
	s.sigint.Store(false)
	s.flags.Store(tickAll)
	s.phase.Store(phaseCreated)
}

// tick repaints if the throttle allows it or force is set. It returns false
// once progress has finished and the final frame has been drawn.
func (s *state) tick(force bool) bool {
	if !s.running() {
		return false
	}
	if !force && !s.limiter.Allow() {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running() {
		return false
	}
	s.phase.CompareAndSwap(phaseCreated, phaseRunning)
	if s.done.Load() >= s.total.Load() {
		s.finishLocked()
		return false
	}
	s.paintLocked(force)
	return true
}

func (s *state) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishLocked()
}

// finishLocked draws the last frame (or erases the display) and freezes the
// state. Requires mu.
func (s *state) finishLocked() {
	if !s.running() {
		return
	}
	s.stopped = time.Since(s.started)
	s.clearTasks()
	if s.cfg.clearOnFinish {
		s.eraseLocked()
	} else {
		s.paintLocked(true)
		// Leave it on screen.
		s.lastLines = 0
		s.lastFrame = s.lastFrame[:0]
	}
	s.phase.Store(phaseFinished)
}

// hideCursor asks for the cursor to be hidden while frames are on screen.
// Nothing is written until a frame is actually drawn; turning it off shows
// the cursor again only if it was hidden.
func (s *state) hideCursor(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorWanted = on
	if !on && s.cursorHidden {
		s.cursorHidden = false
		s.write([]byte(cursorShow))
	}
}

// write sends b to the output. Failures never interrupt the work being
// tracked; the first one is logged when a logger is configured.
func (s *state) write(b []byte) {
	if _, err := s.cfg.out.Write(b); err != nil && !s.writeFailed {
		s.writeFailed = true
		if s.cfg.logger != nil {
			s.cfg.logger.Printf("progless: terminal write: %v", err)
		}
	}
}
