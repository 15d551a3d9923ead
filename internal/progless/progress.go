package progless

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sigman78/fyi/internal/msg"
	"github.com/sigman78/fyi/internal/nice"
)

// Progress is a handle to a progress display. All methods are safe for
// concurrent use, and on a nil *Progress they do nothing.
type Progress struct {
	state  *state
	steady *steady
	ticks  bool
}

// New returns a Progress over total items. Nothing is drawn until Tick is
// called; use Steady for a self-repainting display.
func New(total int, opts ...Option) (*Progress, error) {
	n, err := checkIntTotal(total)
	if err != nil {
		return nil, err
	}
	return build(n, opts), nil
}

// TryFrom is New for unsigned totals.
func TryFrom(total uint64, opts ...Option) (*Progress, error) {
	n, err := checkTotal(total)
	if err != nil {
		return nil, err
	}
	return build(n, opts), nil
}

// Steady returns a Progress that repaints itself from a background
// goroutine until it finishes. Call Finish when done with it.
func Steady(total int, opts ...Option) (*Progress, error) {
	p, err := New(total, opts...)
	if err != nil {
		return nil, err
	}
	p.ticks = true
	p.state.phase.Store(phaseRunning)
	p.steady.start(p.state)
	// An abandoned Progress must not leave its ticker painting forever.
	runtime.AddCleanup(p, func(st *steady) { st.stop() }, p.steady)
	return p, nil
}

func build(total uint32, opts []Option) *Progress {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Progress{
		state:  newState(total, cfg),
		steady: new(steady),
	}
}

// WithTitle sets the title and returns p for chaining.
func (p *Progress) WithTitle(title msg.Msg) *Progress {
	p.SetTitle(title)
	return p
}

// SetTitle replaces the title shown above the bar. An empty message removes
// it.
func (p *Progress) SetTitle(title msg.Msg) {
	if p == nil {
		return
	}
	p.state.setTitle(title)
}

// WithReticulatingSplines sets the stock "<app>: Reticulating splines…"
// title and returns p for chaining.
func (p *Progress) WithReticulatingSplines(app string) *Progress {
	p.SetReticulatingSplines(app)
	return p
}

// SetReticulatingSplines sets the stock "<app>: Reticulating splines…"
// title.
func (p *Progress) SetReticulatingSplines(app string) {
	p.SetTitle(msg.Custom(app, 199, splinesTitle))
}

// Sigint replaces the title with an early-shutdown warning. Repeat calls
// within one cycle are ignored.
func (p *Progress) Sigint() {
	if p == nil {
		return
	}
	p.state.applySigint()
}

// Add lists name as an active task and returns its guard. An empty or
// unprintable name is not listed, but the guard still counts when done.
func (p *Progress) Add(name string) *TaskGuard {
	if p == nil {
		return nil
	}
	return p.state.addTask(name)
}

// Task is an alias of Add.
func (p *Progress) Task(name string) *TaskGuard { return p.Add(name) }

// Remove drops one task listed under name and counts it done. Unknown names
// are ignored.
func (p *Progress) Remove(name string) {
	if p == nil {
		return
	}
	p.state.removeTask(name)
}

// Increment counts one item done.
func (p *Progress) Increment() { p.AddN(1) }

// AddN counts n items done. Progress never passes the total.
func (p *Progress) AddN(n uint32) {
	if p == nil {
		return
	}
	p.state.add(n)
}

// SetDone sets the done count outright, clamped to the total.
func (p *Progress) SetDone(n uint32) {
	if p == nil {
		return
	}
	p.state.setDone(n)
}

// Update counts n items done, replaces the title and lists a task, all in
// one step so a repaint never shows part of it.
func (p *Progress) Update(n uint32, title msg.Msg, task string) *TaskGuard {
	if p == nil {
		return nil
	}
	return p.state.update(n, title, task)
}

// Percent returns done/total in [0, 1].
func (p *Progress) Percent() float64 {
	if p == nil {
		return 0
	}
	return p.state.percent()
}

// Done returns the number of items done.
func (p *Progress) Done() uint32 {
	if p == nil {
		return 0
	}
	return p.state.done.Load()
}

// Total returns the number of items expected.
func (p *Progress) Total() uint32 {
	if p == nil {
		return 0
	}
	return p.state.total.Load()
}

// Elapsed returns the time since start, frozen once finished.
func (p *Progress) Elapsed() time.Duration {
	if p == nil {
		return 0
	}
	return p.state.elapsed()
}

// Running reports whether p has not finished yet.
func (p *Progress) Running() bool { return p != nil && p.state.running() }

// Tick repaints the display if the throttle interval has passed. It returns
// false once progress is complete and the final frame has been handled.
func (p *Progress) Tick() bool { return p != nil && p.state.tick(false) }

// Finish stops the ticker, draws or erases the last frame and freezes the
// progress. It is safe to call more than once, from any goroutine.
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	p.steady.stop()
	p.state.finish()
}

// Reset starts over with a new total. Guards from before the reset no longer
// affect progress. A steady Progress resumes ticking.
func (p *Progress) Reset(total int) error {
	n, err := checkIntTotal(total)
	if err != nil || p == nil {
		return err
	}
	p.steady.stop()
	p.state.reset(n)
	if p.ticks {
		p.state.phase.Store(phaseRunning)
		p.steady.start(p.state)
	}
	return nil
}

// Summary reports the work done, e.g. "1,024 files in 3 minutes and 2
// seconds.", using singular or plural as the count requires.
func (p *Progress) Summary(kind msg.Kind, singular, plural string) msg.Msg {
	done := p.Done()
	noun := plural
	if done == 1 {
		noun = singular
	}
	return msg.New(kind, fmt.Sprintf("%s %s in %s.", nice.Int(uint64(done)), noun, nice.Elapsed(p.Elapsed())))
}
