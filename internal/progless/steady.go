package progless

import (
	"sync"
	"sync/atomic"
	"time"
)

// steady repaints a state from a background goroutine until progress ends
// or stop is called.
type steady struct {
	mu  sync.Mutex
	cur *tickerRun
}

// tickerRun is one ticker goroutine. Each start gets a fresh one so a late
// stop can only ever halt the run it saw.
type tickerRun struct {
	stop chan struct{}
	done chan struct{}
	dead atomic.Bool
	once sync.Once
}

func (r *tickerRun) halt() {
	r.once.Do(func() {
		r.dead.Store(true)
		close(r.stop)
	})
}

// start launches the ticker, stopping any previous one first.
func (st *steady) start(s *state) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if old := st.cur; old != nil {
		old.halt()
		<-old.done
	}
	r := &tickerRun{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	st.cur = r
	go r.run(s)
}

// stop signals the ticker and waits for its goroutine to exit. Every caller
// waits, including concurrent ones; once it returns nothing else will be
// painted by that run.
func (st *steady) stop() {
	st.mu.Lock()
	r := st.cur
	st.mu.Unlock()
	if r == nil {
		return
	}

	r.halt()
	<-r.done

	st.mu.Lock()
	if st.cur == r {
		st.cur = nil
	}
	st.mu.Unlock()
}

// running reports whether a ticker goroutine is live.
func (st *steady) running() bool {
	st.mu.Lock()
	r := st.cur
	st.mu.Unlock()
	if r == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

func (r *tickerRun) run(s *state) {
	defer close(r.done)

	// The cursor is hidden with the first frame drawn.
	s.hideCursor(true)
	defer s.hideCursor(false)

	// Nap in two halves so a stop request is noticed quickly.
	half := s.cfg.tickRate / 2
	timer := time.NewTimer(half)
	defer timer.Stop()

	for {
		if flag := s.cfg.interrupt; flag != nil && flag.Load() {
			s.applySigint()
		}
		if r.dead.Load() || !s.tick(false) {
			return
		}
		for range 2 {
			timer.Reset(half)
			select {
			case <-r.stop:
				return
			case <-timer.C:
			}
			if r.dead.Load() {
				return
			}
		}
	}
}
