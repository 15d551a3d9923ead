package progless

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
)

var (
	sigintOnce sync.Once
	sigintCtl  *sigintController
)

// SigintTwoStrike installs a SIGINT handler and returns its flag. The first
// Ctrl+C raises the flag; the second restores the default disposition and
// re-raises the signal, terminating the process.
//
// Only the first call to SigintTwoStrike or SigintKeepalive installs a
// handler; later calls return the same flag.
func SigintTwoStrike() *atomic.Bool { return installSigint(true) }

// SigintKeepalive is like SigintTwoStrike but never terminates: every
// Ctrl+C just raises the flag.
func SigintKeepalive() *atomic.Bool { return installSigint(false) }

func installSigint(twoStrike bool) *atomic.Bool {
	sigintOnce.Do(func() {
		sigintCtl = &sigintController{
			twoStrike: twoStrike,
			terminate: terminate,
		}
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		go func() {
			for range ch {
				if sigintCtl.handle() {
					return
				}
			}
		}()
	})
	return &sigintCtl.flag
}

// sigintController only touches the flag when a signal arrives; it never
// locks.
type sigintController struct {
	flag      atomic.Bool
	twoStrike bool
	terminate func()
}

// handle processes one interrupt and reports whether the process is being
// terminated.
func (c *sigintController) handle() bool {
	if !c.flag.Swap(true) || !c.twoStrike {
		return false
	}
	c.terminate()
	return true
}

// terminate hands SIGINT back to the default disposition and kills the
// process with it.
func terminate() {
	signal.Reset(os.Interrupt)
	raiseInterrupt()
	// Only reached if the signal did not end the process.
	os.Exit(130)
}
