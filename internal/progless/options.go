package progless

import (
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

const (
	defaultTickRate = 100 * time.Millisecond
	defaultThrottle = 60 * time.Millisecond

	// maxWidth caps the usable line width; the bar glyph tables are sized to
	// match.
	maxWidth = 255
)

type config struct {
	out           io.Writer
	width         func() int
	tickRate      time.Duration
	throttle      time.Duration
	clearOnFinish bool
	logger        *log.Logger
	interrupt     *atomic.Bool
}

func defaultConfig() config {
	return config{
		out:           os.Stderr,
		width:         stderrWidth,
		tickRate:      defaultTickRate,
		throttle:      defaultThrottle,
		clearOnFinish: true,
	}
}

// Option configures a Progress.
type Option func(*config)

// OptionSetWriter sets the output stream (default os.Stderr).
func OptionSetWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.out = w
		}
	}
}

// OptionSetTermWidth replaces the terminal width lookup. Widths below 40
// columns hide the display.
func OptionSetTermWidth(fn func() int) Option {
	return func(c *config) {
		if fn != nil {
			c.width = fn
		}
	}
}

// OptionTickRate sets the steady ticker cadence (default 100ms).
func OptionTickRate(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.tickRate = d
		}
	}
}

// OptionThrottle sets the minimum interval between two repaints
// (default 60ms).
func OptionThrottle(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.throttle = d
		}
	}
}

// OptionClearOnFinish controls whether the display is erased when progress
// ends (default true). When false the last frame stays on screen.
func OptionClearOnFinish(v bool) Option {
	return func(c *config) { c.clearOnFinish = v }
}

// OptionSetLogger receives terminal write failures, which are otherwise
// ignored.
func OptionSetLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// OptionSigint links an interrupt flag, usually from SigintTwoStrike. Once
// the flag is raised the title changes to an early-shutdown warning.
func OptionSigint(flag *atomic.Bool) Option {
	return func(c *config) { c.interrupt = flag }
}

// stderrWidth returns the terminal width less one column, or 0 when stderr
// is not a terminal.
func stderrWidth() int {
	w, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || w <= 1 {
		return 0
	}
	return w - 1
}
