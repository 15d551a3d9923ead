package progless

import (
	"bytes"
	"math"
	"time"

	"github.com/sigman78/fyi/internal/nice"
)

// Buffer fields, in display order.
const (
	partTitle = iota
	partElapsed
	partBarDone
	partBarUndone
	partDone
	partTotal
	partPercent
	partTasks
)

const (
	minBarWidth  = 10
	minDrawWidth = 40

	// barChrome is the fixed width around the variable fields of the
	// progress line: two brackets and two spaces each for the clock and the
	// bar, the slash, and two spaces before the percentage.
	barChrome = 11

	cursorHide = "\x1b[?25l"
	cursorShow = "\x1b[?25h"

	eraseLine   = "\x1b[1000D\x1b[K"
	eraseLineUp = "\x1b[1A\x1b[1000D\x1b[K"
)

var (
	barDone   = bytes.Repeat([]byte{'#'}, maxWidth)
	barUndone = bytes.Repeat([]byte{'-'}, maxWidth)
)

// newFrame lays out an empty progress frame:
//
//	<title>[00:00:00]  [<done><undone>]  0/0  0.00%\n<tasks>
func newFrame() *RenderBuffer {
	var f frameBuilder
	f.part("")
	f.lit("\x1b[2m[\x1b[0;1m")
	f.part("00:00:00")
	f.lit("\x1b[0;2m]\x1b[0m  \x1b[2m[\x1b[0;1;96m")
	f.part("")
	f.lit("\x1b[0;1;34m")
	f.part("")
	f.lit("\x1b[0;2m]\x1b[0m  \x1b[1;96m")
	f.part("0")
	f.lit("\x1b[0;2m/\x1b[0;1;34m")
	f.part("0")
	f.lit("\x1b[0;1m  ")
	f.part("0.00%")
	f.lit("\x1b[0m\n")
	f.part("")
	return f.build()
}

// flagUnset clears flag and reports whether it was set.
func (s *state) flagUnset(flag uint32) bool {
	return s.flags.And(^flag)&flag != 0
}

// paintLocked refreshes the dirty fields and prints the frame if it differs
// from what is on screen. Requires mu.
func (s *state) paintLocked(force bool) {
	timeChanged := s.tickElapsed()

	width := min(s.cfg.width(), maxWidth)
	if width != s.lastWidth {
		s.lastWidth = width
		s.flags.Or(tickResized)
	}
	if width < minDrawWidth {
		s.eraseLocked()
		return
	}
	if !force && !timeChanged && s.flags.Load() == 0 {
		return
	}

	s.renderTasks(width)
	s.renderDone()
	s.renderPercent()
	s.renderTitle(width)
	s.renderTotal()
	// The bar gets whatever room the other fields on its line leave.
	s.renderBar(width)

	s.printLocked()
}

// tickElapsed rewrites the clock in place when the whole second changed.
func (s *state) tickElapsed() bool {
	secs := int64(time.Since(s.started) / time.Second)
	if secs == s.lastSecs {
		return false
	}
	s.lastSecs = secs
	nice.WriteClock(s.buf.Part(partElapsed), uint32(min(secs, math.MaxUint32)))
	return true
}

func (s *state) renderTasks(width int) {
	if !s.flagUnset(tickTasks) {
		return
	}
	if len(s.tasks) == 0 {
		s.buf.Truncate(partTasks, 0)
		return
	}

	out := append(s.scratch[:0], "\x1b[35m"...)
	shown := min(len(s.tasks), maxTaskLines)
	for _, t := range s.tasks[:shown] {
		out = t.appendTo(out, width)
	}
	if extra := len(s.tasks) - shown; extra > 0 {
		more := task{label: []byte("…and " + nice.Int(uint64(extra)) + " more")}
		more.width = len(more.label) - 2 // the ellipsis is three bytes wide
		out = more.appendTo(out, width)
	}
	out = append(out, "\x1b[0m"...)
	s.buf.Replace(partTasks, out)
	s.scratch = out
}

func (s *state) renderDone() {
	if s.flagUnset(tickDone) {
		s.buf.Replace(partDone, []byte(nice.Int(uint64(s.done.Load()))))
	}
}

func (s *state) renderTotal() {
	if s.flagUnset(tickTotal) {
		s.buf.Replace(partTotal, []byte(nice.Int(uint64(s.total.Load()))))
	}
}

func (s *state) renderPercent() {
	if s.flagUnset(tickPercent) {
		s.buf.Replace(partPercent, []byte(nice.Percent(s.percent())))
	}
}

func (s *state) renderTitle(width int) {
	if !s.flagUnset(tickTitle) {
		return
	}
	if s.title.IsEmpty() {
		s.buf.Truncate(partTitle, 0)
		return
	}
	s.buf.Replace(partTitle, s.title.WithNewline(true).Fitted(width))
}

func (s *state) renderBar(width int) {
	if !s.flagUnset(tickBar) {
		return
	}
	doneW, undoneW := s.barWidths(width)
	// Undone first: it only ever shrinks, leaving less to move when the done
	// side grows.
	s.buf.Replace(partBarUndone, barUndone[:undoneW])
	s.buf.Replace(partBarDone, barDone[:doneW])
}

// barWidths splits the free space on the progress line between the done and
// undone glyphs. Both are zero when fewer than minBarWidth columns remain.
func (s *state) barWidths(width int) (int, int) {
	space := width - barChrome -
		s.buf.PartLen(partElapsed) -
		s.buf.PartLen(partDone) -
		s.buf.PartLen(partTotal) -
		s.buf.PartLen(partPercent)
	if space < minBarWidth {
		return 0, 0
	}
	done, total := uint64(s.done.Load()), uint64(s.total.Load())
	if done >= total {
		return space, 0
	}
	doneW := int(done * uint64(space) / total)
	return doneW, space - doneW
}

// printLocked erases the previous frame and prints the buffer in a single
// write. Identical frames are skipped.
func (s *state) printLocked() {
	frame := s.buf.Bytes()
	if s.lastLines > 0 && bytes.Equal(frame, s.lastFrame) {
		return
	}
	out := make([]byte, 0, len(cursorHide)+len(frame)+len(eraseLine)+len(eraseLineUp)*s.lastLines)
	if s.cursorWanted && !s.cursorHidden {
		s.cursorHidden = true
		out = append(out, cursorHide...)
	}
	out = appendErase(out, s.lastLines)
	out = append(out, frame...)
	s.write(out)
	s.lastFrame = append(s.lastFrame[:0], frame...)
	s.lastLines = bytes.Count(frame, []byte{'\n'})
}

// eraseLocked removes the previous frame from the screen.
func (s *state) eraseLocked() {
	if s.lastLines > 0 {
		s.write(appendErase(nil, s.lastLines))
	}
	s.lastLines = 0
	s.lastFrame = s.lastFrame[:0]
}

// appendErase clears the current line and the n lines above it, leaving
// the cursor at the start of the topmost one.
func appendErase(dst []byte, n int) []byte {
	if n <= 0 {
		return dst
	}
	dst = append(dst, eraseLine...)
	for i := 0; i < n; i++ {
		dst = append(dst, eraseLineUp...)
	}
	return dst
}
