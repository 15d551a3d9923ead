// Package fitted measures the display width of UTF-8 byte strings and finds
// where to cut them so they fit a column budget.
//
// ASCII is measured one column per printable byte. ANSI escape sequences
// (ESC through the CSI final byte) and control bytes take no space.
// Everything else is measured per scalar with go-runewidth, which is an
// approximation: combining marks and emoji sequences can be off by a column
// or two.
package fitted

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Width returns the display width of b.
func Width(b []byte) int {
	var (
		w      int
		inANSI bool
	)
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c >= utf8.RuneSelf {
			return widthUnicode(b[i:], w, inANSI)
		}
		switch {
		case inANSI:
			inANSI = !isANSIEnd(c)
		case c == 0x1b:
			inANSI = true
		case c < 0x20 || c == 0x7f:
		default:
			w++
		}
	}
	return w
}

// Fit returns the largest n such that b[:n] is at most width columns wide.
// The cut always lands on a character boundary; zero is returned when not
// even the first visible character fits.
func Fit(b []byte, width int) int {
	if width < 0 {
		return 0
	}
	// No character is wider than its encoding.
	if len(b) <= width {
		return len(b)
	}

	var (
		w      int
		inANSI bool
	)
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c >= utf8.RuneSelf {
			return fitUnicode(b, i, w, width, inANSI)
		}
		switch {
		case inANSI:
			inANSI = !isANSIEnd(c)
		case c == 0x1b:
			inANSI = true
		case c < 0x20 || c == 0x7f:
		default:
			if w+1 > width {
				return i
			}
			w++
		}
	}
	return len(b)
}

func widthUnicode(b []byte, w int, inANSI bool) int {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		switch {
		case inANSI:
			inANSI = !(r < utf8.RuneSelf && isANSIEnd(byte(r)))
		case r == 0x1b:
			inANSI = true
		default:
			w += runeWidth(r)
		}
	}
	return w
}

func fitUnicode(b []byte, pos, w, width int, inANSI bool) int {
	for pos < len(b) {
		r, size := utf8.DecodeRune(b[pos:])
		switch {
		case inANSI:
			inANSI = !(r < utf8.RuneSelf && isANSIEnd(byte(r)))
		case r == 0x1b:
			inANSI = true
		default:
			cw := runeWidth(r)
			if w+cw > width {
				return pos
			}
			w += cw
		}
		pos += size
	}
	return pos
}

func runeWidth(r rune) int {
	if r < 0x20 || r == 0x7f || r == utf8.RuneError {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// isANSIEnd matches a CSI final byte. The '[' opening the sequence is in the
// same range and must not end it.
func isANSIEnd(c byte) bool { return c >= 0x40 && c <= 0x7e && c != '[' }

// StripANSI returns b without ANSI escape sequences. When b has none, it is
// returned as-is.
func StripANSI(b []byte) []byte {
	start := -1
	for i, c := range b {
		if c == 0x1b {
			start = i
			break
		}
	}
	if start < 0 {
		return b
	}

	out := make([]byte, start, len(b))
	copy(out, b[:start])
	inANSI := false
	for _, c := range b[start:] {
		switch {
		case inANSI:
			inANSI = !isANSIEnd(c)
		case c == 0x1b:
			inANSI = true
		default:
			out = append(out, c)
		}
	}
	return out
}
