package progless

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/mrz1836/go-sanitize"

	"github.com/sigman78/fyi/internal/fitted"
)

// taskPrefix is drawn before each task line: four spaces, "↳", a space.
const (
	taskPrefix      = "    ↳ "
	taskPrefixWidth = 6
	// maxTaskLines bounds the task list; extra tasks are summarised on one
	// line.
	maxTaskLines = 48
)

// task is one in-flight job as shown below the progress line.
type task struct {
	name  string // lookup key, as passed by the caller
	label []byte // single-line, ANSI-free display text
	width int
	ascii bool
}

// newTask normalises name for display. It returns nil when nothing
// printable is left.
func newTask(name string) *task {
	line := sanitize.SingleLine(name)
	line = strings.Map(func(r rune) rune {
		if (r < 0x20 && r != 0x1b) || r == 0x7f {
			return -1
		}
		return r
	}, line)
	label := bytes.TrimSpace(fitted.StripANSI([]byte(line)))
	if len(label) == 0 {
		return nil
	}
	ascii := true
	for _, c := range label {
		if c >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	w := len(label)
	if !ascii {
		w = fitted.Width(label)
	}
	return &task{name: name, label: label, width: w, ascii: ascii}
}

// appendTo writes the task line, cropped to width columns including the
// prefix. Nothing is written if no part of the label fits.
func (t *task) appendTo(dst []byte, width int) []byte {
	avail := width - taskPrefixWidth
	if avail <= 0 {
		return dst
	}
	end := len(t.label)
	if t.width > avail {
		if t.ascii {
			end = avail
		} else {
			end = fitted.Fit(t.label, avail)
		}
	}
	if end == 0 {
		return dst
	}
	dst = append(dst, taskPrefix...)
	dst = append(dst, t.label[:end]...)
	return append(dst, '\n')
}
