// Package msg builds the prefixed, ANSI-styled one-line messages printed by
// the CLI and used as progress titles and summaries.
package msg

import (
	"io"
	"os"
	"strings"

	"github.com/sigman78/fyi/internal/fitted"
)

// Msg is a rendered message: an optional indent, a prefix, the text, and an
// optional trailing newline. The zero value is an empty message.
type Msg struct {
	indent  int
	prefix  string
	text    string
	newline bool
}

// New returns a message of the given kind.
func New(kind Kind, text string) Msg {
	return Msg{prefix: kind.Prefix(), text: text}
}

// Custom returns a message with an arbitrary prefix label drawn in a
// 256-color foreground.
func Custom(label string, color uint8, text string) Msg {
	return Msg{prefix: customPrefix(label, color), text: text}
}

// Plain returns a message without a prefix.
func Plain(text string) Msg { return Msg{text: text} }

// WithNewline toggles the trailing line break.
func (m Msg) WithNewline(v bool) Msg {
	m.newline = v
	return m
}

// WithIndent indents the message by n levels of four spaces.
func (m Msg) WithIndent(n int) Msg {
	if n < 0 {
		n = 0
	}
	m.indent = n
	return m
}

// IsEmpty reports whether the message would print nothing visible.
func (m Msg) IsEmpty() bool { return m.prefix == "" && m.text == "" }

// String returns the full rendered message.
func (m Msg) String() string {
	var sb strings.Builder
	sb.Grow(m.indent*4 + len(m.prefix) + len(m.text) + 1)
	for i := 0; i < m.indent; i++ {
		sb.WriteString("    ")
	}
	sb.WriteString(m.prefix)
	sb.WriteString(m.text)
	if m.newline {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Bytes returns the full rendered message.
func (m Msg) Bytes() []byte { return []byte(m.String()) }

// Width returns the display width of the message, ignoring ANSI sequences.
func (m Msg) Width() int { return fitted.Width([]byte(m.String())) }

// Fitted returns the message cropped to at most width display columns. A
// trailing newline and a closing reset sequence are preserved.
func (m Msg) Fitted(width int) []byte {
	nl := m.newline
	m.newline = false
	b := m.Bytes()
	if n := fitted.Fit(b, width); n < len(b) {
		b = append(b[:n:n], "\x1b[0m"...)
	}
	if nl {
		b = append(b, '\n')
	}
	return b
}

// WriteTo writes the message to w.
func (m Msg) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.String())
	return int64(n), err
}

// Print writes the message to stdout. Write errors are ignored.
func (m Msg) Print() { _, _ = m.WriteTo(os.Stdout) }

// Eprint writes the message to stderr. Write errors are ignored.
func (m Msg) Eprint() { _, _ = m.WriteTo(os.Stderr) }
