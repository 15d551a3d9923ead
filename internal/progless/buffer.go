package progless

import (
	"bytes"
	"slices"
)

// RenderBuffer is a byte buffer split into named fields by a PartitionTable.
// Fields are rewritten in place: only the bytes after a changed field move,
// and nothing is reallocated unless the buffer has to grow.
type RenderBuffer struct {
	buf   []byte
	parts PartitionTable
}

// NewRenderBuffer takes ownership of buf and parts.
func NewRenderBuffer(buf []byte, parts []Partition) (*RenderBuffer, error) {
	t := PartitionTable(parts)
	if err := t.validate(len(buf)); err != nil {
		return nil, err
	}
	return &RenderBuffer{buf: buf, parts: t}, nil
}

// Bytes returns the whole buffer. The slice is only valid until the next
// mutation.
func (b *RenderBuffer) Bytes() []byte { return b.buf }

// Len returns the whole buffer length.
func (b *RenderBuffer) Len() int { return len(b.buf) }

// Parts returns a copy of the partition table.
func (b *RenderBuffer) Parts() PartitionTable { return slices.Clone(b.parts) }

// Part returns the content of partition idx.
func (b *RenderBuffer) Part(idx int) []byte {
	p := b.parts[idx]
	return b.buf[p.Start:p.End:p.End]
}

// PartLen returns the length of partition idx.
func (b *RenderBuffer) PartLen(idx int) int { return b.parts[idx].Len() }

// Replace sets the content of partition idx to src, growing or shrinking the
// buffer as needed. Bytes before the partition are untouched. It reports
// whether anything changed; identical content is left alone.
func (b *RenderBuffer) Replace(idx int, src []byte) bool {
	if bytes.Equal(b.Part(idx), src) {
		return false
	}
	b.Resize(idx, len(src))
	p := b.parts[idx]
	copy(b.buf[p.Start:p.End], src)
	return true
}

// Truncate shortens partition idx to n bytes. Longer values are ignored.
func (b *RenderBuffer) Truncate(idx, n int) {
	if n < b.parts[idx].Len() {
		b.Resize(idx, n)
	}
}

// Resize changes the length of partition idx to n. Growth is zero-filled at
// the end of the partition and must be overwritten by the caller; shrinking
// drops bytes from the end of the partition.
func (b *RenderBuffer) Resize(idx, n int) {
	if n < 0 {
		n = 0
	}
	p := b.parts[idx]
	delta := n - p.Len()
	switch {
	case delta == 0:
		return
	case delta < 0 && p.End == len(b.buf):
		b.buf = b.buf[:len(b.buf)+delta]
	case delta < 0:
		b.buf = append(b.buf[:p.End+delta], b.buf[p.End:]...)
	default:
		tail := len(b.buf) - p.End
		b.buf = slices.Grow(b.buf, delta)[:len(b.buf)+delta]
		copy(b.buf[p.End+delta:], b.buf[p.End:p.End+tail])
		clear(b.buf[p.End : p.End+delta])
	}
	b.parts.shift(idx, delta)
}

// frameBuilder assembles a RenderBuffer from alternating literal and
// partition segments.
type frameBuilder struct {
	buf   []byte
	parts []Partition
}

func (f *frameBuilder) lit(s string) { f.buf = append(f.buf, s...) }

func (f *frameBuilder) part(s string) {
	start := len(f.buf)
	f.buf = append(f.buf, s...)
	f.parts = append(f.parts, Partition{Start: start, End: len(f.buf)})
}

func (f *frameBuilder) build() *RenderBuffer {
	return &RenderBuffer{buf: f.buf, parts: f.parts}
}
