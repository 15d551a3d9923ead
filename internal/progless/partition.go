package progless

import (
	"fmt"
	"strconv"
	"strings"
)

// Partition is a half-open [Start, End) byte range of a RenderBuffer.
type Partition struct {
	Start int
	End   int
}

// Len returns the partition length.
func (p Partition) Len() int { return p.End - p.Start }

// PartitionTable is an ordered list of non-overlapping partitions. Gaps
// between partitions hold literal bytes that are never rewritten.
type PartitionTable []Partition

// validate checks ordering against a buffer of length n.
func (t PartitionTable) validate(n int) error {
	prev := 0
	for i, p := range t {
		if p.Start < prev || p.End < p.Start {
			return fmt.Errorf("partition %d [%d,%d) out of order", i, p.Start, p.End)
		}
		prev = p.End
	}
	if prev > n {
		return fmt.Errorf("partitions end at %d past buffer length %d", prev, n)
	}
	return nil
}

// shift moves the end of partition idx, and both bounds of every later
// partition, by delta.
func (t PartitionTable) shift(idx, delta int) {
	t[idx].End += delta
	for j := idx + 1; j < len(t); j++ {
		t[j].Start += delta
		t[j].End += delta
	}
}

// Total returns the combined length of all partitions.
func (t PartitionTable) Total() int {
	var n int
	for _, p := range t {
		n += p.Len()
	}
	return n
}

// String renders the partition layout for debugging.
func (t PartitionTable) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range t {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("(" + strconv.Itoa(p.Start) + "," + strconv.Itoa(p.End) + ")")
	}
	b.WriteByte(']')
	return b.String()
}
