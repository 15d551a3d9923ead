package fitted

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWidth(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"\x1b[1;91mError:\x1b[0m oops", 11},
		{"tab\there", 7},
		{"新年快乐", 8},
		{"a新b", 4},
		{"\x1b[2m新\x1b[0m", 2},
		{"café", 4},
	}

	for _, tc := range cases {
		if got := Width([]byte(tc.in)); got != tc.want {
			t.Errorf("Width(%q)\n  got  %d\n  want %d", tc.in, got, tc.want)
		}
	}
}

func TestFit(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello"},
		{"hello", 0, ""},
		{"\x1b[1mbold\x1b[0m text", 4, "\x1b[1mbold\x1b[0m"},
		{"新年快乐", 4, "新年"},
		{"新年快乐", 5, "新年"},
		{"ab新年", 3, "ab"},
		{"ab新年", 4, "ab新"},
	}

	for _, tc := range cases {
		n := Fit([]byte(tc.in), tc.width)
		if got := tc.in[:n]; got != tc.want {
			t.Errorf("Fit(%q, %d)\n  got  %q\n  want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

// A string of k double-width characters fits w columns iff 2k <= w, and any
// cut lands on a character boundary.
func TestFitDoubleWidth(t *testing.T) {
	for k := 1; k <= 8; k++ {
		s := []byte(strings.Repeat("界", k))
		for w := 0; w <= 2*k+2; w++ {
			n := Fit(s, w)
			if fits := n == len(s); fits != (2*k <= w) {
				t.Errorf("k=%d w=%d: fits=%v, want %v", k, w, fits, 2*k <= w)
			}
			if !utf8.Valid(s[:n]) {
				t.Errorf("k=%d w=%d: cut at %d is not a character boundary", k, w, n)
			}
			if got := Width(s[:n]); got > w {
				t.Errorf("k=%d w=%d: fitted width %d exceeds budget", k, w, got)
			}
		}
	}
}

func TestStripANSI(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"\x1b[1;30mhello\x1b[0m", "hello"},
		{"\x1b[1m", ""},
		{"a\x1b[2Kb", "ab"},
		{"\x1b[?25lx\x1b[1000D\x1b[?25h", "x"},
	}

	for _, tc := range cases {
		if got := string(StripANSI([]byte(tc.in))); got != tc.want {
			t.Errorf("StripANSI(%q)\n  got  %q\n  want %q", tc.in, got, tc.want)
		}
	}
}
