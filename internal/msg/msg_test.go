package msg

import (
	"bytes"
	"strings"
	"testing"
)

func TestKindPrefix(t *testing.T) {
	if p := None.Prefix(); p != "" {
		t.Errorf("None.Prefix() = %q, want empty", p)
	}
	for k := Confirm; k <= Warning; k++ {
		p := k.Prefix()
		if !strings.Contains(p, k.String()+":") {
			t.Errorf("%s prefix %q is missing its label", k, p)
		}
		if !strings.HasPrefix(p, "\x1b[") || !strings.HasSuffix(p, "\x1b[0m ") {
			t.Errorf("%s prefix %q is not styled", k, p)
		}
	}
	if p := Kind(200).Prefix(); p != "" {
		t.Errorf("Kind(200).Prefix() = %q, want empty", p)
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"error", Error, true},
		{" Warning ", Warning, true},
		{"prompt", Confirm, true},
		{"print", None, true},
		{"bogus", None, false},
	}

	for _, tc := range cases {
		got, ok := ParseKind(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMsgString(t *testing.T) {
	m := New(Done, "All good.").WithIndent(1).WithNewline(true)
	s := m.String()
	if !strings.HasPrefix(s, "    \x1b[") {
		t.Errorf("expected indent then style, got %q", s)
	}
	if !strings.HasSuffix(s, "All good.\n") {
		t.Errorf("expected text and newline, got %q", s)
	}
	if w := m.Width(); w != 4+len("Done: All good.") {
		t.Errorf("Width() = %d, want %d", w, 4+len("Done: All good."))
	}
}

func TestMsgCustom(t *testing.T) {
	m := Custom("Build[x]", 199, "ok")
	s := m.String()
	if !strings.Contains(s, "\x1b[38;5;199m") {
		t.Errorf("expected 256-color code, got %q", s)
	}
	if !strings.Contains(s, "Buildx:") {
		t.Errorf("expected sanitized label, got %q", s)
	}
	if !Custom("  ", 1, "").IsEmpty() {
		t.Error("blank custom label with no text should be empty")
	}
}

func TestMsgFitted(t *testing.T) {
	m := New(Info, "a rather long message body").WithNewline(true)
	b := m.Fitted(10)
	if !bytes.HasSuffix(b, []byte("\x1b[0m\n")) {
		t.Errorf("expected reset and newline after crop, got %q", b)
	}
	plain := Plain("short").WithNewline(true)
	if got := string(plain.Fitted(80)); got != "short\n" {
		t.Errorf("Fitted(80) = %q, want %q", got, "short\n")
	}
}

func TestMsgWriteTo(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Plain("hi").WithNewline(true).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.String() != "hi\n" {
		t.Errorf("got %q", buf.String())
	}
}
