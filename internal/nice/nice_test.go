package nice

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	cases := []struct {
		secs uint32
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{61, "00:01:01"},
		{3723, "01:02:03"},
		{359_999, "99:59:59"},
		{400_000, "99:59:59"}, // capped
	}

	for _, tc := range cases {
		if got := Clock(tc.secs); got != tc.want {
			t.Errorf("Clock(%d)\n  got  %q\n  want %q", tc.secs, got, tc.want)
		}
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{-1, "0.00%"},
		{0, "0.00%"},
		{0.5, "50.00%"},
		{0.1234, "12.34%"},
		{1, "100.00%"},
		{3, "100.00%"},
	}

	for _, tc := range cases {
		if got := Percent(tc.in); got != tc.want {
			t.Errorf("Percent(%v)\n  got  %q\n  want %q", tc.in, got, tc.want)
		}
	}
}

func TestInt(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{4_294_967_295, "4,294,967,295"},
	}

	for _, tc := range cases {
		if got := Int(tc.in); got != tc.want {
			t.Errorf("Int(%d)\n  got  %q\n  want %q", tc.in, got, tc.want)
		}
	}
}

func TestElapsed(t *testing.T) {
	cases := []struct {
		secs int
		want string
	}{
		{0, "0 seconds"},
		{1, "1 second"},
		{50, "50 seconds"},
		{60, "1 minute"},
		{61, "1 minute and 1 second"},
		{2121, "35 minutes and 21 seconds"},
		{3600, "1 hour"},
		{3601, "1 hour and 1 second"},
		{3660, "1 hour and 1 minute"},
		{3661, "1 hour, 1 minute, and 1 second"},
		{37732, "10 hours, 28 minutes, and 52 seconds"},
		{428390, ">1 day"},
	}

	for _, tc := range cases {
		got := Elapsed(time.Duration(tc.secs) * time.Second)
		if got != tc.want {
			t.Errorf("Elapsed(%ds)\n  got  %q\n  want %q", tc.secs, got, tc.want)
		}
	}

	// Sub-second remainders are dropped.
	if got := Elapsed(1500 * time.Millisecond); got != "1 second" {
		t.Errorf("Elapsed(1.5s) = %q, want %q", got, "1 second")
	}
}
