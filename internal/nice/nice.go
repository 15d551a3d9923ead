// Package nice formats the numbers and durations shown by the progress
// display and its summaries.
package nice

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ClockLen is the byte length of a clock written by WriteClock.
const ClockLen = 8

// WriteClock writes secs as HH:MM:SS into dst, which must hold at least
// ClockLen bytes. Hours are capped at 99.
func WriteClock(dst []byte, secs uint32) {
	h, m, s := HMS(secs)
	dst[0] = '0' + h/10
	dst[1] = '0' + h%10
	dst[2] = ':'
	dst[3] = '0' + m/10
	dst[4] = '0' + m%10
	dst[5] = ':'
	dst[6] = '0' + s/10
	dst[7] = '0' + s%10
}

// Clock returns secs as HH:MM:SS.
func Clock(secs uint32) string {
	var buf [ClockLen]byte
	WriteClock(buf[:], secs)
	return string(buf[:])
}

// HMS splits secs into hours, minutes and seconds. Anything at or past
// 100 hours is reported as 99:59:59.
func HMS(secs uint32) (h, m, s uint8) {
	if secs >= 360_000 {
		return 99, 59, 59
	}
	return uint8(secs / 3600), uint8(secs % 3600 / 60), uint8(secs % 60)
}

// Percent formats a 0..1 ratio as a two-decimal percentage, e.g. "42.10%".
// Out-of-range values are clamped.
func Percent(ratio float64) string {
	switch {
	case ratio <= 0:
		return "0.00%"
	case ratio >= 1:
		return "100.00%"
	}
	return strconv.FormatFloat(ratio*100, 'f', 2, 64) + "%"
}

// Int formats n with thousands separators.
func Int(n uint64) string {
	return humanize.Comma(int64(n))
}

// Elapsed renders d as a phrase like "1 hour, 2 minutes, and 3 seconds".
// Sub-second precision is dropped; a day or more is reported as ">1 day".
func Elapsed(d time.Duration) string {
	secs := uint64(d / time.Second)
	if d < 0 {
		secs = 0
	}
	if secs >= 86_400 {
		return ">1 day"
	}
	if secs == 0 {
		return "0 seconds"
	}

	var parts []string
	for _, u := range [...]struct {
		n    uint64
		name string
	}{
		{secs / 3600, "hour"},
		{secs % 3600 / 60, "minute"},
		{secs % 60, "second"},
	} {
		if u.n == 0 {
			continue
		}
		p := strconv.FormatUint(u.n, 10) + " " + u.name
		if u.n != 1 {
			p += "s"
		}
		parts = append(parts, p)
	}

	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
}
