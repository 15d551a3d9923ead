package progless

import (
	"errors"
	"math"
)

// MaxTotal is the largest total a Progress accepts: the width of its 32-bit
// counters.
const MaxTotal uint64 = math.MaxUint32

var (
	// ErrEmptyTotal is returned for a zero (or negative) total.
	ErrEmptyTotal = errors.New("progless: at least one task is required")
	// ErrTotalOverflow is returned for a total above MaxTotal.
	ErrTotalOverflow = errors.New("progless: total cannot exceed 4,294,967,295")
)

func checkTotal(total uint64) (uint32, error) {
	switch {
	case total == 0:
		return 0, ErrEmptyTotal
	case total > MaxTotal:
		return 0, ErrTotalOverflow
	}
	return uint32(total), nil
}

func checkIntTotal(total int) (uint32, error) {
	if total <= 0 {
		return 0, ErrEmptyTotal
	}
	return checkTotal(uint64(total))
}
