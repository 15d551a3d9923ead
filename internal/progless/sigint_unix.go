//go:build unix

package progless

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func raiseInterrupt() {
	if err := unix.Kill(os.Getpid(), unix.SIGINT); err != nil {
		return
	}
	// Delivery is asynchronous.
	time.Sleep(100 * time.Millisecond)
}
