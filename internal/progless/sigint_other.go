//go:build !unix

package progless

// raiseInterrupt is a no-op where signals cannot be re-raised; the caller
// falls back to exiting with status 130.
func raiseInterrupt() {}
