// Package progless draws a thread-safe, self-erasing CLI progress display.
//
// The display is one progress line, an optional title above it, and a list
// of the tasks currently in flight below it:
//
//	Info: Crunching files…
//	[00:00:12]  [##########----------]  512/1,024  50.00%
//	    ↳ photos/IMG_0001.jpg
//	    ↳ photos/IMG_0002.jpg
//
// # Usage
//
//	p, err := progless.Steady(len(files))
//	if err != nil {
//	    return err
//	}
//	defer p.Finish()
//
//	for _, f := range files {
//	    go func() {
//	        task := p.Task(f)
//	        defer task.Done()
//	        crunch(f)
//	    }()
//	}
//
// Workers report through Increment, Update or a TaskGuard; a background
// ticker repaints at most every 100ms. Repaints rewrite only the fields that
// changed inside a partitioned byte buffer, then replace the previous frame
// on screen with a single write.
//
// # Interrupts
//
// SigintTwoStrike installs a handler whose first Ctrl+C only raises a flag
// (the title switches to "Early shutdown in progress.") and whose second
// terminates the process. Pass the flag to OptionSigint and poll it from the
// work loop.
package progless
