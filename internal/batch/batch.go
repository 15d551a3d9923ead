// Package batch runs named jobs on a worker pool behind a progless display.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sigman78/fyi/internal/msg"
	"github.com/sigman78/fyi/internal/progless"
)

// Job processes one named item.
type Job func(ctx context.Context, name string) error

// Config holds the runtime configuration of a batch.
type Config struct {
	Threads     int  // pool size (default: GOMAXPROCS)
	StopOnError bool // abort on the first failing job
	Debug       bool // log each failure
	Title       msg.Msg
	Singular    string // summary noun (default: "job")
	Plural      string // (default: "jobs")

	// Interrupt, when set, stops new jobs from starting. Jobs already
	// running finish normally.
	Interrupt *atomic.Bool

	// Options are passed through to the progress display.
	Options []progless.Option
}

// Result reports how a batch went.
type Result struct {
	Done    int
	Failed  int
	Skipped int
	Elapsed time.Duration
	Summary msg.Msg
}

// Run processes every job with fn, at most cfg.Threads at a time, showing
// each in-flight job as a task line. Failed jobs are counted and logged
// unless StopOnError is set, in which case the first failure is returned.
// Every job ends up counted exactly once as done, failed or skipped.
func Run(ctx context.Context, cfg Config, jobs []string, fn Job) (Result, error) {
	if len(jobs) == 0 {
		return Result{}, nil
	}
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	opts := append([]progless.Option{progless.OptionSigint(cfg.Interrupt)}, cfg.Options...)
	prog, err := progless.Steady(len(jobs), opts...)
	if err != nil {
		return Result{}, fmt.Errorf("batch: %w", err)
	}
	defer prog.Finish()
	if !cfg.Title.IsEmpty() {
		prog.SetTitle(cfg.Title)
	}

	pool, err := ants.NewPool(threads)
	if err != nil {
		return Result{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	g, ctx := errgroup.WithContext(ctx)
	var done, failed, skipped atomic.Int64

	for _, job := range jobs {
		g.Go(func() error {
			if ctx.Err() != nil || interrupted(cfg.Interrupt) {
				skipped.Add(1)
				return nil
			}
			errCh := make(chan error, 1)
			if err := pool.Submit(func() {
				errCh <- runOne(ctx, prog, job, fn)
			}); err != nil {
				return fmt.Errorf("submit task: %w", err)
			}
			if err := <-errCh; err != nil {
				// Cut short by an earlier failure or the caller.
				if ctx.Err() != nil && errors.Is(err, context.Canceled) {
					skipped.Add(1)
					return nil
				}
				failed.Add(1)
				if cfg.StopOnError {
					return fmt.Errorf("%s: %w", job, err)
				}
				if cfg.Debug {
					log.Printf("job %s failed: %v", job, err)
				}
				return nil
			}
			done.Add(1)
			return nil
		})
	}

	err = g.Wait()
	prog.Finish()

	singular, plural := cfg.Singular, cfg.Plural
	if singular == "" {
		singular, plural = "job", "jobs"
	}
	kind := msg.Crunched
	if failed.Load() > 0 || err != nil {
		kind = msg.Warning
	}
	return Result{
		Done:    int(done.Load()),
		Failed:  int(failed.Load()),
		Skipped: int(skipped.Load()),
		Elapsed: prog.Elapsed(),
		Summary: prog.Summary(kind, singular, plural),
	}, err
}

// runOne runs a single job under a task guard. A panicking job counts as a
// failure.
func runOne(ctx context.Context, prog *progless.Progress, job string, fn Job) (err error) {
	task := prog.Task(job)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			task.Cancel()
			return
		}
		task.Done()
	}()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fn(ctx, job)
}

func interrupted(flag *atomic.Bool) bool { return flag != nil && flag.Load() }
