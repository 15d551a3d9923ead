package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/sigman78/fyi/internal/batch"
	"github.com/sigman78/fyi/internal/msg"
	"github.com/sigman78/fyi/internal/progless"
)

const (
	exitOK    = 0
	exitErr   = 1
	exitUsage = 2
)

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage: fyi <command> [options] [message]

Commands:
  confirm|prompt          Ask a y/N question; exit 0 for yes, 1 otherwise
  crunched, debug, done, error, info, notice, success, task, warning
                          Print a message with that prefix
  print                   Print a message without a prefix
  custom                  Print a message with a custom prefix
  blank                   Print blank lines
  progress                Run a simulated batch behind a progress bar

Message options:
  -stderr                 Print to stderr instead of stdout
  -indent int             Indent by n levels of four spaces
  -exit int               Exit with this code after printing
  -label string           Prefix label (custom only)
  -color int              Prefix color, 0-255 (custom only, default: 199)
  -yes                    Default to yes when no answer is given (confirm only)

Blank options:
  -count int              Number of lines (default: 1)
  -stderr                 Print to stderr instead of stdout

Progress options:
  -n int                  Number of jobs (default: 100)
  -threads int            Concurrent jobs (default: 4)
  -title string           Progress title
  -delay duration         Upper bound of each job's run time (default: 250ms)
  -fail int               Fail every nth job (default: 0, never)
  -stop-on-error          Stop at the first failed job
  -keep                   Leave the last frame on screen
  -debug                  Log failures

  -version                Print version and exit
  -h / -help              Show this help and exit
`)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Handle -version / -h / -help up front so we control the exit code.
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "-version", "--version":
		fmt.Fprintf(stdout, "fyi %s (commit %s, built %s)\n", version, commit, date)
		return exitOK
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	}

	cmd, rest := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "blank":
		return runBlank(rest, stdout, stderr)
	case "progress":
		return runProgress(rest, stdout, stderr)
	case "custom":
		return runMessage(cmd, msg.None, rest, stdin, stdout, stderr)
	}
	kind, ok := msg.ParseKind(cmd)
	if !ok {
		fmt.Fprintf(stderr, "error: unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}
	return runMessage(cmd, kind, rest, stdin, stdout, stderr)
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	// ContinueOnError so unknown flags map to exitUsage instead of os.Exit.
	fs := flag.NewFlagSet("fyi "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseFlags reports the exit code to use when parsing did not succeed.
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	return exitOK, true
}

func runMessage(name string, kind msg.Kind, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := newFlagSet(name, stderr)
	var (
		toStderr bool
		indent   int
		exitCode int
		label    string
		color    int
		yes      bool
	)
	fs.BoolVar(&toStderr, "stderr", false, "Print to stderr")
	fs.IntVar(&indent, "indent", 0, "Indentation level")
	fs.IntVar(&exitCode, "exit", 0, "Exit code")
	if name == "custom" {
		fs.StringVar(&label, "label", "", "Prefix label")
		fs.IntVar(&color, "color", 199, "Prefix color (0-255)")
	}
	if kind == msg.Confirm {
		fs.BoolVar(&yes, "yes", false, "Default to yes")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if color < 0 || color > 255 {
		fmt.Fprintln(stderr, "error: -color must be between 0 and 255")
		return exitErr
	}
	text := strings.Join(fs.Args(), " ")

	var m msg.Msg
	if name == "custom" {
		m = msg.Custom(label, uint8(color), text)
	} else {
		m = msg.New(kind, text)
	}
	m = m.WithIndent(indent)

	out := stdout
	if toStderr {
		out = stderr
	}

	if kind == msg.Confirm {
		if confirm(m, yes, stdin, out) {
			return exitOK
		}
		return exitErr
	}

	if _, err := m.WithNewline(true).WriteTo(out); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitErr
	}
	return exitCode
}

// confirm prints the question and reads one answer line. Anything other
// than y/yes is a no, and an empty answer takes the default.
func confirm(m msg.Msg, yes bool, stdin io.Reader, out io.Writer) bool {
	hint := " [y/N] "
	if yes {
		hint = " [Y/n] "
	}
	fmt.Fprint(out, m.String()+"\x1b[2m"+hint+"\x1b[0m")

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return yes
	case "y", "yes":
		return true
	}
	return false
}

func runBlank(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("blank", stderr)
	var (
		count    int
		toStderr bool
	)
	fs.IntVar(&count, "count", 1, "Number of blank lines")
	fs.BoolVar(&toStderr, "stderr", false, "Print to stderr")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if count < 0 {
		fmt.Fprintln(stderr, "error: -count must not be negative")
		return exitErr
	}

	out := stdout
	if toStderr {
		out = stderr
	}
	if _, err := io.WriteString(out, strings.Repeat("\n", count)); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitErr
	}
	return exitOK
}

var errSimulated = errors.New("simulated failure")

func runProgress(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("progress", stderr)
	var (
		total       int
		threads     int
		title       string
		delay       time.Duration
		failEvery   int
		stopOnError bool
		keep        bool
		debug       bool
	)
	fs.IntVar(&total, "n", 100, "Number of jobs")
	fs.IntVar(&threads, "threads", 4, "Concurrent jobs")
	fs.StringVar(&title, "title", "", "Progress title")
	fs.DurationVar(&delay, "delay", 250*time.Millisecond, "Upper bound of each job's run time")
	fs.IntVar(&failEvery, "fail", 0, "Fail every nth job")
	fs.BoolVar(&stopOnError, "stop-on-error", false, "Stop at the first failed job")
	fs.BoolVar(&keep, "keep", false, "Leave the last frame on screen")
	fs.BoolVar(&debug, "debug", false, "Log failures")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	// Validation
	if total <= 0 || uint64(total) > progless.MaxTotal {
		fmt.Fprintf(stderr, "error: -n must be between 1 and %d\n", progless.MaxTotal)
		return exitErr
	}
	if threads <= 0 {
		fmt.Fprintln(stderr, "error: -threads must be greater than 0")
		return exitErr
	}
	if delay < 0 || failEvery < 0 {
		fmt.Fprintln(stderr, "error: -delay and -fail must not be negative")
		return exitErr
	}

	log.SetOutput(stderr)
	jobs := make([]string, total)
	for i := range jobs {
		jobs[i] = fmt.Sprintf("job-%04d.dat", i+1)
	}
	failing := make(map[string]bool)
	if failEvery > 0 {
		for i := failEvery - 1; i < total; i += failEvery {
			failing[jobs[i]] = true
		}
	}

	cfg := batch.Config{
		Threads:     threads,
		StopOnError: stopOnError,
		Debug:       debug,
		Interrupt:   progless.SigintTwoStrike(),
		Options: []progless.Option{
			progless.OptionSetWriter(stderr),
			progless.OptionSetTermWidth(termWidth(stderr)),
			progless.OptionClearOnFinish(!keep),
		},
	}
	if title != "" {
		cfg.Title = msg.New(msg.Task, title)
	}
	if debug {
		cfg.Options = append(cfg.Options, progless.OptionSetLogger(log.Default()))
	}

	res, err := batch.Run(context.Background(), cfg, jobs, func(ctx context.Context, name string) error {
		if delay > 0 {
			timer := time.NewTimer(rand.N(delay) + 1)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
		if failing[name] {
			return errSimulated
		}
		return nil
	})

	res.Summary.WithNewline(true).WriteTo(stdout)
	if res.Failed > 0 {
		msg.New(msg.Warning, fmt.Sprintf("%d job(s) failed.", res.Failed)).WithNewline(true).WriteTo(stderr)
	}
	if res.Skipped > 0 {
		msg.New(msg.Notice, fmt.Sprintf("%d job(s) skipped.", res.Skipped)).WithNewline(true).WriteTo(stderr)
	}
	if err != nil {
		msg.New(msg.Error, err.Error()).WithNewline(true).WriteTo(stderr)
		return exitErr
	}
	return exitOK
}

// termWidth measures w when it is a terminal. Anything else gets width 0,
// which keeps the progress display hidden.
func termWidth(w io.Writer) func() int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() int { return 0 }
	}
	return func() int {
		cols, _, err := term.GetSize(int(f.Fd()))
		if err != nil || cols <= 1 {
			return 0
		}
		return cols - 1
	}
}
