package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/sigman78/fyi/internal/fitted"
)

// subprocessEnv is set in the re-executed subprocess so it knows to call main()
// directly instead of spawning another child.
const subprocessEnv = "FYI_TEST_SUBPROCESS"

// runSubprocess re-executes the test binary running only the named test,
// with subprocessEnv set so the test calls main() and lets os.Exit fire.
// Returns the *exec.ExitError (nil means exit 0).
func runSubprocess(t *testing.T, testName string) error {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run="+testName)
	cmd.Env = append(os.Environ(), subprocessEnv+"=1")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// TestHelpExitsZero verifies that -help prints usage and exits with code 0.
func TestHelpExitsZero(t *testing.T) {
	if os.Getenv(subprocessEnv) == "1" {
		os.Args = []string{"fyi", "-help"}
		main()
		return // unreachable; main calls os.Exit
	}
	if err := runSubprocess(t, "TestHelpExitsZero"); err != nil {
		t.Fatalf("expected exit 0 for -help, got: %v", err)
	}
}

// TestUnknownFlagExitsTwo verifies that an unrecognised flag exits with code 2.
func TestUnknownFlagExitsTwo(t *testing.T) {
	if os.Getenv(subprocessEnv) == "1" {
		os.Args = []string{"fyi", "info", "-this-flag-does-not-exist"}
		main()
		return // unreachable; main calls os.Exit
	}
	err := runSubprocess(t, "TestUnknownFlagExitsTwo")
	if err == nil {
		t.Fatal("expected non-zero exit for unknown flag, got exit 0")
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() != 2 {
		t.Fatalf("expected exit code 2, got %d", exitErr.ExitCode())
	}
}

// runCLI calls run with captured streams and returns the exit code, stdout
// and stderr with ANSI sequences removed.
func runCLI(stdin string, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, string(fitted.StripANSI(stdout.Bytes())), string(fitted.StripANSI(stderr.Bytes()))
}

func TestRunMessages(t *testing.T) {
	cases := []struct {
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{[]string{"info", "hello", "world"}, 0, "Info: hello world\n", ""},
		{[]string{"warning", "-stderr", "careful"}, 0, "", "Warning: careful\n"},
		{[]string{"error", "-exit", "3", "bad"}, 3, "Error: bad\n", ""},
		{[]string{"done", "-indent", "1", "ok"}, 0, "    Done: ok\n", ""},
		{[]string{"print", "plain"}, 0, "plain\n", ""},
		{[]string{"custom", "-label", "Build", "-color", "33", "ready"}, 0, "Build: ready\n", ""},
		{[]string{"blank", "-count", "3"}, 0, "\n\n\n", ""},
		{[]string{"blank", "-stderr"}, 0, "", "\n"},
	}

	for _, tc := range cases {
		code, stdout, stderr := runCLI("", tc.args...)
		if code != tc.code || stdout != tc.stdout || stderr != tc.stderr {
			t.Errorf("run(%q)\n  got  %d %q %q\n  want %d %q %q",
				tc.args, code, stdout, stderr, tc.code, tc.stdout, tc.stderr)
		}
	}
}

func TestRunUsageErrors(t *testing.T) {
	cases := []struct {
		args []string
		code int
	}{
		{nil, exitUsage},
		{[]string{"shout", "hi"}, exitUsage},
		{[]string{"info", "-bogus"}, exitUsage},
		{[]string{"blank", "-count", "-1"}, exitErr},
		{[]string{"custom", "-color", "300", "x"}, exitErr},
		{[]string{"progress", "-n", "0"}, exitErr},
		{[]string{"progress", "-threads", "0"}, exitErr},
		{[]string{"-help"}, exitOK},
		{[]string{"info", "-h"}, exitOK},
	}

	for _, tc := range cases {
		if code, _, _ := runCLI("", tc.args...); code != tc.code {
			t.Errorf("run(%q) = %d, want %d", tc.args, code, tc.code)
		}
	}
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runCLI("", "-version")
	if code != exitOK || !strings.HasPrefix(stdout, "fyi "+version) {
		t.Errorf("-version = %d %q", code, stdout)
	}
}

func TestRunConfirm(t *testing.T) {
	cases := []struct {
		stdin string
		args  []string
		code  int
	}{
		{"y\n", []string{"confirm", "Continue?"}, exitOK},
		{"YES\n", []string{"prompt", "Continue?"}, exitOK},
		{"n\n", []string{"confirm", "Continue?"}, exitErr},
		{"\n", []string{"confirm", "Continue?"}, exitErr},
		{"\n", []string{"confirm", "-yes", "Continue?"}, exitOK},
		{"", []string{"confirm", "-yes", "Continue?"}, exitErr},
	}

	for _, tc := range cases {
		code, stdout, _ := runCLI(tc.stdin, tc.args...)
		if code != tc.code {
			t.Errorf("run(%q) with %q = %d, want %d", tc.args, tc.stdin, code, tc.code)
		}
		if !strings.HasPrefix(stdout, "Confirm: Continue?") {
			t.Errorf("prompt = %q", stdout)
		}
	}
}

func TestRunProgress(t *testing.T) {
	code, stdout, stderr := runCLI("", "progress", "-n", "12", "-threads", "3", "-delay", "1ms", "-fail", "4")
	if code != exitOK {
		t.Fatalf("progress exit %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "9 jobs in") {
		t.Errorf("summary = %q", stdout)
	}
	if !strings.Contains(stderr, "3 job(s) failed.") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunProgressStopOnError(t *testing.T) {
	code, _, stderr := runCLI("", "progress", "-n", "8", "-threads", "1", "-delay", "0", "-fail", "2", "-stop-on-error")
	if code != exitErr {
		t.Fatalf("progress exit %d, want %d", code, exitErr)
	}
	if !strings.Contains(stderr, "simulated failure") {
		t.Errorf("stderr = %q", stderr)
	}
}
