package venv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"testing"
)

// commandRecorder captures engine invocations and simulates their
// execution via the TestHelperProcess pattern, so the suite never needs
// uv or python installed.
type commandRecorder struct {
	// Invocations records each constructed command as name followed by args.
	Invocations [][]string

	// ExitCode is the simulated process exit code (0 = success).
	ExitCode int

	// Output is the simulated combined stdout+stderr the engines report
	// in error messages.
	Output string
}

// ExecCommand matches ExecCommandFunc. It records the invocation and
// returns a command that re-executes the test binary as a stand-in for
// the external tool.
func (r *commandRecorder) ExecCommand(ctx context.Context, name string, arg ...string) *exec.Cmd {
	r.Invocations = append(r.Invocations, append([]string{name}, arg...))

	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, arg...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = []string{
		"GO_WANT_HELPER_PROCESS=1",
		fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", r.ExitCode),
		"GO_HELPER_STDOUT=" + r.Output,
	}
	return cmd
}

// TestHelperProcess simulates the external tool process. It is not a
// real test: it exits immediately unless the recorder re-executed the
// test binary with the helper environment set.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Fprint(os.Stdout, os.Getenv("GO_HELPER_STDOUT"))
	code, _ := strconv.Atoi(os.Getenv("GO_HELPER_EXIT_CODE"))
	os.Exit(code)
}
