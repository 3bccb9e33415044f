package python

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uenv-tools/uenv-venv/internal/model"
)

// TestInterpreter_Probe verifies that Probe runs the probe script and
// parses the version and search path from its JSON output.
func TestInterpreter_Probe(t *testing.T) {
	recorder := &commandRecorder{
		Stdout: `{"version": "3.11", "path": ["", "/opt/view/lib/python3.11/site-packages", "/opt/view/lib/python3.11"]}` + "\n",
	}
	in := NewInterpreter("/opt/view/bin/python3.11", WithExecCommand(recorder.ExecCommand))

	info, err := in.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3.11", info.Version)
	assert.Len(t, info.SearchPath, 3)

	require.Len(t, recorder.Invocations, 1)
	assert.Equal(t, []string{"/opt/view/bin/python3.11", "-c", probeScript}, recorder.Invocations[0])
}

// TestInterpreter_Probe_BadOutput verifies that non-JSON probe output is
// reported as a subprocess failure naming the interpreter.
func TestInterpreter_Probe_BadOutput(t *testing.T) {
	recorder := &commandRecorder{Stdout: "Python 3.11.4\n"}
	in := NewInterpreter("/opt/view/bin/python3.11", WithExecCommand(recorder.ExecCommand))

	_, err := in.Probe(context.Background())
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitSubprocessFailed, cliErr.Code)
	assert.Contains(t, cliErr.Message, "/opt/view/bin/python3.11")
}

// TestInterpreter_Probe_MissingVersion verifies the guard against probe
// output that parses but lacks a version field.
func TestInterpreter_Probe_MissingVersion(t *testing.T) {
	recorder := &commandRecorder{Stdout: `{"path": []}`}
	in := NewInterpreter("/usr/bin/python3", WithExecCommand(recorder.ExecCommand))

	_, err := in.Probe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing the version")
}

// TestInterpreter_Probe_NonZeroExit verifies that a failing interpreter
// surfaces its stderr in the error message. This is also the path a
// bogus --python value takes.
func TestInterpreter_Probe_NonZeroExit(t *testing.T) {
	recorder := &commandRecorder{
		ExitCode: 127,
		Stderr:   "no such file or directory\n",
	}
	in := NewInterpreter("/nonexistent/python", WithExecCommand(recorder.ExecCommand))

	_, err := in.Probe(context.Background())
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitSubprocessFailed, cliErr.Code)
	assert.Contains(t, cliErr.Message, "no such file or directory")
	assert.Contains(t, cliErr.Message, "interpreter probe failed")
}

// TestInterpreter_Purelib verifies the sysconfig query and trailing
// newline trimming.
func TestInterpreter_Purelib(t *testing.T) {
	recorder := &commandRecorder{Stdout: "/scratch/venv/lib/python3.11/site-packages\n"}
	in := NewInterpreter("/scratch/venv/bin/python", WithExecCommand(recorder.ExecCommand))

	purelib, err := in.Purelib(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/scratch/venv/lib/python3.11/site-packages", purelib)

	require.Len(t, recorder.Invocations, 1)
	assert.Equal(t, []string{"/scratch/venv/bin/python", "-c", purelibScript}, recorder.Invocations[0])
}

// TestInterpreter_EnsurePip verifies the module invocation and that a
// failure is returned to the caller (who decides whether to tolerate it).
func TestInterpreter_EnsurePip(t *testing.T) {
	recorder := &commandRecorder{}
	in := NewInterpreter("/scratch/venv/bin/python", WithExecCommand(recorder.ExecCommand))

	require.NoError(t, in.EnsurePip(context.Background()))
	require.Len(t, recorder.Invocations, 1)
	assert.Equal(t,
		[]string{"/scratch/venv/bin/python", "-m", "ensurepip", "--upgrade"},
		recorder.Invocations[0])

	failing := &commandRecorder{ExitCode: 1, Stderr: "ensurepip is disabled\n"}
	in = NewInterpreter("/scratch/venv/bin/python", WithExecCommand(failing.ExecCommand))
	err := in.EnsurePip(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ensurepip is disabled")
}
