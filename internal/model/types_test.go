package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTool_String verifies that Tool values produce the expected string
// representations for CLI output and JSON serialization.
func TestTool_String(t *testing.T) {
	tests := []struct {
		tool     Tool
		expected string
	}{
		{ToolUv, "uv"},
		{ToolVenv, "venv"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tool.String())
		})
	}
}

// TestTool_IsValid checks that only defined tool values pass validation.
func TestTool_IsValid(t *testing.T) {
	assert.True(t, ToolUv.IsValid())
	assert.True(t, ToolVenv.IsValid())
	assert.False(t, Tool("virtualenv").IsValid())
	assert.False(t, Tool("").IsValid())
}

// TestParseTool verifies string-to-tool conversion, including case
// normalization and error cases.
func TestParseTool(t *testing.T) {
	tests := []struct {
		input    string
		expected Tool
		hasError bool
	}{
		{"uv", ToolUv, false},
		{"venv", ToolVenv, false},
		{"UV", ToolUv, false},     // case insensitive
		{"Venv", ToolVenv, false}, // case insensitive
		{"virtualenv", "", true},  // unknown value
		{"", "", true},            // empty string
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseTool(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestVenv_ActivateScript verifies the activation script path used in the
// post-create hint.
func TestVenv_ActivateScript(t *testing.T) {
	v := &Venv{Path: "/scratch/user/myvenv"}
	assert.Equal(t, "/scratch/user/myvenv/bin/activate", v.ActivateScript())
}

// TestExitCodes verifies the documented numeric exit code values.
// Scripts and CI pipelines rely on these staying stable.
func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, int(ExitSuccess))
	assert.Equal(t, 1, int(ExitGeneralError))
	assert.Equal(t, 2, int(ExitPreconditionFailed))
	assert.Equal(t, 3, int(ExitResolutionFailed))
	assert.Equal(t, 4, int(ExitSubprocessFailed))
	assert.Equal(t, 5, int(ExitFilesystemError))
}

// TestCLIError_Error verifies message formatting with and without an
// underlying error.
func TestCLIError_Error(t *testing.T) {
	plain := NewCLIError(ExitResolutionFailed, "could not detect uenv")
	assert.Equal(t, "could not detect uenv", plain.Error())

	wrapped := WrapCLIError(ExitSubprocessFailed, "uv venv failed", errors.New("exit status 2"))
	assert.Equal(t, "uv venv failed: exit status 2", wrapped.Error())
}

// TestCLIError_Unwrap verifies that errors.Is can see through a CLIError
// to the underlying cause.
func TestCLIError_Unwrap(t *testing.T) {
	underlying := errors.New("permission denied")
	wrapped := WrapCLIError(ExitFilesystemError, "cannot write pth file", underlying)

	assert.True(t, errors.Is(wrapped, underlying))
	assert.Nil(t, NewCLIError(ExitGeneralError, "no cause").Unwrap())
}

// TestCLIError_WithHint verifies that WithHint attaches remediation text
// without disturbing code or message, and returns the same error for
// chaining.
func TestCLIError_WithHint(t *testing.T) {
	err := NewCLIError(ExitPreconditionFailed, "PYTHONPATH is set in the environment")
	same := err.WithHint("unset PYTHONPATH")

	assert.Same(t, err, same)
	assert.Equal(t, "unset PYTHONPATH", err.Hint)
	assert.Equal(t, ExitPreconditionFailed, err.Code)
}
