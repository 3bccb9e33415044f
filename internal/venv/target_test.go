package venv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uenv-tools/uenv-venv/internal/model"
)

// TestPythonPath verifies the conventional venv interpreter location.
func TestPythonPath(t *testing.T) {
	assert.Equal(t, "/scratch/v1/bin/python", PythonPath("/scratch/v1"))
}

// TestPrepareTarget_CreatesNestedDirectory verifies that a fresh target
// is created with parents.
func TestPrepareTarget_CreatesNestedDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "venvs", "experiment-1")

	require.NoError(t, PrepareTarget(target, false))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestPrepareTarget_AcceptsEmptyExisting verifies that an existing empty
// directory is reused rather than refused.
func TestPrepareTarget_AcceptsEmptyExisting(t *testing.T) {
	target := t.TempDir()

	assert.NoError(t, PrepareTarget(target, false))
}

// TestPrepareTarget_RefusesNonEmpty verifies the guard against
// clobbering existing content, and that the error suggests --force.
func TestPrepareTarget_RefusesNonEmpty(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "pyvenv.cfg"), []byte("home = /usr"), 0o644))

	err := PrepareTarget(target, false)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitFilesystemError, cliErr.Code)
	assert.Contains(t, cliErr.Message, "not empty")
	assert.Contains(t, cliErr.Hint, "--force")
}

// TestPrepareTarget_ForceRemovesExisting verifies that force wipes the
// old tree and leaves a fresh empty directory.
func TestPrepareTarget_ForceRemovesExisting(t *testing.T) {
	target := t.TempDir()
	stale := filepath.Join(target, "lib", "python3.10")
	require.NoError(t, os.MkdirAll(stale, 0o755))

	require.NoError(t, PrepareTarget(target, true))

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestPrepareTarget_FileInTheWay verifies that a plain file at the
// target path is reported as a filesystem error.
func TestPrepareTarget_FileInTheWay(t *testing.T) {
	target := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	err := PrepareTarget(target, false)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitFilesystemError, cliErr.Code)
}
