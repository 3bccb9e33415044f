// Package venv materializes Python virtual environments by driving
// external tools as child processes.
//
// Two interchangeable engines implement the Engine strategy:
//   - UvEngine shells out to the uv binary (fast path, used when uv is
//     on PATH or forced by configuration)
//   - StdlibEngine shells out to the base interpreter's own venv and pip
//     modules (always-available fallback)
//
// The choice between them is made exactly once per run by Select; after
// that, any subprocess failure is terminal, with no cross-engine retry.
//
// The package also owns the two filesystem effects surrounding creation:
// the target-directory pre-flight (PrepareTarget) and the uenv.pth write
// (WritePth) that layers the view's packages into the new venv.
package venv
