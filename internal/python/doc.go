// Package python interrogates Python interpreters.
//
// The interpreter itself is the only reliable source for its version,
// module search path and site-packages layout, so every question is
// answered by running the binary with a short -c script and parsing its
// stdout. No Python parsing or emulation happens on the Go side.
//
// The Interpreter type abstracts command construction behind an
// ExecCommandFunc so tests can substitute a fake process instead of
// requiring a real python on the machine running the test suite.
package python
