// Package cli implements the cobra-based CLI commands for uenv-venv.
//
// The root command itself performs the primary operation (creating a
// venv layered on the active uenv view), so `uenv-venv --venv PATH`
// works without a subcommand. The status subcommand is defined in its
// own file within this package. This file defines the root command,
// global flags, and error output.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uenv-tools/uenv-venv/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, all output uses structured JSON format for machine consumption.
	// When false (default), output uses human-readable text format.
	jsonOutput bool

	// verbose enables detailed logging output for debugging.
	// When true, additional information about operations is printed to stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// Unlike a pure dispatcher, the root command is runnable: it carries the
// venv-creation flags and runs the create flow directly, because
// creating a venv is what users invoke uenv-venv for.
func NewRootCommand() *cobra.Command {
	flags := &createFlags{}

	rootCmd := &cobra.Command{
		// Use is the one-line usage pattern shown in help output.
		Use:   "uenv-venv",
		Short: "Create a Python venv layered on the active uenv view",
		Long: `uenv-venv creates a standard Python virtual environment whose base
interpreter comes from the active uenv view, then links the view's
site-packages into the venv through a .pth file.

The result is a venv where pip install works as usual while every
package provided by the view stays importable.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// The root command takes no positional arguments; everything is
		// passed through flags.
		Args: cobra.NoArgs,

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler below.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), flags)
		},
	}

	// PersistentFlags are inherited by all subcommands. This is the cobra
	// mechanism for global flags: any flag defined here is automatically
	// available in every subcommand without re-declaration.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Creation flags live on the root command because creation is the
	// default action. They are local, not persistent, so the status
	// subcommand does not inherit them.
	rootCmd.Flags().StringVar(&flags.venv, "venv", "", "Path of the venv to create (required)")
	rootCmd.Flags().StringVar(&flags.python, "python", "", "Base interpreter path (default: the active view's python)")
	rootCmd.Flags().BoolVar(&flags.force, "force", false, "Remove the venv directory first if it exists")
	rootCmd.Flags().BoolVar(&flags.copies, "copies", false, "Copy files into the venv instead of symlinking")

	// Cobra enforces required flags before RunE fires, so runCreate can
	// assume --venv is present.
	_ = rootCmd.MarkFlagRequired("venv")

	// Register subcommands. Each subcommand is defined in its own file
	// (status.go) and returns a *cobra.Command.
	rootCmd.AddCommand(NewStatusCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		// Check if the error is a CLIError with a specific exit code.
		// errors.As would also work here, but a type assertion is simpler
		// for this single-level check.
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Hint, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		// Generic error, including flag and usage problems: exit code 1.
		printError(err.Error(), "", nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag. The optional hint
// carries remediation text, such as how to unset PYTHONPATH per shell.
func printError(message, hint string, underlying error) {
	if jsonOutput {
		// JSON error format: a single "error" object on stderr.
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if errMap, ok := errObj["error"].(map[string]interface{}); ok {
			if underlying != nil {
				errMap["detail"] = underlying.Error()
			}
			if hint != "" {
				errMap["hint"] = hint
			}
		}
		// json.MarshalIndent produces human-readable JSON with indentation.
		// We write to stderr for errors, even in JSON mode, because stdout
		// is reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		// Text format: "Error: <message>" on stderr, hint block after.
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
		if hint != "" {
			fmt.Fprintf(os.Stderr, "\n%s\n", hint)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
// This is used throughout the CLI for debug/trace output that helps
// users understand what operations are being performed.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
