// Package cli: status.go implements the "uenv-venv status" command.
//
// Status reports what a create run would see, without changing
// anything: the detected view, its interpreter and packages directory,
// the creation tool that would be selected, and whether PYTHONPATH
// would block the run. Partial detection yields a partial report, and
// the exit code is 0 even with no uenv active, so scripts can probe
// freely.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uenv-tools/uenv-venv/internal/config"
	"github.com/uenv-tools/uenv-venv/internal/python"
	"github.com/uenv-tools/uenv-venv/internal/uenv"
	"github.com/uenv-tools/uenv-venv/internal/venv"
)

// NewStatusCommand creates the "status" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active uenv view and what a create run would use",
		Long: `Show the active uenv view, its interpreter, and the creation tool
that would be selected.

The command always exits 0; an inactive uenv is reported, not treated
as an error.

Examples:
  uenv-venv status
  uenv-venv status --json`,

		// No positional arguments are required for the status command.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context())
		},
	}
}

// runStatus gathers the report for the real process environment and
// prints it.
func runStatus(ctx context.Context) error {
	report := gatherStatus(ctx, uenv.EnvironFromOS())
	printStatusResult(report)
	return nil
}

// statusReport is the status command's output structure. The JSON form
// serializes it directly; the text form prints one line per populated
// field.
type statusReport struct {
	// Mount, Uenv and View identify the detected view. All are empty
	// when no uenv is active; Uenv and View stay empty when only the
	// mount list was available.
	Mount string `json:"mount,omitempty"`
	Uenv  string `json:"uenv,omitempty"`
	View  string `json:"view,omitempty"`

	// Description comes from the image metadata, when readable.
	Description string `json:"description,omitempty"`

	// Python is the view's conventional interpreter path and
	// PythonVersion is what it reported; the version stays empty when
	// the interpreter could not be probed.
	Python        string `json:"python,omitempty"`
	PythonVersion string `json:"pythonVersion,omitempty"`

	// ViewSitePackages is the directory a create run would layer.
	ViewSitePackages string `json:"viewSitePackages,omitempty"`

	// Tool is the creation tool a create run would select.
	Tool string `json:"tool,omitempty"`

	// PythonPathSet warns that the PYTHONPATH precondition would fail.
	PythonPathSet bool `json:"pythonPathSet"`
}

// gatherStatus assembles the report for the given environment. Every
// probe failure degrades the report instead of failing it, so the
// function never returns an error.
func gatherStatus(ctx context.Context, env uenv.Environ) *statusReport {
	report := &statusReport{
		PythonPathSet: uenv.CheckPythonPath(env) != nil,
	}

	// Tool selection mirrors a create run, including the configuration
	// override. A broken config degrades to the defaults silently here;
	// status is a read-only report, not the place to nag.
	cfg, _ := config.Load(env)
	if engine, err := venv.Select(cfg.Tool); err == nil {
		report.Tool = engine.Name().String()
	}

	view, err := uenv.Detect(env)
	if err != nil {
		return report
	}
	report.Mount = view.Mount
	report.Uenv = view.Uenv
	report.View = view.Name

	// Image metadata is optional color for the report, never required.
	if meta, err := uenv.LoadMeta(view.Mount); err == nil {
		report.Description = meta.Description
		if vm, ok := meta.Views[view.Name]; ok && vm.Description != "" {
			report.Description = vm.Description
		}
	} else {
		VerboseLog("No readable image metadata: %v", err)
	}

	if view.Validate() != nil {
		// Without a complete view there is no interpreter to probe.
		return report
	}
	report.Python = view.Interpreter()

	// A probe failure leaves the version empty rather than failing the
	// report; the conventional path may be dangling on a partially
	// mounted image.
	interp := python.NewInterpreter(report.Python)
	info, err := interp.Probe(ctx)
	if err != nil {
		VerboseLog("Interpreter probe failed: %v", err)
		return report
	}
	report.PythonVersion = info.Version

	if site, err := python.DiscoverViewSitePackages(python.EnvRoot(report.Python), info); err == nil {
		report.ViewSitePackages = site
	}

	return report
}

// printStatusResult outputs the status report in text or JSON format,
// depending on the global --json flag.
func printStatusResult(report *statusReport) {
	if IsJSONOutput() {
		printStatusResultJSON(report)
	} else {
		printStatusResultText(report)
	}
}

// printStatusResultJSON outputs the report as structured JSON.
func printStatusResultJSON(report *statusReport) {
	// MarshalIndent produces human-readable JSON with 2-space indentation.
	data, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(data))
}

// printStatusResultText outputs the report as aligned key/value lines,
// skipping fields that were not detected.
func printStatusResultText(report *statusReport) {
	if report.Mount == "" {
		fmt.Println("No active uenv detected.")
	} else {
		fmt.Printf("%-13s %s\n", "Mount:", report.Mount)
		if report.Uenv != "" {
			fmt.Printf("%-13s %s\n", "Uenv:", report.Uenv)
		}
		if report.View != "" {
			fmt.Printf("%-13s %s\n", "View:", report.View)
		}
		if report.Description != "" {
			fmt.Printf("%-13s %s\n", "Description:", report.Description)
		}
		if report.Python != "" {
			interpLine := report.Python
			if report.PythonVersion != "" {
				interpLine = fmt.Sprintf("%s (%s)", interpLine, report.PythonVersion)
			}
			fmt.Printf("%-13s %s\n", "Python:", interpLine)
		}
		if report.ViewSitePackages != "" {
			fmt.Printf("%-13s %s\n", "Packages:", report.ViewSitePackages)
		}
	}

	if report.Tool != "" {
		fmt.Printf("%-13s %s\n", "Tool:", report.Tool)
	}

	if report.PythonPathSet {
		fmt.Println()
		fmt.Println("Warning: PYTHONPATH is set and would block venv creation.")
	}
}
