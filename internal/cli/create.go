// Package cli: create.go implements the default venv-creation flow.
//
// Creation is the root command's action (there is no "create"
// subcommand); this file holds its flags and orchestration.
//
// Orchestration steps:
//  1. Snapshot the environment and check the PYTHONPATH precondition
//  2. Load the optional configuration file
//  3. Resolve the base interpreter (--python or the active view)
//  4. Interrogate the interpreter and locate the view's site-packages
//  5. Prepare the target directory
//  6. Select the creation tool (uv or the stdlib venv module)
//  7. Create the venv and upgrade the seed packages
//  8. Write the uenv.pth layering file
//  9. Output results (text or JSON)
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/uenv-tools/uenv-venv/internal/config"
	"github.com/uenv-tools/uenv-venv/internal/model"
	"github.com/uenv-tools/uenv-venv/internal/python"
	"github.com/uenv-tools/uenv-venv/internal/uenv"
	"github.com/uenv-tools/uenv-venv/internal/venv"
)

// createFlags holds the flag values for the root (create) command.
// These are bound to cobra flags in NewRootCommand.
type createFlags struct {
	venv   string // --venv: path of the venv to create
	python string // --python: explicit base interpreter, bypasses view detection
	force  bool   // --force: remove an existing venv directory first
	copies bool   // --copies: copy files into the venv instead of symlinking
}

// runCreate is the main orchestration function for venv creation.
// It coordinates all the steps needed to layer a venv on a uenv view.
func runCreate(ctx context.Context, flags *createFlags) error {
	// Step 1: Snapshot the environment and check preconditions.
	// PYTHONPATH would leak into every python we spawn below and into
	// the finished venv, so a non-empty value aborts the run before
	// anything is written.
	env := uenv.EnvironFromOS()
	if err := uenv.CheckPythonPath(env); err != nil {
		return err
	}

	// Step 2: Load the optional configuration file.
	// A broken file must not block creation: warn and continue with the
	// defaults that Load hands back alongside the error.
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	VerboseLog("Config: tool=%s copies=%t seed=%v", cfg.Tool, cfg.Copies, cfg.SeedPackages)

	// Step 3: Resolve the base interpreter.
	pythonPath, view, err := resolveInterpreter(env, flags.python)
	if err != nil {
		return err
	}
	if view != nil {
		VerboseLog("Active view: %s", view)
		// Image metadata is diagnostic color only; ignore load failures.
		if meta, metaErr := uenv.LoadMeta(view.Mount); metaErr == nil {
			VerboseLog("Image: %s, views: %v", meta.Name, meta.ViewNames())
		}
	}
	VerboseLog("Base interpreter: %s", pythonPath)

	// Step 4: Interrogate the interpreter and locate the view's packages.
	// The interpreter reports its own version and sys.path; the packages
	// directory is derived from those rather than guessed from the path
	// alone.
	interp := python.NewInterpreter(pythonPath)
	info, err := interp.Probe(ctx)
	if err != nil {
		return err
	}
	VerboseLog("Interpreter reports Python %s", info.Version)

	viewSite, err := python.DiscoverViewSitePackages(python.EnvRoot(pythonPath), info)
	if err != nil {
		return err
	}
	VerboseLog("View site-packages: %s", viewSite)

	// Step 5: Prepare the target directory.
	// Resolve to absolute path for consistency across the codebase.
	target, err := filepath.Abs(flags.venv)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to resolve venv path", err)
	}
	if err := venv.PrepareTarget(target, flags.force); err != nil {
		return err
	}
	VerboseLog("Venv target: %s", target)

	// Step 6: Select the creation tool. The uv probe happens once, in
	// Select; after this point the chosen engine's failures are fatal,
	// with no falling back to the other tool.
	engine, err := venv.Select(cfg.Tool)
	if err != nil {
		return err
	}
	VerboseLog("Creation tool: %s", engine.Name())

	// Step 7: Create the venv and upgrade the seed packages.
	copies := flags.copies || cfg.Copies
	if err := engine.CreateVenv(ctx, target, pythonPath, copies); err != nil {
		return err
	}

	venvPython := venv.PythonPath(target)
	venvInterp := python.NewInterpreter(venvPython)

	// Make sure pip exists before upgrading it. Both creation paths
	// normally leave a pip behind (uv via --seed, python -m venv via its
	// own ensurepip), but some distributions strip the bundled wheels,
	// so this runs unconditionally and tolerates failure: the install
	// step below is the real test of a working pip.
	if err := venvInterp.EnsurePip(ctx); err != nil {
		VerboseLog("ensurepip failed, continuing: %v", err)
	}

	if err := engine.InstallPackages(ctx, venvPython, cfg.SeedPackages, cfg.IndexURL); err != nil {
		return err
	}
	VerboseLog("Upgraded seed packages: %v", cfg.SeedPackages)

	// Step 8: Write the uenv.pth layering file into the venv's own
	// site-packages, which the venv interpreter reports itself.
	venvSite, err := venvInterp.Purelib(ctx)
	if err != nil {
		return err
	}
	pthPath, err := venv.WritePth(venvSite, viewSite)
	if err != nil {
		return err
	}
	VerboseLog("Wrote %s", pthPath)

	// Step 9: Output results.
	result := &model.Venv{
		Path:             target,
		Python:           pythonPath,
		PythonVersion:    info.Version,
		Tool:             engine.Name(),
		ViewSitePackages: viewSite,
		VenvSitePackages: venvSite,
		PthFile:          pthPath,
		CreatedAt:        time.Now().UTC(),
	}
	if view != nil {
		result.Mount = view.Mount
		result.Uenv = view.Uenv
		result.View = view.Name
	}

	printCreateResult(result)
	return nil
}

// resolveInterpreter determines the base interpreter for the venv.
//
// An explicit --python value is used verbatim and wins over detection;
// the view is still detected opportunistically so the summary can name
// it, but detection failures are ignored in that case. Without
// --python, a fully-identified active view is required and its
// conventional interpreter path is used.
func resolveInterpreter(env uenv.Environ, explicit string) (string, *uenv.View, error) {
	view, detectErr := uenv.Detect(env)

	if explicit != "" {
		if detectErr != nil {
			return explicit, nil, nil
		}
		return explicit, view, nil
	}

	if detectErr != nil {
		return "", nil, detectErr
	}
	if err := view.Validate(); err != nil {
		return "", nil, err
	}
	return view.Interpreter(), view, nil
}

// printCreateResult outputs the create results in text or JSON format.
func printCreateResult(v *model.Venv) {
	if IsJSONOutput() {
		printCreateResultJSON(v)
	} else {
		printCreateResultText(v)
	}
}

// printCreateResultJSON outputs the created venv as structured JSON.
// model.Venv's json tags define the output contract directly, so the
// struct is marshalled as-is.
func printCreateResultJSON(v *model.Venv) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}

// printCreateResultText outputs the created venv as human-readable text,
// ending with the activation hint.
func printCreateResultText(v *model.Venv) {
	fmt.Printf("Created venv %s\n", v.Path)
	fmt.Printf("  Python:        %s (%s)\n", v.Python, v.PythonVersion)
	fmt.Printf("  Tool:          %s\n", v.Tool)
	if v.Uenv != "" {
		fmt.Printf("  Uenv:          %s (view %q)\n", v.Uenv, v.View)
	}
	if v.Mount != "" {
		fmt.Printf("  Mount:         %s\n", v.Mount)
	}
	fmt.Printf("  View packages: %s\n", v.ViewSitePackages)
	fmt.Printf("  Venv packages: %s\n", v.VenvSitePackages)
	fmt.Printf("  Layering file: %s\n", v.PthFile)

	fmt.Println()
	fmt.Println("Activate with:")
	fmt.Printf("  source %s\n", v.ActivateScript())
}
