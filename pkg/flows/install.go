package flows

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/arthur-debert/getpkg/pkg/downloader"
	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/installer"
	"github.com/arthur-debert/getpkg/pkg/launcher"
	"github.com/arthur-debert/getpkg/pkg/manifest"
	"github.com/arthur-debert/getpkg/pkg/paths"
	"github.com/arthur-debert/getpkg/pkg/workflow"
)

// Install tasks
var (
	// SelectInstaller picks the applicable installer entry for the
	// requested (or host) architecture
	SelectInstaller = workflow.NewTask("SelectInstaller", selectInstaller)

	// DownloadInstallerFile fetches the installer into the cache and
	// verifies its checksum. MSIX packages are deployed by reference
	// and skip the download.
	DownloadInstallerFile = workflow.NewTask("DownloadInstallerFile", downloadInstallerFile)

	// RenameDownloadedInstaller gives the cached file its package-derived
	// name
	RenameDownloadedInstaller = workflow.NewTask("RenameDownloadedInstaller", renameDownloadedInstaller)

	// GetInstallerArgs synthesizes the installer command line from the
	// selected entry and the run-time arguments
	GetInstallerArgs = workflow.NewTask("GetInstallerArgs", getInstallerArgs)

	// ExecuteInstaller dispatches to the technology-appropriate
	// execution task
	ExecuteInstaller = workflow.NewTask("ExecuteInstaller", executeInstaller)

	// ShellExecuteInstall runs a file-based installer and records its
	// exit code
	ShellExecuteInstall = workflow.NewTask("ShellExecuteInstall", shellExecuteInstall)

	// MsixInstall deploys an MSIX package from its local file or remote
	// location
	MsixInstall = workflow.NewTask("MsixInstall", msixInstall)

	// ReportInstallResult reports the outcome and terminates on a
	// failed install
	ReportInstallResult = workflow.NewTask("ReportInstallResult", reportInstallResult)
)

func selectInstaller(ctx *workflow.Context) error {
	m := workflow.Get[*manifest.Manifest](ctx, workflow.DataManifest)

	requested := manifest.ArchUnknown
	if arch := ctx.Args.Value(workflow.ArgArchitecture); arch != "" {
		requested = manifest.ParseArchitecture(arch)
		if requested == manifest.ArchUnknown {
			return errors.Newf(errors.ErrInvalidInput, "unrecognized architecture '%s'", arch)
		}
	}

	inst, ok := installer.SelectApplicable(m, requested)
	if !ok {
		message := "No applicable installer found matching the current system."
		ctx.Report(message)
		ctx.Terminate(errors.ErrNoApplicableInstaller, message)
		return nil
	}

	ctx.Add(workflow.DataInstaller, inst)
	return nil
}

// installerTech resolves the entry's technology, using the manifest
// default when one is in the context
func installerTech(ctx *workflow.Context, inst manifest.Installer) manifest.InstallerType {
	fallback := manifest.InstallerTypeUnknown
	if ctx.Contains(workflow.DataManifest) {
		fallback = workflow.Get[*manifest.Manifest](ctx, workflow.DataManifest).DefaultInstallerType()
	}
	return inst.Type(fallback)
}

func downloadInstallerFile(ctx *workflow.Context) error {
	inst := workflow.Get[manifest.Installer](ctx, workflow.DataInstaller)

	if installerTech(ctx, inst) == manifest.InstallerTypeMsix {
		// The deployer takes the package URI directly, local or remote
		return nil
	}

	ctx.Report("Downloading installer...")

	dest := filepath.Join(paths.InstallerCacheDir(), downloadFileName(inst.URL))
	pair, err := downloader.New().Download(context.Background(), inst.URL, dest, inst.Sha256)
	if err != nil {
		return err
	}

	ctx.Add(workflow.DataHashPair, pair)
	ctx.Add(workflow.DataInstallerPath, dest)

	if !pair.Matches() {
		message := "Installer hash does not match the manifest; aborting install."
		ctx.Report(message)
		ctx.Terminate(errors.ErrHashMismatch, message)
	}
	return nil
}

// downloadFileName derives the cache file name from the installer URL
func downloadFileName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "." && base != "/" {
			return base
		}
	}
	return "installer"
}

func renameDownloadedInstaller(ctx *workflow.Context) error {
	if !ctx.Contains(workflow.DataInstallerPath) {
		return nil
	}

	current := workflow.Get[string](ctx, workflow.DataInstallerPath)
	m := workflow.Get[*manifest.Manifest](ctx, workflow.DataManifest)

	renamed := filepath.Join(filepath.Dir(current),
		m.ID+"-"+m.Version+filepath.Ext(current))
	if renamed == current {
		return nil
	}

	if err := os.Rename(current, renamed); err != nil {
		return errors.Wrapf(err, errors.ErrDownloadFailed,
			"failed to rename downloaded installer %s", current)
	}

	ctx.Add(workflow.DataInstallerPath, renamed)
	return nil
}

func getInstallerArgs(ctx *workflow.Context) error {
	inst := workflow.Get[manifest.Installer](ctx, workflow.DataInstaller)

	fallback := manifest.InstallerTypeUnknown
	if ctx.Contains(workflow.DataManifest) {
		fallback = workflow.Get[*manifest.Manifest](ctx, workflow.DataManifest).DefaultInstallerType()
	}

	opts := installer.ArgOptions{
		Silent:          ctx.Args.Contains(workflow.ArgSilent),
		Log:             ctx.Args.Value(workflow.ArgLog),
		InstallLocation: ctx.Args.Value(workflow.ArgInstallLocation),
		Override:        ctx.Args.Value(workflow.ArgOverride),
	}
	if ctx.Contains(workflow.DataInstallerPath) {
		opts.InstallerPath = workflow.Get[string](ctx, workflow.DataInstallerPath)
	}

	ctx.Add(workflow.DataInstallerArgs, installer.SynthesizeArgs(inst, fallback, opts))
	return nil
}

func executeInstaller(ctx *workflow.Context) error {
	inst := workflow.Get[manifest.Installer](ctx, workflow.DataInstaller)

	var dispatch workflow.Task
	if installerTech(ctx, inst) == manifest.InstallerTypeMsix {
		dispatch = MsixInstall
	} else {
		dispatch = ShellExecuteInstall
	}

	// Running through a sub-pipeline keeps the dispatched task visible
	// to the override hook
	workflow.NewPipeline("execute", dispatch).Run(ctx)
	return nil
}

func shellExecuteInstall(ctx *workflow.Context) error {
	installerPath := workflow.Get[string](ctx, workflow.DataInstallerPath)
	args := workflow.Get[string](ctx, workflow.DataInstallerArgs)

	shell, err := launcher.Shell(launcher.ShellExecuteName)
	if err != nil {
		return err
	}

	ctx.Report("Starting package install...")
	result, err := shell.Launch(context.Background(), installerPath, args)
	if err != nil {
		return err
	}

	ctx.Add(workflow.DataInstallResult, result.ExitCode)
	return nil
}

func msixInstall(ctx *workflow.Context) error {
	inst := workflow.Get[manifest.Installer](ctx, workflow.DataInstaller)

	uri := inst.URL
	if ctx.Contains(workflow.DataInstallerPath) {
		uri = workflow.Get[string](ctx, workflow.DataInstallerPath)
	}

	deployer, err := launcher.Msix(launcher.PlatformDeployName)
	if err != nil {
		return err
	}

	ctx.Report("Starting package install...")
	if err := deployer.Deploy(context.Background(), uri); err != nil {
		return err
	}

	ctx.Add(workflow.DataInstallResult, 0)
	return nil
}

func reportInstallResult(ctx *workflow.Context) error {
	exitCode := workflow.Get[int](ctx, workflow.DataInstallResult)

	if exitCode != 0 {
		ctx.Report("Install failed.")
		ctx.Terminate(errors.ErrInstallerFailed,
			fmt.Sprintf("installer exited with code %d", exitCode))
		return nil
	}

	ctx.Report("Successfully installed.")
	return nil
}
