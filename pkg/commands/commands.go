// Package commands implements the command orchestrators. Each command
// composes a workflow pipeline from the run-time arguments and runs it
// against the caller's context; the CLI layer only parses flags and
// maps the termination to an exit code.
package commands

import (
	"github.com/arthur-debert/getpkg/pkg/flows"
	"github.com/arthur-debert/getpkg/pkg/logging"
	"github.com/arthur-debert/getpkg/pkg/workflow"
)

// Install resolves a package, downloads its installer and runs it
func Install(ctx *workflow.Context) *workflow.Termination {
	logger := logging.GetLogger("commands")
	logger.Info().Str("command", "install").Msg("Starting command")

	pipeline := workflow.NewPipeline("install",
		resolutionTasks(ctx.Args, true)...)
	pipeline.Append(
		flows.ReportManifestIdentity,
		flows.SelectInstaller,
		flows.DownloadInstallerFile,
		flows.RenameDownloadedInstaller,
		flows.GetInstallerArgs,
		flows.ExecuteInstaller,
		flows.ReportInstallResult,
	)

	return pipeline.Run(ctx)
}

// Show resolves a package and prints its manifest details, or its
// available versions when the ListVersions argument is present
func Show(ctx *workflow.Context) *workflow.Termination {
	logger := logging.GetLogger("commands")
	logger.Info().Str("command", "show").Msg("Starting command")

	if ctx.Args.Contains(workflow.ArgListVersions) {
		// Version listing works on the package handle, so the single
		// search match is not reduced to one manifest first
		pipeline := workflow.NewPipeline("show-versions",
			resolutionTasks(ctx.Args, false)...)
		pipeline.Append(flows.ShowVersions)
		return pipeline.Run(ctx)
	}

	pipeline := workflow.NewPipeline("show",
		resolutionTasks(ctx.Args, true)...)
	pipeline.Append(flows.ShowManifestInfo)
	return pipeline.Run(ctx)
}

// resolutionTasks returns the tasks that produce the package to act
// on: loading the manifest file named by the Manifest argument, or
// searching the configured sources otherwise
func resolutionTasks(args *workflow.Args, needManifest bool) []workflow.Task {
	if args.Contains(workflow.ArgManifest) {
		return []workflow.Task{flows.GetManifestFromArg}
	}

	tasks := []workflow.Task{
		flows.OpenSource,
		flows.SearchSource,
		flows.HandleSearchResult,
	}
	if needManifest {
		tasks = append(tasks, flows.GetManifestFromSearchResult)
	}
	return tasks
}
