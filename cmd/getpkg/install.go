package main

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/getpkg/pkg/commands"
	"github.com/arthur-debert/getpkg/pkg/config"
	"github.com/arthur-debert/getpkg/pkg/logging"
	"github.com/arthur-debert/getpkg/pkg/manifest"
	"github.com/arthur-debert/getpkg/pkg/workflow"
)

func newInstallCmd() *cobra.Command {
	var (
		resolution resolutionFlags
		silent     bool
		logFile    string
		location   string
		override   string
		arch       string
	)

	cmd := &cobra.Command{
		Use:     "install [query]",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			logger := logging.GetLogger("cmd.install")

			args, err := resolution.buildArgs(positional)
			if err != nil {
				return err
			}
			if silent {
				args.Add(workflow.ArgSilent)
			}
			if logFile != "" {
				args.AddWithValue(workflow.ArgLog, logFile)
			}
			if location != "" {
				args.AddWithValue(workflow.ArgInstallLocation, location)
			}
			if override != "" {
				args.AddWithValue(workflow.ArgOverride, override)
			}
			if arch != "" {
				args.AddWithValue(workflow.ArgArchitecture, arch)
			}

			settings, err := config.Load()
			if err != nil {
				return err
			}
			applyInstallDefaults(args, settings)

			logger.Info().Strs("query", positional).Msg("Starting install")
			return runPipeline(cmd, args, commands.Install)
		},
	}

	resolution.register(cmd)
	cmd.Flags().BoolVar(&silent, "silent", false, MsgFlagSilent)
	cmd.Flags().StringVar(&logFile, "log", "", MsgFlagLog)
	cmd.Flags().StringVarP(&location, "location", "l", "", MsgFlagInstallLocation)
	cmd.Flags().StringVar(&override, "override", "", MsgFlagOverride)
	cmd.Flags().StringVarP(&arch, "arch", "a", "", MsgFlagArch)

	return cmd
}

// applyInstallDefaults fills in configured install preferences for
// options the user did not give on the command line. Flags win over
// config.
func applyInstallDefaults(args *workflow.Args, settings *config.Settings) {
	if settings.Install.Silent && !args.Contains(workflow.ArgSilent) {
		args.Add(workflow.ArgSilent)
	}
	if !args.Contains(workflow.ArgArchitecture) {
		if arch := settings.Architecture(); arch != manifest.ArchUnknown {
			args.AddWithValue(workflow.ArgArchitecture, string(arch))
		}
	}
}
