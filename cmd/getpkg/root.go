package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/getpkg/pkg/config"
	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/logging"
	"github.com/arthur-debert/getpkg/pkg/output"
	"github.com/arthur-debert/getpkg/pkg/workflow"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		noColor   bool
	)

	rootCmd := &cobra.Command{
		Use:     "getpkg",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// The configured verbosity is a floor; -v flags can only raise it
			if settings, err := config.Load(); err == nil && settings.Logging.Verbosity > verbosity {
				verbosity = settings.Logging.Verbosity
			}
			logging.SetupLogger(verbosity)
			output.InitColors(noColor)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// resolutionFlags are the flags shared by every command that resolves
// a package before acting on it
type resolutionFlags struct {
	manifest string
	version  string
	channel  string
	source   string
}

func (f *resolutionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.manifest, "manifest", "m", "", MsgFlagManifest)
	cmd.Flags().StringVar(&f.version, "version", "", MsgFlagVersion)
	cmd.Flags().StringVar(&f.channel, "channel", "", MsgFlagChannel)
	cmd.Flags().StringVarP(&f.source, "source", "s", "", MsgFlagSource)
}

// buildArgs converts the parsed flags and the optional positional
// query into the workflow's typed argument bag
func (f *resolutionFlags) buildArgs(positional []string) (*workflow.Args, error) {
	args := workflow.NewArgs()

	switch {
	case f.manifest != "":
		args.AddWithValue(workflow.ArgManifest, f.manifest)
	case len(positional) == 1:
		args.AddWithValue(workflow.ArgQuery, positional[0])
	default:
		return nil, errors.New(errors.ErrInvalidInput,
			"specify a package query or --manifest")
	}

	if f.version != "" {
		args.AddWithValue(workflow.ArgVersion, f.version)
	}
	if f.channel != "" {
		args.AddWithValue(workflow.ArgChannel, f.channel)
	}
	if f.source != "" {
		args.AddWithValue(workflow.ArgSource, f.source)
	}

	return args, nil
}

// runPipeline executes a command orchestrator and maps a failing
// termination to an error for the CLI to report. Benign terminations
// (no matches, multiple matches) already reported themselves and map
// to a clean exit.
func runPipeline(cmd *cobra.Command, args *workflow.Args,
	run func(*workflow.Context) *workflow.Termination) error {

	ctx := workflow.NewContext(cmd.OutOrStdout())
	ctx.Args = args

	termination := run(ctx)
	if termination == nil || errors.ExitCode(termination.Code) == 0 {
		return nil
	}
	return errors.New(termination.Code, termination.Message)
}
