package main

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/getpkg/pkg/commands"
	"github.com/arthur-debert/getpkg/pkg/workflow"
)

func newShowCmd() *cobra.Command {
	var (
		resolution   resolutionFlags
		listVersions bool
	)

	cmd := &cobra.Command{
		Use:     "show [query]",
		Short:   MsgShowShort,
		Long:    MsgShowLong,
		Example: MsgShowExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			args, err := resolution.buildArgs(positional)
			if err != nil {
				return err
			}
			if listVersions {
				args.Add(workflow.ArgListVersions)
			}

			return runPipeline(cmd, args, commands.Show)
		},
	}

	resolution.register(cmd)
	cmd.Flags().BoolVar(&listVersions, "versions", false, MsgFlagListVersions)

	return cmd
}
