package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/getpkg/pkg/config"
)

func newGenConfigCmd() *cobra.Command {
	var effective bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !effective {
				fmt.Fprint(cmd.OutOrStdout(), string(config.DefaultsTOML()))
				return nil
			}

			settings, err := config.Load()
			if err != nil {
				return err
			}
			data, err := settings.MarshalTOML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)

	return cmd
}
