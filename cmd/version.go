// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"fmt"

	"github.com/projectsorter/sorter/internal"
	"github.com/projectsorter/sorter/pkg/output"
	"github.com/spf13/cobra"
)

func versionCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sorter.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetFormatter(cmd)
			if err != nil {
				return err
			}

			switch formatter.Kind() {
			case output.NoneFormat:
				fmt.Fprintf(cmd.OutOrStdout(), "sorter version %s\n", internal.Version)
			case output.JsonFormat:
				info, err := internal.VersionInfo()
				if err != nil {
					return err
				}

				return formatter.Format(info, cmd.OutOrStdout(), nil)
			}

			return nil
		},
	}

	output.AddOutputParam(cmd, []output.Format{output.JsonFormat, output.NoneFormat}, output.NoneFormat)
	return cmd
}
