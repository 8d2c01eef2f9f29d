// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/projectsorter/sorter/internal"
	"github.com/projectsorter/sorter/internal/relocate"
	"github.com/projectsorter/sorter/pkg/config"
	"github.com/projectsorter/sorter/pkg/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
)

type sortFlags struct {
	scanFlags
	dryRun     bool
	onConflict string
}

func (f *sortFlags) Bind(local *pflag.FlagSet, global *internal.GlobalCommandOptions) {
	f.scanFlags.Bind(local, global)
	local.BoolVar(&f.dryRun, "dry-run", false, "Show what would be moved without moving anything")
	local.StringVar(
		&f.onConflict,
		"on-conflict",
		"",
		"What to do when the target folder exists: error, skip, overwrite or rename (default from move.conflictPolicy)")
}

func sortCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	flags := &sortFlags{}

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Move every project found in a folder tree to the destination folder of its type",
		Long: heredoc.Doc(`
			Move every project found in a folder tree to the destination folder of its type.

			Destinations are read from the configuration file, one per project type:

				$ sorter config set destinations.python ~/code/python

			Projects of a type without a destination are left where they are. A project keeps its
			folder name, so ~/Downloads/api ends up in ~/code/python/api.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetFormatter(cmd)
			if err != nil {
				return err
			}

			c, err := loadUserConfig(global)
			if err != nil {
				return err
			}

			action := &sortAction{
				flags:     flags,
				config:    c,
				formatter: formatter,
				writer:    cmd.OutOrStdout(),
				logger:    newLogger(global, cmd.ErrOrStderr()),
			}
			return action.Run(cmd.Context())
		},
	}

	flags.Bind(cmd.Flags(), global)
	output.AddOutputParam(cmd, []output.Format{output.TableFormat, output.JsonFormat}, output.TableFormat)

	return cmd
}

type sortAction struct {
	flags     *sortFlags
	config    config.Config
	formatter output.Formatter
	writer    io.Writer
	logger    *logrus.Logger
}

func (a *sortAction) moveOptions() ([]relocate.MoveOption, error) {
	policyName := a.flags.onConflict
	if policyName == "" {
		policyName, _ = a.config.GetString(config.ConflictPolicyPath)
	}

	policy, err := relocate.ParseConflictPolicy(policyName)
	if err != nil {
		return nil, err
	}

	options := []relocate.MoveOption{
		relocate.WithLogger(a.logger),
		relocate.WithConflictPolicy(policy),
	}
	if a.flags.dryRun {
		options = append(options, relocate.WithDryRun())
	}

	return options, nil
}

// Executes the `sorter sort` action
func (a *sortAction) Run(ctx context.Context) error {
	destinations, err := relocate.DestinationsFromConfig(a.config)
	if err != nil {
		return err
	}

	if destinations.IsEmpty() {
		return &internal.ErrorWithSuggestion{
			Err:        fmt.Errorf("no destination folders are configured"),
			Suggestion: "Run `sorter config init` or `sorter config set destinations.<type> <folder>` first.",
		}
	}

	options, err := a.moveOptions()
	if err != nil {
		return err
	}

	registry, err := detectProjects(ctx, &a.flags.scanFlags, a.config, a.logger)
	if err != nil {
		return err
	}

	results, moveErr := relocate.NewMover(destinations, options...).Move(ctx, registry.Projects())

	if a.formatter.Kind() == output.TableFormat {
		if err := a.printTable(results); err != nil {
			return err
		}
	} else if err := a.formatter.Format(results, a.writer, nil); err != nil {
		return err
	}

	if moveErr != nil {
		return fmt.Errorf("%d project(s) could not be moved: %w", len(multierr.Errors(moveErr)), moveErr)
	}

	return nil
}

func (a *sortAction) printTable(results []relocate.Result) error {
	if len(results) == 0 {
		fmt.Fprintln(a.writer, output.WithWarningFormat("No projects found."))
		return nil
	}

	err := a.formatter.Format(results, a.writer, output.TableFormatterOptions{
		Columns: []output.Column{
			{
				Heading:       "ACTION",
				ValueTemplate: "{{.Action}}",
			},
			{
				Heading:       "TYPE",
				ValueTemplate: "{{.Type}}",
			},
			{
				Heading:       "FROM",
				ValueTemplate: "{{.From}}",
			},
			{
				Heading:       "TO",
				ValueTemplate: "{{if .To}}{{.To}}{{else}}-{{end}}",
			},
		},
	})
	if err != nil {
		return err
	}

	moved := 0
	for _, result := range results {
		switch result.Action {
		case relocate.ActionMoved, relocate.ActionRenamed, relocate.ActionOverwritten:
			moved++
		}
	}

	fmt.Fprintln(a.writer)
	if a.flags.dryRun {
		fmt.Fprintln(a.writer, output.WithHighLightFormat("Dry run: %d of %d project(s) would be moved.", moved, len(results)))
	} else {
		fmt.Fprintln(a.writer, output.WithSuccessFormat("Moved %d of %d project(s).", moved, len(results)))
	}

	return nil
}
