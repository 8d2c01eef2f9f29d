// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/projectsorter/sorter/internal"
	"github.com/projectsorter/sorter/internal/detect"
	"github.com/projectsorter/sorter/pkg/config"
	"github.com/projectsorter/sorter/pkg/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// scanFlags are shared by every command that detects projects.
type scanFlags struct {
	path           string
	exclude        []string
	types          []string
	followSymlinks bool
	global         *internal.GlobalCommandOptions
}

func (f *scanFlags) Bind(local *pflag.FlagSet, global *internal.GlobalCommandOptions) {
	tags := make([]string, 0, len(detect.AllProjectTypes()))
	for _, t := range detect.AllProjectTypes() {
		tags = append(tags, t.Tag())
	}

	local.StringVarP(&f.path, "path", "p", ".", "Folder to search for projects")
	local.StringSliceVar(
		&f.exclude,
		"exclude",
		nil,
		"Glob of folders to skip, relative to the searched folder (can be repeated)")
	local.StringSliceVarP(
		&f.types,
		"type",
		"t",
		nil,
		fmt.Sprintf("Only detect projects of these types (%s)", strings.Join(tags, ", ")))
	local.BoolVar(&f.followSymlinks, "follow-symlinks", false, "Follow symbolic links to folders")
	f.global = global
}

// detectOptions combines the command line flags with the scan settings of c.
func (f *scanFlags) detectOptions(c config.Config, logger *logrus.Logger) ([]detect.DetectOption, error) {
	options := []detect.DetectOption{detect.WithLogger(logger)}

	if len(f.types) > 0 {
		types := make([]detect.ProjectType, 0, len(f.types))
		for _, tag := range f.types {
			t, err := detect.ParseProjectType(strings.TrimSpace(tag))
			if err != nil {
				return nil, &internal.ErrorWithSuggestion{
					Err:        err,
					Suggestion: "Run " + output.WithBackticks("sorter scan --help") + " to see the supported project types.",
				}
			}
			types = append(types, t)
		}
		options = append(options, detect.WithProjectTypes(types...))
	}

	exclude := slices.Clone(f.exclude)
	if patterns, has := c.GetStringSlice(config.ExcludePatternsPath); has {
		exclude = append(exclude, patterns...)
	}
	if len(exclude) > 0 {
		options = append(options, detect.WithExcludePatterns(exclude...))
	}

	followSymlinks, _ := c.GetBool(config.FollowSymlinksPath)
	if f.followSymlinks || followSymlinks {
		options = append(options, detect.WithFollowSymlinks())
	}

	return options, nil
}

// detectProjects runs detection for the flags. Errors about the searched folder carry a suggestion.
func detectProjects(
	ctx context.Context,
	flags *scanFlags,
	c config.Config,
	logger *logrus.Logger,
) (*detect.Registry, error) {
	options, err := flags.detectOptions(c, logger)
	if err != nil {
		return nil, err
	}

	registry, err := detect.Detect(ctx, flags.path, options...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &internal.ErrorWithSuggestion{
			Err:        err,
			Suggestion: "Check that the folder given with --path exists.",
		}
	} else if err != nil {
		return nil, err
	}

	return registry, nil
}

func scanCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the projects found in a folder tree",
		Long: heredoc.Doc(`
			List the projects found in a folder tree, without moving anything.

			Folders such as node_modules, build, dist, .git and venv are never searched. Additional folders
			can be skipped with --exclude, the scan.exclude setting or a .sorterignore file in the searched
			folder.
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

			action := &scanAction{
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

type scanAction struct {
	flags     *scanFlags
	config    config.Config
	formatter output.Formatter
	writer    io.Writer
	logger    *logrus.Logger
}

// Executes the `sorter scan` action
func (a *scanAction) Run(ctx context.Context) error {
	registry, err := detectProjects(ctx, a.flags, a.config, a.logger)
	if err != nil {
		return err
	}

	projects := registry.Projects()
	if a.formatter.Kind() == output.TableFormat {
		if len(projects) == 0 {
			fmt.Fprintln(a.writer, output.WithWarningFormat("No projects found."))
			return nil
		}

		return a.formatter.Format(projects, a.writer, output.TableFormatterOptions{
			Columns: []output.Column{
				{
					Heading:       "TYPE",
					ValueTemplate: "{{.Type}}",
				},
				{
					Heading:       "NAME",
					ValueTemplate: "{{.Name}}",
				},
				{
					Heading:       "VERSION",
					ValueTemplate: "{{.Version}}",
				},
				{
					Heading:       "PATH",
					ValueTemplate: "{{.Path}}",
				},
			},
		})
	}

	return a.formatter.Format(projects, a.writer, nil)
}
