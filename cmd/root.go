// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/projectsorter/sorter/internal"
	"github.com/projectsorter/sorter/internal/logging"
	"github.com/projectsorter/sorter/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the `sorter` command and all of its sub commands.
func NewRootCmd() *cobra.Command {
	prevDir := ""
	opts := &internal.GlobalCommandOptions{}

	cmd := &cobra.Command{
		Use:   "sorter",
		Short: "Find software projects in a folder tree and move each one to a folder for its type",
		Long: heredoc.Doc(`
			Find software projects in a folder tree and move each one to a folder for its type.

			Projects are recognized by their build files: Maven, Gradle and plain Java, JavaScript,
			TypeScript, Python, C, C# and C++ are supported. Once a folder is recognized as a project,
			the folders below it are not searched any further.

			To get started, choose where each type of project goes:

				$ sorter config init

			Then preview and run the sort:

				$ sorter sort --dry-run -p ~/Downloads
				$ sorter sort -p ~/Downloads
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Cwd != "" {
				current, err := os.Getwd()

				if err != nil {
					return err
				}

				prevDir = current

				if err := os.Chdir(opts.Cwd); err != nil {
					return fmt.Errorf("failed to change directory to %s: %w", opts.Cwd, err)
				}
			}

			if err := resolveLogFile(opts); err != nil {
				return err
			}

			configureLogging(logrus.StandardLogger(), opts, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			// Restoring the working directory keeps tests that run several commands independent.
			if prevDir != "" {
				return os.Chdir(prevDir)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.Flags().BoolP("help", "h", false, "Help for "+cmd.Name())
	cmd.PersistentFlags().StringVarP(&opts.Cwd, "cwd", "C", "", "Set the current working directory")
	cmd.PersistentFlags().StringVar(
		&opts.ConfigFile, "config", "", "Path of the configuration file (default ~/.sorter/config.json)")
	cmd.PersistentFlags().StringVar(
		&opts.LogFile, "log-file", "", "Append log entries to a file (default from the log.file setting)")
	cmd.PersistentFlags().BoolVar(&opts.EnableDebugLogging, "debug", false, "Enables debug/diagnostic logging")
	cmd.PersistentFlags().BoolVar(
		&opts.NoPrompt, "no-prompt", false, "Accept default value instead of prompting, or fail if there is no default")

	cmd.AddCommand(scanCmd(opts))
	cmd.AddCommand(sortCmd(opts))
	cmd.AddCommand(configCmd(opts))
	cmd.AddCommand(versionCmd(opts))

	return cmd
}

// newLogger creates the logger handed to the detection and move stages. Events go to w, the command's stderr.
func newLogger(opts *internal.GlobalCommandOptions, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	configureLogging(logger, opts, w)
	return logger
}

func configureLogging(logger *logrus.Logger, opts *internal.GlobalCommandOptions, w io.Writer) {
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !opts.EnableDebugLogging,
	})

	logger.SetLevel(logrus.InfoLevel)
	if opts.EnableDebugLogging {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.ReplaceHooks(make(logrus.LevelHooks))
	if opts.LogFile != "" {
		logger.AddHook(logging.NewFileHook(opts.LogFile, logging.DefaultMaxFileSize))
	}
}

// resolveLogFile picks the log file from --log-file, falling back to the log.file setting, and makes it
// absolute so a later change of directory does not move it.
func resolveLogFile(opts *internal.GlobalCommandOptions) error {
	if opts.LogFile == "" {
		// An unreadable config file is reported by the command itself.
		if c, err := loadUserConfig(opts); err == nil {
			opts.LogFile, _ = c.GetString(config.LogFilePath)
		}
	}

	if opts.LogFile == "" {
		return nil
	}

	path, err := filepath.Abs(opts.LogFile)
	if err != nil {
		return fmt.Errorf("resolving log file: %w", err)
	}

	opts.LogFile = path
	return nil
}

// userConfigFilePath returns the configuration file selected with --config, or the user config file.
func userConfigFilePath(opts *internal.GlobalCommandOptions) (string, error) {
	if opts.ConfigFile != "" {
		return opts.ConfigFile, nil
	}

	return config.GetUserConfigFilePath()
}

func loadUserConfig(opts *internal.GlobalCommandOptions) (config.Config, error) {
	configPath, err := userConfigFilePath(opts)
	if err != nil {
		return nil, err
	}

	return config.NewFileConfigManager(config.NewManager()).Load(configPath)
}
