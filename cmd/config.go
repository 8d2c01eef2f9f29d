package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gofrs/flock"
	"github.com/projectsorter/sorter/internal"
	"github.com/projectsorter/sorter/internal/detect"
	"github.com/projectsorter/sorter/internal/relocate"
	"github.com/projectsorter/sorter/internal/terminal"
	"github.com/projectsorter/sorter/internal/wizard"
	"github.com/projectsorter/sorter/pkg/config"
	"github.com/projectsorter/sorter/pkg/input"
	"github.com/projectsorter/sorter/pkg/osutil"
	"github.com/projectsorter/sorter/pkg/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func configCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "config",
		Short: "Manage sorter configuration",
		Long: heredoc.Doc(`
			Manage sorter configuration.

			Settings are stored as JSON in ~/.sorter/config.json, or in the folder named by the
			SORTER_CONFIG_DIR environment variable. The known settings are:

				destinations.<type>   Destination folder for projects of <type>
				move.conflictPolicy   error, skip, overwrite or rename
				scan.exclude          List of globs of folders to skip, e.g. ["**/archive"]
				scan.followSymlinks   true or false
				log.file              File that receives a JSON copy of every log entry
		`),
	}

	root.AddCommand(configListCmd(global))
	root.AddCommand(configGetCmd(global))
	root.AddCommand(configSetCmd(global))
	root.AddCommand(configUnsetCmd(global))
	root.AddCommand(configInitCmd(global))

	root.Flags().BoolP("help", "h", false, fmt.Sprintf("Gets help for %s.", root.Name()))

	return root
}

// sorter config list

func configListCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lists all configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetFormatter(cmd)
			if err != nil {
				return err
			}

			c, err := loadUserConfig(global)
			if err != nil {
				return err
			}

			if err := formatter.Format(c.Raw(), cmd.OutOrStdout(), nil); err != nil {
				return fmt.Errorf("failing formatting config values: %w", err)
			}

			return nil
		},
	}

	output.AddOutputParam(cmd, []output.Format{output.JsonFormat}, output.JsonFormat)
	return cmd
}

// sorter config get <path>

func configGetCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Gets a configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetFormatter(cmd)
			if err != nil {
				return err
			}

			c, err := loadUserConfig(global)
			if err != nil {
				return err
			}

			value, ok := c.Get(args[0])
			if !ok {
				return fmt.Errorf("no value stored at path '%s'", args[0])
			}

			if err := formatter.Format(value, cmd.OutOrStdout(), nil); err != nil {
				return fmt.Errorf("failing formatting config values: %w", err)
			}

			return nil
		},
	}

	output.AddOutputParam(cmd, []output.Format{output.JsonFormat}, output.JsonFormat)
	return cmd
}

// sorter config set <path> <value>

func configSetCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Sets a configuration",
		Long: heredoc.Doc(`
			Sets a configuration.

			Values that are JSON lists or booleans are stored as such, anything else is stored as text.
		`),
		Example: heredoc.Doc(`
			$ sorter config set destinations.java-maven ~/code/java
			$ sorter config set move.conflictPolicy rename
			$ sorter config set scan.exclude '["**/archive", "tmp"]'
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, raw := args[0], args[1]
			value, err := parseConfigValue(path, raw)
			if err != nil {
				return err
			}

			return updateUserConfig(global, func(c config.Config) error {
				if err := c.Set(path, value); err != nil {
					return fmt.Errorf("failed setting configuration value '%s' to '%s'. %w", path, raw, err)
				}

				return nil
			})
		},
	}
}

// sorter config unset <path>

func configUnsetCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <path>",
		Short: "Unsets a configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateUserConfig(global, func(c config.Config) error {
				if err := c.Unset(args[0]); err != nil {
					return fmt.Errorf("failed removing configuration with path '%s'. %w", args[0], err)
				}

				return nil
			})
		},
	}
}

// sorter config init

func configInitCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Choose the project types to organize and their destination folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ask := input.NewAsker(
				global.NoPrompt,
				terminal.IsTerminal(os.Stdout.Fd(), os.Stdin.Fd()),
				cmd.OutOrStdout(),
				cmd.InOrStdin(),
			)

			configPath, err := userConfigFilePath(global)
			if err != nil {
				return err
			}

			err = updateUserConfig(global, func(c config.Config) error {
				return wizard.New(ask).Run(cmd.Context(), c)
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), output.WithSuccessFormat("Settings saved to %s", configPath))
			return nil
		},
	}
}

// updateUserConfig loads the configuration file, applies update and saves the file.
func updateUserConfig(global *internal.GlobalCommandOptions, update func(c config.Config) error) error {
	configPath, err := userConfigFilePath(global)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), osutil.PermissionDirectory); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	lockPath := configPath + ".lock"
	fl := flock.New(lockPath)
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("locking file %s: %w", lockPath, err)
	}
	defer func() {
		if err := fl.Unlock(); err != nil {
			logrus.Warnf("failed to release file lock: %v", err)
		}
	}()

	fileManager := config.NewFileConfigManager(config.NewManager())
	c, err := fileManager.Load(configPath)
	if err != nil {
		return err
	}

	if err := update(c); err != nil {
		return err
	}

	if err := fileManager.Save(c, configPath); err != nil {
		return fmt.Errorf("failed saving configuration. %w", err)
	}

	return nil
}

// parseConfigValue validates well known settings and converts JSON lists and booleans.
func parseConfigValue(path string, raw string) (any, error) {
	if tag, has := strings.CutPrefix(path, config.DestinationsPath+"."); has {
		if _, err := detect.ParseProjectType(tag); err != nil {
			return nil, &internal.ErrorWithSuggestion{
				Err:        err,
				Suggestion: "Run `sorter config --help` to see the known settings.",
			}
		}
	}

	if path == config.ConflictPolicyPath {
		policy, err := relocate.ParseConflictPolicy(raw)
		if err != nil {
			return nil, err
		}
		return string(policy), nil
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err == nil {
		switch v := value.(type) {
		case []any, bool:
			return v, nil
		}
	}

	return raw, nil
}
