package internal

type GlobalCommandOptions struct {
	// Cwd allows the user to override the current working directory, temporarily.
	// The root command will take care of cd'ing into that folder before your command
	// and cd'ing back to the original folder after the commands complete (to make testing
	// easier)
	Cwd string

	// ConfigFile overrides the path of the user configuration file.
	ConfigFile string

	// LogFile is a file that receives a copy of every log entry. It's set with `--log-file` or the log.file setting.
	LogFile string

	// EnableDebugLogging turns on debug logging. It's enabled with `--debug`, for any command.
	EnableDebugLogging bool

	// when true, interactive prompts should behave as if the user selected the default value.
	// if there is no default value the prompt returns an error.
	NoPrompt bool
}
