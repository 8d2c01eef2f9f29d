// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package terminal

import (
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
)

// ForceTtyEnvVar overrides terminal detection when set to a boolean value.
const ForceTtyEnvVar = "SORTER_FORCE_TTY"

// Environment variables set by common CI systems.
var ciEnvVars = []string{
	"CI",
	"TF_BUILD",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"BUILDKITE",
}

// IsTerminal returns true if the given file descriptors are attached to a terminal,
// taking into account of environment variables that force TTY behavior.
func IsTerminal(stdoutFd uintptr, stdinFd uintptr) bool {
	// User override to force TTY behavior
	if forceTty, err := strconv.ParseBool(os.Getenv(ForceTtyEnvVar)); err == nil {
		return forceTty
	}

	// Never prompt interactively on CI; use SORTER_FORCE_TTY=true to override.
	if IsRunningOnCI() {
		return false
	}

	return isatty.IsTerminal(stdoutFd) && isatty.IsTerminal(stdinFd)
}

// IsRunningOnCI reports whether the process looks like it runs on a CI system.
func IsRunningOnCI() bool {
	for _, name := range ciEnvVars {
		if value, has := os.LookupEnv(name); has && value != "" && value != "false" {
			return true
		}
	}

	return false
}
