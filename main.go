// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/projectsorter/sorter/cmd"
	"github.com/projectsorter/sorter/internal"
	"github.com/projectsorter/sorter/pkg/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	restoreColorMode := colorable.EnableColorsStdout(nil)
	defer restoreColorMode()

	if isDebugEnabled() {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.Debugf("sorter %s, args: %s", internal.GetVersionNumber(), strings.Join(os.Args[1:], " "))
	}

	cmdErr := cmd.NewRootCmd().ExecuteContext(ctx)
	if cmdErr != nil {
		stderr := colorable.NewColorableStderr()
		fmt.Fprintln(stderr, output.WithErrorFormat("ERROR: %s", cmdErr.Error()))

		var suggestionErr *internal.ErrorWithSuggestion
		if errors.As(cmdErr, &suggestionErr) {
			fmt.Fprintln(stderr, suggestionErr.Suggestion)
		}

		stop()
		restoreColorMode()
		os.Exit(1)
	}
}

// isDebugEnabled checks to see if `--debug` was passed with a truthy
// value.
func isDebugEnabled() bool {
	debug := false
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)

	// Since we are running this parse logic on the full command line, there may be additional flags
	// which we have not defined in our flag set (but would be defined by whatever command we end up
	// running). Setting UnknownFlags instructs `flags.Parse` to continue parsing the command line
	// even if a flag is not in the flag set (instead of just returning an error saying the flag was not
	// found).
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.BoolVar(&debug, "debug", false, "")

	// if flag `-h` of `--help` is within the command, the usage is automatically shown.
	// Setting `Usage` to a no-op will hide this extra unwanted output.
	flags.Usage = func() {}

	_ = flags.Parse(os.Args[1:])
	return debug
}
