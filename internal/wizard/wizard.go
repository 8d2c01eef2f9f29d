// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package wizard asks the user which project types to organize and where each of them goes.
package wizard

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/projectsorter/sorter/internal/detect"
	"github.com/projectsorter/sorter/internal/relocate"
	"github.com/projectsorter/sorter/pkg/config"
	"github.com/projectsorter/sorter/pkg/input"
)

type Wizard struct {
	ask input.Asker
}

func New(ask input.Asker) *Wizard {
	return &Wizard{ask: ask}
}

// Run asks for the settings and stores the answers in c. Types that are not selected lose their destination.
func (w *Wizard) Run(ctx context.Context, c config.Config) error {
	if _, err := relocate.DestinationsFromConfig(c); err != nil {
		return err
	}

	// Defaults are the values as written, so "$HOME/src" stays unexpanded.
	current := map[detect.ProjectType]string{}
	types := detect.AllProjectTypes()
	options := make([]string, len(types))
	defaults := []string{}
	for i, t := range types {
		options[i] = t.String()
		current[t], _ = c.GetString(destinationPath(t))
		if current[t] != "" {
			defaults = append(defaults, t.String())
		}
	}

	var selected []string
	if err := w.ask(&survey.MultiSelect{
		Message: "Select the project types you want to organize:",
		Options: options,
		Default: defaults,
	}, &selected); err != nil {
		return fmt.Errorf("selecting project types: %w", err)
	}

	for _, t := range types {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := destinationPath(t)
		if !slices.Contains(selected, t.String()) {
			if err := c.Unset(path); err != nil {
				return err
			}
			continue
		}

		var destination string
		if err := w.ask(&survey.Input{
			Message: fmt.Sprintf("Destination folder for %s projects:", t),
			Default: current[t],
		}, &destination); err != nil {
			return fmt.Errorf("asking destination for %s: %w", t, err)
		}

		destination = strings.TrimSpace(destination)
		if destination == "" {
			if err := c.Unset(path); err != nil {
				return err
			}
			continue
		}

		if err := c.Set(path, destination); err != nil {
			return err
		}
	}

	policy := relocate.ConflictError
	if value, has := c.GetString(config.ConflictPolicyPath); has {
		if parsed, err := relocate.ParseConflictPolicy(value); err == nil {
			policy = parsed
		}
	}

	policies := relocate.AllConflictPolicies()
	policyOptions := make([]string, len(policies))
	for i, p := range policies {
		policyOptions[i] = string(p)
	}

	var answer string
	if err := w.ask(&survey.Select{
		Message: "What should happen when a project with the same name already exists at the destination?",
		Options: policyOptions,
		Default: string(policy),
	}, &answer); err != nil {
		return fmt.Errorf("selecting conflict policy: %w", err)
	}

	return c.Set(config.ConflictPolicyPath, answer)
}

func destinationPath(t detect.ProjectType) string {
	return fmt.Sprintf("%s.%s", config.DestinationsPath, t.Tag())
}
