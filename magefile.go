// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

type Sorter mg.Namespace

// Build compiles the sorter binary into ./bin. VERSION, when set, is stamped into the binary.
func (s Sorter) Build(ctx context.Context) error {
	args := []string{"build", "-o", "./bin/sorter"}
	if version := os.Getenv("VERSION"); version != "" {
		args = append(args, "-ldflags", fmt.Sprintf("-X 'github.com/projectsorter/sorter/internal.Version=%s'", version))
	}
	args = append(args, ".")

	cmdStr, cmd := runIn(ctx, ".", "go", args...)
	fmt.Println(cmdStr)
	return cmd()
}

// Test runs the unit tests of every package.
func (s Sorter) Test(ctx context.Context) error {
	cmdStr, cmd := runIn(ctx, ".", "go", "test", "./...")
	fmt.Println(cmdStr)
	return cmd()
}

// Vet runs go vet on every package.
func (s Sorter) Vet(ctx context.Context) error {
	cmdStr, cmd := runIn(ctx, ".", "go", "vet", "./...")
	fmt.Println(cmdStr)
	return cmd()
}

func runIn(ctx context.Context, cwd string, cmd string, args ...string) (string, func() error) {
	c := exec.CommandContext(ctx, cmd, args...)
	c.Dir = cwd
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.String(), func() error {
		return c.Run()
	}
}
