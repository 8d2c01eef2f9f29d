// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

//go:build !windows
// +build !windows

package osutil

import (
	"context"
	"errors"
	"os"
	"syscall"
)

// Rename is like os.Rename, but gives up early when ctx is done.
func Rename(ctx context.Context, old, new string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.Rename(old, new)
}

// IsCrossDeviceError reports whether err was caused by renaming across file systems.
func IsCrossDeviceError(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
