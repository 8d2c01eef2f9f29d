// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

//go:build windows
// +build windows

package osutil

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

// Rename is like os.Rename except it will retry the operation, up to 10 times, waiting a second between each retry when the
// Rename fails due to what may be transient file system errors. Project folders are often held open by an IDE, an
// indexer or a virus scanner for a short while.
func Rename(ctx context.Context, old, new string) error {
	return retry.Do(ctx, retry.WithMaxRetries(10, retry.NewConstant(1*time.Second)), func(ctx context.Context) error {
		err := os.Rename(old, new)
		if errors.Is(err, windows.ERROR_SHARING_VIOLATION) {
			// If some other process has a open handle to a file in the folder, Rename can fail with ERROR_SHARING_VIOLATION.
			logrus.Debugf("rename of %s to %s failed due to ERROR_SHARING_VIOLATION, allowing retry", old, new)
			return retry.RetryableError(err)
		} else if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			logrus.Debugf("rename of %s to %s failed due to ERROR_ACCESS_DENIED, allowing retry", old, new)
			return retry.RetryableError(err)
		}
		return err
	})
}

// IsCrossDeviceError reports whether err was caused by renaming across volumes.
func IsCrossDeviceError(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
