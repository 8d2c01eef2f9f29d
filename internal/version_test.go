// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetVersionNumber(t *testing.T) {
	require.Equal(t, "0.0.0-dev.0", GetVersionNumber())

	orig := Version
	Version = "invalid"
	defer func() { Version = orig }()

	require.Equal(t, "unknown", GetVersionNumber())

	Version = ""
	require.Equal(t, "unknown", GetVersionNumber())
}

func TestVersionInfo(t *testing.T) {
	orig := Version
	Version = "1.4.2 (commit 3f2a1bc)"
	defer func() { Version = orig }()

	info, err := VersionInfo()
	require.NoError(t, err)
	require.Equal(t, "1.4.2", info.Version.String())
	require.Equal(t, "3f2a1bc", info.Commit)
}
