// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

import (
	"fmt"
	"strings"

	"github.com/blang/semver/v4"
)

// Version is the version string of the running binary, "<semver> (commit <sha>)". It is replaced at build time:
//
//	go build -ldflags="-X 'github.com/projectsorter/sorter/internal.Version=1.2.0 (commit abc)'"
var Version = "0.0.0-dev.0 (commit 0000000000000000000000000000000000000000)"

type VersionSpec struct {
	Version semver.Version `json:"version"`
	Commit  string         `json:"commit"`
}

// VersionInfo parses Version.
func VersionInfo() (VersionSpec, error) {
	number, commit, _ := strings.Cut(Version, " ")
	version, err := semver.Parse(number)
	if err != nil {
		return VersionSpec{}, fmt.Errorf("parsing version '%s': %w", Version, err)
	}

	commit = strings.TrimSuffix(strings.TrimPrefix(commit, "(commit "), ")")
	return VersionSpec{Version: version, Commit: commit}, nil
}

// GetVersionNumber returns the semantic version of the binary, or "unknown" when it cannot be determined.
func GetVersionNumber() string {
	info, err := VersionInfo()
	if err != nil {
		return "unknown"
	}

	return info.Version.String()
}
