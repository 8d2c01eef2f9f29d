// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/projectsorter/sorter/pkg/osutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestIgnoreFilter_ShouldIgnore(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"IdeaFolder", ".idea", true},
		{"NodeModules", "node_modules", true},
		{"Build", "build", true},
		{"Dist", "dist", true},
		{"Git", ".git", true},
		{"SitePackages", "lib/site-packages", true},
		{"Logs", "logs", true},
		{"Venv", "venv", true},
		{"ImlFolder", "legacy.iml", true},
		{"ImlParent", "legacy.iml/src/main", true},
		{"NameOnlySuffixMatch", "my-build", false},
		{"DeepRegular", "apps/api", false},
		{"Regular", "service", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(root, filepath.FromSlash(tt.path))
			require.NoError(t, os.MkdirAll(path, osutil.PermissionDirectory))

			logger, _ := test.NewNullLogger()
			filter, err := NewIgnoreFilter(root, nil, DefaultIgnoreFileName, logger)
			require.NoError(t, err)

			require.Equal(t, tt.want, filter.ShouldIgnore(path))
		})
	}
}

func TestIgnoreFilter_WarnsOncePerPath(t *testing.T) {
	root := t.TempDir()
	logger, hook := test.NewNullLogger()

	filter, err := NewIgnoreFilter(root, nil, DefaultIgnoreFileName, logger)
	require.NoError(t, err)

	nodeModules := filepath.Join(root, "node_modules")
	require.True(t, filter.ShouldIgnore(nodeModules))
	require.True(t, filter.ShouldIgnore(nodeModules))
	require.True(t, filter.ShouldIgnore(filepath.Join(root, "dist")))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.Equal(t, logrus.WarnLevel, entry.Level)
	}
	require.Equal(t, nodeModules, entries[0].Data["path"])

	// A separate filter has its own cache.
	hook.Reset()
	other, err := NewIgnoreFilter(root, nil, DefaultIgnoreFileName, logger)
	require.NoError(t, err)
	require.True(t, other.ShouldIgnore(nodeModules))
	require.Len(t, hook.AllEntries(), 1)
}

func TestIgnoreFilter_StatFailureIgnores(t *testing.T) {
	root := t.TempDir()
	logger, hook := test.NewNullLogger()

	filter, err := NewIgnoreFilter(root, nil, DefaultIgnoreFileName, logger)
	require.NoError(t, err)

	require.True(t, filter.ShouldIgnore(filepath.Join(root, "vanished")))
	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestIgnoreFilter_ExcludePatterns(t *testing.T) {
	root := t.TempDir()
	logger, _ := test.NewNullLogger()

	filter, err := NewIgnoreFilter(root, []string{"**/archive", "tmp/*"}, "", logger)
	require.NoError(t, err)

	for _, dir := range []string{"archive", "a/b/archive", "tmp/x", "tmp", "keep/tmp/x"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), osutil.PermissionDirectory))
	}

	require.True(t, filter.ShouldIgnore(filepath.Join(root, "archive")))
	require.True(t, filter.ShouldIgnore(filepath.Join(root, "a", "b", "archive")))
	require.True(t, filter.ShouldIgnore(filepath.Join(root, "tmp", "x")))
	require.False(t, filter.ShouldIgnore(filepath.Join(root, "tmp")))
	require.False(t, filter.ShouldIgnore(filepath.Join(root, "keep", "tmp", "x")))
}

func TestIgnoreFilter_DotDotPrefixedFolderInsideRoot(t *testing.T) {
	root := t.TempDir()
	logger, _ := test.NewNullLogger()

	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultIgnoreFileName), []byte("..stash\n"), osutil.PermissionFile))
	for _, dir := range []string{"..cache", "..stash"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), osutil.PermissionDirectory))
	}

	filter, err := NewIgnoreFilter(root, []string{"..cache"}, DefaultIgnoreFileName, logger)
	require.NoError(t, err)

	require.True(t, filter.ShouldIgnore(filepath.Join(root, "..cache")))
	require.True(t, filter.ShouldIgnore(filepath.Join(root, "..stash")))
}
