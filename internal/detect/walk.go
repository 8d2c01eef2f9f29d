// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package detect

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// walker holds the state of a single detection run.
type walker struct {
	config   detectConfig
	filter   *IgnoreFilter
	sniffer  *sniffer
	log      logrus.FieldLogger
	registry Registry

	// Real paths of visited directories, only tracked when following symlinks.
	visited map[string]struct{}
}

// walk visits the entries of dir, which have already been listed. A directory classified as a project is not
// expanded any further; any other directory is walked recursively.
func (w *walker) walk(ctx context.Context, dir string, entries []fs.DirEntry) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())
		if !w.isDir(path, entry) {
			continue
		}

		if w.filter.ShouldIgnore(path) {
			continue
		}

		if w.config.FollowSymlinks && !w.markVisited(path) {
			w.log.WithField("path", path).Debugf("Skipping already visited folder: %s", path)
			continue
		}

		w.log.WithField("path", path).Debugf("Starting detecting project in %s", path)

		children, err := os.ReadDir(path)
		if err != nil {
			w.log.WithField("path", path).Errorf("Error reading folder: %v", err)
			continue
		}

		project, err := w.sniffer.detect(ctx, path, children)
		if err != nil {
			return err
		}

		if project != nil {
			// Once a project is detected, we skip possible inner projects.
			logProject(w.log, project)
			w.registry.Append(*project)
			continue
		}

		if err := w.walk(ctx, path, children); err != nil {
			return err
		}
	}

	return nil
}

// isDir reports whether entry is a directory that can be walked. Symbolic links count only when they are followed.
func (w *walker) isDir(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}

	if !w.config.FollowSymlinks {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		w.log.WithField("path", path).Errorf("Error resolving symbolic link: %v", err)
		return false
	}

	return info.IsDir()
}

// markVisited records the real path of dir and reports whether it was not visited before.
func (w *walker) markVisited(dir string) bool {
	realPath, err := filepath.EvalSymlinks(dir)
	if err != nil {
		realPath = dir
	}

	if _, has := w.visited[realPath]; has {
		return false
	}

	w.visited[realPath] = struct{}{}
	return true
}
