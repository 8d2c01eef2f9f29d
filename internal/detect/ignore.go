// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package detect

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/denormal/go-gitignore"
	"github.com/sirupsen/logrus"
)

// Directory names that are never traversed nor classified.
var ignoredFolders = []string{
	".idea",
	"node_modules",
	"build",
	"dist",
	".git",
	"site-packages",
	"logs",
	"venv",
}

// IgnoreFilter decides whether a directory is excluded from traversal and detection.
//
// Each vetoed path is reported once per filter. A filter belongs to a single detection run.
type IgnoreFilter struct {
	root            string
	excludePatterns []string
	ignorer         gitignore.GitIgnore
	warned          map[string]struct{}
	log             logrus.FieldLogger
}

// NewIgnoreFilter creates a filter for a scan of root. excludePatterns are doublestar globs matched against paths
// relative to root. When ignoreFileName is set and the file exists in root, its gitignore rules also apply.
func NewIgnoreFilter(
	root string,
	excludePatterns []string,
	ignoreFileName string,
	log logrus.FieldLogger,
) (*IgnoreFilter, error) {
	for _, pattern := range excludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern '%s'", pattern)
		}
	}

	f := &IgnoreFilter{
		root:            root,
		excludePatterns: slices.Clone(excludePatterns),
		warned:          map[string]struct{}{},
		log:             log,
	}

	if ignoreFileName != "" {
		ignoreFile := filepath.Join(root, ignoreFileName)
		if _, err := os.Stat(ignoreFile); err == nil {
			ignorer, err := gitignore.NewFromFile(ignoreFile)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", ignoreFile, err)
			}
			f.ignorer = ignorer
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", ignoreFile, err)
		}
	}

	return f, nil
}

// ShouldIgnore reports whether dirPath must be skipped. A directory that cannot be inspected is skipped too.
func (f *IgnoreFilter) ShouldIgnore(dirPath string) bool {
	reason := f.ignoreReason(dirPath)
	if reason == "" {
		if _, err := os.Stat(dirPath); err != nil {
			f.log.WithField("path", dirPath).Errorf("Error checking ignored status for folder: %v", err)
			return true
		}

		return false
	}

	if _, has := f.warned[dirPath]; !has {
		f.warned[dirPath] = struct{}{}
		f.log.WithField("path", dirPath).Warnf("Ignoring folder: %s (%s)", dirPath, reason)
	}

	return true
}

func (f *IgnoreFilter) ignoreReason(dirPath string) string {
	clean := filepath.Clean(dirPath)

	for _, part := range strings.Split(clean, string(filepath.Separator)) {
		if strings.HasSuffix(part, ".iml") {
			return "folder or parent contains .iml"
		}
	}

	if slices.Contains(ignoredFolders, filepath.Base(clean)) {
		return "ignored folder name"
	}

	rel, err := filepath.Rel(f.root, clean)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range f.excludePatterns {
		if match, _ := doublestar.Match(pattern, rel); match {
			return "matches exclude pattern " + pattern
		}
	}

	if f.ignorer != nil {
		if match := f.ignorer.Relative(rel, true); match != nil && match.Ignore() {
			return "excluded by ignore file"
		}
	}

	return ""
}
