// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package detect

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Detect finds all projects under root. root itself is never classified.
//
// Unreadable directories below root are logged and skipped. An error is returned when root cannot be scanned
// at all, or when ctx is canceled.
func Detect(ctx context.Context, root string, options ...DetectOption) (*Registry, error) {
	config := newConfig(options...)

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	filter, err := NewIgnoreFilter(root, config.ExcludePatterns, config.ignoreFileName, config.logger)
	if err != nil {
		return nil, err
	}

	config.logger.WithField("path", root).Infof("Starting project detection in %s", root)

	w := &walker{
		config:  config,
		filter:  filter,
		sniffer: &sniffer{detectors: config.detectors, log: config.logger},
		log:     config.logger,
		visited: map[string]struct{}{},
	}

	if config.FollowSymlinks {
		w.markVisited(root)
	}

	if err := w.walk(ctx, root, entries); err != nil {
		return nil, err
	}

	config.logger.WithField("path", root).Infof("Project detection finished, %d project(s) found", w.registry.Len())
	return &w.registry, nil
}

// DetectDirectory classifies a single directory. It returns nil when the directory is not a project root.
func DetectDirectory(ctx context.Context, dir string, options ...DetectOption) (*Project, error) {
	config := newConfig(options...)

	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	s := &sniffer{detectors: config.detectors, log: config.logger}
	return s.detect(ctx, dir, entries)
}

func logProject(log logrus.FieldLogger, project *Project) {
	log.WithFields(logrus.Fields{
		"path":    project.Path,
		"name":    project.Name,
		"version": project.Version,
	}).Infof("Project (%s) detected in: %s", project.Type, project.Path)
}
