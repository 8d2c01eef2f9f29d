// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package detect

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type projectDetector interface {
	Type() ProjectType
	DetectProject(ctx context.Context, path string, entries []fs.DirEntry) (*Project, error)
}

// parseFunc extracts the project name and version from the content of a project file.
type parseFunc func(content []byte) (name string, version string, err error)

// metadataDetector recognizes a project by a project file that is also read for metadata.
type metadataDetector struct {
	projectType ProjectType
	fileNames   []string
	parse       parseFunc
}

func (d *metadataDetector) Type() ProjectType {
	return d.projectType
}

func (d *metadataDetector) DetectProject(ctx context.Context, path string, entries []fs.DirEntry) (*Project, error) {
	for _, fileName := range d.fileNames {
		for _, entry := range entries {
			if entry.IsDir() || strings.ToLower(entry.Name()) != fileName {
				continue
			}

			contents, err := os.ReadFile(filepath.Join(path, entry.Name()))
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
			}

			name, version, err := d.parse(contents)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
			}

			return &Project{
				Type:          d.projectType,
				Path:          path,
				Name:          name,
				Version:       version,
				DetectionRule: "Inferred by presence of: " + entry.Name(),
			}, nil
		}
	}

	return nil, nil
}

// markerDetector recognizes a project by the mere presence of marker files. No metadata is read.
type markerDetector struct {
	projectType ProjectType
	// Lower-case file names that mark a project.
	fileNames []string
	// Lower-case extensions; any file with one of them marks a project.
	extensions []string
	// When set, a marker only counts if a file with one of these extensions is next to it.
	companions []string
}

func (d *markerDetector) Type() ProjectType {
	return d.projectType
}

func (d *markerDetector) DetectProject(ctx context.Context, path string, entries []fs.DirEntry) (*Project, error) {
	var marker string
	var companion string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := strings.ToLower(entry.Name())
		ext := filepath.Ext(name)

		if marker == "" && (contains(d.fileNames, name) || contains(d.extensions, ext)) {
			marker = entry.Name()
		}

		if companion == "" && contains(d.companions, ext) {
			companion = entry.Name()
		}
	}

	if marker == "" || (len(d.companions) > 0 && companion == "") {
		return nil, nil
	}

	rule := "Inferred by presence of: " + marker
	if companion != "" {
		rule += ", " + companion
	}

	return &Project{
		Type:          d.projectType,
		Path:          path,
		Name:          DefaultProjectName,
		Version:       DefaultProjectVersion,
		DetectionRule: rule,
	}, nil
}

func contains(values []string, value string) bool {
	if value == "" {
		return false
	}

	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}

// sniffer classifies a single directory.
type sniffer struct {
	detectors []projectDetector
	log       logrus.FieldLogger
}

type probeResult struct {
	project *Project
	err     error
}

// detect runs every detector against the directory and returns the match of the detector with the highest
// priority. Detectors run concurrently; the result does not depend on which one finishes first.
// A detector that fails counts as no match.
func (s *sniffer) detect(ctx context.Context, path string, entries []fs.DirEntry) (*Project, error) {
	results := make([]probeResult, len(s.detectors))

	g, gctx := errgroup.WithContext(ctx)
	for i, detector := range s.detectors {
		i, detector := i, detector
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			project, err := detector.DetectProject(gctx, path, entries)
			results[i] = probeResult{project, err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, result := range results {
		if result.err != nil {
			s.log.WithFields(logrus.Fields{
				"path": path,
				"type": s.detectors[i].Type().String(),
			}).Errorf("Error detecting project: %v", result.err)
			continue
		}

		if result.project != nil {
			return result.project, nil
		}
	}

	return nil, nil
}
