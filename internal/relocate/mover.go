// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package relocate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"github.com/projectsorter/sorter/internal/detect"
	"github.com/projectsorter/sorter/pkg/osutil"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Mover relocates projects into the destination folders of their types.
type Mover struct {
	destinations Destinations
	config       moveConfig
	log          logrus.FieldLogger

	rename func(ctx context.Context, old, new string) error
}

func NewMover(destinations Destinations, options ...MoveOption) *Mover {
	c := moveConfig{ConflictPolicy: ConflictError}
	for _, opt := range options {
		c = opt.apply(c)
	}

	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.SetOutput(io.Discard)
	}

	return &Mover{
		destinations: destinations,
		config:       c,
		log:          c.logger,
		rename:       osutil.Rename,
	}
}

// Move relocates each project to <destination>/<folder name of the project>.
//
// A failure only affects the project it belongs to: the remaining projects are still processed. All results are
// returned together with the combined failures. Moving stops early when ctx is canceled.
func (m *Mover) Move(ctx context.Context, projects []detect.Project) ([]Result, error) {
	results := make([]Result, 0, len(projects))
	claimed := map[string]struct{}{}

	var errs error
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return results, multierr.Append(errs, err)
		}

		result, err := m.moveProject(ctx, project, claimed)
		if err != nil {
			result.Action = ActionFailed
			result.Reason = err.Error()
			errs = multierr.Append(errs, fmt.Errorf("moving %s: %w", project.Path, err))
			m.log.WithField("path", project.Path).Errorf("Error moving project: %v", err)
		}

		results = append(results, result)
	}

	return results, errs
}

func (m *Mover) moveProject(ctx context.Context, project detect.Project, claimed map[string]struct{}) (Result, error) {
	result := newResult(project, ActionMoved)
	result.DryRun = m.config.DryRun
	log := m.log.WithFields(logrus.Fields{"path": project.Path, "type": project.Type.String()})

	destination := m.destinations.For(project.Type)
	if destination == "" {
		result.Action = ActionSkipped
		result.Reason = fmt.Sprintf("no destination configured for %s", project.Type)
		log.Warnf("Skipping project %s: %s", project.Path, result.Reason)
		return result, nil
	}

	source, err := filepath.Abs(project.Path)
	if err != nil {
		return result, err
	}
	destination, err = filepath.Abs(destination)
	if err != nil {
		return result, err
	}

	if filepath.Dir(source) == destination {
		result.Action = ActionInPlace
		result.To = source
		log.Debugf("Project %s is already in %s", source, destination)
		return result, nil
	}

	if isWithin(source, destination) {
		return result, fmt.Errorf("destination %s is inside the project", destination)
	}

	target := filepath.Join(destination, filepath.Base(source))
	result.To = target

	if m.exists(target, claimed) {
		switch m.config.ConflictPolicy {
		case ConflictSkip:
			result.Action = ActionSkipped
			result.Reason = fmt.Sprintf("%s already exists", target)
			log.Warnf("Skipping project %s: %s", source, result.Reason)
			return result, nil
		case ConflictOverwrite:
			if isWithin(target, source) {
				return result, fmt.Errorf("cannot overwrite %s, it contains the project", target)
			}
			result.Action = ActionOverwritten
		case ConflictRename:
			target = m.freeName(target, claimed)
			result.To = target
			result.Action = ActionRenamed
		default:
			return result, fmt.Errorf("%s already exists", target)
		}
	}

	claimed[target] = struct{}{}

	if m.config.DryRun {
		log.Infof("Would move project %s to %s", source, target)
		return result, nil
	}

	if result.Action == ActionOverwritten {
		if err := os.RemoveAll(target); err != nil {
			return result, fmt.Errorf("removing %s: %w", target, err)
		}
	}

	if err := os.MkdirAll(destination, osutil.PermissionDirectory); err != nil {
		return result, fmt.Errorf("creating destination %s: %w", destination, err)
	}

	if err := m.relocate(ctx, source, target); err != nil {
		return result, err
	}

	log.Infof("Moved project %s to %s", source, target)
	return result, nil
}

// relocate renames source to target. When they live on different volumes the tree is copied and the source
// removed afterwards.
func (m *Mover) relocate(ctx context.Context, source string, target string) error {
	err := m.rename(ctx, source, target)
	if err == nil || !osutil.IsCrossDeviceError(err) {
		return err
	}

	m.log.WithField("path", source).Debugf("Rename across volumes failed, copying %s to %s", source, target)

	err = copy.Copy(source, target, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Shallow
		},
		PreserveTimes: true,
	})
	if err != nil {
		// Do not leave a partial copy behind.
		_ = os.RemoveAll(target)
		return fmt.Errorf("copying %s to %s: %w", source, target, err)
	}

	if err := os.RemoveAll(source); err != nil {
		return fmt.Errorf("removing %s after copy: %w", source, err)
	}

	return nil
}

// exists reports whether path is already taken on disk or by an earlier move of this run.
func (m *Mover) exists(path string, claimed map[string]struct{}) bool {
	if _, has := claimed[path]; has {
		return true
	}

	_, err := os.Lstat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func (m *Mover) freeName(target string, claimed map[string]struct{}) string {
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", target, i)
		if !m.exists(candidate, claimed) {
			return candidate
		}
	}
}

// isWithin reports whether path is parent itself or lies below it.
func isWithin(parent string, path string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
