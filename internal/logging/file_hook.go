// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logging provides the persistent log sink used by the sorter commands.
package logging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/projectsorter/sorter/pkg/osutil"
	"github.com/sirupsen/logrus"
)

// DefaultMaxFileSize is the size at which a log file is rotated.
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// FileHook appends every entry fired on a logger to a log file, one JSON object per line. The file is opened
// for each entry, so several loggers may share a path. Once the file reaches maxSize it is renamed to
// "<path>.1", replacing the previous rotation, and a new file is started.
type FileHook struct {
	path      string
	maxSize   int64
	formatter logrus.Formatter

	mu sync.Mutex
}

// NewFileHook creates a hook writing to path. A maxSize of zero or less disables rotation.
func NewFileHook(path string, maxSize int64) *FileHook {
	return &FileHook{
		path:      path,
		maxSize:   maxSize,
		formatter: &logrus.JSONFormatter{},
	}
}

// Path returns the log file written by the hook.
func (h *FileHook) Path() string {
	return h.path
}

func (h *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *FileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("formatting log entry: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.path), osutil.PermissionDirectory); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	if err := h.rotate(int64(len(line))); err != nil {
		return err
	}

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, osutil.PermissionFile)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("writing log file: %w", err)
	}

	return nil
}

// rotate moves the current file aside when appending n more bytes would exceed the size limit.
func (h *FileHook) rotate(n int64) error {
	if h.maxSize <= 0 {
		return nil
	}

	info, err := os.Stat(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}

	if info.Size() == 0 || info.Size()+n <= h.maxSize {
		return nil
	}

	rotated := h.path + ".1"
	if err := os.Remove(rotated); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing rotated log file: %w", err)
	}

	if err := os.Rename(h.path, rotated); err != nil {
		return fmt.Errorf("rotating log file: %w", err)
	}

	return nil
}

var _ logrus.Hook = (*FileHook)(nil)
