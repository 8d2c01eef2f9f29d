package detect

import (
	"io"
	"slices"

	"github.com/sirupsen/logrus"
)

// DefaultIgnoreFileName is the gitignore-style file read from the scan root.
const DefaultIgnoreFileName = ".sorterignore"

func newConfig(options ...DetectOption) detectConfig {
	c := detectConfig{
		ignoreFileName: DefaultIgnoreFileName,
	}

	for _, opt := range options {
		c = opt.apply(c)
	}

	if c.logger == nil {
		c.logger = discardLogger()
	}

	c.detectors = selectDetectors(c.IncludeTypes, c.ExcludeTypes)
	return c
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// selectDetectors keeps the detectors for the requested project types, preserving priority order.
func selectDetectors(include []ProjectType, exclude []ProjectType) []projectDetector {
	enabled := map[ProjectType]bool{}
	if include != nil {
		for _, t := range include {
			enabled[t] = true
		}
	} else {
		for _, t := range allProjectTypes {
			enabled[t] = true
		}
	}

	for _, t := range exclude {
		enabled[t] = false
	}

	detectors := []projectDetector{}
	for _, d := range allDetectors {
		if enabled[d.Type()] {
			detectors = append(detectors, d)
		}
	}

	return detectors
}

type DetectOption interface {
	apply(detectConfig) detectConfig
}

type detectConfig struct {
	// Project types to be detected. If unset, all known project types are included.
	IncludeTypes []ProjectType
	// Project types to be excluded from detection.
	ExcludeTypes []ProjectType

	// Glob patterns (doublestar syntax), relative to the scan root, of directories to skip
	// in addition to the built-in ignore list.
	ExcludePatterns []string

	// Follow symbolic links to directories. Each real directory is visited at most once.
	FollowSymlinks bool

	// Internal usage fields
	ignoreFileName string
	logger         *logrus.Logger
	detectors      []projectDetector
}

type includeTypesOption struct {
	types []ProjectType
}

func (o *includeTypesOption) apply(c detectConfig) detectConfig {
	c.IncludeTypes = append(c.IncludeTypes, o.types...)
	return c
}

// WithProjectTypes restricts detection to the given project types.
func WithProjectTypes(types ...ProjectType) DetectOption {
	return &includeTypesOption{slices.Clone(types)}
}

type excludeTypesOption struct {
	types []ProjectType
}

func (o *excludeTypesOption) apply(c detectConfig) detectConfig {
	c.ExcludeTypes = append(c.ExcludeTypes, o.types...)
	return c
}

// WithoutProjectTypes disables detection of the given project types.
func WithoutProjectTypes(types ...ProjectType) DetectOption {
	return &excludeTypesOption{slices.Clone(types)}
}

type excludePatternsOption struct {
	patterns []string
}

func (o *excludePatternsOption) apply(c detectConfig) detectConfig {
	c.ExcludePatterns = append(c.ExcludePatterns, o.patterns...)
	return c
}

func WithExcludePatterns(patterns ...string) DetectOption {
	return &excludePatternsOption{slices.Clone(patterns)}
}

type followSymlinksOption struct{}

func (o *followSymlinksOption) apply(c detectConfig) detectConfig {
	c.FollowSymlinks = true
	return c
}

func WithFollowSymlinks() DetectOption {
	return &followSymlinksOption{}
}

type ignoreFileOption struct {
	name string
}

func (o *ignoreFileOption) apply(c detectConfig) detectConfig {
	c.ignoreFileName = o.name
	return c
}

// WithIgnoreFile changes the name of the ignore file read from the scan root. An empty name disables it.
func WithIgnoreFile(name string) DetectOption {
	return &ignoreFileOption{name}
}

type loggerOption struct {
	logger *logrus.Logger
}

func (o *loggerOption) apply(c detectConfig) detectConfig {
	c.logger = o.logger
	return c
}

// WithLogger sets the logger receiving detection events. By default events are discarded.
func WithLogger(logger *logrus.Logger) DetectOption {
	return &loggerOption{logger}
}
