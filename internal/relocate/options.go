package relocate

import "github.com/sirupsen/logrus"

type MoveOption interface {
	apply(moveConfig) moveConfig
}

type moveConfig struct {
	ConflictPolicy ConflictPolicy
	// Report the planned actions without changing the file system.
	DryRun bool

	logger *logrus.Logger
}

type conflictPolicyOption struct {
	policy ConflictPolicy
}

func (o *conflictPolicyOption) apply(c moveConfig) moveConfig {
	c.ConflictPolicy = o.policy
	return c
}

// WithConflictPolicy selects how existing target folders are handled. The default is ConflictError.
func WithConflictPolicy(policy ConflictPolicy) MoveOption {
	return &conflictPolicyOption{policy}
}

type dryRunOption struct{}

func (o *dryRunOption) apply(c moveConfig) moveConfig {
	c.DryRun = true
	return c
}

func WithDryRun() MoveOption {
	return &dryRunOption{}
}

type loggerOption struct {
	logger *logrus.Logger
}

func (o *loggerOption) apply(c moveConfig) moveConfig {
	c.logger = o.logger
	return c
}

// WithLogger sets the logger receiving move events. By default events are discarded.
func WithLogger(logger *logrus.Logger) MoveOption {
	return &loggerOption{logger}
}
