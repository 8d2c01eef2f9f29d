package relocate

import "github.com/projectsorter/sorter/internal/detect"

// Action is the outcome of relocating a single project.
type Action string

const (
	ActionMoved       Action = "moved"
	ActionRenamed     Action = "renamed"
	ActionOverwritten Action = "overwritten"
	ActionSkipped     Action = "skipped"
	ActionInPlace     Action = "in-place"
	ActionFailed      Action = "failed"
)

// Result describes what happened, or would happen in a dry run, to one project.
type Result struct {
	Action  Action             `json:"action"`
	Type    detect.ProjectType `json:"type"`
	Name    string             `json:"name"`
	Version string             `json:"version"`
	From    string             `json:"from"`
	To      string             `json:"to,omitempty"`
	Reason  string             `json:"reason,omitempty"`
	DryRun  bool               `json:"dryRun,omitempty"`
}

func newResult(project detect.Project, action Action) Result {
	return Result{
		Action:  action,
		Type:    project.Type,
		Name:    project.Name,
		Version: project.Version,
		From:    project.Path,
	}
}
