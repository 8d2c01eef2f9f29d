// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package detect

const (
	DefaultProjectName    = "Unknown Project"
	DefaultProjectVersion = "Unknown Version"
)

// Project is a directory classified as the root of a single project.
type Project struct {
	Type ProjectType `json:"type"`
	// Absolute path of the project root.
	Path    string `json:"path"`
	Name    string `json:"name"`
	Version string `json:"version"`
	// The marker that caused the classification.
	DetectionRule string `json:"detectionRule"`
}

// Registry is the ordered result of one detection run. Projects are kept in discovery order.
type Registry struct {
	projects []Project
}

func (r *Registry) Append(p Project) {
	r.projects = append(r.projects, p)
}

// Projects returns a copy of the detected projects, in discovery order.
func (r *Registry) Projects() []Project {
	return append([]Project{}, r.projects...)
}

func (r *Registry) Len() int {
	return len(r.projects)
}
