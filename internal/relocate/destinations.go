// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package relocate

import (
	"fmt"
	"path/filepath"

	"github.com/drone/envsubst"
	"github.com/projectsorter/sorter/internal/detect"
	"github.com/projectsorter/sorter/pkg/config"
)

// Destinations holds the destination folder of each project type. An empty value means projects of that type
// are left untouched.
type Destinations struct {
	JavaMaven  string `json:"java-maven,omitempty"`
	JavaGradle string `json:"java-gradle,omitempty"`
	JavaNative string `json:"java-native,omitempty"`
	JavaScript string `json:"javascript,omitempty"`
	TypeScript string `json:"typescript,omitempty"`
	Python     string `json:"python,omitempty"`
	C          string `json:"c,omitempty"`
	CSharp     string `json:"csharp,omitempty"`
	CPP        string `json:"cpp,omitempty"`
}

// For returns the destination folder for projects of type t.
func (d Destinations) For(t detect.ProjectType) string {
	if field := d.field(t); field != nil {
		return *field
	}

	return ""
}

// Set changes the destination folder for projects of type t.
func (d *Destinations) Set(t detect.ProjectType, path string) error {
	field := d.field(t)
	if field == nil {
		return fmt.Errorf("unknown project type %s", t)
	}

	*field = path
	return nil
}

// IsEmpty reports whether no destination is configured at all.
func (d Destinations) IsEmpty() bool {
	return d == Destinations{}
}

func (d *Destinations) field(t detect.ProjectType) *string {
	switch t {
	case detect.JavaMaven:
		return &d.JavaMaven
	case detect.JavaGradle:
		return &d.JavaGradle
	case detect.JavaNative:
		return &d.JavaNative
	case detect.JavaScript:
		return &d.JavaScript
	case detect.TypeScript:
		return &d.TypeScript
	case detect.Python:
		return &d.Python
	case detect.C:
		return &d.C
	case detect.CSharp:
		return &d.CSharp
	case detect.CPP:
		return &d.CPP
	}

	return nil
}

// DestinationsFromConfig reads the "destinations" section of c. Keys must be project type tags, values folder
// paths. Variable references such as $HOME are expanded from the environment and relative paths are resolved
// against the current working directory.
func DestinationsFromConfig(c config.Config) (Destinations, error) {
	var destinations Destinations

	value, has := c.Get(config.DestinationsPath)
	if !has {
		return destinations, nil
	}

	section, ok := value.(map[string]any)
	if !ok {
		return destinations, fmt.Errorf("config '%s' must be an object", config.DestinationsPath)
	}

	for tag, raw := range section {
		projectType, err := detect.ParseProjectType(tag)
		if err != nil {
			return destinations, fmt.Errorf("config '%s': %w", config.DestinationsPath, err)
		}

		path, ok := raw.(string)
		if !ok {
			return destinations, fmt.Errorf("config '%s.%s' must be a string", config.DestinationsPath, tag)
		}

		if path != "" {
			if path, err = envsubst.EvalEnv(path); err != nil {
				return destinations, fmt.Errorf("expanding destination for %s: %w", tag, err)
			}
			if path, err = filepath.Abs(path); err != nil {
				return destinations, fmt.Errorf("resolving destination for %s: %w", tag, err)
			}
		}

		if err := destinations.Set(projectType, path); err != nil {
			return destinations, err
		}
	}

	return destinations, nil
}
