// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package detect

import "fmt"

// ProjectType is the ecosystem a detected project belongs to.
type ProjectType int

const (
	JavaMaven ProjectType = iota
	JavaGradle
	JavaNative
	JavaScript
	TypeScript
	Python
	C
	CSharp
	CPP
)

var allProjectTypes = []ProjectType{
	JavaMaven,
	JavaGradle,
	JavaNative,
	JavaScript,
	TypeScript,
	Python,
	C,
	CSharp,
	CPP,
}

// AllProjectTypes returns every known project type, in declaration order.
func AllProjectTypes() []ProjectType {
	return append([]ProjectType(nil), allProjectTypes...)
}

// String returns the human readable name of the project type.
func (t ProjectType) String() string {
	switch t {
	case JavaMaven:
		return "Java (Maven)"
	case JavaGradle:
		return "Java (Gradle)"
	case JavaNative:
		return "Java (Native)"
	case JavaScript:
		return "JavaScript"
	case TypeScript:
		return "TypeScript"
	case Python:
		return "Python"
	case C:
		return "C"
	case CSharp:
		return "C#"
	case CPP:
		return "C++"
	}

	return fmt.Sprintf("ProjectType(%d)", int(t))
}

// Tag returns the stable identifier used for the project type in configuration and structured output.
func (t ProjectType) Tag() string {
	switch t {
	case JavaMaven:
		return "java-maven"
	case JavaGradle:
		return "java-gradle"
	case JavaNative:
		return "java-native"
	case JavaScript:
		return "javascript"
	case TypeScript:
		return "typescript"
	case Python:
		return "python"
	case C:
		return "c"
	case CSharp:
		return "csharp"
	case CPP:
		return "cpp"
	}

	return ""
}

// ParseProjectType returns the project type identified by tag.
func ParseProjectType(tag string) (ProjectType, error) {
	for _, t := range allProjectTypes {
		if t.Tag() == tag {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown project type '%s'", tag)
}

func (t ProjectType) MarshalText() ([]byte, error) {
	tag := t.Tag()
	if tag == "" {
		return nil, fmt.Errorf("unknown project type %d", int(t))
	}

	return []byte(tag), nil
}

func (t *ProjectType) UnmarshalText(text []byte) error {
	parsed, err := ParseProjectType(string(text))
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
