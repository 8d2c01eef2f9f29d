// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package detect

import "regexp"

var (
	// project 'name' / project "name"; project(':core') references are not declarations.
	gradleProjectRegex = regexp.MustCompile(`project\s*['"](.*?)['"]`)
	// version 'x' / version "x" / version = "x"
	gradleVersionRegex = regexp.MustCompile(`version\s*=?\s*['"](.*?)['"]`)
)

// parseGradle reads the name and version of a build.gradle or build.gradle.kts file.
func parseGradle(content []byte) (string, string, error) {
	return firstSubmatch(gradleProjectRegex, content, DefaultProjectName),
		firstSubmatch(gradleVersionRegex, content, DefaultProjectVersion),
		nil
}
