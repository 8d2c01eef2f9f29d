// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package detect

import "regexp"

var (
	mavenArtifactIdRegex = regexp.MustCompile(`<artifactId>(.*?)</artifactId>`)
	mavenVersionRegex    = regexp.MustCompile(`<version>(.*?)</version>`)
)

// parseMaven reads the name and version of a pom.xml.
//
// The first <artifactId> and <version> elements win, wherever they appear. A pom that declares
// dependencies before its own coordinates reports the dependency's values.
func parseMaven(content []byte) (string, string, error) {
	return firstSubmatch(mavenArtifactIdRegex, content, DefaultProjectName),
		firstSubmatch(mavenVersionRegex, content, DefaultProjectVersion),
		nil
}

func firstSubmatch(re *regexp.Regexp, content []byte, fallback string) string {
	match := re.FindSubmatch(content)
	if match == nil || len(match[1]) == 0 {
		return fallback
	}

	return string(match[1])
}
