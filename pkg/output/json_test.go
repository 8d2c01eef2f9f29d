// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"bytes"
	"testing"

	"github.com/projectsorter/sorter/internal/detect"
	"github.com/stretchr/testify/require"
)

func TestJsonFormatter_Projects(t *testing.T) {
	projects := []detect.Project{
		{
			Type:          detect.JavaGradle,
			Path:          "/inbox/R&D <old>",
			Name:          "inventory",
			Version:       "2.3.1",
			DetectionRule: "Inferred by presence of: build.gradle",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&JsonFormatter{}).Format(projects, &buf, nil))

	require.JSONEq(t, `[
		{
			"type": "java-gradle",
			"path": "/inbox/R&D <old>",
			"name": "inventory",
			"version": "2.3.1",
			"detectionRule": "Inferred by presence of: build.gradle"
		}
	]`, buf.String())
	require.Contains(t, buf.String(), "R&D <old>")
	require.True(t, bytes.HasSuffix(buf.Bytes(), []byte("}\n]\n")))
}

func TestJsonFormatter_NilListIsEmptyArray(t *testing.T) {
	var projects []detect.Project

	var buf bytes.Buffer
	require.NoError(t, (&JsonFormatter{}).Format(projects, &buf, nil))
	require.Equal(t, "[]\n", buf.String())
}
