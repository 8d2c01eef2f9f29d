// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/projectsorter/sorter/internal"
	"github.com/projectsorter/sorter/internal/detect"
	"github.com/projectsorter/sorter/internal/relocate"
	"github.com/projectsorter/sorter/internal/terminal"
	"github.com/projectsorter/sorter/pkg/osutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	root       string
	configFile string
}

func newTestEnv(t *testing.T) *testEnv {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	dir := t.TempDir()
	env := &testEnv{
		root:       filepath.Join(dir, "inbox"),
		configFile: filepath.Join(dir, "config", "config.json"),
	}

	writeProject(t, env.root, "api/pom.xml", "<project><artifactId>api</artifactId><version>1.0</version></project>")
	writeProject(t, env.root, "scripts/tool/requirements.txt", "")
	writeProject(t, env.root, "node_modules/dep/package.json", `{"name":"dep"}`)

	return env
}

func (e *testEnv) execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--config", e.configFile))

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestScan_Json(t *testing.T) {
	env := newTestEnv(t)

	stdout, stderr, err := env.execute(t, "", "scan", "-p", env.root, "-o", "json")
	require.NoError(t, err)

	var projects []detect.Project
	require.NoError(t, json.Unmarshal([]byte(stdout), &projects))
	require.Equal(t, []detect.Project{
		{
			Type:          detect.JavaMaven,
			Path:          filepath.Join(env.root, "api"),
			Name:          "api",
			Version:       "1.0",
			DetectionRule: "Inferred by presence of: pom.xml",
		},
		{
			Type:          detect.Python,
			Path:          filepath.Join(env.root, "scripts", "tool"),
			Name:          detect.DefaultProjectName,
			Version:       detect.DefaultProjectVersion,
			DetectionRule: "Inferred by presence of: requirements.txt",
		},
	}, projects)

	require.Contains(t, stderr, "Ignoring folder")
}

func TestScan_JsonEmpty(t *testing.T) {
	env := newTestEnv(t)
	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.MkdirAll(empty, osutil.PermissionDirectory))

	stdout, _, err := env.execute(t, "", "scan", "-p", empty, "-o", "json")
	require.NoError(t, err)
	require.Equal(t, "[]\n", stdout)
}

func TestScan_LogFile(t *testing.T) {
	env := newTestEnv(t)
	logFile := filepath.Join(t.TempDir(), "logs", "sorter.log")

	_, _, err := env.execute(t, "", "scan", "-p", env.root, "-o", "json", "--log-file", logFile)
	require.NoError(t, err)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(content), `"msg":"Ignoring folder: `)
	require.Contains(t, string(content), "Project (Java (Maven)) detected in:")
}

func TestScan_LogFileFromConfig(t *testing.T) {
	env := newTestEnv(t)
	logFile := filepath.Join(t.TempDir(), "sorter.log")

	_, _, err := env.execute(t, "", "config", "set", "log.file", logFile)
	require.NoError(t, err)

	_, _, err = env.execute(t, "", "scan", "-p", env.root)
	require.NoError(t, err)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(content), "Project (Python) detected in:")
}

func TestScan_Table(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.execute(t, "", "scan", "-p", env.root, "--type", "python")
	require.NoError(t, err)
	require.Contains(t, stdout, "TYPE")
	require.Contains(t, stdout, "Python")
	require.NotContains(t, stdout, "Java (Maven)")
}

func TestScan_Exclude(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.execute(t, "", "config", "set", "scan.exclude", `["scripts"]`)
	require.NoError(t, err)

	stdout, _, err := env.execute(t, "", "scan", "-p", env.root, "-o", "json")
	require.NoError(t, err)

	var projects []detect.Project
	require.NoError(t, json.Unmarshal([]byte(stdout), &projects))
	require.Len(t, projects, 1)
	require.Equal(t, "api", projects[0].Name)
}

func TestScan_Errors(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.execute(t, "", "scan", "-p", filepath.Join(env.root, "missing"))
	require.Error(t, err)

	var suggestionErr *internal.ErrorWithSuggestion
	require.True(t, errors.As(err, &suggestionErr))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = env.execute(t, "", "scan", "-p", env.root, "--type", "cobol")
	require.True(t, errors.As(err, &suggestionErr))

	_, _, err = env.execute(t, "", "scan", "-p", env.root, "-o", "yaml")
	require.Error(t, err)
}

func TestSort_NoDestinations(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.execute(t, "", "sort", "-p", env.root)
	require.Error(t, err)

	var suggestionErr *internal.ErrorWithSuggestion
	require.True(t, errors.As(err, &suggestionErr))
	require.Contains(t, suggestionErr.Suggestion, "sorter config init")
}

func TestSort(t *testing.T) {
	env := newTestEnv(t)
	pythonDir := filepath.Join(filepath.Dir(env.root), "python")

	_, _, err := env.execute(t, "", "config", "set", "destinations.python", pythonDir)
	require.NoError(t, err)

	stdout, _, err := env.execute(t, "", "sort", "-p", env.root, "--dry-run")
	require.NoError(t, err)
	require.Contains(t, stdout, "Dry run: 1 of 2 project(s) would be moved.")
	require.DirExists(t, filepath.Join(env.root, "scripts", "tool"))

	stdout, _, err = env.execute(t, "", "sort", "-p", env.root, "-o", "json")
	require.NoError(t, err)

	var results []relocate.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)
	require.Equal(t, relocate.ActionSkipped, results[0].Action)
	require.Equal(t, relocate.ActionMoved, results[1].Action)
	require.Equal(t, filepath.Join(pythonDir, "tool"), results[1].To)

	require.FileExists(t, filepath.Join(pythonDir, "tool", "requirements.txt"))
	require.NoDirExists(t, filepath.Join(env.root, "scripts", "tool"))
	require.DirExists(t, filepath.Join(env.root, "api"))
}

func TestSort_Conflict(t *testing.T) {
	env := newTestEnv(t)
	mavenDir := filepath.Join(filepath.Dir(env.root), "maven")
	require.NoError(t, os.MkdirAll(filepath.Join(mavenDir, "api"), osutil.PermissionDirectory))

	_, _, err := env.execute(t, "", "config", "set", "destinations.java-maven", mavenDir)
	require.NoError(t, err)

	_, _, err = env.execute(t, "", "sort", "-p", env.root)
	require.ErrorContains(t, err, "1 project(s) could not be moved")

	_, _, err = env.execute(t, "", "sort", "-p", env.root, "--on-conflict", "rename")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(mavenDir, "api-1", "pom.xml"))

	_, _, err = env.execute(t, "", "sort", "-p", env.root, "--on-conflict", "merge")
	require.Error(t, err)
}

func TestConfig(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.execute(t, "", "config", "set", "move.conflictPolicy", "Skip")
	require.NoError(t, err)
	_, _, err = env.execute(t, "", "config", "set", "scan.followSymlinks", "true")
	require.NoError(t, err)

	stdout, _, err := env.execute(t, "", "config", "get", "move.conflictPolicy")
	require.NoError(t, err)
	require.JSONEq(t, `"skip"`, stdout)

	stdout, _, err = env.execute(t, "", "config", "list")
	require.NoError(t, err)
	require.JSONEq(t, `{"move":{"conflictPolicy":"skip"},"scan":{"followSymlinks":true}}`, stdout)

	_, _, err = env.execute(t, "", "config", "unset", "move")
	require.NoError(t, err)

	_, _, err = env.execute(t, "", "config", "get", "move.conflictPolicy")
	require.Error(t, err)

	_, _, err = env.execute(t, "", "config", "set", "destinations.cobol", "/src")
	require.Error(t, err)

	_, _, err = env.execute(t, "", "config", "set", "move.conflictPolicy", "merge")
	require.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	t.Setenv(terminal.ForceTtyEnvVar, "false")
	env := newTestEnv(t)

	// One answer per project type, in declaration order, then the destination and the policy.
	answers := []string{"y"}
	for i := 0; i < len(detect.AllProjectTypes())-1; i++ {
		answers = append(answers, "n")
	}
	answers = append(answers, "/dst/maven", "rename")

	stdout, _, err := env.execute(t, strings.Join(answers, "\n")+"\n", "config", "init")
	require.NoError(t, err)
	require.Contains(t, stdout, "Settings saved to")

	stdout, _, err = env.execute(t, "", "config", "list")
	require.NoError(t, err)
	require.JSONEq(t, `{"destinations":{"java-maven":"/dst/maven"},"move":{"conflictPolicy":"rename"}}`, stdout)
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.execute(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "sorter version 0.0.0-dev.0")

	stdout, _, err = env.execute(t, "", "version", "-o", "json")
	require.NoError(t, err)
	require.Contains(t, stdout, `"version": "0.0.0-dev.0"`)
}

func writeProject(t *testing.T, root string, rel string, content string) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), osutil.PermissionDirectory))
	require.NoError(t, os.WriteFile(path, []byte(content), osutil.PermissionFile))
}
