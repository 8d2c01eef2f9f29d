// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func TestTableFormatter(t *testing.T) {
	rows := []row{
		{Name: "api", Version: "1.0"},
		{Name: "frontend", Version: "12.4.1"},
	}

	var buf bytes.Buffer
	formatter := &TableFormatter{}
	err := formatter.Format(rows, &buf, TableFormatterOptions{
		Columns: []Column{
			{Heading: "NAME", ValueTemplate: "{{.Name}}"},
			{Heading: "VERSION", ValueTemplate: "{{.Version}}"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "NAME      VERSION\napi       1.0\nfrontend  12.4.1\n", buf.String())
}

func TestTableFormatter_Errors(t *testing.T) {
	formatter := &TableFormatter{}
	columns := TableFormatterOptions{Columns: []Column{{Heading: "NAME", ValueTemplate: "{{.Name}}"}}}

	require.Error(t, formatter.Format([]row{}, &bytes.Buffer{}, nil))
	require.Error(t, formatter.Format([]row{}, &bytes.Buffer{}, TableFormatterOptions{}))
	require.Error(t, formatter.Format(row{}, &bytes.Buffer{}, columns))
	require.Error(t, formatter.Format([]row{{}}, &bytes.Buffer{}, TableFormatterOptions{
		Columns: []Column{{Heading: "BAD", ValueTemplate: "{{.Missing}}"}},
	}))
}

func TestJsonFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := (&JsonFormatter{}).Format([]row{{Name: "api", Version: "1.0"}}, &buf, nil)
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"api","version":"1.0"}]`, buf.String())
}

func TestGetFormatter(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "scan"}
		return AddOutputParam(cmd, []Format{TableFormat, JsonFormat}, TableFormat)
	}

	cmd := newCmd()
	formatter, err := GetFormatter(cmd)
	require.NoError(t, err)
	require.Equal(t, TableFormat, formatter.Kind())

	cmd = newCmd()
	require.NoError(t, cmd.Flags().Set("output", " JSON "))
	formatter, err = GetFormatter(cmd)
	require.NoError(t, err)
	require.Equal(t, JsonFormat, formatter.Kind())

	cmd = newCmd()
	require.NoError(t, cmd.Flags().Set("output", "none"))
	_, err = GetFormatter(cmd)
	require.Error(t, err)
}

func TestColors(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	require.Equal(t, "ok", WithSuccessFormat("ok"))
	require.Equal(t, "moved 2", WithHighLightFormat("moved %d", 2))
	require.Equal(t, "`sorter`", WithBackticks("sorter"))
}
