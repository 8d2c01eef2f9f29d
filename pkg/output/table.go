// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
	"text/template"
)

// Column is a single column of a table. ValueTemplate is a text/template evaluated against each row.
type Column struct {
	Heading       string
	ValueTemplate string
}

type TableFormatterOptions struct {
	Columns []Column
}

type TableFormatter struct {
}

func (f *TableFormatter) Kind() Format {
	return TableFormat
}

// Format writes obj, a slice, as a table with one row per element.
func (f *TableFormatter) Format(obj interface{}, writer io.Writer, opts interface{}) error {
	options, ok := opts.(TableFormatterOptions)
	if !ok {
		return errors.New("invalid formatter options, TableFormatterOptions expected")
	}

	if len(options.Columns) == 0 {
		return errors.New("no columns were defined, table format is not supported for this command")
	}

	rows := reflect.ValueOf(obj)
	if rows.Kind() != reflect.Slice && rows.Kind() != reflect.Array {
		return fmt.Errorf("table format requires a slice, got %T", obj)
	}

	headings := make([]string, len(options.Columns))
	templates := make([]*template.Template, len(options.Columns))
	for i, column := range options.Columns {
		headings[i] = column.Heading

		t, err := template.New(column.Heading).Parse(column.ValueTemplate)
		if err != nil {
			return fmt.Errorf("parsing template for column %s: %w", column.Heading, err)
		}
		templates[i] = t
	}

	tabs := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tabs, strings.Join(headings, "\t")); err != nil {
		return err
	}

	var cell strings.Builder
	for i := 0; i < rows.Len(); i++ {
		row := rows.Index(i).Interface()
		cells := make([]string, len(templates))

		for j, t := range templates {
			cell.Reset()
			if err := t.Execute(&cell, row); err != nil {
				return fmt.Errorf("rendering column %s: %w", options.Columns[j].Heading, err)
			}
			cells[j] = cell.String()
		}

		if _, err := fmt.Fprintln(tabs, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}

	return tabs.Flush()
}

var _ Formatter = (*TableFormatter)(nil)
