// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
)

// JsonFormatter writes reports as indented JSON, one document per call.
//
// Project paths and names are written as they are: characters such as '&' or '<' are not escaped. A nil list
// is written as an empty array so "no projects found" is still a list for consumers.
type JsonFormatter struct {
}

func (f *JsonFormatter) Kind() Format {
	return JsonFormat
}

func (f *JsonFormatter) Format(obj interface{}, writer io.Writer, _ interface{}) error {
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Slice && v.IsNil() {
		obj = []any{}
	}

	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(obj); err != nil {
		return fmt.Errorf("writing json output: %w", err)
	}

	return nil
}

var _ Formatter = (*JsonFormatter)(nil)
