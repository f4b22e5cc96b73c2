// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Table layout limits.
const (
	minColumnWidth  = 12
	maxObjectWidth  = 40
	maxScalarWidth  = 60
	columnSeparator = "  "
)

// field is one key of a JSON object, in document order.
type field struct {
	key   string
	value json.RawMessage
}

// writeTable renders a JSON array, or an object whose items field is an
// array, as aligned columns. Returns false when data has neither shape
// and the caller should fall back to JSON.
func (output *Output) writeTable(data []byte) (bool, error) {
	var rows []json.RawMessage
	var next string

	switch firstByte(data) {
	case '[':
		if err := json.Unmarshal(data, &rows); err != nil {
			return false, Internal("decoding table rows: %w", err)
		}
	case '{':
		var envelope struct {
			Items *[]json.RawMessage `json:"items"`
			Next  string             `json:"next"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil || envelope.Items == nil {
			return false, nil
		}
		rows, next = *envelope.Items, envelope.Next
	default:
		return false, nil
	}

	if err := output.renderRows(rows); err != nil {
		return true, err
	}
	if next != "" {
		hint := "Next page cursor: " + next
		if output.color {
			hint = output.faint.Render(hint)
		}
		fmt.Fprintf(output.stdout, "\n%s\n", hint)
	}
	return true, nil
}

func (output *Output) renderRows(rows []json.RawMessage) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(output.stdout, "(no items)")
		return err
	}

	// Columns come from the first row only.
	first, err := objectFields(rows[0])
	if err != nil {
		return Internal("decoding table row: %w", err)
	}
	keys := make([]string, len(first))
	widths := make([]int, len(first))
	for index, column := range first {
		keys[index] = column.key
		widths[index] = max(ansi.StringWidth(column.key), minColumnWidth)
	}

	cells := make([][]string, len(rows))
	for rowIndex, row := range rows {
		fields, err := objectFields(row)
		if err != nil {
			return Internal("decoding table row %d: %w", rowIndex, err)
		}
		values := make(map[string]json.RawMessage, len(fields))
		for _, field := range fields {
			values[field.key] = field.value
		}

		cells[rowIndex] = make([]string, len(keys))
		for column, key := range keys {
			cell := formatCell(values[key])
			cells[rowIndex][column] = cell
			widths[column] = max(widths[column], ansi.StringWidth(cell))
		}
	}

	header := make([]string, len(keys))
	separator := make([]string, len(keys))
	for column, key := range keys {
		header[column] = pad(key, widths[column])
		separator[column] = strings.Repeat("-", widths[column])
	}
	headerLine := strings.Join(header, columnSeparator)
	separatorLine := strings.Join(separator, columnSeparator)
	if output.color {
		headerLine = output.faint.Render(headerLine)
		separatorLine = output.faint.Render(separatorLine)
	}

	var buffer bytes.Buffer
	buffer.WriteString(headerLine + "\n")
	buffer.WriteString(separatorLine + "\n")
	for _, row := range cells {
		padded := make([]string, len(row))
		for column, cell := range row {
			padded[column] = pad(cell, widths[column])
		}
		buffer.WriteString(strings.Join(padded, columnSeparator) + "\n")
	}
	_, err = output.stdout.Write(buffer.Bytes())
	return err
}

// formatCell renders one value: null and missing as empty, objects and
// arrays as compact JSON, strings unquoted, other scalars verbatim.
func formatCell(value json.RawMessage) string {
	switch firstByte(value) {
	case 0, 'n':
		return ""
	case '{', '[':
		var compact bytes.Buffer
		if err := json.Compact(&compact, value); err != nil {
			return ansi.Truncate(string(value), maxObjectWidth, "")
		}
		return ansi.Truncate(compact.String(), maxObjectWidth, "")
	case '"':
		var text string
		if err := json.Unmarshal(value, &text); err == nil {
			return ansi.Truncate(singleLine(text), maxScalarWidth, "")
		}
	}
	return ansi.Truncate(string(value), maxScalarWidth, "")
}

// singleLine keeps multi-line strings from breaking row alignment.
func singleLine(text string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(text)
}

// pad right-pads text with spaces to width display columns.
func pad(text string, width int) string {
	if gap := width - ansi.StringWidth(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}

// objectFields returns the keys of a JSON object in document order.
// A row that is not an object becomes a single "value" column.
func objectFields(data json.RawMessage) ([]field, error) {
	if firstByte(data) != '{' {
		return []field{{key: "value", value: data}}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	var fields []field
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", token)
		}
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, field{key: key, value: value})
	}
	return fields, nil
}

// firstByte returns the first non-space byte of data, or 0 if empty.
func firstByte(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
