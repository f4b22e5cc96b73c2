// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/understory-cli/understory/lib/config"
	"github.com/understory-cli/understory/lib/understory"
)

// Output renders command results and errors.
type Output struct {
	format string
	color  bool
	stdout io.Writer
	stderr io.Writer

	faint    lipgloss.Style
	errStyle lipgloss.Style
}

// NewOutput returns an Output writing results to stdout and errors to
// stderr. format is one of the config.Format values; color enables
// styling and JSON highlighting.
func NewOutput(stdout, stderr io.Writer, format string, color bool) *Output {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI256
	}
	// SetColorProfile pins the profile; otherwise the renderer
	// re-detects from the environment and drops colors in pipes.
	renderer := lipgloss.NewRenderer(stdout, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return &Output{
		format:   format,
		color:    color,
		stdout:   stdout,
		stderr:   stderr,
		faint:    renderer.NewStyle().Faint(true),
		errStyle: renderer.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Format returns the output format.
func (output *Output) Format() string { return output.format }

// Write renders value to stdout. Nil slices render as empty lists.
func (output *Output) Write(value any) error {
	data, err := toJSON(normalizeNilSlice(value))
	if err != nil {
		return Internal("encoding output: %w", err)
	}

	switch output.format {
	case config.FormatYAML:
		return output.writeYAML(data)
	case config.FormatTable:
		handled, err := output.writeTable(data)
		if handled || err != nil {
			return err
		}
	}
	return output.writeJSON(data)
}

// writeJSON writes data indented, highlighted when color is on.
func (output *Output) writeJSON(data []byte) error {
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return Internal("indenting output: %w", err)
	}
	indented.WriteByte('\n')

	if output.color {
		var highlighted bytes.Buffer
		if err := quick.Highlight(&highlighted, indented.String(), "json", "terminal256", "monokai"); err == nil {
			_, err := output.stdout.Write(highlighted.Bytes())
			return err
		}
	}
	_, err := output.stdout.Write(indented.Bytes())
	return err
}

// writeYAML re-encodes JSON as block-style YAML, keeping key order.
func (output *Output) writeYAML(data []byte) error {
	// JSON is a subset of YAML, so the node tree carries the original
	// key order; clearing the flow and quote styles turns it into
	// ordinary block YAML.
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return Internal("converting output to YAML: %w", err)
	}
	clearStyle(&document)

	encoder := yaml.NewEncoder(output.stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(&document); err != nil {
		return err
	}
	return encoder.Close()
}

func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

// WriteError renders err to stderr. JSON output gets an object with
// the message and its category; text output gets an "Error:" line.
func (output *Output) WriteError(err error) {
	message := ErrorMessage(err)

	if output.format == config.FormatJSON {
		data, _ := toJSON(struct {
			Error    string        `json:"error"`
			Category ErrorCategory `json:"category"`
		}{message, Categorize(err)})
		fmt.Fprintf(output.stderr, "%s\n", data)
		return
	}

	line := "Error: " + message
	if output.color {
		line = output.errStyle.Render(line)
	}
	fmt.Fprintln(output.stderr, line)
}

// ErrorMessage returns the text shown for err. API errors include the
// response body on the following lines: indented JSON, or the text the
// server sent when it was not JSON.
func ErrorMessage(err error) string {
	var apiError *understory.APIError
	if !errors.As(err, &apiError) || apiError.Body == nil || apiError.Body == "" {
		return err.Error()
	}
	if text, ok := apiError.Body.(string); ok {
		return err.Error() + "\n" + text
	}
	body, marshalErr := json.MarshalIndent(apiError.Body, "", "  ")
	if marshalErr != nil {
		return err.Error()
	}
	return err.Error() + "\n" + string(body)
}

// toJSON encodes value without HTML escaping. json.RawMessage values
// pass through unchanged.
func toJSON(value any) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

// normalizeNilSlice returns an empty slice of the same type if value
// is a nil slice, so that JSON serialization produces [] instead of
// null. Returns value unchanged for all other types.
func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() && v.Type() != reflect.TypeOf(json.RawMessage(nil)) {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
