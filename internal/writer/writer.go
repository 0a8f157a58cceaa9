/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package writer renders arbitrary structured values (API responses, diffs,
// stack metadata) as text, JSON, or YAML for console output.
package writer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cairnhq/cairn/internal/normalise"
)

// Colourer wraps recognised status tokens in terminal styling. The writer
// treats it as an opaque post-processing capability.
type Colourer interface {
	Colour(text string) string
}

// ConsoleWriter normalises values and renders them in a fixed output format.
// A nil colourer leaves rendered text unstyled.
type ConsoleWriter struct {
	format   Format
	out      io.Writer
	colourer Colourer
}

// NewConsoleWriter creates a writer rendering to out in the given format
func NewConsoleWriter(format Format, out io.Writer) *ConsoleWriter {
	return &ConsoleWriter{format: format, out: out}
}

// SetColourer injects the colourisation capability applied to rendered output
func (w *ConsoleWriter) SetColourer(colourer Colourer) {
	w.colourer = colourer
}

// Write renders value and writes it to the output stream with a trailing
// newline
func (w *ConsoleWriter) Write(value any) error {
	rendered, err := w.Render(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, rendered)
	return err
}

// Render normalises value and returns its string form in the writer's format
func (w *ConsoleWriter) Render(value any) (string, error) {
	prepared := normalise.Normalise(value)

	var rendered string
	var err error
	switch w.format {
	case FormatJSON:
		rendered, err = DumpJSON(prepared)
	case FormatYAML:
		rendered, err = DumpYAML(prepared)
	default:
		rendered, err = w.renderText(prepared)
	}
	if err != nil {
		return "", err
	}

	if w.colourer != nil {
		rendered = w.colourer.Colour(rendered)
	}
	return rendered, nil
}

// DumpJSON renders value as canonical JSON: sorted keys, 4-space indentation,
// values without a native JSON representation rendered via their string form
func DumpJSON(value any) (string, error) {
	data, err := json.MarshalIndent(jsonSafe(value), "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to render JSON: %w", err)
	}
	return string(data), nil
}

// DumpYAML renders value in block style with an explicit document start
func DumpYAML(value any) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("failed to render YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to render YAML: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// jsonSafe rewrites value so encoding/json can always serialise it: dates
// become ISO-8601 strings and anything else without a native representation
// falls back to its string form
func jsonSafe(value any) any {
	switch v := value.(type) {
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = jsonSafe(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = jsonSafe(item)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
