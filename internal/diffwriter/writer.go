/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package diffwriter renders a StackDiff as an aligned multi-section report.
// The writer is generic over the diff representation; the concrete strategy
// supplies the two operations that depend on it.
package diffwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/cairnhq/cairn/internal/model"
	"github.com/cairnhq/cairn/internal/writer"
)

// Fixed-width separators used while accumulating lines; they are stretched to
// the widest content line before the report is flushed.
var (
	starBar = strings.Repeat("*", 80)
	lineBar = strings.Repeat("-", 80)
)

// Strategy supplies the representation-specific diff operations
type Strategy[D any] interface {
	// HasDifference reports whether diff holds any change
	HasDifference(diff D) bool

	// Dump renders diff as a displayable string
	Dump(diff D) (string, error)
}

// DiffWriter accumulates a report for one StackDiff and flushes it to an
// output sink. A writer owns its line buffer exclusively; do not share one
// across concurrent renders.
type DiffWriter[D any] struct {
	diff     *model.StackDiff[D]
	out      io.Writer
	format   writer.Format
	strategy Strategy[D]
	lines    []string
}

// New creates a DiffWriter with an explicit strategy. Most callers want
// NewTreeDiffWriter or NewLineDiffWriter instead.
func New[D any](diff *model.StackDiff[D], out io.Writer, format writer.Format, strategy Strategy[D]) *DiffWriter[D] {
	return &DiffWriter[D]{
		diff:     diff,
		out:      out,
		format:   format,
		strategy: strategy,
	}
}

// Write renders the report and flushes it to the output sink
func (w *DiffWriter[D]) Write() error {
	w.output(starBar)

	switch {
	case !w.hasDifference():
		w.output(fmt.Sprintf("No difference to deployed stack %s", w.diff.StackName))

	case !w.diff.IsDeployed:
		w.output(fmt.Sprintf("--> Difference detected for stack %s!", w.diff.StackName))
		if err := w.writeNewStackDetails(); err != nil {
			return err
		}

	default:
		w.output(fmt.Sprintf("--> Difference detected for stack %s!", w.diff.StackName))
		w.output(lineBar)
		if err := w.writeConfigDifference(); err != nil {
			return err
		}
		w.output(lineBar)
		if err := w.writeTemplateDifference(); err != nil {
			return err
		}
	}

	return w.flush()
}

func (w *DiffWriter[D]) hasDifference() bool {
	return w.strategy.HasDifference(w.diff.ConfigDiff) ||
		w.strategy.HasDifference(w.diff.TemplateDiff)
}

// writeNewStackDetails dumps the full generated config and template; there
// are no diff sections for a stack that does not exist yet
func (w *DiffWriter[D]) writeNewStackDetails() error {
	configText, err := w.dumpValue(w.diff.GeneratedConfig.ToMap())
	if err != nil {
		return err
	}
	templateText, err := w.dumpValue(w.diff.GeneratedTemplate)
	if err != nil {
		return err
	}

	w.output(
		"This stack is not deployed yet!",
		lineBar,
		"New Config:",
		"",
		configText,
		lineBar,
		"New Template:",
		"",
		templateText,
	)
	return nil
}

func (w *DiffWriter[D]) writeConfigDifference() error {
	if !w.strategy.HasDifference(w.diff.ConfigDiff) {
		w.output("No stack config difference")
		return nil
	}
	text, err := w.strategy.Dump(w.diff.ConfigDiff)
	if err != nil {
		return err
	}
	w.output("Config difference:", "", text)
	return nil
}

func (w *DiffWriter[D]) writeTemplateDifference() error {
	if !w.strategy.HasDifference(w.diff.TemplateDiff) {
		w.output("No template difference")
		return nil
	}
	text, err := w.strategy.Dump(w.diff.TemplateDiff)
	if err != nil {
		return err
	}
	w.output("Template difference:", "", text)
	return nil
}

func (w *DiffWriter[D]) output(lines ...string) {
	for _, line := range lines {
		w.lines = append(w.lines, line+"\n")
	}
}

// dumpValue dumps a whole value in the selected format. There is no viable
// way to dump a full template as "text", so anything that is not JSON is
// rendered as YAML.
func (w *DiffWriter[D]) dumpValue(value any) (string, error) {
	if w.format == writer.FormatJSON {
		return writer.DumpJSON(value)
	}
	return writer.DumpYAML(value)
}

// maxLineLength is the longest physical line in the report, ignoring the
// separators themselves (they take the computed width rather than set it)
func (w *DiffWriter[D]) maxLineLength() int {
	longest := 0
	for _, line := range w.lines {
		if strings.Contains(line, starBar) || strings.Contains(line, lineBar) {
			continue
		}
		for _, physical := range strings.Split(strings.TrimSuffix(line, "\n"), "\n") {
			if len(physical) > longest {
				longest = len(physical)
			}
		}
	}
	return longest
}

// flush widens every separator to the report's maximum line length and
// writes the buffer to the output sink
func (w *DiffWriter[D]) flush() error {
	width := w.maxLineLength()
	fullStarBar := strings.Repeat("*", width)
	fullLineBar := strings.Repeat("-", width)

	for _, line := range w.lines {
		if strings.Contains(line, starBar) {
			line = strings.ReplaceAll(line, starBar, fullStarBar)
		} else if strings.Contains(line, lineBar) {
			line = strings.ReplaceAll(line, lineBar, fullLineBar)
		}
		if _, err := io.WriteString(w.out, line); err != nil {
			return err
		}
	}
	return nil
}
