/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package diffwriter

import (
	"io"
	"strings"

	"github.com/cairnhq/cairn/internal/model"
	"github.com/cairnhq/cairn/internal/writer"
)

// LineDiff is an ordered sequence of textual diff lines, unified-diff style
type LineDiff []string

// NewLineDiffWriter creates a DiffWriter for StackDiffs carrying line diffs
func NewLineDiffWriter(diff *model.StackDiff[LineDiff], out io.Writer, format writer.Format) *DiffWriter[LineDiff] {
	return New(diff, out, format, lineStrategy{})
}

type lineStrategy struct{}

func (lineStrategy) HasDifference(diff LineDiff) bool {
	return len(diff) > 0
}

// Dump joins the lines unchanged; a line diff accounts for the output format
// when it is computed, not here
func (lineStrategy) Dump(diff LineDiff) (string, error) {
	return strings.Join(diff, "\n"), nil
}
