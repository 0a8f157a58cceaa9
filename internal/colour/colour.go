/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package colour wraps CloudFormation stack statuses embedded in rendered
// text with terminal styling.
package colour

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// The closed vocabulary of statuses the colourer recognises.
var stackStatuses = []string{
	"CREATE_IN_PROGRESS",
	"CREATE_COMPLETE",
	"CREATE_FAILED",
	"DELETE_IN_PROGRESS",
	"DELETE_COMPLETE",
	"DELETE_FAILED",
	"UPDATE_IN_PROGRESS",
	"UPDATE_COMPLETE",
	"UPDATE_FAILED",
	"UPDATE_ROLLBACK_IN_PROGRESS",
	"UPDATE_ROLLBACK_COMPLETE",
	"UPDATE_ROLLBACK_FAILED",
	"ROLLBACK_IN_PROGRESS",
	"ROLLBACK_COMPLETE",
	"ROLLBACK_FAILED",
	"REVIEW_IN_PROGRESS",
	"IMPORT_IN_PROGRESS",
	"IMPORT_COMPLETE",
	"IMPORT_ROLLBACK_IN_PROGRESS",
	"IMPORT_ROLLBACK_COMPLETE",
	"IMPORT_ROLLBACK_FAILED",
}

// StatusColourer styles every stack status occurring in a piece of text
type StatusColourer struct {
	styles  map[string]lipgloss.Style
	pattern *regexp.Regexp
}

// NewStatusColourer builds the status style table. Traditional ANSI diff
// colours: green for settled success, red for failure, yellow for transitions
// and rollbacks, grey for a stack that no longer exists.
func NewStatusColourer() *StatusColourer {
	success := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failure := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	pending := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	gone := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	styles := make(map[string]lipgloss.Style, len(stackStatuses))
	for _, status := range stackStatuses {
		switch {
		case status == "DELETE_COMPLETE":
			styles[status] = gone
		case strings.HasSuffix(status, "_FAILED"):
			styles[status] = failure
		case strings.HasSuffix(status, "_IN_PROGRESS"):
			styles[status] = pending
		case strings.Contains(status, "ROLLBACK"):
			styles[status] = pending
		default:
			styles[status] = success
		}
	}

	// Longest alternative first so composite statuses match whole
	sorted := make([]string, len(stackStatuses))
	copy(sorted, stackStatuses)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	return &StatusColourer{
		styles:  styles,
		pattern: regexp.MustCompile(strings.Join(sorted, "|")),
	}
}

// Colour returns text with every recognised status wrapped in its style
func (c *StatusColourer) Colour(text string) string {
	return c.pattern.ReplaceAllStringFunc(text, func(status string) string {
		return c.styles[status].Render(status)
	})
}

// ShouldUseColour determines if colour output should be used
func ShouldUseColour() bool {
	// Check NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return false
	}

	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	// Character device means stdout is a terminal
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
