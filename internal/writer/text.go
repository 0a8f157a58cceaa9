/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package writer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
)

// renderText picks a textual shape for value, in priority order: a flat list
// becomes one element per line, a list of mappings becomes a table with
// key-derived headers, a flat mapping becomes a key/value table, and anything
// else falls back to YAML.
func (w *ConsoleWriter) renderText(value any) (string, error) {
	switch v := value.(type) {
	case []any:
		if allPrimitive(v) {
			lines := make([]string, len(v))
			for i, item := range v {
				lines[i] = scalarString(item)
			}
			return strings.Join(lines, "\n"), nil
		}
		if rows, ok := mappingRows(v); ok {
			return renderRowTable(rows), nil
		}
	case map[string]any:
		if allPrimitiveValues(v) {
			return renderKeyValueTable(v), nil
		}
	}
	return DumpYAML(value)
}

func renderRowTable(rows []map[string]any) string {
	// Headers are the sorted union of row keys, so logically identical
	// inputs always render identically
	seen := make(map[string]bool)
	var headers []string
	for _, row := range rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				headers = append(headers, key)
			}
		}
	}
	sort.Strings(headers)

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cell := make([]string, len(headers))
		for j, header := range headers {
			if value, ok := row[header]; ok {
				cell[j] = cellString(value)
			}
		}
		cells[i] = cell
	}
	return renderTable(headers, cells)
}

func renderKeyValueTable(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	cells := make([][]string, len(keys))
	for i, key := range keys {
		cells[i] = []string{key, scalarString(m[key])}
	}
	return renderTable([]string{"key", "value"}, cells)
}

func renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Align(lipgloss.Left)
	cellStyle := lipgloss.NewStyle().Align(lipgloss.Left)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col > 0 {
				style = style.PaddingLeft(2)
			}
			return style
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String()
}

func allPrimitive(items []any) bool {
	for _, item := range items {
		if !isPrimitive(item) {
			return false
		}
	}
	return true
}

func allPrimitiveValues(m map[string]any) bool {
	for _, value := range m {
		if !isPrimitive(value) {
			return false
		}
	}
	return true
}

func mappingRows(items []any) ([]map[string]any, bool) {
	rows := make([]map[string]any, len(items))
	for i, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		rows[i] = row
	}
	return rows, true
}

func isPrimitive(value any) bool {
	switch value.(type) {
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// cellString renders a table cell; composite values fall back to compact JSON
func cellString(value any) string {
	if isPrimitive(value) {
		return scalarString(value)
	}
	data, err := json.Marshal(jsonSafe(value))
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(data)
}
