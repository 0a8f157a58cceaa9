/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package diffwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cairnhq/cairn/internal/model"
	"github.com/cairnhq/cairn/internal/writer"
)

// TreeDiff is a nested, path-keyed description of additions, removals and
// changes between two structured documents. The differ prefixes every path
// key with rootPrefix; the prefix is stripped before display.
type TreeDiff map[string]any

const rootPrefix = "root"

// NewTreeDiffWriter creates a DiffWriter for StackDiffs carrying tree diffs
func NewTreeDiffWriter(diff *model.StackDiff[TreeDiff], out io.Writer, format writer.Format) *DiffWriter[TreeDiff] {
	return New(diff, out, format, treeStrategy{format: format})
}

type treeStrategy struct {
	format writer.Format
}

func (s treeStrategy) HasDifference(diff TreeDiff) bool {
	return len(diff) > 0
}

// Dump serialises the diff deterministically. JSON comes first because its
// converters guarantee every value is serialisable; YAML output is produced
// by re-parsing that JSON, so the YAML encoder is never asked to handle a
// value type it cannot represent natively.
func (s treeStrategy) Dump(diff TreeDiff) (string, error) {
	stripped := stripRootPrefix(map[string]any(diff))

	data, err := json.MarshalIndent(jsonify(stripped), "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to serialise diff: %w", err)
	}
	if s.format == writer.FormatJSON {
		return string(data), nil
	}

	var loaded any
	if err := json.Unmarshal(data, &loaded); err != nil {
		return "", fmt.Errorf("failed to serialise diff: %w", err)
	}
	dumped, err := writer.DumpYAML(loaded)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(dumped, "---\n"), nil
}

// stripRootPrefix removes the differ's root marker from every mapping key,
// recursively, so the displayed paths read naturally
func stripRootPrefix(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[strings.TrimPrefix(key, rootPrefix)] = stripRootPrefix(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = stripRootPrefix(item)
		}
		return out
	default:
		return value
	}
}

// jsonify rewrites a diff value into JSON-native form: dates become ISO-8601
// strings, stack configurations become plain mappings of their fields, and
// anything else without a native representation uses its string form
func jsonify(value any) any {
	switch v := value.(type) {
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = jsonify(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = jsonify(item)
		}
		return out
	case map[string]string, []string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	case model.StackConfiguration:
		return jsonify(v.ToMap())
	default:
		return fmt.Sprint(v)
	}
}
