/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package normalise rewrites nested values so that any string which is itself
// stringified structured data is replaced by its parsed form. CloudFormation
// API responses embed whole documents as strings; normalising first means the
// serialisers render them as structure rather than opaque blobs.
package normalise

import (
	"github.com/cairnhq/cairn/internal/cfnyaml"
)

// Normalise walks value and replaces every string that fully decodes as
// structured data with the decoded result. Mappings keep their keys,
// sequences keep their order, and anything that fails to decode is returned
// untouched. Normalise never fails.
func Normalise(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = Normalise(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalise(item)
		}
		return out
	case string:
		if decoded, ok := tryDecode(v); ok {
			return decoded
		}
		return v
	default:
		return value
	}
}

// tryDecode attempts to parse s as YAML extended with the intrinsic-function
// tags, a strict superset of plain YAML and JSON. The decoded result is
// returned as-is rather than re-normalised: decoding already yields fully
// typed data.
func tryDecode(s string) (any, bool) {
	decoded, err := cfnyaml.Unmarshal([]byte(s))
	if err != nil {
		return nil, false
	}
	return decoded, true
}
