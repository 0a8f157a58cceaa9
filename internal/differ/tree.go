/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

package differ

import (
	"context"
	"fmt"
	"sort"

	"github.com/yudai/gojsondiff"

	"github.com/cairnhq/cairn/internal/aws"
	"github.com/cairnhq/cairn/internal/cfnyaml"
	"github.com/cairnhq/cairn/internal/diffwriter"
	"github.com/cairnhq/cairn/internal/model"
)

// TreeStackDiffer produces structural diffs grouped by kind of change,
// keyed by the path into the compared document
type TreeStackDiffer struct {
	ops    aws.CloudFormationOperations
	parser *cfnyaml.Parser
}

var _ StackDiffer[diffwriter.TreeDiff] = (*TreeStackDiffer)(nil)

// NewTreeStackDiffer creates a TreeStackDiffer backed by the given
// CloudFormation operations
func NewTreeStackDiffer(ops aws.CloudFormationOperations) *TreeStackDiffer {
	return &TreeStackDiffer{ops: ops, parser: cfnyaml.NewParser()}
}

func (d *TreeStackDiffer) Diff(ctx context.Context, config model.StackConfiguration, template string) (*model.StackDiff[diffwriter.TreeDiff], error) {
	generatedTemplate, err := parseGeneratedTemplate(d.parser, template)
	if err != nil {
		return nil, err
	}

	state, err := fetchDeployedState(ctx, d.ops, config, d.parser)
	if err != nil {
		return nil, err
	}

	result := &model.StackDiff[diffwriter.TreeDiff]{
		StackName:         config.Name,
		IsDeployed:        state.deployed,
		GeneratedConfig:   config,
		GeneratedTemplate: generatedTemplate,
		ConfigDiff:        diffwriter.TreeDiff{},
		TemplateDiff:      diffwriter.TreeDiff{},
	}

	// For a stack that does not exist yet the deployed state is empty, so
	// the whole generated stack shows up as a difference.
	configDiff, _, err := compareObjects(state.config.ToMap(), config.ToMap())
	if err != nil {
		return nil, err
	}
	result.ConfigDiff = flattenDeltas(configDiff)

	templateDiff, _, err := compareObjects(state.template, generatedTemplate)
	if err != nil {
		return nil, err
	}
	result.TemplateDiff = flattenDeltas(templateDiff)

	return result, nil
}

// treeAccumulator collects deltas into the categories exposed in a TreeDiff
type treeAccumulator struct {
	valuesChanged map[string]any
	dictAdded     []string
	dictRemoved   []string
	iterAdded     map[string]any
	iterRemoved   map[string]any
}

func flattenDeltas(diff gojsondiff.Diff) diffwriter.TreeDiff {
	if diff == nil || !diff.Modified() {
		return diffwriter.TreeDiff{}
	}

	acc := &treeAccumulator{
		valuesChanged: map[string]any{},
		iterAdded:     map[string]any{},
		iterRemoved:   map[string]any{},
	}
	acc.walk("root", diff.Deltas(), false)
	return acc.result()
}

func (a *treeAccumulator) walk(path string, deltas []gojsondiff.Delta, inArray bool) {
	for _, delta := range deltas {
		switch d := delta.(type) {
		case *gojsondiff.Object:
			a.walk(path+segment(d.Position), d.Deltas, false)
		case *gojsondiff.Array:
			a.walk(path+segment(d.Position), d.Deltas, true)
		case *gojsondiff.Modified:
			a.valuesChanged[path+segment(d.Position)] = map[string]any{
				"new_value": d.NewValue,
				"old_value": d.OldValue,
			}
		case *gojsondiff.TextDiff:
			a.valuesChanged[path+segment(d.Position)] = map[string]any{
				"new_value": d.NewValue,
				"old_value": d.OldValue,
			}
		case *gojsondiff.Added:
			p := path + segment(d.Position)
			if inArray {
				a.iterAdded[p] = d.Value
			} else {
				a.dictAdded = append(a.dictAdded, p)
			}
		case *gojsondiff.Deleted:
			p := path + segment(d.Position)
			if inArray {
				a.iterRemoved[p] = d.Value
			} else {
				a.dictRemoved = append(a.dictRemoved, p)
			}
		case *gojsondiff.Moved:
			a.iterRemoved[path+segment(d.PrePosition())] = d.Value
			a.iterAdded[path+segment(d.PostPosition())] = d.Value
		}
	}
}

func (a *treeAccumulator) result() diffwriter.TreeDiff {
	out := diffwriter.TreeDiff{}
	if len(a.valuesChanged) > 0 {
		out["values_changed"] = a.valuesChanged
	}
	if len(a.dictAdded) > 0 {
		sort.Strings(a.dictAdded)
		out["dictionary_item_added"] = toAnySlice(a.dictAdded)
	}
	if len(a.dictRemoved) > 0 {
		sort.Strings(a.dictRemoved)
		out["dictionary_item_removed"] = toAnySlice(a.dictRemoved)
	}
	if len(a.iterAdded) > 0 {
		out["iterable_item_added"] = a.iterAdded
	}
	if len(a.iterRemoved) > 0 {
		out["iterable_item_removed"] = a.iterRemoved
	}
	return out
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func segment(pos gojsondiff.Position) string {
	switch p := pos.(type) {
	case gojsondiff.Name:
		return fmt.Sprintf("['%s']", string(p))
	case gojsondiff.Index:
		return fmt.Sprintf("[%d]", int(p))
	default:
		return fmt.Sprintf("['%s']", pos.String())
	}
}
