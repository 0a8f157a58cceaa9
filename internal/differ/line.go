/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

package differ

import (
	"context"
	"strings"

	"github.com/yudai/gojsondiff/formatter"

	"github.com/cairnhq/cairn/internal/aws"
	"github.com/cairnhq/cairn/internal/cfnyaml"
	"github.com/cairnhq/cairn/internal/diffwriter"
	"github.com/cairnhq/cairn/internal/model"
)

// LineStackDiffer produces unified-style line diffs of the full compared
// documents, with changed lines marked
type LineStackDiffer struct {
	ops    aws.CloudFormationOperations
	parser *cfnyaml.Parser
}

var _ StackDiffer[diffwriter.LineDiff] = (*LineStackDiffer)(nil)

// NewLineStackDiffer creates a LineStackDiffer backed by the given
// CloudFormation operations
func NewLineStackDiffer(ops aws.CloudFormationOperations) *LineStackDiffer {
	return &LineStackDiffer{ops: ops, parser: cfnyaml.NewParser()}
}

func (d *LineStackDiffer) Diff(ctx context.Context, config model.StackConfiguration, template string) (*model.StackDiff[diffwriter.LineDiff], error) {
	generatedTemplate, err := parseGeneratedTemplate(d.parser, template)
	if err != nil {
		return nil, err
	}

	state, err := fetchDeployedState(ctx, d.ops, config, d.parser)
	if err != nil {
		return nil, err
	}

	result := &model.StackDiff[diffwriter.LineDiff]{
		StackName:         config.Name,
		IsDeployed:        state.deployed,
		GeneratedConfig:   config,
		GeneratedTemplate: generatedTemplate,
		ConfigDiff:        diffwriter.LineDiff{},
		TemplateDiff:      diffwriter.LineDiff{},
	}

	// For a stack that does not exist yet the deployed state is empty, so
	// the whole generated stack shows up as a difference.
	result.ConfigDiff, err = d.lineDiff(state.config.ToMap(), config.ToMap())
	if err != nil {
		return nil, err
	}

	result.TemplateDiff, err = d.lineDiff(state.template, generatedTemplate)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (d *LineStackDiffer) lineDiff(deployed, generated any) (diffwriter.LineDiff, error) {
	diff, oldObj, err := compareObjects(deployed, generated)
	if err != nil {
		return nil, err
	}
	if !diff.Modified() {
		return diffwriter.LineDiff{}, nil
	}

	asciiFormatter := formatter.NewAsciiFormatter(oldObj, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       false,
	})
	rendered, err := asciiFormatter.Format(diff)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
	return diffwriter.LineDiff(lines), nil
}
