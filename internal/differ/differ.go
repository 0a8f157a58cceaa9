/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package differ computes the difference between a stack as cairn would
// deploy it and the stack as it currently exists in CloudFormation.
package differ

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"

	"github.com/cairnhq/cairn/internal/aws"
	"github.com/cairnhq/cairn/internal/cfnyaml"
	"github.com/cairnhq/cairn/internal/model"
	"github.com/cairnhq/cairn/internal/normalise"
)

// StackDiffer produces a StackDiff for a generated stack configuration and
// template body
type StackDiffer[D any] interface {
	Diff(ctx context.Context, config model.StackConfiguration, template string) (*model.StackDiff[D], error)
}

// deployedState captures what currently exists in CloudFormation for a stack
type deployedState struct {
	deployed bool
	config   model.StackConfiguration
	template any
}

func fetchDeployedState(ctx context.Context, ops aws.CloudFormationOperations, generated model.StackConfiguration, parser *cfnyaml.Parser) (*deployedState, error) {
	exists, err := ops.StackExists(ctx, generated.Name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &deployedState{}, nil
	}

	info, err := ops.DescribeStack(ctx, generated.Name)
	if err != nil {
		return nil, err
	}

	// A stack stuck in REVIEW_IN_PROGRESS has a change set but was never
	// launched, so there is nothing meaningful to diff against.
	if info.Stack.Status == aws.StackStatusReviewInProgress {
		return &deployedState{}, nil
	}

	parsed, err := parser.Parse([]byte(info.Template))
	if err != nil {
		return nil, fmt.Errorf("failed to parse deployed template for stack %s: %w", generated.Name, err)
	}

	return &deployedState{
		deployed: true,
		config: model.StackConfiguration{
			Name:         info.Stack.Name,
			Parameters:   info.Stack.Parameters,
			Tags:         info.Stack.Tags,
			Capabilities: info.Stack.Capabilities,
			// Dependencies are cairn-local ordering hints; CloudFormation
			// has no record of them, so they never contribute to the diff.
			Dependencies: generated.Dependencies,
		},
		template: normalise.Normalise(parsed),
	}, nil
}

// toJSONObject round-trips a value through JSON so both sides of a
// comparison use identical scalar types
func toJSONObject(value any) (map[string]any, error) {
	if value == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to serialise value for comparison: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("value is not a mapping: %w", err)
	}
	return m, nil
}

func compareObjects(deployed, generated any) (gojsondiff.Diff, map[string]any, error) {
	oldObj, err := toJSONObject(deployed)
	if err != nil {
		return nil, nil, err
	}
	newObj, err := toJSONObject(generated)
	if err != nil {
		return nil, nil, err
	}
	return gojsondiff.New().CompareObjects(oldObj, newObj), oldObj, nil
}

func parseGeneratedTemplate(parser *cfnyaml.Parser, template string) (any, error) {
	parsed, err := parser.Parse([]byte(template))
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated template: %w", err)
	}
	return normalise.Normalise(parsed), nil
}
