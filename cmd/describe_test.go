/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cairnhq/cairn/internal/aws"
)

func TestDescribeCmd_Structure(t *testing.T) {
	assert.Equal(t, "describe [stack-name]", describeCmd.Use)
	require.NotNil(t, describeCmd.Flags().Lookup("context"))
}

func TestDescribeCmd_RendersStackDetails(t *testing.T) {
	configPath := writeProject(t)

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ops := &aws.MockCloudFormationOperations{}
	ops.On("DescribeStack", mock.Anything, "vpc").Return(&aws.StackInfo{
		Stack: &aws.Stack{
			Name:        "vpc",
			Status:      aws.StackStatusCreateComplete,
			CreatedTime: created,
			Parameters:  map[string]string{"CidrBlock": "10.0.0.0/16"},
			Tags:        map[string]string{},
			Outputs:     map[string]string{"VpcId": "vpc-123"},
		},
		Template: renderedTemplate,
	}, nil)
	SetCloudFormationOperations(ops)
	defer SetCloudFormationOperations(nil)

	output, err := executeCommand(t, "describe", "vpc",
		"--context", "dev", "--config", configPath, "-o", "text")

	require.NoError(t, err)
	assert.Contains(t, output, "name: vpc")
	assert.Contains(t, output, "status: CREATE_COMPLETE")
	assert.Contains(t, output, "VpcId: vpc-123")
	assert.Contains(t, output, "CidrBlock: 10.0.0.0/16")
}

func TestDescribeCmd_JSONOutput(t *testing.T) {
	configPath := writeProject(t)

	ops := &aws.MockCloudFormationOperations{}
	ops.On("DescribeStack", mock.Anything, "vpc").Return(&aws.StackInfo{
		Stack: &aws.Stack{
			Name:       "vpc",
			Status:     aws.StackStatusUpdateComplete,
			Parameters: map[string]string{},
			Tags:       map[string]string{},
			Outputs:    map[string]string{},
		},
	}, nil)
	SetCloudFormationOperations(ops)
	defer SetCloudFormationOperations(nil)

	output, err := executeCommand(t, "describe", "vpc",
		"--context", "dev", "--config", configPath, "-o", "json")

	require.NoError(t, err)
	assert.Contains(t, output, `"name": "vpc"`)
	assert.Contains(t, output, `"status": "UPDATE_COMPLETE"`)
}

func TestDescribeCmd_PropagatesErrors(t *testing.T) {
	configPath := writeProject(t)

	ops := &aws.MockCloudFormationOperations{}
	ops.On("DescribeStack", mock.Anything, "vpc").Return(nil, errors.New("access denied"))
	SetCloudFormationOperations(ops)
	defer SetCloudFormationOperations(nil)

	_, err := executeCommand(t, "describe", "vpc",
		"--context", "dev", "--config", configPath, "-o", "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to describe stack vpc")
}
