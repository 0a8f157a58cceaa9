/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

package aws

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// StackStatus represents the status of a CloudFormation stack
type StackStatus string

const (
	StackStatusCreateComplete     StackStatus = "CREATE_COMPLETE"
	StackStatusCreateInProgress   StackStatus = "CREATE_IN_PROGRESS"
	StackStatusCreateFailed       StackStatus = "CREATE_FAILED"
	StackStatusUpdateComplete     StackStatus = "UPDATE_COMPLETE"
	StackStatusUpdateInProgress   StackStatus = "UPDATE_IN_PROGRESS"
	StackStatusUpdateFailed       StackStatus = "UPDATE_FAILED"
	StackStatusDeleteComplete     StackStatus = "DELETE_COMPLETE"
	StackStatusDeleteInProgress   StackStatus = "DELETE_IN_PROGRESS"
	StackStatusDeleteFailed       StackStatus = "DELETE_FAILED"
	StackStatusRollbackComplete   StackStatus = "ROLLBACK_COMPLETE"
	StackStatusRollbackInProgress StackStatus = "ROLLBACK_IN_PROGRESS"
	StackStatusRollbackFailed     StackStatus = "ROLLBACK_FAILED"
	StackStatusReviewInProgress   StackStatus = "REVIEW_IN_PROGRESS"
)

// Stack represents a CloudFormation stack
type Stack struct {
	Name         string
	Status       StackStatus
	StatusRaw    types.StackStatus
	CreatedTime  time.Time
	UpdatedTime  *time.Time
	Description  string
	Parameters   map[string]string
	Outputs      map[string]string
	Tags         map[string]string
	Capabilities []string
}

// StackInfo combines stack metadata with its deployed template body
type StackInfo struct {
	Stack    *Stack
	Template string
}

// CloudFormationOperations defines the read operations cairn performs
// against CloudFormation
type CloudFormationOperations interface {
	GetStack(ctx context.Context, stackName string) (*Stack, error)
	ListStacks(ctx context.Context) ([]*Stack, error)
	StackExists(ctx context.Context, stackName string) (bool, error)
	GetTemplate(ctx context.Context, stackName string) (string, error)
	DescribeStack(ctx context.Context, stackName string) (*StackInfo, error)
}

// DefaultCloudFormationOperations implements CloudFormationOperations using
// the AWS SDK
type DefaultCloudFormationOperations struct {
	client CloudFormationClient
}

// NewDefaultCloudFormationOperations creates operations backed by the given
// client
func NewDefaultCloudFormationOperations(client CloudFormationClient) *DefaultCloudFormationOperations {
	return &DefaultCloudFormationOperations{client: client}
}

// GetStack retrieves information about a specific stack
func (cf *DefaultCloudFormationOperations) GetStack(ctx context.Context, stackName string) (*Stack, error) {
	result, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: &stackName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe stack %s: %w", stackName, err)
	}

	if len(result.Stacks) == 0 {
		return nil, fmt.Errorf("stack %s not found", stackName)
	}

	return stackFromAPI(result.Stacks[0]), nil
}

// ListStacks returns all stacks except those that have been deleted
func (cf *DefaultCloudFormationOperations) ListStacks(ctx context.Context) ([]*Stack, error) {
	var stacks []*Stack

	paginator := cloudformation.NewDescribeStacksPaginator(cf.client, &cloudformation.DescribeStacksInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list stacks: %w", err)
		}
		for _, s := range page.Stacks {
			if s.StackStatus == types.StackStatusDeleteComplete {
				continue
			}
			stacks = append(stacks, stackFromAPI(s))
		}
	}

	return stacks, nil
}

// StackExists checks whether a stack exists in any non-deleted state
func (cf *DefaultCloudFormationOperations) StackExists(ctx context.Context, stackName string) (bool, error) {
	_, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: &stackName,
	})
	if err != nil {
		if isStackNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if stack %s exists: %w", stackName, err)
	}
	return true, nil
}

// GetTemplate retrieves the deployed template body for a stack
func (cf *DefaultCloudFormationOperations) GetTemplate(ctx context.Context, stackName string) (string, error) {
	result, err := cf.client.GetTemplate(ctx, &cloudformation.GetTemplateInput{
		StackName: &stackName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get template for stack %s: %w", stackName, err)
	}
	if result.TemplateBody == nil {
		return "", nil
	}
	return *result.TemplateBody, nil
}

// DescribeStack returns a stack's metadata together with its template
func (cf *DefaultCloudFormationOperations) DescribeStack(ctx context.Context, stackName string) (*StackInfo, error) {
	stack, err := cf.GetStack(ctx, stackName)
	if err != nil {
		return nil, err
	}

	template, err := cf.GetTemplate(ctx, stackName)
	if err != nil {
		return nil, err
	}

	return &StackInfo{Stack: stack, Template: template}, nil
}

func stackFromAPI(s types.Stack) *Stack {
	stack := &Stack{
		Status:     StackStatus(s.StackStatus),
		StatusRaw:  s.StackStatus,
		Parameters: make(map[string]string),
		Outputs:    make(map[string]string),
		Tags:       make(map[string]string),
	}
	if s.StackName != nil {
		stack.Name = *s.StackName
	}
	if s.Description != nil {
		stack.Description = *s.Description
	}
	if s.CreationTime != nil {
		stack.CreatedTime = *s.CreationTime
	}
	stack.UpdatedTime = s.LastUpdatedTime

	for _, p := range s.Parameters {
		if p.ParameterKey != nil && p.ParameterValue != nil {
			stack.Parameters[*p.ParameterKey] = *p.ParameterValue
		}
	}
	for _, o := range s.Outputs {
		if o.OutputKey != nil && o.OutputValue != nil {
			stack.Outputs[*o.OutputKey] = *o.OutputValue
		}
	}
	for _, t := range s.Tags {
		if t.Key != nil && t.Value != nil {
			stack.Tags[*t.Key] = *t.Value
		}
	}
	for _, c := range s.Capabilities {
		stack.Capabilities = append(stack.Capabilities, string(c))
	}

	return stack
}

func isStackNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "ValidationError")
}
