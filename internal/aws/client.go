/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package aws wraps the CloudFormation API surface cairn needs to read
// deployed stack state.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
)

// Config holds configuration for creating an AWS client
type Config struct {
	Region  string
	Profile string
}

// DefaultClient provides a high-level interface for AWS operations
type DefaultClient struct {
	config aws.Config
	cfn    *cloudformation.Client
}

// NewDefaultClient creates a new AWS client with the specified configuration
func NewDefaultClient(ctx context.Context, cfg Config) (*DefaultClient, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &DefaultClient{
		config: awsCfg,
		cfn:    cloudformation.NewFromConfig(awsCfg),
	}, nil
}

// NewCloudFormationOperations returns the CloudFormation operations backed by
// this client
func (c *DefaultClient) NewCloudFormationOperations() CloudFormationOperations {
	return &DefaultCloudFormationOperations{client: c.cfn}
}

// Region returns the configured AWS region
func (c *DefaultClient) Region() string {
	return c.config.Region
}
