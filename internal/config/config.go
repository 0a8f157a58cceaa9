/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package config loads cairn.yaml and resolves stack configuration for a
// context, applying context overrides on top of stack defaults.
package config

import (
	"context"
)

// ConfigProvider defines the interface for loading and managing configuration
type ConfigProvider interface {
	// LoadConfig loads configuration for a specific context
	LoadConfig(ctx context.Context, context string) (*Config, error)

	// ListContexts returns all available contexts in the configuration
	ListContexts() ([]string, error)

	// GetStack returns stack configuration for a specific stack and context
	GetStack(stackName, context string) (*StackConfig, error)

	// ListStacks returns all available stack names for a specific context
	ListStacks(context string) ([]string, error)

	// Validate checks the configuration for consistency and errors
	Validate() error
}

// Config represents the resolved configuration for a specific context
type Config struct {
	Project string
	Region  string
	Tags    map[string]string
	Context *ContextConfig
	Stacks  []*StackConfig
}

// ContextConfig represents resolved context-specific configuration
type ContextConfig struct {
	Name    string
	Account string
	Region  string
	Profile string
	Tags    map[string]string
	Vars    map[string]any
}

// StackConfig represents resolved stack configuration with context overrides
// applied
type StackConfig struct {
	Name         string
	Template     string
	Parameters   map[string]string
	Tags         map[string]string
	Dependencies []string
	Capabilities []string
}
