/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

// StackConfiguration is the locally generated configuration for a stack,
// assembled from cairn.yaml and any user variables
type StackConfiguration struct {
	Name         string
	Parameters   map[string]string
	Tags         map[string]string
	Capabilities []string
	Dependencies []string
}

// ToMap returns the configuration as a plain mapping of its fields, the shape
// serialisers can always handle natively. Nil collections come back empty so
// an unset field compares equal to an explicitly empty one.
func (c StackConfiguration) ToMap() map[string]any {
	parameters := c.Parameters
	if parameters == nil {
		parameters = map[string]string{}
	}
	tags := c.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	capabilities := c.Capabilities
	if capabilities == nil {
		capabilities = []string{}
	}
	dependencies := c.Dependencies
	if dependencies == nil {
		dependencies = []string{}
	}
	return map[string]any{
		"name":         c.Name,
		"parameters":   parameters,
		"tags":         tags,
		"capabilities": capabilities,
		"dependencies": dependencies,
	}
}

// StackDiff holds the two-part diff between a locally generated stack and its
// deployed counterpart. D is the diff representation produced by a differ; the
// renderer never inspects it beyond the strategy operations it is constructed
// with. StackDiff values are built once and consumed read-only.
type StackDiff[D any] struct {
	StackName         string
	TemplateDiff      D
	ConfigDiff        D
	IsDeployed        bool
	GeneratedConfig   StackConfiguration
	GeneratedTemplate any
}
