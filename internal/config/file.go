/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// rawConfig represents the cairn.yaml file structure before context
// resolution
type rawConfig struct {
	Project  string                 `yaml:"project"`
	Region   string                 `yaml:"region"`
	Tags     map[string]string      `yaml:"tags"`
	Contexts map[string]*rawContext `yaml:"contexts"`
	Stacks   map[string]*rawStack   `yaml:"stacks"`
}

type rawContext struct {
	Account string            `yaml:"account"`
	Region  string            `yaml:"region"`
	Profile string            `yaml:"profile"`
	Tags    map[string]string `yaml:"tags"`
	Vars    map[string]any    `yaml:"vars"`
}

type rawStack struct {
	Template     string                  `yaml:"template"`
	Parameters   map[string]string       `yaml:"parameters"`
	Tags         map[string]string       `yaml:"tags"`
	Dependencies []string                `yaml:"depends_on"`
	Capabilities []string                `yaml:"capabilities"`
	Contexts     map[string]*rawOverride `yaml:"contexts"`
}

type rawOverride struct {
	Parameters   map[string]string `yaml:"parameters"`
	Tags         map[string]string `yaml:"tags"`
	Dependencies []string          `yaml:"depends_on"`
	Capabilities []string          `yaml:"capabilities"`
}

// FileProvider implements ConfigProvider by reading from a YAML file
type FileProvider struct {
	filename string
	raw      *rawConfig
}

var _ ConfigProvider = (*FileProvider)(nil)

// NewFileProvider creates a file-based ConfigProvider for the given filename
func NewFileProvider(filename string) *FileProvider {
	return &FileProvider{filename: filename}
}

// LoadConfig loads and resolves configuration for the specified context
func (fp *FileProvider) LoadConfig(ctx context.Context, contextName string) (*Config, error) {
	if err := fp.ensureLoaded(); err != nil {
		return nil, err
	}

	raw, exists := fp.raw.Contexts[contextName]
	if !exists {
		return nil, fmt.Errorf("context '%s' not found in configuration", contextName)
	}

	stacks := make([]*StackConfig, 0, len(fp.raw.Stacks))
	for _, name := range fp.stackNames() {
		stacks = append(stacks, fp.resolveStack(name, fp.raw.Stacks[name], contextName))
	}

	return &Config{
		Project: fp.raw.Project,
		Region:  fp.raw.Region,
		Tags:    copyStringMap(fp.raw.Tags),
		Context: fp.resolveContext(contextName, raw),
		Stacks:  stacks,
	}, nil
}

// ListContexts returns all available contexts in the configuration
func (fp *FileProvider) ListContexts() ([]string, error) {
	if err := fp.ensureLoaded(); err != nil {
		return nil, err
	}

	contexts := make([]string, 0, len(fp.raw.Contexts))
	for name := range fp.raw.Contexts {
		contexts = append(contexts, name)
	}
	sort.Strings(contexts)

	return contexts, nil
}

// ListStacks returns all available stack names for a specific context
func (fp *FileProvider) ListStacks(contextName string) ([]string, error) {
	if err := fp.ensureLoaded(); err != nil {
		return nil, err
	}

	if _, exists := fp.raw.Contexts[contextName]; !exists {
		return nil, fmt.Errorf("context '%s' not found in configuration", contextName)
	}

	return fp.stackNames(), nil
}

// GetStack returns stack configuration for a specific stack and context
func (fp *FileProvider) GetStack(stackName, contextName string) (*StackConfig, error) {
	if err := fp.ensureLoaded(); err != nil {
		return nil, err
	}

	raw, exists := fp.raw.Stacks[stackName]
	if !exists {
		return nil, fmt.Errorf("stack '%s' not found in configuration", stackName)
	}

	return fp.resolveStack(stackName, raw, contextName), nil
}

// Validate checks the configuration for consistency and errors
func (fp *FileProvider) Validate() error {
	if err := fp.ensureLoaded(); err != nil {
		return err
	}

	for _, name := range fp.stackNames() {
		stack := fp.raw.Stacks[name]
		for contextName := range stack.Contexts {
			if _, exists := fp.raw.Contexts[contextName]; !exists {
				return fmt.Errorf("stack '%s' references undefined context '%s'", name, contextName)
			}
		}
		if stack.Template != "" {
			templatePath := fp.ResolvePath(stack.Template)
			if _, err := os.Stat(templatePath); err != nil && os.IsNotExist(err) {
				return fmt.Errorf("template file not found for stack '%s': %s", name, templatePath)
			}
		}
	}

	return nil
}

// ResolvePath resolves a path from the configuration relative to the config
// file directory
func (fp *FileProvider) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(fp.filename), path)
}

func (fp *FileProvider) ensureLoaded() error {
	if fp.raw != nil {
		return nil
	}

	data, err := os.ReadFile(fp.filename)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", fp.filename, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML config file '%s': %w", fp.filename, err)
	}

	fp.raw = &raw
	return nil
}

func (fp *FileProvider) stackNames() []string {
	names := make([]string, 0, len(fp.raw.Stacks))
	for name := range fp.raw.Stacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (fp *FileProvider) resolveContext(name string, raw *rawContext) *ContextConfig {
	resolved := &ContextConfig{
		Name:    name,
		Account: raw.Account,
		Region:  raw.Region,
		Profile: raw.Profile,
		Tags:    copyStringMap(raw.Tags),
		Vars:    raw.Vars,
	}

	if resolved.Region == "" {
		resolved.Region = fp.raw.Region
	}

	// Global tags apply unless the context sets the same key
	if fp.raw.Tags != nil {
		if resolved.Tags == nil {
			resolved.Tags = make(map[string]string)
		}
		for k, v := range fp.raw.Tags {
			if _, exists := resolved.Tags[k]; !exists {
				resolved.Tags[k] = v
			}
		}
	}

	return resolved
}

func (fp *FileProvider) resolveStack(name string, raw *rawStack, contextName string) *StackConfig {
	resolved := &StackConfig{
		Name:         name,
		Template:     raw.Template,
		Parameters:   copyStringMap(raw.Parameters),
		Tags:         copyStringMap(raw.Tags),
		Dependencies: copyStringSlice(raw.Dependencies),
		Capabilities: copyStringSlice(raw.Capabilities),
	}

	override, exists := raw.Contexts[contextName]
	if !exists {
		return resolved
	}

	if override.Parameters != nil {
		if resolved.Parameters == nil {
			resolved.Parameters = make(map[string]string)
		}
		for k, v := range override.Parameters {
			resolved.Parameters[k] = v
		}
	}
	if override.Tags != nil {
		if resolved.Tags == nil {
			resolved.Tags = make(map[string]string)
		}
		for k, v := range override.Tags {
			resolved.Tags[k] = v
		}
	}
	if override.Dependencies != nil {
		resolved.Dependencies = copyStringSlice(override.Dependencies)
	}
	if override.Capabilities != nil {
		resolved.Capabilities = copyStringSlice(override.Capabilities)
	}

	return resolved
}

func copyStringMap(source map[string]string) map[string]string {
	if source == nil {
		return nil
	}
	out := make(map[string]string, len(source))
	for k, v := range source {
		out[k] = v
	}
	return out
}

func copyStringSlice(source []string) []string {
	if source == nil {
		return nil
	}
	out := make([]string, len(source))
	copy(out, source)
	return out
}
