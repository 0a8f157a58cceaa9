/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"context"
	"fmt"
	"sort"

	"github.com/cairnhq/cairn/internal/config"
	"github.com/cairnhq/cairn/internal/model"
)

// ResolvedStack is a stack configuration with its template rendered and all
// inheritance applied
type ResolvedStack struct {
	Config       model.StackConfiguration
	TemplateBody string
}

// ResolvedStacks is a collection of resolved stacks for one context
type ResolvedStacks struct {
	Context string
	Stacks  []*ResolvedStack
	// Order lists stack names such that every stack appears after the
	// stacks it depends on
	Order []string
}

// StackResolver turns configuration into diff-ready stacks
type StackResolver struct {
	configProvider config.ConfigProvider
	fileResolver   FileSystemResolver
	processor      TemplateProcessor
}

// NewStackResolver creates a stack resolver backed by the given config
// provider
func NewStackResolver(configProvider config.ConfigProvider) *StackResolver {
	r := &StackResolver{
		configProvider: configProvider,
		fileResolver:   &DefaultFileSystemResolver{},
		processor:      NewCfnTemplateProcessor(),
	}
	if fp, ok := configProvider.(*config.FileProvider); ok {
		r.fileResolver = &DefaultFileSystemResolver{BaseResolver: fp.ResolvePath}
	}
	return r
}

// SetFileSystemResolver injects a custom file system resolver (for testing)
func (r *StackResolver) SetFileSystemResolver(fileResolver FileSystemResolver) {
	r.fileResolver = fileResolver
}

// ResolveStack resolves a single stack for a context. vars are user-supplied
// template variables; they take precedence over the context's vars.
func (r *StackResolver) ResolveStack(ctx context.Context, contextName, stackName string, vars map[string]any) (*ResolvedStack, error) {
	cfg, err := r.configProvider.LoadConfig(ctx, contextName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	stackConfig, err := r.configProvider.GetStack(stackName, contextName)
	if err != nil {
		return nil, fmt.Errorf("failed to get stack %s: %w", stackName, err)
	}

	raw, err := r.fileResolver.Resolve(stackConfig.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	templateBody, err := r.processor.Process(raw, templateData(cfg, stackName, vars))
	if err != nil {
		return nil, fmt.Errorf("failed to render template for stack %s: %w", stackName, err)
	}

	return &ResolvedStack{
		Config: model.StackConfiguration{
			Name:         stackConfig.Name,
			Parameters:   stackConfig.Parameters,
			Tags:         mergeTags(cfg.Tags, cfg.Context.Tags, stackConfig.Tags),
			Capabilities: stackConfig.Capabilities,
			Dependencies: stackConfig.Dependencies,
		},
		TemplateBody: templateBody,
	}, nil
}

// Resolve resolves multiple stacks and calculates their dependency order
func (r *StackResolver) Resolve(ctx context.Context, contextName string, stackNames []string, vars map[string]any) (*ResolvedStacks, error) {
	var resolved []*ResolvedStack
	for _, stackName := range stackNames {
		stack, err := r.ResolveStack(ctx, contextName, stackName, vars)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve stack %s: %w", stackName, err)
		}
		resolved = append(resolved, stack)
	}

	order, err := dependencyOrder(resolved)
	if err != nil {
		return nil, err
	}

	return &ResolvedStacks{
		Context: contextName,
		Stacks:  resolved,
		Order:   order,
	}, nil
}

// templateData builds the data passed to the template engine. User vars win
// over context vars on key collisions.
func templateData(cfg *config.Config, stackName string, vars map[string]any) map[string]any {
	merged := make(map[string]any, len(cfg.Context.Vars)+len(vars))
	for k, v := range cfg.Context.Vars {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}

	return map[string]any{
		"Var":       merged,
		"StackName": stackName,
		"Context": map[string]any{
			"Name":    cfg.Context.Name,
			"Account": cfg.Context.Account,
			"Region":  cfg.Context.Region,
		},
		"Project": cfg.Project,
	}
}

// mergeTags layers tag maps; later maps win on key collisions
func mergeTags(layers ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			result[k] = v
		}
	}
	return result
}

// DependencyOrder orders stack configurations such that every stack appears
// after the stacks it depends on
func DependencyOrder(stacks []*config.StackConfig) ([]string, error) {
	deps := make(map[string][]string, len(stacks))
	for _, stack := range stacks {
		deps[stack.Name] = stack.Dependencies
	}
	return topologicalOrder(deps)
}

func dependencyOrder(stacks []*ResolvedStack) ([]string, error) {
	deps := make(map[string][]string, len(stacks))
	for _, stack := range stacks {
		deps[stack.Config.Name] = stack.Config.Dependencies
	}
	return topologicalOrder(deps)
}

// topologicalOrder sorts stack names by their declared dependencies using
// Kahn's algorithm. Dependencies on stacks outside the set are ignored.
func topologicalOrder(deps map[string][]string) ([]string, error) {
	inDegree := make(map[string]int)
	adjList := make(map[string][]string)
	for name := range deps {
		inDegree[name] = 0
	}
	for name, stackDeps := range deps {
		for _, dep := range stackDeps {
			if _, known := deps[dep]; known {
				adjList[dep] = append(adjList[dep], name)
				inDegree[name]++
			}
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		neighbours := adjList[current]
		sort.Strings(neighbours)
		for _, neighbour := range neighbours {
			inDegree[neighbour]--
			if inDegree[neighbour] == 0 {
				queue = append(queue, neighbour)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(deps) {
		return nil, fmt.Errorf("circular dependency detected in stacks")
	}

	return result, nil
}
