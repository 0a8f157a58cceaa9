/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cairnhq/cairn/internal/aws"
	"github.com/cairnhq/cairn/internal/config"
	"github.com/cairnhq/cairn/internal/resolve"
)

var (
	// configProvider and cfnOps can be injected for testing
	configProvider config.ConfigProvider
	cfnOps         aws.CloudFormationOperations
)

// SetConfigProvider allows injection of a config provider (for testing)
func SetConfigProvider(p config.ConfigProvider) {
	configProvider = p
}

// SetCloudFormationOperations allows injection of CloudFormation operations
// (for testing)
func SetCloudFormationOperations(ops aws.CloudFormationOperations) {
	cfnOps = ops
}

// createResolver creates a configuration provider and resolver from the
// --config flag
func createResolver(cmd *cobra.Command) (config.ConfigProvider, *resolve.StackResolver) {
	provider := configProvider
	if provider == nil {
		configFile, _ := cmd.Flags().GetString("config")
		provider = config.NewFileProvider(configFile)
	}
	return provider, resolve.NewStackResolver(provider)
}

// getCloudFormationOperations creates CloudFormation operations for the given
// context, honouring the --profile override
func getCloudFormationOperations(ctx context.Context, cmd *cobra.Command, contextConfig *config.ContextConfig) (aws.CloudFormationOperations, error) {
	if cfnOps != nil {
		return cfnOps, nil
	}

	cfg := aws.Config{}
	if contextConfig != nil {
		cfg.Region = contextConfig.Region
		cfg.Profile = contextConfig.Profile
	}
	if profile, _ := cmd.Flags().GetString("profile"); profile != "" {
		cfg.Profile = profile
	}

	client, err := aws.NewDefaultClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS client: %w", err)
	}
	return client.NewCloudFormationOperations(), nil
}

// setupVars assembles template variables from the --var-file and --var flags.
// Without --merge-vars, a later var file replaces a top-level key wholesale;
// with it, mappings are merged recursively. Individual --var values always
// win, and a dotted key addresses into nested mappings.
func setupVars(cmd *cobra.Command) (map[string]any, error) {
	varFiles, _ := cmd.Flags().GetStringArray("var-file")
	varFlags, _ := cmd.Flags().GetStringArray("var")
	mergeVars, _ := cmd.Flags().GetBool("merge-vars")

	result := map[string]any{}

	for _, file := range varFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read var file %s: %w", file, err)
		}
		var fileVars map[string]any
		if err := yaml.Unmarshal(data, &fileVars); err != nil {
			return nil, fmt.Errorf("failed to parse var file %s: %w", file, err)
		}

		if mergeVars {
			deepMerge(result, fileVars)
		} else {
			for key, value := range fileVars {
				if _, exists := result[key]; exists {
					log.Debugf("variable %s from %s replaces an earlier value", key, file)
				}
				result[key] = value
			}
		}
	}

	for _, variable := range varFlags {
		key, value, found := strings.Cut(variable, "=")
		if !found {
			return nil, fmt.Errorf("invalid --var %q, expected key=value", variable)
		}
		if strings.Contains(key, ".") {
			deepMerge(result, nestedValue(strings.Split(key, "."), value))
		} else {
			if _, exists := result[key]; exists {
				log.Debugf("variable %s overridden on the command line", key)
			}
			result[key] = value
		}
	}

	return result, nil
}

// deepMerge merges src into dst; mappings merge recursively, anything else
// in src wins
func deepMerge(dst, src map[string]any) {
	for key, srcValue := range src {
		if srcMap, srcOK := srcValue.(map[string]any); srcOK {
			if dstMap, dstOK := dst[key].(map[string]any); dstOK {
				deepMerge(dstMap, srcMap)
				continue
			}
		}
		dst[key] = srcValue
	}
}

// nestedValue builds a mapping chain for a dotted key path
func nestedValue(path []string, value any) map[string]any {
	if len(path) == 1 {
		return map[string]any{path[0]: value}
	}
	return map[string]any{path[0]: nestedValue(path[1:], value)}
}
