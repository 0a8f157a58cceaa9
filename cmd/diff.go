/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cairnhq/cairn/internal/differ"
	"github.com/cairnhq/cairn/internal/diffwriter"
	"github.com/cairnhq/cairn/internal/writer"
)

var (
	diffContextName string
	diffType        string

	// differs can be injected for testing
	treeDiffer differ.StackDiffer[diffwriter.TreeDiff]
	lineDiffer differ.StackDiffer[diffwriter.LineDiff]
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff [stack-name]",
	Short: "Show differences between a deployed stack and local configuration",
	Long: `Compare the currently deployed CloudFormation stack with your local
configuration.

The comparison covers the stack configuration (parameters, tags, capabilities)
and the rendered template. With --diff-type tree the differences are grouped
by kind of change and keyed by path into the document; with --diff-type line
the full documents are shown with changed lines marked.

Examples:
  cairn diff vpc --context dev                  # Structural diff
  cairn diff vpc --context prod --diff-type line
  cairn diff vpc --context dev --output json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stackName := args[0]
		ctx := cmd.Context()

		formatFlag, _ := cmd.Flags().GetString("output")
		format, err := writer.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		if diffType != "tree" && diffType != "line" {
			return fmt.Errorf("invalid diff type %q, must be one of [tree line]", diffType)
		}

		vars, err := setupVars(cmd)
		if err != nil {
			return err
		}

		provider, resolver := createResolver(cmd)

		cfg, err := provider.LoadConfig(ctx, diffContextName)
		if err != nil {
			return err
		}

		resolved, err := resolver.ResolveStack(ctx, diffContextName, stackName, vars)
		if err != nil {
			return err
		}

		ops, err := getCloudFormationOperations(ctx, cmd, cfg.Context)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		switch diffType {
		case "line":
			d := lineDiffer
			if d == nil {
				d = differ.NewLineStackDiffer(ops)
			}
			stackDiff, err := d.Diff(ctx, resolved.Config, resolved.TemplateBody)
			if err != nil {
				return fmt.Errorf("failed to diff stack %s: %w", stackName, err)
			}
			return diffwriter.NewLineDiffWriter(stackDiff, out, format).Write()
		default:
			d := treeDiffer
			if d == nil {
				d = differ.NewTreeStackDiffer(ops)
			}
			stackDiff, err := d.Diff(ctx, resolved.Config, resolved.TemplateBody)
			if err != nil {
				return fmt.Errorf("failed to diff stack %s: %w", stackName, err)
			}
			return diffwriter.NewTreeDiffWriter(stackDiff, out, format).Write()
		}
	},
}

// SetTreeDiffer allows injection of a tree differ (for testing)
func SetTreeDiffer(d differ.StackDiffer[diffwriter.TreeDiff]) {
	treeDiffer = d
}

// SetLineDiffer allows injection of a line differ (for testing)
func SetLineDiffer(d differ.StackDiffer[diffwriter.LineDiff]) {
	lineDiffer = d
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVar(&diffContextName, "context", "", "deployment context")
	if err := diffCmd.MarkFlagRequired("context"); err != nil {
		panic(fmt.Sprintf("failed to mark context flag as required: %v", err))
	}

	diffCmd.Flags().StringVar(&diffType, "diff-type", "tree", "diff representation: tree, line")
}
