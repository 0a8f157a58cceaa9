/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cairnhq/cairn/internal/resolve"
)

var listContextName string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured stacks and their deployed status",
	Long: `List every stack configured for a context, in dependency order, together
with its current CloudFormation status. Stacks that are configured but not
deployed are shown as NOT_DEPLOYED.

Examples:
  cairn list --context dev
  cairn list --context prod --output yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		w, err := getConsoleWriter(cmd)
		if err != nil {
			return err
		}

		provider, _ := createResolver(cmd)
		cfg, err := provider.LoadConfig(ctx, listContextName)
		if err != nil {
			return err
		}

		order, err := resolve.DependencyOrder(cfg.Stacks)
		if err != nil {
			return err
		}

		ops, err := getCloudFormationOperations(ctx, cmd, cfg.Context)
		if err != nil {
			return err
		}

		deployed, err := ops.ListStacks(ctx)
		if err != nil {
			return fmt.Errorf("failed to list deployed stacks: %w", err)
		}

		statuses := make(map[string]string, len(deployed))
		for _, stack := range deployed {
			statuses[stack.Name] = string(stack.Status)
		}

		rows := make([]any, 0, len(order))
		for _, name := range order {
			status, exists := statuses[name]
			if !exists {
				status = "NOT_DEPLOYED"
			}
			rows = append(rows, map[string]any{
				"stack":  name,
				"status": status,
			})
		}

		return w.Write(rows)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listContextName, "context", "", "deployment context")
	if err := listCmd.MarkFlagRequired("context"); err != nil {
		panic(fmt.Sprintf("failed to mark context flag as required: %v", err))
	}
}
