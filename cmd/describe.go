/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var describeContextName string

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe [stack-name]",
	Short: "Show the deployed state of a stack",
	Long: `Display the deployed stack's status, parameters, tags and outputs as
CloudFormation reports them.

Examples:
  cairn describe vpc --context dev
  cairn describe vpc --context prod --output json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stackName := args[0]
		ctx := cmd.Context()

		w, err := getConsoleWriter(cmd)
		if err != nil {
			return err
		}

		provider, _ := createResolver(cmd)
		cfg, err := provider.LoadConfig(ctx, describeContextName)
		if err != nil {
			return err
		}

		ops, err := getCloudFormationOperations(ctx, cmd, cfg.Context)
		if err != nil {
			return err
		}

		info, err := ops.DescribeStack(ctx, stackName)
		if err != nil {
			return fmt.Errorf("failed to describe stack %s: %w", stackName, err)
		}

		value := map[string]any{
			"name":         info.Stack.Name,
			"status":       string(info.Stack.Status),
			"created_time": info.Stack.CreatedTime,
			"parameters":   info.Stack.Parameters,
			"tags":         info.Stack.Tags,
			"outputs":      info.Stack.Outputs,
		}
		if info.Stack.Description != "" {
			value["description"] = info.Stack.Description
		}
		if info.Stack.UpdatedTime != nil {
			value["updated_time"] = *info.Stack.UpdatedTime
		}

		return w.Write(value)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVar(&describeContextName, "context", "", "deployment context")
	if err := describeCmd.MarkFlagRequired("context"); err != nil {
		panic(fmt.Sprintf("failed to mark context flag as required: %v", err))
	}
}
