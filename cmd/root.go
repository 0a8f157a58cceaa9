/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"os"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/cairnhq/cairn/internal/colour"
	"github.com/cairnhq/cairn/internal/version"
	"github.com/cairnhq/cairn/internal/writer"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cairn",
	Short: "A command-line tool for diffing and inspecting AWS CloudFormation stacks",
	Long: `Cairn compares the CloudFormation stacks you have configured locally with
what is actually deployed, before you commit to a change.

• Declarative configuration in a cairn.yaml file
• Context-specific parameter and tag management
• Template rendering with variables
• Tree or line-oriented stack diffs
• Text, JSON or YAML output`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetHandler(clihandler.New(os.Stderr))
		debug, _ := cmd.Flags().GetBool("debug")
		if debug {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version.Short()))
	if err != nil {
		os.Exit(1)
	}
}

// getConsoleWriter builds a console writer from the global output flags,
// writing to the command's stdout
func getConsoleWriter(cmd *cobra.Command) (*writer.ConsoleWriter, error) {
	formatFlag, _ := cmd.Flags().GetString("output")
	format, err := writer.ParseFormat(formatFlag)
	if err != nil {
		return nil, err
	}

	w := writer.NewConsoleWriter(format, cmd.OutOrStdout())

	noColour, _ := cmd.Flags().GetBool("no-colour")
	if !noColour && colour.ShouldUseColour() {
		w.SetColourer(colour.NewStatusColourer())
	}

	return w, nil
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "cairn.yaml", "config file (default is cairn.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format: text, json, yaml")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile (overrides config)")
	rootCmd.PersistentFlags().Bool("no-colour", false, "disable coloured output")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringArray("var", nil, "template variable as key=value (repeatable)")
	rootCmd.PersistentFlags().StringArray("var-file", nil, "YAML file of template variables (repeatable)")
	rootCmd.PersistentFlags().Bool("merge-vars", false, "deep merge variables from successive var files instead of replacing top-level keys")
}
