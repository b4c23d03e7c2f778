/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for snipshift.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/snipshift/cmd/convert"
	"bennypowers.dev/snipshift/cmd/list"
	"bennypowers.dev/snipshift/cmd/mcp"
	"bennypowers.dev/snipshift/cmd/search"
	"bennypowers.dev/snipshift/cmd/validate"
	"bennypowers.dev/snipshift/cmd/version"
	"bennypowers.dev/snipshift/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "snipshift",
	Short: "Convert text-expansion snippets between editor formats",
	Long: `snipshift reads and writes snippet definitions in the UltiSnips line format
the Obsidian LaTeX Suite JSON format and VS Code snippet files, converting
and combining them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		logger.SetQuiet(viper.GetBool("quiet"))
		logger.SetVerbose(viper.GetBool("verbose"))
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix("SNIPSHIFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().String("root", ".", "Project root holding .config/snippets.{yaml,yml,json}")

	rootCmd.AddCommand(convert.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(search.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
