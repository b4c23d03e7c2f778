/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for snipshift.
package list

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/snipshift/cmd/render"
	"bennypowers.dev/snipshift/config"
	"bennypowers.dev/snipshift/convert"
	"bennypowers.dev/snipshift/fs"
	"bennypowers.dev/snipshift/load"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list [files...]",
	Short: "List snippets from snippet files",
	Long:  `List all snippets from snippet files with optional sorting and formatting.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().String("input-format", "", "Input format, overriding detection")
	Cmd.Flags().String("format", "table", "Output format: table, json, markdown, triggers")
	Cmd.Flags().Bool("sort", false, "Sort by trigger instead of file order")
}

func run(cmd *cobra.Command, args []string) error {
	inputFormat, _ := cmd.Flags().GetString("input-format")
	format, _ := cmd.Flags().GetString("format")
	sorted, _ := cmd.Flags().GetBool("sort")
	rootDir := viper.GetString("root")

	filesystem := load.Default(cmd.Context())
	cfg := config.LoadOrDefault(filesystem, rootDir)

	inputs, err := cfg.InputsFor(filesystem, rootDir, args, inputFormat)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no files specified and no files found in config")
	}

	rows := Rows(filesystem, cmd.ErrOrStderr(), inputs)
	if sorted {
		SortRows(rows)
	}
	return render.Output(cmd.OutOrStdout(), format, rows)
}

// Rows reads every input and returns its snippets as rows. Unreadable
// files are reported to errOut and skipped.
func Rows(filesystem fs.FileSystem, errOut io.Writer, inputs []convert.Input) []render.Row {
	if errOut == nil {
		errOut = os.Stderr
	}

	var rows []render.Row
	for _, in := range inputs {
		file, err := convert.ReadFile(filesystem, in)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		rows = append(rows, render.ComputeRows(file.Snippets, in.Path)...)
	}
	return rows
}

// SortRows orders rows by trigger, then by descending priority.
func SortRows(rows []render.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Trigger != rows[j].Trigger {
			return rows[i].Trigger < rows[j].Trigger
		}
		return rows[i].Priority > rows[j].Priority
	})
}
