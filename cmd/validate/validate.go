/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for snipshift.
package validate

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/snipshift/config"
	"bennypowers.dev/snipshift/convert"
	"bennypowers.dev/snipshift/fs"
	"bennypowers.dev/snipshift/load"
	"bennypowers.dev/snipshift/snippet"
)

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate snippet files",
	Long: `Parse snippet files and report errors. The format is detected from the file
extension unless --format is given. With no files, the inputs from
.config/snippets.{yaml,yml,json} are validated.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "", "Input format, overriding detection")
	Cmd.Flags().Bool("strict", false, "Fail on warnings")
}

// Options controls validation.
type Options struct {
	Quiet  bool
	Strict bool
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	strict, _ := cmd.Flags().GetBool("strict")
	rootDir := viper.GetString("root")

	filesystem := load.Default(cmd.Context())
	cfg := config.LoadOrDefault(filesystem, rootDir)

	inputs, err := cfg.InputsFor(filesystem, rootDir, args, format)
	if err != nil {
		return err
	}

	return Validate(filesystem, cmd.OutOrStdout(), cmd.ErrOrStderr(), inputs, Options{
		Quiet:  viper.GetBool("quiet"),
		Strict: strict,
	})
}

// Validate parses every input, writing progress to out and problems to errOut.
func Validate(filesystem fs.FileSystem, out, errOut io.Writer, inputs []convert.Input, opts Options) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no files specified and no files found in config")
	}

	hasErrors := false
	warnings := 0

	for _, in := range inputs {
		if !opts.Quiet {
			fmt.Fprintf(out, "Validating %s...\n", in.Path)
		}

		file, err := convert.ReadFile(filesystem, in)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			hasErrors = true
			continue
		}

		for _, w := range Warnings(&file) {
			fmt.Fprintf(errOut, "Warning: %s: %s\n", in.Path, w)
			warnings++
		}

		if !opts.Quiet {
			fmt.Fprintf(out, "  %d snippets, format: %s\n", file.Len(), in.Format)
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}
	if opts.Strict && warnings > 0 {
		return fmt.Errorf("validation failed with %d warning(s)", warnings)
	}

	if !opts.Quiet {
		fmt.Fprintln(out, "All files valid.")
	}
	return nil
}

// Warnings reports snippets that parse but shadow one another: the same
// trigger defined twice at the same priority.
func Warnings(file *snippet.File) []string {
	type key struct {
		trigger  string
		priority int64
	}

	var warnings []string
	seen := make(map[key]int)
	for i, s := range file.Snippets {
		k := key{s.Trigger, s.EffectivePriority()}
		if first, dup := seen[k]; dup {
			warnings = append(warnings, fmt.Sprintf(
				"snippet %d redefines trigger %q from snippet %d at priority %d", i, s.Trigger, first, k.priority))
			continue
		}
		seen[k] = i
	}
	return warnings
}
