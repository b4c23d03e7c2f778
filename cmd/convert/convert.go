/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert provides the convert command for snipshift.
package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bennypowers.dev/snipshift/backend"
	"bennypowers.dev/snipshift/backend/ultisnips"
	"bennypowers.dev/snipshift/config"
	convertlib "bennypowers.dev/snipshift/convert"
	"bennypowers.dev/snipshift/fs"
	"bennypowers.dev/snipshift/load"
	"bennypowers.dev/snipshift/internal/logger"
	"bennypowers.dev/snipshift/snippet"
)

// Cmd is the convert cobra command.
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert snippet files between formats",
	Long: `Read one snippet file and write it out in one or more formats.

Each format registers an input flag (--<format>-in) and a repeatable output
flag (--<format>-out). Pass "-" as an output path to write to stdout.

Formats:
  ` + strings.Join(convertlib.ValidFormats(), "\n  ") + `

Examples:
  # UltiSnips to Obsidian LaTeX Suite
  snipshift convert --ultisnips-in tex.snippets --ols-out snippets.json

  # Several outputs at once
  snipshift convert --ols-in latex.js --ultisnips-out tex.snippets --ols-out -

  # Use inputs and outputs from config file (.config/snippets.yaml)
  snipshift convert`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	registerFlags(Cmd.Flags())
}

// registerFlags adds an input and an output flag for every backend.
func registerFlags(flags *pflag.FlagSet) {
	for _, b := range convertlib.All() {
		flags.String(backend.InFlag(b), "", fmt.Sprintf("Read %s snippets from file", b.Name()))
		flags.StringArray(backend.OutFlag(b), nil, fmt.Sprintf("Write %s snippets to file, or - for stdout (repeatable)", b.Name()))
	}
}

func run(cmd *cobra.Command, args []string) error {
	rootDir := viper.GetString("root")
	filesystem := load.Default(cmd.Context())

	// Load config from .config/snippets.{yaml,yml,json}
	cfg := config.LoadOrDefault(filesystem, rootDir)

	inputs, outputs, err := FromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	return Execute(filesystem, cmd.OutOrStdout(), cfg, rootDir, inputs, outputs)
}

// FromFlags collects the per-format input and output flags. At most one
// input flag may be set.
func FromFlags(flags *pflag.FlagSet) ([]convertlib.Input, []convertlib.Output, error) {
	var inputs []convertlib.Input
	var outputs []convertlib.Output

	for _, b := range convertlib.All() {
		format := convertlib.Format(b.Name())

		if path, _ := flags.GetString(backend.InFlag(b)); path != "" {
			inputs = append(inputs, convertlib.Input{Path: path, Format: format})
		}

		paths, _ := flags.GetStringArray(backend.OutFlag(b))
		for _, path := range paths {
			outputs = append(outputs, convertlib.Output{Path: path, Format: format})
		}
	}

	if len(inputs) > 1 {
		names := make([]string, len(inputs))
		for i, in := range inputs {
			names[i] = "--" + string(in.Format) + "-in"
		}
		return nil, nil, fmt.Errorf("only one input may be given, got %s", strings.Join(names, " and "))
	}

	return inputs, outputs, nil
}

// Execute reads the inputs and writes every output. Empty inputs or outputs
// fall back to the ones configured in cfg.
func Execute(
	filesystem fs.FileSystem,
	stdout io.Writer,
	cfg *config.Config,
	rootDir string,
	inputs []convertlib.Input,
	outputs []convertlib.Output,
) error {
	if len(inputs) == 0 {
		expanded, err := cfg.ExpandInputs(filesystem, rootDir)
		if err != nil {
			return fmt.Errorf("error expanding config inputs: %w", err)
		}
		inputs = expanded
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input specified and no inputs found in config")
	}

	if len(outputs) == 0 {
		resolved, err := cfg.ResolveOutputs(rootDir)
		if err != nil {
			return fmt.Errorf("error resolving config outputs: %w", err)
		}
		outputs = resolved
	}
	if len(outputs) == 0 {
		return fmt.Errorf("no output specified and no outputs found in config")
	}

	file, err := convertlib.ReadInputs(filesystem, inputs)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		logger.Debug("Read %s (%s)", in.Path, in.Format)
	}

	for _, out := range outputs {
		for _, w := range LossWarnings(&file, out.Format) {
			logger.Warn("%s: %s", out.Path, w)
		}
	}

	if err := convertlib.WriteOutputs(filesystem, stdout, &file, outputs); err != nil {
		return err
	}

	for _, out := range outputs {
		if out.Path != convertlib.Stdout {
			logger.Info("Wrote %d snippets to %s", file.Len(), out.Path)
		}
	}
	return nil
}

// LossWarnings describes what writing file in format cannot represent.
func LossWarnings(file *snippet.File, format convertlib.Format) []string {
	var dropped, options, priorities int
	for _, s := range file.Snippets {
		switch format {
		case convertlib.FormatUltiSnips:
			if s.Options != nil && ultisnips.FilterOptions(*s.Options) != *s.Options {
				dropped++
			}
		case convertlib.FormatVSCode:
			if s.HasOptions() {
				options++
			}
			if s.EffectivePriority() != 0 {
				priorities++
			}
		}
	}

	var warnings []string
	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("%d snippet(s) lose t, m or c options", dropped))
	}
	if options > 0 {
		warnings = append(warnings, fmt.Sprintf("%d snippet(s) lose their options", options))
	}
	if priorities > 0 {
		warnings = append(warnings, fmt.Sprintf("%d snippet(s) lose their priority", priorities))
	}
	return warnings
}
