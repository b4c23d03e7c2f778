/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides the version command for snipshift.
package version

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/snipshift/convert"
	"bennypowers.dev/snipshift/internal/version"
)

// Cmd is the version cobra command that prints version and build information.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information and supported snippet formats for snipshift.`,
	RunE:  run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

func run(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("error reading format flag: %w", err)
	}
	return Print(cmd.OutOrStdout(), format)
}

// Print writes version information to w as text or json.
func Print(w io.Writer, format string) error {
	switch format {
	case "json":
		buildInfo := map[string]any{
			"formats": convert.ValidFormats(),
		}
		for k, v := range version.Info() {
			buildInfo[k] = v
		}
		out, err := json.MarshalIndent(buildInfo, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling version info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "text", "":
		_, err := fmt.Fprintf(w, "snipshift %s (formats: %s)\n", version.Get(), strings.Join(convert.ValidFormats(), ", "))
		return err
	default:
		return fmt.Errorf("unknown format: %s (valid: text, json)", format)
	}
}
