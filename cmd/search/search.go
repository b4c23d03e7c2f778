/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package search provides the search command for snipshift.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/snipshift/cmd/render"
	"bennypowers.dev/snipshift/config"
	"bennypowers.dev/snipshift/convert"
	"bennypowers.dev/snipshift/load"
	"bennypowers.dev/snipshift/snippet"
)

// Cmd is the search cobra command.
var Cmd = &cobra.Command{
	Use:   "search <query> [files...]",
	Short: "Search snippets by trigger, description, or body",
	Long:  `Search snippets by trigger, description, or replacement body with optional regex support.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("trigger", false, "Search triggers only")
	Cmd.Flags().Bool("body", false, "Search replacement bodies only")
	Cmd.Flags().Bool("regex", false, "Query is a regex")
	Cmd.Flags().String("input-format", "", "Input format, overriding detection")
	Cmd.Flags().String("format", "table", "Output format: table, json, markdown, triggers")
}

// Field selects which parts of a snippet a query is matched against.
type Field int

const (
	// AnyField matches trigger, description, options and body.
	AnyField Field = iota
	// TriggerField matches the trigger only.
	TriggerField
	// BodyField matches the replacement only.
	BodyField
)

// Query is a compiled search.
type Query struct {
	text    string
	pattern *regexp.Regexp
	field   Field
}

// NewQuery compiles a query. Plain queries match case-insensitive substrings.
func NewQuery(text string, useRegex bool, field Field) (*Query, error) {
	q := &Query{text: strings.ToLower(text), field: field}
	if useRegex {
		pattern, err := regexp.Compile(text)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		q.pattern = pattern
	}
	return q, nil
}

// Match reports whether s satisfies the query.
func (q *Query) Match(s snippet.Snippet) bool {
	switch q.field {
	case TriggerField:
		return q.matchString(s.Trigger)
	case BodyField:
		return q.matchString(s.Replacement)
	}

	if q.matchString(s.Trigger) || q.matchString(s.Replacement) {
		return true
	}
	if s.Description != nil && q.matchString(*s.Description) {
		return true
	}
	return s.Options != nil && q.matchString(*s.Options)
}

func (q *Query) matchString(s string) bool {
	if q.pattern != nil {
		return q.pattern.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), q.text)
}

func run(cmd *cobra.Command, args []string) error {
	query := args[0]
	files := args[1:]

	triggerOnly, _ := cmd.Flags().GetBool("trigger")
	bodyOnly, _ := cmd.Flags().GetBool("body")
	useRegex, _ := cmd.Flags().GetBool("regex")
	inputFormat, _ := cmd.Flags().GetString("input-format")
	format, _ := cmd.Flags().GetString("format")
	rootDir := viper.GetString("root")

	if triggerOnly && bodyOnly {
		return fmt.Errorf("--trigger and --body are mutually exclusive")
	}
	field := AnyField
	switch {
	case triggerOnly:
		field = TriggerField
	case bodyOnly:
		field = BodyField
	}

	q, err := NewQuery(query, useRegex, field)
	if err != nil {
		return err
	}

	filesystem := load.Default(cmd.Context())

	// Load config from .config/snippets.{yaml,yml,json}
	cfg := config.LoadOrDefault(filesystem, rootDir)

	inputs, err := cfg.InputsFor(filesystem, rootDir, files, inputFormat)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no files specified and no files found in config")
	}

	var rows []render.Row
	for _, in := range inputs {
		file, err := convert.ReadFile(filesystem, in)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		rows = append(rows, render.ComputeRows(Filter(file.Snippets, q), in.Path)...)
	}

	return render.Output(cmd.OutOrStdout(), format, rows)
}

// Filter returns the snippets matching q, in order.
func Filter(snippets []snippet.Snippet, q *Query) []snippet.Snippet {
	var matches []snippet.Snippet
	for _, s := range snippets {
		if q.Match(s) {
			matches = append(matches, s)
		}
	}
	return matches
}
