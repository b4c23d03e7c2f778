/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package render provides shared rendering functions for CLI output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/snipshift/snippet"
)

// Row holds computed display values for a single snippet.
type Row struct {
	Trigger     string `json:"trigger"`
	Description string `json:"description,omitempty"`
	Options     string `json:"options,omitempty"`
	Priority    int64  `json:"priority"`
	Lines       int    `json:"lines"`
	File        string `json:"file,omitempty"`
}

// columns are the table headers, in display order.
var columns = []string{"trigger", "description", "options", "priority", "lines"}

// ComputeRows transforms snippets into display rows. file is recorded on
// every row and may be empty.
func ComputeRows(snippets []snippet.Snippet, file string) []Row {
	rows := make([]Row, 0, len(snippets))
	for _, s := range snippets {
		row := Row{
			Trigger:  s.Trigger,
			Priority: s.EffectivePriority(),
			Lines:    strings.Count(s.Replacement, "\n") + 1,
			File:     file,
		}
		if s.Description != nil {
			row.Description = *s.Description
		}
		if s.Options != nil {
			row.Options = *s.Options
		}
		rows = append(rows, row)
	}
	return rows
}

// Table renders rows as an aligned table with a title-cased header.
func Table(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = toTitleCase(c)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			r.Trigger, dash(r.Description), dash(r.Options), r.Priority, r.Lines)
	}
	return tw.Flush()
}

// Markdown renders rows as markdown tables grouped by priority, preserving
// order of first occurrence.
func Markdown(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	var order []int64
	byPriority := make(map[int64][]Row)
	for _, r := range rows {
		if _, exists := byPriority[r.Priority]; !exists {
			order = append(order, r.Priority)
		}
		byPriority[r.Priority] = append(byPriority[r.Priority], r)
	}

	for i, p := range order {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "## %s %d\n\n", toTitleCase("priority"), p)
		fmt.Fprintln(w, "| Trigger | Description | Options |")
		fmt.Fprintln(w, "|---------|-------------|---------|")
		for _, r := range byPriority[p] {
			fmt.Fprintf(w, "| %s | %s | %s |\n",
				escapeCell(r.Trigger), escapeCell(r.Description), escapeCell(r.Options))
		}
	}
	return nil
}

// JSON renders rows as an indented JSON array.
func JSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// Triggers renders just the triggers, one per line.
func Triggers(w io.Writer, rows []Row) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, r.Trigger); err != nil {
			return err
		}
	}
	return nil
}

// Output renders rows in the named format: table, json, markdown or triggers.
func Output(w io.Writer, format string, rows []Row) error {
	switch format {
	case "", "table":
		return Table(w, rows)
	case "json":
		return JSON(w, rows)
	case "markdown", "md":
		return Markdown(w, rows)
	case "triggers", "names":
		return Triggers(w, rows)
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, json, markdown, triggers)", format)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// escapeCell keeps a value from breaking a markdown table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "`", "\\`")
	if s == "" {
		return " "
	}
	if strings.TrimSpace(s) != s {
		return strconv.Quote(s)
	}
	return s
}

// toTitleCase converts a string to Title Case.
func toTitleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}
