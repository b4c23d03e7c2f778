/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ultisnips

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"bennypowers.dev/snipshift/snippet"
)

const (
	keywordSnippet    = "snippet"
	keywordEndSnippet = "endsnippet"
	keywordPriority   = "priority"
)

// Parse parses the complete contents of an UltiSnips file.
// Parsing stops at the first error, which is always a *ParseError.
func Parse(text string) (snippet.File, error) {
	lines := splitLines(text)

	var file snippet.File
	// priority applies to every following snippet until the next directive.
	var priority *int64

	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case keywordPriority:
			p, err := parsePriority(fields[1:])
			if err != nil {
				return snippet.File{}, &ParseError{Line: lineNo, Token: trimmed, Err: err}
			}
			priority = &p

		case keywordSnippet:
			end := findEndSnippet(lines, i+1)
			if end < 0 {
				return snippet.File{}, &ParseError{Line: lineNo, Token: trimmed, Err: ErrUnterminatedSnippet}
			}

			s, err := parseSignature(fields[1:])
			if err != nil {
				return snippet.File{}, &ParseError{Line: lineNo, Token: trimmed, Err: err}
			}
			s.Replacement = strings.Join(lines[i+1:end], "\n")
			if priority != nil {
				s.Priority = snippet.Int64(*priority)
			}

			file.Snippets = append(file.Snippets, s)
			i = end

		default:
			return snippet.File{}, &ParseError{Line: lineNo, Token: fields[0], Err: ErrUnknownDirective}
		}
	}

	return file, nil
}

// splitLines splits text into lines, dropping the line terminators.
// A final terminator does not start an extra empty line.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// findEndSnippet returns the index of the first endsnippet line at or after
// start, or -1 if there is none.
func findEndSnippet(lines []string, start int) int {
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == keywordEndSnippet {
			return i
		}
	}
	return -1
}

func parsePriority(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrMissingPriority
	}
	p, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, ErrInvalidPriority
	}
	return p, nil
}

// parseSignature parses the whitespace-split tokens following the snippet
// keyword: a trigger, then optionally a quoted description, then optionally
// an options token.
func parseSignature(fields []string) (snippet.Snippet, error) {
	switch len(fields) {
	case 0:
		return snippet.Snippet{}, ErrMissingTrigger
	case 1:
		return snippet.Snippet{Trigger: fields[0]}, nil
	}

	rest := fields

	// Options only count when they directly follow a closed description.
	var options *string
	if n := len(rest); !endsWithQuote(rest[n-1]) && endsWithQuote(rest[n-2]) {
		options = snippet.String(rest[n-1])
		rest = rest[:n-1]
	}

	description, rest, err := parseDescription(rest)
	if err != nil {
		return snippet.Snippet{}, err
	}
	if description == nil && options != nil {
		// A quoted phrase and options with nothing before them.
		if len(fields) == 2 && strings.HasPrefix(fields[0], `"`) {
			return snippet.Snippet{}, ErrMissingTrigger
		}
		// Nothing quoted was found, so the last token belongs to the trigger.
		options = nil
		rest = fields
	}

	trigger, err := parseTrigger(rest)
	if err != nil {
		return snippet.Snippet{}, err
	}

	return snippet.Snippet{
		Trigger:     trigger,
		Description: description,
		Options:     options,
	}, nil
}

// parseDescription looks for a quoted phrase at the end of fields and
// returns it along with the tokens before it. The first token always stays
// with the trigger.
func parseDescription(fields []string) (*string, []string, error) {
	n := len(fields)
	if n < 2 || !endsWithQuote(fields[n-1]) {
		return nil, fields, nil
	}

	start := -1
	for i := n - 1; i >= 1; i-- {
		if strings.HasPrefix(fields[i], `"`) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fields, nil
	}
	if start == n-1 && len(fields[start]) == 1 {
		return nil, nil, ErrUnmatchedQuote
	}

	phrase := strings.Join(fields[start:], " ")
	description := phrase[1 : len(phrase)-1]
	return &description, fields[:start], nil
}

// parseTrigger builds the trigger from the remaining signature tokens.
// Several tokens form a quoted trigger whose first and last characters are
// the quotes.
func parseTrigger(fields []string) (string, error) {
	switch len(fields) {
	case 0:
		return "", ErrMissingTrigger
	case 1:
		return fields[0], nil
	}
	return stripQuotes(strings.Join(fields, " ")), nil
}

// stripQuotes removes the first and last grapheme cluster of s.
func stripQuotes(s string) string {
	g := uniseg.NewGraphemes(s)
	if !g.Next() {
		return ""
	}
	_, from := g.Positions()
	to := from
	for g.Next() {
		to, _ = g.Positions()
	}
	return s[from:to]
}

func endsWithQuote(s string) bool {
	return strings.HasSuffix(s, `"`)
}
