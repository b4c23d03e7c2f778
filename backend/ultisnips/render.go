/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ultisnips

import (
	"strconv"
	"strings"
	"unicode"

	"bennypowers.dev/snipshift/snippet"
)

// quoteCandidates are tried in order to quote triggers containing whitespace.
// UltiSnips accepts any character as the quote.
const quoteCandidates = "\"'#!?%|/^~=&:,$&¢αβγδμ´¹²³ඞ"

// unsupportedOptions are option flags of other formats (Obsidian LaTeX Suite
// modes) that UltiSnips has no equivalent for.
const unsupportedOptions = "tmc"

// Render renders a file in UltiSnips syntax.
// Rendering stops at the first error, which is always a *RenderError.
func Render(file *snippet.File) (string, error) {
	if file == nil {
		return "", nil
	}

	var sb strings.Builder
	var lastPriority int64

	for i, s := range file.Snippets {
		if p := s.EffectivePriority(); p != lastPriority {
			sb.WriteString(keywordPriority + " " + strconv.FormatInt(p, 10) + "\n")
			lastPriority = p
		}

		line, err := signature(s)
		if err != nil {
			return "", &RenderError{Index: i, Trigger: s.Trigger, Err: err}
		}

		sb.WriteString(line + "\n")
		sb.WriteString(s.Replacement)
		sb.WriteString("\n" + keywordEndSnippet + "\n\n")
	}

	return sb.String(), nil
}

// signature renders the snippet keyword line. A trigger containing whitespace
// is wrapped in the first candidate quote that does not occur in it and whose
// line parses back to the same trigger, description and options. Whitespace
// runs in a quoted trigger do not survive parsing and are not compared.
func signature(s snippet.Snippet) (string, error) {
	if s.Trigger == "" {
		return "", ErrMissingTrigger
	}

	tail := descriptionAndOptions(s.Description, s.Options)
	if !strings.ContainsFunc(s.Trigger, unicode.IsSpace) {
		return keywordSnippet + " " + s.Trigger + tail, nil
	}

	want := canonical(s)
	for _, q := range quoteCandidates {
		if strings.ContainsRune(s.Trigger, q) {
			continue
		}
		quoted := string(q) + s.Trigger + string(q)
		line := keywordSnippet + " " + quoted + tail
		want.Trigger = collapseSpace(quoted, len(string(q)))
		if readsBackAs(line, want) {
			return line, nil
		}
	}
	return "", ErrUnquotableTrigger
}

func readsBackAs(line string, want snippet.Snippet) bool {
	got, err := parseSignature(strings.Fields(line)[1:])
	if err != nil {
		return false
	}
	return got.Trigger == want.Trigger &&
		equalPtr(got.Description, want.Description) &&
		equalPtr(got.Options, want.Options)
}

// collapseSpace returns the trigger the parser reads from a quoted trigger.
// Whitespace runs inside it become single spaces.
func collapseSpace(quoted string, quoteLen int) string {
	spaced := strings.Join(strings.Fields(quoted), " ")
	return spaced[quoteLen : len(spaced)-quoteLen]
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func descriptionAndOptions(description, options *string) string {
	if description == nil && options == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(` "`)
	if description != nil {
		sb.WriteString(*description)
	}
	sb.WriteString(`"`)

	if options != nil {
		if filtered := FilterOptions(*options); filtered != "" {
			sb.WriteString(" " + filtered)
		}
	}
	return sb.String()
}

// Canonical returns a copy of file in the form it has after a render and
// parse cycle: absent priorities are explicit zeros, options lose the flags
// UltiSnips does not support, and a snippet with options always has a
// description, empty if it had none.
func Canonical(file *snippet.File) snippet.File {
	out := file.Normalized()
	for i := range out.Snippets {
		out.Snippets[i] = canonical(out.Snippets[i])
	}
	return out
}

func canonical(s snippet.Snippet) snippet.Snippet {
	if s.Options == nil {
		return s
	}
	if s.Description == nil {
		s.Description = snippet.String("")
	}
	if filtered := FilterOptions(*s.Options); filtered != "" {
		s.Options = snippet.String(filtered)
	} else {
		s.Options = nil
	}
	return s
}

// FilterOptions returns options without the flags UltiSnips does not support.
func FilterOptions(options string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsupportedOptions, r) {
			return -1
		}
		return r
	}, options)
}
