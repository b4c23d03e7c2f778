/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ultisnips

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/snipshift/snippet"
)

func TestRender_Basic(t *testing.T) {
	file := &snippet.File{Snippets: []snippet.Snippet{
		{Trigger: "hello", Replacement: "world"},
	}}

	out, err := Render(file)
	require.NoError(t, err)
	assert.Equal(t, "snippet hello\nworld\nendsnippet\n\n", out)
}

func TestRender_Empty(t *testing.T) {
	out, err := Render(&snippet.File{})
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRender_DescriptionAndOptions(t *testing.T) {
	tests := []struct {
		name     string
		snippet  snippet.Snippet
		expected string
	}{
		{
			name:     "description only",
			snippet:  snippet.Snippet{Trigger: "fn", Replacement: "x", Description: snippet.String("a function")},
			expected: "snippet fn \"a function\"\nx\nendsnippet\n\n",
		},
		{
			name:     "empty description",
			snippet:  snippet.Snippet{Trigger: "fn", Replacement: "x", Description: snippet.String("")},
			expected: "snippet fn \"\"\nx\nendsnippet\n\n",
		},
		{
			name:     "options without description",
			snippet:  snippet.Snippet{Trigger: "fn", Replacement: "x", Options: snippet.String("bA")},
			expected: "snippet fn \"\" bA\nx\nendsnippet\n\n",
		},
		{
			name:     "description and options",
			snippet:  snippet.Snippet{Trigger: "fn", Replacement: "x", Description: snippet.String("d"), Options: snippet.String("w")},
			expected: "snippet fn \"d\" w\nx\nendsnippet\n\n",
		},
		{
			name:     "unsupported options filtered",
			snippet:  snippet.Snippet{Trigger: "fn", Replacement: "x", Options: snippet.String("Atmc")},
			expected: "snippet fn \"\" A\nx\nendsnippet\n\n",
		},
		{
			name:     "all options filtered",
			snippet:  snippet.Snippet{Trigger: "fn", Replacement: "x", Options: snippet.String("mt")},
			expected: "snippet fn \"\"\nx\nendsnippet\n\n",
		},
		{
			name:     "multi-line body",
			snippet:  snippet.Snippet{Trigger: "fn", Replacement: "\nfunc() {\n\t$0\n}\n"},
			expected: "snippet fn\n\nfunc() {\n\t$0\n}\n\nendsnippet\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(&snippet.File{Snippets: []snippet.Snippet{tt.snippet}})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRender_OptionFilteringDoesNotMutate(t *testing.T) {
	file := &snippet.File{Snippets: []snippet.Snippet{
		{Trigger: "fn", Replacement: "x", Options: snippet.String("Atmc")},
	}}

	_, err := Render(file)
	require.NoError(t, err)
	assert.Equal(t, "Atmc", *file.Snippets[0].Options)
}

func TestRender_Priority(t *testing.T) {
	tests := []struct {
		name       string
		priorities []*int64
		directives []string
	}{
		{
			name:       "absent never emits",
			priorities: []*int64{nil, nil},
			directives: nil,
		},
		{
			name:       "explicit zero is the starting value",
			priorities: []*int64{snippet.Int64(0)},
			directives: nil,
		},
		{
			name:       "repeated priority emitted once",
			priorities: []*int64{snippet.Int64(5), snippet.Int64(5), snippet.Int64(5)},
			directives: []string{"priority 5"},
		},
		{
			name:       "returning to absent resets to zero",
			priorities: []*int64{nil, snippet.Int64(5), nil},
			directives: []string{"priority 5", "priority 0"},
		},
		{
			name:       "negative",
			priorities: []*int64{snippet.Int64(-1), snippet.Int64(2)},
			directives: []string{"priority -1", "priority 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &snippet.File{}
			for _, p := range tt.priorities {
				file.Snippets = append(file.Snippets, snippet.Snippet{Trigger: "a", Replacement: "b", Priority: p})
			}

			out, err := Render(file)
			require.NoError(t, err)

			var directives []string
			for _, line := range strings.Split(out, "\n") {
				if strings.HasPrefix(line, "priority") {
					directives = append(directives, line)
				}
			}
			assert.Equal(t, tt.directives, directives)
		})
	}
}

func TestSignature_Quoting(t *testing.T) {
	tests := []struct {
		name     string
		snippet  snippet.Snippet
		expected string
	}{
		{"no whitespace", snippet.Snippet{Trigger: "abc"}, "snippet abc"},
		{"space", snippet.Snippet{Trigger: "a b"}, `snippet "a b"`},
		{"tab", snippet.Snippet{Trigger: "a\tb"}, "snippet \"a\tb\""},
		{"contains double quote", snippet.Snippet{Trigger: `say "hi now`}, `snippet 'say "hi now'`},
		{"contains both quotes", snippet.Snippet{Trigger: `it's "x y`}, `snippet #it's "x y#`},
		{"falls through to multi-byte", snippet.Snippet{Trigger: "\"'#!?%|/^~=&:,$&¢ x"}, "snippet α\"'#!?%|/^~=&:,$&¢ xα"},
		{
			name:     "quoted phrase inside trigger with description",
			snippet:  snippet.Snippet{Trigger: `x "y" z`, Description: snippet.String("d")},
			expected: `snippet 'x "y" z' "d"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := signature(tt.snippet)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRender_AmbiguousTrigger(t *testing.T) {
	// Without a description, the quoted phrase inside the trigger reads back
	// as a description under every quote character.
	tests := []struct {
		name    string
		snippet snippet.Snippet
	}{
		{"quoted phrase in the middle", snippet.Snippet{Trigger: `x "y" z`, Replacement: "b"}},
		{"quoted phrase spanning words", snippet.Snippet{Trigger: `a "b c" d`, Replacement: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(&snippet.File{Snippets: []snippet.Snippet{tt.snippet}})
			assert.Empty(t, out)
			assert.True(t, errors.Is(err, ErrUnquotableTrigger), "got %v", err)
		})
	}
}

func TestRender_RenderedTriggersReadBack(t *testing.T) {
	triggers := []string{`x "y`, `x "y"`, `"x y`, `x y"`, `'a" b`, `a "" b`, "two  spaces"}
	for _, trigger := range triggers {
		t.Run(trigger, func(t *testing.T) {
			file := &snippet.File{Snippets: []snippet.Snippet{{Trigger: trigger, Replacement: "b"}}}
			out, err := Render(file)
			if errors.Is(err, ErrUnquotableTrigger) {
				return
			}
			require.NoError(t, err)

			parsed, err := Parse(out)
			require.NoError(t, err)
			require.Len(t, parsed.Snippets, 1)
			assert.Equal(t, strings.Join(strings.Fields(trigger), " "), parsed.Snippets[0].Trigger)
			assert.Nil(t, parsed.Snippets[0].Description)
			assert.Nil(t, parsed.Snippets[0].Options)
		})
	}
}

func TestCanonical(t *testing.T) {
	file := &snippet.File{Snippets: []snippet.Snippet{
		{Trigger: "a", Replacement: "x"},
		{Trigger: "b", Replacement: "x", Options: snippet.String("A")},
		{Trigger: "c", Replacement: "x", Options: snippet.String("tmc"), Priority: snippet.Int64(3)},
		{Trigger: "d", Replacement: "x", Description: snippet.String("d"), Options: snippet.String("Atw")},
	}}

	assert.Equal(t, snippet.File{Snippets: []snippet.Snippet{
		{Trigger: "a", Replacement: "x", Priority: snippet.Int64(0)},
		{Trigger: "b", Replacement: "x", Description: snippet.String(""), Options: snippet.String("A"), Priority: snippet.Int64(0)},
		{Trigger: "c", Replacement: "x", Description: snippet.String(""), Priority: snippet.Int64(3)},
		{Trigger: "d", Replacement: "x", Description: snippet.String("d"), Options: snippet.String("Aw"), Priority: snippet.Int64(0)},
	}}, Canonical(file))
	assert.Nil(t, file.Snippets[1].Description, "input is not modified")
}

func TestRender_UnquotableTrigger(t *testing.T) {
	trigger := quoteCandidates + " x"
	file := &snippet.File{Snippets: []snippet.Snippet{
		{Trigger: "fine", Replacement: "x"},
		{Trigger: trigger, Replacement: "x"},
	}}

	out, err := Render(file)
	require.Error(t, err)
	assert.Empty(t, out, "no partial output")
	assert.True(t, errors.Is(err, ErrUnquotableTrigger))

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, 1, renderErr.Index)
	assert.Equal(t, trigger, renderErr.Trigger)
	assert.Contains(t, err.Error(), "snippet 2")
}

func TestRender_EmptyTrigger(t *testing.T) {
	_, err := Render(&snippet.File{Snippets: []snippet.Snippet{{Trigger: "", Replacement: "x"}}})
	assert.True(t, errors.Is(err, ErrMissingTrigger))
}

func TestFilterOptions(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"", ""},
		{"A", "A"},
		{"Atmc", "A"},
		{"tAmbwc", "Abw"},
		{"AA", "AA"},
		{"tmc", ""},
	}

	for _, tt := range tests {
		if got := FilterOptions(tt.in); got != tt.out {
			t.Errorf("FilterOptions(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}
