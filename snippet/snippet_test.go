/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package snippet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bennypowers.dev/snipshift/snippet"
)

func TestSnippet_EffectivePriority(t *testing.T) {
	tests := []struct {
		name     string
		snippet  snippet.Snippet
		expected int64
	}{
		{"absent", snippet.Snippet{Trigger: "a"}, 0},
		{"explicit zero", snippet.Snippet{Trigger: "a", Priority: snippet.Int64(0)}, 0},
		{"positive", snippet.Snippet{Trigger: "a", Priority: snippet.Int64(5)}, 5},
		{"negative", snippet.Snippet{Trigger: "a", Priority: snippet.Int64(-50)}, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snippet.EffectivePriority(); got != tt.expected {
				t.Errorf("EffectivePriority() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestSnippet_Clone(t *testing.T) {
	orig := snippet.Snippet{
		Trigger:     "tr",
		Replacement: "body",
		Description: snippet.String("desc"),
		Options:     snippet.String("Atm"),
		Priority:    snippet.Int64(3),
	}

	c := orig.Clone()
	assert.Equal(t, orig, c)

	*c.Options = "A"
	*c.Description = "changed"
	*c.Priority = 9

	assert.Equal(t, "Atm", *orig.Options)
	assert.Equal(t, "desc", *orig.Description)
	assert.Equal(t, int64(3), *orig.Priority)
}

func TestFile_Normalized(t *testing.T) {
	f := snippet.File{Snippets: []snippet.Snippet{
		{Trigger: "a"},
		{Trigger: "b", Priority: snippet.Int64(2)},
	}}

	n := f.Normalized()

	assert.Nil(t, f.Snippets[0].Priority, "normalizing must not touch the original")
	if assert.NotNil(t, n.Snippets[0].Priority) {
		assert.Equal(t, int64(0), *n.Snippets[0].Priority)
	}
	assert.Equal(t, int64(2), *n.Snippets[1].Priority)
}

func TestFile_Len(t *testing.T) {
	var nilFile *snippet.File
	assert.Equal(t, 0, nilFile.Len())

	f := &snippet.File{Snippets: []snippet.Snippet{{Trigger: "a"}, {Trigger: "b"}}}
	assert.Equal(t, 2, f.Len())
}

func TestConcat(t *testing.T) {
	a := snippet.File{Snippets: []snippet.Snippet{{Trigger: "one"}, {Trigger: "two"}}}
	b := snippet.File{Snippets: []snippet.Snippet{{Trigger: "three"}}}

	got := snippet.Concat(a, snippet.File{}, b)

	triggers := make([]string, 0, got.Len())
	for _, s := range got.Snippets {
		triggers = append(triggers, s.Trigger)
	}
	assert.Equal(t, []string{"one", "two", "three"}, triggers)
}
