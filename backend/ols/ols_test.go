/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ols_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/snipshift/backend"
	"bennypowers.dev/snipshift/backend/ols"
	"bennypowers.dev/snipshift/snippet"
)

func TestParse_JSON5(t *testing.T) {
	input := `[
  // Math mode
  {trigger: "mk", replacement: "$$0$", options: "tA"},
  {trigger: 'dm', replacement: "$$\n$0\n$$", options: "tAw", priority: 1,},
  {
    trigger: "sr",
    replacement: "^{2}",
    options: "Am",
    description: "squared",
    priority: -2,
  },
]`

	file, err := ols.Parse([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, snippet.File{Snippets: []snippet.Snippet{
		{Trigger: "mk", Replacement: "$$0$", Options: snippet.String("tA")},
		{Trigger: "dm", Replacement: "$$\n$0\n$$", Options: snippet.String("tAw"), Priority: snippet.Int64(1)},
		{Trigger: "sr", Replacement: "^{2}", Options: snippet.String("Am"), Description: snippet.String("squared"), Priority: snippet.Int64(-2)},
	}}, file)
}

func TestParse_NullsAreAbsent(t *testing.T) {
	file, err := ols.Parse([]byte(`[{"trigger": "a", "replacement": "b", "description": null, "options": null, "priority": null}]`))
	require.NoError(t, err)
	require.Len(t, file.Snippets, 1)
	assert.Equal(t, snippet.Snippet{Trigger: "a", Replacement: "b"}, file.Snippets[0])
}

func TestParse_KeepsAllOptions(t *testing.T) {
	file, err := ols.Parse([]byte(`[{trigger: "a", replacement: "b", options: "mA"}]`))
	require.NoError(t, err)
	assert.Equal(t, "mA", *file.Snippets[0].Options)
}

func TestParse_PriorityBounds(t *testing.T) {
	file, err := ols.Parse([]byte(`[
  {trigger: "min", replacement: "x", priority: -9223372036854775808},
  {trigger: "big", replacement: "x", priority: 4611686018427387904},
]`))
	require.NoError(t, err)
	require.Len(t, file.Snippets, 2)
	assert.Equal(t, int64(math.MinInt64), *file.Snippets[0].Priority)
	assert.Equal(t, int64(1)<<62, *file.Snippets[1].Priority)
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "  \n", "[]"} {
		file, err := ols.Parse([]byte(input))
		require.NoError(t, err, "input %q", input)
		assert.Empty(t, file.Snippets)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
		index int
		field string
	}{
		{"not json5", `[{trigger: }]`, ols.ErrSyntax, -1, ""},
		{"not an array", `{trigger: "a"}`, ols.ErrSyntax, -1, ""},
		{"missing trigger", `[{trigger: "a", replacement: ""}, {replacement: "b"}]`, ols.ErrMissingTrigger, 1, ""},
		{"empty trigger", `[{trigger: "", replacement: "b"}]`, ols.ErrMissingTrigger, 0, ""},
		{"non-string trigger", `[{trigger: 1, replacement: "b"}]`, ols.ErrInvalidField, 0, "trigger"},
		{"non-string replacement", `[{trigger: "a", replacement: ["b"]}]`, ols.ErrInvalidField, 0, "replacement"},
		{"non-string options", `[{trigger: "a", replacement: "b", options: 3}]`, ols.ErrInvalidField, 0, "options"},
		{"fractional priority", `[{trigger: "a", replacement: "b", priority: 1.5}]`, ols.ErrInvalidField, 0, "priority"},
		{"string priority", `[{trigger: "a", replacement: "b", priority: "high"}]`, ols.ErrInvalidField, 0, "priority"},
		{"priority above int64", `[{trigger: "a", replacement: "b", priority: 9223372036854775808}]`, ols.ErrInvalidField, 0, "priority"},
		{"priority below int64", `[{trigger: "a", replacement: "b", priority: -9223372036854777856}]`, ols.ErrInvalidField, 0, "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ols.Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), "expected %v, got %v", tt.err, err)

			var entryErr *ols.EntryError
			if tt.index < 0 {
				assert.False(t, errors.As(err, &entryErr))
				return
			}
			require.True(t, errors.As(err, &entryErr))
			assert.Equal(t, tt.index, entryErr.Index)
			assert.Equal(t, tt.field, entryErr.Field)
		})
	}
}

func TestRender(t *testing.T) {
	file := &snippet.File{Snippets: []snippet.Snippet{
		{Trigger: "mk", Replacement: "$$0$", Options: snippet.String("tA")},
		{Trigger: "<=", Replacement: "\\leq", Description: snippet.String("less or equal"), Priority: snippet.Int64(2)},
	}}

	out, err := ols.Render(file)
	require.NoError(t, err)

	expected := `[
  {
    "trigger": "mk",
    "replacement": "$$0$",
    "options": "tA"
  },
  {
    "trigger": "<=",
    "replacement": "\\leq",
    "description": "less or equal",
    "priority": 2
  }
]
`
	assert.Equal(t, expected, string(out))
}

func TestRender_Empty(t *testing.T) {
	out, err := ols.Render(&snippet.File{})
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(out))

	out, err = ols.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(out))
}

func TestRoundTrip(t *testing.T) {
	file := snippet.File{Snippets: []snippet.Snippet{
		{Trigger: "a b", Replacement: "multi\nline\n", Description: snippet.String(""), Options: snippet.String("tmc")},
		{Trigger: "x", Replacement: "", Priority: snippet.Int64(0)},
		{Trigger: "&", Replacement: "\\&"},
	}}

	out, err := ols.Render(&file)
	require.NoError(t, err)

	parsed, err := ols.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, file, parsed)
}

func TestBackend(t *testing.T) {
	var b backend.Backend = ols.New()
	assert.Equal(t, "ols", b.Name())
	assert.Equal(t, "ols-in", backend.InFlag(b))
	assert.Equal(t, "ols-out", backend.OutFlag(b))

	_, err := b.Read([]byte("nope"))
	require.Error(t, err)

	var backendErr *backend.Error
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "ols", backendErr.Format)
	assert.Equal(t, backend.OpParse, backendErr.Op)
	assert.True(t, errors.Is(err, ols.ErrSyntax))
}
