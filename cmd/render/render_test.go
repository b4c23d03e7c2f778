/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/snipshift/snippet"
)

func testRows() []Row {
	return ComputeRows([]snippet.Snippet{
		{Trigger: "mk", Replacement: "$$0$", Options: snippet.String("tA")},
		{Trigger: "dm", Replacement: "$$\n$0\n$$", Description: snippet.String("display math"), Options: snippet.String("wA"), Priority: snippet.Int64(1)},
		{Trigger: "a|b", Replacement: "x"},
	}, "tex.snippets")
}

func TestToTitleCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"trigger", "Trigger"},
		{"priority", "Priority"},
		{"description", "Description"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := toTitleCase(tt.input); result != tt.expected {
				t.Errorf("toTitleCase(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestComputeRows(t *testing.T) {
	rows := testRows()
	require.Len(t, rows, 3)

	assert.Equal(t, Row{Trigger: "mk", Options: "tA", Priority: 0, Lines: 1, File: "tex.snippets"}, rows[0])
	assert.Equal(t, Row{Trigger: "dm", Description: "display math", Options: "wA", Priority: 1, Lines: 3, File: "tex.snippets"}, rows[1])
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, testRows()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Trigger"))
	assert.Contains(t, lines[0], "Priority")
	assert.Contains(t, lines[1], "mk")
	assert.Contains(t, lines[1], " - ")
	assert.Contains(t, lines[2], "display math")
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, testRows()))

	out := buf.String()
	assert.Contains(t, out, "## Priority 0\n")
	assert.Contains(t, out, "## Priority 1\n")
	assert.Contains(t, out, `| a\|b |`)
	assert.Less(t, strings.Index(out, "## Priority 0"), strings.Index(out, "## Priority 1"))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, testRows()))

	var decoded []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testRows(), decoded)
}

func TestOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Output(&buf, "triggers", testRows()))
	assert.Equal(t, "mk\ndm\na|b\n", buf.String())

	err := Output(&buf, "xml", testRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
