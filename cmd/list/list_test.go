/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package list

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/snipshift/cmd/render"
	"bennypowers.dev/snipshift/convert"
	"bennypowers.dev/snipshift/internal/mapfs"
)

func TestRows(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("tex.snippets", "snippet zz\nZ\nendsnippet\npriority 2\nsnippet aa \"first\" A\nA\nendsnippet\n", 0644)
	mfs.AddFile("broken.snippets", "bogus\n", 0644)

	var errOut bytes.Buffer
	rows := Rows(mfs, &errOut, []convert.Input{
		{Path: "tex.snippets", Format: convert.FormatUltiSnips},
		{Path: "broken.snippets", Format: convert.FormatUltiSnips},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "zz", rows[0].Trigger)
	assert.Equal(t, render.Row{Trigger: "aa", Description: "first", Options: "A", Priority: 2, Lines: 1, File: "tex.snippets"}, rows[1])
	assert.Contains(t, errOut.String(), "broken.snippets")
}

func TestSortRows(t *testing.T) {
	rows := []render.Row{
		{Trigger: "b"},
		{Trigger: "a", Priority: -1},
		{Trigger: "a", Priority: 3},
	}

	SortRows(rows)

	assert.Equal(t, []render.Row{
		{Trigger: "a", Priority: 3},
		{Trigger: "a", Priority: -1},
		{Trigger: "b"},
	}, rows)
}
