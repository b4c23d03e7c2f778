/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package ultisnips reads and writes UltiSnips snippet files.
//
// The format is line oriented. Top-level lines are comments (#), blank,
// priority directives, or the opening line of a snippet block:
//
//	priority -10
//
//	snippet trigger "description" options
//	body
//	endsnippet
//
// A trigger containing whitespace is wrapped in a quote character of the
// author's choosing; the first and last character of the trigger text are the
// quote pair. See :h UltiSnips-basic-syntax.
package ultisnips

import (
	"bennypowers.dev/snipshift/backend"
	"bennypowers.dev/snipshift/snippet"
)

// Name is the backend name of the UltiSnips format.
const Name = "ultisnips"

// Backend implements backend.Backend for UltiSnips files.
type Backend struct{}

// New creates a new UltiSnips backend.
func New() *Backend {
	return &Backend{}
}

// Name implements backend.Backend.
func (b *Backend) Name() string {
	return Name
}

// Read implements backend.Backend.
func (b *Backend) Read(data []byte) (snippet.File, error) {
	file, err := Parse(string(data))
	if err != nil {
		return snippet.File{}, backend.Wrap(b, backend.OpParse, err)
	}
	return file, nil
}

// Write implements backend.Backend.
func (b *Backend) Write(file *snippet.File) ([]byte, error) {
	out, err := Render(file)
	if err != nil {
		return nil, backend.Wrap(b, backend.OpRender, err)
	}
	return []byte(out), nil
}
