/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package backend provides the interface shared by snippet file formats.
//
// A backend reads one format into a [snippet.File] and writes a
// [snippet.File] back out, so any two backends can be chained through the
// common representation. Backends never touch the filesystem: callers hand
// them whole file contents and receive whole file contents back.
package backend

import (
	"fmt"

	"bennypowers.dev/snipshift/snippet"
)

// Backend reads and writes one snippet file format.
type Backend interface {
	// Name is a short, all-lowercase identifier for the format.
	Name() string

	// Read parses the complete contents of one file.
	// The first error aborts parsing; no partial result is returned.
	Read(data []byte) (snippet.File, error)

	// Write renders a file. The input is never modified.
	Write(file *snippet.File) ([]byte, error)
}

// InFlag returns the command line flag name that selects b as the input format.
func InFlag(b Backend) string {
	return b.Name() + "-in"
}

// OutFlag returns the command line flag name that selects b as an output format.
func OutFlag(b Backend) string {
	return b.Name() + "-out"
}

// Op names the direction a backend failed in.
type Op string

const (
	// OpParse is reading a file into snippets.
	OpParse Op = "parse"

	// OpRender is writing snippets into a file.
	OpRender Op = "render"
)

// Error reports a failure inside a backend along with the backend name.
type Error struct {
	Format string
	Op     Op
	Err    error
}

// Wrap returns err wrapped in an Error for the given backend, or nil if err is nil.
func Wrap(b Backend, op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Format: b.Name(), Op: op, Err: err}
}

func (e *Error) Error() string {
	switch e.Op {
	case OpRender:
		return fmt.Sprintf("while rendering %s snippets: %v", e.Format, e.Err)
	default:
		return fmt.Sprintf("in %s snippets: %v", e.Format, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}
