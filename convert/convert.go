/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert reads snippet files in one format and writes them in others.
package convert

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"bennypowers.dev/snipshift/fs"
	"bennypowers.dev/snipshift/load"
	"bennypowers.dev/snipshift/snippet"
)

// Stdout is the output path that writes to the caller's writer instead of a file.
const Stdout = "-"

// Input is one file to read.
type Input struct {
	Path   string
	Format Format
}

// Output is one file to write.
type Output struct {
	Path   string
	Format Format
}

// Convert converts the contents of one file between formats in memory.
func Convert(data []byte, from, to Format) ([]byte, error) {
	in, err := New(from)
	if err != nil {
		return nil, err
	}
	out, err := New(to)
	if err != nil {
		return nil, err
	}

	file, err := in.Read(data)
	if err != nil {
		return nil, err
	}
	return out.Write(&file)
}

// ReadInputs reads every input and concatenates the snippets in input order.
// The first failure aborts.
func ReadInputs(filesystem fs.FileSystem, inputs []Input) (snippet.File, error) {
	files := make([]snippet.File, 0, len(inputs))
	for _, in := range inputs {
		file, err := ReadFile(filesystem, in)
		if err != nil {
			return snippet.File{}, err
		}
		files = append(files, file)
	}
	return snippet.Concat(files...), nil
}

// ReadFile reads and parses a single input file.
func ReadFile(filesystem fs.FileSystem, in Input) (snippet.File, error) {
	b, err := New(in.Format)
	if err != nil {
		return snippet.File{}, err
	}

	data, err := filesystem.ReadFile(in.Path)
	var remote *load.RemoteError
	if errors.As(err, &remote) {
		return snippet.File{}, fmt.Errorf("could not fetch remote %s snippet file: %w", in.Format, err)
	}
	if err != nil {
		return snippet.File{}, fmt.Errorf("could not read %s snippet file at %s: %w", in.Format, in.Path, err)
	}

	file, err := b.Read(data)
	if err != nil {
		return snippet.File{}, fmt.Errorf("%s: %w", in.Path, err)
	}
	return file, nil
}

// WriteOutputs renders file once per output. Outputs with path Stdout are
// written to stdout. Every output is rendered before anything is written, so
// a render failure leaves no partial results.
func WriteOutputs(filesystem fs.FileSystem, stdout io.Writer, file *snippet.File, outputs []Output) error {
	rendered := make([][]byte, len(outputs))
	for i, out := range outputs {
		b, err := New(out.Format)
		if err != nil {
			return err
		}
		data, err := b.Write(file)
		if err != nil {
			return fmt.Errorf("%s: %w", out.Path, err)
		}
		rendered[i] = data
	}

	for i, out := range outputs {
		if out.Path == Stdout {
			if _, err := stdout.Write(rendered[i]); err != nil {
				return fmt.Errorf("error writing to stdout: %w", err)
			}
			continue
		}

		if dir := filepath.Dir(out.Path); dir != "." && dir != "" {
			if err := filesystem.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("error creating directory for %s: %w", out.Path, err)
			}
		}
		if err := filesystem.WriteFile(out.Path, rendered[i], 0644); err != nil {
			return fmt.Errorf("error writing to %s: %w", out.Path, err)
		}
	}
	return nil
}
