/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package ols reads and writes Obsidian LaTeX Suite snippet files.
//
// An OLS snippet file is a JSON5 array of objects:
//
//	[
//	  {trigger: "mk", replacement: "$$0$", options: "tA"},
//	  // comments and trailing commas are allowed
//	  {trigger: "dm", replacement: "$$\n$0\n$$", options: "tAw", priority: 1},
//	]
//
// Function replacements and regex literals are JavaScript, not JSON5, and
// cannot be read.
//
// See https://github.com/artisticat1/obsidian-latex-suite
package ols

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/yosuke-furukawa/json5/encoding/json5"

	"bennypowers.dev/snipshift/backend"
	"bennypowers.dev/snipshift/snippet"
)

// Name is the backend name of the Obsidian LaTeX Suite format.
const Name = "ols"

// Sentinel errors for OLS parsing.
var (
	// ErrSyntax indicates input that is not a JSON5 array.
	ErrSyntax = errors.New("invalid JSON5")

	// ErrInvalidField indicates a snippet field of the wrong type.
	ErrInvalidField = errors.New("invalid field")

	// ErrMissingTrigger indicates a snippet without a trigger.
	ErrMissingTrigger = errors.New("snippet is missing a trigger")
)

// EntryError identifies the array entry that could not be read.
type EntryError struct {
	// Index is the 0-based position of the entry in the array.
	Index int

	// Field is the offending field, if any.
	Field string

	Err error
}

func (e *EntryError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("snippet %d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("snippet %d: %v `%s`", e.Index+1, e.Err, e.Field)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// entry is the on-disk shape of one snippet, in OLS's documented field order.
type entry struct {
	Trigger     string  `json:"trigger"`
	Replacement string  `json:"replacement"`
	Options     *string `json:"options,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *int64  `json:"priority,omitempty"`
}

// Backend implements backend.Backend for OLS files.
type Backend struct{}

// New creates a new OLS backend.
func New() *Backend {
	return &Backend{}
}

// Name implements backend.Backend.
func (b *Backend) Name() string {
	return Name
}

// Read implements backend.Backend.
func (b *Backend) Read(data []byte) (snippet.File, error) {
	file, err := Parse(data)
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
	return out, nil
}

// Parse parses the contents of an OLS snippet file. Whitespace-only input is
// an empty file.
func Parse(data []byte) (snippet.File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return snippet.File{}, nil
	}

	var raw []map[string]any
	if err := json5.Unmarshal(data, &raw); err != nil {
		return snippet.File{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	var file snippet.File
	for i, obj := range raw {
		s, err := decodeEntry(obj)
		if err != nil {
			var entryErr *EntryError
			if errors.As(err, &entryErr) {
				entryErr.Index = i
				return snippet.File{}, entryErr
			}
			return snippet.File{}, &EntryError{Index: i, Err: err}
		}
		file.Snippets = append(file.Snippets, s)
	}
	return file, nil
}

func decodeEntry(obj map[string]any) (snippet.Snippet, error) {
	var s snippet.Snippet

	trigger, ok := obj["trigger"].(string)
	if !ok {
		if _, present := obj["trigger"]; present {
			return s, &EntryError{Field: "trigger", Err: ErrInvalidField}
		}
		return s, ErrMissingTrigger
	}
	if trigger == "" {
		return s, ErrMissingTrigger
	}
	s.Trigger = trigger

	switch v := obj["replacement"].(type) {
	case string:
		s.Replacement = v
	case nil:
	default:
		return s, &EntryError{Field: "replacement", Err: ErrInvalidField}
	}

	var err error
	if s.Description, err = optionalString(obj, "description"); err != nil {
		return s, err
	}
	if s.Options, err = optionalString(obj, "options"); err != nil {
		return s, err
	}

	switch v := obj["priority"].(type) {
	case nil:
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return s, &EntryError{Field: "priority", Err: ErrInvalidField}
		}
		s.Priority = snippet.Int64(int64(v))
	default:
		return s, &EntryError{Field: "priority", Err: ErrInvalidField}
	}

	return s, nil
}

// optionalString returns the string field key, nil when it is absent or null.
func optionalString(obj map[string]any, key string) (*string, error) {
	switch v := obj[key].(type) {
	case nil:
		return nil, nil
	case string:
		return snippet.String(v), nil
	default:
		return nil, &EntryError{Field: key, Err: ErrInvalidField}
	}
}

// Render renders a file as a pretty-printed JSON array. JSON is a subset of
// JSON5, so the output reads back with Parse.
func Render(file *snippet.File) ([]byte, error) {
	entries := make([]entry, 0, file.Len())
	if file != nil {
		for _, s := range file.Snippets {
			entries = append(entries, entry{
				Trigger:     s.Trigger,
				Replacement: s.Replacement,
				Options:     s.Options,
				Description: s.Description,
				Priority:    s.Priority,
			})
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
