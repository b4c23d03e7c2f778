/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package vscode reads and writes VS Code snippet files.
//
// A VS Code snippet file is a JSON object keyed by snippet name, and may
// carry comments and trailing commas:
//
//	{
//	  "Inline math": {
//	    "prefix": ["mk", "im"],
//	    "body": ["$$1$"],
//	    "description": "inline math",
//	    "scope": "markdown,latex"
//	  }
//	}
//
// Each prefix becomes its own snippet. Options and priorities have no VS Code
// equivalent and are not written; scopes are not read.
package vscode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/jsonc"

	"bennypowers.dev/snipshift/backend"
	"bennypowers.dev/snipshift/snippet"
)

// Name is the backend name of the VS Code snippet format.
const Name = "vscode"

// Sentinel errors for VS Code snippet parsing.
var (
	// ErrSyntax indicates input that is not a JSON object of snippets.
	ErrSyntax = errors.New("invalid snippet JSON")

	// ErrInvalidField indicates a snippet field of the wrong type.
	ErrInvalidField = errors.New("invalid field")

	// ErrMissingPrefix indicates a snippet with no prefix to trigger it.
	ErrMissingPrefix = errors.New("snippet is missing a prefix")
)

// SnippetError identifies the named snippet that could not be read.
type SnippetError struct {
	Name  string
	Field string
	Err   error
}

func (e *SnippetError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("snippet %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("snippet %q: %v `%s`", e.Name, e.Err, e.Field)
}

func (e *SnippetError) Unwrap() error {
	return e.Err
}

// Snippet is the on-disk shape of one VS Code snippet.
type Snippet struct {
	Scope       string          `json:"scope,omitempty"`
	Prefix      json.RawMessage `json:"prefix"`
	Body        json.RawMessage `json:"body"`
	Description *string         `json:"description,omitempty"`
}

// output is the written shape: a single prefix and the body split into lines.
type output struct {
	Prefix      string   `json:"prefix"`
	Body        []string `json:"body"`
	Description string   `json:"description,omitempty"`
}

// Backend implements backend.Backend for VS Code snippet files.
type Backend struct{}

// New creates a new VS Code backend.
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

// Parse parses a VS Code snippet file, keeping the snippets in file order.
// Whitespace-only input is an empty file.
func Parse(data []byte) (snippet.File, error) {
	data = jsonc.ToJSON(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return snippet.File{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return snippet.File{}, fmt.Errorf("%w: expected an object of snippets", ErrSyntax)
	}

	var file snippet.File
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return snippet.File{}, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		name, _ := tok.(string)

		var raw Snippet
		if err := dec.Decode(&raw); err != nil {
			return snippet.File{}, &SnippetError{Name: name, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
		}

		snippets, err := decodeSnippet(name, raw)
		if err != nil {
			return snippet.File{}, err
		}
		file.Snippets = append(file.Snippets, snippets...)
	}

	if _, err := dec.Token(); err != nil {
		return snippet.File{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return file, nil
}

func decodeSnippet(name string, raw Snippet) ([]snippet.Snippet, error) {
	prefixes, err := stringOrList(raw.Prefix)
	if err != nil {
		return nil, &SnippetError{Name: name, Field: "prefix", Err: ErrInvalidField}
	}
	if len(prefixes) == 0 {
		return nil, &SnippetError{Name: name, Err: ErrMissingPrefix}
	}

	body, err := stringOrList(raw.Body)
	if err != nil {
		return nil, &SnippetError{Name: name, Field: "body", Err: ErrInvalidField}
	}
	replacement := strings.Join(body, "\n")

	snippets := make([]snippet.Snippet, 0, len(prefixes))
	for _, prefix := range prefixes {
		if prefix == "" {
			return nil, &SnippetError{Name: name, Err: ErrMissingPrefix}
		}
		s := snippet.Snippet{Trigger: prefix, Replacement: replacement}
		if raw.Description != nil {
			s.Description = snippet.String(*raw.Description)
		}
		snippets = append(snippets, s)
	}
	return snippets, nil
}

// stringOrList decodes a field that may be a string or an array of strings.
// An absent or null field is empty.
func stringOrList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Render renders a file as a VS Code snippet object. Snippets are named by
// description, falling back to trigger, with a counter appended to repeated
// names.
func Render(file *snippet.File) ([]byte, error) {
	var buf bytes.Buffer
	if file.Len() == 0 {
		return []byte("{}\n"), nil
	}

	used := make(map[string]int)
	buf.WriteString("{\n")
	for i, s := range file.Snippets {
		if s.Trigger == "" {
			return nil, fmt.Errorf("snippet %d: empty trigger", i)
		}

		name := uniqueName(snippetName(s), used)
		key, err := encode(name, "")
		if err != nil {
			return nil, err
		}
		value, err := encode(output{
			Prefix:      s.Trigger,
			Body:        strings.Split(s.Replacement, "\n"),
			Description: stringValue(s.Description),
		}, "  ")
		if err != nil {
			return nil, err
		}

		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(file.Snippets)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func snippetName(s snippet.Snippet) string {
	if s.Description != nil && *s.Description != "" {
		return *s.Description
	}
	return s.Trigger
}

func uniqueName(name string, used map[string]int) string {
	used[name]++
	n := used[name]
	if n == 1 {
		return name
	}
	candidate := fmt.Sprintf("%s (%d)", name, n)
	for used[candidate] > 0 {
		n++
		candidate = fmt.Sprintf("%s (%d)", name, n)
	}
	used[candidate]++
	return candidate
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// encode marshals v without HTML escaping, indenting nested lines by prefix.
func encode(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
