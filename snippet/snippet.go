/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package snippet provides the format-neutral snippet collection types that
// every snippet backend reads into and writes from.
package snippet

// File is an ordered collection of snippets. Order is file order and is
// preserved by every backend; snippets are never sorted.
type File struct {
	Snippets []Snippet `json:"snippets" yaml:"snippets"`
}

// Snippet represents one expansion rule.
type Snippet struct {
	// Trigger is the text the user types to invoke the expansion.
	// It is never empty and may contain whitespace.
	Trigger string `json:"trigger" yaml:"trigger"`

	// Replacement is the expansion body, verbatim, possibly multi-line.
	Replacement string `json:"replacement" yaml:"replacement"`

	// Description is an optional short annotation.
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`

	// Options is an optional string of single-character behavior flags.
	// Flags are kept in their original order, unknown flags included.
	Options *string `json:"options,omitempty" yaml:"options,omitempty"`

	// Priority influences evaluation order in the host tool.
	// nil means no priority was given, which backends treat as 0.
	Priority *int64 `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// String returns a pointer to s, for filling optional fields.
func String(s string) *string {
	return &s
}

// Int64 returns a pointer to n, for filling optional fields.
func Int64(n int64) *int64 {
	return &n
}

// EffectivePriority returns the snippet's priority, or 0 when it has none.
func (s Snippet) EffectivePriority() int64 {
	if s.Priority == nil {
		return 0
	}
	return *s.Priority
}

// HasDescription reports whether a description is present, even if empty.
func (s Snippet) HasDescription() bool {
	return s.Description != nil
}

// HasOptions reports whether an options string is present, even if empty.
func (s Snippet) HasOptions() bool {
	return s.Options != nil
}

// Clone returns a deep copy of the snippet. Optional fields of the copy do
// not alias the original.
func (s Snippet) Clone() Snippet {
	c := Snippet{
		Trigger:     s.Trigger,
		Replacement: s.Replacement,
	}
	if s.Description != nil {
		c.Description = String(*s.Description)
	}
	if s.Options != nil {
		c.Options = String(*s.Options)
	}
	if s.Priority != nil {
		c.Priority = Int64(*s.Priority)
	}
	return c
}

// Len returns the number of snippets in the file.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Snippets)
}

// Clone returns a deep copy of the file.
func (f *File) Clone() File {
	if f == nil {
		return File{}
	}
	out := File{Snippets: make([]Snippet, len(f.Snippets))}
	for i, s := range f.Snippets {
		out.Snippets[i] = s.Clone()
	}
	return out
}

// Normalized returns a deep copy in which every absent priority is replaced
// with an explicit 0. Priority state in directive-based formats is only
// observable through its running value, so two files are equivalent after a
// round trip when their normalized forms are equal.
func (f *File) Normalized() File {
	out := f.Clone()
	for i := range out.Snippets {
		if out.Snippets[i].Priority == nil {
			out.Snippets[i].Priority = Int64(0)
		}
	}
	return out
}

// Concat joins files in argument order into a new file.
func Concat(files ...File) File {
	var n int
	for _, f := range files {
		n += len(f.Snippets)
	}
	out := File{Snippets: make([]Snippet, 0, n)}
	for _, f := range files {
		for _, s := range f.Snippets {
			out.Snippets = append(out.Snippets, s.Clone())
		}
	}
	return out
}
