/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ultisnips

import (
	"errors"
	"fmt"
)

// Sentinel errors for UltiSnips parsing and rendering.
var (
	// ErrUnknownDirective indicates a top-level line starting with an unrecognized keyword.
	ErrUnknownDirective = errors.New("unknown directive")

	// ErrUnterminatedSnippet indicates a snippet block that reaches end of input without endsnippet.
	ErrUnterminatedSnippet = errors.New("snippet is missing its endsnippet line")

	// ErrMissingTrigger indicates a snippet line with nothing after the snippet keyword.
	ErrMissingTrigger = errors.New("snippet is missing a trigger")

	// ErrUnmatchedQuote indicates a description made of a lone quote character.
	ErrUnmatchedQuote = errors.New("unmatched quote in snippet description")

	// ErrMissingPriority indicates a priority directive without a value.
	ErrMissingPriority = errors.New("priority directive is missing its value")

	// ErrInvalidPriority indicates a priority value that is not a signed integer.
	ErrInvalidPriority = errors.New("priority is not an integer")

	// ErrUnquotableTrigger indicates a trigger for which no candidate quote
	// character yields a snippet line that parses back unchanged.
	ErrUnquotableTrigger = errors.New("unable to find a quote character for trigger")
)

// ParseError locates a parse failure in the input.
type ParseError struct {
	// Line is the 1-based line number of the offending line.
	Line int

	// Token is the offending text, if any.
	Token string

	Err error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: `%s`", e.Line, e.Err, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RenderError identifies the snippet that could not be rendered.
type RenderError struct {
	// Index is the 0-based position of the snippet in the file.
	Index int

	Trigger string

	Err error
}

func (e *RenderError) Error() string {
	if errors.Is(e.Err, ErrUnquotableTrigger) {
		return fmt.Sprintf("snippet %d: %v %q; consider a trigger with fewer special characters", e.Index+1, e.Err, e.Trigger)
	}
	return fmt.Sprintf("snippet %d: %v", e.Index+1, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
