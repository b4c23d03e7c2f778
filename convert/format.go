/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert

import (
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/snipshift/backend"
	"bennypowers.dev/snipshift/backend/ols"
	"bennypowers.dev/snipshift/backend/ultisnips"
	"bennypowers.dev/snipshift/backend/vscode"
)

// Format names a snippet file format.
type Format string

const (
	// FormatUltiSnips is the UltiSnips line format (.snippets).
	FormatUltiSnips Format = ultisnips.Name

	// FormatOLS is the Obsidian LaTeX Suite JSON5 format.
	FormatOLS Format = ols.Name

	// FormatVSCode is the VS Code snippet JSON format (.code-snippets).
	FormatVSCode Format = vscode.Name
)

// ValidFormats returns all valid format strings.
func ValidFormats() []string {
	return []string{
		string(FormatUltiSnips),
		string(FormatOLS),
		string(FormatVSCode),
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "ultisnips", "snippets", "vim":
		return FormatUltiSnips, nil
	case "ols", "obsidian", "latex-suite", "json", "json5":
		return FormatOLS, nil
	case "vscode", "code":
		return FormatVSCode, nil
	default:
		return "", fmt.Errorf("unknown format: %s (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// DetectFormat infers a format from a file extension.
func DetectFormat(path string) (Format, error) {
	name := path
	if strings.Contains(name, "://") {
		// query and fragment of a URL
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".snippets":
		return FormatUltiSnips, nil
	case ".json", ".json5", ".js":
		return FormatOLS, nil
	case ".code-snippets":
		return FormatVSCode, nil
	default:
		return "", fmt.Errorf("cannot detect snippet format of %s; specify one of: %s", path, strings.Join(ValidFormats(), ", "))
	}
}

// New returns the backend for format.
func New(format Format) (backend.Backend, error) {
	switch format {
	case FormatUltiSnips:
		return ultisnips.New(), nil
	case FormatOLS:
		return ols.New(), nil
	case FormatVSCode:
		return vscode.New(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// All returns every registered backend, in ValidFormats order.
func All() []backend.Backend {
	backends := make([]backend.Backend, 0, len(ValidFormats()))
	for _, name := range ValidFormats() {
		b, err := New(Format(name))
		if err != nil {
			panic(err)
		}
		backends = append(backends, b)
	}
	return backends
}
