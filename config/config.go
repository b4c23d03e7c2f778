/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides project configuration for snippet conversion.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/snipshift/convert"
	"bennypowers.dev/snipshift/load"
)

// Config lists the snippet files a project converts.
type Config struct {
	// Inputs are the snippet files to read (paths or globs).
	Inputs []InputSpec `yaml:"inputs" json:"inputs"`

	// Outputs are the files to write the combined snippets to.
	Outputs []OutputSpec `yaml:"outputs" json:"outputs"`
}

// InputSpec names an input file or glob. It can be written as a plain path
// string or as an object with an explicit format.
type InputSpec struct {
	// Path is the file path, relative to the project root. Supports ** globs.
	Path string `yaml:"path" json:"path"`

	// Format overrides detection from the file extension.
	Format string `yaml:"format" json:"format"`
}

// OutputSpec names an output file. It can be written as a "format:path"
// string or as an object.
type OutputSpec struct {
	// Format is the output format. Detected from Path when empty.
	Format string `yaml:"format" json:"format"`

	// Path is the file path, relative to the project root, or "-" for stdout.
	Path string `yaml:"path" json:"path"`
}

// UnmarshalYAML handles both string and object forms for InputSpec.
func (s *InputSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Path = node.Value
		return nil
	}

	type rawInputSpec InputSpec
	return node.Decode((*rawInputSpec)(s))
}

// UnmarshalJSON handles both string and object forms for InputSpec.
func (s *InputSpec) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Path = str
		return nil
	}

	type rawInputSpec InputSpec
	return json.Unmarshal(data, (*rawInputSpec)(s))
}

// UnmarshalYAML handles both string and object forms for OutputSpec.
func (s *OutputSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = ParseOutputSpec(node.Value)
		return nil
	}

	type rawOutputSpec OutputSpec
	return node.Decode((*rawOutputSpec)(s))
}

// UnmarshalJSON handles both string and object forms for OutputSpec.
func (s *OutputSpec) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = ParseOutputSpec(str)
		return nil
	}

	type rawOutputSpec OutputSpec
	return json.Unmarshal(data, (*rawOutputSpec)(s))
}

// ParseOutputSpec parses the "format:path" shorthand. A value without a
// known format prefix is a bare path.
func ParseOutputSpec(s string) OutputSpec {
	formatPart, pathPart, found := strings.Cut(s, ":")
	if found && !load.IsRemote(s) {
		if _, err := convert.ParseFormat(formatPart); err == nil {
			return OutputSpec{Format: formatPart, Path: pathPart}
		}
	}
	return OutputSpec{Path: s}
}

// Default returns an empty config.
func Default() *Config {
	return &Config{}
}

// ResolveOutputs returns the configured outputs with formats resolved and
// relative paths joined to rootDir.
func (c *Config) ResolveOutputs(rootDir string) ([]convert.Output, error) {
	outputs := make([]convert.Output, 0, len(c.Outputs))
	for _, spec := range c.Outputs {
		format, err := resolveFormat(spec.Format, spec.Path)
		if err != nil {
			return nil, err
		}

		path := spec.Path
		if path != convert.Stdout && !filepath.IsAbs(path) && !load.IsRemote(path) {
			path = filepath.Join(rootDir, path)
		}
		outputs = append(outputs, convert.Output{Path: path, Format: format})
	}
	return outputs, nil
}

// resolveFormat parses an explicit format, or detects one from path.
func resolveFormat(format, path string) (convert.Format, error) {
	if format != "" {
		return convert.ParseFormat(format)
	}
	if path == convert.Stdout {
		return "", fmt.Errorf("output to stdout needs an explicit format")
	}
	return convert.DetectFormat(path)
}
