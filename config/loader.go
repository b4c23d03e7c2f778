/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/snipshift/convert"
	snipfs "bennypowers.dev/snipshift/fs"
	"bennypowers.dev/snipshift/load"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "snippets"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/snippets.{yaml,yml,json} in rootDir.
// Returns nil if no config found (not an error).
func Load(filesystem snipfs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg := &Config{}
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
			}
		case ".json":
			// JSON configs may carry comments and trailing commas
			if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
				return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
			}
		}

		return cfg, nil
	}

	return nil, nil
}

// LoadOrDefault returns config or defaults if not found or invalid.
func LoadOrDefault(filesystem snipfs.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

// ExpandInputs expands glob patterns in Inputs and resolves each file's format.
// Files matched by a glob are returned in lexical order; a plain path is
// returned as is, so a missing file surfaces when it is read.
func (c *Config) ExpandInputs(filesystem snipfs.FileSystem, rootDir string) ([]convert.Input, error) {
	return c.expandInputs(filesystem, rootDir, "")
}

// expandInputs expands Inputs, using override as the format of every input
// when it is non-empty.
func (c *Config) expandInputs(filesystem snipfs.FileSystem, rootDir, override string) ([]convert.Input, error) {
	var result []convert.Input

	for _, spec := range c.Inputs {
		paths, err := expandFilePath(filesystem, rootDir, spec.Path)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			format := spec.Format
			if override != "" {
				format = override
			}
			resolved, err := resolveFormat(format, path)
			if err != nil {
				return nil, err
			}
			result = append(result, convert.Input{Path: path, Format: resolved})
		}
	}

	return result, nil
}

// expandFilePath expands a single file path which may contain globs.
func expandFilePath(filesystem snipfs.FileSystem, rootDir, pattern string) ([]string, error) {
	if load.IsRemote(pattern) {
		return []string{pattern}, nil
	}

	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}

	if !containsGlob(pattern) {
		return []string{pattern}, nil
	}

	return expandGlob(filesystem, pattern)
}

// containsGlob returns true if the pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob walks the non-glob prefix of pattern and matches every file
// below it with doublestar, so patterns like snippets/**/*.snippets work.
func expandGlob(filesystem snipfs.FileSystem, pattern string) ([]string, error) {
	baseDir := pattern
	for containsGlob(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}

	relPattern := strings.TrimPrefix(pattern, baseDir)
	relPattern = strings.TrimPrefix(relPattern, string(filepath.Separator))
	relPattern = filepath.ToSlash(relPattern)

	if !filesystem.Exists(baseDir) {
		return nil, nil
	}

	var matches []string
	err := fs.WalkDir(filesystem, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		relPath := strings.TrimPrefix(path, baseDir)
		relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
		relPath = strings.TrimPrefix(relPath, "/")

		if matched, _ := doublestar.Match(relPattern, filepath.ToSlash(relPath)); matched {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}
