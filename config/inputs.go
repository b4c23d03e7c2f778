/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"fmt"

	"bennypowers.dev/snipshift/convert"
	snipfs "bennypowers.dev/snipshift/fs"
)

// InputsFor resolves command line file arguments into inputs. Arguments may
// be globs and are taken relative to the working directory. With no
// arguments the configured inputs are used instead. A non-empty format
// overrides extension detection for every input.
func (c *Config) InputsFor(filesystem snipfs.FileSystem, rootDir string, args []string, format string) ([]convert.Input, error) {
	if len(args) == 0 {
		inputs, err := c.expandInputs(filesystem, rootDir, format)
		if err != nil {
			return nil, fmt.Errorf("error expanding config inputs: %w", err)
		}
		return inputs, nil
	}

	var inputs []convert.Input
	for _, arg := range args {
		paths, err := expandFilePath(filesystem, "", arg)
		if err != nil {
			return nil, fmt.Errorf("error expanding %s: %w", arg, err)
		}
		for _, path := range paths {
			f, err := resolveFormat(format, path)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, convert.Input{Path: path, Format: f})
		}
	}
	return inputs, nil
}
