/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides fixture and golden file helpers for snipshift tests.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/snipshift/internal/mapfs"
)

// updateGolden rewrites golden files with actual output when -update is set.
var updateGolden = flag.Bool("update", false, "update golden files with actual output")

// testdataDirs are searched in order, since go test runs in the package directory.
var testdataDirs = []string{
	"testdata",
	filepath.Join("..", "testdata"),
	filepath.Join("..", "..", "testdata"),
}

// fixturePath returns the first existing testdata path for rel, or "".
func fixturePath(rel string) string {
	for _, dir := range testdataDirs {
		p := filepath.Join(dir, rel)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// NewFixtureFS loads the fixture directory into a MapFileSystem rooted at rootPath.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	dir := fixturePath(fixtureDir)
	if dir == "" {
		t.Fatalf("could not find fixtures at %s", fixtureDir)
	}

	mfs := mapfs.New()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		mfs.AddFile(filepath.ToSlash(filepath.Join(rootPath, rel)), string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to load fixtures from %s: %v", fixtureDir, err)
	}

	return mfs
}

// LoadFixtureFile reads a single fixture file.
func LoadFixtureFile(t *testing.T, rel string) []byte {
	t.Helper()

	p := fixturePath(rel)
	if p == "" {
		t.Fatalf("could not find fixture %s", rel)
	}
	content, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", rel, err)
	}
	return content
}

// UpdateGoldenFile writes actual to the golden file when -update is set.
func UpdateGoldenFile(t *testing.T, rel string, actual []byte) {
	t.Helper()
	if !*updateGolden {
		return
	}

	target := fixturePath(rel)
	if target == "" {
		target = filepath.Join(testdataDirs[0], rel)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatalf("failed to create directory for golden file %s: %v", rel, err)
	}
	if err := os.WriteFile(target, actual, 0644); err != nil {
		t.Fatalf("failed to write golden file %s: %v", rel, err)
	}
	t.Logf("updated golden file: %s", target)
}
