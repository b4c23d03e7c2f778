/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load reads snippet inputs from local files or over HTTP.
//
// Remote inputs let a project convert snippet collections published on the
// web, e.g.
//
//	snipshift convert --ols-in https://example.com/latex-suite.json --ultisnips-out tex.snippets
package load

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"time"

	snipfs "bennypowers.dev/snipshift/fs"
)

var (
	// ErrRemoteWrite is returned when writing to a URL.
	ErrRemoteWrite = errors.New("cannot write to a remote location")

	// ErrNetworkDisabled is returned when reading a URL without a Fetcher.
	ErrNetworkDisabled = errors.New("network access is disabled")
)

// IsRemote reports whether path is an http or https URL.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://")
}

// hasRemoteScheme also matches URLs whose double slash was cleaned away,
// as filepath.Dir does.
func hasRemoteScheme(path string) bool {
	return strings.HasPrefix(path, "https:") || strings.HasPrefix(path, "http:")
}

// FileSystem reads URLs through a Fetcher and delegates everything else to
// a base filesystem.
type FileSystem struct {
	snipfs.FileSystem

	ctx     context.Context
	fetcher Fetcher
	timeout time.Duration
}

// NewFileSystem wraps base so that ReadFile accepts URLs. A nil fetcher
// disables remote reads; a zero timeout means DefaultTimeout.
func NewFileSystem(ctx context.Context, base snipfs.FileSystem, fetcher Fetcher, timeout time.Duration) *FileSystem {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &FileSystem{FileSystem: base, ctx: ctx, fetcher: fetcher, timeout: timeout}
}

// Default returns the OS filesystem with HTTP reads enabled.
func Default(ctx context.Context) *FileSystem {
	return NewFileSystem(ctx, snipfs.NewOSFileSystem(), NewHTTPFetcher(DefaultMaxSize), DefaultTimeout)
}

// ReadFile implements fs.FileSystem.
func (f *FileSystem) ReadFile(name string) ([]byte, error) {
	if !IsRemote(name) {
		return f.FileSystem.ReadFile(name)
	}
	if f.fetcher == nil {
		return nil, &RemoteError{URL: name, Err: ErrNetworkDisabled}
	}

	ctx, cancel := context.WithTimeout(f.ctx, f.timeout)
	defer cancel()
	return f.fetcher.Fetch(ctx, name)
}

// WriteFile implements fs.FileSystem.
func (f *FileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if hasRemoteScheme(name) {
		return &fs.PathError{Op: "write", Path: name, Err: ErrRemoteWrite}
	}
	return f.FileSystem.WriteFile(name, data, perm)
}

// MkdirAll implements fs.FileSystem.
func (f *FileSystem) MkdirAll(path string, perm fs.FileMode) error {
	if hasRemoteScheme(path) {
		return &fs.PathError{Op: "mkdir", Path: path, Err: ErrRemoteWrite}
	}
	return f.FileSystem.MkdirAll(path, perm)
}

// Exists implements fs.FileSystem. URLs are assumed to exist until fetched.
func (f *FileSystem) Exists(path string) bool {
	if IsRemote(path) {
		return true
	}
	return f.FileSystem.Exists(path)
}
