/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides the CLI's stderr logger. It can be silenced while
// serving MCP, where stdout and stderr belong to the protocol client.
package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	logger  = log.New(os.Stderr, "", 0)
	quiet   bool
	verbose bool
)

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", 0)
}

// SetQuiet suppresses Info and Debug messages. Warnings are still printed.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetVerbose enables Debug messages.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	logger.Printf("warning: "+format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if quiet {
		return
	}
	logger.Printf(format, args...)
}

// Debug logs a debug message when verbose output is enabled.
func Debug(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if quiet || !verbose {
		return
	}
	logger.Printf(format, args...)
}
