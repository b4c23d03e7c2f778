/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package logger

import (
	"bytes"
	"os"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetQuiet(false)
		SetVerbose(false)
	})

	Info("wrote %s", "a.json")
	Debug("hidden")
	Warn("skipped %d", 2)

	if got, want := buf.String(), "wrote a.json\nwarning: skipped 2\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf.Reset()
	SetVerbose(true)
	Debug("shown")
	if got, want := buf.String(), "shown\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf.Reset()
	SetQuiet(true)
	Info("hidden")
	Debug("hidden")
	Warn("still shown")
	if got, want := buf.String(), "warning: still shown\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
