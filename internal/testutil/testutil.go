// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testutil implements various testing utilities.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// LogWriter returns an [io.Writer] that logs each Write using t.Log.
func LogWriter(t *testing.T) io.Writer {
	return testWriter{t}
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(b []byte) (int, error) {
	w.t.Logf("%s", b)
	return len(b), nil
}

// Slogger returns a [*slog.Logger] that writes each message
// using t.Log.
func Slogger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(LogWriter(t), nil))
}

// SlogBuffer returns a [*slog.Logger] that writes each message to out.
func SlogBuffer() (lg *slog.Logger, out *bytes.Buffer) {
	var buf bytes.Buffer
	lg = slog.New(slog.NewTextHandler(&buf, nil))
	return lg, &buf
}

// Check calls t.Fatal(err) if err is not nil.
func Check(t *testing.T, err error) {
	if err != nil {
		t.Helper()
		t.Fatal(err)
	}
}

// Checker returns a check function that
// calls t.Fatal if err is not nil.
func Checker(t *testing.T) (check func(err error)) {
	return func(err error) {
		if err != nil {
			t.Helper()
			t.Fatal(err)
		}
	}
}

// ExpectLog checks if the message is present in buf exactly n times,
// and calls t.Error if not.
func ExpectLog(t *testing.T, buf *bytes.Buffer, message string, n int) {
	t.Helper()
	if mentions := bytes.Count(buf.Bytes(), []byte(message)); mentions != n {
		t.Errorf("logs mention %q %d times, want %d mentions:\n%s", message, mentions, n, buf.Bytes())
	}
}

// A Pair is one test case from a txtar archive: an input file
// and the expected output file that follows it.
type Pair struct {
	Name    string // file name without extension
	Comment string // the archive's comment
	In      string
	Out     string
}

// Pairs reads every archive matching pattern and returns
// its files as consecutive (input, output) pairs, such as
// "case.html" followed by "case.mfm". It calls t.Fatal if an
// archive cannot be read or its files do not pair up by name.
//
// A trailing newline is removed from each file, since txtar
// always adds one.
func Pairs(t *testing.T, pattern string) map[string][]Pair {
	t.Helper()
	files, err := filepath.Glob(pattern)
	Check(t, err)
	if len(files) == 0 {
		t.Fatalf("no files match %s", pattern)
	}
	out := make(map[string][]Pair)
	for _, file := range files {
		a, err := txtar.ParseFile(file)
		Check(t, err)
		if len(a.Files)%2 != 0 {
			t.Fatalf("%s: odd number of files", file)
		}
		base := filepath.Base(file)
		for i := 0; i+2 <= len(a.Files); i += 2 {
			in, want := a.Files[i], a.Files[i+1]
			name := strings.TrimSuffix(in.Name, filepath.Ext(in.Name))
			if name != strings.TrimSuffix(want.Name, filepath.Ext(want.Name)) {
				t.Fatalf("%s: mismatched file pair: %s and %s", file, in.Name, want.Name)
			}
			out[base] = append(out[base], Pair{
				Name:    name,
				Comment: string(a.Comment),
				In:      strings.TrimSuffix(string(in.Data), "\n"),
				Out:     strings.TrimSuffix(string(want.Data), "\n"),
			})
		}
	}
	return out
}
