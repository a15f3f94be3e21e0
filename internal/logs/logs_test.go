// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestJSON(t *testing.T) {
	testTime = time.Date(2020, time.August, 20, 1, 2, 3, 0, time.UTC)
	defer func() { testTime = time.Time{} }()

	for _, test := range []struct {
		name  string
		level slog.Level
		attrs []slog.Attr
		want  string
	}{
		{
			"info",
			slog.LevelInfo,
			[]slog.Attr{slog.Int("c", 7)},
			`{"time":"2020-08-20T01:02:03Z","severity":"INFO","message":"hello","c":7}`,
		},
		{
			"group",
			slog.LevelWarn,
			[]slog.Attr{slog.Group("g", slog.String("message", "x"))},
			`{"time":"2020-08-20T01:02:03Z","severity":"WARN","message":"hello","g":{"message":"x"}}`,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			h, err := New(&buf, "json", slog.LevelInfo)
			if err != nil {
				t.Fatal(err)
			}
			slog.New(h).LogAttrs(context.Background(), test.level, "hello", test.attrs...)
			got := buf.String()
			want := test.want + "\n"
			if got != want {
				t.Errorf("\ngot  %s\nwant %s", got, want)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	h, err := New(&buf, "text", level)
	if err != nil {
		t.Fatal(err)
	}
	lg := slog.New(h)
	lg.Info("quiet")
	lg.Warn("loud", "n", 1)
	got := buf.String()
	if strings.Contains(got, "quiet") || !strings.Contains(got, "msg=loud n=1") {
		t.Errorf("log output:\n%s\nwant only the warning", got)
	}

	level.Set(slog.LevelDebug)
	lg.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("debug record dropped after lowering level")
	}
}

func TestErrors(t *testing.T) {
	if _, err := New(new(bytes.Buffer), "xml", slog.LevelInfo); err == nil {
		t.Errorf("New(xml) succeeded, want error")
	}
	if _, err := ParseLevel("loudest"); err == nil {
		t.Errorf("ParseLevel(loudest) succeeded, want error")
	}
}
