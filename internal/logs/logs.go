// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logs constructs the [slog.Handler] used by the mfmconv command.
//
// The "json" format writes one object per line using the field names
// most log collectors treat specially: "message" for the message,
// "severity" for the level, and an RFC3339 "time".
// The "text" format is the standard [slog.TextHandler].
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Formats lists the formats accepted by [New].
var Formats = []string{"text", "json"}

// New returns a handler writing records at or above level to w
// in the named format.
func New(w io.Writer, format string, level slog.Leveler) (slog.Handler, error) {
	switch format {
	case "text", "":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}), nil
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replaceAttr,
		}), nil
	}
	return nil, fmt.Errorf("logs: unknown format %q (want one of %v)", format, Formats)
}

// ParseLevel returns a [slog.LevelVar] set to the named level,
// such as "debug" or "warn+2".
func ParseLevel(name string) (*slog.LevelVar, error) {
	level := new(slog.LevelVar)
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, fmt.Errorf("logs: %w", err)
	}
	return level, nil
}

// If testTime is non-zero, replaceAttr will use it as the time.
var testTime time.Time

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		if a.Value.Kind() == slog.KindTime {
			tm := a.Value.Time()
			if !testTime.IsZero() {
				tm = testTime
			}
			a.Value = slog.StringValue(tm.Format(time.RFC3339))
		}
	case slog.MessageKey:
		a.Key = "message"
	case slog.LevelKey:
		a.Key = "severity"
	}
	return a
}
