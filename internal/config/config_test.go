// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mfmbridge/mfmbridge/internal/mfmhtml"
	"github.com/mfmbridge/mfmbridge/internal/testutil"
)

const sample = `
url: https://misskey.example
tagPath: /t/
maxDepth: 64
logFormat: json
`

func TestParse(t *testing.T) {
	c, err := Parse("sample.yaml", strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		URL:       "https://misskey.example",
		TagPath:   "/t/",
		MaxDepth:  64,
		LogLevel:  "info",
		LogFormat: "json",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}

	wantConv := mfmhtml.Config{URL: "https://misskey.example", TagPath: "/t/", MaxDepth: 64}
	got := c.Converter()
	if got.URL != wantConv.URL || got.TagPath != wantConv.TagPath ||
		got.SearchURL != wantConv.SearchURL || got.MaxDepth != wantConv.MaxDepth || got.Normalize != nil {
		t.Errorf("Converter() = %+v, want %+v", got, wantConv)
	}
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse("empty.yaml", strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("Parse(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"uri: https://misskey.example\n", // unknown field
		"maxDepth: lots\n",
		"maxDepth: -1\n",
		"url: [\n",
	} {
		_, err := Parse("bad.yaml", strings.NewReader(in))
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
			continue
		}
		if !strings.HasPrefix(err.Error(), "bad.yaml: ") {
			t.Errorf("Parse(%q) error %q does not name the file", in, err)
		}
	}
}

func TestLoad(t *testing.T) {
	check := testutil.Checker(t)
	file := filepath.Join(t.TempDir(), "mfmconv.yaml")
	check(os.WriteFile(file, []byte(sample), 0666))
	c, err := Load(file)
	check(err)
	if c.URL != "https://misskey.example" {
		t.Errorf("Load: URL = %q", c.URL)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load(missing) succeeded, want error")
	}
}

func TestFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	apply := Flags(fs)
	if err := fs.Parse([]string{"-url", "https://other.example", "-level", "debug"}); err != nil {
		t.Fatal(err)
	}
	c, err := Parse("sample.yaml", strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	apply(c)
	want := &Config{
		URL:       "https://other.example",
		TagPath:   "/t/",
		MaxDepth:  64,
		LogLevel:  "debug",
		LogFormat: "json",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
}
