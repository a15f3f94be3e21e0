// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the mfmconv configuration file.
//
// A configuration file is YAML, for example:
//
//	url: https://misskey.example
//	tagPath: /tags/
//	searchURL: https://duckduckgo.com/?q=
//	maxDepth: 64
//	logLevel: debug
//	logFormat: json
//
// Unknown fields are an error. Command-line flags registered
// with [Flags] override values read from the file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mfmbridge/mfmbridge/internal/mfmhtml"
	"gopkg.in/yaml.v3"
)

// Config is the mfmconv configuration.
type Config struct {
	URL       string `yaml:"url"`
	TagPath   string `yaml:"tagPath"`
	SearchURL string `yaml:"searchURL"`
	MaxDepth  int    `yaml:"maxDepth"`
	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads the configuration file at path.
// Fields missing from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(path, f)
}

// Parse reads a configuration from r.
// The name is used only in error messages.
func Parse(name string, r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if c.MaxDepth < 0 {
		return nil, fmt.Errorf("%s: negative maxDepth %d", name, c.MaxDepth)
	}
	return c, nil
}

// Converter returns the converter configuration described by c.
func (c *Config) Converter() mfmhtml.Config {
	return mfmhtml.Config{
		URL:       c.URL,
		TagPath:   c.TagPath,
		SearchURL: c.SearchURL,
		MaxDepth:  c.MaxDepth,
	}
}

// Flags registers a flag on fs for each configuration field.
// After fs is parsed, the returned function copies the flags
// actually set on the command line into a Config.
func Flags(fs *flag.FlagSet) func(*Config) {
	var f Config
	fs.StringVar(&f.URL, "url", "", "instance base `URL`")
	fs.StringVar(&f.TagPath, "tagpath", "", "hashtag page `path` under the instance URL")
	fs.StringVar(&f.SearchURL, "searchurl", "", "search engine `prefix` for search blocks")
	fs.IntVar(&f.MaxDepth, "maxdepth", 0, "maximum nesting `depth` converted")
	fs.StringVar(&f.LogLevel, "level", "", "log `level`")
	fs.StringVar(&f.LogFormat, "logformat", "", "log `format` (text or json)")

	return func(c *Config) {
		fs.Visit(func(fl *flag.Flag) {
			switch fl.Name {
			case "url":
				c.URL = f.URL
			case "tagpath":
				c.TagPath = f.TagPath
			case "searchurl":
				c.SearchURL = f.SearchURL
			case "maxdepth":
				c.MaxDepth = f.MaxDepth
			case "level":
				c.LogLevel = f.LogLevel
			case "logformat":
				c.LogFormat = f.LogFormat
			}
		})
	}
}
