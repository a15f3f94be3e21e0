// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mfmhtml converts between MFM and HTML fragments.
//
// [Converter.FromHTML] infers MFM text from HTML arriving from
// federated servers, and [Converter.ToHTML] renders an MFM syntax
// tree as an HTML fragment for delivery to them.
// Neither conversion fails: malformed input degrades to the
// closest plain-text rendering instead.
//
// A Converter holds only immutable configuration and may be
// used by multiple goroutines at once.
package mfmhtml

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxDepth is the default for [Config.MaxDepth].
const DefaultMaxDepth = 128

// Config is the configuration of a [Converter].
type Config struct {
	// URL is the instance's base URL, such as "https://misskey.example".
	// It is required.
	URL string

	// TagPath is the path, relative to URL, of the hashtag
	// search page; the tag name is appended. Default "/tags/".
	TagPath string

	// SearchURL is the search engine prefix used for search
	// nodes; the query is appended.
	// Default "https://www.google.com/search?q=".
	SearchURL string

	// MaxDepth bounds the nesting depth either conversion descends.
	// Deeper content is dropped. Default [DefaultMaxDepth].
	MaxDepth int

	// Normalize folds a hashtag name for comparison.
	// Default [NormalizeTag].
	Normalize func(string) string
}

// A Converter converts between MFM and HTML.
type Converter struct {
	slog    *slog.Logger
	cfg     Config
	host    string // host of cfg.URL
	metrics *metrics
}

// New returns a Converter for the given configuration,
// after filling in defaults for unset fields.
//
// The Converter logs dropped content to lg; if lg is nil,
// the Converter does not log anything.
func New(lg *slog.Logger, cfg Config) (*Converter, error) {
	if lg == nil {
		lg = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("mfmhtml: bad instance URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("mfmhtml: instance URL %q is not an absolute http(s) URL", cfg.URL)
	}
	cfg.URL = strings.TrimSuffix(cfg.URL, "/")
	if cfg.TagPath == "" {
		cfg.TagPath = "/tags/"
	}
	if !strings.HasPrefix(cfg.TagPath, "/") {
		cfg.TagPath = "/" + cfg.TagPath
	}
	if cfg.SearchURL == "" {
		cfg.SearchURL = "https://www.google.com/search?q="
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("mfmhtml: negative MaxDepth %d", cfg.MaxDepth)
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Normalize == nil {
		cfg.Normalize = NormalizeTag
	}
	c := &Converter{
		slog: lg,
		cfg:  cfg,
		host: strings.ToLower(u.Hostname()),
	}
	c.SetMeter(noop.NewMeterProvider().Meter(""))
	return c, nil
}

// SetMeter sets the meter used to create the Converter's
// instruments. It panics if an instrument cannot be created.
// SetMeter must not be called concurrently with conversions.
func (c *Converter) SetMeter(m metric.Meter) {
	ms, err := newMetrics(m)
	if err != nil {
		c.slog.Error("mfmhtml: metric creation failed", "err", err)
		panic(err)
	}
	c.metrics = ms
}

// Config returns the Converter's configuration, with defaults filled in.
func (c *Converter) Config() Config {
	return c.cfg
}

// NormalizeTag folds a hashtag name for comparison:
// it applies Unicode NFKC normalization, which folds
// full-width forms, and then lower-cases the result.
func NormalizeTag(tag string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Lower(language.Und).String(norm.NFKC.String(tag))
}

// warnDepth logs that a conversion hit the depth limit.
func (c *Converter) warnDepth(ctx context.Context, dir string) {
	c.slog.Warn("mfmhtml: nesting too deep, content dropped", "direction", dir, "limit", c.cfg.MaxDepth)
	c.metrics.depthLimited.Add(ctx, 1, metric.WithAttributes(directionAttr(dir)))
}
