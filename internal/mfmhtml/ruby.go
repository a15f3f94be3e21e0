// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mfmhtml

import (
	"strings"
	"unicode"

	"github.com/mfmbridge/mfmbridge/internal/htmlutil"
)

// A rubyPair is one base text and its reading.
type rubyPair struct {
	base string
	rt   string
}

// classifyRuby returns the base/reading pairs of a <ruby> element.
// It reports false if the element's children do not have the
// simple shape that MFM's $[ruby base reading] can express:
// base texts without spaces or brackets, each optionally followed
// by one <rt> with the same restriction, and <rp> elements, which
// are ignored. Text containing spaces and non-element nodes are
// skipped.
func classifyRuby(n htmlutil.Node) ([]rubyPair, bool) {
	var pairs []rubyPair
	for _, c := range n.Children() {
		switch c.Kind() {
		case htmlutil.TextNode:
			if t := c.Text(); !hasRubyBreak(t) {
				pairs = append(pairs, rubyPair{base: t})
			}
			continue
		case htmlutil.OtherNode:
			continue
		}
		switch {
		case c.Tag() == "rp":
			continue
		case c.Tag() == "rt" && len(pairs) > 0:
			rt := htmlutil.TextContent(c)
			if hasRubyBreak(rt) {
				return nil, false
			}
			pairs[len(pairs)-1].rt = rt
		default:
			return nil, false
		}
	}
	return pairs, true
}

// hasRubyBreak reports whether s contains a character that
// would end an MFM ruby argument early.
func hasRubyBreak(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '[' || r == ']'
	})
}

// ruby writes the MFM for a <ruby> element: a $[ruby] function
// per pair, or the element's content as ordinary inline text if
// it cannot be expressed that way.
func (a *analyzer) ruby(n htmlutil.Node, depth int) {
	pairs, ok := classifyRuby(n)
	if !ok {
		a.c.degrade(a.ctx, reasonRubyRejected)
		a.children(n, depth)
		return
	}
	for _, p := range pairs {
		a.buf.WriteString("$[ruby ")
		a.buf.WriteString(p.base)
		a.buf.WriteString(" ")
		a.buf.WriteString(p.rt)
		a.buf.WriteString("]")
	}
}
