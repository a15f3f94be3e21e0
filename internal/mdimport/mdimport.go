// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mdimport converts CommonMark text, as some servers
// send alongside a note's HTML, into an MFM syntax tree.
//
// MFM has no lists, headings, or images, so those map to the
// nearest thing it does have: prefixed lines, bold text, and links.
package mdimport

import (
	"strconv"
	"strings"

	"github.com/mfmbridge/mfmbridge/internal/mfm"
	"rsc.io/markdown"
)

// Convert parses the Markdown text and returns the equivalent MFM nodes.
// The result is never nil.
func Convert(text string) []mfm.Node {
	p := &markdown.Parser{
		AutoLinkText:  true,
		Strikethrough: true,
		Emoji:         true,
	}
	var b builder
	b.block(p.Parse(text))
	if b.nodes == nil {
		return []mfm.Node{}
	}
	return b.nodes
}

// A builder accumulates a list of sibling nodes,
// merging adjacent text.
type builder struct {
	nodes []mfm.Node
}

func (b *builder) add(n mfm.Node) {
	b.nodes = append(b.nodes, n)
}

func (b *builder) text(s string) {
	if s == "" {
		return
	}
	if n := len(b.nodes); n > 0 {
		if t, ok := b.nodes[n-1].(*mfm.Text); ok {
			t.Text += s
			return
		}
	}
	b.nodes = append(b.nodes, &mfm.Text{Text: s})
}

// blocks adds the blocks bs separated by sep.
func (b *builder) blocks(bs []markdown.Block, sep string) {
	first := true
	for _, x := range bs {
		if _, ok := x.(*markdown.Empty); ok {
			continue
		}
		if !first {
			b.text(sep)
		}
		first = false
		b.block(x)
	}
}

func blockNodes(bs []markdown.Block, sep string) []mfm.Node {
	var b builder
	b.blocks(bs, sep)
	return b.nodes
}

func (b *builder) block(x markdown.Block) {
	switch x := x.(type) {
	case *markdown.Document:
		b.blocks(x.Blocks, "\n\n")
	case *markdown.Paragraph:
		b.block(x.Text)
	case *markdown.Text:
		b.inlines(x.Inline)
	case *markdown.Heading:
		b.add(&mfm.Bold{Children: inlineNodes(x.Text.Inline)})
	case *markdown.Quote:
		b.add(&mfm.Quote{Children: blockNodes(x.Blocks, "\n")})
	case *markdown.CodeBlock:
		lang, _, _ := strings.Cut(strings.TrimSpace(x.Info), " ")
		b.add(&mfm.BlockCode{Code: strings.Join(x.Text, "\n"), Lang: lang})
	case *markdown.List:
		for i, item := range x.Items {
			if i > 0 {
				b.text("\n")
			}
			b.text(listMarker(x, i))
			b.block(item)
		}
	case *markdown.Item:
		b.blocks(x.Blocks, "\n")
	case *markdown.HTMLBlock:
		b.text(strings.Join(x.Text, "\n"))
	case *markdown.ThematicBreak:
		b.text("---")
	case *markdown.Empty:
		// nothing
	default:
		b.text(strings.TrimSuffix(markdown.Format(x), "\n"))
	}
}

// listMarker returns the prefix for item i of list l.
func listMarker(l *markdown.List, i int) string {
	if l.Bullet == '.' || l.Bullet == ')' {
		return strconv.Itoa(l.Start+i) + string(l.Bullet) + " "
	}
	return "- "
}

func inlineNodes(xs []markdown.Inline) []mfm.Node {
	var b builder
	b.inlines(xs)
	return b.nodes
}

func (b *builder) inlines(xs []markdown.Inline) {
	for _, x := range xs {
		b.inline(x)
	}
}

func (b *builder) inline(x markdown.Inline) {
	switch x := x.(type) {
	case *markdown.Plain:
		b.text(x.Text)
	case *markdown.Escaped:
		b.text(x.Text)
	case *markdown.Code:
		b.add(&mfm.InlineCode{Code: x.Text})
	case *markdown.Strong:
		b.add(&mfm.Bold{Children: inlineNodes(x.Inner)})
	case *markdown.Emph:
		b.add(&mfm.Italic{Children: inlineNodes(x.Inner)})
	case *markdown.Del:
		b.add(&mfm.Strike{Children: inlineNodes(x.Inner)})
	case *markdown.Link:
		kids := inlineNodes(x.Inner)
		if len(kids) == 1 {
			if t, ok := mfm.TextOf(kids[0]); ok && t == x.URL {
				b.add(&mfm.URL{URL: x.URL})
				return
			}
		}
		b.add(&mfm.Link{URL: x.URL, Children: kids})
	case *markdown.AutoLink:
		b.add(&mfm.URL{URL: x.URL, Brackets: true})
	case *markdown.Image:
		kids := inlineNodes(x.Inner)
		if len(kids) == 0 {
			kids = []mfm.Node{&mfm.Text{Text: x.URL}}
		}
		b.add(&mfm.Link{URL: x.URL, Children: kids})
	case *markdown.Emoji:
		b.add(&mfm.UnicodeEmoji{Emoji: x.Text})
	case *markdown.HTMLTag:
		b.text(x.Text)
	case *markdown.HardBreak, *markdown.SoftBreak:
		b.text("\n")
	}
}
