// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mfmhtml

import (
	"context"
	"regexp"
	"strings"

	"github.com/mfmbridge/mfmbridge/internal/htmlutil"
)

// brNewline matches a <br> tag followed by a newline.
// Some servers (Pixelfed, for one) emit both for one line break.
var brNewline = regexp.MustCompile(`(?i)<br\s?/?>\r?\n`)

// FromHTML returns the MFM text best describing the HTML fragment src.
// Links whose text, after [Config.Normalize], is one of hashtags
// are taken to be hashtags and become plain "#tag" text.
// The result has no leading or trailing white space.
func (c *Converter) FromHTML(src string, hashtags []string) string {
	src = brNewline.ReplaceAllString(src, "\n")
	nodes, err := htmlutil.ParseNodes(src)
	if err != nil {
		// Unreachable: parsing from a string cannot fail
		// and no parse limits are configured.
		c.slog.Error("mfmhtml: HTML parse failed", "err", err)
		return ""
	}
	return c.FromNodes(nodes, hashtags)
}

// FromNodes is like [Converter.FromHTML] but converts
// an already parsed HTML fragment.
func (c *Converter) FromNodes(nodes []htmlutil.Node, hashtags []string) string {
	ctx := context.Background()
	c.metrics.fromHTML.Add(ctx, 1)
	a := &analyzer{c: c, ctx: ctx}
	if hashtags != nil {
		a.hashtags = make(map[string]bool, len(hashtags))
		for _, h := range hashtags {
			a.hashtags[c.tagKey(h)] = true
		}
	}
	for _, n := range nodes {
		a.node(n, 0)
	}
	if a.limited {
		c.warnDepth(ctx, "from_html")
	}
	return strings.TrimSpace(a.buf.String())
}

// An analyzer accumulates the MFM text for one HTML fragment.
type analyzer struct {
	c        *Converter
	ctx      context.Context
	hashtags map[string]bool // normalized; nil if none were given
	buf      strings.Builder
	limited  bool // content was dropped at MaxDepth
}

func (a *analyzer) children(n htmlutil.Node, depth int) {
	for _, c := range n.Children() {
		a.node(c, depth+1)
	}
}

// wrap writes the children of n between open and close.
func (a *analyzer) wrap(open string, n htmlutil.Node, depth int, close string) {
	a.buf.WriteString(open)
	a.children(n, depth)
	a.buf.WriteString(close)
}

func (a *analyzer) node(n htmlutil.Node, depth int) {
	if depth > a.c.cfg.MaxDepth {
		a.limited = true
		return
	}
	switch n.Kind() {
	case htmlutil.TextNode:
		a.buf.WriteString(n.Text())
		return
	case htmlutil.OtherNode:
		return
	}

	switch n.Tag() {
	case "br":
		a.buf.WriteString("\n")

	case "a":
		a.buf.WriteString(a.anchor(n))

	case "h1":
		a.wrap("【", n, depth, "】\n")

	case "b", "strong":
		a.wrap("**", n, depth, "**")

	case "small":
		a.wrap("<small>", n, depth, "</small>")

	case "s", "del":
		a.wrap("~~", n, depth, "~~")

	case "i", "em":
		a.wrap("<i>", n, depth, "</i>")

	case "ruby":
		a.ruby(n, depth)

	case "pre":
		if code, ok := preCode(n); ok {
			a.buf.WriteString("\n```\n")
			a.buf.WriteString(code)
			a.buf.WriteString("\n```\n")
			break
		}
		a.children(n, depth)

	case "code":
		a.wrap("`", n, depth, "`")

	case "blockquote":
		if t := htmlutil.TextContent(n); t != "" {
			a.buf.WriteString("\n> ")
			a.buf.WriteString(strings.ReplaceAll(t, "\n", "\n> "))
		}

	case "p", "h2", "h3", "h4", "h5", "h6":
		a.wrap("\n\n", n, depth, "")

	case "div", "header", "footer", "article", "li", "dt", "dd":
		a.wrap("\n", n, depth, "")

	default:
		// Inline and unknown elements contribute only their content.
		a.children(n, depth)
	}
}

// preCode returns the code text of a <pre> element whose only
// child is a <code> element, or is text spelling one out.
func preCode(n htmlutil.Node) (string, bool) {
	kids := n.Children()
	if len(kids) != 1 {
		return "", false
	}
	k := kids[0]
	switch k.Kind() {
	case htmlutil.ElementNode:
		if k.Tag() == "code" {
			return htmlutil.TextContent(k), true
		}
	case htmlutil.TextNode:
		t := k.Text()
		if len(t) >= len("<code></code>") && strings.HasPrefix(t, "<code>") && strings.HasSuffix(t, "</code>") {
			return t[len("<code>") : len(t)-len("</code>")], true
		}
	}
	return "", false
}

// tagKey returns the key under which a hashtag name or hashtag
// link text is looked up. Names arrive both with and without the
// leading '#' (ActivityPub tag objects include it), so it is dropped.
func (c *Converter) tagKey(s string) string {
	return c.cfg.Normalize(strings.TrimPrefix(s, "#"))
}

// anchor returns the MFM text for an <a> element.
func (a *analyzer) anchor(n htmlutil.Node) string {
	txt := htmlutil.TextContent(n)
	href, hasHref := n.Attr("href")

	if a.hashtags != nil && hasHref && a.hashtags[a.c.tagKey(txt)] {
		// The MFM parser links hashtags again.
		return txt
	}

	rel, _ := n.Attr("rel")
	if strings.HasPrefix(txt, "@") && !strings.HasPrefix(rel, "me ") {
		switch strings.Count(txt, "@") {
		case 1:
			// The host was left out of the link text; recover it from the link.
			if host := hostOf(href); host != "" {
				return txt + "@" + host
			}
		case 2:
			return txt
		}
	}

	return linkText(txt, href)
}

// hostOf returns the lower-cased host name of the URL href,
// or "" if href is not an absolute URL.
func hostOf(href string) string {
	if href == "" {
		return ""
	}
	u, ok := absoluteURL(href)
	if !ok {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// linkText returns the MFM for a link with the given text and target.
func linkText(txt, href string) string {
	switch {
	case href == "" && txt == "":
		return ""
	case href == "":
		return txt
	case txt == "" || txt == href:
		if matchURL(href) == urlExact {
			return href
		}
		return "<" + href + ">"
	case matchURL(href) == urlPrefix:
		// Bracket the target so that trailing characters,
		// a closing parenthesis in particular, stay in the URL.
		return "[" + txt + "](<" + href + ">)"
	}
	return "[" + txt + "](" + href + ")"
}
