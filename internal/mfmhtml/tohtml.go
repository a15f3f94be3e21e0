// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mfmhtml

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/safehtml"
	"github.com/mfmbridge/mfmbridge/internal/htmlutil"
	"github.com/mfmbridge/mfmbridge/internal/mfm"
	"github.com/mfmbridge/mfmbridge/internal/sliceutil"
)

// A RemoteUser describes a mentioned user on another server.
type RemoteUser struct {
	Username string `json:"username"`
	Host     string `json:"host"`
	URL      string `json:"url,omitempty"` // profile page
	URI      string `json:"uri"`           // ActivityPub actor ID
}

// ToHTML renders nodes as an HTML fragment followed by extra.
// Mentions of users listed in users link to their profiles;
// other mentions link to the local instance.
//
// If nodes is nil, ToHTML returns a zero HTML and false,
// so that callers can tell “no text” from “empty text”.
// Otherwise it returns true.
func (c *Converter) ToHTML(nodes []mfm.Node, users []RemoteUser, extra safehtml.HTML) (safehtml.HTML, bool) {
	if nodes == nil {
		return safehtml.HTML{}, false
	}
	ctx := context.Background()
	c.metrics.toHTML.Add(ctx, 1)
	r := &renderer{c: c, ctx: ctx, users: users}
	out := r.render(nodes)
	if r.limited {
		c.warnDepth(ctx, "to_html")
	}
	return htmlutil.Trusted(out + extra.String()), true
}

// A renderer renders one tree. Every method returns HTML in
// which all text taken from the tree has been escaped.
type renderer struct {
	c       *Converter
	ctx     context.Context
	users   []RemoteUser
	depth   int
	limited bool // content was dropped at MaxDepth
}

var _ mfm.Handler[string] = (*renderer)(nil)

var esc = htmlutil.Escape

// render renders a list of sibling nodes.
func (r *renderer) render(nodes []mfm.Node) string {
	if r.depth >= r.c.cfg.MaxDepth {
		if len(nodes) > 0 {
			r.limited = true
		}
		return ""
	}
	r.depth++
	defer func() { r.depth-- }()

	var buf strings.Builder
	for _, n := range nodes {
		buf.WriteString(mfm.Dispatch[string](r, n))
	}
	return buf.String()
}

func (r *renderer) Bold(n *mfm.Bold) string {
	return "<b>" + r.render(n.Children) + "</b>"
}

func (r *renderer) Small(n *mfm.Small) string {
	return "<small>" + r.render(n.Children) + "</small>"
}

func (r *renderer) Strike(n *mfm.Strike) string {
	return "<del>" + r.render(n.Children) + "</del>"
}

func (r *renderer) Italic(n *mfm.Italic) string {
	return "<i>" + r.render(n.Children) + "</i>"
}

func (r *renderer) Center(n *mfm.Center) string {
	return `<div style="text-align: center;">` + r.render(n.Children) + "</div>"
}

func (r *renderer) Quote(n *mfm.Quote) string {
	return "<blockquote>" + r.render(n.Children) + "</blockquote>"
}

func (r *renderer) Plain(n *mfm.Plain) string {
	return "<span>" + r.render(n.Children) + "</span>"
}

func (r *renderer) BlockCode(n *mfm.BlockCode) string {
	return "<pre><code>" + esc(n.Code) + "</code></pre>"
}

func (r *renderer) InlineCode(n *mfm.InlineCode) string {
	return "<code>" + esc(n.Code) + "</code>"
}

func (r *renderer) MathInline(n *mfm.MathInline) string {
	return "<code>" + esc(n.Formula) + "</code>"
}

func (r *renderer) MathBlock(n *mfm.MathBlock) string {
	return "<pre><code>" + esc(n.Formula) + "</code></pre>"
}

// EmojiCode keeps the shortcode, set off by zero-width spaces
// so that it does not run into adjacent text.
func (r *renderer) EmojiCode(n *mfm.EmojiCode) string {
	return "\u200b:" + esc(n.Name) + ":\u200b"
}

func (r *renderer) UnicodeEmoji(n *mfm.UnicodeEmoji) string {
	return esc(n.Emoji)
}

func (r *renderer) Hashtag(n *mfm.Hashtag) string {
	href := r.c.cfg.URL + r.c.cfg.TagPath + escapeComponent(n.Hashtag)
	return `<a href="` + esc(href) + `" rel="tag">#` + esc(n.Hashtag) + "</a>"
}

func (r *renderer) Search(n *mfm.Search) string {
	href := r.c.cfg.SearchURL + escapeComponent(n.Query)
	return `<a href="` + esc(href) + `">` + esc(n.Content) + "</a>"
}

func (r *renderer) Link(n *mfm.Link) string {
	u, ok := absoluteURL(n.URL)
	if !ok {
		r.c.degrade(r.ctx, reasonInvalidLink)
		return "[" + r.render(n.Children) + "](" + esc(n.URL) + ")"
	}
	return `<a href="` + esc(u.String()) + `">` + r.render(n.Children) + "</a>"
}

func (r *renderer) URL(n *mfm.URL) string {
	u, ok := absoluteURL(n.URL)
	if !ok {
		r.c.degrade(r.ctx, reasonInvalidURL)
		return esc(n.URL)
	}
	return `<a href="` + esc(u.String()) + `">` + esc(n.URL) + "</a>"
}

func (r *renderer) Mention(n *mfm.Mention) string {
	u, ok := absoluteURL(r.mentionHref(n))
	if !ok {
		r.c.degrade(r.ctx, reasonInvalidMention)
		return esc(n.Acct)
	}
	return `<a href="` + esc(u.String()) + `" class="u-url mention">` + esc(n.Acct) + "</a>"
}

// mentionHref returns the profile URL for a mention:
// the remote user's page if the user is known,
// and otherwise a page on this instance.
func (r *renderer) mentionHref(n *mfm.Mention) string {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, n.Username) && strings.EqualFold(u.Host, n.Host) {
			if u.URL != "" {
				return u.URL
			}
			return u.URI
		}
	}
	acct := n.Acct
	if suffix := "@" + r.c.host; len(acct) > len(suffix) && strings.EqualFold(acct[len(acct)-len(suffix):], suffix) {
		acct = acct[:len(acct)-len(suffix)]
	}
	return r.c.cfg.URL + "/" + acct
}

func (r *renderer) Text(n *mfm.Text) string {
	if !strings.ContainsAny(n.Text, "\r\n") {
		return esc(n.Text)
	}
	lines := splitLines(n.Text)
	for i, l := range lines {
		lines[i] = esc(l)
	}
	// An explicit <br> survives white space collapsing.
	return strings.Join(sliceutil.Intersperse("<br />", lines), "")
}

// splitLines splits s at each CRLF, CR, or LF.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func (r *renderer) Fn(n *mfm.Fn) string {
	switch n.Name {
	case "unixtime":
		if ts, ok := unixtime(n); ok {
			return `<time datetime="` + esc(ts) + `">` + esc(ts) + "</time>"
		}
		r.c.degrade(r.ctx, reasonUnixtime)
		return r.fnDefault(n)

	case "ruby":
		if s, ok := r.fnRuby(n); ok {
			return s
		}
	}
	r.c.degrade(r.ctx, reasonFnFallback)
	return r.fnDefault(n)
}

// fnDefault renders a function HTML has no equivalent for:
// its content in italics, with the name and arguments dropped.
func (r *renderer) fnDefault(n *mfm.Fn) string {
	return "<i>" + r.render(n.Children) + "</i>"
}

// fnRuby renders $[ruby base reading], or $[ruby ...base reading]
// with the reading in the last child and the base made of the
// others. The <rp> parentheses show the reading as “base(reading)”
// where <ruby> is not supported.
func (r *renderer) fnRuby(n *mfm.Fn) (string, bool) {
	var base, rt string
	switch len(n.Children) {
	case 0:
		return "", false
	case 1:
		text, _ := mfm.TextOf(n.Children[0])
		b, t, _ := strings.Cut(text, " ")
		base, rt = esc(b), t
	default:
		last := n.Children[len(n.Children)-1]
		text, ok := mfm.TextOf(last)
		if !ok {
			return "", false
		}
		base, rt = r.render(n.Children[:len(n.Children)-1]), strings.TrimSpace(text)
	}
	return "<ruby>" + base + "<rp>(</rp><rt>" + esc(rt) + "</rt><rp>)</rp></ruby>", true
}

// Seconds since the epoch must fall within the range of
// ECMAScript dates, ±8.64e15 milliseconds, for interoperability.
const maxUnixtime = 8_640_000_000_000

// unixtime returns the ISO 8601 UTC form of the time given
// in seconds by the first child of a $[unixtime] function.
func unixtime(n *mfm.Fn) (string, bool) {
	var text string
	if len(n.Children) > 0 {
		text, _ = mfm.TextOf(n.Children[0])
	}
	sec, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || sec < -maxUnixtime || sec > maxUnixtime {
		return "", false
	}
	return isoTime(time.Unix(sec, 0).UTC()), true
}

// isoTime formats t like ECMAScript's Date.prototype.toISOString:
// millisecond precision, and a signed six-digit year outside 0000-9999.
func isoTime(t time.Time) string {
	rest := t.Format("-01-02T15:04:05.000Z")
	if y := t.Year(); y < 0 || y > 9999 {
		return fmt.Sprintf("%+07d", y) + rest
	}
	return fmt.Sprintf("%04d", t.Year()) + rest
}
