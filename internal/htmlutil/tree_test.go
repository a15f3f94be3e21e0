// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// dump returns a compact description of the nodes, for comparing backends.
func dump(ns []Node) string {
	var buf strings.Builder
	var walk func(Node)
	walk = func(n Node) {
		switch n.Kind() {
		case TextNode:
			fmt.Fprintf(&buf, "%q", n.Text())
		case ElementNode:
			fmt.Fprintf(&buf, "<%s", n.Tag())
			for _, name := range []string{"href", "rel", "class"} {
				if v, ok := n.Attr(name); ok {
					fmt.Fprintf(&buf, " %s=%q", name, v)
				}
			}
			buf.WriteString(">")
			for _, c := range n.Children() {
				walk(c)
			}
			fmt.Fprintf(&buf, "</%s>", n.Tag())
		default:
			buf.WriteString("#other")
		}
	}
	for _, n := range ns {
		walk(n)
	}
	return buf.String()
}

var treeTests = []struct {
	in   string
	want string
}{
	{
		"<p>Hello <b>world</b></p>",
		`<p>"Hello "<b>"world"</b></p>`,
	},
	{
		`<A HREF="https://example.com" rel="nofollow">x</A>`,
		`<a href="https://example.com" rel="nofollow">"x"</a>`,
	},
	{
		"a<!-- c -->b",
		`"a"#other"b"`,
	},
	{
		"fish &amp; chips",
		`"fish & chips"`,
	},
	{
		"<ruby>漢<rp>(</rp><rt>かん</rt><rp>)</rp></ruby>",
		`<ruby>"漢"<rp>"("</rp><rt>"かん"</rt><rp>")"</rp></ruby>`,
	},
}

func TestBackends(t *testing.T) {
	for _, tt := range treeTests {
		net, err := ParseNodes(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := dump(net); got != tt.want {
			t.Errorf("x/net/html %q:\n%s", tt.in, cmp.Diff(tt.want, got))
		}
		sel, err := SelectFragment(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := dump(sel); got != tt.want {
			t.Errorf("goquery %q:\n%s", tt.in, cmp.Diff(tt.want, got))
		}
	}
}

func TestTextContent(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
	}{
		{"<a href=x>@alice</a>", "@alice"},
		{"<p>one<br>two<br/>three</p>", "one\ntwo\nthree"},
		{"<i><b>deep</b> <s>text</s></i>", "deep text"},
		{"<br>", "\n"},
		{"<!-- hidden -->", ""},
	} {
		ns, err := ParseNodes(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		var got string
		for _, n := range ns {
			got += TextContent(n)
		}
		if got != tt.want {
			t.Errorf("TextContent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAttrMissing(t *testing.T) {
	ns, err := ParseNodes(`<a>x</a>`)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := ns[0].Attr("href"); ok || v != "" {
		t.Errorf("Attr(href) = %q, %v, want \"\", false", v, ok)
	}
	if v, ok := ns[0].Children()[0].Attr("href"); ok || v != "" {
		t.Errorf("text Attr(href) = %q, %v, want \"\", false", v, ok)
	}
}
