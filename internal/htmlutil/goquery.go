// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	htmlpkg "golang.org/x/net/html"
)

// FromSelection returns a [Node] backed by the first node
// of a goquery selection. It returns nil if sel is empty.
func FromSelection(sel *goquery.Selection) Node {
	if sel.Length() == 0 {
		return nil
	}
	return selNode{sel.First()}
}

// SelectFragment parses src as the content of a <div> element
// using goquery and returns the top-level nodes.
func SelectFragment(src string) ([]Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + src + "</div>"))
	if err != nil {
		return nil, err
	}
	return contents(doc.Find("body > div").First()), nil
}

type selNode struct {
	sel *goquery.Selection
}

func (x selNode) Kind() Kind {
	switch x.sel.Get(0).Type {
	case htmlpkg.TextNode:
		return TextNode
	case htmlpkg.ElementNode:
		return ElementNode
	}
	return OtherNode
}

func (x selNode) Text() string {
	if x.Kind() != TextNode {
		return ""
	}
	return x.sel.Text()
}

func (x selNode) Tag() string {
	if x.Kind() != ElementNode {
		return ""
	}
	return strings.ToLower(goquery.NodeName(x.sel))
}

func (x selNode) Attr(name string) (string, bool) {
	if x.Kind() != ElementNode {
		return "", false
	}
	return x.sel.Attr(strings.ToLower(name))
}

func (x selNode) Children() []Node {
	return contents(x.sel)
}

// contents returns the child nodes of sel, text nodes included.
func contents(sel *goquery.Selection) []Node {
	var out []Node
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		out = append(out, selNode{c})
	})
	return out
}
