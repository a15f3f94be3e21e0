// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlutil

import (
	"strings"

	htmlpkg "golang.org/x/net/html"
)

// FromNet returns a [Node] backed by a golang.org/x/net/html node.
func FromNet(n *htmlpkg.Node) Node {
	return netNode{n}
}

type netNode struct {
	n *htmlpkg.Node
}

func (x netNode) Kind() Kind {
	switch x.n.Type {
	case htmlpkg.TextNode:
		return TextNode
	case htmlpkg.ElementNode:
		return ElementNode
	}
	return OtherNode
}

func (x netNode) Text() string {
	if x.n.Type != htmlpkg.TextNode {
		return ""
	}
	return x.n.Data
}

func (x netNode) Tag() string {
	if x.n.Type != htmlpkg.ElementNode {
		return ""
	}
	// The parser lower-cases HTML elements but not
	// foreign (SVG, MathML) ones.
	return strings.ToLower(x.n.Data)
}

func (x netNode) Attr(name string) (string, bool) {
	return findAttr(x.n, name)
}

func (x netNode) Children() []Node {
	var out []Node
	for c := x.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, netNode{c})
	}
	return out
}

// findAttr returns the value for n's attribute with the given name.
func findAttr(n *htmlpkg.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}
