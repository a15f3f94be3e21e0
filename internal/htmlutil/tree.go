// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package htmlutil provides HTML utilities: escaping,
// fragment parsing, and a minimal read-only view of an HTML
// node tree that can be backed by different HTML libraries.
package htmlutil

import (
	"strings"

	htmlpkg "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// A Kind is the kind of a [Node].
type Kind int

const (
	OtherNode   Kind = iota // comments, doctypes, and anything else
	TextNode                // character data
	ElementNode             // an element with a tag name
)

// A Node is a read-only view of one node in a parsed HTML tree.
// Tree walkers are written against Node so that the same walker
// can run over trees from any HTML library.
type Node interface {
	Kind() Kind

	// Text returns the (unescaped) character data of a text node.
	// It returns "" for other kinds.
	Text() string

	// Tag returns the lower-case tag name of an element.
	// It returns "" for other kinds.
	Tag() string

	// Attr returns the value of the named attribute and
	// whether it is present. Names match case-insensitively.
	Attr(name string) (string, bool)

	// Children returns the node's children in document order.
	Children() []Node
}

// divContext is the context element for [ParseFragment].
var divContext = &htmlpkg.Node{
	Type:     htmlpkg.ElementNode,
	Data:     "div",
	DataAtom: atom.Div,
}

// ParseFragment parses src as the content of a <div> element
// and returns the resulting top-level nodes.
func ParseFragment(src string) ([]*htmlpkg.Node, error) {
	return htmlpkg.ParseFragment(strings.NewReader(src), divContext)
}

// ParseNodes is like [ParseFragment] but returns the nodes
// wrapped with [FromNet].
func ParseNodes(src string) ([]Node, error) {
	ns, err := ParseFragment(src)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(ns))
	for i, n := range ns {
		out[i] = FromNet(n)
	}
	return out, nil
}

// TextContent returns the text of n and its descendants
// concatenated in document order, with each <br> element
// contributing a newline. Nothing else is interpreted.
func TextContent(n Node) string {
	var buf strings.Builder
	stack := []Node{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n.Kind() {
		case TextNode:
			buf.WriteString(n.Text())
		case ElementNode:
			if n.Tag() == "br" {
				buf.WriteString("\n")
				continue
			}
			kids := n.Children()
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, kids[i])
			}
		}
	}
	return buf.String()
}
