// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mfm

import "fmt"

// A Handler has one method per node type.
// [Dispatch] calls the method matching a node's type.
type Handler[T any] interface {
	Bold(*Bold) T
	Small(*Small) T
	Strike(*Strike) T
	Italic(*Italic) T
	Fn(*Fn) T
	BlockCode(*BlockCode) T
	Center(*Center) T
	EmojiCode(*EmojiCode) T
	UnicodeEmoji(*UnicodeEmoji) T
	Hashtag(*Hashtag) T
	InlineCode(*InlineCode) T
	MathInline(*MathInline) T
	MathBlock(*MathBlock) T
	Link(*Link) T
	Mention(*Mention) T
	Quote(*Quote) T
	Text(*Text) T
	URL(*URL) T
	Search(*Search) T
	Plain(*Plain) T
}

// Dispatch calls the method of h for n's type and returns its result.
// It panics if n is nil.
func Dispatch[T any](h Handler[T], n Node) T {
	switch n := n.(type) {
	case *Bold:
		return h.Bold(n)
	case *Small:
		return h.Small(n)
	case *Strike:
		return h.Strike(n)
	case *Italic:
		return h.Italic(n)
	case *Fn:
		return h.Fn(n)
	case *BlockCode:
		return h.BlockCode(n)
	case *Center:
		return h.Center(n)
	case *EmojiCode:
		return h.EmojiCode(n)
	case *UnicodeEmoji:
		return h.UnicodeEmoji(n)
	case *Hashtag:
		return h.Hashtag(n)
	case *InlineCode:
		return h.InlineCode(n)
	case *MathInline:
		return h.MathInline(n)
	case *MathBlock:
		return h.MathBlock(n)
	case *Link:
		return h.Link(n)
	case *Mention:
		return h.Mention(n)
	case *Quote:
		return h.Quote(n)
	case *Text:
		return h.Text(n)
	case *URL:
		return h.URL(n)
	case *Search:
		return h.Search(n)
	case *Plain:
		return h.Plain(n)
	}
	// Unreachable: Node is sealed.
	panic(fmt.Sprintf("mfm: Dispatch of %T", n))
}
