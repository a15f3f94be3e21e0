// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mfm defines the syntax tree of MFM, the lightweight
// markup used for note text, as produced by an MFM parser.
//
// The tree is a closed set of node types: every type in this
// package implements [Node], and no type outside it can.
// Code that must handle every node type implements [Handler]
// and calls [Dispatch], so that adding a node type breaks the
// build of every incomplete handler.
package mfm

// A Type names a node type, using the names of the
// mfm-js wire format.
type Type string

const (
	TypeBold         Type = "bold"
	TypeSmall        Type = "small"
	TypeStrike       Type = "strike"
	TypeItalic       Type = "italic"
	TypeFn           Type = "fn"
	TypeBlockCode    Type = "blockCode"
	TypeCenter       Type = "center"
	TypeEmojiCode    Type = "emojiCode"
	TypeUnicodeEmoji Type = "unicodeEmoji"
	TypeHashtag      Type = "hashtag"
	TypeInlineCode   Type = "inlineCode"
	TypeMathInline   Type = "mathInline"
	TypeMathBlock    Type = "mathBlock"
	TypeLink         Type = "link"
	TypeMention      Type = "mention"
	TypeQuote        Type = "quote"
	TypeText         Type = "text"
	TypeURL          Type = "url"
	TypeSearch       Type = "search"
	TypePlain        Type = "plain"
)

// A Node is a node in an MFM syntax tree.
// The concrete type is one of the pointer types in this package.
type Node interface {
	Type() Type
	node()
}

// Bold is **text**.
type Bold struct {
	Children []Node
}

// Small is <small>text</small>.
type Small struct {
	Children []Node
}

// Strike is ~~text~~.
type Strike struct {
	Children []Node
}

// Italic is <i>text</i> or *text*.
type Italic struct {
	Children []Node
}

// Fn is a function call $[name.arg=value text].
// Args maps argument names to values; an argument given
// without a value (a flag) maps to "".
type Fn struct {
	Name     string
	Args     map[string]string
	Children []Node
}

// BlockCode is a fenced code block. Lang is "" if no language was given.
type BlockCode struct {
	Code string
	Lang string
}

// Center is <center>text</center>.
type Center struct {
	Children []Node
}

// EmojiCode is a custom emoji shortcode :name:.
type EmojiCode struct {
	Name string
}

// UnicodeEmoji is a Unicode emoji sequence.
type UnicodeEmoji struct {
	Emoji string
}

// Hashtag is #tag. Hashtag holds the tag without the #.
type Hashtag struct {
	Hashtag string
}

// InlineCode is `code`.
type InlineCode struct {
	Code string
}

// MathInline is \(formula\).
type MathInline struct {
	Formula string
}

// MathBlock is \[formula\].
type MathBlock struct {
	Formula string
}

// Link is [text](url), or ?[text](url) when Silent.
type Link struct {
	URL      string
	Silent   bool
	Children []Node
}

// Mention is @user or @user@host. Host is "" for a local user.
// Acct is the handle as written, such as "@alice@example.com".
type Mention struct {
	Username string
	Host     string
	Acct     string
}

// Quote is a block of lines prefixed by "> ".
type Quote struct {
	Children []Node
}

// Text is plain text, possibly spanning lines.
type Text struct {
	Text string
}

// URL is a bare URL, or <url> when Brackets.
type URL struct {
	URL      string
	Brackets bool
}

// Search is a "query Search" line. Content is the full line.
type Search struct {
	Query   string
	Content string
}

// Plain is <plain>text</plain>, whose content is not parsed.
type Plain struct {
	Children []Node
}

func (*Bold) Type() Type         { return TypeBold }
func (*Small) Type() Type        { return TypeSmall }
func (*Strike) Type() Type       { return TypeStrike }
func (*Italic) Type() Type       { return TypeItalic }
func (*Fn) Type() Type           { return TypeFn }
func (*BlockCode) Type() Type    { return TypeBlockCode }
func (*Center) Type() Type       { return TypeCenter }
func (*EmojiCode) Type() Type    { return TypeEmojiCode }
func (*UnicodeEmoji) Type() Type { return TypeUnicodeEmoji }
func (*Hashtag) Type() Type      { return TypeHashtag }
func (*InlineCode) Type() Type   { return TypeInlineCode }
func (*MathInline) Type() Type   { return TypeMathInline }
func (*MathBlock) Type() Type    { return TypeMathBlock }
func (*Link) Type() Type         { return TypeLink }
func (*Mention) Type() Type      { return TypeMention }
func (*Quote) Type() Type        { return TypeQuote }
func (*Text) Type() Type         { return TypeText }
func (*URL) Type() Type          { return TypeURL }
func (*Search) Type() Type       { return TypeSearch }
func (*Plain) Type() Type        { return TypePlain }

func (*Bold) node()         {}
func (*Small) node()        {}
func (*Strike) node()       {}
func (*Italic) node()       {}
func (*Fn) node()           {}
func (*BlockCode) node()    {}
func (*Center) node()       {}
func (*EmojiCode) node()    {}
func (*UnicodeEmoji) node() {}
func (*Hashtag) node()      {}
func (*InlineCode) node()   {}
func (*MathInline) node()   {}
func (*MathBlock) node()    {}
func (*Link) node()         {}
func (*Mention) node()      {}
func (*Quote) node()        {}
func (*Text) node()         {}
func (*URL) node()          {}
func (*Search) node()       {}
func (*Plain) node()        {}

// TextOf returns the text of n if n is a *Text.
func TextOf(n Node) (string, bool) {
	if t, ok := n.(*Text); ok {
		return t.Text, true
	}
	return "", false
}

// Children returns the child nodes of n.
// Leaf nodes have no children.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Bold:
		return n.Children
	case *Small:
		return n.Children
	case *Strike:
		return n.Children
	case *Italic:
		return n.Children
	case *Fn:
		return n.Children
	case *Center:
		return n.Children
	case *Link:
		return n.Children
	case *Quote:
		return n.Children
	case *Plain:
		return n.Children
	}
	return nil
}
