// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mfm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// The JSON form of a tree is the one produced by mfm-js:
// a list of {"type": ..., "props": {...}, "children": [...]}.

type wireNode struct {
	Type     Type            `json:"type"`
	Props    json.RawMessage `json:"props,omitempty"`
	Children []*wireNode     `json:"children,omitempty"`
}

// Unmarshal decodes a JSON list of nodes.
// A JSON null decodes to a nil slice, and an empty
// list decodes to an empty, non-nil slice.
func Unmarshal(data []byte) ([]Node, error) {
	var ws []*wireNode
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("mfm: %w", err)
	}
	if ws == nil {
		return nil, nil
	}
	return decodeList(ws)
}

func decodeList(ws []*wireNode) ([]Node, error) {
	out := make([]Node, 0, len(ws))
	for _, w := range ws {
		n, err := decode(w)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// props decodes w's props into v.
func props(w *wireNode, v any) error {
	if len(w.Props) == 0 {
		return nil
	}
	if err := json.Unmarshal(w.Props, v); err != nil {
		return fmt.Errorf("mfm: %s props: %w", w.Type, err)
	}
	return nil
}

var errNullNode = errors.New("mfm: null node")

func decode(w *wireNode) (Node, error) {
	if w == nil {
		return nil, errNullNode
	}
	var kids []Node
	if len(w.Children) > 0 {
		var err error
		if kids, err = decodeList(w.Children); err != nil {
			return nil, err
		}
	}

	switch w.Type {
	case TypeBold:
		return &Bold{Children: kids}, nil
	case TypeSmall:
		return &Small{Children: kids}, nil
	case TypeStrike:
		return &Strike{Children: kids}, nil
	case TypeItalic:
		return &Italic{Children: kids}, nil
	case TypeCenter:
		return &Center{Children: kids}, nil
	case TypeQuote:
		return &Quote{Children: kids}, nil
	case TypePlain:
		return &Plain{Children: kids}, nil

	case TypeFn:
		var p struct {
			Name string         `json:"name"`
			Args map[string]any `json:"args"`
		}
		if err := props(w, &p); err != nil {
			return nil, err
		}
		n := &Fn{Name: p.Name, Children: kids}
		for k, v := range p.Args {
			if n.Args == nil {
				n.Args = make(map[string]string)
			}
			switch v := v.(type) {
			case string:
				n.Args[k] = v
			case bool:
				if v {
					n.Args[k] = ""
				}
			default:
				return nil, fmt.Errorf("mfm: fn %s: bad value for arg %q", p.Name, k)
			}
		}
		return n, nil

	case TypeBlockCode:
		var p struct {
			Code string  `json:"code"`
			Lang *string `json:"lang"`
		}
		if err := props(w, &p); err != nil {
			return nil, err
		}
		n := &BlockCode{Code: p.Code}
		if p.Lang != nil {
			n.Lang = *p.Lang
		}
		return n, nil

	case TypeEmojiCode:
		var p struct {
			Name string `json:"name"`
		}
		err := props(w, &p)
		return &EmojiCode{Name: p.Name}, err

	case TypeUnicodeEmoji:
		var p struct {
			Emoji string `json:"emoji"`
		}
		err := props(w, &p)
		return &UnicodeEmoji{Emoji: p.Emoji}, err

	case TypeHashtag:
		var p struct {
			Hashtag string `json:"hashtag"`
		}
		err := props(w, &p)
		return &Hashtag{Hashtag: p.Hashtag}, err

	case TypeInlineCode:
		var p struct {
			Code string `json:"code"`
		}
		err := props(w, &p)
		return &InlineCode{Code: p.Code}, err

	case TypeMathInline:
		var p struct {
			Formula string `json:"formula"`
		}
		err := props(w, &p)
		return &MathInline{Formula: p.Formula}, err

	case TypeMathBlock:
		var p struct {
			Formula string `json:"formula"`
		}
		err := props(w, &p)
		return &MathBlock{Formula: p.Formula}, err

	case TypeLink:
		var p struct {
			URL    string `json:"url"`
			Silent bool   `json:"silent"`
		}
		err := props(w, &p)
		return &Link{URL: p.URL, Silent: p.Silent, Children: kids}, err

	case TypeMention:
		var p struct {
			Username string  `json:"username"`
			Host     *string `json:"host"`
			Acct     string  `json:"acct"`
		}
		if err := props(w, &p); err != nil {
			return nil, err
		}
		n := &Mention{Username: p.Username, Acct: p.Acct}
		if p.Host != nil {
			n.Host = *p.Host
		}
		return n, nil

	case TypeText:
		var p struct {
			Text string `json:"text"`
		}
		err := props(w, &p)
		return &Text{Text: p.Text}, err

	case TypeURL:
		var p struct {
			URL      string `json:"url"`
			Brackets bool   `json:"brackets"`
		}
		err := props(w, &p)
		return &URL{URL: p.URL, Brackets: p.Brackets}, err

	case TypeSearch:
		var p struct {
			Query   string `json:"query"`
			Content string `json:"content"`
		}
		err := props(w, &p)
		return &Search{Query: p.Query, Content: p.Content}, err
	}
	return nil, fmt.Errorf("mfm: unknown node type %q", w.Type)
}

type wireOut struct {
	Type     Type           `json:"type"`
	Props    map[string]any `json:"props,omitempty"`
	Children []*wireOut     `json:"children,omitempty"`
}

// Marshal encodes nodes as JSON in the form read by [Unmarshal].
// A nil slice encodes as null.
func Marshal(nodes []Node) ([]byte, error) {
	if nodes == nil {
		return []byte("null"), nil
	}
	return json.Marshal(encoder{}.list(nodes))
}

// An encoder converts nodes to their wire form.
type encoder struct{}

func (e encoder) list(ns []Node) []*wireOut {
	out := make([]*wireOut, 0, len(ns))
	for _, n := range ns {
		out = append(out, Dispatch[*wireOut](e, n))
	}
	return out
}

func (e encoder) parent(t Type, kids []Node) *wireOut {
	return &wireOut{Type: t, Children: e.list(kids)}
}

func leaf(t Type, props map[string]any) *wireOut {
	return &wireOut{Type: t, Props: props}
}

// orNull returns nil for "" so that it encodes as null.
func orNull(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (e encoder) Bold(n *Bold) *wireOut     { return e.parent(TypeBold, n.Children) }
func (e encoder) Small(n *Small) *wireOut   { return e.parent(TypeSmall, n.Children) }
func (e encoder) Strike(n *Strike) *wireOut { return e.parent(TypeStrike, n.Children) }
func (e encoder) Italic(n *Italic) *wireOut { return e.parent(TypeItalic, n.Children) }
func (e encoder) Center(n *Center) *wireOut { return e.parent(TypeCenter, n.Children) }
func (e encoder) Quote(n *Quote) *wireOut   { return e.parent(TypeQuote, n.Children) }
func (e encoder) Plain(n *Plain) *wireOut   { return e.parent(TypePlain, n.Children) }

func (e encoder) Fn(n *Fn) *wireOut {
	args := make(map[string]any, len(n.Args))
	for k, v := range n.Args {
		if v == "" {
			args[k] = true
		} else {
			args[k] = v
		}
	}
	w := e.parent(TypeFn, n.Children)
	w.Props = map[string]any{"name": n.Name, "args": args}
	return w
}

func (e encoder) Link(n *Link) *wireOut {
	w := e.parent(TypeLink, n.Children)
	w.Props = map[string]any{"url": n.URL, "silent": n.Silent}
	return w
}

func (encoder) BlockCode(n *BlockCode) *wireOut {
	return leaf(TypeBlockCode, map[string]any{"code": n.Code, "lang": orNull(n.Lang)})
}

func (encoder) EmojiCode(n *EmojiCode) *wireOut {
	return leaf(TypeEmojiCode, map[string]any{"name": n.Name})
}

func (encoder) UnicodeEmoji(n *UnicodeEmoji) *wireOut {
	return leaf(TypeUnicodeEmoji, map[string]any{"emoji": n.Emoji})
}

func (encoder) Hashtag(n *Hashtag) *wireOut {
	return leaf(TypeHashtag, map[string]any{"hashtag": n.Hashtag})
}

func (encoder) InlineCode(n *InlineCode) *wireOut {
	return leaf(TypeInlineCode, map[string]any{"code": n.Code})
}

func (encoder) MathInline(n *MathInline) *wireOut {
	return leaf(TypeMathInline, map[string]any{"formula": n.Formula})
}

func (encoder) MathBlock(n *MathBlock) *wireOut {
	return leaf(TypeMathBlock, map[string]any{"formula": n.Formula})
}

func (encoder) Mention(n *Mention) *wireOut {
	return leaf(TypeMention, map[string]any{"username": n.Username, "host": orNull(n.Host), "acct": n.Acct})
}

func (encoder) Text(n *Text) *wireOut {
	return leaf(TypeText, map[string]any{"text": n.Text})
}

func (encoder) URL(n *URL) *wireOut {
	return leaf(TypeURL, map[string]any{"url": n.URL, "brackets": n.Brackets})
}

func (encoder) Search(n *Search) *wireOut {
	return leaf(TypeSearch, map[string]any{"query": n.Query, "content": n.Content})
}
