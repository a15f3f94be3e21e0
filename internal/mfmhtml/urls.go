// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mfmhtml

import (
	"net/url"
	"strings"
)

// A urlMatch classifies a string by how much of it
// looks like an http(s) URL.
type urlMatch int

const (
	notURL    urlMatch = iota // does not start with a URL
	urlPrefix                 // starts with a URL followed by other text
	urlExact                  // is entirely a URL
)

// matchURL classifies s. A URL here is "http://" or "https://"
// followed by one or more of the characters that MFM accepts
// in a bare URL.
func matchURL(s string) urlMatch {
	p := urlPrefixOf(s)
	switch {
	case p == "":
		return notURL
	case p == s:
		return urlExact
	}
	return urlPrefix
}

// urlPrefixOf returns the longest prefix of s that is a URL
// in the sense of [matchURL], or "" if there is none.
func urlPrefixOf(s string) string {
	rest, ok := strings.CutPrefix(s, "https://")
	if !ok {
		if rest, ok = strings.CutPrefix(s, "http://"); !ok {
			return ""
		}
	}
	n := 0
	for n < len(rest) && isURLByte(rest[n]) {
		n++
	}
	if n == 0 {
		return ""
	}
	return s[:len(s)-len(rest)+n]
}

func isURLByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("_/:%#@$&?!()[]~.,=+-", c) >= 0
}

// specialSchemes are the schemes whose URLs must have a host,
// and whose empty path means "/".
var specialSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

// absoluteURL parses s as an absolute URL and returns it in
// normalized form: scheme and host are lower-cased, and an
// empty path on a hierarchical web URL becomes "/".
// It reports false if s is not an absolute URL.
func absoluteURL(s string) (*url.URL, bool) {
	s = strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return nil, false
	}
	if specialSchemes[u.Scheme] {
		if u.Host == "" {
			return nil, false
		}
		if u.Path == "" && u.Opaque == "" {
			u.Path = "/"
		}
	} else if u.Opaque == "" && u.Host == "" && u.Path == "" {
		// "x:" alone names nothing.
		return nil, false
	}
	u.Host = strings.ToLower(u.Host)
	return u, true
}

// uriComponentEscaper undoes [url.QueryEscape]'s differences
// from JavaScript's encodeURIComponent, which federated servers
// expect in tag and search links.
var uriComponentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent-encodes s for use as one URL
// path segment or query value.
func escapeComponent(s string) string {
	return uriComponentEscaper.Replace(url.QueryEscape(s))
}
