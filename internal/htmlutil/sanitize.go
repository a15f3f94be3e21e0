// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlutil

import (
	"github.com/google/safehtml"
	"github.com/microcosm-cc/bluemonday"
)

// ugc allows the elements and attributes commonly permitted
// in user-generated content. A Policy is safe for concurrent
// use once built.
var ugc = bluemonday.UGCPolicy()

// Sanitize removes from the HTML fragment s any element or
// attribute not allowed in user-generated content, such as
// scripts, styles, and event handlers.
func Sanitize(s string) safehtml.HTML {
	return Trusted(ugc.Sanitize(s))
}
