// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package htmlutil

import (
	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// Escape returns s escaped for use in HTML text and in
// double- or single-quoted attribute values.
// It escapes &, <, >, " and ', and replaces NUL and other
// code points that are not valid in HTML with U+FFFD.
func Escape(s string) string {
	return safehtml.HTMLEscaped(s).String()
}

// EscapeHTML is like [Escape] but returns the result as a [safehtml.HTML].
func EscapeHTML(s string) safehtml.HTML {
	return safehtml.HTMLEscaped(s)
}

// Trusted converts s, which the caller has built only from
// fixed markup and the results of [Escape], to a [safehtml.HTML].
func Trusted(s string) safehtml.HTML {
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(s)
}
