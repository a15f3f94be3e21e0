// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sliceutil provides slice helpers missing from [slices].
package sliceutil

// Intersperse returns a new slice holding the elements of s
// with sep between each adjacent pair.
// The result has length 2*len(s)-1, or 0 if s is empty.
func Intersperse[T any](sep T, s []T) []T {
	if len(s) == 0 {
		return []T{}
	}
	out := make([]T, 0, 2*len(s)-1)
	for i, x := range s {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, x)
	}
	return out
}
