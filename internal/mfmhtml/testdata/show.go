// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore

// Show shows the result of running Converter.FromHTML on a single input file.
//
// Usage:
//
//	go run show.go file.html [hashtag...]
//
// It prints a file pair that can be pasted into fromhtml.txt or hashtags.txt.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mfmbridge/mfmbridge/internal/mfmhtml"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: go run show.go file.html [hashtag...]")
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	c, err := mfmhtml.New(nil, mfmhtml.Config{URL: "https://misskey.example"})
	if err != nil {
		log.Fatal(err)
	}

	name := strings.TrimSuffix(filepath.Base(os.Args[1]), ".html")
	src := strings.TrimSuffix(string(data), "\n")
	fmt.Printf("-- %s.html --\n%s\n", name, src)
	fmt.Printf("-- %s.mfm --\n%s\n", name, c.FromHTML(src, os.Args[2:]))
}
