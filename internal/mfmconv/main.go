// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mfmconv converts between MFM and HTML on the command line.
//
// Usage:
//
//	mfmconv [flags] fromhtml|tohtml|md
//
// Fromhtml reads an HTML fragment from standard input and prints
// the MFM text inferred from it. The -hashtags flag lists the hashtag
// names the note is known to contain.
//
// Tohtml reads an MFM syntax tree, as JSON, from standard input and
// prints it as an HTML fragment. The -users flag names a JSON file
// listing the remote users mentioned in the note, and -extra gives
// HTML to append, which is sanitized first. A JSON null prints nothing.
//
// Md reads CommonMark text from standard input and prints it as an
// HTML fragment, by way of MFM.
//
// With no subcommand and a terminal on standard input, mfmconv
// prompts for HTML lines and prints the MFM text for each.
//
// The -config flag names a YAML configuration file; see the
// documentation of the config package. Flags override the file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/mfmbridge/mfmbridge/internal/config"
	"github.com/mfmbridge/mfmbridge/internal/htmlutil"
	"github.com/mfmbridge/mfmbridge/internal/logs"
	"github.com/mfmbridge/mfmbridge/internal/mdimport"
	"github.com/mfmbridge/mfmbridge/internal/mfm"
	"github.com/mfmbridge/mfmbridge/internal/mfmhtml"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"golang.org/x/term"
)

type mfmconvFlags struct {
	config   string
	hashtags string
	users    string
	extra    string
}

var (
	flags       mfmconvFlags
	applyConfig = config.Flags(flag.CommandLine)
)

func init() {
	flag.StringVar(&flags.config, "config", "", "read configuration from `file`")
	flag.StringVar(&flags.hashtags, "hashtags", "", "comma-separated hashtag `names` in the note (fromhtml)")
	flag.StringVar(&flags.users, "users", "", "JSON `file` of mentioned remote users (tohtml)")
	flag.StringVar(&flags.extra, "extra", "", "`HTML` appended to the output after sanitizing (tohtml)")
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: mfmconv [flags] fromhtml|tohtml|md\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("mfmconv: ")
	flag.Usage = usage
	flag.Parse()

	cmd := ""
	switch flag.NArg() {
	case 0:
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			usage()
		}
	case 1:
		cmd = flag.Arg(0)
	default:
		usage()
	}

	cfg := config.Default()
	if flags.config != "" {
		var err error
		if cfg, err = config.Load(flags.config); err != nil {
			log.Fatal(err)
		}
	}
	applyConfig(cfg)

	m, err := newMfmconv(cfg, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	if cmd == "" {
		err = m.interactive()
	} else {
		err = m.run(cmd, os.Stdin, os.Stdout)
	}
	m.logMetrics()
	if err != nil {
		log.Fatal(err)
	}
}

// Mfmconv holds the state for one mfmconv execution.
type mfmconv struct {
	ctx    context.Context
	slog   *slog.Logger
	conv   *mfmhtml.Converter
	reader *sdkmetric.ManualReader
}

// newMfmconv returns an mfmconv for cfg that logs to w.
func newMfmconv(cfg *config.Config, w io.Writer) (*mfmconv, error) {
	level, err := logs.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	h, err := logs.New(w, cfg.LogFormat, level)
	if err != nil {
		return nil, err
	}
	lg := slog.New(h)
	conv, err := mfmhtml.New(lg, cfg.Converter())
	if err != nil {
		return nil, err
	}
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	conv.SetMeter(mp.Meter("mfmconv"))
	return &mfmconv{
		ctx:    context.Background(),
		slog:   lg,
		conv:   conv,
		reader: reader,
	}, nil
}

// run runs the named subcommand, reading r and writing w.
func (m *mfmconv) run(cmd string, r io.Reader, w io.Writer) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	switch cmd {
	case "fromhtml":
		_, err = fmt.Fprintln(w, m.conv.FromHTML(string(in), splitList(flags.hashtags)))
		return err

	case "tohtml":
		nodes, err := mfm.Unmarshal(in)
		if err != nil {
			return err
		}
		users, err := readUsers(flags.users)
		if err != nil {
			return err
		}
		return m.writeHTML(w, nodes, users)

	case "md":
		return m.writeHTML(w, mdimport.Convert(string(in)), nil)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (m *mfmconv) writeHTML(w io.Writer, nodes []mfm.Node, users []mfmhtml.RemoteUser) error {
	out, ok := m.conv.ToHTML(nodes, users, htmlutil.Sanitize(flags.extra))
	if !ok {
		m.slog.Debug("mfmconv: null input, no output")
		return nil
	}
	_, err := fmt.Fprintln(w, out.String())
	return err
}

// interactive prompts for HTML lines on the terminal
// and prints the MFM text for each.
func (m *mfmconv) interactive() error {
	t := term.NewTerminal(os.Stdin, "html> ")
	hashtags := splitList(flags.hashtags)
	for {
		line, err := readLine(t)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintf(t, "%s\n", m.conv.FromHTML(line, hashtags))
	}
}

func readLine(t *term.Terminal) (string, error) {
	old, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	defer term.Restore(int(os.Stdin.Fd()), old)
	return t.ReadLine()
}

// readUsers reads the JSON list of remote users in file.
// An empty file name means no users.
func readUsers(file string) ([]mfmhtml.RemoteUser, error) {
	if file == "" {
		return nil, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var users []mfmhtml.RemoteUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return users, nil
}

// splitList splits a comma-separated list, dropping empty elements.
func splitList(s string) []string {
	var list []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			list = append(list, f)
		}
	}
	return list
}

// logMetrics logs the conversion counters at debug level.
func (m *mfmconv) logMetrics() {
	var rm metricdata.ResourceMetrics
	if err := m.reader.Collect(m.ctx, &rm); err != nil {
		m.slog.Error("mfmconv: collecting metrics", "err", err)
		return
	}
	for _, sm := range rm.ScopeMetrics {
		for _, mt := range sm.Metrics {
			sum, ok := mt.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				args := []any{"metric", mt.Name, "value", dp.Value}
				for _, kv := range dp.Attributes.ToSlice() {
					args = append(args, string(kv.Key), kv.Value.Emit())
				}
				m.slog.Debug("mfmconv: metric", args...)
			}
		}
	}
}
