// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mfmhtml

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Reasons recorded by the mfmhtml.degraded counter.
const (
	reasonInvalidLink    = "invalid_link"
	reasonInvalidURL     = "invalid_url"
	reasonInvalidMention = "invalid_mention"
	reasonRubyRejected   = "ruby_rejected"
	reasonFnFallback     = "fn_fallback"
	reasonUnixtime       = "unixtime_fallback"
)

type metrics struct {
	fromHTML     metric.Int64Counter
	toHTML       metric.Int64Counter
	degraded     metric.Int64Counter
	depthLimited metric.Int64Counter
}

func newMetrics(m metric.Meter) (*metrics, error) {
	var ms metrics
	var err error
	for _, c := range []struct {
		p    *metric.Int64Counter
		name string
		desc string
	}{
		{&ms.fromHTML, "mfmhtml.from_html", "number of HTML to MFM conversions"},
		{&ms.toHTML, "mfmhtml.to_html", "number of MFM to HTML conversions"},
		{&ms.degraded, "mfmhtml.degraded", "number of nodes rendered by a fallback rule"},
		{&ms.depthLimited, "mfmhtml.depth_limited", "number of conversions that dropped over-deep content"},
	} {
		if *c.p, err = m.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, err
		}
	}
	return &ms, nil
}

func directionAttr(dir string) attribute.KeyValue {
	return attribute.String("direction", dir)
}

// degrade records that a node was rendered by a fallback rule.
func (c *Converter) degrade(ctx context.Context, reason string) {
	c.metrics.degraded.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
