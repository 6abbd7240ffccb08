// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import (
	"log/slog"

	"github.com/gogpu/pano"
)

type options struct {
	maxFaceSize int
	icons       IconAllocator
	logger      *slog.Logger
}

// Option configures a Factory or a Visualization.
type Option func(*options)

// WithMaxFaceSize limits the decoded face size. Larger faces are scaled
// down so their longer side is n pixels. n <= 0 keeps the source size.
func WithMaxFaceSize(n int) Option {
	return func(o *options) {
		o.maxFaceSize = n
	}
}

// WithIconAllocator sets the allocator used by a Factory for marker icons.
func WithIconAllocator(a IconAllocator) Option {
	return func(o *options) {
		o.icons = a
	}
}

// WithLogger sets the logger. The default is pano.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{icons: DefaultIconAllocator}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = pano.Logger()
	}
	if o.icons == nil {
		o.icons = DefaultIconAllocator
	}
	return o
}
