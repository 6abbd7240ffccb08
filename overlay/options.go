// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay

import (
	"log/slog"
	"time"

	"github.com/gogpu/pano"
)

// Default renderer options.
const (
	DefaultBaseSize     = 5000
	DefaultMinSize      = 16
	DefaultMaxSize      = 64
	DefaultMaxPoolSize  = 64
	DefaultReleaseDelay = 300 * time.Millisecond
)

// Options configures a Renderer.
type Options struct {
	// BaseSize is the badge diameter at distance 1, in pixels.
	BaseSize float32
	// MinSize and MaxSize clamp the diameter.
	MinSize float32
	MaxSize float32
	// MaxPoolSize bounds the number of pooled nodes.
	MaxPoolSize int
	// ReleaseDelay is how long a released node fades before it is pooled.
	ReleaseDelay time.Duration
	Scheduler    Scheduler
	Logger       *slog.Logger
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		BaseSize:     DefaultBaseSize,
		MinSize:      DefaultMinSize,
		MaxSize:      DefaultMaxSize,
		MaxPoolSize:  DefaultMaxPoolSize,
		ReleaseDelay: DefaultReleaseDelay,
		Scheduler:    SystemScheduler{},
	}
}

// Option modifies Options.
type Option func(*Options)

// WithSizes sets the base size and the clamp range.
func WithSizes(base, minSize, maxSize float32) Option {
	return func(o *Options) {
		o.BaseSize = base
		o.MinSize = minSize
		o.MaxSize = maxSize
	}
}

// WithMaxPoolSize bounds the node pool. n < 0 is treated as 0.
func WithMaxPoolSize(n int) Option {
	return func(o *Options) {
		o.MaxPoolSize = max(n, 0)
	}
}

// WithReleaseDelay sets the fade-out delay.
func WithReleaseDelay(d time.Duration) Option {
	return func(o *Options) {
		o.ReleaseDelay = d
	}
}

// WithScheduler sets the scheduler for release timers.
func WithScheduler(s Scheduler) Option {
	return func(o *Options) {
		o.Scheduler = s
	}
}

// WithLogger sets the logger. The default is pano.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func (o *Options) normalize() {
	if o.Scheduler == nil {
		o.Scheduler = SystemScheduler{}
	}
	if o.Logger == nil {
		o.Logger = pano.Logger()
	}
	if o.MaxSize < o.MinSize {
		o.MaxSize = o.MinSize
	}
}
