package cache

import "log/slog"

// Option configures a Cache during creation.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used by the cache.
// By default the cache logs through pano.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
