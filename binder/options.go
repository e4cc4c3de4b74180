package binder

import (
	"go.uber.org/zap"

	"github.com/wippyai/bbgo/transcoder"
)

type options struct {
	logger   *zap.Logger
	compiler *transcoder.Compiler
}

// Option configures a binder.
type Option func(*options)

// WithLogger sets the logger for per-call debug output.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCompiler sets the codec cache. The default is transcoder.Default().
func WithCompiler(c *transcoder.Compiler) Option {
	return func(o *options) {
		o.compiler = c
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	if o.compiler == nil {
		o.compiler = transcoder.Default()
	}
	return o
}
