package barretenberg

import (
	"context"
	"os"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/bbgo/binder"
	"github.com/wippyai/bbgo/engine"
	"github.com/wippyai/bbgo/errors"
)

//go:generate go run github.com/wippyai/bbgo/cmd/bindgen generate -p barretenberg -o api.gen.go c_binds.json

// Runtime holds a compiled barretenberg module. Every New or NewAsync call
// creates an independent instance with its own memory.
type Runtime struct {
	engine *engine.WazeroEngine
	module *engine.WazeroModule
	opts   options
	closed atomic.Bool
}

type options struct {
	engine *engine.Config
	binder []binder.Option
	logger *zap.Logger
}

// Option configures a Runtime.
type Option func(*options)

// WithEngineConfig sets the engine configuration used to compile the module.
func WithEngineConfig(cfg *engine.Config) Option {
	return func(o *options) {
		o.engine = cfg
	}
}

// WithBinderOptions appends options passed to every binder the runtime
// creates.
func WithBinderOptions(opts ...binder.Option) Option {
	return func(o *options) {
		o.binder = append(o.binder, opts...)
	}
}

// WithLogger sets the logger for the runtime and its binders.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Load compiles wasm and verifies that it exports an allocator.
func Load(ctx context.Context, wasm []byte, opts ...Option) (*Runtime, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		o.binder = append([]binder.Option{binder.WithLogger(o.logger)}, o.binder...)
	} else {
		o.logger = engine.Logger()
	}

	eng, err := engine.NewWazeroEngineWithConfig(ctx, o.engine)
	if err != nil {
		return nil, errors.Load("create engine", err)
	}
	mod, err := eng.LoadModule(ctx, wasm)
	if err != nil {
		_ = eng.Close(ctx)
		return nil, err
	}
	o.logger.Debug("barretenberg module loaded", zap.Int("size", len(wasm)), zap.Int("exports", len(mod.Exports())))
	return &Runtime{engine: eng, module: mod, opts: o}, nil
}

// LoadFile reads a module from path and loads it.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Runtime, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	return Load(ctx, wasm, opts...)
}

// Exports lists the module's function exports.
func (r *Runtime) Exports() []string {
	return r.module.Exports()
}

// Module returns the compiled module.
func (r *Runtime) Module() *engine.WazeroModule {
	return r.module
}

// NewSync instantiates the module behind a synchronous binder.
func (r *Runtime) NewSync(ctx context.Context) (*binder.Sync, error) {
	inst, err := r.module.Instantiate(ctx)
	if err != nil {
		return nil, err
	}
	b, err := binder.NewSync(inst, r.opts.binder...)
	if err != nil {
		_ = inst.Close(ctx)
		return nil, err
	}
	return b, nil
}

// NewAsyncBinder instantiates the module behind an asynchronous binder.
func (r *Runtime) NewAsyncBinder(ctx context.Context) (*binder.Async, error) {
	inst, err := r.module.Instantiate(ctx)
	if err != nil {
		return nil, err
	}
	b, err := binder.NewAsync(inst, r.opts.binder...)
	if err != nil {
		_ = inst.Close(ctx)
		return nil, err
	}
	return b, nil
}

// New returns synchronous bindings over a fresh instance.
func (r *Runtime) New(ctx context.Context) (*API, error) {
	b, err := r.NewSync(ctx)
	if err != nil {
		return nil, err
	}
	return NewAPI(b), nil
}

// NewAsync returns asynchronous bindings over a fresh instance.
func (r *Runtime) NewAsync(ctx context.Context) (*AsyncAPI, error) {
	b, err := r.NewAsyncBinder(ctx)
	if err != nil {
		return nil, err
	}
	return NewAsyncAPI(b), nil
}

// Close releases the engine. Instances created from r must be closed first.
func (r *Runtime) Close(ctx context.Context) error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return multierr.Append(r.module.Close(ctx), r.engine.Close(ctx))
}

// Open loads wasm and returns synchronous bindings over a single instance.
// Closing the API also closes the runtime.
func Open(ctx context.Context, wasm []byte, opts ...Option) (*API, error) {
	rt, err := Load(ctx, wasm, opts...)
	if err != nil {
		return nil, err
	}
	b, err := rt.NewSync(ctx)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	return NewAPI(&ownedCaller{Caller: b, rt: rt}), nil
}

// OpenAsync is Open for the asynchronous bindings.
func OpenAsync(ctx context.Context, wasm []byte, opts ...Option) (*AsyncAPI, error) {
	rt, err := Load(ctx, wasm, opts...)
	if err != nil {
		return nil, err
	}
	b, err := rt.NewAsyncBinder(ctx)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	return NewAsyncAPI(&ownedAsyncCaller{AsyncCaller: b, rt: rt}), nil
}

// ownedCaller closes its runtime after the binder.
type ownedCaller struct {
	binder.Caller
	rt *Runtime
}

func (c *ownedCaller) Close(ctx context.Context) error {
	if err := c.Caller.Close(ctx); err != nil {
		return err
	}
	return c.rt.Close(ctx)
}

type ownedAsyncCaller struct {
	binder.AsyncCaller
	rt *Runtime
}

func (c *ownedAsyncCaller) Close(ctx context.Context) error {
	if err := c.AsyncCaller.Close(ctx); err != nil {
		return err
	}
	return c.rt.Close(ctx)
}
