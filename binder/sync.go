package binder

import (
	"context"
	"sync"

	"github.com/wippyai/bbgo/engine"
	"github.com/wippyai/bbgo/errors"
	"github.com/wippyai/bbgo/transcoder"
	"github.com/wippyai/bbgo/types"
)

// Sync is a blocking binder. Calls from several goroutines are serialized.
type Sync struct {
	inv    *invoker
	mu     sync.Mutex
	closed bool
}

// NewSync claims inst and returns a binder that owns it until Close.
func NewSync(inst *engine.WazeroInstance, opts ...Option) (*Sync, error) {
	inv, err := newInvoker(inst, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Sync{inv: inv}, nil
}

// Call encodes args for sig, invokes the export and returns the decoded
// outputs in declaration order.
func (s *Sync) Call(ctx context.Context, sig *Signature, args ...any) ([]any, error) {
	if s.Closed() {
		return nil, errors.Closed("binder")
	}
	encoded, err := s.inv.encode(sig, args)
	if err != nil {
		return nil, err
	}
	defer encoded.Release()
	return s.Invoke(ctx, sig.Export, encoded, sig.Out)
}

// Invoke calls export with already encoded inputs. args remain owned by the
// caller.
func (s *Sync) Invoke(ctx context.Context, export string, args *transcoder.Args, outKinds []types.Kind) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.Closed("binder")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.inv.invoke(context.WithoutCancel(ctx), export, args, outKinds)
}

// Outstanding returns the number of module regions currently allocated
// through this binder. It is zero whenever no call is running.
func (s *Sync) Outstanding() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.outstanding()
}

// Closed reports whether Close has been called.
func (s *Sync) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close destroys the module instance. It waits for a running call and is a
// no-op when already closed.
func (s *Sync) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.inv.close(ctx)
}
