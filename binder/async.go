package binder

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/bbgo/engine"
	"github.com/wippyai/bbgo/errors"
	"github.com/wippyai/bbgo/transcoder"
	"github.com/wippyai/bbgo/types"
)

// Async is a non-blocking binder. Calls return a Future at once and are
// executed one at a time, in submission order, by a single worker goroutine.
type Async struct {
	inv *invoker
	log *zap.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*job
	closing bool
	running bool

	done     chan struct{}
	teardown func(context.Context) error
	closeErr error
}

type job struct {
	ctx      context.Context
	id       uuid.UUID
	export   string
	args     *transcoder.Args
	owned    bool // args released once the job ran
	outKinds []types.Kind
	fut      *Future
}

// NewAsync claims inst and starts the worker.
func NewAsync(inst *engine.WazeroInstance, opts ...Option) (*Async, error) {
	o := buildOptions(opts)
	inv, err := newInvoker(inst, o)
	if err != nil {
		return nil, err
	}
	a := &Async{
		inv:      inv,
		log:      o.logger,
		done:     make(chan struct{}),
		teardown: inv.close,
	}
	a.cond = sync.NewCond(&a.mu)
	go a.worker()
	return a, nil
}

// Call encodes args for sig and queues the call. Encoding errors and calls
// on a closed binder resolve the returned future immediately.
func (a *Async) Call(ctx context.Context, sig *Signature, args ...any) *Future {
	fut := newFuture()
	if a.isClosing() {
		fut.resolve(nil, errors.Closed("binder"))
		return fut
	}
	encoded, err := a.inv.encode(sig, args)
	if err != nil {
		fut.resolve(nil, err)
		return fut
	}
	a.enqueue(&job{
		ctx:      ctx,
		export:   sig.Export,
		args:     encoded,
		owned:    true,
		outKinds: sig.Out,
		fut:      fut,
	})
	return fut
}

// Invoke queues a call with already encoded inputs. args must stay valid
// until the returned future is done.
func (a *Async) Invoke(ctx context.Context, export string, args *transcoder.Args, outKinds []types.Kind) *Future {
	fut := newFuture()
	a.enqueue(&job{
		ctx:      ctx,
		export:   export,
		args:     args,
		outKinds: outKinds,
		fut:      fut,
	})
	return fut
}

func (a *Async) enqueue(j *job) {
	j.id = j.fut.id
	a.mu.Lock()
	if a.closing {
		a.mu.Unlock()
		j.finish(nil, errors.Closed("binder"))
		return
	}
	a.queue = append(a.queue, j)
	a.mu.Unlock()
	a.cond.Signal()
}

func (a *Async) worker() {
	defer close(a.done)
	for {
		a.mu.Lock()
		for len(a.queue) == 0 && !a.closing {
			a.cond.Wait()
		}
		if len(a.queue) == 0 {
			a.mu.Unlock()
			break
		}
		j := a.queue[0]
		a.queue[0] = nil
		a.queue = a.queue[1:]
		a.running = true
		a.mu.Unlock()

		a.run(j)

		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}

	a.closeErr = a.teardown(context.Background())
}

func (a *Async) run(j *job) {
	if err := j.ctx.Err(); err != nil {
		a.log.Debug("call skipped",
			zap.String("id", j.id.String()),
			zap.String("export", j.export),
			zap.Error(err))
		j.finish(nil, err)
		return
	}

	a.log.Debug("call started",
		zap.String("id", j.id.String()),
		zap.String("export", j.export))
	values, err := a.inv.invoke(context.WithoutCancel(j.ctx), j.export, j.args, j.outKinds)
	j.finish(values, err)
}

func (j *job) finish(values []any, err error) {
	if j.owned {
		j.args.Release()
	}
	j.fut.resolve(values, err)
}

// Pending returns the number of queued calls, including the running one.
func (a *Async) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := len(a.queue)
	if a.running {
		n++
	}
	return n
}

// Outstanding returns the number of module regions currently allocated.
// It is zero whenever no call is running.
func (a *Async) Outstanding() int64 {
	return a.inv.outstanding()
}

func (a *Async) isClosing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closing
}

// Close stops accepting calls, lets already queued calls finish and then
// destroys the module instance. It returns ctx.Err() if ctx ends first; the
// teardown still completes in the background and its error is returned by
// later calls to Close.
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closing = true
	a.mu.Unlock()
	a.cond.Broadcast()

	select {
	case <-a.done:
		return a.closeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}
