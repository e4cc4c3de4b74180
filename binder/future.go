package binder

import (
	"context"

	"github.com/google/uuid"
)

// Future is the result of an asynchronous call. It resolves exactly once.
type Future struct {
	id     uuid.UUID
	done   chan struct{}
	values []any
	err    error
}

func newFuture() *Future {
	return &Future{
		id:   uuid.New(),
		done: make(chan struct{}),
	}
}

func (f *Future) resolve(values []any, err error) {
	f.values = values
	f.err = err
	close(f.done)
}

// ID identifies the call in log output.
func (f *Future) ID() uuid.UUID {
	return f.id
}

// Done is closed once the call has completed and its memory was freed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await waits for the call. If ctx ends first Await returns ctx.Err(); the
// call itself keeps its place in the queue and still runs to completion.
func (f *Future) Await(ctx context.Context) ([]any, error) {
	select {
	case <-f.done:
		return f.values, f.err
	default:
	}
	select {
	case <-f.done:
		return f.values, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Pending is a Future whose outputs are converted to T.
type Pending[T any] struct {
	fut     *Future
	convert func([]any) (T, error)
}

// Then wraps fut so that Await returns its outputs converted by convert.
func Then[T any](fut *Future, convert func([]any) (T, error)) *Pending[T] {
	return &Pending[T]{fut: fut, convert: convert}
}

// Future returns the underlying untyped future.
func (p *Pending[T]) Future() *Future {
	return p.fut
}

func (p *Pending[T]) Done() <-chan struct{} {
	return p.fut.Done()
}

// Await waits for the call and converts its outputs.
func (p *Pending[T]) Await(ctx context.Context) (T, error) {
	values, err := p.fut.Await(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return p.convert(values)
}

// Discard is the converter for calls without outputs.
func Discard([]any) (struct{}, error) {
	return struct{}{}, nil
}
