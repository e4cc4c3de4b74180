package binder

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/bbgo/engine"
	bberrors "github.com/wippyai/bbgo/errors"
	"github.com/wippyai/bbgo/internal/testmodule"
	"github.com/wippyai/bbgo/transcoder"
	"github.com/wippyai/bbgo/types"
)

var (
	frVec = types.VectorOf(types.FrKind)

	sigFrAdd          = &Signature{Export: "fr_add", In: []types.Kind{types.FrKind, types.FrKind}, Out: []types.Kind{types.FrKind}, InNames: []string{"a", "b"}}
	sigFrSum          = &Signature{Export: "fr_sum", In: []types.Kind{frVec}, Out: []types.Kind{types.FrKind}}
	sigFrSumWithIndex = &Signature{Export: "fr_sum_with_index", In: []types.Kind{frVec, types.Uint(32)}, Out: []types.Kind{types.FrKind}}
	sigFrSumAndCount  = &Signature{Export: "fr_sum_and_count", In: []types.Kind{frVec}, Out: []types.Kind{types.FrKind, types.Uint(32)}}
	sigFrEchoVec      = &Signature{Export: "fr_echo_vec", In: []types.Kind{frVec}, Out: []types.Kind{frVec}}
	sigEchoStr        = &Signature{Export: "echo_str", In: []types.Kind{types.StringKind}, Out: []types.Kind{types.StringKind}}
	sigFrIsZero       = &Signature{Export: "fr_is_zero", In: []types.Kind{types.FrKind}, Out: []types.Kind{types.BoolKind}}
	sigFailWith       = &Signature{Export: "fail_with", In: []types.Kind{types.Uint(32)}}
	sigTrap           = &Signature{Export: "trap"}
	sigBadVecOut      = &Signature{Export: "bad_vec_out", Out: []types.Kind{frVec}}
	sigBadSig         = &Signature{Export: "bad_sig", In: []types.Kind{types.Uint(64)}}

	// live_allocs returns the module's live region count as its status, so
	// it fails exactly when something leaked.
	sigLiveAllocs = &Signature{Export: "live_allocs"}
)

func newInstance(t *testing.T) *engine.WazeroInstance {
	t.Helper()
	ctx := context.Background()

	eng, err := engine.NewWazeroEngine(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close(ctx) })

	mod, err := eng.LoadModule(ctx, testmodule.Wasm())
	require.NoError(t, err)
	inst, err := mod.Instantiate(ctx)
	require.NoError(t, err)
	return inst
}

func newSync(t *testing.T) *Sync {
	t.Helper()
	b, err := NewSync(newInstance(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	return b
}

func fr(v uint64) types.Fr {
	return types.FrFromUint64(v)
}

func assertBalanced(t *testing.T, b Caller, outstanding int64) {
	t.Helper()
	assert.Zero(t, outstanding, "binder outstanding allocations")
	_, err := b.Call(context.Background(), sigLiveAllocs)
	assert.NoError(t, err, "module reports live allocations")
}

func TestSync_FrAdd(t *testing.T) {
	b := newSync(t)
	ctx := context.Background()

	out, err := b.Call(ctx, sigFrAdd, fr(4), fr(8))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, fr(12), out[0])

	again, err := b.Call(ctx, sigFrAdd, fr(4), fr(8))
	require.NoError(t, err)
	assert.Equal(t, out, again)

	assertBalanced(t, b, b.Outstanding())
}

func TestSync_VectorInput(t *testing.T) {
	b := newSync(t)
	ctx := context.Background()

	values := []types.Fr{fr(4), fr(8), fr(12)}
	out, err := b.Call(ctx, sigFrSum, values)
	require.NoError(t, err)
	assert.Equal(t, fr(24), out[0])

	out, err = b.Call(ctx, sigFrSum, []types.Fr{})
	require.NoError(t, err)
	assert.Equal(t, fr(0), out[0])

	assertBalanced(t, b, b.Outstanding())
}

func TestSync_IndexParticipates(t *testing.T) {
	b := newSync(t)
	ctx := context.Background()
	values := []types.Fr{fr(4), fr(8), fr(12)}

	a, err := b.Call(ctx, sigFrSumWithIndex, values, uint32(0))
	require.NoError(t, err)
	c, err := b.Call(ctx, sigFrSumWithIndex, values, uint32(3))
	require.NoError(t, err)

	assert.Equal(t, fr(24), a[0])
	assert.Equal(t, fr(24+3*testmodule.IndexWeight), c[0])
	assert.NotEqual(t, a[0], c[0])
}

func TestSync_MultipleOutputs(t *testing.T) {
	b := newSync(t)

	out, err := b.Call(context.Background(), sigFrSumAndCount, []types.Fr{fr(1), fr(2), fr(3), fr(4)})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, fr(10), out[0])
	assert.Equal(t, uint32(4), out[1])
}

func TestSync_VariableOutputs(t *testing.T) {
	b := newSync(t)
	ctx := context.Background()

	values := []types.Fr{fr(7), fr(9)}
	out, err := b.Call(ctx, sigFrEchoVec, values)
	require.NoError(t, err)
	assert.Equal(t, values, out[0])

	out, err = b.Call(ctx, sigFrEchoVec, []types.Fr{})
	require.NoError(t, err)
	assert.Equal(t, []types.Fr{}, out[0])

	out, err = b.Call(ctx, sigEchoStr, "héllo")
	require.NoError(t, err)
	assert.Equal(t, "héllo", out[0])

	// module buffers were adopted and freed
	assertBalanced(t, b, b.Outstanding())
}

func TestSync_BoolOutput(t *testing.T) {
	b := newSync(t)
	ctx := context.Background()

	out, err := b.Call(ctx, sigFrIsZero, fr(0))
	require.NoError(t, err)
	assert.Equal(t, true, out[0])

	out, err = b.Call(ctx, sigFrIsZero, fr(3))
	require.NoError(t, err)
	assert.Equal(t, false, out[0])
}

func TestSync_StatusFailure(t *testing.T) {
	b := newSync(t)

	_, err := b.Call(context.Background(), sigFailWith, uint32(7))
	require.ErrorIs(t, err, bberrors.ErrInvocation)
	var e *bberrors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, uint32(7), e.Code)
	assert.Equal(t, "fail_with", e.Export)

	_, err = b.Call(context.Background(), sigFailWith, uint32(0))
	assert.NoError(t, err)

	assertBalanced(t, b, b.Outstanding())
}

func TestSync_Trap(t *testing.T) {
	b := newSync(t)
	ctx := context.Background()

	_, err := b.Call(ctx, sigTrap)
	require.ErrorIs(t, err, bberrors.ErrInvocation)

	// the binder stays usable
	out, err := b.Call(ctx, sigFrAdd, fr(1), fr(2))
	require.NoError(t, err)
	assert.Equal(t, fr(3), out[0])
	assertBalanced(t, b, b.Outstanding())
}

func TestSync_OutputSizeMismatch(t *testing.T) {
	b := newSync(t)

	_, err := b.Call(context.Background(), sigBadVecOut)
	require.ErrorIs(t, err, bberrors.ErrOutputSizeMismatch)
	var e *bberrors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "bad_vec_out", e.Export)

	assertBalanced(t, b, b.Outstanding())
}

func TestSync_UnknownExport(t *testing.T) {
	b := newSync(t)
	ctx := context.Background()

	tests := []struct {
		name string
		sig  *Signature
		args []any
	}{
		{"missing", &Signature{Export: "nope"}, nil},
		{"not pointer convention", sigBadSig, []any{uint64(1)}},
		{"arity", &Signature{Export: "fr_add", In: []types.Kind{types.FrKind}, Out: []types.Kind{types.FrKind}}, []any{fr(1)}},
		{"allocator export", &Signature{Export: "bbmalloc"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.Call(ctx, tc.sig, tc.args...)
			assert.ErrorIs(t, err, bberrors.ErrUnknownExport)
		})
	}
	assertBalanced(t, b, b.Outstanding())
}

func TestSync_EncodingError(t *testing.T) {
	b := newSync(t)
	ctx := context.Background()

	_, err := b.Call(ctx, sigFailWith, uint64(1)<<40)
	require.ErrorIs(t, err, bberrors.ErrEncoding)

	_, err = b.Call(ctx, sigFrAdd, fr(1))
	require.ErrorIs(t, err, bberrors.ErrEncoding)

	var r types.Fr
	copy(r[:], types.FrModulus().Bytes())
	_, err = b.Call(ctx, sigFrAdd, fr(1), r)
	require.ErrorIs(t, err, bberrors.ErrEncoding)
	var e *bberrors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "fr_add", e.Export)
	assert.Equal(t, []string{"b"}, e.Path)

	assertBalanced(t, b, b.Outstanding())
}

func TestSync_AllocationFailure(t *testing.T) {
	b := newSync(t)
	ctx := context.Background()

	// input larger than the module's memory
	big := make([]types.Fr, testmodule.MemoryBytes/types.FieldSize)
	_, err := b.Call(ctx, sigFrSum, big)
	require.ErrorIs(t, err, bberrors.ErrAllocation)
	assertBalanced(t, b, b.Outstanding())

	// module cannot allocate its output: the region claims more elements
	// than it holds, so the echo buffer does not fit
	region := binary.BigEndian.AppendUint32(nil, 4095)
	args := &transcoder.Args{Kinds: []types.Kind{frVec}, Regions: [][]byte{region}}
	_, err = b.Invoke(ctx, "fr_echo_vec", args, []types.Kind{frVec})
	require.ErrorIs(t, err, bberrors.ErrAllocation)
	assertBalanced(t, b, b.Outstanding())
}

func TestSync_ContextDone(t *testing.T) {
	b := newSync(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Call(ctx, sigFrAdd, fr(1), fr(2))
	assert.ErrorIs(t, err, context.Canceled)
	assertBalanced(t, b, b.Outstanding())
}

func TestSync_Close(t *testing.T) {
	inst := newInstance(t)
	b, err := NewSync(inst)
	require.NoError(t, err)

	_, err = NewSync(inst)
	require.Error(t, err, "instance is already bound")

	ctx := context.Background()
	require.NoError(t, b.Close(ctx))
	require.NoError(t, b.Close(ctx))
	assert.True(t, b.Closed())
	assert.True(t, inst.Closed())

	_, err = b.Call(ctx, sigFrAdd, fr(1), fr(2))
	assert.ErrorIs(t, err, bberrors.ErrClosed)
	_, err = b.Invoke(ctx, "fr_add", nil, nil)
	assert.ErrorIs(t, err, bberrors.ErrClosed)

	_, err = NewSync(inst)
	assert.ErrorIs(t, err, bberrors.ErrClosed)
}

func TestSync_NilInstance(t *testing.T) {
	_, err := NewSync(nil)
	assert.Error(t, err)
}

func TestSync_InvokeNoArgs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b, err := NewSync(newInstance(t), WithLogger(zap.New(core)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close(context.Background()) })

	out, err := b.Invoke(context.Background(), "live_allocs", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	calls := logs.FilterMessage("call").All()
	require.Len(t, calls, 1)
	assert.EqualValues(t, 0, calls[0].ContextMap()["input_bytes"])
	assert.EqualValues(t, 0, calls[0].ContextMap()["region_bytes"])
}

func TestSync_Concurrent(t *testing.T) {
	b := newSync(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g uint64) {
			defer wg.Done()
			for i := uint64(0); i < 20; i++ {
				out, err := b.Call(ctx, sigFrAdd, fr(g), fr(i))
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, fr(g+i), out[0])
			}
		}(uint64(g))
	}
	wg.Wait()

	assertBalanced(t, b, b.Outstanding())
}

func TestSignature_String(t *testing.T) {
	assert.Equal(t, "fr_add(a fr, b fr) -> (fr)", sigFrAdd.String())
	assert.Equal(t, "fr_sum_and_count(vec<fr>) -> (fr, u32)", sigFrSumAndCount.String())
}

func TestValue(t *testing.T) {
	values := []any{fr(1), uint32(2)}

	v, err := Value[types.Fr](values, 0)
	require.NoError(t, err)
	assert.Equal(t, fr(1), v)

	_, err = Value[types.Fr](values, 1)
	assert.Error(t, err)
	_, err = Value[uint32](values, 2)
	assert.ErrorIs(t, err, bberrors.ErrOutputSizeMismatch)
}
