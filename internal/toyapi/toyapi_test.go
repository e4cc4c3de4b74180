package toyapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/bbgo/binder"
	"github.com/wippyai/bbgo/engine"
	bberrors "github.com/wippyai/bbgo/errors"
	"github.com/wippyai/bbgo/internal/testmodule"
	"github.com/wippyai/bbgo/types"
)

func instance(t *testing.T) *engine.WazeroInstance {
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

func newAPI(t *testing.T) (*API, *binder.Sync) {
	t.Helper()
	b, err := binder.NewSync(instance(t))
	require.NoError(t, err)
	api := NewAPI(b)
	t.Cleanup(func() { _ = api.Close(context.Background()) })
	return api, b
}

func newAsyncAPI(t *testing.T) (*AsyncAPI, *binder.Async) {
	t.Helper()
	b, err := binder.NewAsync(instance(t))
	require.NoError(t, err)
	api := NewAsyncAPI(b)
	t.Cleanup(func() { _ = api.Close(context.Background()) })
	return api, b
}

func frs(vs ...uint64) []types.Fr {
	out := make([]types.Fr, len(vs))
	for i, v := range vs {
		out[i] = types.FrFromUint64(v)
	}
	return out
}

func TestScenarioA_TwoFieldInputs(t *testing.T) {
	api, b := newAPI(t)
	ctx := context.Background()

	got, err := api.FrAdd(ctx, types.FrFromUint64(4), types.FrFromUint64(8))
	require.NoError(t, err)
	assert.Equal(t, types.FrFromUint64(12), got)

	again, err := api.FrAdd(ctx, types.FrFromUint64(4), types.FrFromUint64(8))
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Zero(t, b.Outstanding())
}

func TestScenarioB_VectorInput(t *testing.T) {
	api, _ := newAPI(t)

	got, err := api.FrSum(context.Background(), frs(4, 8, 12))
	require.NoError(t, err)
	assert.Equal(t, types.FrFromUint64(24), got)
	assert.Equal(t, "24", got.BigInt().String())
}

func TestScenarioC_IndexParticipates(t *testing.T) {
	api, _ := newAPI(t)
	ctx := context.Background()
	inputs := frs(4, 8)

	results := make(map[types.Fr]uint32)
	for _, idx := range []uint32{0, 1, 7} {
		got, err := api.FrSumWithIndex(ctx, inputs, idx)
		require.NoError(t, err)
		prev, dup := results[got]
		require.False(t, dup, "index %d and %d gave the same output", prev, idx)
		results[got] = idx
	}
}

func TestScenarioD_MultipleOutputs(t *testing.T) {
	api, _ := newAPI(t)

	got, err := api.FrSumAndCount(context.Background(), frs(4, 8, 12))
	require.NoError(t, err)
	assert.Equal(t, FrSumAndCountResult{Sum: types.FrFromUint64(24), Count: 3}, got)
}

func TestVariableAndFailingExports(t *testing.T) {
	api, b := newAPI(t)
	ctx := context.Background()

	vec, err := api.FrEchoVec(ctx, frs(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, frs(1, 2, 3), vec)

	msg, err := api.EchoStr(ctx, "bbgo")
	require.NoError(t, err)
	assert.Equal(t, "bbgo", msg)

	zero, err := api.FrIsZero(ctx, types.Fr{})
	require.NoError(t, err)
	assert.True(t, zero)

	require.NoError(t, api.FailWith(ctx, 0))
	err = api.FailWith(ctx, 42)
	require.ErrorIs(t, err, bberrors.ErrInvocation)

	require.ErrorIs(t, api.Trap(ctx), bberrors.ErrInvocation)
	assert.Zero(t, b.Outstanding())
}

func TestAsyncAPI(t *testing.T) {
	api, b := newAsyncAPI(t)
	ctx := context.Background()

	sum := api.FrSum(ctx, frs(4, 8, 12))
	pair := api.FrSumAndCount(ctx, frs(1, 2))
	failed := api.FailWith(ctx, 9)
	done := api.FailWith(ctx, 0)

	got, err := sum.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.FrFromUint64(24), got)

	res, err := pair.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.FrFromUint64(3), res.Sum)
	assert.Equal(t, uint32(2), res.Count)

	_, err = failed.Await(ctx)
	assert.ErrorIs(t, err, bberrors.ErrInvocation)
	_, err = done.Await(ctx)
	assert.NoError(t, err)

	assert.Zero(t, b.Outstanding())
}

func TestSyncAndAsyncAgree(t *testing.T) {
	syncAPI, _ := newAPI(t)
	asyncAPI, _ := newAsyncAPI(t)
	ctx := context.Background()

	for _, idx := range []uint32{0, 5} {
		want, err := syncAPI.FrSumWithIndex(ctx, frs(1, 2, 3), idx)
		require.NoError(t, err)
		got, err := asyncAPI.FrSumWithIndex(ctx, frs(1, 2, 3), idx).Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestClosed(t *testing.T) {
	api, _ := newAPI(t)
	ctx := context.Background()

	require.NoError(t, api.Close(ctx))
	require.NoError(t, api.Close(ctx))
	_, err := api.FrAdd(ctx, types.Fr{}, types.Fr{})
	assert.ErrorIs(t, err, bberrors.ErrClosed)
}
