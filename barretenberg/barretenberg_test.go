package barretenberg

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/bbgo/bindgen"
	"github.com/wippyai/bbgo/engine"
	bberrors "github.com/wippyai/bbgo/errors"
	"github.com/wippyai/bbgo/internal/testmodule"
	"github.com/wippyai/bbgo/types"
)

// The test module shares the allocator ABI but none of the barretenberg
// exports, so these tests cover loading and lifetime only.

func TestLoad(t *testing.T) {
	ctx := context.Background()
	rt, err := Load(ctx, testmodule.Wasm())
	require.NoError(t, err)
	defer rt.Close(ctx)

	assert.Contains(t, rt.Exports(), "fr_add")
	assert.NotNil(t, rt.Module())
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(context.Background(), []byte("not wasm"))
	require.Error(t, err)

	var e *bberrors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, bberrors.PhaseLoad, e.Phase)
}

func TestLoadFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "module.wasm")
	require.NoError(t, os.WriteFile(path, testmodule.Wasm(), 0o644))

	rt, err := LoadFile(ctx, path)
	require.NoError(t, err)
	require.NoError(t, rt.Close(ctx))
	require.NoError(t, rt.Close(ctx))

	_, err = LoadFile(ctx, filepath.Join(t.TempDir(), "missing.wasm"))
	assert.Error(t, err)
}

func TestRuntime_MissingExports(t *testing.T) {
	ctx := context.Background()
	rt, err := Load(ctx, testmodule.Wasm(), WithEngineConfig(&engine.Config{MemoryLimitPages: 16}))
	require.NoError(t, err)
	defer rt.Close(ctx)

	api, err := rt.New(ctx)
	require.NoError(t, err)
	defer api.Close(ctx)

	err = api.PedersenHashInit(ctx)
	require.ErrorIs(t, err, bberrors.ErrUnknownExport)
	_, err = api.PedersenCompressFields(ctx, types.FrFromUint64(4), types.FrFromUint64(8))
	require.ErrorIs(t, err, bberrors.ErrUnknownExport)

	async, err := rt.NewAsync(ctx)
	require.NoError(t, err)
	defer async.Close(ctx)

	_, err = async.Blake2s(ctx, []byte("abc")).Await(ctx)
	assert.ErrorIs(t, err, bberrors.ErrUnknownExport)
}

func TestRuntime_IndependentInstances(t *testing.T) {
	ctx := context.Background()
	rt, err := Load(ctx, testmodule.Wasm())
	require.NoError(t, err)
	defer rt.Close(ctx)

	a, err := rt.NewSync(ctx)
	require.NoError(t, err)
	defer a.Close(ctx)
	b, err := rt.NewAsyncBinder(ctx)
	require.NoError(t, err)
	defer b.Close(ctx)

	assert.Zero(t, a.Outstanding())
	assert.Zero(t, b.Outstanding())
}

func TestOpen_ClosesRuntime(t *testing.T) {
	ctx := context.Background()
	api, err := Open(ctx, testmodule.Wasm())
	require.NoError(t, err)

	require.NoError(t, api.Close(ctx))
	require.NoError(t, api.Close(ctx))

	err = api.PedersenHashInit(ctx)
	assert.ErrorIs(t, err, bberrors.ErrClosed)
}

func TestOpenAsync_ClosesRuntime(t *testing.T) {
	ctx := context.Background()
	api, err := OpenAsync(ctx, testmodule.Wasm())
	require.NoError(t, err)

	require.NoError(t, api.Close(ctx))
	require.NoError(t, api.Close(ctx))

	_, err = api.PedersenHashToTree(ctx, nil).Await(ctx)
	assert.ErrorIs(t, err, bberrors.ErrClosed)
}

func TestOpen_Invalid(t *testing.T) {
	_, err := Open(context.Background(), nil)
	assert.Error(t, err)
	_, err = OpenAsync(context.Background(), nil)
	assert.Error(t, err)
}

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := context.Background()

	rt, err := Load(ctx, testmodule.Wasm(), WithLogger(zap.New(core)))
	require.NoError(t, err)
	defer rt.Close(ctx)

	assert.Equal(t, 1, logs.FilterMessage("barretenberg module loaded").Len())
}

func TestSchemaMatchesAPI(t *testing.T) {
	decls, err := Schema()
	require.NoError(t, err)
	methods, err := bindgen.Resolve(decls)
	require.NoError(t, err)

	syncType := reflect.TypeOf(&API{})
	asyncType := reflect.TypeOf(&AsyncAPI{})
	for _, m := range methods {
		sm, ok := syncType.MethodByName(m.Name)
		require.True(t, ok, m.Name)
		_, ok = asyncType.MethodByName(m.Name)
		require.True(t, ok, m.Name)
		// receiver and ctx come first
		assert.Equal(t, len(m.Params)+2, sm.Type.NumIn(), m.Name)
	}
}
