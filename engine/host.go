package engine

import (
	"bytes"
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/bbgo/errors"
)

const (
	wasiModuleName = "wasi_snapshot_preview1"
	envModuleName  = "env"

	// longest module log line read before truncation
	maxLogLine = 64 << 10
)

// instantiateWASI instantiates WASI preview1 into r.
func instantiateWASI(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(wasiModuleName)
	wasi_snapshot_preview1.NewFunctionExporter().ExportFunctions(builder)
	return builder.Instantiate(ctx)
}

// instantiateEnv provides the env imports barretenberg expects from its host:
// logstr(ptr) prints a NUL-terminated string and env_hardware_concurrency
// reports the thread count the module may assume.
func instantiateEnv(ctx context.Context, r wazero.Runtime, concurrency uint32) (api.Module, error) {
	builder := r.NewHostModuleBuilder(envModuleName)

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, m api.Module, stack []uint64) {
			msg := readCString(m.Memory(), uint32(stack[0]))
			Logger().Info("module log", zap.String("msg", msg))
		}), []api.ValueType{api.ValueTypeI32}, nil).
		WithParameterNames("ptr").
		Export("logstr")

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(concurrency)
		}), nil, []api.ValueType{api.ValueTypeI32}).
		Export("env_hardware_concurrency")

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Registration(envModuleName, "logstr", err)
	}
	return mod, nil
}

func readCString(mem api.Memory, ptr uint32) string {
	if mem == nil {
		return ""
	}
	size := mem.Size()
	if ptr >= size {
		return ""
	}
	n := size - ptr
	if n > maxLogLine {
		n = maxLogLine
	}
	data, ok := mem.Read(ptr, n)
	if !ok {
		return ""
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return string(data)
}
