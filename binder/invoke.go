package binder

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/bbgo/engine"
	"github.com/wippyai/bbgo/errors"
	"github.com/wippyai/bbgo/transcoder"
	"github.com/wippyai/bbgo/types"
)

// invoker performs single calls on a claimed instance. It is not safe for
// concurrent use; Sync and Async serialize access to it.
type invoker struct {
	inst     *engine.WazeroInstance
	compiler *transcoder.Compiler
	log      *zap.Logger
	stack    []uint64
}

func newInvoker(inst *engine.WazeroInstance, o options) (*invoker, error) {
	if inst == nil {
		return nil, errors.InvalidInput(errors.PhaseInvoke, "nil module instance")
	}
	if inst.Memory() == nil {
		return nil, errors.InvalidInput(errors.PhaseInvoke, "module instance exports no memory")
	}
	if err := inst.Claim(); err != nil {
		return nil, err
	}
	return &invoker{
		inst:     inst,
		compiler: o.compiler,
		log:      o.logger,
		stack:    make([]uint64, 8),
	}, nil
}

// encode encodes args for sig. The caller releases the result.
func (v *invoker) encode(sig *Signature, args []any) (*transcoder.Args, error) {
	encoded, err := v.compiler.EncodeArgs(sig.In, args, sig.InNames...)
	if err != nil {
		return nil, errors.WithExport(err, sig.Export)
	}
	return encoded, nil
}

// output is one reserved output slot.
type output struct {
	codec *transcoder.Codec
	slot  uint32
}

// invoke runs export with the encoded inputs and decodes outputs of outKinds.
// Every region allocated for the call is freed before it returns.
func (v *invoker) invoke(ctx context.Context, export string, args *transcoder.Args, outKinds []types.Kind) (values []any, err error) {
	fn, ok := v.inst.Export(export)
	if !ok {
		return nil, errors.UnknownExport(export, "module does not export it")
	}
	nIn, nOut := args.Len(), len(outKinds)
	if reason := checkCoreSignature(fn.Definition(), nIn, nOut); reason != "" {
		return nil, errors.UnknownExport(export, reason)
	}

	codecs, err := v.compiler.CompileAll(outKinds)
	if err != nil {
		return nil, errors.WithExport(err, export)
	}

	mem := v.inst.Memory()
	alloc := v.inst.Allocator()
	alloc.SetContext(ctx)
	defer alloc.SetContext(nil)

	start := time.Now()
	before := alloc.Outstanding()
	regions := transcoder.NewAllocationList()
	defer func() {
		regions.FreeAndRelease(alloc)
		if leaked := alloc.Outstanding() - before; leaked != 0 {
			v.log.Warn("allocations outstanding after call",
				zap.String("export", export),
				zap.Int64("regions", leaked))
		}
	}()

	need := nIn + nOut
	if need < 1 {
		need = 1
	}
	if cap(v.stack) < need {
		v.stack = make([]uint64, need)
	}
	stack := v.stack[:need]

	for i := 0; i < nIn; i++ {
		region := args.Regions[i]
		ptr, err := alloc.Alloc(uint32(len(region)))
		if err != nil {
			return nil, errors.WithExport(err, export)
		}
		regions.Add(ptr, uint32(len(region)))
		if err := mem.Write(ptr, region); err != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindAllocation).
				Export(export).
				Path("in[" + strconv.Itoa(i) + "]").
				Cause(err).
				Build()
		}
		stack[i] = uint64(ptr)
	}

	outs := make([]output, nOut)
	for j, codec := range codecs {
		size := codec.SlotSize()
		ptr, err := alloc.Alloc(size)
		if err != nil {
			return nil, errors.WithExport(err, export)
		}
		regions.Add(ptr, size)
		if err := mem.Zero(ptr, size); err != nil {
			return nil, errors.AllocationFailed(export, size, err)
		}
		outs[j] = output{codec: codec, slot: ptr}
		stack[nIn+j] = uint64(ptr)
	}

	if err := fn.CallWithStack(ctx, stack); err != nil {
		return nil, errors.InvocationFailed(export, 0, err)
	}
	hasStatus := len(fn.Definition().ResultTypes()) == 1
	status := uint32(stack[0])

	// Take ownership of module-allocated outputs before anything can fail,
	// so they are freed with the call's own regions.
	bufs := make([]uint32, nOut)
	for j, out := range outs {
		if out.codec.Fixed {
			continue
		}
		ptr, err := mem.ReadU32(out.slot)
		if err != nil {
			return nil, outputError(export, j, out.codec, err)
		}
		if ptr != 0 {
			alloc.Adopt(ptr)
			regions.Add(ptr, 0)
		}
		bufs[j] = ptr
	}

	if hasStatus && status != 0 {
		return nil, errors.InvocationFailed(export, status, nil)
	}

	values = make([]any, nOut)
	for j, out := range outs {
		ptr := out.slot
		if !out.codec.Fixed {
			ptr = bufs[j]
			if ptr == 0 {
				return nil, errors.AllocationFailed(export, 0, fmt.Errorf("module returned a null %s buffer for out[%d]", out.codec.Kind, j))
			}
		}
		val, err := v.compiler.Decode(out.codec.Kind, mem, ptr)
		if err != nil {
			return nil, errors.WithExport(errors.PrependPath(err, "out["+strconv.Itoa(j)+"]"), export)
		}
		values[j] = val
	}

	if ce := v.log.Check(zap.DebugLevel, "call"); ce != nil {
		ce.Write(
			zap.String("export", export),
			zap.Int("inputs", nIn),
			zap.Int("input_bytes", args.Size()),
			zap.Int("outputs", nOut),
			zap.Uint32("region_bytes", regions.Bytes()),
			zap.Duration("duration", time.Since(start)))
	}
	return values, nil
}

func outputError(export string, index int, codec *transcoder.Codec, cause error) error {
	e := errors.OutputSizeMismatch(export, index, codec.Kind.String(), "cannot read output slot")
	e.Cause = cause
	return e
}

// close releases and destroys the instance.
func (v *invoker) close(ctx context.Context) error {
	v.inst.Release()
	return v.inst.Close(ctx)
}

func (v *invoker) outstanding() int64 {
	return v.inst.Allocator().Outstanding()
}
