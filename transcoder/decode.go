package transcoder

import (
	"encoding/binary"
	"strconv"

	bbgo "github.com/wippyai/bbgo"
	"github.com/wippyai/bbgo/errors"
	"github.com/wippyai/bbgo/types"
)

// DecodeOutputs decodes raw output bytes with the default compiler.
func DecodeOutputs(kinds []types.Kind, raw [][]byte) ([]any, error) {
	return defaultCompiler.DecodeOutputs(kinds, raw)
}

// DecodeOutputs decodes raw[i] as kinds[i], in declaration order. Each output
// must consume exactly its bytes.
func (c *Compiler) DecodeOutputs(kinds []types.Kind, raw [][]byte) ([]any, error) {
	if len(raw) != len(kinds) {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutputSizeMismatch).
			Detail("expected %d outputs, got %d", len(kinds), len(raw)).
			Build()
	}

	out := make([]any, len(kinds))
	for i, k := range kinds {
		codec, err := c.Compile(k)
		if err != nil {
			return nil, err
		}
		v, err := decodeExact(codec, raw[i])
		if err != nil {
			return nil, errors.PrependPath(err, "out["+strconv.Itoa(i)+"]")
		}
		out[i] = v
	}
	return out, nil
}

func decodeExact(codec *Codec, data []byte) (any, error) {
	v, n, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutputSizeMismatch).
			ABI(codec.Kind.String()).
			Detail("consumed %d of %d bytes", n, len(data)).
			Build()
	}
	return v, nil
}

// Decode reads one value of kind k that starts at ptr in module memory.
func Decode(k types.Kind, mem Memory, ptr uint32) (any, error) {
	return defaultCompiler.Decode(k, mem, ptr)
}

func (c *Compiler) Decode(k types.Kind, mem Memory, ptr uint32) (any, error) {
	codec, err := c.Compile(k)
	if err != nil {
		return nil, err
	}
	limit := uint64(1) << 32
	if s, ok := mem.(bbgo.MemorySizer); ok {
		limit = uint64(s.Size())
	}
	if uint64(ptr) >= limit {
		return nil, sizeMismatch(k, "pointer 0x%x outside memory of %d bytes", ptr, limit)
	}

	size, err := measure(k, mem, uint64(ptr), limit)
	if err != nil {
		return nil, err
	}
	data, err := mem.Read(ptr, uint32(size))
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutputSizeMismatch).
			ABI(k.String()).
			Cause(err).
			Build()
	}
	return decodeExact(codec, data)
}

// measure returns the encoded size of the value of kind k at addr without
// reading its payload. Sizes that would run past limit are rejected.
func measure(k types.Kind, mem Memory, addr, limit uint64) (uint64, error) {
	if size, ok := k.Size(); ok {
		if addr+uint64(size) > limit {
			return 0, sizeMismatch(k, "%d bytes at 0x%x run past memory end", size, addr)
		}
		return uint64(size), nil
	}

	if addr+types.PrefixSize > limit {
		return 0, sizeMismatch(k, "length prefix at 0x%x runs past memory end", addr)
	}
	prefix, err := mem.Read(uint32(addr), types.PrefixSize)
	if err != nil {
		return 0, errors.New(errors.PhaseDecode, errors.KindOutputSizeMismatch).ABI(k.String()).Cause(err).Build()
	}
	n := uint64(binary.BigEndian.Uint32(prefix))
	body := addr + types.PrefixSize

	if k.Tag() == types.TagString {
		if body+n > limit {
			return 0, sizeMismatch(k, "length %d at 0x%x runs past memory end", n, addr)
		}
		return types.PrefixSize + n, nil
	}

	elem := k.Elem()
	if size, ok := elem.Size(); ok {
		if body+n*uint64(size) > limit {
			return 0, sizeMismatch(k, "count %d at 0x%x runs past memory end", n, addr)
		}
		return types.PrefixSize + n*uint64(size), nil
	}
	// Every variable element carries at least a prefix.
	if body+n*types.PrefixSize > limit {
		return 0, sizeMismatch(k, "count %d at 0x%x runs past memory end", n, addr)
	}
	total := uint64(types.PrefixSize)
	for i := uint64(0); i < n; i++ {
		sz, err := measure(elem, mem, addr+total, limit)
		if err != nil {
			return 0, errors.PrependPath(err, "["+strconv.FormatUint(i, 10)+"]")
		}
		total += sz
	}
	return total, nil
}

func sizeMismatch(k types.Kind, format string, args ...any) *errors.Error {
	return errors.New(errors.PhaseDecode, errors.KindOutputSizeMismatch).
		ABI(k.String()).
		Detail(format, args...).
		Build()
}
