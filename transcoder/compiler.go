package transcoder

import (
	"sync"

	"github.com/wippyai/bbgo/errors"
	"github.com/wippyai/bbgo/types"
)

// Codec bundles the compiled encoder and decoder for one kind.
type Codec struct {
	Encode types.Encoder
	Decode types.Decoder
	Kind   types.Kind
	// Size is the encoded width of fixed kinds, 0 otherwise.
	Size  int
	Fixed bool
}

// SlotSize is the number of bytes reserved for an output of this kind: the
// full width of fixed kinds, or room for one module pointer.
func (c *Codec) SlotSize() uint32 {
	if c.Fixed {
		return uint32(c.Size)
	}
	return types.PtrSize
}

type Compiler struct {
	cache sync.Map // canonical kind string -> *Codec
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

var defaultCompiler = NewCompiler()

// Default returns the process-wide compiler used by the package functions.
func Default() *Compiler {
	return defaultCompiler
}

func (c *Compiler) Compile(k types.Kind) (*Codec, error) {
	if !k.IsValid() {
		return nil, errors.Schema("", "invalid kind %s", k)
	}

	key := k.String()
	if cached, ok := c.cache.Load(key); ok {
		return cached.(*Codec), nil
	}

	size, fixed := k.Size()
	codec := &Codec{
		Kind:   k,
		Encode: types.EncoderFor(k),
		Decode: types.DecoderFor(k),
		Size:   size,
		Fixed:  fixed,
	}
	actual, _ := c.cache.LoadOrStore(key, codec)
	return actual.(*Codec), nil
}

// CompileAll compiles a signature's kinds in order.
func (c *Compiler) CompileAll(kinds []types.Kind) ([]*Codec, error) {
	out := make([]*Codec, len(kinds))
	for i, k := range kinds {
		codec, err := c.Compile(k)
		if err != nil {
			return nil, err
		}
		out[i] = codec
	}
	return out, nil
}
