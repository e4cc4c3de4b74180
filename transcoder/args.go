package transcoder

import (
	"strconv"

	"github.com/wippyai/bbgo/errors"
	"github.com/wippyai/bbgo/types"
)

// Args holds one encoded region per input argument. Regions alias pooled
// buffers and are valid until Release.
type Args struct {
	Kinds   []types.Kind
	Regions [][]byte
	bufs    []*[]byte
}

// Len returns the number of arguments.
func (a *Args) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Regions)
}

// Size returns the total encoded size of all regions.
func (a *Args) Size() int {
	if a == nil {
		return 0
	}
	n := 0
	for _, r := range a.Regions {
		n += len(r)
	}
	return n
}

// Release returns the region buffers to the pool. Args must not be used
// afterwards. Release on nil is a no-op.
func (a *Args) Release() {
	if a == nil {
		return
	}
	for _, b := range a.bufs {
		putBuf(b)
	}
	a.bufs = nil
	a.Regions = nil
}

// EncodeArgs encodes values against kinds with the default compiler.
func EncodeArgs(kinds []types.Kind, values []any, names ...string) (*Args, error) {
	return defaultCompiler.EncodeArgs(kinds, values, names...)
}

// EncodeArgs encodes each value into its own region. names, when given,
// label the arguments in error paths; otherwise arguments are labelled in[i].
func (c *Compiler) EncodeArgs(kinds []types.Kind, values []any, names ...string) (*Args, error) {
	if len(values) != len(kinds) {
		return nil, errors.New(errors.PhaseEncode, errors.KindEncoding).
			Detail("expected %d arguments, got %d", len(kinds), len(values)).
			Build()
	}

	args := &Args{
		Kinds:   kinds,
		Regions: make([][]byte, len(kinds)),
		bufs:    make([]*[]byte, 0, len(kinds)),
	}
	for i, k := range kinds {
		codec, err := c.Compile(k)
		if err != nil {
			args.Release()
			return nil, err
		}
		buf := getBuf()
		args.bufs = append(args.bufs, buf)
		enc, err := codec.Encode((*buf)[:0], values[i])
		if err != nil {
			args.Release()
			return nil, errors.PrependPath(err, argName(names, i))
		}
		*buf = enc
		args.Regions[i] = enc
	}
	return args, nil
}

func argName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return "in[" + strconv.Itoa(i) + "]"
}
