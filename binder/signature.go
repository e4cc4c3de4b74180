package binder

import (
	"context"
	"fmt"
	"strings"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/bbgo/types"
)

// Signature describes one export: the kinds of its inputs and outputs in
// declaration order. Generated bindings keep one Signature per declaration.
type Signature struct {
	Export  string
	In      []types.Kind
	Out     []types.Kind
	InNames []string // optional labels used in encoding errors
}

func (s *Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Export)
	b.WriteByte('(')
	for i, k := range s.In {
		if i > 0 {
			b.WriteString(", ")
		}
		if i < len(s.InNames) && s.InNames[i] != "" {
			b.WriteString(s.InNames[i])
			b.WriteByte(' ')
		}
		b.WriteString(k.String())
	}
	b.WriteString(") -> (")
	for i, k := range s.Out {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Caller is the synchronous call surface generated APIs are built on.
type Caller interface {
	Call(ctx context.Context, sig *Signature, args ...any) ([]any, error)
	Close(ctx context.Context) error
}

// AsyncCaller is the asynchronous counterpart of Caller.
type AsyncCaller interface {
	Call(ctx context.Context, sig *Signature, args ...any) *Future
	Close(ctx context.Context) error
}

var (
	_ Caller      = (*Sync)(nil)
	_ AsyncCaller = (*Async)(nil)
)

// checkCoreSignature reports why def cannot be called with n input and m
// output pointers, or "" when it can.
func checkCoreSignature(def api.FunctionDefinition, n, m int) string {
	params := def.ParamTypes()
	if len(params) != n+m {
		return fmt.Sprintf("expects %d parameters, declared %d inputs and %d outputs", len(params), n, m)
	}
	for _, p := range params {
		if p != api.ValueTypeI32 {
			return "parameter of type " + api.ValueTypeName(p) + " is not a pointer"
		}
	}
	results := def.ResultTypes()
	switch {
	case len(results) > 1:
		return fmt.Sprintf("returns %d values", len(results))
	case len(results) == 1 && results[0] != api.ValueTypeI32:
		return "status of type " + api.ValueTypeName(results[0]) + " is not i32"
	}
	return ""
}
