package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/wippyai/bbgo/barretenberg"
	"github.com/wippyai/bbgo/binder"
	"github.com/wippyai/bbgo/bindgen"
	"github.com/wippyai/bbgo/types"
)

// session is one module instance plus the declarations it is called through.
type session struct {
	rt      *barretenberg.Runtime
	caller  *binder.Sync
	methods []bindgen.Method
	exports map[string]bool
}

// openSession loads the module at wasmPath and resolves the schema at
// schemaPath, or the built-in barretenberg schema when it is empty.
func openSession(ctx context.Context, wasmPath, schemaPath string, opts ...barretenberg.Option) (*session, error) {
	var (
		decls []bindgen.Declaration
		err   error
	)
	if schemaPath == "" {
		decls, err = barretenberg.Schema()
	} else {
		decls, err = bindgen.LoadSchema(schemaPath)
	}
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	methods, err := bindgen.Resolve(decls)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	rt, err := barretenberg.LoadFile(ctx, wasmPath, opts...)
	if err != nil {
		return nil, err
	}
	caller, err := rt.NewSync(ctx)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}

	exports := make(map[string]bool)
	for _, name := range rt.Exports() {
		exports[name] = true
	}
	return &session{rt: rt, caller: caller, methods: methods, exports: exports}, nil
}

// find looks a method up by export name or Go name.
func (s *session) find(name string) (bindgen.Method, bool) {
	for _, m := range s.methods {
		if m.Export == name || m.Name == name {
			return m, true
		}
	}
	return bindgen.Method{}, false
}

// available reports whether the module exports m.
func (s *session) available(m bindgen.Method) bool {
	return s.exports[m.Export]
}

// call parses one text argument per parameter, invokes m and formats the
// outputs as name=value.
func (s *session) call(ctx context.Context, m bindgen.Method, texts []string) ([]string, error) {
	if len(texts) != len(m.Params) {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", m.Export, len(m.Params), len(texts))
	}
	args := make([]any, len(texts))
	for i, p := range m.Params {
		v, err := types.ParseValue(p.Kind, texts[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		args[i] = v
	}

	values, err := s.caller.Call(ctx, m.Signature(), args...)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		r := m.Results[i]
		label := r.Name
		if label == "" {
			label = r.Ident
		}
		out[i] = label + "=" + types.FormatValue(r.Kind, v)
	}
	return out, nil
}

// callAll runs a comma separated list of no-argument methods, such as
// pedersen_hash_init.
func (s *session) callAll(ctx context.Context, names string) error {
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		m, ok := s.find(name)
		if !ok {
			return fmt.Errorf("unknown function %s", name)
		}
		if _, err := s.call(ctx, m, nil); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (s *session) close(ctx context.Context) error {
	if err := s.caller.Close(ctx); err != nil {
		return err
	}
	return s.rt.Close(ctx)
}

func formatMethod(m bindgen.Method) string {
	return m.Signature().String()
}
