package bindgen

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/wippyai/bbgo/binder"
	"github.com/wippyai/bbgo/errors"
	"github.com/wippyai/bbgo/types"
)

// Method is a declaration resolved into Go names and kinds.
type Method struct {
	Name    string // Go method name
	Export  string // declared, un-normalized name
	Params  []Arg
	Results []Arg
}

// Arg is a resolved parameter or result.
type Arg struct {
	Name     string // declared name, may be empty for results
	Ident    string // Go identifier: lowerCamel parameter or exported field
	Kind     types.Kind
	KindExpr string // Go expression re-creating Kind
	GoType   string
}

// ResultType names the struct generated for methods with several outputs.
func (m Method) ResultType() string {
	return m.Name + "Result"
}

// GoResult is the Go type a call returns on success, or "" for none.
func (m Method) GoResult() string {
	switch len(m.Results) {
	case 0:
		return ""
	case 1:
		return m.Results[0].GoType
	}
	return m.ResultType()
}

// Signature returns the runtime signature the generated code declares for m.
func (m Method) Signature() *binder.Signature {
	sig := &binder.Signature{
		Export:  m.Export,
		In:      make([]types.Kind, len(m.Params)),
		InNames: make([]string, len(m.Params)),
		Out:     make([]types.Kind, len(m.Results)),
	}
	for i, p := range m.Params {
		sig.In[i] = p.Kind
		sig.InNames[i] = p.Ident
	}
	for i, r := range m.Results {
		sig.Out[i] = r.Kind
	}
	return sig
}

// Resolve checks every declaration and resolves names and kinds. All problems
// are reported together in one schema error.
func Resolve(decls []Declaration) ([]Method, error) {
	if len(decls) == 0 {
		return nil, errors.Schema("", "schema declares no functions")
	}

	var errs error
	methods := make([]Method, 0, len(decls))
	seen := make(map[string]string, len(decls))

	for i, d := range decls {
		label := d.Name
		if label == "" {
			label = fmt.Sprintf("[%d]", i)
		}
		m, err := resolveDeclaration(label, d)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if reservedMethods[m.Name] {
			errs = multierr.Append(errs, errors.Schema(label, "method name %s is reserved", m.Name))
			continue
		}
		if prev, ok := seen[m.Name]; ok {
			errs = multierr.Append(errs, errors.Schema(label, "method name %s collides with %q", m.Name, prev))
			continue
		}
		seen[m.Name] = d.Name
		methods = append(methods, m)
	}

	if errs != nil {
		return nil, schemaError(errs)
	}
	for i := range methods {
		if err := suffixShadowed(&methods[i], seen); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if errs != nil {
		return nil, schemaError(errs)
	}
	return methods, nil
}

// suffixShadowed renames parameters that would hide generated identifiers and
// checks that the renamed parameters are still unique.
func suffixShadowed(m *Method, methods map[string]string) error {
	var errs error
	idents := make(map[string]int, len(m.Params))
	for j := range m.Params {
		p := &m.Params[j]
		if shadowsGenerated(p.Ident, methods) {
			p.Ident += argSuffix
		}
		if k, ok := idents[p.Ident]; ok {
			errs = multierr.Append(errs, errors.Schema(m.Export, "inArgs[%d] and inArgs[%d] both normalize to %s", k, j, p.Ident))
			continue
		}
		idents[p.Ident] = j
	}
	return errs
}

// shadowsGenerated reports whether a parameter named ident would hide one
// of the package-level sigX or decodeX identifiers.
func shadowsGenerated(ident string, methods map[string]string) bool {
	for _, prefix := range []string{"sig", "decode"} {
		if rest, ok := strings.CutPrefix(ident, prefix); ok {
			if _, taken := methods[rest]; taken {
				return true
			}
		}
	}
	return false
}

func schemaError(errs error) error {
	all := multierr.Errors(errs)
	if len(all) == 1 {
		return all[0]
	}
	msgs := make([]string, len(all))
	for i, e := range all {
		msgs[i] = e.Error()
	}
	return errors.New(errors.PhaseSchema, errors.KindSchema).
		Detail("%d problems:\n  %s", len(all), strings.Join(msgs, "\n  ")).
		Cause(errs).
		Build()
}

func resolveDeclaration(label string, d Declaration) (Method, error) {
	var errs error
	if d.Name == "" {
		return Method{}, errors.Schema(label, "declaration has no name")
	}
	m := Method{
		Name:   MethodName(d.Name),
		Export: d.Name,
	}
	if !validIdent(m.Name) {
		errs = multierr.Append(errs, errors.Schema(label, "name does not form a Go identifier (got %q)", m.Name))
	}

	params := make(map[string]int)
	for i, p := range d.InArgs {
		arg, err := resolveArg(label, "inArgs", i, p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if p.Name == "" {
			errs = multierr.Append(errs, errors.Schema(label, "inArgs[%d] has no name", i))
			continue
		}
		arg.Ident = ParamName(p.Name)
		if !validIdent(arg.Ident) {
			errs = multierr.Append(errs, errors.Schema(label, "inArgs[%d] name %q does not form a Go identifier", i, p.Name))
			continue
		}
		if j, ok := params[arg.Ident]; ok {
			errs = multierr.Append(errs, errors.Schema(label, "inArgs[%d] and inArgs[%d] both normalize to %s", j, i, arg.Ident))
			continue
		}
		params[arg.Ident] = i
		m.Params = append(m.Params, arg)
	}

	fields := make(map[string]int)
	for i, p := range d.OutArgs {
		arg, err := resolveArg(label, "outArgs", i, p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if p.Name != "" {
			arg.Ident = FieldName(p.Name)
		} else {
			arg.Ident = fmt.Sprintf("Out%d", i)
		}
		if !validIdent(arg.Ident) {
			errs = multierr.Append(errs, errors.Schema(label, "outArgs[%d] name %q does not form a Go identifier", i, p.Name))
			continue
		}
		if j, ok := fields[arg.Ident]; ok {
			errs = multierr.Append(errs, errors.Schema(label, "outArgs[%d] and outArgs[%d] both normalize to %s", j, i, arg.Ident))
			continue
		}
		fields[arg.Ident] = i
		m.Results = append(m.Results, arg)
	}

	return m, errs
}

func resolveArg(label, list string, i int, p Param) (Arg, error) {
	k, err := types.ParseKind(p.Kind)
	if err != nil {
		return Arg{}, errors.Schema(label, "%s[%d] %s: unknown kind %q", list, i, p.Name, p.Kind)
	}
	return Arg{
		Name:     p.Name,
		Kind:     k,
		KindExpr: k.GoExpr(),
		GoType:   types.GoType(k),
	}, nil
}
