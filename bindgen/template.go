package bindgen

// fileTemplate renders the whole generated file. The API types are emitted by
// one style block, executed once per requested style.
const fileTemplate = `// Code generated by bindgen{{with .Source}} from {{.}}{{end}}. DO NOT EDIT.

package {{.Package}}

import (
	"context"

	"github.com/wippyai/bbgo/binder"
	"github.com/wippyai/bbgo/types"
)

var (
{{- range .Methods}}
	sig{{.Name}} = &binder.Signature{
		Export:  {{printf "%q" .Export}},
		In:      []types.Kind{ {{- range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.KindExpr}}{{end -}} },
		InNames: []string{ {{- range $i, $p := .Params}}{{if $i}}, {{end}}{{printf "%q" $p.Ident}}{{end -}} },
		Out:     []types.Kind{ {{- range $i, $r := .Results}}{{if $i}}, {{end}}{{$r.KindExpr}}{{end -}} },
	}
{{- end}}
)
{{range .Methods}}{{if gt (len .Results) 1}}
// {{.ResultType}} holds the outputs of {{.Export}}.
type {{.ResultType}} struct {
{{- range .Results}}
	{{.Ident}} {{.GoType}}
{{- end}}
}
{{end}}{{end}}
{{- range .Methods}}{{if .Results}}
func decode{{.Name}}(out []any) ({{.GoResult}}, error) {
{{- if eq (len .Results) 1}}
	return binder.Value[{{.GoResult}}](out, 0)
{{- else}}
	var r {{.ResultType}}
	var err error
{{- range $i, $r := .Results}}
	if r.{{$r.Ident}}, err = binder.Value[{{$r.GoType}}](out, {{$i}}); err != nil {
		return r, err
	}
{{- end}}
	return r, nil
{{- end}}
}
{{end}}{{end}}
{{- range $style := .Styles}}
{{template "style" (bundle $style $.Methods)}}
{{- end}}
{{define "style"}}{{$s := .Style}}
// {{$s.Type}} is the {{$s.Mode}} call surface of the module.
type {{$s.Type}} struct {
	caller binder.{{$s.Caller}}
}

// New{{$s.Type}} returns an {{$s.Type}} that calls through c.
func New{{$s.Type}}(c binder.{{$s.Caller}}) *{{$s.Type}} {
	return &{{$s.Type}}{caller: c}
}

// Close destroys the module instance.
func (api *{{$s.Type}}) Close(ctx context.Context) error {
	return api.caller.Close(ctx)
}
{{range .Methods}}
// {{.Name}} calls the {{.Export}} export.
func (api *{{$s.Type}}) {{.Name}}(ctx context.Context{{range .Params}}, {{.Ident}} {{.GoType}}{{end}}) {{returns $s .}} {
{{- if $s.Async}}
	return binder.Then(api.caller.Call(ctx, sig{{.Name}}{{range .Params}}, {{.Ident}}{{end}}), {{if .Results}}decode{{.Name}}{{else}}binder.Discard{{end}})
{{- else if not .Results}}
	_, err := api.caller.Call(ctx, sig{{.Name}}{{range .Params}}, {{.Ident}}{{end}})
	return err
{{- else}}
	out, err := api.caller.Call(ctx, sig{{.Name}}{{range .Params}}, {{.Ident}}{{end}})
	if err != nil {
		var zero {{.GoResult}}
		return zero, err
	}
	return decode{{.Name}}(out)
{{- end}}
}
{{end}}{{end}}`
