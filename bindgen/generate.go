package bindgen

import (
	"bytes"
	"go/format"
	"text/template"

	"github.com/wippyai/bbgo/errors"
)

// Styles selects the call surfaces to generate.
type Styles uint8

const (
	StyleSync Styles = 1 << iota
	StyleAsync

	StyleBoth = StyleSync | StyleAsync
)

// ParseStyles parses "sync", "async" or "both".
func ParseStyles(s string) (Styles, error) {
	switch s {
	case "sync":
		return StyleSync, nil
	case "async":
		return StyleAsync, nil
	case "both", "":
		return StyleBoth, nil
	}
	return 0, errors.InvalidInput(errors.PhaseGenerate, "unknown style "+s+" (want sync, async or both)")
}

// Options configures Generate.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Styles defaults to StyleBoth.
	Styles Styles
	// Source names the schema in the generated header.
	Source string
}

// style describes one generated API type.
type style struct {
	Type   string
	Mode   string
	Caller string
	Async  bool
}

var (
	syncStyle  = style{Type: "API", Mode: "synchronous", Caller: "Caller"}
	asyncStyle = style{Type: "AsyncAPI", Mode: "asynchronous", Caller: "AsyncCaller", Async: true}
)

type styleData struct {
	Style   style
	Methods []Method
}

var tmpl = template.Must(template.New("bindings").Funcs(template.FuncMap{
	"bundle": func(s style, methods []Method) styleData {
		return styleData{Style: s, Methods: methods}
	},
	"returns": func(s style, m Method) string {
		result := m.GoResult()
		if s.Async {
			if result == "" {
				result = "struct{}"
			}
			return "*binder.Pending[" + result + "]"
		}
		if result == "" {
			return "error"
		}
		return "(" + result + ", error)"
	},
}).Parse(fileTemplate))

// Generate resolves decls and renders the bindings as gofmt-ed Go source.
// Output depends only on decls and opts. Nothing is returned on error.
func Generate(decls []Declaration, opts Options) ([]byte, error) {
	if opts.Package == "" {
		return nil, errors.InvalidInput(errors.PhaseGenerate, "package name is required")
	}
	if !validIdent(opts.Package) {
		return nil, errors.InvalidInput(errors.PhaseGenerate, "invalid package name "+opts.Package)
	}
	if opts.Styles == 0 {
		opts.Styles = StyleBoth
	}

	methods, err := Resolve(decls)
	if err != nil {
		return nil, err
	}

	var styles []style
	if opts.Styles&StyleSync != 0 {
		styles = append(styles, syncStyle)
	}
	if opts.Styles&StyleAsync != 0 {
		styles = append(styles, asyncStyle)
	}

	data := struct {
		Package string
		Source  string
		Methods []Method
		Styles  []style
	}{
		Package: opts.Package,
		Source:  opts.Source,
		Methods: methods,
		Styles:  styles,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindSchema, err, "execute template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindSchema, err, "format generated source")
	}
	return src, nil
}
