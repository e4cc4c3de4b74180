package bindgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/bbgo/errors"
)

// Declaration is one exported function of the module.
type Declaration struct {
	Name    string
	InArgs  []Param
	OutArgs []Param
}

// Param is an input or output of a declaration. Output names are optional.
type Param struct {
	Name string
	Kind string
}

// Format is a schema encoding.
type Format int

const (
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "auto"
}

// FormatForPath picks the format from a file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// The schema accepts both name/kind and the functionName/type keys of
// barretenberg's c_binds.json.
type rawParam struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`
	Type string `json:"type" yaml:"type"`
}

type rawDeclaration struct {
	Name         string     `json:"name" yaml:"name"`
	FunctionName string     `json:"functionName" yaml:"functionName"`
	InArgs       []rawParam `json:"inArgs" yaml:"inArgs"`
	OutArgs      []rawParam `json:"outArgs" yaml:"outArgs"`
}

// LoadSchema reads and parses the schema file at path.
func LoadSchema(path string) ([]Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindSchema, err, "read schema")
	}
	return ParseSchema(data, FormatForPath(path))
}

// ParseSchema parses an ordered list of declarations. FormatAuto treats
// input starting with '[' as JSON and anything else as YAML.
func ParseSchema(data []byte, format Format) ([]Declaration, error) {
	if format == FormatAuto {
		format = FormatYAML
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
			format = FormatJSON
		}
	}

	var raw []rawDeclaration
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, errors.Schema("", "unknown schema format %d", int(format))
	}
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindSchema, err, "parse "+format.String()+" schema")
	}

	decls := make([]Declaration, len(raw))
	for i, r := range raw {
		d, err := r.declaration(i)
		if err != nil {
			return nil, err
		}
		decls[i] = d
	}
	return decls, nil
}

func (r rawDeclaration) declaration(index int) (Declaration, error) {
	name := r.Name
	if name == "" {
		name = r.FunctionName
	} else if r.FunctionName != "" && r.FunctionName != name {
		return Declaration{}, errors.Schema(fmt.Sprintf("[%d]", index),
			"name %q and functionName %q disagree", r.Name, r.FunctionName)
	}

	d := Declaration{Name: name}
	var err error
	if d.InArgs, err = params(name, "inArgs", r.InArgs); err != nil {
		return Declaration{}, err
	}
	if d.OutArgs, err = params(name, "outArgs", r.OutArgs); err != nil {
		return Declaration{}, err
	}
	return d, nil
}

func params(decl, list string, raw []rawParam) ([]Param, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Param, len(raw))
	for i, p := range raw {
		kind := p.Kind
		if kind == "" {
			kind = p.Type
		} else if p.Type != "" && p.Type != kind {
			return nil, errors.Schema(decl, "%s[%d]: kind %q and type %q disagree", list, i, p.Kind, p.Type)
		}
		out[i] = Param{Name: p.Name, Kind: kind}
	}
	return out, nil
}
