package barretenberg

import (
	_ "embed"

	"github.com/wippyai/bbgo/bindgen"
)

//go:embed c_binds.json
var schemaJSON []byte

// Schema returns the declarations api.gen.go is generated from.
func Schema() ([]bindgen.Declaration, error) {
	return bindgen.ParseSchema(schemaJSON, bindgen.FormatJSON)
}
