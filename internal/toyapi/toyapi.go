// Package toyapi holds bindings generated from toy.json for the module in
// internal/testmodule. The generator's tests check that api.gen.go is what
// bindgen produces; this package's tests run it against a live instance.
package toyapi

//go:generate go run github.com/wippyai/bbgo/cmd/bindgen generate -p toyapi -o api.gen.go toy.json
