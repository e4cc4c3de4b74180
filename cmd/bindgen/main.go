// Command bindgen generates typed Go bindings from a module schema.
//
//	bindgen generate -p barretenberg -o api.gen.go c_binds.json
//	bindgen check -p barretenberg -o api.gen.go c_binds.json
//	bindgen list c_binds.json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bindgen:", err)
		os.Exit(1)
	}
}
