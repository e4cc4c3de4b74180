// Command bbrun calls functions of a barretenberg module from the command
// line.
//
//	bbrun -wasm barretenberg.wasm -list
//	bbrun -wasm barretenberg.wasm -init pedersen_hash_init pedersen_compress_fields 4 8
//	bbrun -wasm barretenberg.wasm -i
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bbgo/barretenberg"
	"github.com/wippyai/bbgo/engine"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", os.Getenv("BB_WASM"), "Path to the module (default $BB_WASM)")
		schemaFile  = flag.String("schema", "", "Schema file (default: built-in barretenberg schema)")
		initFuncs   = flag.String("init", "", "Functions to call first (comma-separated)")
		list        = flag.Bool("list", false, "List declared functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log calls to stderr")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: bbrun -wasm <file.wasm> [-schema file] [-init f,g] <function> [args...]")
		fmt.Fprintln(os.Stderr, "       bbrun -wasm <file.wasm> -list")
		fmt.Fprintln(os.Stderr, "       bbrun -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	var opts []barretenberg.Option
	if *verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			defer log.Sync()
			engine.SetLogger(log)
			opts = append(opts, barretenberg.WithLogger(log))
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*wasmFile, *schemaFile, *initFuncs, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, *wasmFile, *schemaFile, *initFuncs, *list, flag.Args(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, wasmFile, schemaFile, initFuncs string, listOnly bool, args []string, opts []barretenberg.Option) error {
	ctx := context.Background()

	s, err := openSession(ctx, wasmFile, schemaFile, opts...)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	if listOnly || len(args) == 0 {
		fmt.Fprintf(w, "Module: %s\n", wasmFile)
		fmt.Fprintf(w, "Exports: %d\n", len(s.exports))
		fmt.Fprintf(w, "\nDeclared functions:\n")
		for _, m := range s.methods {
			mark := ""
			if !s.available(m) {
				mark = "  (not exported)"
			}
			fmt.Fprintf(w, "  %s%s\n", formatMethod(m), mark)
		}
		return nil
	}

	if err := s.callAll(ctx, initFuncs); err != nil {
		return err
	}

	m, ok := s.find(args[0])
	if !ok {
		return fmt.Errorf("unknown function %s (use -list)", args[0])
	}
	out, err := s.call(ctx, m, args[1:])
	if err != nil {
		return fmt.Errorf("call %s: %w", m.Export, err)
	}
	if len(out) == 0 {
		fmt.Fprintln(w, "ok")
	}
	for _, line := range out {
		fmt.Fprintln(w, line)
	}
	return nil
}
