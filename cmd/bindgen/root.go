package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/bbgo/bindgen"
)

// RootOptions holds flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "auto" | "json" | "yaml"
}

// NewRootCommand creates the bindgen root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bindgen",
		Short: "Generate Go bindings for a wasm module",
		Long: `bindgen reads a schema listing a module's exported functions and emits
Go source with one typed method per function, for synchronous and
asynchronous callers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := parseFormat(opts.Format)
			return err
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output on stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "auto", "schema format (auto|json|yaml)")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd
}

func parseFormat(s string) (bindgen.Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return bindgen.FormatAuto, nil
	case "json":
		return bindgen.FormatJSON, nil
	case "yaml", "yml":
		return bindgen.FormatYAML, nil
	}
	return 0, fmt.Errorf("invalid format %q: must be one of auto, json, yaml", s)
}

// logger writes to the command's stderr when verbose is set.
func (o *RootOptions) logger(cmd *cobra.Command) *zap.Logger {
	if !o.Verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(cmd.ErrOrStderr()),
		zap.DebugLevel,
	))
}
