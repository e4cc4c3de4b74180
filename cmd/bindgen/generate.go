package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/bbgo/bindgen"
	"github.com/wippyai/bbgo/errors"
)

// GenerateOptions holds the flags of generate and check.
type GenerateOptions struct {
	Package string
	Output  string
	Style   string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <schema>",
		Short: "Write bindings for a schema",
		Long: `Generate resolves every declaration in the schema and writes the
bindings to --output. Nothing is written when the schema has problems;
all of them are reported together.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := render(rootOpts, opts, args[0], cmd)
			if err != nil {
				return err
			}
			if opts.Output == "-" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err := os.WriteFile(opts.Output, src, 0o644); err != nil {
				return err
			}
			rootOpts.logger(cmd).Info("wrote bindings",
				zap.String("schema", args[0]),
				zap.String("output", opts.Output),
				zap.Int("bytes", len(src)))
			return nil
		},
	}

	opts.addFlags(cmd)
	return cmd
}

func (o *GenerateOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Package, "package", "p", "", "package name (default: name of the output directory)")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "api.gen.go", `output file, "-" for stdout`)
	cmd.Flags().StringVar(&o.Style, "style", "both", "call surfaces to emit (sync|async|both)")
}

// render loads the schema and generates the bindings described by opts.
func render(rootOpts *RootOptions, opts *GenerateOptions, schema string, cmd *cobra.Command) ([]byte, error) {
	log := rootOpts.logger(cmd)

	styles, err := bindgen.ParseStyles(opts.Style)
	if err != nil {
		return nil, err
	}
	pkg, err := packageName(opts)
	if err != nil {
		return nil, err
	}
	decls, err := loadSchema(rootOpts, schema)
	if err != nil {
		return nil, err
	}
	log.Debug("schema loaded", zap.String("path", schema), zap.Int("declarations", len(decls)))

	return bindgen.Generate(decls, bindgen.Options{
		Package: pkg,
		Styles:  styles,
		Source:  filepath.Base(schema),
	})
}

func loadSchema(rootOpts *RootOptions, path string) ([]bindgen.Declaration, error) {
	format, err := parseFormat(rootOpts.Format)
	if err != nil {
		return nil, err
	}
	if format == bindgen.FormatAuto {
		return bindgen.LoadSchema(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindSchema, err, "read schema")
	}
	return bindgen.ParseSchema(data, format)
}

// packageName returns the --package flag, or the name of the directory the
// output goes to.
func packageName(opts *GenerateOptions) (string, error) {
	if opts.Package != "" {
		return opts.Package, nil
	}
	if opts.Output == "-" {
		return "", fmt.Errorf("--package is required when writing to stdout")
	}
	abs, err := filepath.Abs(opts.Output)
	if err != nil {
		return "", err
	}
	return filepath.Base(filepath.Dir(abs)), nil
}

// NewCheckCommand creates the check command, which fails when the committed
// bindings differ from what generate would write.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "check <schema>",
		Short: "Verify that bindings are up to date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Output == "-" {
				return fmt.Errorf("check needs an output file")
			}
			want, err := render(rootOpts, opts, args[0], cmd)
			if err != nil {
				return err
			}
			have, err := os.ReadFile(opts.Output)
			if err != nil {
				return err
			}
			if !bytes.Equal(want, have) {
				return fmt.Errorf("%s is out of date with %s; run bindgen generate", opts.Output, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", opts.Output)
			return nil
		},
	}

	opts.addFlags(cmd)
	return cmd
}
